package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/wayne-14e/Lexicon-AI/internal/config"
	"github.com/wayne-14e/Lexicon-AI/internal/domain"
)

// GeneratedEntry is one structured record returned per word
type GeneratedEntry struct {
	Word         string `json:"word"`
	PartOfSpeech string `json:"partOfSpeech"`
	Meaning      string `json:"meaning"`
	Synonyms     string `json:"synonyms"`
	Sentence     string `json:"sentence"`
}

// Generator is the content generation gateway consumed by the core.
// Tests inject a deterministic fake so no suite touches the network.
type Generator interface {
	GenerateVocabEntries(ctx context.Context, words []string) ([]GeneratedEntry, error)
	GenerateContextPassage(ctx context.Context, words []string, title string) domain.ContextPassage
	Speak(ctx context.Context, word string) []byte
}

// ErrorPassage is the sentinel returned when passage generation fails
var ErrorPassage = domain.ContextPassage{
	Title: "Error",
	Text:  "Failed to generate context. Please try again.",
}

// Gemini implements Generator against the Gemini generateContent API
type Gemini struct {
	client       *resty.Client
	apiKey       string
	entryModel   string
	passageModel string
	speechModel  string
	logger       *zap.Logger
}

// NewGemini creates a new Gemini client
func NewGemini(cfg config.GeminiConfig, logger *zap.Logger) *Gemini {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Gemini{
		client:       client,
		apiKey:       cfg.APIKey,
		entryModel:   cfg.EntryModel,
		passageModel: cfg.PassageModel,
		speechModel:  cfg.SpeechModel,
		logger:       logger,
	}
}

// generateContent request/response shapes
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType   string          `json:"responseMimeType,omitempty"`
	ResponseSchema     json.RawMessage `json:"responseSchema,omitempty"`
	ResponseModalities []string        `json:"responseModalities,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

var entrySchema = json.RawMessage(`{
	"type": "ARRAY",
	"items": {
		"type": "OBJECT",
		"properties": {
			"word": {"type": "STRING"},
			"partOfSpeech": {"type": "STRING"},
			"meaning": {"type": "STRING"},
			"synonyms": {"type": "STRING"},
			"sentence": {"type": "STRING"}
		},
		"required": ["word", "partOfSpeech", "meaning", "synonyms", "sentence"]
	}
}`)

var passageSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"title": {"type": "STRING"},
		"text": {"type": "STRING", "description": "The full text of the story/article."}
	},
	"required": ["title", "text"]
}`)

// GenerateVocabEntries returns one structured record per word. A
// malformed model reply degrades to an empty list, not an error.
func (g *Gemini) GenerateVocabEntries(ctx context.Context, words []string) ([]GeneratedEntry, error) {
	prompt := fmt.Sprintf(
		"For the following list of words: %s, provide:\n"+
			"1. A simple, easy-to-understand definition.\n"+
			"2. Common, everyday synonyms.\n"+
			"3. A highly memorable, perhaps slightly quirky or funny example sentence that makes the meaning stick.\n"+
			"Avoid overly academic or stuffy language. Keep it clear and engaging.",
		strings.Join(words, ", "),
	)

	text, err := g.generate(ctx, g.entryModel, prompt, &generationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema:   entrySchema,
	})
	if err != nil {
		return nil, err
	}

	var entries []GeneratedEntry
	if err := json.Unmarshal([]byte(text), &entries); err != nil {
		g.logger.Error("Failed to parse AI response", zap.Error(err))
		return []GeneratedEntry{}, nil
	}
	return entries, nil
}

// GenerateContextPassage synthesizes a narrative using all given words.
// Any failure yields the sentinel error passage.
func (g *Gemini) GenerateContextPassage(ctx context.Context, words []string, title string) domain.ContextPassage {
	prompt := fmt.Sprintf(
		"Create an engaging passage that naturally incorporates ALL of these vocabulary words: %s.\n\n"+
			"Requirements:\n"+
			"1. The theme should match the vocabulary. If the words are academic/scientific, write a short article. If they are descriptive/whimsical, write a story or tale.\n"+
			"2. The passage must be titled appropriately.\n"+
			"3. Length should be proportional to the word count (approx 15-20 words per vocabulary item).\n"+
			"4. DO NOT define the words. Use them in context so their meaning is clear.\n"+
			"5. The output MUST be in JSON format.",
		strings.Join(words, ", "),
	)

	text, err := g.generate(ctx, g.passageModel, prompt, &generationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema:   passageSchema,
	})
	if err != nil {
		g.logger.Error("Failed to generate context passage",
			zap.String("collection", title),
			zap.Error(err),
		)
		return ErrorPassage
	}

	var passage domain.ContextPassage
	if err := json.Unmarshal([]byte(text), &passage); err != nil {
		g.logger.Error("Failed to parse context passage", zap.Error(err))
		return ErrorPassage
	}
	return passage
}

// Speak synthesizes pronunciation audio for one word. Failures are
// logged and swallowed; callers get nil and carry on.
func (g *Gemini) Speak(ctx context.Context, word string) []byte {
	request := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: "Say clearly, at a natural pace: " + word}}},
		},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"AUDIO"},
		},
	}

	var response generateResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("key", g.apiKey).
		SetBody(request).
		SetResult(&response).
		Post("/v1beta/models/" + g.speechModel + ":generateContent")
	if err != nil {
		g.logger.Error("Text-to-speech request failed", zap.String("word", word), zap.Error(err))
		return nil
	}
	if resp.IsError() || response.Error != nil {
		g.logger.Error("Text-to-speech request rejected", zap.String("word", word), zap.String("status", resp.Status()))
		return nil
	}
	if len(response.Candidates) == 0 {
		return nil
	}

	for _, p := range response.Candidates[0].Content.Parts {
		if p.InlineData == nil {
			continue
		}
		audio, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
		if err != nil {
			g.logger.Error("Failed to decode audio payload", zap.Error(err))
			return nil
		}
		return audio
	}
	return nil
}

// generate runs one generateContent call and returns the first
// candidate's text
func (g *Gemini) generate(ctx context.Context, model, prompt string, cfg *generationConfig) (string, error) {
	request := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: cfg,
	}

	var response generateResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("key", g.apiKey).
		SetBody(request).
		SetResult(&response).
		Post("/v1beta/models/" + model + ":generateContent")
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	if resp.IsError() {
		if response.Error != nil {
			return "", fmt.Errorf("API error: %s", response.Error.Message)
		}
		return "", fmt.Errorf("API error: %s", resp.Status())
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response candidates returned")
	}

	return strings.TrimSpace(response.Candidates[0].Content.Parts[0].Text), nil
}
