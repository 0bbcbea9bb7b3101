package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/wayne-14e/Lexicon-AI/internal/ai"
	"github.com/wayne-14e/Lexicon-AI/internal/app"
	"github.com/wayne-14e/Lexicon-AI/internal/domain"
	"github.com/wayne-14e/Lexicon-AI/internal/service"
	"github.com/wayne-14e/Lexicon-AI/internal/testutil"
)

type testServer struct {
	server    *httptest.Server
	userRepo  *testutil.MockUserRepository
	tableRepo *testutil.MockTableRepository
	notesRepo *testutil.MockNotesRepository
	generator *testutil.MockGenerator
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{
		userRepo:  new(testutil.MockUserRepository),
		tableRepo: new(testutil.MockTableRepository),
		notesRepo: new(testutil.MockNotesRepository),
		generator: new(testutil.MockGenerator),
	}

	logger := testutil.NewTestLogger()
	controller := app.NewController(
		service.NewAuthService(ts.userRepo),
		service.NewTableService(ts.tableRepo, ts.generator, logger),
		service.NewNotesService(ts.notesRepo, time.Hour, logger),
		logger,
	)

	router := mux.NewRouter()
	NewHandler(controller, logger).RegisterRoutes(router)

	ts.server = httptest.NewServer(router)
	t.Cleanup(ts.server.Close)
	return ts
}

func (ts *testServer) post(t *testing.T, path string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	assert.NoError(t, err)

	resp, err := http.Post(ts.server.URL+path, "application/json", bytes.NewReader(payload))
	assert.NoError(t, err)
	return resp
}

func (ts *testServer) signIn(t *testing.T, user *domain.User, tables []domain.VocabTable) {
	t.Helper()

	ts.userRepo.On("FindByName", user.Username).Return(user, nil)
	ts.userRepo.On("SetCurrentUser", *user).Return(nil)
	ts.tableRepo.On("TablesFor", user.ID).Return(tables, nil)

	resp := ts.post(t, "/api/auth/login", map[string]string{"username": user.Username})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func decodeBody(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestHandler_Register(t *testing.T) {
	ts := newTestServer(t)
	ts.userRepo.On("FindByName", "Ada Lovelace").Return(nil, nil)
	ts.userRepo.On("SetCurrentUser", mock.AnythingOfType("domain.User")).Return(nil)
	ts.tableRepo.On("TablesFor", mock.AnythingOfType("string")).Return([]domain.VocabTable{}, nil)

	resp := ts.post(t, "/api/auth/register", map[string]string{"username": "Ada Lovelace"})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var user domain.User
	decodeBody(t, resp, &user)
	assert.Equal(t, "Ada Lovelace", user.Username)
	assert.Equal(t, "ada.lovelace@lexicon.edu", user.Email)
}

func TestHandler_Login_UnknownAccount(t *testing.T) {
	ts := newTestServer(t)
	ts.userRepo.On("FindByName", "Grace Hopper").Return(nil, nil)

	resp := ts.post(t, "/api/auth/login", map[string]string{"username": "Grace Hopper"})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Account not found. Please establish account.", body["error"])
}

func TestHandler_Register_DuplicateIdentity(t *testing.T) {
	ts := newTestServer(t)
	ts.userRepo.On("FindByName", "Ada Lovelace").Return(testutil.NewTestUser("u1", "ada lovelace"), nil)

	resp := ts.post(t, "/api/auth/register", map[string]string{"username": "Ada Lovelace"})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Identity already exists. Please sign in.", body["error"])
}

func TestHandler_PrivateRoutesRequireSession(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.post(t, "/api/create/begin", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandler_CreateTable(t *testing.T) {
	ts := newTestServer(t)
	user := testutil.NewTestUser("u1", "Ada Lovelace")
	ts.signIn(t, user, []domain.VocabTable{})

	ts.generator.On("GenerateVocabEntries", mock.Anything, []string{"ubiquitous"}).
		Return([]ai.GeneratedEntry{{Word: "ubiquitous", Meaning: "found everywhere"}}, nil)
	ts.tableRepo.On("Save", mock.AnythingOfType("domain.VocabTable")).Return(nil)

	resp := ts.post(t, "/api/tables", map[string]string{
		"title": "Set A",
		"words": "ubiquitous",
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var table domain.VocabTable
	decodeBody(t, resp, &table)
	assert.Equal(t, "Set A", table.Title)
	assert.Len(t, table.Entries, 1)
	ts.generator.AssertExpectations(t)
}

func TestHandler_CreateTable_GatewayFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.signIn(t, testutil.NewTestUser("u1", "Ada Lovelace"), []domain.VocabTable{})

	ts.generator.On("GenerateVocabEntries", mock.Anything, []string{"word"}).
		Return(nil, fmt.Errorf("network down"))

	resp := ts.post(t, "/api/tables", map[string]string{"words": "word"})

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "System Error: Failed to connect to AI engine.", body["error"])
}

func TestHandler_CreateTable_MissingWords(t *testing.T) {
	ts := newTestServer(t)
	ts.signIn(t, testutil.NewTestUser("u1", "Ada Lovelace"), []domain.VocabTable{})

	resp := ts.post(t, "/api/tables", map[string]string{"title": "Empty"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_StudyJudge(t *testing.T) {
	ts := newTestServer(t)
	user := testutil.NewTestUser("u1", "Ada Lovelace")
	table := testutil.NewTestTable("t1", "u1", "Set A", testutil.NewTestEntry("e1", "word", 40))
	ts.signIn(t, user, []domain.VocabTable{table})
	ts.tableRepo.On("Save", mock.AnythingOfType("domain.VocabTable")).Return(nil)

	resp := ts.post(t, "/api/tables/t1/open", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.post(t, "/api/study/start", nil)
	var cards []domain.VocabEntry
	decodeBody(t, resp, &cards)
	assert.Len(t, cards, 1)

	resp = ts.post(t, "/api/study/judge", map[string]interface{}{"entryId": "e1", "known": true})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var state app.State
	decodeBody(t, resp, &state)
	assert.Equal(t, 60, state.ActiveTable.Entries[0].Progress)
}

func TestHandler_ShareRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	user := testutil.NewTestUser("u1", "Ada Lovelace")
	table := testutil.NewTestTable("t1", "u1", "Set A", testutil.NewTestEntry("e1", "word", 70))
	ts.signIn(t, user, []domain.VocabTable{table})

	resp := ts.post(t, "/api/tables/t1/open", nil)
	resp.Body.Close()

	getResp, err := http.Get(ts.server.URL + "/api/share")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, getResp.StatusCode)

	var share map[string]string
	decodeBody(t, getResp, &share)
	assert.NotEmpty(t, share["token"])

	resp = ts.post(t, "/api/shared", map[string]string{"token": share["token"]})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var state app.State
	decodeBody(t, resp, &state)
	assert.Equal(t, domain.ViewPublicShared, state.View)
	assert.Equal(t, domain.PublicUserID, state.ActiveTable.UserID)
}

func TestHandler_OpenShared_InvalidToken(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.post(t, "/api/shared", map[string]string{"token": "%%%not-base64%%%"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Invalid share link.", body["error"])
}

func TestHandler_ExportHTML(t *testing.T) {
	ts := newTestServer(t)
	user := testutil.NewTestUser("u1", "Ada Lovelace")
	table := testutil.NewTestTable("t1", "u1", "My Words", testutil.NewTestEntry("e1", "ubiquitous", 0))
	ts.signIn(t, user, []domain.VocabTable{table})

	resp, err := http.Get(ts.server.URL + "/api/tables/t1/export/html")
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "My_Words_Journal.html")
}

func TestHandler_Notes(t *testing.T) {
	ts := newTestServer(t)
	user := testutil.NewTestUser("u1", "Ada Lovelace")
	ts.signIn(t, user, []domain.VocabTable{})
	ts.notesRepo.On("Notes", "u1").Return("stored text", nil)

	resp, err := http.Get(ts.server.URL + "/api/notes")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "stored text", body["text"])

	// Queued text is debounced, nothing persisted yet
	req, err := http.NewRequest(http.MethodPut, ts.server.URL+"/api/notes", bytes.NewReader([]byte(`{"text":"draft"}`)))
	assert.NoError(t, err)
	putResp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	putResp.Body.Close()
	assert.Equal(t, http.StatusAccepted, putResp.StatusCode)
	ts.notesRepo.AssertNotCalled(t, "Save", "u1", "draft")
}
