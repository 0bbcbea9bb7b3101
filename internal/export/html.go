// Package export renders a collection into downloadable documents: a
// self-contained HTML journal page and an Excel workbook.
package export

import (
	"html/template"
	"io"
	"regexp"
	"time"

	"github.com/wayne-14e/Lexicon-AI/internal/domain"
)

// journalTemplate is a portable snapshot of one collection. It carries
// its own styling so the downloaded file renders standalone and prints
// cleanly (the toolbar is hidden in print).
const journalTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}} - Academic Journal</title>
  <style>
    body { font-family: 'Inter', 'Helvetica Neue', sans-serif; background: #fff; color: #1a1a1a; padding: 40px; max-width: 1100px; margin: 0 auto; }
    .serif { font-family: 'Crimson Pro', Georgia, serif; }
    .toolbar { display: flex; justify-content: space-between; align-items: center; border-bottom: 1px solid #e5e5e5; padding-bottom: 24px; margin-bottom: 48px; }
    .toolbar button { background: #000; color: #fff; border: 0; padding: 10px 20px; font-size: 10px; font-weight: bold; text-transform: uppercase; letter-spacing: 0.2em; border-radius: 4px; cursor: pointer; }
    .masthead { border-bottom: 4px solid #000; padding-bottom: 32px; margin-bottom: 48px; display: flex; justify-content: space-between; align-items: flex-end; }
    .kicker { font-size: 10px; font-weight: bold; text-transform: uppercase; letter-spacing: 0.2em; color: #9ca3af; margin-bottom: 8px; }
    h1 { font-size: 48px; margin: 0; }
    .description { font-size: 24px; font-style: italic; color: #374151; margin-bottom: 48px; border-left: 2px solid #f3f4f6; padding-left: 32px; line-height: 1.6; }
    table { width: 100%; text-align: left; border-collapse: collapse; border-top: 2px solid #000; }
    th { padding: 16px 12px; font-size: 9px; font-weight: bold; text-transform: uppercase; letter-spacing: 0.2em; color: #6b7280; background: #f9fafb; border-bottom: 1px solid #e5e7eb; }
    td { padding: 24px 12px; vertical-align: top; border-bottom: 1px solid #f3f4f6; }
    td.num { font-size: 12px; color: #d1d5db; font-family: monospace; }
    td.lexeme { font-size: 24px; font-weight: bold; }
    td.class span { font-size: 9px; border: 1px solid #e5e7eb; padding: 2px 8px; border-radius: 4px; font-style: italic; color: #6b7280; text-transform: uppercase; font-weight: bold; }
    td.meaning { font-size: 16px; color: #374151; line-height: 1.6; }
    td.synonyms { font-size: 14px; font-style: italic; color: #6b7280; }
    td.usage { font-size: 14px; font-style: italic; color: #9ca3af; line-height: 1.6; }
    .footer { margin-top: 80px; padding-top: 40px; border-top: 1px solid #f3f4f6; font-size: 10px; font-weight: bold; text-transform: uppercase; letter-spacing: 0.4em; color: #d1d5db; }
    @media print { .toolbar { display: none; } body { padding: 0; } }
  </style>
</head>
<body>
  <div class="toolbar">
    <span class="serif"><strong>Lexicon AI</strong></span>
    <button onclick="window.print()">Export to PDF</button>
  </div>

  <div class="masthead">
    <div>
      <div class="kicker">Academic Journal Portfolio</div>
      <h1 class="serif">{{.Title}}</h1>
    </div>
    <div style="text-align: right;">
      <div class="kicker">Authenticated Date</div>
      <div class="serif" style="font-size: 20px;">{{.CreatedAt}}</div>
    </div>
  </div>

  {{if .Description}}<p class="description serif">&quot;{{.Description}}&quot;</p>{{end}}

  <table>
    <thead>
      <tr>
        <th>No.</th>
        <th>Lexeme</th>
        <th>Class</th>
        <th>Semantic Definition</th>
        <th>Equivalents</th>
        <th>Contextual Usage</th>
      </tr>
    </thead>
    <tbody>
      {{range .Entries}}
      <tr>
        <td class="num">{{.Number}}</td>
        <td class="lexeme serif">{{.Word}}</td>
        <td class="class"><span>{{.PartOfSpeech}}</span></td>
        <td class="meaning">{{.Meaning}}</td>
        <td class="synonyms">{{.Synonyms}}</td>
        <td class="usage serif">&quot;{{.Sentence}}&quot;</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <div class="footer">Lexicon AI Scholarly System &bull; End of Document</div>
</body>
</html>
`

var journal = template.Must(template.New("journal").Parse(journalTemplate))

type journalEntry struct {
	Number int
	domain.VocabEntry
}

type journalData struct {
	Title       string
	Description string
	CreatedAt   string
	Entries     []journalEntry
}

// WriteHTML renders the portable journal snapshot of a table
func WriteHTML(w io.Writer, table domain.VocabTable) error {
	data := journalData{
		Title:       table.Title,
		Description: table.Description,
		CreatedAt:   time.UnixMilli(table.CreatedAt).Format("1/2/2006"),
	}
	for i, e := range table.Entries {
		data.Entries = append(data.Entries, journalEntry{Number: i + 1, VocabEntry: e})
	}
	return journal.Execute(w, data)
}

var whitespace = regexp.MustCompile(`\s+`)

// HTMLFilename is the download name for a table's journal snapshot,
// spaces in the title collapsed to underscores
func HTMLFilename(table domain.VocabTable) string {
	return whitespace.ReplaceAllString(table.Title, "_") + "_Journal.html"
}
