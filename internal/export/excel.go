package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/wayne-14e/Lexicon-AI/internal/domain"
)

const sheetName = "Vocabulary"

var excelHeader = []string{"No.", "Lexeme", "Class", "Semantic Definition", "Equivalents", "Contextual Usage", "Mastery %"}

// WriteXLSX renders a table as an Excel workbook with one sheet: a
// header row, one row per entry and the creation date in the footer
func WriteXLSX(w io.Writer, table domain.VocabTable) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#F3F4F6"}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &excelHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "G1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, e := range table.Entries {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{i + 1, e.Word, e.PartOfSpeech, e.Meaning, e.Synonyms, e.Sentence, e.Progress}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	footer := fmt.Sprintf("A%d", len(table.Entries)+3)
	created := time.UnixMilli(table.CreatedAt).Format("2006-01-02")
	if err := f.SetCellValue(sheetName, footer, fmt.Sprintf("%s, created %s", table.Title, created)); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}

	for col, width := range map[string]float64{"B": 20, "C": 12, "D": 50, "E": 25, "F": 50} {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	return f.Write(w)
}

// XLSXFilename is the download name for a table's workbook
func XLSXFilename(table domain.VocabTable) string {
	return whitespace.ReplaceAllString(table.Title, "_") + "_Journal.xlsx"
}
