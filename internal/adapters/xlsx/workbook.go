// Package xlsx exports a presettings deck as an Excel workbook with one sheet
// per section.
package xlsx

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/adapters/deck/spec"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/domain"
)

var sections = []domain.Section{domain.TLI, domain.Abort, domain.Constants}

func header() []string {
	h := []string{"Card", "Opp", "Input"}
	for i := 1; i <= spec.FieldsPerCard; i++ {
		h = append(h, fmt.Sprintf("Value %d", i))
	}
	for i := 1; i <= spec.FieldsPerCard; i++ {
		h = append(h, fmt.Sprintf("Key %d", i))
	}
	return append(h, "Identifier", "Line")
}

// Write renders d as a workbook. Values are stored as numbers after unit
// conversion, so the sheet can be checked with formulas.
func Write(d *domain.Deck, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	cols := header()

	for i, sec := range sections {
		name := sec.String()
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}

		for c, h := range cols {
			cell, _ := excelize.CoordinatesToCellName(c+1, 1)
			f.SetCellValue(name, cell, h)
		}
		last, _ := excelize.CoordinatesToCellName(len(cols), 1)
		if err := f.SetCellStyle(name, "A1", last, bold); err != nil {
			return err
		}

		for r, card := range d.BySection(sec) {
			if err := f.SetSheetRow(name, fmt.Sprintf("A%d", r+2), rowOf(card)); err != nil {
				return fmt.Errorf("sheet %s card %d: %w", name, card.Number, err)
			}
		}

		first, _ := excelize.ColumnNumberToName(4)
		lastVal, _ := excelize.ColumnNumberToName(3 + 2*spec.FieldsPerCard)
		f.SetColWidth(name, "C", "C", 24)
		f.SetColWidth(name, first, lastVal, 16)
		lineCol, _ := excelize.ColumnNumberToName(len(cols))
		f.SetColWidth(name, lineCol, lineCol, 82)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func rowOf(c domain.Card) *[]interface{} {
	row := []interface{}{c.Number, domain.OpportunityLetter(c.Opportunity), c.Input}
	for i := 0; i < spec.FieldsPerCard; i++ {
		if i < len(c.Values) {
			row = append(row, c.Values[i])
		} else {
			row = append(row, nil)
		}
	}
	for i := 0; i < spec.FieldsPerCard; i++ {
		if i < len(c.Keys) {
			row = append(row, c.Keys[i])
		} else {
			row = append(row, "")
		}
	}
	row = append(row, c.ID, c.Line)
	return &row
}

// Report adapts Write to the deck report interface.
type Report struct{}

func (Report) Name() string { return "xlsx" }

func (Report) Write(_ context.Context, d *domain.Deck, w io.Writer) error { return Write(d, w) }
