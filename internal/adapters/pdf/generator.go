// Package pdf generates a printable listing of a presettings deck. Cards are
// laid out one per row, grouped by section, with the looked-up keys beneath
// each value so an operator can check the deck against the scenario.
package pdf

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/adapters/deck/spec"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/domain"
)

// Listing is the PDF deck report.
type Listing struct{}

func (Listing) Name() string { return "pdf" }

func (Listing) Write(_ context.Context, d *domain.Deck, w io.Writer) error {
	return GenerateListing(d, w)
}

// GenerateListing writes a landscape PDF listing of every card in d to w.
func GenerateListing(d *domain.Deck, w io.Writer) error {
	pdf := fpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(12, 12, 12)
	pdf.SetAutoPageBreak(false, 12)
	pdf.AliasNbPages("{nb}")

	l := &listing{pdf: pdf, deck: d}
	l.newPage()
	for _, sec := range []domain.Section{domain.TLI, domain.Abort, domain.Constants} {
		cards := d.BySection(sec)
		if len(cards) == 0 {
			continue
		}
		l.sectionHeader(sec, len(cards))
		for i := range cards {
			l.card(&cards[i], i)
		}
	}
	l.footer()
	return pdf.Output(w)
}

type listing struct {
	pdf  *fpdf.Fpdf
	deck *domain.Deck
	y    float64
}

const (
	rowH    = 8.0
	numW    = 14.0
	oppW    = 10.0
	inputW  = 44.0
	idW     = 30.0
	headerH = 10.0
)

func (l *listing) contentW() float64 {
	pageW, _ := l.pdf.GetPageSize()
	left, _, right, _ := l.pdf.GetMargins()
	return pageW - left - right
}

func (l *listing) valueW() float64 {
	return (l.contentW() - numW - oppW - inputW - idW) / spec.FieldsPerCard
}

func (l *listing) newPage() {
	pdf := l.pdf
	pdf.AddPage()
	marginL, marginT, _, _ := pdf.GetMargins()
	contentW := l.contentW()
	m := l.deck.Mission

	// ── Header bar ───────────────────────────────────────────────────────────
	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(marginL, marginT, contentW, headerH, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1.5)
	title := fmt.Sprintf("RTCC TLI PRESETTINGS  %s  DAY %03d/%d", m.Name, m.LaunchDay, m.Year)
	pdf.CellFormat(contentW-40, 7, title, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 7, "Page "+fmt.Sprint(pdf.PageNo())+" of {nb}", "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	l.y = marginT + headerH + 3

	// ── Column header ────────────────────────────────────────────────────────
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginL, l.y)
	pdf.CellFormat(numW, 6, "Card", "1", 0, "C", true, 0, "")
	pdf.CellFormat(oppW, 6, "Opp", "1", 0, "C", true, 0, "")
	pdf.CellFormat(inputW, 6, "Input", "1", 0, "L", true, 0, "")
	for i := 1; i <= spec.FieldsPerCard; i++ {
		pdf.CellFormat(l.valueW(), 6, "Field "+strconv.Itoa(i), "1", 0, "C", true, 0, "")
	}
	pdf.CellFormat(idW, 6, "Identifier", "1", 1, "C", true, 0, "")
	l.y += 6
}

// ensure starts a new page when h more millimetres would run into the footer.
func (l *listing) ensure(h float64) {
	_, pageH := l.pdf.GetPageSize()
	_, _, _, marginB := l.pdf.GetMargins()
	if l.y+h > pageH-marginB-8 {
		l.footer()
		l.newPage()
	}
}

func (l *listing) sectionHeader(sec domain.Section, n int) {
	l.ensure(5.5 + rowH)
	pdf := l.pdf
	marginL, _, _, _ := pdf.GetMargins()
	pdf.SetFillColor(210, 220, 235)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginL, l.y)
	label := fmt.Sprintf("%s  (%d cards)", sec, n)
	pdf.CellFormat(l.contentW(), 5.5, label, "1", 1, "L", true, 0, "")
	l.y += 5.5
}

func (l *listing) card(c *domain.Card, i int) {
	l.ensure(rowH)
	pdf := l.pdf
	marginL, _, _, _ := pdf.GetMargins()

	if i%2 == 0 {
		pdf.SetFillColor(250, 250, 250)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	pdf.SetXY(marginL, l.y)
	pdf.SetFont("Courier", "B", 8)
	pdf.CellFormat(numW, rowH, strconv.Itoa(c.Number), "1", 0, "C", true, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(oppW, rowH, domain.OpportunityLetter(c.Opportunity), "1", 0, "C", true, 0, "")
	pdf.CellFormat(inputW, rowH, c.Input, "1", 0, "L", true, 0, "")

	x := marginL + numW + oppW + inputW
	for f := 0; f < spec.FieldsPerCard; f++ {
		pdf.SetXY(x, l.y)
		text, key := "", ""
		if f < len(c.Fields) {
			text = c.Fields[f]
			key = c.Keys[f]
		}
		// Fields that fell back to their default are flagged in red.
		if key != "" && isMissing(c, key) {
			pdf.SetTextColor(180, 30, 30)
		}
		pdf.SetFont("Courier", "", 8)
		pdf.CellFormat(l.valueW(), rowH*0.6, text, "LTR", 0, "R", true, 0, "")
		pdf.SetXY(x, l.y+rowH*0.6)
		pdf.SetFont("Helvetica", "I", 5.5)
		pdf.CellFormat(l.valueW(), rowH*0.4, key, "LBR", 0, "R", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		x += l.valueW()
	}
	pdf.SetXY(x, l.y)
	pdf.SetFont("Courier", "", 8)
	pdf.CellFormat(idW, rowH, c.ID, "1", 1, "C", true, 0, "")
	l.y += rowH
}

func (l *listing) footer() {
	pdf := l.pdf
	_, pageH := pdf.GetPageSize()
	marginL, _, _, marginB := pdf.GetMargins()
	contentW := l.contentW()
	pdf.SetXY(marginL, pageH-marginB-5)
	pdf.SetFont("Helvetica", "I", 7.5)
	pdf.SetTextColor(130, 130, 130)
	pdf.CellFormat(contentW/2, 5, "Generated by tli-convert", "", 0, "L", false, 0, "")
	right := fmt.Sprintf("%s | %s layout | %d cards", l.deck.Mission.Output, l.deck.Variant, len(l.deck.Cards))
	pdf.CellFormat(contentW/2, 5, right, "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func isMissing(c *domain.Card, key string) bool {
	for _, k := range c.Missing {
		if k == key {
			return true
		}
	}
	return false
}
