package pdf_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/adapters/pdf"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/domain"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/ports"
)

var _ ports.DeckReport = pdf.Listing{}

func sampleDeck(n int) *domain.Deck {
	d := &domain.Deck{
		Mission: domain.Mission{ID: 15, Name: "Apollo 15", LaunchDay: 207, Year: 1971, Output: "1971-07-26 TLI.txt"},
		Variant: domain.Punch,
	}
	for i := 0; i < n; i++ {
		d.Cards = append(d.Cards, domain.Card{
			Number:      i + 1,
			Section:     domain.TLI,
			Opportunity: 1,
			Input:       "Apollo 15 - Launch.scn",
			Keys:        []string{"", "", "LVDC_TPA0", "LVDC_COSA0"},
			Fields:      []string{"207", "1", "2.77777778E-02", "5.00000000E-01"},
			Missing:     []string{"LVDC_COSA0"},
			ID:          fmt.Sprintf("7120710%02d", i+1),
		})
	}
	d.Cards = append(d.Cards, domain.Card{
		Number: 541, Section: domain.Constants, Opportunity: 2,
		Keys: []string{"", "LVDC_T_LO"}, Fields: []string{"207", "4.72222222E-03"},
		ID: "712072541",
	})
	return d
}

func TestGenerateListing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, pdf.GenerateListing(sampleDeck(3), &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")), "output is not a PDF")
}

func TestGenerateListing_PagesGrow(t *testing.T) {
	var small, large bytes.Buffer
	require.NoError(t, pdf.GenerateListing(sampleDeck(2), &small))
	require.NoError(t, pdf.GenerateListing(sampleDeck(120), &large))
	assert.Greater(t, large.Len(), small.Len())
}

func TestListing_Write(t *testing.T) {
	var buf bytes.Buffer
	r := pdf.Listing{}
	assert.Equal(t, "pdf", r.Name())
	require.NoError(t, r.Write(context.Background(), &domain.Deck{}, &buf))
	assert.NotZero(t, buf.Len())
}
