package xlsx_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/adapters/xlsx"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/domain"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/ports"
)

var _ ports.DeckReport = xlsx.Report{}

func sampleDeck() *domain.Deck {
	return &domain.Deck{
		Mission: domain.Mission{ID: 15, LaunchDay: 207, Year: 1971},
		Variant: domain.Punch,
		Cards: []domain.Card{
			{Number: 1, Section: domain.TLI, Opportunity: 1, Input: "in.scn",
				Values: []float64{207, 1, 0.5, -1}, Keys: []string{"", "", "LVDC_TPA0", "LVDC_COSA0"},
				ID: "712071001", Line: "card one"},
			{Number: 24, Section: domain.TLI, Opportunity: 2, Input: "in.scn",
				Values: []float64{207, 2, 0.25, -1}, Keys: []string{"", "", "LVDC_TPB0", "LVDC_COSB0"},
				ID: "712072024", Line: "card two"},
			{Number: 541, Section: domain.Constants, Opportunity: 2, Input: "in.scn",
				Values: []float64{207, 0.0047}, Keys: []string{"", "LVDC_T_LO"},
				ID: "712072541", Line: "card three"},
		},
	}
}

func open(t *testing.T, d *domain.Deck) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, xlsx.Write(d, &buf))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWrite_Sheets(t *testing.T) {
	f := open(t, sampleDeck())
	assert.Equal(t, []string{"TLI", "Abort", "Constants"}, f.GetSheetList())
}

func TestWrite_Rows(t *testing.T) {
	f := open(t, sampleDeck())

	rows, err := f.GetRows("TLI")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Card", rows[0][0])
	assert.Equal(t, "Line", rows[0][len(rows[0])-1])
	assert.Equal(t, []string{"24", "B", "in.scn"}, rows[2][:3])
	assert.Equal(t, "LVDC_TPB0", rows[2][9])
	assert.Equal(t, "card two", rows[2][12])

	rows, err = f.GetRows("Abort")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")

	v, err := f.GetCellValue("Constants", "E2")
	require.NoError(t, err)
	assert.Equal(t, "0.0047", v)
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	r := xlsx.Report{}
	assert.Equal(t, "xlsx", r.Name())
	require.NoError(t, r.Write(context.Background(), sampleDeck(), &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")), "xlsx is a zip archive")
}
