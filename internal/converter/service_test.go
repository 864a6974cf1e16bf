package converter_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/adapters/deck"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/adapters/pdf"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/adapters/xlsx"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/converter"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/domain"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/missions"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/templates"
)

const scenarioText = `BEGIN_SHIPS
AS-510:Saturn5
  STATUS Landed Earth
  LVDC_TPA0 100.0
  LVDC_CCSA0 0.5
  LVDC_COSA0 0.5
  LVDC_TSTB 14000.5
  LVDC_T2IR 11.0
  LVDC_T_LO bogus
  LVDC_T_LO 1000
END
END_SHIPS
`

type fixture struct {
	in, out string
	logs    *observer.ObservedLogs
	svc     *converter.Service
}

func newFixture(t *testing.T, v domain.Variant, inputs ...string) *fixture {
	t.Helper()
	fx := &fixture{in: t.TempDir(), out: t.TempDir()}
	if len(inputs) == 0 {
		inputs = []string{"Apollo 15 - Launch.scn"}
	}
	cat, err := missions.New([]domain.Mission{{
		ID: 15, Name: "Apollo 15", LaunchDay: 207, Year: 1971,
		Inputs: inputs, Output: "1971-07-26 TLI.txt",
	}})
	require.NoError(t, err)

	core, logs := observer.New(zap.DebugLevel)
	fx.logs = logs
	fx.svc = &converter.Service{
		Catalog:   cat,
		Generator: deck.MustNew(v),
		Logger:    zap.New(core),
		InputDir:  fx.in,
		OutputDir: fx.out,
	}
	return fx
}

func (fx *fixture) writeInput(t *testing.T, name, text string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(fx.in, name), []byte(text), 0o644))
}

func (fx *fixture) output(t *testing.T) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(fx.out, "1971-07-26 TLI.txt"))
	require.NoError(t, err)
	return string(raw)
}

func TestRun_Legacy(t *testing.T) {
	fx := newFixture(t, domain.Legacy)
	fx.writeInput(t, "Apollo 15 - Launch.scn", scenarioText)

	res, err := fx.svc.Run(context.Background(), 15)
	require.NoError(t, err)

	out := fx.output(t)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 62)
	assert.Equal(t, "207 1 100.000 0.5000000", lines[0])
	assert.Equal(t, "207 2 14000.500 61.8997500", lines[50])
	assert.True(t, strings.HasPrefix(lines[48], "0.0000 11.00 "), lines[48])
	assert.Equal(t, "207 1017.000 0.0000000000 0.262515880368000", lines[54])
	assert.False(t, strings.HasSuffix(out, "\n"))

	assert.Equal(t, filepath.Join(fx.out, "1971-07-26 TLI.txt"), res.OutputPath)
	assert.Empty(t, res.Skipped)
	assert.Greater(t, res.Defaulted, 0)
	assert.NotZero(t, fx.logs.FilterMessage("key not found, using default").Len())
	assert.Equal(t, 1, fx.logs.FilterMessage("deck written").Len())
}

func TestRun_Punch(t *testing.T) {
	fx := newFixture(t, domain.Punch)
	fx.writeInput(t, "Apollo 15 - Launch.scn", scenarioText)

	_, err := fx.svc.Run(context.Background(), 15)
	require.NoError(t, err)

	lines := strings.Split(fx.output(t), "\n")
	require.Len(t, lines, 76)
	for _, l := range lines {
		assert.Len(t, l, 80)
	}
	assert.Equal(t, "              207                1   2.77777778E-02   5.00000000E-01   712071001", lines[0])
	assert.Equal(t, "   712072465", lines[64][68:])
}

func TestRun_Punch_SkipsMissingInput(t *testing.T) {
	fx := newFixture(t, domain.Punch, "absent.scn", "Apollo 15 - Launch.scn")
	fx.writeInput(t, "Apollo 15 - Launch.scn", scenarioText)

	res, err := fx.svc.Run(context.Background(), 15)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(fx.in, "absent.scn")}, res.Skipped)
	assert.Len(t, res.Deck.Cards, 76)
	assert.Equal(t, 1, fx.logs.FilterMessage("skipping unreadable input").Len())
}

func TestRun_Punch_TwoInputs(t *testing.T) {
	fx := newFixture(t, domain.Punch, "a.scn", "b.scn")
	fx.writeInput(t, "a.scn", scenarioText)
	fx.writeInput(t, "b.scn", "LVDC_TPA0 200\n")

	res, err := fx.svc.Run(context.Background(), 15)
	require.NoError(t, err)
	require.Len(t, res.Deck.Cards, 152)
	assert.Equal(t, 1, res.Deck.Cards[60].Number)
	assert.Equal(t, "b.scn", res.Deck.Cards[60].Input)
}

func TestRun_Legacy_MissingInputAborts(t *testing.T) {
	fx := newFixture(t, domain.Legacy)

	_, err := fx.svc.Run(context.Background(), 15)
	require.ErrorIs(t, err, deck.ErrNoInput)
	_, statErr := os.Stat(filepath.Join(fx.out, "1971-07-26 TLI.txt"))
	assert.True(t, os.IsNotExist(statErr), "no output on abort")
}

func TestRun_UnknownMission(t *testing.T) {
	fx := newFixture(t, domain.Punch)

	_, err := fx.svc.Run(context.Background(), 99)
	require.ErrorIs(t, err, converter.ErrUnknownMission)
	assert.True(t, converter.IsUnknownMission(err))
	entries, _ := os.ReadDir(fx.out)
	assert.Empty(t, entries)
}

func TestRun_OutputNotWritable(t *testing.T) {
	fx := newFixture(t, domain.Punch)
	fx.writeInput(t, "Apollo 15 - Launch.scn", scenarioText)
	fx.svc.OutputDir = filepath.Join(fx.out, "does", "not", "exist")

	_, err := fx.svc.Run(context.Background(), 15)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write deck")
}

func TestRun_Deterministic(t *testing.T) {
	fx := newFixture(t, domain.Punch)
	fx.writeInput(t, "Apollo 15 - Launch.scn", scenarioText)

	_, err := fx.svc.Run(context.Background(), 15)
	require.NoError(t, err)
	first := fx.output(t)
	_, err = fx.svc.Run(context.Background(), 15)
	require.NoError(t, err)
	assert.Equal(t, first, fx.output(t))
}

func TestRun_Reports(t *testing.T) {
	fx := newFixture(t, domain.Punch)
	fx.writeInput(t, "Apollo 15 - Launch.scn", scenarioText)
	dir := t.TempDir()
	fx.svc.Reports = []converter.ReportTarget{
		{Path: filepath.Join(dir, "deck.pdf"), Report: pdf.Listing{}},
		{Path: filepath.Join(dir, "deck.html"), Report: templates.HTMLReport{}},
		{Path: filepath.Join(dir, "deck.xlsx"), Report: xlsx.Report{}},
		{Path: "", Report: xlsx.Report{}}, // not requested
	}

	res, err := fx.svc.Run(context.Background(), 15)
	require.NoError(t, err)
	assert.Len(t, res.Reports, 3)

	html, err := os.ReadFile(filepath.Join(dir, "deck.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "712071001")

	raw, err := os.ReadFile(filepath.Join(dir, "deck.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))
}

func TestRun_Cancelled(t *testing.T) {
	fx := newFixture(t, domain.Punch)
	fx.writeInput(t, "Apollo 15 - Launch.scn", scenarioText)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fx.svc.Run(ctx, 15)
	assert.ErrorIs(t, err, context.Canceled)
}
