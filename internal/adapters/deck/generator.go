package deck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/adapters/deck/spec"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/domain"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/ports"
)

// ErrNoInput is returned when a single-input layout has no scenario to read.
var ErrNoInput = errors.New("deck: no scenario input")

type Generator struct {
	variant domain.Variant
	vspec   *spec.VariantSpec
}

func New(variant domain.Variant) (*Generator, error) {
	if variant == "" {
		variant = spec.DefaultVariant
	}
	vspec, exact := spec.ForVariant(variant)
	if !exact {
		return &Generator{variant: vspec.Variant, vspec: vspec},
			fmt.Errorf("no card layout %q; using %q layout as fallback", variant, spec.DefaultVariant)
	}
	return &Generator{variant: variant, vspec: vspec}, nil
}

func MustNew(variant domain.Variant) *Generator {
	vspec, _ := spec.ForVariant(variant)
	return &Generator{variant: vspec.Variant, vspec: vspec}
}

func (g *Generator) Variant() domain.Variant { return g.variant }
func (g *Generator) Spec() *spec.VariantSpec { return g.vspec }
func (g *Generator) SingleInput() bool       { return g.vspec.SingleInput }

// Build runs the three passes in order: TLI targeting, abort targeting,
// guidance constants. Each pass visits every source; a source's cards in a
// pass are numbered from the section base, so two inputs yield two runs of
// TLI cards (1-60 punch, 1-46 legacy), then two runs of 461-468, then two
// runs of 541-548.
//
// Lookups that miss fall back to the field default and are recorded on the
// card; they are never an error.
func (g *Generator) Build(ctx context.Context, m *domain.Mission, sources []ports.NamedSource) (*domain.Deck, error) {
	if g.vspec.SingleInput {
		if len(sources) == 0 {
			return nil, ErrNoInput
		}
		sources = sources[:1]
	}

	d := &domain.Deck{Mission: *m, Variant: g.variant}
	rc := &domain.RunContext{LaunchDay: m.LaunchDay, Year: m.Year, Opportunity: 1}

	for _, sec := range g.vspec.Sections {
		for _, src := range sources {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rc.Input = src.Name
			if !sec.PerOpportunity {
				// Deck-level cards keep whatever opportunity the previous
				// pass finished on.
				g.buildSection(d, rc, sec, src.Source)
				continue
			}
			for opp := 1; opp <= 2; opp++ {
				rc.Opportunity = opp
				g.buildSection(d, rc, sec, src.Source)
			}
		}
	}
	return d, nil
}

func (g *Generator) buildSection(d *domain.Deck, rc *domain.RunContext, sec spec.SectionSpec, src ports.ParameterSource) {
	for i, tmpl := range sec.Cards {
		rc.Card = sec.Number(rc.Opportunity, i)
		d.Cards = append(d.Cards, g.buildCard(rc, sec.Section, tmpl, src))
	}
}

func (g *Generator) buildCard(rc *domain.RunContext, section domain.Section, tmpl spec.Card, src ports.ParameterSource) domain.Card {
	c := domain.Card{
		Number:      rc.Card,
		Section:     section,
		Opportunity: rc.Opportunity,
		Input:       rc.Input,
		Values:      make([]float64, len(tmpl.Fields)),
		Keys:        make([]string, len(tmpl.Fields)),
		Fields:      make([]string, len(tmpl.Fields)),
	}
	for i, f := range tmpl.Fields {
		switch f.Source {
		case spec.LaunchDay:
			c.Values[i] = float64(rc.LaunchDay)
		case spec.Opportunity:
			c.Values[i] = float64(rc.Opportunity)
		default:
			key := f.Key(rc.Opportunity)
			v, found := src.Lookup(key, f.Default)
			if !found {
				c.Missing = append(c.Missing, key)
			}
			c.Keys[i] = key
			c.Values[i] = f.Conv.Apply(v)
		}
		c.Fields[i] = g.formatField(f, c.Values[i])
	}
	if g.vspec.IDColumn {
		c.ID = CardID(rc.Year, rc.LaunchDay, rc.Opportunity, rc.Card)
		c.Line = punchLine(c.Fields) + PadLeft(c.ID, spec.IDWidth)
	} else {
		c.Line = strings.Join(c.Fields, " ")
	}
	return c
}

// Generate writes the card lines separated by newlines. The last card is not
// followed by a newline.
func (g *Generator) Generate(ctx context.Context, d *domain.Deck, w io.Writer) error {
	for i, c := range d.Cards {
		if err := ctx.Err(); err != nil {
			return err
		}
		if g.vspec.IDColumn && len(c.Line) < spec.CardWidth {
			return fmt.Errorf("card %d is %d columns (want at least %d)", c.Number, len(c.Line), spec.CardWidth)
		}
		line := c.Line
		if i < len(d.Cards)-1 {
			line += "\n"
		}
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Line renderers
// ---------------------------------------------------------------------------

// formatField renders one value. Context fields print as integers; legacy
// values use the field's fixed precision, punch values %.8E.
func (g *Generator) formatField(f spec.Field, v float64) string {
	if f.IsContext() {
		return strconv.Itoa(int(v))
	}
	if s, ok := nonFinite(v, g.vspec.IDColumn); ok {
		return s
	}
	if g.vspec.IDColumn {
		return fmt.Sprintf("%.8E", v)
	}
	return strconv.FormatFloat(v, 'f', f.Prec, 64)
}

// nonFinite spells infinities and NaN the way C printf does: lower case
// for %f, upper case for %E. Go would print "+Inf" and "NaN".
func nonFinite(v float64, upper bool) (string, bool) {
	var s string
	switch {
	case math.IsNaN(v):
		s = "nan"
	case math.IsInf(v, 1):
		s = "inf"
	case math.IsInf(v, -1):
		s = "-inf"
	default:
		return "", false
	}
	if upper {
		s = strings.ToUpper(s)
	}
	return s, true
}

// punchLine right-justifies the fields in four 17-column slots. Unused slots
// are blank.
func punchLine(fields []string) string {
	var b strings.Builder
	b.Grow(spec.CardWidth)
	for i := 0; i < spec.FieldsPerCard; i++ {
		if i >= len(fields) {
			b.WriteString(strings.Repeat(" ", spec.FieldWidth))
			continue
		}
		b.WriteString(PadLeft(fields[i], spec.FieldWidth))
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Formatting helpers
// ---------------------------------------------------------------------------

// CardID builds the identifier column: two-digit year, three-digit day in
// year, opportunity, three-digit card number.
func CardID(year, day, opp, card int) string {
	return fmt.Sprintf("%02d%03d%d%03d", year%100, day, opp, card)
}

// PadLeft right-justifies s in n columns. A string already n or more
// columns wide is returned unchanged, never truncated.
func PadLeft(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return strings.Repeat(" ", n-len(s)) + s
}
