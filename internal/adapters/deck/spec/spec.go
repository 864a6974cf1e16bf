// Package spec defines the RTCC TLI presettings card layouts. The punch
// layout follows the deck described in MSC internal note 69-FM-171, adapted
// so one file holds one launch day; the legacy layout is the compact text
// form the first converter wrote.
package spec

import (
	"fmt"

	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/adapters/scenario"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/domain"
)

const (
	FieldsPerCard = 4
	FieldWidth    = 17
	IDWidth       = 12
	CardWidth     = FieldsPerCard*FieldWidth + IDWidth // 80 columns
)

// Source says where a field's value comes from.
type Source int

const (
	Lookup      Source = iota // named scenario value
	LaunchDay                 // run context day in year, rendered as an integer
	Opportunity               // run context opportunity number, rendered as an integer
)

// KeyForm says how a field's scenario key is built from its stem.
type KeyForm int

const (
	Plain           KeyForm = iota // stem only
	Opp                            // stem + opportunity letter
	OppIndex                       // stem + opportunity letter + index
	PlainOnFirstOpp                // stem on opportunity 1, stem + letter on opportunity 2
)

type Field struct {
	Stem    string
	Form    KeyForm
	Index   int
	Default float64
	Conv    Conversion
	Source  Source
	Prec    int // legacy decimal places
}

// Key returns the scenario key for opportunity opp.
func (f Field) Key(opp int) string {
	switch f.Form {
	case Opp:
		return scenario.OppKey(f.Stem, opp)
	case OppIndex:
		return scenario.OppIndexKey(f.Stem, opp, f.Index)
	case PlainOnFirstOpp:
		if opp == 1 {
			return f.Stem
		}
		return scenario.OppKey(f.Stem, opp)
	}
	return f.Stem
}

// IsContext reports whether the field is taken from the run context rather
// than the scenario.
func (f Field) IsContext() bool { return f.Source != Lookup }

// Card is one card template: 1 to 4 fields.
type Card struct {
	Fields []Field
}

// SectionSpec is one pass. Per-opportunity sections repeat their cards for
// opportunity 1 and 2; opportunity 2 numbering continues after opportunity 1.
type SectionSpec struct {
	Section        domain.Section
	Base           int
	PerOpportunity bool
	Cards          []Card
}

// Number returns the card number of template i for opportunity opp.
func (s SectionSpec) Number(opp, i int) int {
	if !s.PerOpportunity {
		return s.Base + i
	}
	return s.Base + (opp-1)*len(s.Cards) + i
}

type VariantSpec struct {
	Variant  domain.Variant
	Sections []SectionSpec

	// IDColumn appends the 12-column card identifier to every line.
	IDColumn bool
	// SingleInput reads only the first mission input and aborts the run
	// when it cannot be opened.
	SingleInput bool
}

// Len is the number of cards one input contributes.
func (v *VariantSpec) Len() int {
	n := 0
	for _, s := range v.Sections {
		k := len(s.Cards)
		if s.PerOpportunity {
			k *= 2
		}
		n += k
	}
	return n
}

const DefaultVariant = domain.Punch

func Supported() []domain.Variant { return []domain.Variant{domain.Legacy, domain.Punch} }

// ForVariant returns the layout for v, falling back to the punch layout.
func ForVariant(v domain.Variant) (*VariantSpec, bool) {
	s, ok := specs[v]
	if !ok {
		s = specs[DefaultVariant]
	}
	return s, ok
}

var specs = map[domain.Variant]*VariantSpec{
	domain.Legacy: legacySpec(),
	domain.Punch:  punchSpec(),
}

func legacySpec() *VariantSpec {
	s := baseSpec(units{
		ccs:      "CCS",
		t2irForm: PlainOnFirstOpp,
		convert:  false,
		tli:      packedTLI,
	})
	s.Variant = domain.Legacy
	s.SingleInput = true
	return s
}

func punchSpec() *VariantSpec {
	s := baseSpec(units{
		ccs:      "COS",
		t2irForm: Opp,
		convert:  true,
		tli:      perTargetTLI,
	})
	s.Variant = domain.Punch
	s.IDColumn = true
	return s
}

// units carries the few points where the two layouts differ.
type units struct {
	ccs      string  // cutoff condition stem, without the LVDC_ prefix
	t2irForm KeyForm // second field of cards 463/467
	convert  bool    // SI to RTCC units
	tli      func(tliFields) []Card
}

// pick returns rtcc when converting to RTCC units, otherwise si.
func (u units) pick(si, rtcc Conversion) Conversion {
	if u.convert {
		return rtcc
	}
	return si
}

func day() Field { return Field{Stem: "DAY", Source: LaunchDay, Prec: -1, Conv: Identity} }
func opp() Field { return Field{Stem: "OPP", Source: Opportunity, Prec: -1, Conv: Identity} }

func lvdc(stem string, form KeyForm, index int, def float64, prec int, conv Conversion) Field {
	return Field{Stem: "LVDC_" + stem, Form: form, Index: index, Default: def, Conv: conv, Prec: prec}
}

// hx returns steering polynomial coefficient hx[i][j].
func hx(u units, i, j, prec int) Field {
	return lvdc(fmt.Sprintf("hx[%d][%d]", i, j), Plain, 0, 0.0, prec, u.pick(DegToRad, Poly(j)))
}

// TLITargets is the number of sub-targets per opportunity: index 0 plus
// seven pairs.
const TLITargets = 1 + 7*2

// tliFields builds the six fields of TLI sub-target idx.
type tliFields struct {
	tp, ccs, c3, en, ras, dec func(idx int, def float64) Field
}

// tliDefaults returns the defaults of sub-target idx; index 0 is flagged
// unset with -1.
func tliDefaults(idx int) (tp, rest float64) {
	if idx == 0 {
		return -1.0, -1.0
	}
	return 1000.0, 0.0
}

// packedTLI is the legacy packing, 23 cards per opportunity:
//
//	1       day, opp, TP0, CCS0
//	2       C3 0, EN0, RAS0, DEC0
//	3+3i    TP(2i+1), CCS(2i+1), C3(2i+1), EN(2i+1)
//	4+3i    RAS(2i+1), DEC(2i+1), TP(2i+2), CCS(2i+2)
//	5+3i    C3(2i+2), EN(2i+2), RAS(2i+2), DEC(2i+2)      i = 0..6
func packedTLI(f tliFields) []Card {
	tli := []Card{
		{Fields: []Field{day(), opp(), f.tp(0, -1.0), f.ccs(0, -1.0)}},
		{Fields: []Field{f.c3(0, -1.0), f.en(0, -1.0), f.ras(0, -1.0), f.dec(0, -1.0)}},
	}
	for i := 0; i < 7; i++ {
		a, b := 2*i+1, 2*i+2
		tli = append(tli,
			Card{Fields: []Field{f.tp(a, 1000.0), f.ccs(a, 0.0), f.c3(a, 0.0), f.en(a, 0.0)}},
			Card{Fields: []Field{f.ras(a, 0.0), f.dec(a, 0.0), f.tp(b, 1000.0), f.ccs(b, 0.0)}},
			Card{Fields: []Field{f.c3(b, 0.0), f.en(b, 0.0), f.ras(b, 0.0), f.dec(b, 0.0)}},
		)
	}
	return tli
}

// perTargetTLI gives every sub-target its own pair of records, 30 cards per
// opportunity:
//
//	1        day, opp, TP0, COS0
//	2        C3 0, EN0, RAS0, DEC0
//	2k+1     TP(k), COS(k)                   k = 1..14
//	2k+2     C3(k), EN(k), RAS(k), DEC(k)
func perTargetTLI(f tliFields) []Card {
	tli := make([]Card, 0, 2*TLITargets)
	for k := 0; k < TLITargets; k++ {
		tp, rest := tliDefaults(k)
		first := []Field{f.tp(k, tp), f.ccs(k, rest)}
		if k == 0 {
			first = append([]Field{day(), opp()}, first...)
		}
		tli = append(tli,
			Card{Fields: first},
			Card{Fields: []Field{f.c3(k, rest), f.en(k, rest), f.ras(k, rest), f.dec(k, rest)}},
		)
	}
	return tli
}

// baseSpec returns the card tables shared by both layouts; only the TLI
// packing differs.
//
// Cards 61-460 (punch) or 47-460 (legacy) would repeat the TLI block for the
// 2nd to 10th launch day and cards 469-540 the abort block; one file holds
// one launch day, so they are never written.
func baseSpec(u units) *VariantSpec {
	tli := u.tli(tliFields{
		tp:  func(idx int, def float64) Field { return lvdc("TP", OppIndex, idx, def, 3, u.pick(Identity, SecToHr)) },
		ccs: func(idx int, def float64) Field { return lvdc(u.ccs, OppIndex, idx, def, 7, Identity) },
		c3:  func(idx int, def float64) Field { return lvdc("C3", OppIndex, idx, def, 1, u.pick(Identity, Energy)) },
		en:  func(idx int, def float64) Field { return lvdc("EN", OppIndex, idx, def, 7, Identity) },
		ras: func(idx int, def float64) Field { return lvdc("RAS", OppIndex, idx, def, 7, u.pick(Identity, DegToRad)) },
		dec: func(idx int, def float64) Field { return lvdc("DEC", OppIndex, idx, def, 7, u.pick(Identity, DegToRad)) },
	})

	abort := []Card{
		// 461, 465
		{Fields: []Field{
			day(), opp(),
			lvdc("TST", Opp, 0, 15000.0, 3, u.pick(Identity, SecToHr)),
			lvdc("BETA", Opp, 0, 61.89975, 7, u.pick(Identity, DegToRad)),
		}},
		// 462, 466
		{Fields: []Field{
			lvdc("ALFTS", Opp, 0, 0.0, 7, u.pick(Identity, DegToRad)),
			lvdc("F", Opp, 0, 14.26968, 7, u.pick(Identity, DegToRad)),
			lvdc("RN", Opp, 0, 6575100.0, 1, u.pick(Identity, MToER)),
			lvdc("T3PR", Opp, 0, 310.8243, 4, u.pick(Identity, SecToHr)),
		}},
		// 463, 467
		{Fields: []Field{
			lvdc("TAU3R", Opp, 0, 0.0, 4, u.pick(Identity, SecToHr)),
			lvdc("T2IR", u.t2irForm, 0, 0.0, 2, u.pick(Identity, SecToHr)),
			lvdc("V_ex2R", Plain, 0, 4221.827032, 7, u.pick(Identity, MpsToERph)),
			lvdc("dotM_2R", Plain, 0, 215.2241, 7, u.pick(Identity, MassFlow)),
		}},
		// 464, 468
		{Fields: []Field{
			lvdc("DVBR", Opp, 0, 3.7, 7, u.pick(Identity, MpsToERph)),
			lvdc("tau2N", Plain, 0, 721.0, 7, u.pick(Identity, SecToHr)),
			lvdc("K_P1", Plain, 0, 0.0, 1, u.pick(Identity, DegToRad)),
			lvdc("K_Y1", Plain, 0, 0.0, 4, u.pick(Identity, DegToRad)),
		}},
	}

	t := func(stem string, def float64) Field { return lvdc(stem, Plain, 0, def, 3, u.pick(Identity, SecToHr)) }

	constants := []Card{
		// 541
		{Fields: []Field{
			day(),
			lvdc("T_LO", Plain, 0, 0.0, 3, u.pick(GRRToLiftoff, GRRToLiftoffHr)),
			lvdc("TETEO", Plain, 0, 0.0, 10, u.pick(Identity, DegToRad)),
			lvdc("omega_E", Plain, 0, 7.292107788e-5, 15, RatePerHr),
		}},
		// 542
		{Fields: []Field{
			lvdc("K_a1", Plain, 0, 0.0, 7, u.pick(Identity, Poly(0))),
			lvdc("K_a2", Plain, 0, 0.0, 7, u.pick(Identity, Poly(1))),
			lvdc("K_T3", Plain, 0, -.274, 7, Identity),
			t("t_DS0", 0.0),
		}},
		// 543
		{Fields: []Field{t("t_DS1", 10984.2), t("t_DS2", 16503.1), t("t_DS3", 0.0), hx(u, 0, 0, 10)}},
		// 544
		{Fields: []Field{hx(u, 0, 1, 10), hx(u, 0, 2, 10), hx(u, 0, 3, 10), hx(u, 0, 4, 10)}},
		// 545
		{Fields: []Field{t("t_D1", 0.0), t("t_SD1", 10984.2), hx(u, 1, 0, 7), hx(u, 1, 1, 7)}},
		// 546
		{Fields: []Field{hx(u, 1, 2, 10), hx(u, 1, 3, 10), hx(u, 1, 4, 10), t("t_D2", 10984.2)}},
		// 547
		{Fields: []Field{t("t_SD2", 5518.9), hx(u, 2, 0, 10), hx(u, 2, 1, 10), hx(u, 2, 2, 10)}},
		// 548
		{Fields: []Field{hx(u, 2, 3, 10), hx(u, 2, 4, 10), t("t_D3", 16503.1), t("t_SD3", 1233.6)}},
	}

	return &VariantSpec{
		Sections: []SectionSpec{
			{Section: domain.TLI, Base: 1, PerOpportunity: true, Cards: tli},
			{Section: domain.Abort, Base: 461, PerOpportunity: true, Cards: abort},
			{Section: domain.Constants, Base: 541, Cards: constants},
		},
	}
}
