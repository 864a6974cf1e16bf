package domain_test

import (
	"testing"

	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/domain"
)

func TestParseVariant(t *testing.T) {
	cases := []struct {
		in   string
		want domain.Variant
		ok   bool
	}{
		{"legacy", domain.Legacy, true},
		{" PUNCH ", domain.Punch, true},
		{"Punch", domain.Punch, true},
		{"", "", false},
		{"cards", "", false},
	}
	for _, c := range cases {
		got, ok := domain.ParseVariant(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseVariant(%q) = %q, %v; want %q, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestOpportunityLetter(t *testing.T) {
	if got := domain.OpportunityLetter(1); got != "A" {
		t.Errorf("opp 1 = %q", got)
	}
	if got := domain.OpportunityLetter(2); got != "B" {
		t.Errorf("opp 2 = %q", got)
	}
}

func TestDeck_LinesAndSections(t *testing.T) {
	d := &domain.Deck{Cards: []domain.Card{
		{Number: 1, Section: domain.TLI, Line: "a"},
		{Number: 461, Section: domain.Abort, Line: "b"},
		{Number: 2, Section: domain.TLI, Line: "c"},
	}}
	lines := d.Lines()
	if len(lines) != 3 || lines[0] != "a" || lines[2] != "c" {
		t.Errorf("Lines() = %q", lines)
	}
	tli := d.BySection(domain.TLI)
	if len(tli) != 2 || tli[1].Number != 2 {
		t.Errorf("BySection(TLI) = %+v", tli)
	}
	if n := len(d.BySection(domain.Constants)); n != 0 {
		t.Errorf("BySection(Constants) has %d cards", n)
	}
	if domain.Abort.String() != "Abort" || domain.Section(9).String() != "Unknown" {
		t.Error("Section.String")
	}
}
