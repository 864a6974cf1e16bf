package domain

import "strings"

const DefaultMissionID = 15

// Variant selects the output card layout.
type Variant string

const (
	// Legacy is the compact printf-style layout with hand-tuned precision.
	Legacy Variant = "legacy"
	// Punch is the 80-column punch-card layout (MSC internal note 69-FM-171).
	Punch Variant = "punch"
)

// ParseVariant accepts "legacy" or "punch" in any case.
func ParseVariant(s string) (Variant, bool) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case Legacy:
		return Legacy, true
	case Punch:
		return Punch, true
	}
	return "", false
}

// Mission carries the launch parameters for one entry of the mission table.
type Mission struct {
	ID        int      `yaml:"id"`
	Name      string   `yaml:"name"`
	LaunchDay int      `yaml:"launch_day"` // day in year, 1-366
	Year      int      `yaml:"year"`       // e.g. 1971
	Inputs    []string `yaml:"inputs"`     // scenario files with LVDC data
	Output    string   `yaml:"output"`     // RTCC TLI parameters file
}

// Section is one of the three ordered passes over the inputs.
type Section int

const (
	TLI       Section = iota // translunar injection targeting, cards 1-460
	Abort                    // abort/targeting constants, cards 461-540
	Constants                // opportunity-independent guidance constants, cards 541-548
)

func (s Section) String() string {
	switch s {
	case TLI:
		return "TLI"
	case Abort:
		return "Abort"
	case Constants:
		return "Constants"
	}
	return "Unknown"
}

// OpportunityLetter maps opportunity 1 to 'A' and 2 to 'B'.
func OpportunityLetter(opp int) string {
	return string(rune('A' + opp - 1))
}

// RunContext is the mutable state of one generator run. Only the generator's
// pass loop writes to it.
type RunContext struct {
	Input       string
	LaunchDay   int
	Year        int
	Opportunity int
	Card        int
}

// Card is one rendered output record.
type Card struct {
	Number      int
	Section     Section
	Opportunity int
	Input       string
	Values      []float64
	Keys        []string // scenario key per field, empty for run context fields
	Fields      []string // rendered text per field, unpadded
	ID          string   // identifier column, punch variant only
	Line        string
	Missing     []string // keys that fell back to their default
}

// Deck is the complete ordered card sequence of a run.
type Deck struct {
	Mission Mission
	Variant Variant
	Cards   []Card
}

// Lines returns the rendered card lines in output order.
func (d *Deck) Lines() []string {
	out := make([]string, len(d.Cards))
	for i, c := range d.Cards {
		out[i] = c.Line
	}
	return out
}

// BySection returns the cards of one section in output order.
func (d *Deck) BySection(s Section) []Card {
	var out []Card
	for _, c := range d.Cards {
		if c.Section == s {
			out = append(out, c)
		}
	}
	return out
}
