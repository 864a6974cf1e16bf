package ports

import (
	"context"
	"io"

	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/domain"
)

// ParameterSource resolves named LVDC values from one scenario input.
type ParameterSource interface {
	// Lookup returns the value recorded for key, or def and false when the
	// key is absent or never carried a parsable value.
	Lookup(key string, def float64) (float64, bool)
}

// NamedSource pairs a parameter source with the input it was read from.
type NamedSource struct {
	Name   string
	Source ParameterSource
}

// MissionCatalog defines the mission parameter table.
type MissionCatalog interface {
	Mission(ctx context.Context, id int) (*domain.Mission, error)
	Missions(ctx context.Context) ([]domain.Mission, error)
}

// DeckGenerator defines the card generation port.
type DeckGenerator interface {
	// Build runs the three passes over sources and returns the card deck.
	Build(ctx context.Context, m *domain.Mission, sources []NamedSource) (*domain.Deck, error)

	// Generate writes the deck as newline-separated card lines.
	Generate(ctx context.Context, d *domain.Deck, w io.Writer) error

	Variant() domain.Variant
}

// DeckReport writes a human-readable listing of a deck.
type DeckReport interface {
	Name() string
	Write(ctx context.Context, d *domain.Deck, w io.Writer) error
}
