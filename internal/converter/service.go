// Package converter runs one mission conversion end to end: resolve the
// mission, read its scenarios, build and write the deck, then write any
// listing reports.
package converter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/adapters/deck"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/adapters/scenario"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/domain"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/logging"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/missions"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/ports"
)

// ErrUnknownMission is returned when the catalog has no entry for the
// requested mission. Callers treat it as a clean no-op.
var ErrUnknownMission = missions.ErrUnknownMission

// ReportTarget pairs a listing report with the file it is written to.
type ReportTarget struct {
	Path   string
	Report ports.DeckReport
}

type Service struct {
	Catalog   ports.MissionCatalog
	Generator ports.DeckGenerator
	Logger    *zap.Logger
	InputDir  string
	OutputDir string
	Reports   []ReportTarget
}

// Result describes a finished run.
type Result struct {
	Mission    domain.Mission
	Deck       *domain.Deck
	OutputPath string
	Skipped    []string // inputs that could not be read
	Defaulted  int      // lookups that fell back to a default
	Reports    []string // report files written
}

// singleInput is implemented by generators whose layout reads only the
// mission's first input.
type singleInput interface{ SingleInput() bool }

func (s *Service) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Run converts mission id. An unknown mission returns ErrUnknownMission
// before any file is touched. An input that cannot be read is skipped with a
// warning, unless the layout reads a single input, in which case the run
// fails with deck.ErrNoInput. Failing to create the output file is always an
// error.
func (s *Service) Run(ctx context.Context, id int) (*Result, error) {
	log := s.logger()

	m, err := s.Catalog.Mission(ctx, id)
	if err != nil {
		return nil, err
	}
	log = log.With(logging.Mission(m.ID, m.LaunchDay, m.Year)...)
	res := &Result{Mission: *m}

	single := false
	if si, ok := s.Generator.(singleInput); ok {
		single = si.SingleInput()
	}
	inputs := m.Inputs
	if single && len(inputs) > 1 {
		inputs = inputs[:1]
	}

	var sources []ports.NamedSource
	for _, in := range inputs {
		path := s.resolve(s.InputDir, in)
		tbl, err := scenario.Open(path)
		if err != nil {
			if single {
				return nil, fmt.Errorf("%w: %w", deck.ErrNoInput, err)
			}
			log.Warn("skipping unreadable input", zap.String("input", path), zap.Error(err))
			res.Skipped = append(res.Skipped, path)
			continue
		}
		log.Debug("scenario loaded", zap.String("input", path), zap.Int("keys", tbl.Len()))
		sources = append(sources, ports.NamedSource{Name: in, Source: tbl})
	}

	d, err := s.Generator.Build(ctx, m, sources)
	if err != nil {
		return nil, err
	}
	res.Deck = d
	for _, c := range d.Cards {
		for _, k := range c.Missing {
			res.Defaulted++
			log.Debug("key not found, using default",
				zap.String("key", k), zap.Int("card", c.Number), zap.String("input", c.Input))
		}
	}

	res.OutputPath = s.resolve(s.OutputDir, m.Output)
	if err := s.writeFile(res.OutputPath, func(f *os.File) error {
		return s.Generator.Generate(ctx, d, f)
	}); err != nil {
		return nil, fmt.Errorf("write deck: %w", err)
	}
	log.Info("deck written",
		zap.String("output", res.OutputPath),
		zap.String("variant", string(s.Generator.Variant())),
		zap.Int("cards", len(d.Cards)),
		zap.Int("defaulted", res.Defaulted),
		zap.Int("skipped", len(res.Skipped)))

	for _, r := range s.Reports {
		if r.Path == "" || r.Report == nil {
			continue
		}
		if err := s.writeFile(r.Path, func(f *os.File) error {
			return r.Report.Write(ctx, d, f)
		}); err != nil {
			return res, fmt.Errorf("%s report: %w", r.Report.Name(), err)
		}
		log.Info("report written", zap.String("format", r.Report.Name()), zap.String("path", r.Path))
		res.Reports = append(res.Reports, r.Path)
	}
	return res, nil
}

func (s *Service) resolve(dir, name string) string {
	if dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

func (s *Service) writeFile(path string, write func(*os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(f)
}

// IsUnknownMission reports whether err means the mission ID was not found.
func IsUnknownMission(err error) bool { return errors.Is(err, ErrUnknownMission) }
