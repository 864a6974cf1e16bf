// Package missions holds the mission parameter table: launch day, year, the
// scenario files to read and the deck file to write for each supported
// mission.
package missions

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/domain"
)

// ErrUnknownMission is returned for a mission ID the catalog does not hold.
var ErrUnknownMission = errors.New("unknown mission")

// Catalog is an in-memory mission table.
type Catalog struct {
	byID map[int]domain.Mission
}

func New(ms []domain.Mission) (*Catalog, error) {
	c := &Catalog{byID: make(map[int]domain.Mission, len(ms))}
	for _, m := range ms {
		if err := validate(m); err != nil {
			return nil, err
		}
		if _, dup := c.byID[m.ID]; dup {
			return nil, fmt.Errorf("mission %d listed twice", m.ID)
		}
		c.byID[m.ID] = m
	}
	return c, nil
}

func validate(m domain.Mission) error {
	switch {
	case m.LaunchDay < 1 || m.LaunchDay > 366:
		return fmt.Errorf("mission %d: launch day %d out of range", m.ID, m.LaunchDay)
	case m.Year < 1900:
		return fmt.Errorf("mission %d: year %d out of range", m.ID, m.Year)
	case len(m.Inputs) == 0:
		return fmt.Errorf("mission %d: no inputs", m.ID)
	case m.Output == "":
		return fmt.Errorf("mission %d: no output file", m.ID)
	}
	return nil
}

// Mission returns the entry for id, or ErrUnknownMission.
func (c *Catalog) Mission(_ context.Context, id int) (*domain.Mission, error) {
	m, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("mission %d: %w", id, ErrUnknownMission)
	}
	m.Inputs = append([]string(nil), m.Inputs...)
	return &m, nil
}

// Missions returns every entry ordered by ID.
func (c *Catalog) Missions(_ context.Context) ([]domain.Mission, error) {
	out := make([]domain.Mission, 0, len(c.byID))
	for _, m := range c.byID {
		m.Inputs = append([]string(nil), m.Inputs...)
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// missionFile is the layout of a missions.yaml override.
type missionFile struct {
	Missions []domain.Mission `yaml:"missions"`
}

// LoadYAML reads a mission table from a YAML file.
func LoadYAML(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("missions file: %w", err)
	}
	var f missionFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("missions file %s: %w", path, err)
	}
	if len(f.Missions) == 0 {
		return nil, fmt.Errorf("missions file %s: no missions", path)
	}
	return New(f.Missions)
}

// Builtin returns the mission table compiled into the converter.
func Builtin() *Catalog {
	c, err := New(builtin)
	if err != nil {
		panic(err)
	}
	return c
}

// BuiltinMissions returns a copy of the compiled-in table.
func BuiltinMissions() []domain.Mission {
	out := make([]domain.Mission, len(builtin))
	copy(out, builtin)
	return out
}

func apollo(id, day, year int, date string) domain.Mission {
	return domain.Mission{
		ID:        id,
		Name:      fmt.Sprintf("Apollo %d", id),
		LaunchDay: day,
		Year:      year,
		Inputs:    []string{fmt.Sprintf("Apollo %d - Launch.scn", id)},
		Output:    date + " TLI.txt",
	}
}

var builtin = []domain.Mission{
	apollo(8, 356, 1968, "1968-12-21"),
	apollo(10, 138, 1969, "1969-05-18"),
	apollo(11, 197, 1969, "1969-07-16"),
	apollo(12, 318, 1969, "1969-11-14"),
	apollo(13, 101, 1970, "1970-04-11"),
	apollo(14, 31, 1971, "1971-01-31"),
	apollo(15, 207, 1971, "1971-07-26"),
	apollo(16, 107, 1972, "1972-04-16"),
	apollo(17, 342, 1972, "1972-12-07"),
}
