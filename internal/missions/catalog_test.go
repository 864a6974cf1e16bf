package missions_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/domain"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/missions"
)

func TestBuiltin_Apollo15(t *testing.T) {
	m, err := missions.Builtin().Mission(context.Background(), 15)
	require.NoError(t, err)
	assert.Equal(t, 207, m.LaunchDay)
	assert.Equal(t, 1971, m.Year)
	assert.Equal(t, []string{"Apollo 15 - Launch.scn"}, m.Inputs)
	assert.Equal(t, "1971-07-26 TLI.txt", m.Output)
}

func TestBuiltin_DaysMatchDates(t *testing.T) {
	ms, err := missions.Builtin().Missions(context.Background())
	require.NoError(t, err)
	require.Len(t, ms, 9)
	for _, m := range ms {
		date, err := time.Parse("2006-01-02", m.Output[:10])
		require.NoError(t, err, m.Name)
		assert.Equal(t, date.YearDay(), m.LaunchDay, m.Name)
		assert.Equal(t, date.Year(), m.Year, m.Name)
	}
}

func TestBuiltin_SortedByID(t *testing.T) {
	ms, _ := missions.Builtin().Missions(context.Background())
	var ids []int
	for _, m := range ms {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []int{8, 10, 11, 12, 13, 14, 15, 16, 17}, ids)
}

func TestMission_Unknown(t *testing.T) {
	_, err := missions.Builtin().Mission(context.Background(), 9)
	assert.ErrorIs(t, err, missions.ErrUnknownMission)
}

func TestMission_ReturnsCopy(t *testing.T) {
	c := missions.Builtin()
	m, _ := c.Mission(context.Background(), 11)
	m.Inputs[0] = "changed"
	again, _ := c.Mission(context.Background(), 11)
	assert.Equal(t, "Apollo 11 - Launch.scn", again.Inputs[0])
}

func TestNew_Rejects(t *testing.T) {
	good := domain.Mission{ID: 1, LaunchDay: 10, Year: 1970, Inputs: []string{"a"}, Output: "b"}
	cases := map[string]func(m *domain.Mission){
		"day zero":  func(m *domain.Mission) { m.LaunchDay = 0 },
		"day 367":   func(m *domain.Mission) { m.LaunchDay = 367 },
		"no inputs": func(m *domain.Mission) { m.Inputs = nil },
		"no output": func(m *domain.Mission) { m.Output = "" },
		"bad year":  func(m *domain.Mission) { m.Year = 71 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			m := good
			mutate(&m)
			_, err := missions.New([]domain.Mission{m})
			assert.Error(t, err)
		})
	}
	_, err := missions.New([]domain.Mission{good, good})
	assert.Error(t, err, "duplicate id")
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missions.yaml")
	doc := `missions:
  - id: 15
    name: Apollo 15 (two launch windows)
    launch_day: 207
    year: 1971
    inputs:
      - "Apollo 15 - Launch.scn"
      - "Apollo 15 - Launch B.scn"
    output: "1971-07-26 TLI.txt"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := missions.LoadYAML(path)
	require.NoError(t, err)
	m, err := c.Mission(context.Background(), 15)
	require.NoError(t, err)
	assert.Equal(t, "Apollo 15 (two launch windows)", m.Name)
	assert.Len(t, m.Inputs, 2)

	_, err = c.Mission(context.Background(), 8)
	assert.ErrorIs(t, err, missions.ErrUnknownMission)
}

func TestLoadYAML_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := missions.LoadYAML(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("missions: []\n"), 0o644))
	_, err = missions.LoadYAML(empty)
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("missions: {"), 0o644))
	_, err = missions.LoadYAML(bad)
	assert.Error(t, err)
}
