package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/domain"
	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/missions"
)

// Repository is a mission catalog kept in a SQLite database, so several
// converter installations can share one mission table.
type Repository struct {
	db *sql.DB
}

// New opens the SQLite database. Call Migrate before the first use of a new
// file.
func New(dsn string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error { return r.db.Close() }

const schema = `
CREATE TABLE IF NOT EXISTS missions (
	id          INTEGER PRIMARY KEY,
	name        TEXT    NOT NULL DEFAULT '',
	launch_day  INTEGER NOT NULL,
	year        INTEGER NOT NULL,
	output      TEXT    NOT NULL,
	updated_at  DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS mission_inputs (
	mission_id  INTEGER NOT NULL REFERENCES missions(id) ON DELETE CASCADE,
	position    INTEGER NOT NULL,
	path        TEXT    NOT NULL,
	PRIMARY KEY (mission_id, position)
);`

// Migrate creates the catalog tables if they do not exist.
func (r *Repository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// ── Missions ──────────────────────────────────────────────────────────────────

// Seed inserts or replaces every mission in ms, inputs included, in one
// transaction.
func (r *Repository) Seed(ctx context.Context, ms []domain.Mission) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now()
	for _, m := range ms {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO missions (id, name, launch_day, year, output, updated_at)
			VALUES (?,?,?,?,?,?)
			ON CONFLICT(id) DO UPDATE SET
				name=excluded.name, launch_day=excluded.launch_day,
				year=excluded.year, output=excluded.output,
				updated_at=excluded.updated_at`,
			m.ID, m.Name, m.LaunchDay, m.Year, m.Output, now,
		); err != nil {
			return fmt.Errorf("seed mission %d: %w", m.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM mission_inputs WHERE mission_id=?`, m.ID); err != nil {
			return err
		}
		for i, in := range m.Inputs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO mission_inputs (mission_id, position, path) VALUES (?,?,?)`,
				m.ID, i, in,
			); err != nil {
				return fmt.Errorf("seed mission %d input %d: %w", m.ID, i, err)
			}
		}
	}
	return tx.Commit()
}

// Mission returns the mission with the given ID; a missing row is reported
// as missions.ErrUnknownMission.
func (r *Repository) Mission(ctx context.Context, id int) (*domain.Mission, error) {
	m := &domain.Mission{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, launch_day, year, output
		FROM missions WHERE id=?`, id).Scan(
		&m.ID, &m.Name, &m.LaunchDay, &m.Year, &m.Output,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("mission %d: %w", id, missions.ErrUnknownMission)
	}
	if err != nil {
		return nil, err
	}
	if m.Inputs, err = r.inputs(ctx, id); err != nil {
		return nil, err
	}
	return m, nil
}

// Missions returns every mission ordered by ID.
func (r *Repository) Missions(ctx context.Context) ([]domain.Mission, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, launch_day, year, output
		FROM missions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	var out []domain.Mission
	for rows.Next() {
		var m domain.Mission
		if err := rows.Scan(&m.ID, &m.Name, &m.LaunchDay, &m.Year, &m.Output); err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Inputs, err = r.inputs(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Repository) inputs(ctx context.Context, id int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT path FROM mission_inputs WHERE mission_id=? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
