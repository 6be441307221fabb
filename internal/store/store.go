package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/wallmap/internal/batch"
	"github.com/banshee-data/wallmap/internal/geom"
	"github.com/banshee-data/wallmap/internal/mapping"
	"github.com/banshee-data/wallmap/internal/monitoring"
	"github.com/banshee-data/wallmap/internal/timeutil"
	"github.com/banshee-data/wallmap/internal/wall"
)

// ErrRunNotFound is returned by LoadRun for an unknown run id.
var ErrRunNotFound = errors.New("store: run not found")

// Store is a SQLite-backed run history.
type Store struct {
	db    *sql.DB
	clock timeutil.Clock
}

// RunSummary is one row of ListRuns.
type RunSummary struct {
	RunID       string    `json:"run_id"`
	CreatedAt   time.Time `json:"created_at"`
	Elevation   float64   `json:"elevation"`
	CenterLines int       `json:"center_lines"`
	Unmapped    int       `json:"unmapped"`
}

// Open opens (creating if needed) the database at path and migrates it to
// the latest schema.
func Open(path string) (*Store, error) {
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}
	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, clock: timeutil.RealClock{}}, nil
}

// SetClock replaces the clock that stamps saved runs.
func (s *Store) SetClock(c timeutil.Clock) { s.clock = c }

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// SchemaVersion reports the applied migration version.
func (s *Store) SchemaVersion() (uint, bool, error) { return schemaVersion(s.db) }

// SaveRun writes res in a single transaction and returns its run id. An
// empty res.RunID is replaced by a fresh uuid.
func (s *Store) SaveRun(ctx context.Context, res *batch.Result) (string, error) {
	if res.RunID == "" {
		res.RunID = uuid.New().String()
	}
	stats, err := json.Marshal(res.Stats)
	if err != nil {
		return "", fmt.Errorf("encode stats: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			monitoring.Logf("warning: failed to rollback transaction: %v", err)
		}
	}()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, created_at, elevation, stats_json, center_lines, unmapped)
		VALUES (?, ?, ?, ?, ?, ?)`,
		res.RunID, s.clock.Now().UnixNano(), res.Elevation, string(stats),
		len(res.CenterLines), countUnmapped(res.Walls),
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for i, cl := range res.CenterLines {
		handles, err := json.Marshal(cl.SourceHandles)
		if err != nil {
			return "", fmt.Errorf("encode handles: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO center_lines (
				run_id, ordinal, unique_id, start_x, start_y, end_x, end_y,
				thickness, wall_type, source_handles_json
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			res.RunID, i, cl.UniqueID, cl.Start.X, cl.Start.Y, cl.End.X, cl.End.Y,
			cl.Thickness, cl.WallType, string(handles),
		); err != nil {
			return "", fmt.Errorf("insert center line %d: %w", i, err)
		}
	}

	for wi, w := range res.Walls {
		for ri, r := range w.Records {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO mapping_records (
					run_id, wall_ordinal, ordinal, frame_name, coverage,
					start_distance, end_distance, frame_length, covered_length, wall_offset
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				res.RunID, wi, ri, r.FrameName, r.Coverage.String(),
				r.StartDistance, r.EndDistance, r.FrameLength, r.CoveredLength, r.WallOffset,
			); err != nil {
				return "", fmt.Errorf("insert mapping record %d/%d: %w", wi, ri, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return res.RunID, nil
}

// LoadRun reads a run back into a batch.Result. Walls are rebuilt from
// the stored centerlines in their original order.
func (s *Store) LoadRun(ctx context.Context, runID string) (*batch.Result, error) {
	res := &batch.Result{RunID: runID}
	var stats string
	err := s.db.QueryRowContext(ctx,
		`SELECT elevation, stats_json FROM runs WHERE run_id = ?`, runID,
	).Scan(&res.Elevation, &stats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	if err := json.Unmarshal([]byte(stats), &res.Stats); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}

	if err := s.loadCenterLines(ctx, res); err != nil {
		return nil, err
	}
	if err := s.loadRecords(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) loadCenterLines(ctx context.Context, res *batch.Result) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT unique_id, start_x, start_y, end_x, end_y, thickness, wall_type, source_handles_json
		FROM center_lines
		WHERE run_id = ?
		ORDER BY ordinal`, res.RunID)
	if err != nil {
		return fmt.Errorf("query center lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cl         wall.CenterLine
			sx, sy     float64
			ex, ey     float64
			handlesStr string
		)
		if err := rows.Scan(&cl.UniqueID, &sx, &sy, &ex, &ey, &cl.Thickness, &cl.WallType, &handlesStr); err != nil {
			return fmt.Errorf("scan center line: %w", err)
		}
		if err := json.Unmarshal([]byte(handlesStr), &cl.SourceHandles); err != nil {
			return fmt.Errorf("decode handles: %w", err)
		}
		cl.LineSegment2D = geom.LineSegment2D{Start: geom.Pt(sx, sy), End: geom.Pt(ex, ey)}
		cl.Active = true
		res.CenterLines = append(res.CenterLines, cl)
		res.Walls = append(res.Walls, batch.WallMapping{UniqueID: cl.UniqueID, Length: cl.Length()})
	}
	return rows.Err()
}

func (s *Store) loadRecords(ctx context.Context, res *batch.Result) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT wall_ordinal, frame_name, coverage,
		       start_distance, end_distance, frame_length, covered_length, wall_offset
		FROM mapping_records
		WHERE run_id = ?
		ORDER BY wall_ordinal, ordinal`, res.RunID)
	if err != nil {
		return fmt.Errorf("query mapping records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			wi       int
			r        mapping.Record
			coverage string
		)
		if err := rows.Scan(&wi, &r.FrameName, &coverage,
			&r.StartDistance, &r.EndDistance, &r.FrameLength, &r.CoveredLength, &r.WallOffset); err != nil {
			return fmt.Errorf("scan mapping record: %w", err)
		}
		if r.Coverage, err = mapping.ParseCoverage(coverage); err != nil {
			return fmt.Errorf("decode coverage: %w", err)
		}
		if wi < 0 || wi >= len(res.Walls) {
			return fmt.Errorf("mapping record references missing wall %d", wi)
		}
		res.Walls[wi].Records = append(res.Walls[wi].Records, r)
	}
	return rows.Err()
}

// ListRuns returns the newest runs first. A non-positive limit returns
// every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, created_at, elevation, center_lines, unmapped
		FROM runs
		ORDER BY created_at DESC, run_id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			rs      RunSummary
			created int64
		)
		if err := rows.Scan(&rs.RunID, &created, &rs.Elevation, &rs.CenterLines, &rs.Unmapped); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rs.CreatedAt = time.Unix(0, created)
		out = append(out, rs)
	}
	return out, rows.Err()
}

// DeleteRun removes a run and, through the cascades, its centerlines and
// records.
func (s *Store) DeleteRun(ctx context.Context, runID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

func countUnmapped(walls []batch.WallMapping) int {
	n := 0
	for _, w := range walls {
		if w.Unmapped() {
			n++
		}
	}
	return n
}
