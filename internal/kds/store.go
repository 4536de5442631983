package kds

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"staffplan/internal/metrics"
	"staffplan/internal/workforce"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS districts (
	district_id INTEGER PRIMARY KEY,
	name        TEXT NOT NULL,
	occupancy   REAL NOT NULL DEFAULT 0,
	score       REAL NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS summary (
	id            INTEGER PRIMARY KEY CHECK (id = 1),
	total_revenue TEXT NOT NULL,
	avg_occupancy TEXT NOT NULL,
	total_rooms   TEXT NOT NULL,
	total_staff   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS trends (
	district_id  INTEGER NOT NULL,
	seq          INTEGER NOT NULL,
	period       TEXT NOT NULL,
	revenue      REAL NOT NULL DEFAULT 0,
	occupancy    REAL NOT NULL DEFAULT 0,
	productivity REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (district_id, seq)
);
CREATE TABLE IF NOT EXISTS departments (
	district_id    INTEGER NOT NULL,
	name           TEXT NOT NULL,
	current_staff  INTEGER NOT NULL DEFAULT 0,
	baseline       INTEGER NOT NULL DEFAULT 0,
	normal_hours   REAL NOT NULL DEFAULT 0,
	overtime_hours REAL NOT NULL DEFAULT 0,
	turnover_rate  REAL NOT NULL DEFAULT 0,
	risk_label     TEXT NOT NULL DEFAULT '',
	weight         REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (district_id, name)
);`

// Store is a SQLite-backed provider, used when no upstream API is configured
// and as the target of the mock data generator.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore opens (and migrates) the SQLite database at path.
func OpenStore(path string) (*Store, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", absPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open KDS database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping KDS database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate KDS database: %w", err)
	}

	log.Debug().Str("path", absPath).Msg("Opened KDS store")
	return &Store{db: db, path: absPath}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the absolute database path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Districts(ctx context.Context) (out []District, err error) {
	defer func() { metrics.ObserveUpstream("districts", err) }()

	rows, err := s.db.QueryContext(ctx, `SELECT district_id, name, occupancy, score FROM districts ORDER BY district_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out = []District{}
	for rows.Next() {
		var d District
		if err := rows.Scan(&d.DistrictID, &d.Name, &d.Occupancy, &d.Score); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) Summary(ctx context.Context) (sum Summary, err error) {
	defer func() { metrics.ObserveUpstream("summary", err) }()

	row := s.db.QueryRowContext(ctx, `SELECT total_revenue, avg_occupancy, total_rooms, total_staff FROM summary WHERE id = 1`)
	err = row.Scan(&sum.TotalRevenue, &sum.AvgOccupancy, &sum.TotalRooms, &sum.TotalStaff)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultSummary(), nil
	}
	return sum, err
}

func (s *Store) Trends(ctx context.Context, districtID int, months int) (out []TrendPoint, err error) {
	defer func() { metrics.ObserveUpstream("trends", err) }()

	if err := ValidateHorizon(months); err != nil {
		return nil, err
	}
	if err := s.requireDistrict(ctx, districtID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT period, revenue, occupancy, productivity FROM (
			SELECT seq, period, revenue, occupancy, productivity FROM trends
			WHERE district_id = ? ORDER BY seq DESC LIMIT ?
		) ORDER BY seq ASC`, districtID, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out = []TrendPoint{}
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.Period, &p.Revenue, &p.Occupancy, &p.Productivity); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) Departments(ctx context.Context, districtID int) (out []workforce.Department, err error) {
	defer func() { metrics.ObserveUpstream("departments", err) }()

	if err := s.requireDistrict(ctx, districtID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, current_staff, baseline, normal_hours, overtime_hours, turnover_rate, risk_label, weight
		FROM departments WHERE district_id = ? ORDER BY rowid`, districtID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out = []workforce.Department{}
	for rows.Next() {
		var d workforce.Department
		if err := rows.Scan(&d.Name, &d.CurrentStaff, &d.BaselineRecommendation, &d.NormalHours,
			&d.OvertimeHours, &d.TurnoverRate, &d.RiskLabel, &d.Weight); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) requireDistrict(ctx context.Context, districtID int) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM districts WHERE district_id = ?`, districtID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("district %d: %w", districtID, ErrDistrictNotFound)
	}
	return err
}

// SeedData is a complete provider dataset.
type SeedData struct {
	Districts   []District
	Summary     Summary
	Trends      map[int][]TrendPoint
	Departments map[int][]workforce.Department
}

// Seed replaces the store contents with data in a single transaction.
func (s *Store) Seed(ctx context.Context, data SeedData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"districts", "summary", "trends", "departments"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, d := range data.Districts {
		if _, err := tx.ExecContext(ctx, `INSERT INTO districts (district_id, name, occupancy, score) VALUES (?, ?, ?, ?)`,
			d.DistrictID, d.Name, d.Occupancy, d.Score); err != nil {
			return fmt.Errorf("failed to insert district %d: %w", d.DistrictID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO summary (id, total_revenue, avg_occupancy, total_rooms, total_staff) VALUES (1, ?, ?, ?, ?)`,
		data.Summary.TotalRevenue, data.Summary.AvgOccupancy, data.Summary.TotalRooms, data.Summary.TotalStaff); err != nil {
		return fmt.Errorf("failed to insert summary: %w", err)
	}

	for districtID, points := range data.Trends {
		for i, p := range points {
			if _, err := tx.ExecContext(ctx, `INSERT INTO trends (district_id, seq, period, revenue, occupancy, productivity) VALUES (?, ?, ?, ?, ?, ?)`,
				districtID, i, p.Period, p.Revenue, p.Occupancy, p.Productivity); err != nil {
				return fmt.Errorf("failed to insert trend for district %d: %w", districtID, err)
			}
		}
	}

	for districtID, depts := range data.Departments {
		for _, d := range depts {
			if _, err := tx.ExecContext(ctx, `INSERT INTO departments (district_id, name, current_staff, baseline, normal_hours, overtime_hours, turnover_rate, risk_label, weight) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				districtID, d.Name, d.CurrentStaff, d.BaselineRecommendation, d.NormalHours, d.OvertimeHours, d.TurnoverRate, d.RiskLabel, d.Weight); err != nil {
				return fmt.Errorf("failed to insert department %s for district %d: %w", d.Name, districtID, err)
			}
		}
	}

	return tx.Commit()
}
