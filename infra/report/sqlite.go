package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	corereport "github.com/kilianp07/prosumption/core/report"
)

// SQLiteConfig configures the SQLite store.
type SQLiteConfig struct {
	Path string `json:"path"`
}

// SQLiteStore persists runs and their hourly derived values. Missing values
// are stored as NULL.
type SQLiteStore struct {
	db *sql.DB
}

// HourlyRecord is one stored hourly row.
type HourlyRecord struct {
	RunID     string
	Row       int
	HourUTC   time.Time
	HourDK    string
	PriceArea string
	// Values holds the derived columns; nil marks a missing value.
	Values map[string]*float64
}

// NewSQLiteStore opens or creates the database and ensures the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "prosumption.db"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS runs (
        run_id TEXT PRIMARY KEY,
        source TEXT,
        generated_at INTEGER,
        rows INTEGER,
        energyconsumption_sum REAL,
        solarandwind_sum REAL,
        scaling_factor REAL
    );
    CREATE TABLE IF NOT EXISTS hourly (
        run_id TEXT,
        row INTEGER,
        hour_utc INTEGER,
        hour_dk TEXT,
        price_area TEXT,
        totalwind REAL,
        solarandwind REAL,
        energyconsumption REAL,
        prosumption_before_scale REAL,
        scaled_solarandwind REAL,
        PRIMARY KEY(run_id, row)
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Report stores the run and its rows in a single transaction.
func (s *SQLiteStore) Report(ctx context.Context, res corereport.Result) error {
	t, err := exportTable(res)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO runs
        (run_id, source, generated_at, rows, energyconsumption_sum, solarandwind_sum, scaling_factor)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.RunID, res.Source, res.GeneratedAt.Unix(), t.Len(),
		nullable(res.Totals.EnergyConsumptionSum), nullable(res.Totals.SolarAndWindSum),
		nullable(res.Totals.ScalingFactor)); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO hourly
        (run_id, row, hour_utc, hour_dk, price_area, totalwind, solarandwind,
         energyconsumption, prosumption_before_scale, scaled_solarandwind)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()
	for i := 0; i < t.Len(); i++ {
		args := []any{res.RunID, i, t.HourUTC[i].Unix(), t.HourDK[i].Format("2006-01-02 15:04"), t.PriceArea[i]}
		for j := range t.Columns {
			args = append(args, nullable(t.Values[j][i]))
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Hourly returns the stored rows of a run ordered by row index.
func (s *SQLiteStore) Hourly(ctx context.Context, runID string) ([]HourlyRecord, error) {
	cols := exportColumns()
	rows, err := s.db.QueryContext(ctx, `SELECT row, hour_utc, hour_dk, price_area, totalwind,
        solarandwind, energyconsumption, prosumption_before_scale, scaled_solarandwind
        FROM hourly WHERE run_id = ? ORDER BY row`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []HourlyRecord
	for rows.Next() {
		rec := HourlyRecord{RunID: runID, Values: make(map[string]*float64, len(cols))}
		var ts int64
		vals := make([]sql.NullFloat64, len(cols))
		dest := []any{&rec.Row, &ts, &rec.HourDK, &rec.PriceArea}
		for i := range vals {
			dest = append(dest, &vals[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		rec.HourUTC = time.Unix(ts, 0).UTC()
		for i, c := range cols {
			if vals[i].Valid {
				v := vals[i].Float64
				rec.Values[c] = &v
			} else {
				rec.Values[c] = nil
			}
		}
		res = append(res, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// ScalingFactor returns the stored factor of a run; ok is false when it was
// missing.
func (s *SQLiteStore) ScalingFactor(ctx context.Context, runID string) (float64, bool, error) {
	var f sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `SELECT scaling_factor FROM runs WHERE run_id = ?`, runID).Scan(&f)
	if err != nil {
		return 0, false, err
	}
	return f.Float64, f.Valid, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
