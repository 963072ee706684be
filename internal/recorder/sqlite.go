package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad-hoc readers don't block the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS run_history (
			id                    INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp             INTEGER NOT NULL,
			symbol                TEXT NOT NULL,
			period                TEXT,
			interval              TEXT,
			sma_window            INTEGER,
			rows                  INTEGER,
			start_date            TEXT,
			end_date              TEXT,
			start_price           REAL,
			end_price             REAL,
			total_return_pct      REAL,
			daily_return_mean_pct REAL,
			daily_return_std_pct  REAL,
			min_price             REAL,
			max_price             REAL,
			csv_path              TEXT,
			chart_path            TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_ts ON run_history(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_run_symbol ON run_history(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts one run_history row. NaN statistics are stored as NULL.
func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := rec.Summary
	_, err := r.db.Exec(`INSERT INTO run_history
		(timestamp, symbol, period, interval, sma_window,
		 rows, start_date, end_date,
		 start_price, end_price, total_return_pct,
		 daily_return_mean_pct, daily_return_std_pct,
		 min_price, max_price, csv_path, chart_path)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Symbol, rec.Period, rec.Interval, rec.Window,
		s.Rows, s.StartDate, s.EndDate,
		nullable(s.StartPrice), nullable(s.EndPrice), nullable(s.TotalReturnPct),
		nullable(s.DailyReturnMeanPct), nullable(s.DailyReturnStdPct),
		nullable(s.MinPrice), nullable(s.MaxPrice),
		rec.CSVPath, rec.ChartPath,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

// nullable maps NaN to a SQL NULL; drivers reject raw NaN values.
func nullable(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}
