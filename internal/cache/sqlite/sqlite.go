// Package sqlite keeps a local history of power-cycle runs so a failed
// cycle can be diagnosed after the fact without re-running it. Writes
// are best-effort; a broken history file never fails a cycle.
package sqlite

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const TABLE_NAME = "pcycle_run_history"

// RunRecord is one PDU entry's outcome within a cycle run.
type RunRecord struct {
	System    string    `db:"system" json:"system"`
	Host      string    `db:"host" json:"host"`
	Vendor    string    `db:"vendor" json:"vendor"`
	Outlets   string    `db:"outlets" json:"outlets"`
	Outcome   string    `db:"outcome" json:"outcome"`
	Detail    string    `db:"detail" json:"detail,omitempty"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}

func CreateRunHistoryIfNotExists(path string) (*sqlx.DB, error) {
	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		system		TEXT NOT NULL,
		host		TEXT NOT NULL,
		vendor		TEXT,
		outlets		TEXT,
		outcome		TEXT NOT NULL,
		detail		TEXT,
		timestamp	TIMESTAMP
	);
	`, TABLE_NAME)
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	db.MustExec(schema)
	return db, nil
}

// InsertRunRecords appends the outcome of one run to the history file,
// creating it first if needed.
func InsertRunRecords(path string, records ...RunRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to insert")
	}

	db, err := CreateRunHistoryIfNotExists(path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx := db.MustBegin()
	for _, record := range records {
		sql := fmt.Sprintf(`INSERT INTO %s (system, host, vendor, outlets, outcome, detail, timestamp)
		VALUES (:system, :host, :vendor, :outlets, :outcome, :detail, :timestamp);`, TABLE_NAME)
		if _, err := tx.NamedExec(sql, &record); err != nil {
			return fmt.Errorf("failed to insert run record: %v", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}
	return nil
}

// GetRunRecords returns the recorded history, newest first.
func GetRunRecords(path string) ([]RunRecord, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	defer db.Close()

	records := []RunRecord{}
	err = db.Select(&records, fmt.Sprintf("SELECT * FROM %s ORDER BY timestamp DESC;", TABLE_NAME))
	if err != nil {
		return nil, fmt.Errorf("failed to query run history: %v", err)
	}
	return records, nil
}
