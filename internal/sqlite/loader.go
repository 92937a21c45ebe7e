package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// jsonlTableMapping maps JSONL files to their SQLite tables and columns. Beds
// load before plantings.
var jsonlTableMapping = []struct {
	file    string
	table   string
	columns []string
}{
	{bedsJSONL, "beds", bedColumns},
	{plantingsJSONL, "plantings", plantingColumns},
}

// loadAllJSONL reads each JSONL file from dataDir into its SQLite table in a
// single transaction: either every file loads or the database stays empty.
// Malformed lines and unknown fields are ignored. Plantings whose bed is
// missing are dropped and counted separately from the loaded records.
func loadAllJSONL(db *sql.DB, dataDir string) (loaded, dropped int, err error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, mapping := range jsonlTableMapping {
		records, err := readJSONL(filepath.Join(dataDir, mapping.file))
		if err != nil {
			return 0, 0, fmt.Errorf("reading %s: %w", mapping.file, err)
		}
		if len(records) == 0 {
			continue
		}
		n, err := insertRecords(tx, mapping.table, mapping.columns, records)
		if err != nil {
			return 0, 0, fmt.Errorf("loading %s into %s: %w", mapping.file, mapping.table, err)
		}
		loaded += n
	}

	res, err := tx.Exec("DELETE FROM plantings WHERE bed_id NOT IN (SELECT bed_id FROM beds)")
	if err != nil {
		return 0, 0, fmt.Errorf("dropping orphaned plantings: %w", err)
	}
	orphans, err := res.RowsAffected()
	if err != nil {
		return 0, 0, fmt.Errorf("counting orphaned plantings: %w", err)
	}
	dropped = int(orphans)

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return loaded - dropped, dropped, nil
}

// insertRecords inserts parsed JSONL records into a table and returns how
// many rows were written. Only the listed columns are extracted; records that
// violate a constraint are skipped.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) (int, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		placeholders,
	)

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	n := 0
	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}
		args := make([]any, len(columns))
		for i, col := range columns {
			args[i] = obj[col]
		}
		if _, err := stmt.Exec(args...); err != nil {
			continue
		}
		n++
	}
	return n, nil
}
