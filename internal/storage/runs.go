package storage

import (
	"database/sql"
	"time"

	"jca/internal/model"
	"jca/internal/snapshot"
)

// RunRecord summarizes one persisted analysis run
type RunRecord struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	FactsPath  string    `json:"factsPath,omitempty"`
	Classes    int       `json:"classes"`
	Methods    int       `json:"methods"`
	CallSites  int       `json:"callSites"`
	Resolved   int       `json:"resolved"`
	Unresolved int       `json:"unresolved"`
	Ambiguous  int       `json:"ambiguous"`
	Edges      int       `json:"edges"`
	Cycles     int       `json:"cycles"`
}

// SaveRun persists a snapshot: the run row, every metric value, and every
// diagnostic, in one transaction
func (db *DB) SaveRun(snap *snapshot.Snapshot, factsPath string) error {
	resolved, unresolved, ambiguous := 0, 0, 0
	for _, call := range snap.ResolvedCalls() {
		switch call.Status {
		case model.StatusResolved:
			resolved++
		case model.StatusUnresolved:
			unresolved++
		case model.StatusAmbiguous:
			ambiguous++
		}
	}

	return db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO runs (
				id, created_at, facts_path, classes, methods, call_sites,
				resolved, unresolved, ambiguous, edges, cycles
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			snap.RunID(),
			snap.CreatedAt().Format(time.RFC3339),
			factsPath,
			snap.Catalog().ClassCount(),
			snap.Catalog().MethodCount(),
			len(snap.ResolvedCalls()),
			resolved, unresolved, ambiguous,
			snap.Graph().EdgeCount(),
			len(snap.Graph().FindCycles()),
		)
		if err != nil {
			return err
		}

		valueStmt, err := tx.Prepare(`
			INSERT INTO metric_values (run_id, scope, metric, value)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer valueStmt.Close()

		for _, v := range snap.Metrics().All() {
			if _, err := valueStmt.Exec(snap.RunID(), v.Scope, v.Metric, v.Value); err != nil {
				return err
			}
		}

		diagStmt, err := tx.Prepare(`
			INSERT INTO diagnostics (run_id, code, message, file, line)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer diagStmt.Close()

		for _, d := range snap.Diagnostics() {
			if _, err := diagStmt.Exec(snap.RunID(), d.Code, d.Message, d.File, d.Line); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListRuns returns the most recent runs, newest first
func (db *DB) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.conn.Query(`
		SELECT id, created_at, facts_path, classes, methods, call_sites,
		       resolved, unresolved, ambiguous, edges, cycles
		FROM runs
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var createdAt string
		if err := rows.Scan(
			&rec.ID, &createdAt, &rec.FactsPath, &rec.Classes, &rec.Methods,
			&rec.CallSites, &rec.Resolved, &rec.Unresolved, &rec.Ambiguous,
			&rec.Edges, &rec.Cycles,
		); err != nil {
			return nil, err
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MetricHistory returns one scope's metric value across runs, newest first
func (db *DB) MetricHistory(scope, metric string, limit int) ([]float64, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.conn.Query(`
		SELECT mv.value
		FROM metric_values mv
		JOIN runs r ON r.id = mv.run_id
		WHERE mv.scope = ? AND mv.metric = ?
		ORDER BY r.created_at DESC
		LIMIT ?
	`, scope, metric, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
