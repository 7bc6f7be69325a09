package store

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"lightcurve-export/internal/model"
)

var db *sql.DB

// InitDB opens (or creates) the job database and its tables.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	jobTable := `
	CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		spec TEXT,
		status TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS job_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id TEXT,
		error_message TEXT,
		created_at DATETIME
	);
	`
	warningTable := `
	CREATE TABLE IF NOT EXISTS job_warnings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id TEXT,
		message TEXT,
		created_at DATETIME
	);
	`
	resultTable := `
	CREATE TABLE IF NOT EXISTS export_results (
		job_id TEXT PRIMARY KEY,
		csv_path TEXT,
		rows_in INTEGER,
		rows_out INTEGER,
		zero_point TEXT,
		exported_at DATETIME
	);
	`

	for _, stmt := range []string{jobTable, errorTable, warningTable, resultTable} {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the database handle.
func Close() error {
	if db == nil {
		return nil
	}
	return db.Close()
}

// SaveJob stores a new export job in the pending state.
func SaveJob(jobID string, spec model.ExportJobSpec) error {
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO jobs (id, spec, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		jobID, specJSON, model.StatusPending, now, now)
	return err
}

// UpdateJobStatus updates a job's lifecycle status.
func UpdateJobStatus(jobID string, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE jobs SET status = ?, updated_at = ? WHERE id = ?`, status, now, jobID)
	return err
}

// SaveJobError records an error for a job.
func SaveJobError(jobID string, err error) error {
	if err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO job_errors (job_id, error_message, created_at) VALUES (?, ?, ?)`,
		jobID, err.Error(), now)
	return e
}

// SaveJobWarning records a non-fatal advisory for a job.
func SaveJobWarning(jobID string, message string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO job_warnings (job_id, message, created_at) VALUES (?, ?, ?)`,
		jobID, message, now)
	return err
}

// SaveExportResult stores what a completed job produced.
func SaveExportResult(jobID string, outcome model.ExportOutcome) error {
	_, err := db.Exec(`INSERT OR REPLACE INTO export_results (job_id, csv_path, rows_in, rows_out, zero_point, exported_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		jobID, outcome.CSVPath, outcome.RowsIn, outcome.RowsOut, outcome.ZeroPoint, outcome.ExportedAt)
	return err
}

// ListJobs returns all jobs with basic info, newest first.
func ListJobs() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, status, created_at, updated_at FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []map[string]interface{}
	for rows.Next() {
		var id, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, map[string]interface{}{
			"id":        id,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return jobs, rows.Err()
}

// GetJob fetches a job's full spec and status.
func GetJob(jobID string) (map[string]interface{}, error) {
	var specJSON string
	var status string
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`SELECT spec, status, created_at, updated_at FROM jobs WHERE id = ?`, jobID).
		Scan(&specJSON, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var spec model.ExportJobSpec
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":        jobID,
		"spec":      spec,
		"status":    status,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}, nil
}

// GetJobErrors returns the errors recorded for a job.
func GetJobErrors(jobID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT error_message, created_at FROM job_errors WHERE job_id = ? ORDER BY id`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]interface{}
	for rows.Next() {
		var msg string
		var createdAt time.Time
		if err := rows.Scan(&msg, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, map[string]interface{}{
			"message":   msg,
			"createdAt": createdAt,
		})
	}
	return out, rows.Err()
}

// GetJobWarnings returns the advisories recorded for a job.
func GetJobWarnings(jobID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT message, created_at FROM job_warnings WHERE job_id = ? ORDER BY id`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]interface{}
	for rows.Next() {
		var msg string
		var createdAt time.Time
		if err := rows.Scan(&msg, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, map[string]interface{}{
			"message":   msg,
			"createdAt": createdAt,
		})
	}
	return out, rows.Err()
}

// GetExportResult returns what a job produced, or sql.ErrNoRows.
func GetExportResult(jobID string) (*model.ExportOutcome, error) {
	var outcome model.ExportOutcome
	err := db.QueryRow(`SELECT csv_path, rows_in, rows_out, zero_point, exported_at FROM export_results WHERE job_id = ?`, jobID).
		Scan(&outcome.CSVPath, &outcome.RowsIn, &outcome.RowsOut, &outcome.ZeroPoint, &outcome.ExportedAt)
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}
