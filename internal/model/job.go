package model

import "time"

// Job lifecycle statuses, persisted by the store.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ExportJobSpec is the payload of POST /api/v1/exports: one FITS file in,
// one CSV out.
type ExportJobSpec struct {
	Path      string   `json:"path" validate:"required"`
	Segment   *int     `json:"segment,omitempty" validate:"omitempty,gte=0"` // table segment index, default 1
	Overwrite bool     `json:"overwrite"`
	ZeroPoint *float64 `json:"zeroPoint,omitempty"` // overrides the file's reference magnitude
}

// ExportOutcome records what a completed export produced. ZeroPoint is kept
// as a formatted string so non-finite values survive JSON encoding.
type ExportOutcome struct {
	CSVPath    string    `json:"csv_path"`
	RowsIn     int       `json:"rows_in"`
	RowsOut    int       `json:"rows_out"`
	ZeroPoint  string    `json:"zero_point"`
	ExportedAt time.Time `json:"exported_at"`
}
