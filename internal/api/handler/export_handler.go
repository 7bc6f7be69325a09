package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"lightcurve-export/internal/model"
	"lightcurve-export/internal/pipeline"
	"lightcurve-export/internal/store"
	"lightcurve-export/pkg/utils"
)

// Handler serves the export-job API.
type Handler struct {
	Outputs  *utils.OutputManager
	validate *validator.Validate
}

func New(outputs *utils.OutputManager) *Handler {
	return &Handler{Outputs: outputs, validate: validator.New()}
}

// CreateExport creates a new export job
// @Summary Create an export job
// @Description Create and start an asynchronous FITS-to-CSV export job
// @Tags exports
// @Accept json
// @Produce json
// @Param export body model.ExportJobSpec true "Export configuration"
// @Success 202 {object} map[string]interface{} "Export job created"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /exports [post]
func (h *Handler) CreateExport(w http.ResponseWriter, r *http.Request) {
	var spec model.ExportJobSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(spec); err != nil {
		http.Error(w, "Invalid export spec: "+err.Error(), http.StatusBadRequest)
		return
	}

	jobID := uuid.New().String()
	if err := store.SaveJob(jobID, spec); err != nil {
		http.Error(w, "Failed to save job", http.StatusInternalServerError)
		return
	}

	go h.runJob(jobID, spec)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":   "Export job created",
		"jobID":     jobID,
		"status":    model.StatusPending,
		"createdAt": time.Now().UTC(),
	})
}

// runJob executes one export job and persists its outcome. Each job owns
// its own table and writes into its own output directory, so jobs are safe
// to run concurrently.
func (h *Handler) runJob(jobID string, spec model.ExportJobSpec) {
	store.UpdateJobStatus(jobID, model.StatusRunning)

	input := utils.ResolvePath(spec.Path)
	segment := pipeline.DefaultSegment
	if spec.Segment != nil {
		segment = *spec.Segment
	}

	dest, err := h.Outputs.GetOutputFilePath(jobID, utils.ReplaceExt(filepath.Base(input), ".csv"))
	if err != nil {
		store.SaveJobError(jobID, err)
		store.UpdateJobStatus(jobID, model.StatusFailed)
		return
	}

	res, err := pipeline.Run(pipeline.Options{
		InputPath: input,
		DestPath:  dest,
		Segment:   segment,
		Overwrite: spec.Overwrite,
		ZeroPoint: spec.ZeroPoint,
	})
	for _, warn := range res.Warnings {
		slog.Warn("export warning", "job", jobID, "warning", warn)
		store.SaveJobWarning(jobID, warn)
	}
	if err != nil {
		slog.Error("export job failed", "job", jobID, "error", err)
		store.SaveJobError(jobID, err)
		store.UpdateJobStatus(jobID, model.StatusFailed)
		return
	}

	store.SaveExportResult(jobID, model.ExportOutcome{
		CSVPath:    res.CSVPath,
		RowsIn:     res.RowsIn,
		RowsOut:    res.RowsOut,
		ZeroPoint:  strconv.FormatFloat(res.ZeroPoint, 'g', -1, 64),
		ExportedAt: time.Now().UTC(),
	})
	store.UpdateJobStatus(jobID, model.StatusCompleted)
	slog.Info("export job completed", "job", jobID, "path", res.CSVPath, "rows", res.RowsOut)
}

// ListExports lists all export jobs
// @Summary List export jobs
// @Description Get all export jobs with their current status
// @Tags exports
// @Produce json
// @Success 200 {array} map[string]interface{} "List of export jobs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /exports [get]
func (h *Handler) ListExports(w http.ResponseWriter, r *http.Request) {
	jobs, err := store.ListJobs()
	if err != nil {
		http.Error(w, "Failed to fetch export jobs", http.StatusInternalServerError)
		return
	}
	if jobs == nil {
		jobs = []map[string]interface{}{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jobs)
}

// GetExport returns one export job
// @Summary Get export job
// @Description Retrieve a single export job's spec and status
// @Tags exports
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} map[string]interface{} "Export job"
// @Failure 404 {object} map[string]interface{} "Job not found"
// @Router /exports/{id} [get]
func (h *Handler) GetExport(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	job, err := store.GetJob(jobID)
	if err != nil {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

// GetExportErrors returns a job's errors
// @Summary Get export job errors
// @Tags exports
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} map[string]interface{} "Job errors"
// @Router /exports/{id}/errors [get]
func (h *Handler) GetExportErrors(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	jobErrors, err := store.GetJobErrors(jobID)
	if err != nil {
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"job_id": jobID,
		"errors": jobErrors,
		"count":  len(jobErrors),
	})
}

// GetExportWarnings returns a job's non-fatal advisories
// @Summary Get export job warnings
// @Tags exports
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} map[string]interface{} "Job warnings"
// @Router /exports/{id}/warnings [get]
func (h *Handler) GetExportWarnings(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	warnings, err := store.GetJobWarnings(jobID)
	if err != nil {
		http.Error(w, "Failed to retrieve warnings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"job_id":   jobID,
		"warnings": warnings,
		"count":    len(warnings),
	})
}

// GetExportResult returns what a completed job produced
// @Summary Get export job result
// @Tags exports
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} map[string]interface{} "Export result"
// @Failure 404 {object} map[string]interface{} "No result yet"
// @Router /exports/{id}/result [get]
func (h *Handler) GetExportResult(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	outcome, err := store.GetExportResult(jobID)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "No result for this job", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to retrieve result", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"job_id":   jobID,
		"result":   outcome,
		"download": h.Outputs.GetDownloadURL(jobID),
	})
}

// DownloadExport streams a job's produced CSV
// @Summary Download the produced CSV
// @Tags exports
// @Produce text/csv
// @Param id path string true "Job ID"
// @Success 200 {file} file "CSV file"
// @Failure 404 {object} map[string]interface{} "No result yet"
// @Router /exports/{id}/download [get]
func (h *Handler) DownloadExport(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	outcome, err := store.GetExportResult(jobID)
	if err != nil {
		http.Error(w, "No result for this job", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(outcome.CSVPath))
	http.ServeFile(w, r, outcome.CSVPath)
}
