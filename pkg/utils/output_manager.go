package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutputManager organizes per-job output files under one base directory so
// concurrent export jobs never write over each other.
type OutputManager struct {
	BaseOutputDir string
}

func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{BaseOutputDir: baseOutputDir}
}

// EnsureOutputDirExists creates the base output directory if needed.
func (om *OutputManager) EnsureOutputDirExists() error {
	return os.MkdirAll(om.BaseOutputDir, 0755)
}

// CreateJobOutputDir creates the directory holding one job's outputs.
func (om *OutputManager) CreateJobOutputDir(jobID string) (string, error) {
	jobDir := filepath.Join(om.BaseOutputDir, jobID)
	if err := os.MkdirAll(jobDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create job output directory: %w", err)
	}
	return jobDir, nil
}

// GetOutputFilePath returns the full path for one of a job's output files.
// The file name is stripped of any directory components.
func (om *OutputManager) GetOutputFilePath(jobID, fileName string) (string, error) {
	jobDir, err := om.CreateJobOutputDir(jobID)
	if err != nil {
		return "", err
	}
	return filepath.Join(jobDir, filepath.Base(fileName)), nil
}

// GetDownloadURL returns the API route serving a job's produced CSV.
func (om *OutputManager) GetDownloadURL(jobID string) string {
	return fmt.Sprintf("/api/v1/exports/%s/download", jobID)
}

// GetFileSize returns the size of a produced file in bytes.
func (om *OutputManager) GetFileSize(filePath string) (int64, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return 0, err
	}
	return fileInfo.Size(), nil
}
