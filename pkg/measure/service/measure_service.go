package service

import "greenhouse/entities"

// UploadReport summarises a bulk upload. A partial upload is a success,
// not a rollback: rows that saved stay saved.
type UploadReport struct {
	TotalRows    int      `json:"totalRows"`
	SuccessCount int      `json:"successCount"`
	Status       string   `json:"status"` // "success" | "partial"
	Errors       []string `json:"errors,omitempty"`
}

// MeasureService ingests measurements from the batch sources: delimited
// uploads and single-row JSON submissions.
type MeasureService interface {
	// Upload parses and validates a delimited upload, then persists every
	// row. Structural and validation failures come back as
	// *ValidationError and nothing is persisted.
	Upload(experimentID uint, data []byte, hasHeaders bool, delimiter rune) (*UploadReport, error)

	// AddRow validates a single field-name→text row in first-error mode.
	// A rejected row is stored as an invalid measurement and reported as
	// *ValidationError.
	AddRow(experimentID uint, row map[string]string) (*entities.Measurement, error)
}

// ValidationError marks failures the caller should treat as bad input
// rather than a server fault.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }
