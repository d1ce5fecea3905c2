package entities

import "time"

// InvalidMeasurement records a reading that could not be turned into a
// Measurement. The raw payload and the reason are kept verbatim for later
// inspection. ExperimentID is nil when no active experiment was resolvable.
// These records are terminal; they never become Measurements.
type InvalidMeasurement struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ExperimentID    *uint     `json:"experiment_id"`
	RawData         string    `gorm:"type:text" json:"raw_data"`
	ValidationError string    `gorm:"type:text" json:"validation_error"`
	ReceivedAt      time.Time `json:"received_at"`
}
