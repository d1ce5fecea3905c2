package entities

import "time"

// Experiment is a named run of greenhouse data collection bounded by
// optional start/end dates. Measurements belong to it and are removed
// with it.
type Experiment struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"uniqueIndex" json:"name"`
	Description  string     `json:"description"`
	PlantSpecies string     `json:"plant_species"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`

	Measurements []Measurement `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
