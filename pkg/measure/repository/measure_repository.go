package repository

import (
	"time"

	"greenhouse/entities"
)

// MeasureRepository persists valid and invalid readings and answers the
// queries the REST surface needs. FindByID/InvalidByID return (nil, nil)
// when nothing matches.
type MeasureRepository interface {
	Create(m *entities.Measurement) error
	FindByID(id uint) (*entities.Measurement, error)
	// ByExperiment returns measurements for an experiment, oldest first,
	// optionally restricted to a [from, to] window.
	ByExperiment(experimentID uint, from, to *time.Time) ([]entities.Measurement, error)
	// Latest returns the n newest measurements, newest first.
	Latest(experimentID uint, n int) ([]entities.Measurement, error)

	CreateInvalid(inv *entities.InvalidMeasurement) error
	InvalidByExperiment(experimentID uint) ([]entities.InvalidMeasurement, error)
	InvalidByID(id uint) (*entities.InvalidMeasurement, error)
	InvalidExists(id uint) (bool, error)
	DeleteInvalid(id uint) error
}
