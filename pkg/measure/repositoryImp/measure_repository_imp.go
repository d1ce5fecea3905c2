package repositoryImp

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"greenhouse/entities"
	"greenhouse/pkg/measure/repository"
)

type measureRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.MeasureRepository { return &measureRepo{db} }

func (r *measureRepo) Create(m *entities.Measurement) error { return r.db.Create(m).Error }

func (r *measureRepo) FindByID(id uint) (*entities.Measurement, error) {
	var m entities.Measurement
	err := r.db.First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *measureRepo) ByExperiment(experimentID uint, from, to *time.Time) ([]entities.Measurement, error) {
	q := r.db.Where("experiment_id = ?", experimentID)
	if from != nil && to != nil {
		q = q.Where("timestamp BETWEEN ? AND ?", *from, *to)
	}
	var out []entities.Measurement
	if err := q.Order("timestamp ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *measureRepo) Latest(experimentID uint, n int) ([]entities.Measurement, error) {
	var out []entities.Measurement
	err := r.db.Where("experiment_id = ?", experimentID).
		Order("timestamp DESC").Limit(n).Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *measureRepo) CreateInvalid(inv *entities.InvalidMeasurement) error {
	return r.db.Create(inv).Error
}

func (r *measureRepo) InvalidByExperiment(experimentID uint) ([]entities.InvalidMeasurement, error) {
	var out []entities.InvalidMeasurement
	if err := r.db.Where("experiment_id = ?", experimentID).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *measureRepo) InvalidByID(id uint) (*entities.InvalidMeasurement, error) {
	var inv entities.InvalidMeasurement
	err := r.db.First(&inv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *measureRepo) InvalidExists(id uint) (bool, error) {
	var n int64
	if err := r.db.Model(&entities.InvalidMeasurement{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *measureRepo) DeleteInvalid(id uint) error {
	return r.db.Delete(&entities.InvalidMeasurement{}, id).Error
}
