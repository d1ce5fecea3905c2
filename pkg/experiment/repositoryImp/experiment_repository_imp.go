package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"greenhouse/entities"
	"greenhouse/pkg/experiment/repository"
)

type experimentRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ExperimentRepository { return &experimentRepo{db} }

func (r *experimentRepo) FindAll() ([]entities.Experiment, error) {
	var out []entities.Experiment
	if err := r.db.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *experimentRepo) FindByID(id uint) (*entities.Experiment, error) {
	var e entities.Experiment
	err := r.db.First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *experimentRepo) FindByName(name string) (*entities.Experiment, error) {
	var e entities.Experiment
	err := r.db.Where("name = ?", name).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *experimentRepo) FindBySpecies(species string) ([]entities.Experiment, error) {
	var out []entities.Experiment
	if err := r.db.Where("plant_species = ?", species).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *experimentRepo) Exists(id uint) (bool, error) {
	var n int64
	if err := r.db.Model(&entities.Experiment{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *experimentRepo) Create(e *entities.Experiment) error { return r.db.Create(e).Error }

func (r *experimentRepo) Update(e *entities.Experiment) error { return r.db.Save(e).Error }

func (r *experimentRepo) Delete(id uint) error {
	// Measurements go with their experiment. Invalid records are
	// independent and stay, dangling id included.
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("experiment_id = ?", id).Delete(&entities.Measurement{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Experiment{}, id).Error
	})
}
