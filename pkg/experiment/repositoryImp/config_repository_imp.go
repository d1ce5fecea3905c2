package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"greenhouse/entities"
	"greenhouse/pkg/experiment/repository"
)

type configRepo struct{ db *gorm.DB }

func NewConfig(db *gorm.DB) repository.ConfigRepository { return &configRepo{db} }

func (r *configRepo) Get(key string) (string, bool, error) {
	var c entities.Configuration
	err := r.db.First(&c, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return c.Value, true, nil
}

func (r *configRepo) Set(key, value string) error {
	return r.db.Save(&entities.Configuration{Key: key, Value: value}).Error
}
