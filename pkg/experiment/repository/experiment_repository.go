package repository

import "greenhouse/entities"

// ExperimentRepository is the experiment half of the measurement store
// port. Find* methods return (nil, nil) when nothing matches.
type ExperimentRepository interface {
	FindAll() ([]entities.Experiment, error)
	FindByID(id uint) (*entities.Experiment, error)
	FindByName(name string) (*entities.Experiment, error)
	FindBySpecies(species string) ([]entities.Experiment, error)
	Exists(id uint) (bool, error)
	Create(e *entities.Experiment) error
	Update(e *entities.Experiment) error
	Delete(id uint) error
}

// ConfigRepository stores named key/value settings, e.g. the active
// experiment pointer.
type ConfigRepository interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}
