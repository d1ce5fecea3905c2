package serviceImp

import (
	"strconv"
	"sync"

	"greenhouse/entities"
	"greenhouse/logger"
	"greenhouse/pkg/experiment/repository"
	"greenhouse/pkg/experiment/service"
)

// ConfigKeyCurrentExperiment is the configuration entry holding the
// active experiment id.
const ConfigKeyCurrentExperiment = "current_experiment_id"

type activeExperiment struct {
	mu          sync.Mutex
	experiments repository.ExperimentRepository
	config      repository.ConfigRepository
	defaultID   uint
}

func New(experiments repository.ExperimentRepository, config repository.ConfigRepository, defaultID uint) service.ActiveExperimentService {
	return &activeExperiment{experiments: experiments, config: config, defaultID: defaultID}
}

// CurrentID and SetCurrentID share one mutex so a reader never observes a
// partially written pointer.
func (s *activeExperiment) CurrentID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok, err := s.config.Get(ConfigKeyCurrentExperiment)
	if err != nil {
		logger.Errorf("read %s: %v", ConfigKeyCurrentExperiment, err)
		return s.defaultID
	}
	if !ok {
		return s.defaultID
	}
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		logger.Errorf("invalid experiment id in configuration: %q", value)
		return s.defaultID
	}
	return uint(id)
}

func (s *activeExperiment) SetCurrentID(id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.experiments.Exists(id)
	if err != nil {
		return false, err
	}
	if !ok {
		logger.Warnf("attempted to activate non-existent experiment %d", id)
		return false, nil
	}
	if err := s.config.Set(ConfigKeyCurrentExperiment, strconv.FormatUint(uint64(id), 10)); err != nil {
		return false, err
	}
	logger.Infof("current experiment set to %d", id)
	return true, nil
}

func (s *activeExperiment) Current() (*entities.Experiment, error) {
	return s.experiments.FindByID(s.CurrentID())
}
