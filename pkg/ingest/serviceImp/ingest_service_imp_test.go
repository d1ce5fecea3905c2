package serviceImp

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenhouse/entities"
)

type fakeMeasureRepo struct {
	saved     []entities.Measurement
	invalid   []entities.InvalidMeasurement
	createErr error
}

func (f *fakeMeasureRepo) Create(m *entities.Measurement) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.saved = append(f.saved, *m)
	return nil
}

func (f *fakeMeasureRepo) FindByID(uint) (*entities.Measurement, error) { return nil, nil }

func (f *fakeMeasureRepo) ByExperiment(uint, *time.Time, *time.Time) ([]entities.Measurement, error) {
	return nil, nil
}

func (f *fakeMeasureRepo) Latest(uint, int) ([]entities.Measurement, error) { return nil, nil }

func (f *fakeMeasureRepo) CreateInvalid(inv *entities.InvalidMeasurement) error {
	f.invalid = append(f.invalid, *inv)
	return nil
}

func (f *fakeMeasureRepo) InvalidByExperiment(uint) ([]entities.InvalidMeasurement, error) {
	return nil, nil
}

func (f *fakeMeasureRepo) InvalidByID(uint) (*entities.InvalidMeasurement, error) { return nil, nil }
func (f *fakeMeasureRepo) InvalidExists(uint) (bool, error)                       { return false, nil }
func (f *fakeMeasureRepo) DeleteInvalid(uint) error                               { return nil }

type fakeActive struct {
	id         uint
	experiment *entities.Experiment
	err        error
}

func (f *fakeActive) CurrentID() uint                 { return f.id }
func (f *fakeActive) SetCurrentID(uint) (bool, error) { return true, nil }
func (f *fakeActive) Current() (*entities.Experiment, error) {
	return f.experiment, f.err
}

func newTestIngest(repo *fakeMeasureRepo, active *fakeActive) *ingest {
	return &ingest{
		measures: repo,
		active:   active,
		now:      func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestProcessSavesFullReading(t *testing.T) {
	repo := &fakeMeasureRepo{}
	svc := newTestIngest(repo, &fakeActive{id: 7, experiment: &entities.Experiment{ID: 7}})

	svc.Process("Temp: 24.5 Humidity: 55 Soil: 40 Distance: 30")

	require.Len(t, repo.saved, 1)
	m := repo.saved[0]
	assert.Equal(t, uint(7), m.ExperimentID)
	assert.Equal(t, 24.5, m.AirTemperature)
	assert.Equal(t, 55.0, m.AirHumidity)
	assert.Equal(t, 40.0, m.SoilMoisture)
	assert.Equal(t, 30.0, m.HeightDistance)
	assert.Empty(t, repo.invalid)
}

func TestProcessNoExtractableData(t *testing.T) {
	repo := &fakeMeasureRepo{}
	svc := newTestIngest(repo, &fakeActive{id: 1, experiment: &entities.Experiment{ID: 1}})

	svc.Process("garbage with no readings")

	assert.Empty(t, repo.saved)
	require.Len(t, repo.invalid, 1)
	inv := repo.invalid[0]
	assert.Nil(t, inv.ExperimentID)
	assert.Equal(t, "garbage with no readings", inv.RawData)
	assert.Equal(t, "No valid data could be extracted", inv.ValidationError)
}

func TestProcessNoActiveExperiment(t *testing.T) {
	repo := &fakeMeasureRepo{}
	svc := newTestIngest(repo, &fakeActive{id: 9, experiment: nil})

	svc.Process("Temp: 24 Humidity: 55")

	assert.Empty(t, repo.saved)
	require.Len(t, repo.invalid, 1)
	inv := repo.invalid[0]
	require.NotNil(t, inv.ExperimentID)
	assert.Equal(t, uint(9), *inv.ExperimentID)
	assert.Equal(t, "Active experiment not found", inv.ValidationError)
}

func TestProcessPartialReadingStillSaves(t *testing.T) {
	repo := &fakeMeasureRepo{}
	svc := newTestIngest(repo, &fakeActive{id: 3, experiment: &entities.Experiment{ID: 3}})

	// Humidity out of range, the rest valid.
	svc.Process("Temp: 24 Humidity: 150 Soil: 40")

	require.Len(t, repo.saved, 1)
	m := repo.saved[0]
	assert.Equal(t, 24.0, m.AirTemperature)
	assert.Equal(t, 0.0, m.AirHumidity)
	assert.Equal(t, 40.0, m.SoilMoisture)

	require.Len(t, repo.invalid, 1)
	inv := repo.invalid[0]
	assert.Equal(t, "Humidity: 150", inv.RawData)
	assert.Equal(t, "Air humidity must be between 0% and 100% (got: 150%)", inv.ValidationError)
}

func TestProcessAllFieldsRejected(t *testing.T) {
	repo := &fakeMeasureRepo{}
	svc := newTestIngest(repo, &fakeActive{id: 3, experiment: &entities.Experiment{ID: 3}})

	svc.Process("Temp: 55 Humidity: 150")

	assert.Empty(t, repo.saved)
	assert.Len(t, repo.invalid, 2)
}

func TestProcessSaveFailureRecorded(t *testing.T) {
	repo := &fakeMeasureRepo{createErr: errors.New("disk full")}
	svc := newTestIngest(repo, &fakeActive{id: 2, experiment: &entities.Experiment{ID: 2}})

	svc.Process("Temp: 24")

	require.Len(t, repo.invalid, 1)
	assert.Equal(t, "Error saving measurement: disk full", repo.invalid[0].ValidationError)
}

func TestProcessResolveError(t *testing.T) {
	repo := &fakeMeasureRepo{}
	svc := newTestIngest(repo, &fakeActive{id: 4, err: errors.New("db down")})

	svc.Process("Temp: 24")

	assert.Empty(t, repo.saved)
	require.Len(t, repo.invalid, 1)
	assert.Equal(t, "Error resolving active experiment: db down", repo.invalid[0].ValidationError)
}

func TestProcessStampsArrivalTime(t *testing.T) {
	repo := &fakeMeasureRepo{}
	svc := newTestIngest(repo, &fakeActive{id: 1, experiment: &entities.Experiment{ID: 1}})

	svc.Process("Soil: 40")

	require.Len(t, repo.saved, 1)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), repo.saved[0].Timestamp)
}
