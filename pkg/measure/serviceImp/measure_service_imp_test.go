package serviceImp

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenhouse/entities"
	"greenhouse/pkg/measure/service"
)

type fakeMeasureRepo struct {
	saved    []entities.Measurement
	invalid  []entities.InvalidMeasurement
	failRows int // fail Create for the first n calls
	calls    int
}

func (f *fakeMeasureRepo) Create(m *entities.Measurement) error {
	f.calls++
	if f.calls <= f.failRows {
		return errors.New("constraint violation")
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

func newTestService(repo *fakeMeasureRepo) *measureService {
	return &measureService{
		measures: repo,
		maxRows:  1000,
		maxCols:  100,
		now:      func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
}

const csvHeader = "Luft_temperatur,Luftfugtighed,Jord_fugtighed,Tidsstempel\n"

func TestUploadSuccess(t *testing.T) {
	repo := &fakeMeasureRepo{}
	svc := newTestService(repo)

	data := csvHeader +
		"23.5,55,40,2026-03-01T10:00:00\n" +
		"24,60,45,\n"

	report, err := svc.Upload(7, []byte(data), true, ',')
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalRows)
	assert.Equal(t, 2, report.SuccessCount)
	assert.Equal(t, "success", report.Status)
	assert.Empty(t, report.Errors)

	require.Len(t, repo.saved, 2)
	first := repo.saved[0]
	assert.Equal(t, uint(7), first.ExperimentID)
	assert.Equal(t, 23.5, first.AirTemperature)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), first.Timestamp)
	// Empty timestamp cell falls back to the arrival time.
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), repo.saved[1].Timestamp)
}

func TestUploadParseFailure(t *testing.T) {
	svc := newTestService(&fakeMeasureRepo{})

	_, err := svc.Upload(1, []byte(""), true, ',')
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Failed to parse CSV data", verr.Msg)
}

func TestUploadValidationFailure(t *testing.T) {
	repo := &fakeMeasureRepo{}
	svc := newTestService(repo)

	data := csvHeader + "50,55,40,2026-03-01T10:00:00\n"

	_, err := svc.Upload(1, []byte(data), true, ',')
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Msg, "Validation failed with the following errors:")
	assert.Contains(t, verr.Msg, "- Row 1: Air temperature must be between 15°C and 40°C (got: 50°C)")
	assert.Empty(t, repo.saved)
}

func TestUploadMissingRequiredColumn(t *testing.T) {
	svc := newTestService(&fakeMeasureRepo{})

	_, err := svc.Upload(1, []byte("Luft_temperatur\n23.5\n"), true, ',')
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Msg, "Required column 'Luftfugtighed' is missing")
}

func TestUploadPartial(t *testing.T) {
	repo := &fakeMeasureRepo{failRows: 1}
	svc := newTestService(repo)

	data := csvHeader +
		"23.5,55,40,\n" +
		"24,60,45,\n"

	report, err := svc.Upload(1, []byte(data), true, ',')
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalRows)
	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, "partial", report.Status)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "Row 1: constraint violation", report.Errors[0])
}

func TestAddRowValid(t *testing.T) {
	repo := &fakeMeasureRepo{}
	svc := newTestService(repo)

	m, err := svc.AddRow(4, map[string]string{
		"Luft_temperatur": "23.5",
		"Luftfugtighed":   "55",
		"Jord_fugtighed":  "40",
		"Lys_indstilling": "AUTO",
	})
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, uint(4), m.ExperimentID)
	assert.Equal(t, "AUTO", m.LightMode)
	assert.Equal(t, 0.0, m.LightSetting)
	require.Len(t, repo.saved, 1)
}

func TestAddRowInvalidStoredForAnalysis(t *testing.T) {
	repo := &fakeMeasureRepo{}
	svc := newTestService(repo)

	_, err := svc.AddRow(4, map[string]string{
		"Luft_temperatur": "50",
		"Luftfugtighed":   "55",
		"Jord_fugtighed":  "40",
	})
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Validation failed: Luft_temperatur must be a float between 15°C and 40°C at row 1", verr.Msg)

	assert.Empty(t, repo.saved)
	require.Len(t, repo.invalid, 1)
	inv := repo.invalid[0]
	require.NotNil(t, inv.ExperimentID)
	assert.Equal(t, uint(4), *inv.ExperimentID)
	assert.Contains(t, inv.RawData, `"Luft_temperatur":"50"`)
	assert.Equal(t, verr.Msg, inv.ValidationError)
}
