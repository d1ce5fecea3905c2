package serviceImp

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"greenhouse/entities"
	"greenhouse/logger"
	"greenhouse/pkg/convert"
	"greenhouse/pkg/measure/repository"
	"greenhouse/pkg/measure/service"
	"greenhouse/pkg/validate"
)

type measureService struct {
	measures repository.MeasureRepository
	maxRows  int
	maxCols  int
	now      func() time.Time
}

func New(measures repository.MeasureRepository, maxRows, maxCols int) service.MeasureService {
	if maxRows <= 0 {
		maxRows = convert.DefaultMaxRows
	}
	if maxCols <= 0 {
		maxCols = convert.DefaultMaxCols
	}
	return &measureService{measures: measures, maxRows: maxRows, maxCols: maxCols, now: time.Now}
}

func (s *measureService) Upload(experimentID uint, data []byte, hasHeaders bool, delimiter rune) (*service.UploadReport, error) {
	table := convert.NewTable(hasHeaders)
	table.MaxRows = s.maxRows
	table.MaxCols = s.maxCols

	if err := table.Parse(string(data), delimiter); err != nil {
		return nil, &service.ValidationError{Msg: "Failed to parse CSV data"}
	}

	if errs := validate.CheckAll(table); len(errs) > 0 {
		var b strings.Builder
		b.WriteString("Validation failed with the following errors:\n")
		for _, e := range errs {
			b.WriteString("- " + e + "\n")
		}
		logger.Errorf("upload rejected: %s", b.String())
		return nil, &service.ValidationError{Msg: b.String()}
	}

	report := &service.UploadReport{TotalRows: len(table.Rows)}
	for i, row := range table.Rows {
		m := rowToMeasurement(experimentID, row, s.now())
		if err := s.measures.Create(m); err != nil {
			msg := fmt.Sprintf("Row %d: %s", i+1, err.Error())
			report.Errors = append(report.Errors, msg)
			logger.Errorf("%s", msg)
			continue
		}
		report.SuccessCount++
	}
	report.Status = "partial"
	if report.SuccessCount == report.TotalRows {
		report.Status = "success"
	}
	return report, nil
}

func (s *measureService) AddRow(experimentID uint, row map[string]string) (*entities.Measurement, error) {
	table := singleRowTable(row)

	if res := validate.Check(table); !res.OK() {
		raw, _ := json.Marshal(row)
		inv := &entities.InvalidMeasurement{
			ExperimentID:    &experimentID,
			RawData:         string(raw),
			ValidationError: res.Message(),
			ReceivedAt:      s.now(),
		}
		if err := s.measures.CreateInvalid(inv); err != nil {
			return nil, err
		}
		logger.Warnf("stored invalid measurement with error: %s", res.Message())
		return nil, &service.ValidationError{Msg: res.Message()}
	}

	m := rowToMeasurement(experimentID, row, s.now())
	if err := s.measures.Create(m); err != nil {
		return nil, err
	}
	logger.Infof("saved measurement for experiment %d", experimentID)
	return m, nil
}

// singleRowTable lifts a field-name→text map into a one-row table over
// the full recognised column set, so the same rule table applies to
// single submissions and uploads alike.
func singleRowTable(row map[string]string) *convert.Table {
	t := convert.NewTable(true)
	t.Headers = []string{
		validate.ColAirTemperature, validate.ColAirHumidity, validate.ColSoilMoisture,
		validate.ColLightHighest, validate.ColLightLowest, validate.ColLightSetting,
		validate.ColLightAverage, validate.ColHeightDistance, validate.ColWaterTimeSinceLast,
		validate.ColWaterAmount, validate.ColWaterFrequency, validate.ColTimestamp,
	}
	cells := make(map[string]string, len(t.Headers))
	for _, h := range t.Headers {
		cells[h] = strings.TrimSpace(row[h])
	}
	t.Rows = []map[string]string{cells}
	return t
}

// rowToMeasurement converts a validated raw row to the typed record.
// Absent or unparseable numeric cells default to 0; the timestamp falls
// back to the arrival time when the Tidsstempel cell does not parse.
func rowToMeasurement(experimentID uint, row map[string]string, now time.Time) *entities.Measurement {
	num := func(col string) float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
		if err != nil {
			return 0
		}
		return v
	}

	ts := now
	if t, err := time.Parse("2006-01-02T15:04:05", row[validate.ColTimestamp]); err == nil {
		ts = t
	}

	return &entities.Measurement{
		ExperimentID:       experimentID,
		Timestamp:          ts,
		AirTemperature:     num(validate.ColAirTemperature),
		AirHumidity:        num(validate.ColAirHumidity),
		SoilMoisture:       num(validate.ColSoilMoisture),
		LightHighest:       num(validate.ColLightHighest),
		LightLowest:        num(validate.ColLightLowest),
		LightAverage:       num(validate.ColLightAverage),
		LightSetting:       num(validate.ColLightSetting),
		LightMode:          row[validate.ColLightSetting],
		HeightDistance:     num(validate.ColHeightDistance),
		WaterTimeSinceLast: num(validate.ColWaterTimeSinceLast),
		WaterAmount:        num(validate.ColWaterAmount),
		WaterFrequency:     num(validate.ColWaterFrequency),
	}
}
