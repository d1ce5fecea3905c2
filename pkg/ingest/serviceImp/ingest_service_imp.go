package serviceImp

import (
	"time"

	"greenhouse/entities"
	"greenhouse/logger"
	expservice "greenhouse/pkg/experiment/service"
	ingestservice "greenhouse/pkg/ingest/service"
	"greenhouse/pkg/measure/repository"
	"greenhouse/pkg/validate"
)

// channelOrder fixes the per-line processing order of extracted fields.
var channelOrder = []string{"Temp", "Humidity", "Soil", "Distance"}

type ingest struct {
	measures repository.MeasureRepository
	active   expservice.ActiveExperimentService
	now      func() time.Time
}

func New(measures repository.MeasureRepository, active expservice.ActiveExperimentService) ingestservice.IngestService {
	return &ingest{measures: measures, active: active, now: time.Now}
}

// Process runs one streaming line through extract → resolve → validate →
// persist. A field that fails validation produces its own invalid record
// and leaves its channel at 0; the measurement is still saved as long as
// any channel came through.
func (s *ingest) Process(line string) {
	logger.Infof("processing data: %s", line)

	fields := Extract(line)
	if len(fields) == 0 {
		s.storeInvalid(nil, line, "No valid data could be extracted")
		return
	}

	experimentID := s.active.CurrentID()
	experiment, err := s.active.Current()
	if err != nil {
		s.storeInvalid(&experimentID, line, "Error resolving active experiment: "+err.Error())
		return
	}
	if experiment == nil {
		logger.Errorf("no active experiment found with id %d", experimentID)
		s.storeInvalid(&experimentID, line, "Active experiment not found")
		return
	}

	m := &entities.Measurement{ExperimentID: experiment.ID, Timestamp: s.now()}

	for _, label := range channelOrder {
		raw, ok := fields[label]
		if !ok {
			continue
		}
		v, msg := validate.Reading(label, raw)
		if msg != "" {
			logger.Warnf("rejected %s reading: %s", label, msg)
			s.storeInvalid(&experiment.ID, label+": "+raw, msg)
			continue
		}
		switch label {
		case "Temp":
			m.AirTemperature = v
		case "Humidity":
			m.AirHumidity = v
		case "Soil":
			m.SoilMoisture = v
		case "Distance":
			m.HeightDistance = v
		}
	}

	if m.AirTemperature == 0 && m.AirHumidity == 0 && m.SoilMoisture == 0 && m.HeightDistance == 0 {
		// Nothing valid to save; any rejects were recorded above.
		return
	}

	if err := s.measures.Create(m); err != nil {
		logger.Errorf("save measurement: %v", err)
		s.storeInvalid(&experiment.ID, line, "Error saving measurement: "+err.Error())
		return
	}
	logger.Infof("saved measurement for experiment %d", experiment.ID)
}

func (s *ingest) storeInvalid(experimentID *uint, raw, message string) {
	inv := &entities.InvalidMeasurement{
		ExperimentID:    experimentID,
		RawData:         raw,
		ValidationError: message,
		ReceivedAt:      s.now(),
	}
	if err := s.measures.CreateInvalid(inv); err != nil {
		logger.Errorf("store invalid measurement: %v", err)
		return
	}
	logger.Infof("stored invalid measurement: %s", message)
}
