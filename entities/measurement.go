package entities

import "time"

// Measurement is one timestamped tuple of sensor channels for an
// experiment. Channels a source does not deliver stay 0. LightMode keeps
// the raw Lys_indstilling text (devices send opaque codes such as AUTO);
// LightSetting carries its numeric value when the text parses as one.
type Measurement struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ExperimentID uint      `gorm:"index;not null" json:"experiment_id"`
	Timestamp    time.Time `gorm:"not null" json:"timestamp"`

	AirTemperature float64 `json:"air_temperature"`
	AirHumidity    float64 `json:"air_humidity"`
	SoilMoisture   float64 `json:"soil_moisture"`

	LightHighest float64 `json:"light_highest"`
	LightLowest  float64 `json:"light_lowest"`
	LightAverage float64 `json:"light_average"`
	LightSetting float64 `json:"light_setting"`
	LightMode    string  `json:"light_mode"`

	HeightDistance float64 `json:"height_distance"`

	WaterTimeSinceLast float64 `json:"water_time_since_last"`
	WaterAmount        float64 `json:"water_amount"`
	WaterFrequency     float64 `json:"water_frequency"`
}
