package entities

// Configuration is a single key/value setting, e.g. which experiment is
// currently active for incoming sensor data.
type Configuration struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `json:"value"`
}
