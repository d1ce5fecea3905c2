// Package validate applies the per-field measurement rules. A single rule
// table drives both operating modes: Check short-circuits on the first
// rejecting rule (UI-facing single-row validation), CheckAll accumulates
// user-readable messages across all rows (bulk uploads).
package validate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"greenhouse/pkg/convert"
)

// Recognised column names. Danish identifiers, spelling and diacritics
// as the embedded controllers send them.
const (
	ColAirTemperature     = "Luft_temperatur"
	ColAirHumidity        = "Luftfugtighed"
	ColSoilMoisture       = "Jord_fugtighed"
	ColLightHighest       = "Lys_højeste_intensitet"
	ColLightLowest        = "Lys_laveste_intensitet"
	ColLightSetting       = "Lys_indstilling"
	ColLightAverage       = "Lys_gennemsnit"
	ColHeightDistance     = "Afstand_til_Højde"
	ColWaterTimeSinceLast = "Vand_tid_fra_sidste"
	ColWaterAmount        = "Vand_mængde"
	ColWaterFrequency     = "Vand_frekvens"
	ColTimestamp          = "Tidsstempel"
)

// Code tags the rule that rejected a table in first-error mode.
type Code int

const (
	OK Code = iota
	ErrGeneral
	ErrAirTemperature
	ErrAirHumidity
	ErrSoilMoisture
	ErrLightHighest
	ErrLightLowest
	ErrLightSetting
	ErrHeightDistance
	ErrWaterTimeSinceLast
	ErrWaterAmount
	ErrWaterFrequency
	ErrTimestamp
)

// Result is the outcome of first-error validation. Row is zero-based and
// only meaningful when Code != OK.
type Result struct {
	Code Code
	Row  int
}

func (r Result) OK() bool { return r.Code == OK }

// Message renders the result for a user, quoting the 1-based row number.
func (r Result) Message() string {
	switch r.Code {
	case OK:
		return "Validation successful"
	case ErrGeneral:
		return "Validation failed: General validation error"
	}
	for _, ru := range rules {
		if ru.code == r.Code {
			return fmt.Sprintf("Validation failed: %s at row %d", ru.summary, r.Row+1)
		}
	}
	return "Unknown validation error"
}

// rule binds a column to its parser, predicate and messages. check
// returns "" when the cell is acceptable, otherwise the row-scoped
// message fragment (without the "Row N: " prefix).
type rule struct {
	column   string
	code     Code
	required bool
	summary  string // first-error mode description
	check    func(raw string, row map[string]string) string
}

func parseF(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	return v, err == nil
}

func parseI(raw string) (int, bool) {
	v, err := strconv.Atoi(raw)
	return v, err == nil
}

// numeric wraps the common shape of the integer rules: empty cells in
// optional columns pass, unparseable text fails with the missing-value
// message, and check judges the parsed value.
func numeric(label string, required bool, check func(v int) string) func(string, map[string]string) string {
	return func(raw string, _ map[string]string) string {
		if raw == "" {
			if required {
				return label + " value is missing or not a valid number"
			}
			return ""
		}
		v, ok := parseI(raw)
		if !ok {
			return label + " value is missing or not a valid number"
		}
		return check(v)
	}
}

var rules = []rule{
	{
		column: ColAirTemperature, code: ErrAirTemperature, required: true,
		summary: "Luft_temperatur must be a float between 15°C and 40°C",
		check: func(raw string, _ map[string]string) string {
			if raw == "" {
				return "Air temperature value is missing or not a valid number"
			}
			v, ok := parseF(raw)
			if !ok {
				return "Air temperature value is missing or not a valid number"
			}
			if v < 15.0 || v > 40.0 {
				return fmt.Sprintf("Air temperature must be between 15°C and 40°C (got: %s°C)", raw)
			}
			return ""
		},
	},
	{
		column: ColAirHumidity, code: ErrAirHumidity, required: true,
		summary: "Luftfugtighed must be an integer between 0% and 100%",
		check: numeric("Air humidity", true, func(v int) string {
			if v < 0 || v > 100 {
				return fmt.Sprintf("Air humidity must be between 0%% and 100%% (got: %d%%)", v)
			}
			return ""
		}),
	},
	{
		column: ColSoilMoisture, code: ErrSoilMoisture, required: true,
		summary: "Jord_fugtighed must be an integer between 0% and 100%",
		check: numeric("Soil moisture", true, func(v int) string {
			if v < 0 || v > 100 {
				return fmt.Sprintf("Soil moisture must be between 0%% and 100%% (got: %d%%)", v)
			}
			return ""
		}),
	},
	{
		column: ColLightHighest, code: ErrLightHighest,
		summary: "Lys_højeste_intensitet must be a positive integer greater than Lys_laveste_intensitet",
		check: func(raw string, row map[string]string) string {
			if raw == "" {
				return ""
			}
			v, ok := parseI(raw)
			if !ok {
				return "Highest light intensity value is missing or not a valid number"
			}
			if v <= 0 {
				return fmt.Sprintf("Highest light intensity must be a positive number (got: %d)", v)
			}
			if low, ok := parseI(row[ColLightLowest]); ok && v <= low {
				return fmt.Sprintf("Highest light intensity (%d) must be greater than lowest light intensity (%d)", v, low)
			}
			return ""
		},
	},
	{
		column: ColLightLowest, code: ErrLightLowest,
		summary: "Lys_laveste_intensitet must be a non-negative integer",
		check: numeric("Lowest light intensity", false, func(v int) string {
			if v < 0 {
				return fmt.Sprintf("Lowest light intensity must be a non-negative number (got: %d)", v)
			}
			return ""
		}),
	},
	{
		column: ColLightSetting, code: ErrLightSetting,
		summary: "Lys_indstilling must be an integer between 0 and 10",
		check: func(raw string, _ map[string]string) string {
			// Opaque settings such as AUTO are legitimate; only numeric
			// codes are range-checked.
			v, ok := parseI(raw)
			if raw == "" || !ok {
				return ""
			}
			if v < 0 || v > 10 {
				return fmt.Sprintf("Light setting must be between 0 and 10 (got: %d)", v)
			}
			return ""
		},
	},
	{
		column: ColHeightDistance, code: ErrHeightDistance,
		summary: "Afstand_til_Højde must be a positive integer",
		check: numeric("Height distance", false, func(v int) string {
			if v <= 0 {
				return fmt.Sprintf("Height distance must be a positive number (got: %d)", v)
			}
			return ""
		}),
	},
	{
		column: ColWaterTimeSinceLast, code: ErrWaterTimeSinceLast,
		summary: "Vand_tid_fra_sidste must be a non-negative integer",
		check: numeric("Time since last watering", false, func(v int) string {
			if v < 0 {
				return fmt.Sprintf("Time since last watering must be a non-negative number (got: %d)", v)
			}
			return ""
		}),
	},
	{
		column: ColWaterAmount, code: ErrWaterAmount,
		summary: "Vand_mængde must be a positive integer",
		check: numeric("Water amount", false, func(v int) string {
			if v <= 0 {
				return fmt.Sprintf("Water amount must be a positive number (got: %d)", v)
			}
			return ""
		}),
	},
	{
		column: ColWaterFrequency, code: ErrWaterFrequency,
		summary: "Vand_frekvens must be a positive integer",
		check: numeric("Water frequency", false, func(v int) string {
			if v <= 0 {
				return fmt.Sprintf("Water frequency must be a positive number (got: %d)", v)
			}
			return ""
		}),
	},
	{
		column: ColTimestamp, code: ErrTimestamp,
		summary: "Tidsstempel must be in YYYY-MM-DDThh:mm:ss format",
		check: func(raw string, _ map[string]string) string {
			// An empty cell is fine; ingestion stamps the arrival time.
			if raw != "" && !ValidTimestamp(raw) {
				return fmt.Sprintf("Timestamp must be in YYYY-MM-DDThh:mm:ss format (got: %s)", raw)
			}
			return ""
		},
	},
}

// Required columns for the batch source. Their absence is a structural
// failure reported before any per-row checks run.
var requiredColumns = []string{ColAirTemperature, ColAirHumidity, ColSoilMoisture}

func missingColumns(t *convert.Table) []string {
	var missing []string
	for _, col := range requiredColumns {
		if t.ColumnIndex(col) == -1 {
			missing = append(missing, fmt.Sprintf("Required column '%s' is missing", col))
		}
	}
	return missing
}

// Check runs the rule table in first-error mode: the first rejecting rule
// stops validation and is reported as a tagged code plus the row it hit.
func Check(t *convert.Table) Result {
	if t == nil || len(t.Rows) == 0 || t.Cols() == 0 {
		return Result{Code: ErrGeneral}
	}
	if len(missingColumns(t)) > 0 {
		return Result{Code: ErrGeneral}
	}

	for i, row := range t.Rows {
		for _, ru := range rules {
			if t.ColumnIndex(ru.column) == -1 {
				continue
			}
			if msg := ru.check(row[ru.column], row); msg != "" {
				return Result{Code: ru.code, Row: i}
			}
		}
	}
	return Result{Code: OK}
}

// CheckAll runs the rule table in all-errors mode, accumulating one
// message per offending cell across the whole table.
func CheckAll(t *convert.Table) []string {
	if t == nil || len(t.Rows) == 0 || t.Cols() == 0 {
		return []string{"General validation error: Data is missing or empty"}
	}
	if missing := missingColumns(t); len(missing) > 0 {
		return missing
	}

	var errs []string
	for i, row := range t.Rows {
		for _, ru := range rules {
			if t.ColumnIndex(ru.column) == -1 {
				continue
			}
			if msg := ru.check(row[ru.column], row); msg != "" {
				errs = append(errs, fmt.Sprintf("Row %d: %s", i+1, msg))
			}
		}
	}
	return errs
}

// ValidTimestamp accepts exactly YYYY-MM-DDTHH:MM:SS, 19 characters, that
// also parses as a calendar date-time. No fraction, no zone.
func ValidTimestamp(value string) bool {
	if len(value) != 19 {
		return false
	}
	if value[4] != '-' || value[7] != '-' || value[10] != 'T' || value[13] != ':' || value[16] != ':' {
		return false
	}
	_, err := time.Parse("2006-01-02T15:04:05", value)
	return err == nil
}

// Streaming tolerances. Raw devices report through uncalibrated sensors,
// so the air temperature window is wider than the batch rule.
const (
	StreamTempMin = 10.0
	StreamTempMax = 50.0
)

// Reading validates a single extracted streaming value by label (Temp,
// Humidity, Soil, Distance). It returns the parsed value and "" on
// success, or 0 and the validator message on rejection.
func Reading(label, raw string) (float64, string) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Sprintf("%s value is not a valid number (got: %s)", label, raw)
	}

	switch label {
	case "Temp":
		if v < StreamTempMin || v > StreamTempMax {
			return 0, fmt.Sprintf("Air temperature must be between %g°C and %g°C (got: %s°C)", StreamTempMin, StreamTempMax, raw)
		}
	case "Humidity":
		if v < 0 || v > 100 {
			return 0, fmt.Sprintf("Air humidity must be between 0%% and 100%% (got: %s%%)", raw)
		}
	case "Soil":
		if v < 0 || v > 100 {
			return 0, fmt.Sprintf("Soil moisture must be between 0%% and 100%% (got: %s%%)", raw)
		}
	case "Distance":
		if v <= 0 {
			return 0, fmt.Sprintf("Height distance must be a positive number (got: %s)", raw)
		}
	default:
		return 0, fmt.Sprintf("Unknown sensor label: %s", label)
	}
	return v, ""
}
