package serviceImp

import "regexp"

// Device lines are free-form text carrying labelled readings, e.g.
// "Temp: 24 Humidity: 55 Soil: 40 Distance: 30". Anything between
// matches is ignored.
var readingPattern = regexp.MustCompile(`(Distance|Temp|Humidity|Soil): (\d+(?:\.\d+)?)`)

// Extract pulls the labelled numeric fields out of a line. The result
// holds only labels that appeared; a repeated label keeps its last value.
// Missing labels are not an error here, validation downstream decides.
func Extract(line string) map[string]string {
	fields := make(map[string]string)
	for _, m := range readingPattern.FindAllStringSubmatch(line, -1) {
		fields[m[1]] = m[2]
	}
	return fields
}
