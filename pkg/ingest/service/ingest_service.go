package service

// IngestService processes one line of streaming sensor input. Every
// failure mode ends in either a saved measurement or a saved invalid
// measurement; a per-line call never propagates an error to the caller.
type IngestService interface {
	Process(line string)
}
