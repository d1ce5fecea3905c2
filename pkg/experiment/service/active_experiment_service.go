package service

import "greenhouse/entities"

// ActiveExperimentService is the process-wide pointer naming which
// experiment incoming readings belong to. Reads happen on every ingested
// line; writes come rarely from the admin surface.
type ActiveExperimentService interface {
	// CurrentID returns the active experiment id, falling back to the
	// configured default when the entry is absent or malformed.
	CurrentID() uint
	// SetCurrentID activates an experiment. It returns false and leaves
	// the pointer untouched when no such experiment exists.
	SetCurrentID(id uint) (bool, error)
	// Current loads the active experiment, or (nil, nil) when the pointer
	// names an experiment that no longer exists.
	Current() (*entities.Experiment, error)
}
