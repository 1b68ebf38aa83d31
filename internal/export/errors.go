package export

import "errors"

var (
	// ErrNotInitialized is returned when rows are added before Create or after Close.
	ErrNotInitialized = errors.New("exporter not initialized")
	// ErrDuplicateOutput is returned when Create finds an output file already present.
	ErrDuplicateOutput = errors.New("output file already exists")
	// ErrDanglingReference is returned for a wordform whose lexeme was never exported.
	ErrDanglingReference = errors.New("dangling lexeme reference")
	// ErrIDMapNotReady is returned when IDMap is called before Close.
	ErrIDMapNotReady = errors.New("id map requested before export finished")
	// ErrUnknown is returned for an exporter id that is not registered.
	ErrUnknown = errors.New("unknown exporter")
)
