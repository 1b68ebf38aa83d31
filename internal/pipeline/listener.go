package pipeline

import "gabraconv/internal/row"

// Line is one non-blank input line as seen by listeners.
type Line struct {
	// Number is 1-based and counts blank lines.
	Number int
	// Text is the raw document with surrounding whitespace trimmed.
	Text []byte
}

// Identifier names the row in audit records: its original id when the
// document carries one, otherwise the raw text.
func (l Line) Identifier() string {
	if id, ok := row.Identify(l.Text); ok {
		return id
	}
	return string(l.Text)
}

// Listener observes one pipeline pass. Embed NopListener to implement only
// the hooks you need.
type Listener[R any] interface {
	FileStarted(path string)
	RowExported(line Line, r R, exportID int)
	RowSkipped(line Line, stage, reason string)
	FileFinished(path string, stats Stats)
}

// NopListener implements every Listener hook as a no-op.
type NopListener[R any] struct{}

func (NopListener[R]) FileStarted(string)              {}
func (NopListener[R]) RowExported(Line, R, int)        {}
func (NopListener[R]) RowSkipped(Line, string, string) {}
func (NopListener[R]) FileFinished(string, Stats)      {}
