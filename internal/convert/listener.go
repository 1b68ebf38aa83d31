package convert

import "gabraconv/internal/pipeline"

// RunListener observes the stages of one run. Embed NopRunListener to
// implement only the hooks you need.
type RunListener interface {
	ExtractionStarted(archivePath string)
	ExportStarted(kind string)
	// RowExported reports the running count of exported rows for kind.
	RowExported(kind string, exported int)
	ExportFinished(kind string, stats pipeline.Stats)
	Completed(summary *Summary)
}

// NopRunListener implements every RunListener hook as a no-op.
type NopRunListener struct{}

func (NopRunListener) ExtractionStarted(string)              {}
func (NopRunListener) ExportStarted(string)                  {}
func (NopRunListener) RowExported(string, int)               {}
func (NopRunListener) ExportFinished(string, pipeline.Stats) {}
func (NopRunListener) Completed(*Summary)                    {}

// rowCounter forwards per-row exports of one kind to a RunListener.
type rowCounter[R any] struct {
	pipeline.NopListener[R]
	kind     string
	listener RunListener
	exported int
}

func (c *rowCounter[R]) FileStarted(string) {
	c.exported = 0
}

func (c *rowCounter[R]) RowExported(pipeline.Line, R, int) {
	c.exported++
	c.listener.RowExported(c.kind, c.exported)
}
