package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"gabraconv/internal/convert"
	"gabraconv/internal/pipeline"
)

// progressPrinter renders live run progress. It stays silent unless live is
// set, so piped output only carries the final summary.
type progressPrinter struct {
	convert.NopRunListener
	out  io.Writer
	live bool
}

func newProgressPrinter(out io.Writer, live bool) *progressPrinter {
	return &progressPrinter{out: out, live: live}
}

func (p *progressPrinter) ExtractionStarted(archivePath string) {
	if p.live {
		fmt.Fprintf(p.out, "Extracting %s\n", archivePath)
	}
}

func (p *progressPrinter) ExportStarted(kind string) {
	if p.live {
		fmt.Fprintf(p.out, "Exporting %s\n", kind)
	}
}

func (p *progressPrinter) RowExported(_ string, exported int) {
	if p.live {
		fmt.Fprintf(p.out, "\r > Rows exported: %d", exported)
	}
}

func (p *progressPrinter) ExportFinished(_ string, stats pipeline.Stats) {
	if p.live {
		fmt.Fprintf(p.out, "\r > Rows exported: %d, skipped: %d\n", stats.Exported, stats.Skipped)
	}
}

func shouldRenderProgress(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
