package pipeline

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gabraconv/internal/faults"
	"gabraconv/internal/logging"
)

// outcome is the result of cleaning one row.
type outcome struct {
	accepted bool
	stage    string
	reason   string
}

// kind supplies the per-row-kind stages to the shared streaming loop.
type kind[R any] struct {
	name   string
	parse  func(line []byte) (R, error)
	clean  func(r R) outcome
	export func(r R) (int, error)
	// skipExport reports export errors that reject the row instead of aborting.
	skipExport func(err error) bool
}

// core holds what both pipelines share: skip log, listeners, logging.
type core[R any] struct {
	kind      kind[R]
	skipLog   *SkipLog[R]
	listeners []Listener[R]
	logger    *slog.Logger
	created   bool
}

func newCore[R any](k kind[R], logger *slog.Logger, listeners []Listener[R]) *core[R] {
	skipLog := NewSkipLog[R](k.name)
	all := make([]Listener[R], 0, len(listeners)+1)
	all = append(all, skipLog)
	for _, l := range listeners {
		if l != nil {
			all = append(all, l)
		}
	}
	return &core[R]{
		kind:      k,
		skipLog:   skipLog,
		listeners: all,
		logger:    logging.NewComponentLogger(logger, "pipeline"),
	}
}

func (c *core[R]) create(dir string) error {
	if c.created {
		return faults.Wrap(faults.ErrExport, c.kind.name, "create", "pipeline already created", nil)
	}
	if err := c.skipLog.Create(dir); err != nil {
		return faults.Wrap(faults.ErrExport, c.kind.name, "create skip log", "", err)
	}
	c.created = true
	return nil
}

func (c *core[R]) convert(ctx context.Context, path string) (Stats, error) {
	var stats Stats
	if !c.created {
		return stats, faults.Wrap(faults.ErrExport, c.kind.name, "convert", "pipeline not created", nil)
	}
	logger := logging.WithContext(logging.WithKind(ctx, c.kind.name), c.logger)

	file, err := os.Open(path)
	if err != nil {
		return stats, faults.Wrap(faults.ErrExport, c.kind.name, "open input", path, err)
	}
	defer file.Close()
	var size int64
	if info, statErr := file.Stat(); statErr == nil {
		size = info.Size()
	}

	started := time.Now()
	logger.Info("conversion started", logging.String("input", path), logging.Int64("bytes", size))
	for _, l := range c.listeners {
		l.FileStarted(path)
	}

	sampler := logging.NewProgressSampler(10)
	reader := bufio.NewReader(file)
	lineNo := 0
	for {
		if err := ctx.Err(); err != nil {
			return stats, faults.Wrap(faults.ErrExport, c.kind.name, "convert", "cancelled", err)
		}
		line, readErr := reader.ReadBytes('\n')
		if len(line) > 0 {
			lineNo++
			stats.Bytes += int64(len(line))
			if err := c.processLine(lineNo, line, &stats, logger); err != nil {
				return stats, err
			}
			if sampler.ShouldLog(stats.Bytes, size) {
				logger.Debug("conversion progress",
					logging.Int("line", lineNo),
					logging.Int64("bytes_read", stats.Bytes),
					logging.Int("exported", stats.Exported),
					logging.Int("skipped", stats.Skipped),
				)
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return stats, faults.Wrap(faults.ErrExport, c.kind.name, "read input", fmt.Sprintf("line %d", lineNo+1), readErr)
		}
	}
	if err := c.skipLog.Err(); err != nil {
		return stats, faults.Wrap(faults.ErrExport, c.kind.name, "skip log", "", err)
	}

	for _, l := range c.listeners {
		l.FileFinished(path, stats)
	}
	logger.Info("conversion finished",
		logging.Int("read", stats.Read),
		logging.Int("exported", stats.Exported),
		logging.Int("skipped", stats.Skipped),
		logging.Duration("elapsed", time.Since(started)),
	)
	return stats, nil
}

func (c *core[R]) processLine(lineNo int, text []byte, stats *Stats, logger *slog.Logger) error {
	text = bytes.TrimSpace(text)
	if len(text) == 0 {
		return nil
	}
	stats.Read++
	line := Line{Number: lineNo, Text: text}

	r, err := c.kind.parse(text)
	if err != nil {
		c.skip(line, StageFix, err.Error(), stats, logger)
		return nil
	}
	if result := c.kind.clean(r); !result.accepted {
		c.skip(line, result.stage, result.reason, stats, logger)
		return nil
	}
	exportID, err := c.kind.export(r)
	if err != nil {
		if c.kind.skipExport != nil && c.kind.skipExport(err) {
			c.skip(line, StageFix, err.Error(), stats, logger)
			return nil
		}
		return faults.Wrap(faults.ErrExport, c.kind.name, "export row", fmt.Sprintf("line %d", lineNo), err)
	}
	stats.Exported++
	for _, l := range c.listeners {
		l.RowExported(line, r, exportID)
	}
	return nil
}

func (c *core[R]) skip(line Line, stage, reason string, stats *Stats, logger *slog.Logger) {
	stats.skip(stage)
	logger.Debug("row skipped",
		logging.Int("line", line.Number),
		logging.String(logging.FieldStage, stage),
		logging.String("reason", reason),
	)
	for _, l := range c.listeners {
		l.RowSkipped(line, stage, reason)
	}
}

func (c *core[R]) close() error {
	if err := c.skipLog.Close(); err != nil {
		return faults.Wrap(faults.ErrExport, c.kind.name, "close skip log", "", err)
	}
	return nil
}

func rejected(stage, description, detail string) outcome {
	reason := "rejected: " + description
	if detail != "" {
		reason += ": " + detail
	}
	return outcome{stage: stage, reason: reason}
}
