package convert

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"gabraconv/internal/archive"
	"gabraconv/internal/faults"
	"gabraconv/internal/fileutil"
	"gabraconv/internal/logging"
	"gabraconv/internal/pipeline"
	"gabraconv/internal/row"
)

// Summary reports the outcome of a completed run.
type Summary struct {
	RunID       string
	ArchivePath string
	OutDir      string
	// LexemeDocuments and WordformDocuments count decoded BSON documents.
	LexemeDocuments   int
	WordformDocuments int
	Lexemes           pipeline.Stats
	Wordforms         pipeline.Stats
	Files             []string
	// Checksums maps each path in Files to its hex SHA256 digest.
	Checksums map[string]string
	Elapsed   time.Duration
}

// LockPath returns the lock file guarding outDir.
func LockPath(outDir string) string {
	return filepath.Clean(outDir) + ".lock"
}

// Run performs one conversion.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	p, err := validate(opts)
	if err != nil {
		return nil, err
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(opts.Logger, "convert"))
	listener := opts.Listener
	if listener == nil {
		listener = NopRunListener{}
	}
	started := time.Now()

	unlock, err := acquireOutput(p.outDir)
	if err != nil {
		return nil, err
	}
	defer unlock()
	logger.Info("output directory created", logging.String("out_dir", p.outDir))

	lexemes, err := pipeline.NewLexeme(p.lexemeCleaners, p.lexemeExporter, opts.Logger,
		&rowCounter[*row.Lexeme]{kind: pipeline.LexemeKind, listener: listener})
	if err != nil {
		return nil, err
	}
	defer lexemes.Close()
	wordforms, err := pipeline.NewWordform(p.wordformCleaners, p.wordformExporter, opts.Logger,
		&rowCounter[*row.Wordform]{kind: pipeline.WordformKind, listener: listener})
	if err != nil {
		return nil, err
	}
	defer wordforms.Close()
	if err := lexemes.Create(p.outDir); err != nil {
		return nil, err
	}
	if err := wordforms.Create(p.outDir); err != nil {
		return nil, err
	}

	work, cleanup, err := makeWorkDir(p.workDir)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	summary := &Summary{RunID: runID, ArchivePath: p.archivePath, OutDir: p.outDir}

	listener.ExtractionStarted(p.archivePath)
	lexemeInput, wordformInput, err := extract(ctx, logger, p.archivePath, work, summary)
	if err != nil {
		return nil, err
	}

	listener.ExportStarted(pipeline.LexemeKind)
	if summary.Lexemes, err = lexemes.ConvertFile(ctx, lexemeInput); err != nil {
		return nil, err
	}
	listener.ExportFinished(pipeline.LexemeKind, summary.Lexemes)
	warnSkipped(logger, pipeline.LexemeKind, summary.Lexemes)

	ids, err := lexemes.IDMap()
	if err != nil {
		return nil, err
	}
	logger.Info("lexeme id map frozen", logging.Int("lexemes", ids.Len()))

	listener.ExportStarted(pipeline.WordformKind)
	if summary.Wordforms, err = wordforms.ConvertFile(ctx, wordformInput, ids); err != nil {
		return nil, err
	}
	listener.ExportFinished(pipeline.WordformKind, summary.Wordforms)
	warnSkipped(logger, pipeline.WordformKind, summary.Wordforms)

	if err := errors.Join(lexemes.Close(), wordforms.Close()); err != nil {
		return nil, faults.Wrap(faults.ErrExport, "finish", "close outputs", "", err)
	}
	summary.Files = append(lexemes.Files(), wordforms.Files()...)
	if summary.Checksums, err = checksumFiles(summary.Files); err != nil {
		return nil, err
	}
	summary.Elapsed = time.Since(started)

	logger.Info("conversion completed",
		logging.Int("lexemes_exported", summary.Lexemes.Exported),
		logging.Int("lexemes_skipped", summary.Lexemes.Skipped),
		logging.Int("wordforms_exported", summary.Wordforms.Exported),
		logging.Int("wordforms_skipped", summary.Wordforms.Skipped),
		logging.Duration("elapsed", summary.Elapsed),
	)
	listener.Completed(summary)
	return summary, nil
}

func checksumFiles(files []string) (map[string]string, error) {
	sums := make(map[string]string, len(files))
	for _, file := range files {
		sum, err := fileutil.HashFile(file)
		if err != nil {
			return nil, faults.Wrap(faults.ErrExport, "finish", "checksum outputs", file, err)
		}
		sums[file] = sum
	}
	return sums, nil
}

func warnSkipped(logger *slog.Logger, kind string, stats pipeline.Stats) {
	if stats.Skipped == 0 {
		return
	}
	attrs := []logging.Attr{logging.String(logging.FieldKind, kind), logging.Int("skipped", stats.Skipped)}
	for _, stage := range stats.Stages() {
		attrs = append(attrs, logging.Int("skipped_"+stage, stats.SkippedByStage[stage]))
	}
	logging.WarnWithContext(logger, "rows skipped", "rows_skipped", "rows missing from "+kind+" export; see the skip log", attrs...)
}

// acquireOutput locks outDir and creates it. The returned func releases the lock.
func acquireOutput(outDir string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(outDir), 0o755); err != nil {
		return nil, faults.Wrap(faults.ErrExport, "output", "create parent", filepath.Dir(outDir), err)
	}
	lock := flock.New(LockPath(outDir))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, faults.Wrap(faults.ErrExport, "output", "lock", lock.Path(), err)
	}
	if !locked {
		return nil, faults.Wrap(faults.ErrConfiguration, "output", "lock", "another conversion is writing "+outDir, nil)
	}
	release := func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}
	if err := os.Mkdir(outDir, 0o755); err != nil {
		release()
		if errors.Is(err, fs.ErrExist) {
			return nil, faults.Wrap(faults.ErrConfiguration, "output", "create", fmt.Sprintf("output directory %s already exists", outDir), nil)
		}
		return nil, faults.Wrap(faults.ErrExport, "output", "create", outDir, err)
	}
	return release, nil
}

func makeWorkDir(base string) (string, func(), error) {
	if base != "" {
		if err := os.MkdirAll(base, 0o755); err != nil {
			return "", nil, faults.Wrap(faults.ErrExtraction, "extract", "create work dir", base, err)
		}
	}
	dir, err := os.MkdirTemp(base, "gabraconv-")
	if err != nil {
		return "", nil, faults.Wrap(faults.ErrExtraction, "extract", "create work dir", base, err)
	}
	return dir, func() { _ = os.RemoveAll(dir) }, nil
}

func extract(ctx context.Context, logger *slog.Logger, archivePath, work string, summary *Summary) (string, string, error) {
	logger.Info("extracting dump", logging.String("archive", archivePath), logging.String("work_dir", work))
	dump, err := archive.Extract(ctx, archivePath, filepath.Join(work, "dump"))
	if err != nil {
		return "", "", faults.Wrap(faults.ErrExtraction, "extract", "unpack", "", err)
	}
	lexemeInput := filepath.Join(work, pipeline.LexemeKind+".jsonl")
	if summary.LexemeDocuments, err = archive.DecodeCollection(ctx, dump.Lexemes.BSONPath, lexemeInput); err != nil {
		return "", "", faults.Wrap(faults.ErrExtraction, "extract", "decode lexemes", "", err)
	}
	wordformInput := filepath.Join(work, pipeline.WordformKind+".jsonl")
	if summary.WordformDocuments, err = archive.DecodeCollection(ctx, dump.Wordforms.BSONPath, wordformInput); err != nil {
		return "", "", faults.Wrap(faults.ErrExtraction, "extract", "decode wordforms", "", err)
	}
	logger.Info("dump decoded",
		logging.Int("lexeme_documents", summary.LexemeDocuments),
		logging.Int("wordform_documents", summary.WordformDocuments),
	)
	return lexemeInput, wordformInput, nil
}
