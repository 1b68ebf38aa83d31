package archive

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gabraconv/internal/fileutil"
)

// ErrExtraction marks malformed archives and undecodable collections.
var ErrExtraction = errors.New("archive extraction failed")

// Collection names the two mongodump collections a dump must contain.
const (
	LexemesCollection   = "lexemes"
	WordformsCollection = "wordforms"
)

// maxEntrySize bounds a single archive member.
const maxEntrySize = 4 << 30

// Dump is an extracted archive.
type Dump struct {
	Dir       string
	Lexemes   Collection
	Wordforms Collection
}

// Collection is one BSON collection file and its optional sidecar.
type Collection struct {
	Name     string
	BSONPath string
	// MetadataPath is empty when the dump carries no sidecar.
	MetadataPath string
	Metadata     *Metadata
}

// Metadata is the subset of a mongodump *.metadata.json sidecar that is checked.
type Metadata struct {
	CollectionName string            `json:"collectionName"`
	UUID           string            `json:"uuid"`
	Indexes        []json.RawMessage `json:"indexes"`
}

// Extract expands the .tar.gz at archivePath into destDir and locates the collections.
func Extract(ctx context.Context, archivePath, destDir string) (*Dump, error) {
	if err := unpack(ctx, archivePath, destDir); err != nil {
		return nil, err
	}
	lexemes, err := locate(destDir, LexemesCollection)
	if err != nil {
		return nil, err
	}
	wordforms, err := locate(destDir, WordformsCollection)
	if err != nil {
		return nil, err
	}
	return &Dump{Dir: destDir, Lexemes: lexemes, Wordforms: wordforms}, nil
}

func unpack(ctx context.Context, archivePath, destDir string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrExtraction, archivePath, err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("%w: %s is not gzip compressed: %w", ErrExtraction, archivePath, err)
	}
	defer gz.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrExtraction, destDir, err)
	}
	tr := tar.NewReader(gz)
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrExtraction, err)
		}
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: read %s: %w", ErrExtraction, archivePath, err)
		}
		target, err := entryPath(destDir, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("%w: create %s: %w", ErrExtraction, target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("%w: create %s: %w", ErrExtraction, filepath.Dir(target), err)
			}
			if _, err := fileutil.WriteNew(target, tr, 0o644, maxEntrySize); err != nil {
				return fmt.Errorf("%w: write %s: %w", ErrExtraction, hdr.Name, err)
			}
		case tar.TypeXGlobalHeader:
			// Global PAX headers carry no file data.
		default:
			return fmt.Errorf("%w: unsupported entry %q (type %q)", ErrExtraction, hdr.Name, hdr.Typeflag)
		}
	}
}

// entryPath resolves name under destDir, rejecting entries that escape it.
func entryPath(destDir, name string) (string, error) {
	clean := path.Clean(strings.TrimPrefix(name, "./"))
	if clean == "." {
		return destDir, nil
	}
	local := filepath.FromSlash(clean)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("%w: entry %q escapes the extraction directory", ErrExtraction, name)
	}
	return filepath.Join(destDir, local), nil
}

func locate(root, name string) (Collection, error) {
	var matches []string
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == name+".bson" {
			matches = append(matches, p)
		}
		return nil
	})
	if err != nil {
		return Collection{}, fmt.Errorf("%w: scan %s: %w", ErrExtraction, root, err)
	}
	switch len(matches) {
	case 0:
		return Collection{}, fmt.Errorf("%w: archive has no %s.bson", ErrExtraction, name)
	case 1:
	default:
		sort.Strings(matches)
		return Collection{}, fmt.Errorf("%w: archive has several %s.bson files: %s", ErrExtraction, name, strings.Join(matches, ", "))
	}

	col := Collection{Name: name, BSONPath: matches[0]}
	sidecar := filepath.Join(filepath.Dir(matches[0]), name+".metadata.json")
	if _, err := os.Stat(sidecar); err == nil {
		meta, err := readMetadata(sidecar)
		if err != nil {
			return Collection{}, err
		}
		if meta.CollectionName != "" && meta.CollectionName != name {
			return Collection{}, fmt.Errorf("%w: %s describes collection %q, expected %q", ErrExtraction, sidecar, meta.CollectionName, name)
		}
		col.MetadataPath = sidecar
		col.Metadata = meta
	}
	return col, nil
}

func readMetadata(p string) (*Metadata, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrExtraction, p, err)
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrExtraction, p, err)
	}
	return &meta, nil
}
