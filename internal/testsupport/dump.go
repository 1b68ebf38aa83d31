package testsupport

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path"
	"path/filepath"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

// DumpDir is the directory mongodump wrote the Ġabra collections to.
const DumpDir = "tmp/gabra"

// Entry is one regular file inside a test archive.
type Entry struct {
	Name string
	Data []byte
}

// BSONCollection concatenates docs the way mongodump writes a .bson file.
func BSONCollection(t testing.TB, docs ...bson.D) []byte {
	t.Helper()

	var buf bytes.Buffer
	for i, doc := range docs {
		encoded, err := bson.Marshal(doc)
		if err != nil {
			t.Fatalf("marshal document %d: %v", i, err)
		}
		buf.Write(encoded)
	}
	return buf.Bytes()
}

// WriteArchive writes a .tar.gz at dest holding entries in order.
func WriteArchive(t testing.TB, dest string, entries ...Entry) string {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	dirs := map[string]bool{}
	for _, e := range entries {
		for dir := path.Dir(e.Name); dir != "." && dir != "/" && !dirs[dir]; dir = path.Dir(dir) {
			dirs[dir] = true
			if err := tw.WriteHeader(&tar.Header{Name: dir + "/", Typeflag: tar.TypeDir, Mode: 0o755}); err != nil {
				t.Fatalf("write dir header %s: %v", dir, err)
			}
		}
		hdr := &tar.Header{Name: e.Name, Typeflag: tar.TypeReg, Mode: 0o644, Size: int64(len(e.Data))}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("write header %s: %v", e.Name, err)
		}
		if _, err := tw.Write(e.Data); err != nil {
			t.Fatalf("write entry %s: %v", e.Name, err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", dest, err)
	}
	if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", dest, err)
	}
	return dest
}

// DumpArchive writes a Ġabra dump archive with both collections and their
// metadata sidecars under DumpDir.
func DumpArchive(t testing.TB, dest string, lexemes, wordforms []bson.D) string {
	t.Helper()

	return WriteArchive(t, dest,
		Entry{Name: DumpDir + "/lexemes.bson", Data: BSONCollection(t, lexemes...)},
		Entry{Name: DumpDir + "/lexemes.metadata.json", Data: []byte(`{"options":{},"indexes":[],"collectionName":"lexemes"}`)},
		Entry{Name: DumpDir + "/wordforms.bson", Data: BSONCollection(t, wordforms...)},
		Entry{Name: DumpDir + "/wordforms.metadata.json", Data: []byte(`{"options":{},"indexes":[],"collectionName":"wordforms"}`)},
	)
}
