package archive

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// maxDocumentSize bounds one BSON document; mongod itself caps documents at 16 MiB.
const maxDocumentSize = 48 << 20

// dateLayout renders BSON datetimes in UTC with millisecond precision.
const dateLayout = "2006-01-02T15:04:05.000Z"

// DecodeCollection converts the BSON collection at bsonPath into one JSON
// object per line at outPath and returns the number of documents written.
func DecodeCollection(ctx context.Context, bsonPath, outPath string) (int, error) {
	in, err := os.Open(bsonPath)
	if err != nil {
		return 0, fmt.Errorf("%w: open %s: %w", ErrExtraction, bsonPath, err)
	}
	defer in.Close()

	out, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("%w: create %s: %w", ErrExtraction, outPath, err)
	}
	w := bufio.NewWriter(out)
	count, err := decodeStream(ctx, bufio.NewReader(in), w)
	if err == nil {
		err = w.Flush()
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if errors.Is(err, ErrExtraction) {
			return count, fmt.Errorf("%s: %w", bsonPath, err)
		}
		return count, fmt.Errorf("%w: %s: %w", ErrExtraction, bsonPath, err)
	}
	return count, nil
}

func decodeStream(ctx context.Context, r io.Reader, w io.Writer) (int, error) {
	var header [4]byte
	var buf bytes.Buffer
	count := 0
	for {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		if _, err := io.ReadFull(r, header[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return count, nil
			}
			return count, fmt.Errorf("%w: document %d: truncated length prefix", ErrExtraction, count+1)
		}
		size := int64(binary.LittleEndian.Uint32(header[:]))
		if size < 5 || size > maxDocumentSize {
			return count, fmt.Errorf("%w: document %d: invalid length %d", ErrExtraction, count+1, size)
		}
		doc := make([]byte, size)
		copy(doc, header[:])
		if _, err := io.ReadFull(r, doc[4:]); err != nil {
			return count, fmt.Errorf("%w: document %d: truncated body", ErrExtraction, count+1)
		}
		raw := bson.Raw(doc)
		if err := raw.Validate(); err != nil {
			return count, fmt.Errorf("%w: document %d: %w", ErrExtraction, count+1, err)
		}
		buf.Reset()
		if err := writeDocument(&buf, raw); err != nil {
			return count, fmt.Errorf("%w: document %d: %w", ErrExtraction, count+1, err)
		}
		buf.WriteByte('\n')
		if _, err := w.Write(buf.Bytes()); err != nil {
			return count, err
		}
		count++
	}
}

func writeDocument(buf *bytes.Buffer, raw bson.Raw) error {
	elems, err := raw.Elements()
	if err != nil {
		return err
	}
	buf.WriteByte('{')
	for i, elem := range elems {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(buf, elem.Key())
		buf.WriteByte(':')
		if err := writeValue(buf, elem.Value()); err != nil {
			return fmt.Errorf("field %q: %w", elem.Key(), err)
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeArray(buf *bytes.Buffer, raw bson.Raw) error {
	values, err := raw.Values()
	if err != nil {
		return err
	}
	buf.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeValue(buf, v); err != nil {
			return fmt.Errorf("index %d: %w", i, err)
		}
	}
	buf.WriteByte(']')
	return nil
}

func writeValue(buf *bytes.Buffer, v bson.RawValue) error {
	switch v.Type {
	case bsontype.Double:
		writeFloat(buf, v.Double())
	case bsontype.String:
		writeString(buf, v.StringValue())
	case bsontype.EmbeddedDocument:
		return writeDocument(buf, bson.Raw(v.Value))
	case bsontype.Array:
		return writeArray(buf, bson.Raw(v.Value))
	case bsontype.Binary:
		_, data := v.Binary()
		writeString(buf, base64.StdEncoding.EncodeToString(data))
	case bsontype.ObjectID:
		writeString(buf, v.ObjectID().Hex())
	case bsontype.Boolean:
		buf.WriteString(strconv.FormatBool(v.Boolean()))
	case bsontype.DateTime:
		writeString(buf, time.UnixMilli(v.DateTime()).UTC().Format(dateLayout))
	case bsontype.Regex:
		pattern, options := v.Regex()
		writeString(buf, "/"+pattern+"/"+options)
	case bsontype.DBPointer:
		ns, oid := v.DBPointer()
		writeString(buf, ns+"/"+oid.Hex())
	case bsontype.JavaScript:
		writeString(buf, v.JavaScript())
	case bsontype.Symbol:
		writeString(buf, v.Symbol())
	case bsontype.CodeWithScope:
		code, _ := v.CodeWithScope()
		writeString(buf, code)
	case bsontype.Int32:
		buf.WriteString(strconv.FormatInt(int64(v.Int32()), 10))
	case bsontype.Timestamp:
		seconds, _ := v.Timestamp()
		writeString(buf, time.Unix(int64(seconds), 0).UTC().Format(dateLayout))
	case bsontype.Int64:
		buf.WriteString(strconv.FormatInt(v.Int64(), 10))
	case bsontype.Decimal128:
		writeString(buf, v.Decimal128().String())
	case bsontype.Null, bsontype.Undefined, bsontype.MinKey, bsontype.MaxKey:
		buf.WriteString("null")
	default:
		return fmt.Errorf("unsupported BSON type %v", v.Type)
	}
	return nil
}

func writeFloat(buf *bytes.Buffer, f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		buf.WriteString("null")
		return
	}
	buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
}

func writeString(buf *bytes.Buffer, s string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	// Encode terminates with a newline.
	buf.Truncate(buf.Len() - 1)
}
