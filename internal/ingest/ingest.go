package ingest

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

var (
	// ErrUnsupportedContent is returned for input that is not text after decompression.
	ErrUnsupportedContent = errors.New("ingest: unsupported content type")
	// ErrTooLarge is returned when decoded input exceeds Options.MaxBytes.
	ErrTooLarge = errors.New("ingest: input too large")
)

// Compression formats recognized by magic number or extension.
const (
	CompressionNone = ""
	CompressionGzip = "gzip"
	CompressionZstd = "zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Options bounds a read.
type Options struct {
	// MaxBytes caps the decompressed size. Zero means unlimited.
	MaxBytes int64
}

// Document is a decoded UTF-8 text input.
type Document struct {
	Name        string `json:"name"`
	Text        string `json:"-"`
	MIME        string `json:"mime"`
	Charset     string `json:"charset"`
	Compression string `json:"compression,omitempty"`
	Size        int    `json:"size"`
}

// ReadFile reads and decodes the file at path.
func ReadFile(path string, opts Options) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	defer f.Close()
	return Read(f, filepath.Base(path), opts)
}

// Read decompresses r if needed, rejects non-text content and transcodes the
// result to UTF-8. name is used for extension hints and reporting.
func Read(r io.Reader, name string, opts Options) (*Document, error) {
	body, compression, closeFn, err := decompress(bufio.NewReader(r), name)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	data, err := readLimited(body, opts.MaxBytes)
	if err != nil {
		return nil, err
	}

	mtype := mimetype.Detect(data)
	if !isText(mtype) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContent, mtype.String())
	}

	text, cs, err := toUTF8(data)
	if err != nil {
		return nil, err
	}

	return &Document{
		Name:        name,
		Text:        text,
		MIME:        mtype.String(),
		Charset:     cs,
		Compression: compression,
		Size:        len(data),
	}, nil
}

func decompress(br *bufio.Reader, name string) (io.Reader, string, func(), error) {
	head, _ := br.Peek(len(zstdMagic))
	ext := strings.ToLower(filepath.Ext(name))

	switch {
	case bytes.HasPrefix(head, gzipMagic) || ext == ".gz":
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, "", nil, fmt.Errorf("ingest: gzip: %w", err)
		}
		return zr, CompressionGzip, func() { zr.Close() }, nil
	case bytes.HasPrefix(head, zstdMagic) || ext == ".zst":
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, "", nil, fmt.Errorf("ingest: zstd: %w", err)
		}
		return zr, CompressionZstd, zr.Close, nil
	default:
		return br, CompressionNone, func() {}, nil
	}
}

func readLimited(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("ingest: read: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, fmt.Errorf("ingest: read: %w", err)
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, max)
	}
	return data, nil
}

func isText(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "text/") {
			return true
		}
	}
	return false
}

// toUTF8 decodes data using its BOM, or chardet when it is not plain UTF-8.
func toUTF8(data []byte) (string, string, error) {
	label := detectCharset(data)
	if label == "utf-8" {
		return strings.TrimPrefix(string(data), "\ufeff"), label, nil
	}

	enc, name := charset.Lookup(label)
	if enc == nil {
		return "", "", fmt.Errorf("%w: unknown charset %q", ErrUnsupportedContent, label)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", fmt.Errorf("ingest: decode %s: %w", name, err)
	}
	return strings.TrimPrefix(string(decoded), "\ufeff"), name, nil
}

func detectCharset(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte{0xff, 0xfe}):
		return "utf-16le"
	case bytes.HasPrefix(data, []byte{0xfe, 0xff}):
		return "utf-16be"
	case utf8.Valid(data) && bytes.IndexByte(data, 0) < 0:
		return "utf-8"
	}

	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}
