package deck

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/pebblebed/kugel/pkg/core"
)

// CompressedExt is appended to compressed deck file names.
const CompressedExt = ".zst"

// NewZstdWriter wraps w in a zstd encoder. Close the encoder to finish the frame.
func NewZstdWriter(w io.Writer) (*zstd.Encoder, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	return enc, nil
}

// WriteFile writes the deck to path, creating parent directories. With
// compress set the deck is zstd-compressed and CompressedExt is appended to
// path. It returns the path written.
func WriteFile(path string, c *core.Core, compress bool) (string, error) {
	if compress {
		path += CompressedExt
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("opening deck file: %w", err)
	}
	defer f.Close()

	if !compress {
		if err := NewTextWriter(f).WriteCore(c); err != nil {
			return "", err
		}
		return path, f.Close()
	}

	enc, err := NewZstdWriter(f)
	if err != nil {
		return "", err
	}
	if err := NewTextWriter(enc).WriteCore(c); err != nil {
		enc.Close()
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("finishing zstd frame: %w", err)
	}
	return path, f.Close()
}

// ReadFile returns the deck text at path, decompressing files that end in
// CompressedExt.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = f
	if filepath.Ext(path) == CompressedExt {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer dec.Close()
		r = dec
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading deck: %w", err)
	}
	return string(data), nil
}
