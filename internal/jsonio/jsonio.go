// Package jsonio reads and writes whole JSON documents from files and streams.
package jsonio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

var (
	// ErrParse is returned when the input is not a single valid JSON value.
	ErrParse = errors.New("invalid json")
	// ErrSerialize is returned when a value cannot be encoded as JSON.
	ErrSerialize = errors.New("json serialization failed")
)

// WriteOptions controls the output encoding.
type WriteOptions struct {
	// Indent enables pretty printing when non-empty. Compact output has no trailing newline.
	Indent string
}

// Load reads and parses the JSON document at path.
// A missing file yields an error matching fs.ErrNotExist.
func Load(path string) (any, error) {
	return LoadTee(path, nil)
}

// LoadTee is Load that also copies every byte read from the file to w, if w is not nil.
func LoadTee(path string, w io.Writer) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	// Read-only handle, close error carries no information
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if w != nil {
		r = io.TeeReader(f, w)
	}

	v, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return v, nil
}

// Read decodes exactly one JSON value from r.
// Numbers are kept as json.Number so they are written back verbatim.
func Read(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("%w: unexpected data after top-level value", ErrParse)
		}
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return v, nil
}

// Save writes v to path, truncating any existing content.
// The value is encoded before the file is touched, so an encoding failure leaves it intact.
func Save(path string, v any, opts WriteOptions) error {
	data, err := Marshal(v, opts)
	if err != nil {
		return err
	}

	return WriteFile(path, data)
}

// WriteFile replaces the content of path with data.
func WriteFile(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	// We care about write errors on close
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// Write encodes v to w.
func Write(w io.Writer, v any, opts WriteOptions) error {
	data, err := Marshal(v, opts)
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

// Marshal encodes v according to opts.
func Marshal(v any, opts WriteOptions) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if opts.Indent != "" {
		data, err = json.MarshalIndent(v, "", opts.Indent)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialize, err)
	}

	return data, nil
}
