// Package processor runs the load, swap and write pipeline for datasets.
package processor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/woozymasta/geoswap/internal/config"
	"github.com/woozymasta/geoswap/internal/geo"
	"github.com/woozymasta/geoswap/internal/jsonio"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"
)

// StdioPath as Input or Output selects stdin or stdout.
const StdioPath = "-"

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

// Job is a single dataset to clean.
type Job struct {
	Name   string
	Kind   geo.Kind
	Input  string
	Output string // defaults to Input
	Scope  geo.RingScope
	Write  jsonio.WriteOptions
	DryRun bool
}

// Result summarizes a processed job.
type Result struct {
	Output       string
	Stats        geo.Stats
	InputDigest  uint64
	OutputDigest uint64
	Bytes        int
	Written      bool
}

// JobFromDataset converts a configured dataset into a job.
func JobFromDataset(d config.Dataset, indent string) (Job, error) {
	kind, err := geo.ParseKind(d.Kind)
	if err != nil {
		return Job{}, err
	}

	scope := geo.FirstRing
	if d.AllRings {
		scope = geo.AllRings
	}

	return Job{
		Name:   d.Name,
		Kind:   kind,
		Input:  d.Input,
		Output: d.Output,
		Scope:  scope,
		Write:  jsonio.WriteOptions{Indent: indent},
	}, nil
}

// ProcessDataset loads the job input, swaps its coordinates and writes the result.
// Nothing is written unless the whole document was swapped and encoded successfully.
func ProcessDataset(job Job) (Result, error) {
	var res Result

	output := job.Output
	if output == "" {
		output = job.Input
	}
	res.Output = output

	logger := log.With().
		Str("dataset", job.Name).
		Str("kind", string(job.Kind)).
		Logger()

	start := time.Now()

	inHash := xxhash.New()
	doc, err := readInput(job.Input, inHash)
	if err != nil {
		return res, fmt.Errorf("load: %w", err)
	}
	res.InputDigest = inHash.Sum64()

	logger.Debug().
		Str("input", job.Input).
		Str("digest", fmt.Sprintf("%016x", res.InputDigest)).
		Msg("Input loaded")

	out, st, err := geo.Swap(doc, job.Kind, job.Scope)
	if err != nil {
		return res, fmt.Errorf("swap: %w", err)
	}
	res.Stats = st

	data, err := jsonio.Marshal(out, job.Write)
	if err != nil {
		return res, err
	}
	res.OutputDigest = xxhash.Sum64(data)
	res.Bytes = len(data)

	event := logger.Info().
		Str("output", output).
		Int("features", st.Features).
		Int("pairs", st.Pairs).
		Bool("lon_lat", st.LonLat()).
		Str("digest", fmt.Sprintf("%016x", res.OutputDigest)).
		Dur("duration", time.Since(start))
	if job.Kind == geo.KindPolygon {
		event = event.Int("rings", st.Rings).Str("ring_scope", job.Scope.String())
	}
	if st.Pairs > 0 {
		event = event.Floats64("bound", []float64{
			st.Bound.Min[0], st.Bound.Min[1], st.Bound.Max[0], st.Bound.Max[1],
		})
	}

	if job.DryRun {
		event.Msg("Dry run, output not written")
		return res, nil
	}

	if err := writeOutput(output, data); err != nil {
		event.Discard()
		return res, fmt.Errorf("write: %w", err)
	}
	res.Written = true

	event.Msg("Coordinates swapped")
	return res, nil
}

// ProcessAll runs jobs in order. Unless continueOnError is set it stops at the first failure;
// otherwise every failure is logged and all of them are returned joined.
func ProcessAll(jobs []Job, continueOnError bool) error {
	var errs []error

	for _, job := range jobs {
		if _, err := ProcessDataset(job); err != nil {
			err = fmt.Errorf("dataset %q: %w", job.Name, err)
			if !continueOnError {
				return err
			}

			log.Error().Err(err).Str("dataset", job.Name).Msg("Failed to process dataset")
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func readInput(path string, sink io.Writer) (any, error) {
	if path == StdioPath {
		return jsonio.Read(io.TeeReader(stdin, sink))
	}
	return jsonio.LoadTee(path, sink)
}

func writeOutput(path string, data []byte) error {
	if path == StdioPath {
		_, err := stdout.Write(data)
		return err
	}
	return jsonio.WriteFile(path, data)
}
