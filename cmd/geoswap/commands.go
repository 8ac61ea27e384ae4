package main

import (
	"fmt"

	"github.com/woozymasta/geoswap/internal/config"
	"github.com/woozymasta/geoswap/internal/geo"
	"github.com/woozymasta/geoswap/internal/jsonio"
	"github.com/woozymasta/geoswap/internal/processor"

	"github.com/rs/zerolog/log"
)

// FileOptions are shared by the single file commands.
type FileOptions struct {
	Input  string `short:"i" long:"in"      description:"Input file path, - reads stdin" required:"true"`
	Output string `short:"o" long:"out"     description:"Output file path, - writes stdout. Overwrites input if empty"`
	Indent string `long:"indent"            description:"Indent output JSON with this string, compact if empty"`
	DryRun bool   `short:"n" long:"dry-run" description:"Swap and report without writing"`
}

func (o FileOptions) job(kind geo.Kind) processor.Job {
	return processor.Job{
		Name:   string(kind),
		Kind:   kind,
		Input:  o.Input,
		Output: o.Output,
		Write:  jsonio.WriteOptions{Indent: o.Indent},
		DryRun: o.DryRun,
	}
}

// PolygonCommand swaps the pairs of polygon rings.
type PolygonCommand struct {
	FileOptions
	AllRings bool `short:"a" long:"all-rings" description:"Swap every ring instead of only the outer one"`
}

// Execute implements flags.Commander.
func (c *PolygonCommand) Execute(_ []string) error {
	job := c.job(geo.KindPolygon)
	if c.AllRings {
		job.Scope = geo.AllRings
	}

	_, err := processor.ProcessDataset(job)
	return err
}

// PointCommand swaps single point pairs.
type PointCommand struct {
	FileOptions
}

// Execute implements flags.Commander.
func (c *PointCommand) Execute(_ []string) error {
	_, err := processor.ProcessDataset(c.job(geo.KindPoint))
	return err
}

// RunCommand processes configured datasets.
type RunCommand struct {
	ConfigFile      string   `short:"c" long:"config"            env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	Limit           []string `short:"l" long:"limit"             env:"LIMIT_NAMES" env-delim:"," description:"Limit processing to specific dataset names"`
	ContinueOnError bool     `short:"k" long:"continue-on-error" description:"Keep processing remaining datasets after a failure"`
	DryRun          bool     `short:"n" long:"dry-run"           description:"Swap and report without writing"`
}

// Execute implements flags.Commander.
func (c *RunCommand) Execute(_ []string) error {
	cfg, err := config.Load(c.ConfigFile)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	datasets, unknown := cfg.Select(c.Limit)
	for _, name := range unknown {
		log.Error().
			Str("name", name).
			Msg("Dataset specified in --limit not found in configuration")
	}

	jobs := make([]processor.Job, 0, len(datasets))
	for _, d := range datasets {
		job, err := processor.JobFromDataset(d, cfg.Indent)
		if err != nil {
			return fmt.Errorf("dataset %q: %w", d.Name, err)
		}
		job.DryRun = c.DryRun
		jobs = append(jobs, job)
	}

	log.Info().
		Int("datasets_total", len(cfg.Datasets)).
		Int("datasets_queued", len(jobs)).
		Bool("dry_run", c.DryRun).
		Msg("Starting run")

	if err := processor.ProcessAll(jobs, c.ContinueOnError); err != nil {
		return err
	}

	log.Info().Msg("Run finished successfully")
	return nil
}
