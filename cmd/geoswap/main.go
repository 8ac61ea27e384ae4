package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/woozymasta/geoswap/internal/logger"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Polygon PolygonCommand `command:"polygon" description:"Swap axis order of polygon rings, keeping the whole collection"`
	Point   PointCommand   `command:"point"   description:"Swap axis order of points, writing the features array only"`
	Run     RunCommand     `command:"run"     description:"Process the datasets listed in a configuration file"`
}

func main() {
	// values from .env only fill variables that are not already set
	_ = godotenv.Load(".env")

	var opts Options
	parser := newParser(&opts)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		opts.Logger.Setup()
		return cmd.Execute(args)
	}

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) {
			if flagsErr.Type == flags.ErrHelp {
				fmt.Fprintln(os.Stdout, flagsErr.Message)
				os.Exit(0)
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		log.Fatal().Err(err).Msg("Command failed")
	}
}

// newParser builds the command line parser. Errors and help are printed by the caller.
func newParser(opts *Options) *flags.Parser {
	return flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
}
