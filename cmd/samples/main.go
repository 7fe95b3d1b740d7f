package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/woozymasta/stateplane/internal/config"
	"github.com/woozymasta/stateplane/internal/geo"
	"github.com/woozymasta/stateplane/internal/logger"
	"github.com/woozymasta/stateplane/internal/stateplane"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to configuration file (built-in samples if empty)"`
	Engine     string `short:"e" long:"engine" env:"ENGINE"      description:"Override projection engine" choice:"native" choice:"proj"`
	Format     string `short:"f" long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`
}

// converter is the part of *stateplane.Converter the runner needs.
type converter interface {
	Project(lat, lon float64) (stateplane.Projected, error)
	Unproject(x, y float64) (stateplane.Geographic, error)
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if opts.Engine != "" {
		cfg.Engine = opts.Engine
	}

	conv, err := stateplane.New(cfg.Converter())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build converter")
	}
	defer func() { _ = conv.Close() }()

	fc := convertSamples(conv, cfg.Samples)

	// marshal
	var outputData []byte
	if opts.Format == "yaml" {
		outputData, err = yaml.Marshal(fc)
	} else {
		outputData, err = json.MarshalIndent(fc, "", "  ")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal samples")
	}

	fmt.Println(string(outputData))

	log.Info().
		Int("samples", len(cfg.Samples)).
		Int("converted", len(fc.Features)).
		Str("engine", conv.Engine()).
		Msg("Samples converted")
}

// convertSamples runs every sample through the converter.
// Each result is a Point feature carrying both coordinate pairs; failed samples are skipped.
func convertSamples(conv converter, samples []config.Sample) geo.FeatureCollection {
	fc := geo.NewFeatureCollection(len(samples))

	for _, s := range samples {
		switch {
		case s.IsForward():
			p, err := conv.Project(*s.Lat, *s.Lon)
			if err != nil {
				log.Warn().Err(err).Str("sample", s.Name).Msg("Skipping sample")
				continue
			}
			fc.Add(geo.NewPoint(*s.Lon, *s.Lat, map[string]interface{}{
				"name":      s.Name,
				"direction": "project",
				"x":         p.X,
				"y":         p.Y,
			}))

		case s.IsInverse():
			g, err := conv.Unproject(*s.X, *s.Y)
			if err != nil {
				log.Warn().Err(err).Str("sample", s.Name).Msg("Skipping sample")
				continue
			}
			fc.Add(geo.NewPoint(g.Lon, g.Lat, map[string]interface{}{
				"name":      s.Name,
				"direction": "unproject",
				"x":         *s.X,
				"y":         *s.Y,
			}))

		default:
			log.Warn().Str("sample", s.Name).Msg("Skipping sample without coordinates")
		}
	}

	return fc
}
