package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/woozymasta/stateplane/internal/config"
	"github.com/woozymasta/stateplane/internal/logger"
	"github.com/woozymasta/stateplane/internal/observability"
	"github.com/woozymasta/stateplane/internal/server"
	"github.com/woozymasta/stateplane/internal/stateplane"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"  env:"CONFIG_FILE"    description:"Path to configuration file (defaults are used if empty)"`
	Engine     string `short:"e" long:"engine"  env:"ENGINE"         description:"Override projection engine" choice:"native" choice:"proj"`
	Addr       string `short:"a" long:"addr"    env:"LISTEN_ADDRESS" description:"Address to listen on"  default:"0.0.0.0"`
	Port       int    `short:"p" long:"port"    env:"LISTEN_PORT"    description:"Port to listen on"     default:"8080"`
	NoMetrics  bool   `long:"no-metrics"        env:"NO_METRICS"     description:"Disable the /metrics endpoint"`
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

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
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

	var metrics *observability.ConversionCollector
	if !opts.NoMetrics {
		metrics, err = observability.NewConversionCollector(nil)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to register metrics")
		}
	}

	srvCtx := server.NewServerContext(conv, metrics)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           srvCtx.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info().
		Str("addr", listenAddr).
		Str("engine", conv.Engine()).
		Str("inverse_check", string(conv.Check())).
		Bool("metrics", metrics != nil).
		Msg("Web server started")

	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
