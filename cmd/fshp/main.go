package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/hasbyte1/go-fshp/internal/command"
)

func main() {
	_ = godotenv.Load()

	cfg, err := command.LoadConfig(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	app, err := command.New(cfg, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init fshp")
	}

	os.Exit(app.Run(os.Args))
}
