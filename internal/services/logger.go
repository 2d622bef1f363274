package services

import (
	"os"

	"github.com/rs/zerolog"
)

// logger is the shared structured logger for the services layer
var logger = zerolog.New(os.Stdout).With().Timestamp().Str("layer", "service").Logger()
