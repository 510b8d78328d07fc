package config

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const envFilePathVar = "ENV_FILE_PATH"

// Load seeds the environment from AWS Secrets Manager (when configured) and a
// .env file, then parses it. Variables already set in the process win over
// the .env file.
func Load(ctx context.Context) (Config, error) {
	if err := LoadSecrets(ctx); err != nil {
		log.Warn().Err(err).Msg("Skipping AWS Secrets Manager load")
	}
	loadDotEnv()
	return Parse()
}

func loadDotEnv() {
	envFile := os.Getenv(envFilePathVar)
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Debug().Str("file", envFile).Msg(".env file not found, using process environment")
	}
}
