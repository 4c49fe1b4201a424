// Package config loads application configuration from environment variables
// into tagged structs.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: the
// default .env file is applied once per process (and is optional), then
// env.Parse fills the struct from field tags.
//
//	type RedisConfig struct {
//		URL string `env:"REDIS_URL,required"`
//	}
//
//	var cfg RedisConfig
//	config.MustLoad(&cfg)
//
// Errors wrap the sentinel values ErrParsingConfig, ErrLoadingEnvFile and
// ErrNilPointer for errors.Is checks.
package config
