package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	envAPIURL   = "API_URL"
	envAssetURL = "ASSET_URL"
)

// parseEnv reads API_URL and ASSET_URL from the process environment, falling
// back to the dotenv file at path. A missing file is not an error.
func parseEnv(cfg *Config, path string) {
	file, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
		file = map[string]string{}
	}

	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return file[key]
	}

	if v := lookup(envAPIURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := lookup(envAssetURL); v != "" {
		cfg.AssetBaseURL = v
	}
}
