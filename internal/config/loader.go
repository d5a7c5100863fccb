package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// defaultFiles are tried in order when CONFIG_PATH is unset. The .env form
// matches the deployment compose files, which keep every setting there.
var defaultFiles = []string{"./config.yaml", "./.env"}

// Load reads the configuration. Environment variables override the file,
// which overrides env-default tags. CONFIG_PATH names the file explicitly
// and must then exist; otherwise the first existing default file is used,
// and with none present only the environment is read. A .env file is
// loaded into the process environment before the environment is read.
func Load() (*Config, error) {
	var cfg Config

	path, err := configFile()
	if err != nil {
		return nil, err
	}

	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", describe(path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func configFile() (string, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config: file %s: %w", path, err)
		}
		return path, nil
	}

	for _, path := range defaultFiles {
		_, err := os.Stat(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("config: file %s: %w", path, err)
		}
	}
	return "", nil
}

func describe(path string) string {
	if path == "" {
		return "env"
	}
	return path
}
