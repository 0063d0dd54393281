package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Port         string `toml:"port"`
	SnapshotPath string `toml:"snapshot_path"`
	ImportPath   string `toml:"import_path"`
	CORSOrigins  string `toml:"cors_origins"`
}

// Load собирает конфигурацию: значения по умолчанию, затем опциональный
// TOML-файл, затем переменные окружения (окружение побеждает).
func Load() (Config, error) {
	cfg := Config{
		Port:         "8080",
		SnapshotPath: "data/tasks.json",
		ImportPath:   "data/import.csv",
		CORSOrigins:  "*",
	}

	file := getEnv("CONFIG_FILE", "config.toml")
	if _, err := os.Stat(file); err == nil {
		if _, err := toml.DecodeFile(file, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", file, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.SnapshotPath = getEnv("SNAPSHOT_PATH", cfg.SnapshotPath)
	cfg.ImportPath = getEnv("IMPORT_PATH", cfg.ImportPath)
	cfg.CORSOrigins = getEnv("CORS_ORIGINS", cfg.CORSOrigins)
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
