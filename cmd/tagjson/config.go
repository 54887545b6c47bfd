package main

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"

	"github.com/hengadev/tagjson"
)

const defaultConfigFile = "tagjson.yaml"

// loadConfig reads the YAML file at path when one is given. Otherwise it
// loads envFile (or .env, when present) into the environment and reads the
// TAGJSON_* variables. Variables already set take precedence over the file.
func loadConfig(path, envFile string) (tagjson.Config, error) {
	if path != "" {
		return tagjson.LoadConfigFile(path)
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return tagjson.Config{}, err
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return tagjson.Config{}, err
	}

	return tagjson.LoadConfigFromEnvironment()
}
