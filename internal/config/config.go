package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jonix/swedbank-ynab-csv-converter/internal/logging"

	"github.com/joho/godotenv"
)

// EnvFile is the dotenv file read by LoadEnv.
const EnvFile = ".env"

// LoadEnv loads environment variables from a .env file in the current or
// parent directory. Variables already set in the environment win. It returns
// the file that was loaded, or "" when there was none.
func LoadEnv(logger logging.Logger) (string, error) {
	for _, candidate := range []string{EnvFile, filepath.Join("..", EnvFile)} {
		if _, err := os.Stat(candidate); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err := godotenv.Load(candidate); err != nil {
			return "", err
		}
		if logger != nil {
			logger.Debug("Loaded environment variables", logging.Field{Key: "file", Value: candidate})
		}
		return candidate, nil
	}

	if logger != nil {
		logger.Debug("No .env file found, using environment variables")
	}
	return "", nil
}

// ConfigureLoggingFromConfig builds the application logger: logrus on
// stderr with the configured level and format.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
