package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultRows = 10
	defaultCols = 10
)

// Config is the runtime configuration, read from the environment with a
// .env file as an optional source. Everything has a default so the app
// runs with no configuration at all.
type Config struct {
	DataDir      string
	BookingsFile string
	GenresFile   string
	MoviesFile   string
	UsersFile    string
	Rows         int
	Cols         int
}

// Load resolves the configuration. The data directory defaults to the
// user config dir, the same place the rest of the user's terminal tools
// keep their state.
func Load() (*Config, error) {
	const op = "config.Load"

	_ = godotenv.Load()

	dataDir := os.Getenv("CINEBOOK_DATA_DIR")
	if dataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("%s: resolve data dir: %w", op, err)
		}
		dataDir = filepath.Join(base, "cinebook")
	}

	rows := defaultRows
	if raw := os.Getenv("CINEBOOK_ROWS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid CINEBOOK_ROWS: %w", op, err)
		}
		rows = parsed
	}

	cols := defaultCols
	if raw := os.Getenv("CINEBOOK_COLS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid CINEBOOK_COLS: %w", op, err)
		}
		cols = parsed
	}

	cfg := &Config{
		DataDir:      dataDir,
		BookingsFile: fileOr("CINEBOOK_BOOKINGS_FILE", dataDir, "movie_bookings.csv"),
		GenresFile:   fileOr("CINEBOOK_GENRES_FILE", dataDir, "genres.csv"),
		MoviesFile:   fileOr("CINEBOOK_MOVIES_FILE", dataDir, "movies.csv"),
		UsersFile:    fileOr("CINEBOOK_USERS_FILE", dataDir, "users.csv"),
		Rows:         rows,
		Cols:         cols,
	}
	return cfg, nil
}

func fileOr(env, dir, name string) string {
	if path := os.Getenv(env); path != "" {
		return path
	}
	return filepath.Join(dir, name)
}
