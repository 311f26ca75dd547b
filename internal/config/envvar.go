package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variable names for svcparams configuration.
const (
	EnvDir      = "SVCPARAMS_DIR"       // Path to .svcparams directory
	EnvPrefix   = "SVCPARAMS_PREFIX"    // Override import.prefix
	EnvGroup    = "SVCPARAMS_GROUP"     // Override import.group
	EnvLogLevel = "SVCPARAMS_LOG_LEVEL" // Override log.level
	EnvLogFile  = "SVCPARAMS_LOG_FILE"  // Override log.file
)

// DotEnvFileName is loaded from the workspace directory, if present.
const DotEnvFileName = ".env"

// envOverrides maps environment variables to the keys they override.
var envOverrides = []struct {
	env string
	key string
}{
	{EnvPrefix, KeyImportPrefix},
	{EnvGroup, KeyImportGroup},
	{EnvLogLevel, KeyLogLevel},
	{EnvLogFile, KeyLogFile},
}

// LoadDotEnv loads dir/.env into the process environment. Variables that
// are already set win over the file. A missing file is not an error.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, DotEnvFileName)
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnvOverrides checks the SVCPARAMS_* env vars and overrides the
// corresponding settings in memory. These overrides are not persisted to
// the settings file. A variable set to the empty string overrides too, so
// SVCPARAMS_PREFIX= imports every entry and SVCPARAMS_GROUP= targets the
// default group.
func ApplyEnvOverrides(s Store) {
	for _, o := range envOverrides {
		if v, ok := os.LookupEnv(o.env); ok {
			s.SetInMemory(o.key, v)
		}
	}
}
