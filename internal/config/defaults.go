// Package config handles svcparams settings: keys, defaults, environment
// overrides and validation. Settings describe how the CLI behaves; the
// parameters it manages live in the params package.
package config

import "svcparams/internal/params"

// Setting keys.
const (
	KeyImportPrefix = "import.prefix"
	KeyImportGroup  = "import.group"
	KeyParamsFile   = "params.file"
	KeyLogLevel     = "log.level"
	KeyLogFile      = "log.file"
)

// DefaultParamsFile is the parameters file used when params.file is unset.
const DefaultParamsFile = "params.yaml"

// DefaultValues returns the default settings map for the core keys.
func DefaultValues() map[string]string {
	return map[string]string{
		KeyImportPrefix: params.AdditionalDataPrefix,
		KeyImportGroup:  string(params.ServiceGroup),
		KeyParamsFile:   DefaultParamsFile,
		KeyLogLevel:     "warn",
	}
}

// ApplyDefaults fills any missing core keys in s with their default values.
func ApplyDefaults(s Store) error {
	defaults := DefaultValues()
	all := s.All()
	for k, v := range defaults {
		if _, exists := all[k]; !exists {
			if err := s.Set(k, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// Settings is a typed view of a Store with defaults applied.
type Settings struct {
	ImportPrefix string
	ImportGroup  params.Group
	ParamsFile   string
	LogLevel     string
	LogFile      string
}

// Resolve reads Settings from s, falling back to DefaultValues for missing
// keys. An import.prefix explicitly set to "" is kept.
func Resolve(s Store) Settings {
	defaults := DefaultValues()
	get := func(key string) string {
		if v, ok := s.Get(key); ok {
			return v
		}
		return defaults[key]
	}
	return Settings{
		ImportPrefix: get(KeyImportPrefix),
		ImportGroup:  params.Group(get(KeyImportGroup)),
		ParamsFile:   get(KeyParamsFile),
		LogLevel:     get(KeyLogLevel),
		LogFile:      get(KeyLogFile),
	}
}
