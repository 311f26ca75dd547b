package config

import (
	"fmt"
	"sort"
	"strings"

	"svcparams/internal/logging"
)

// validValues maps known keys to their allowed values.
// An empty slice means any non-empty string is accepted.
var validValues = map[string][]string{
	KeyLogLevel:   logging.Levels,
	KeyParamsFile: {},
}

// Validate checks all values in s for known keys. It returns an error
// describing every invalid value found, or nil if all values are valid.
// import.prefix may be empty (import everything), import.group may be
// empty (the default group) and log.file may be empty (log to stderr).
func Validate(s Store) error {
	all := s.All()
	var errs []string

	for _, key := range sortedKeys(validValues) {
		val, ok := all[key]
		if !ok {
			continue
		}
		if msg := checkValue(key, val); msg != "" {
			errs = append(errs, msg)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
}

// ValidateValue checks a single key=value pair before it is stored.
// Unknown keys are accepted.
func ValidateValue(key, value string) error {
	if msg := checkValue(key, value); msg != "" {
		return fmt.Errorf("invalid setting: %s", msg)
	}
	return nil
}

// checkValue returns a description of what is wrong with value, or "".
func checkValue(key, value string) string {
	allowed, known := validValues[key]
	if !known {
		return ""
	}
	if len(allowed) > 0 {
		if !contains(allowed, value) {
			return fmt.Sprintf("%s: invalid value %q (allowed: %s)",
				key, value, strings.Join(allowed, ", "))
		}
		return ""
	}
	if strings.TrimSpace(value) == "" {
		return fmt.Sprintf("%s: must not be empty", key)
	}
	return ""
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
