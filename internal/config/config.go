// Package config handles application configuration and setup
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// ErrInvalidQuirkList is returned for a malformed quirk list entry.
var ErrInvalidQuirkList = errors.New("invalid quirk list")

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// ParseQuirkList parses a comma separated list of quirk names into a quirk
// configuration mapping. A name enables the quirk, name=value sets it to the
// given boolean value. Key names are not validated here.
func ParseQuirkList(list string) (map[string]bool, error) {
	quirks := make(map[string]bool)
	for entry := range strings.SplitSeq(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, value, hasValue := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: missing name in '%s'", ErrInvalidQuirkList, entry)
		}
		if !hasValue {
			quirks[name] = true
			continue
		}

		enabled, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: value of '%s': %w", ErrInvalidQuirkList, name, err)
		}
		quirks[name] = enabled
	}
	return quirks, nil
}
