package internal

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rung/go-safecast"
)

// GetAsString reads an environment variable. If required is false the
// fallback is returned when the variable is unset.
func GetAsString(key string, required bool, fallback string) (string, error) {
	value, set := os.LookupEnv(key)
	if !set {
		if required {
			return "", fmt.Errorf("environment variable %s is required but not set", key)
		}
		return fallback, nil
	}
	return value, nil
}

// GetAsInt reads an environment variable as an integer.
func GetAsInt(key string, required bool, fallback int) (int, error) {
	value, set := os.LookupEnv(key)
	if !set {
		if required {
			return 0, fmt.Errorf("environment variable %s is required but not set", key)
		}
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s is not a number: %s", key, value)
	}
	return parsed, nil
}

// GetAsInt32 reads an environment variable as an int32, rejecting
// values that would overflow on narrowing.
func GetAsInt32(key string, required bool, fallback int32) (int32, error) {
	parsed, err := GetAsInt(key, required, int(fallback))
	if err != nil {
		return 0, err
	}
	narrowed, err := safecast.Int32(parsed)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s overflows int32: %d", key, parsed)
	}
	return narrowed, nil
}

// GetAsBool reads an environment variable as a boolean.
func GetAsBool(key string, required bool, fallback bool) (bool, error) {
	value, set := os.LookupEnv(key)
	if !set {
		if required {
			return false, fmt.Errorf("environment variable %s is required but not set", key)
		}
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("environment variable %s is not a valid boolean: %s", key, value)
	}
	return parsed, nil
}
