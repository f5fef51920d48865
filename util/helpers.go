// Package util provides shared helpers for environment configuration
// and process-wide logging.
package util

import (
	"os"
	"strconv"
)

// GetEnvDefault is a convenience function for handling env vars
func GetEnvDefault(key, defVal string) string {
	val, ex := os.LookupEnv(key) // get the env var
	if !ex {                     // not found return default
		return defVal
	}
	return val // return value for env var
}

// GetEnvIntDefault reads an integer env var, falling back to the default
// when the var is unset or not a valid integer
func GetEnvIntDefault(key string, defVal int) int {
	val, ex := os.LookupEnv(key)
	if !ex {
		return defVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defVal
	}
	return n
}
