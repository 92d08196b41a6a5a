// Package env reads configuration from environment variables.
package env

import (
	"fmt"
	"os"
	"strings"
)

// String returns the value of the first of keys that is set to a non-blank
// value, with surrounding whitespace removed.
func String(keys ...string) string {
	for _, key := range keys {
		if val := strings.TrimSpace(os.Getenv(key)); val != "" {
			return val
		}
	}
	return ""
}

// Temp sets the environment variable key to fmt.Sprint(val) and returns a
// function that restores its previous state. Intended for tests:
//
//	defer env.Temp("NATS_URL", "nats://localhost:4222")()
func Temp(key string, val any) func() {
	org, wasSet := os.LookupEnv(key)
	if err := os.Setenv(key, fmt.Sprint(val)); err != nil {
		panic(err)
	}
	return func() {
		var err error
		if wasSet {
			err = os.Setenv(key, org)
		} else {
			err = os.Unsetenv(key)
		}
		if err != nil {
			panic(err)
		}
	}
}
