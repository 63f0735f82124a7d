package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type EnvValue interface {
	string | int | bool | time.Duration
}

func parseEnv[V EnvValue](envVar, value string) (V, error) {
	var out V

	switch ptr := any(&out).(type) {
	case *string:
		*ptr = value
	case *int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return out, fmt.Errorf("environment variable %s: '%s' is not an integer", envVar, value)
		}
		*ptr = intValue
	case *bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return out, fmt.Errorf("environment variable %s: '%s' is not a boolean", envVar, value)
		}
		*ptr = boolValue
	case *time.Duration:
		durationValue, err := time.ParseDuration(value)
		if err != nil {
			return out, fmt.Errorf("environment variable %s: '%s' is not a duration", envVar, value)
		}
		*ptr = durationValue
	}

	return out, nil
}

func GetEnv[V EnvValue](envVar string, defaultValue V) V {
	value, ok := os.LookupEnv(envVar)
	if !ok || value == "" {
		return defaultValue
	}

	parsed, err := parseEnv[V](envVar, value)
	if err != nil {
		log.Fatal(err)
	}
	return parsed
}

func GetRequiredEnv[V EnvValue](envVar string) V {
	value, ok := os.LookupEnv(envVar)
	if !ok || value == "" {
		log.Fatalf("%s environment variable is required", envVar)
	}

	parsed, err := parseEnv[V](envVar, value)
	if err != nil {
		log.Fatal(err)
	}
	return parsed
}
