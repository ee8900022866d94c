package envutil

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
)

func GetEnv(key, defaultVal string, log *logger.Logger) string {
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		if log != nil {
			log.Debug("env var not set, using default", "env_var", key, "default", defaultVal)
		}
		return defaultVal
	}
	return val
}

func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	i, err := strconv.Atoi(strings.TrimSpace(valStr))
	if err != nil {
		if log != nil {
			log.Debug("env var not an int, using default", "env_var", key, "value", valStr, "default", defaultVal)
		}
		return defaultVal
	}
	return i
}

func GetEnvAsFloat(key string, defaultVal float64, log *logger.Logger) float64 {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(valStr), 64)
	if err != nil {
		if log != nil {
			log.Debug("env var not a float, using default", "env_var", key, "value", valStr, "default", defaultVal)
		}
		return defaultVal
	}
	return f
}

func GetEnvAsBool(key string, defaultVal bool, log *logger.Logger) bool {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	switch strings.TrimSpace(strings.ToLower(valStr)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		if log != nil {
			log.Debug("env var not a bool, using default", "env_var", key, "value", valStr, "default", defaultVal)
		}
		return defaultVal
	}
}

func GetEnvAsDuration(key string, defaultVal time.Duration, log *logger.Logger) time.Duration {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	d, err := time.ParseDuration(strings.TrimSpace(valStr))
	if err != nil {
		if log != nil {
			log.Debug("env var not a duration, using default", "env_var", key, "value", valStr, "default", defaultVal.String())
		}
		return defaultVal
	}
	return d
}
