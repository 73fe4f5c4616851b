package util

import (
	"os"
	"strings"
)

const EnvironmentPrefix = "NORMALISER_"

// GetEnvironmentVariables returns the NORMALISER_ prefixed variables keyed by their full name
func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		name, value, found := strings.Cut(variable, "=")
		if !found || !strings.HasPrefix(name, EnvironmentPrefix) {
			continue
		}

		environmentVariables[name] = value
	}

	return environmentVariables
}

// EnvironmentFlag reports whether NORMALISER_<name> is set to YES
func EnvironmentFlag(name string) bool {
	return strings.EqualFold(os.Getenv(EnvironmentPrefix+name), "YES")
}
