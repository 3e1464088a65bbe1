package resource

import (
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/viper"
)

var envPattern = regexp.MustCompile(`^\$\{([^:}]+)(?::([^}]*))?}$`)

// Load reads the yml properties file and resolves ${ENV_NAME:default} placeholders
// against the process environment.
func Load(filepath string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filepath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("fail to read properties %s: %w", filepath, err)
	}

	properties := make(map[string]any)
	parsePropertiesMap("", v.AllSettings(), properties)

	for key, value := range properties {
		v.Set(key, value)
	}

	return v, nil
}

// parsePropertiesMap reads recursively the YAML file
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = resolveEnvVariable(v)
		case map[string]any:
			parsePropertiesMap(fullKey, v, result)
		default:
			result[fullKey] = v
		}
	}
}

// resolveEnvVariable returns the environment value when the whole string is a placeholder,
// its default when the variable is unset, and the raw string otherwise.
func resolveEnvVariable(value string) string {
	matches := envPattern.FindStringSubmatch(value)
	if len(matches) == 0 {
		return value
	}

	if envValue, exists := os.LookupEnv(matches[1]); exists {
		return envValue
	}
	return matches[2]
}
