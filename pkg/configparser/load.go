package configparser

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

var ErrNoFilePath = errors.New("no file path provided")

// ${VAR:-default}
var substitutionRX = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*):-(.*)\}$`)

// LoadAndParseYaml loads the YAML file into the environment (if it exists) and
// fills cfg from environment variables.
func LoadAndParseYaml(filepath string, cfg any) error {
	if err := LoadYamlFile(filepath); err != nil && !errors.Is(err, os.ErrNotExist) && !errors.Is(err, ErrNoFilePath) {
		return err
	}

	return ParseEnv(cfg)
}

// LoadYamlFile reads a YAML file and loads variables into the environment.
// Nested keys are joined with "_" and upper-cased: `session: {ttl: 1h}` sets SESSION_TTL.
// Variables that are already set are left untouched.
func LoadYamlFile(filepath string) error {
	if filepath == "" {
		return ErrNoFilePath
	}

	raw, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("could not open YAML file: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("error reading YAML file: %w", err)
	}

	vars := map[string]string{}
	flatten("", doc, vars)

	for key, value := range vars {
		if os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("could not set env var %s: %w", key, err)
		}
	}

	return nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := strings.ToUpper(k)
		if prefix != "" {
			key = prefix + "_" + key
		}

		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case nil:
			// empty values don't represent environment variables
		default:
			out[key] = substitute(cast.ToString(val))
		}
	}
}

func substitute(value string) string {
	m := substitutionRX.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return value
	}
	if env := os.Getenv(m[1]); env != "" {
		return env
	}
	return strings.TrimSpace(m[2])
}
