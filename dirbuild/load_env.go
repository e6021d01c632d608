package dirbuild

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/peamaeq/makepad/debug"
)

const (
	EnvEnv = "LIVE_ENV"
)

// LoadEnv decodes the YAML mapping in $LIVE_ENV.
func LoadEnv() (map[string]any, error) {
	envEnv := os.Getenv(EnvEnv)
	if envEnv == "" {
		return nil, nil
	}
	var env map[string]any
	if err := yaml.Unmarshal([]byte(envEnv), &env); err != nil {
		return nil, fmt.Errorf("error decoding env $%s: %w", EnvEnv, err)
	}
	if debug.Build() {
		debug.Logf("\nloaded env from env: %s\n", env)
	}
	return env, nil
}
