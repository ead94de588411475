package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/reallyshadydev/wonkyordflopcoin/network"
)

// EnvFile is the env file name looked up inside the data directory.
const EnvFile = ".env"

// envKeys lists the variables LoadEnv picks up from the process environment.
var envKeys = []string{network.EnvRPCURL, network.EnvRPCUser, network.EnvRPCPass}

// LoadEnv reads the env file at path, if it exists, and overlays the RPC
// variables set in the process environment. A missing file is not an error.
func LoadEnv(path string) (map[string]string, error) {
	env := map[string]string{}
	if path != "" {
		vars, err := godotenv.Read(path)
		switch {
		case err == nil:
			env = vars
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("%w: %s: %w", ErrEnvFile, path, err)
		}
	}

	for _, k := range envKeys {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	return env, nil
}
