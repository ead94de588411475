package network

import (
	"fmt"
	"net/url"

	"github.com/reallyshadydev/wonkyordflopcoin/chain"
)

// Environment variables consulted by ResolveConfig.
const (
	EnvRPCURL  = "ORD_RPC_URL"
	EnvRPCUser = "ORD_RPC_USER"
	EnvRPCPass = "ORD_RPC_PASS"
)

// RPCConfig holds the connection parameters for a node's JSON-RPC interface.
type RPCConfig struct {
	URL      string `json:"url"`
	User     string `json:"user"`
	Password string `json:"password"`
	Network  string `json:"network"`
}

// Preset returns the default RPC configuration for params: the node on
// localhost at the network's default RPC port, without credentials.
func Preset(params chain.Params) RPCConfig {
	return RPCConfig{
		URL:     fmt.Sprintf("http://localhost:%d", params.DefaultRPCPort()),
		Network: params.Variant().String(),
	}
}

// ResolveConfig merges RPC configuration from three sources with decreasing priority:
//  1. CLI flags (highest priority)
//  2. Environment variables (ORD_RPC_URL, ORD_RPC_USER, ORD_RPC_PASS)
//  3. The network preset from Preset (lowest priority)
func ResolveConfig(flags *RPCConfig, env map[string]string, params chain.Params) (*RPCConfig, error) {
	result := Preset(params)

	if v := env[EnvRPCURL]; v != "" {
		result.URL = v
	}
	if v := env[EnvRPCUser]; v != "" {
		result.User = v
	}
	if v := env[EnvRPCPass]; v != "" {
		result.Password = v
	}

	if flags != nil {
		if flags.URL != "" {
			result.URL = flags.URL
		}
		if flags.User != "" {
			result.User = flags.User
		}
		if flags.Password != "" {
			result.Password = flags.Password
		}
	}

	u, err := url.Parse(result.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRPCURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRPCURL, result.URL)
	}
	return &result, nil
}
