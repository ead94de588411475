// Package config loads and saves the indexer's key=value configuration file.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/reallyshadydev/wonkyordflopcoin/chain"
	"github.com/reallyshadydev/wonkyordflopcoin/index"
	"github.com/reallyshadydev/wonkyordflopcoin/network"
)

// ConfigFile is the configuration file name inside the data directory.
const ConfigFile = "config"

// Config holds the indexer settings.
type Config struct {
	DataDir  string
	Network  string
	LogLevel string
	LogFile  string

	RPCURL  string
	RPCUser string
	RPCPass string

	// Overrides replaces individual values of the selected network's
	// parameter table.
	Overrides chain.Overrides
}

// DefaultDataDir returns ~/.ord, or .ord in the working directory when the
// home directory cannot be determined.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ord"
	}
	return filepath.Join(home, ".ord")
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		DataDir:  DefaultDataDir(),
		Network:  chain.Mainnet.String(),
		LogLevel: "info",
	}
}

// ConfigPath returns the configuration file path inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, ConfigFile)
}

// Params resolves the selected network and applies the configured overrides.
func (c Config) Params() (chain.Params, error) {
	v, err := chain.ParseVariant(c.Network)
	if err != nil {
		return chain.Params{}, fmt.Errorf("%w: %w", ErrInvalidNetwork, err)
	}
	p, err := chain.ParamsFor(v).WithOverrides(c.Overrides)
	if err != nil {
		return chain.Params{}, fmt.Errorf("%w: %w", ErrInvalidOverride, err)
	}
	return p, nil
}

// IndexPath returns the index database path for the selected network.
func (c Config) IndexPath() (string, error) {
	p, err := c.Params()
	if err != nil {
		return "", err
	}
	return index.DBPath(c.DataDir, p), nil
}

// RPC resolves the node connection from the file settings, env and the
// network preset, in that order of priority.
func (c Config) RPC(env map[string]string) (*network.RPCConfig, error) {
	p, err := c.Params()
	if err != nil {
		return nil, err
	}
	return network.ResolveConfig(&network.RPCConfig{
		URL:      c.RPCURL,
		User:     c.RPCUser,
		Password: c.RPCPass,
	}, env, p)
}

// LoadConfig reads the configuration file at path. Keys missing from the file
// keep their DefaultConfig values; unknown keys are ignored.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, err := parseKeyValue(line)
		if err != nil {
			return Config{}, fmt.Errorf("%w: line %d: %w", ErrInvalidConfigLine, lineNo, err)
		}
		if err := cfg.set(key, value); err != nil {
			return Config{}, fmt.Errorf("%w: line %d: %w", ErrInvalidConfigLine, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return cfg, nil
}

// parseKeyValue splits a line on its first '='.
func parseKeyValue(line string) (string, string, error) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", fmt.Errorf("missing '=' in %q", line)
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return "", "", fmt.Errorf("empty key in %q", line)
	}
	return key, strings.TrimSpace(value), nil
}

func (c *Config) set(key, value string) error {
	switch key {
	case "datadir":
		c.DataDir = value
	case "network":
		c.Network = value
	case "loglevel":
		c.LogLevel = value
	case "logfile":
		c.LogFile = value
	case "rpcurl":
		c.RPCURL = value
	case "rpcuser":
		c.RPCUser = value
	case "rpcpass":
		c.RPCPass = value
	case "rpcport":
		n, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return fmt.Errorf("rpcport: %w", err)
		}
		port := uint16(n)
		c.Overrides.RPCPort = &port
	case "contentsizelimit":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("contentsizelimit: %w", err)
		}
		c.Overrides.ContentSizeLimit = &n
	case "firstinscriptionheight":
		h, err := parseHeight(value)
		if err != nil {
			return fmt.Errorf("firstinscriptionheight: %w", err)
		}
		c.Overrides.FirstInscriptionHeight = &h
	case "firstduneheight":
		h, err := parseHeight(value)
		if err != nil {
			return fmt.Errorf("firstduneheight: %w", err)
		}
		c.Overrides.FirstDuneHeight = &h
	case "explorerhost":
		c.Overrides.ExplorerHost = &value
	case "genesishex":
		c.Overrides.GenesisHex = &value
	}
	return nil
}

func parseHeight(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

// SaveConfig writes cfg to path, creating parent directories as needed.
// Override keys are written only when set.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# ord indexer configuration\n\n")
	writeKey(&b, "datadir", cfg.DataDir)
	writeKey(&b, "network", cfg.Network)
	writeKey(&b, "loglevel", cfg.LogLevel)
	writeKey(&b, "logfile", cfg.LogFile)
	writeKey(&b, "rpcurl", cfg.RPCURL)
	writeKey(&b, "rpcuser", cfg.RPCUser)
	writeKey(&b, "rpcpass", cfg.RPCPass)

	o := cfg.Overrides
	if !o.IsZero() {
		b.WriteString("\n# network parameter overrides\n")
	}
	if o.RPCPort != nil {
		writeKey(&b, "rpcport", strconv.FormatUint(uint64(*o.RPCPort), 10))
	}
	if o.ContentSizeLimit != nil {
		writeKey(&b, "contentsizelimit", strconv.Itoa(*o.ContentSizeLimit))
	}
	if o.FirstInscriptionHeight != nil {
		writeKey(&b, "firstinscriptionheight", strconv.FormatUint(uint64(*o.FirstInscriptionHeight), 10))
	}
	if o.FirstDuneHeight != nil {
		writeKey(&b, "firstduneheight", strconv.FormatUint(uint64(*o.FirstDuneHeight), 10))
	}
	if o.ExplorerHost != nil {
		writeKey(&b, "explorerhost", *o.ExplorerHost)
	}
	if o.GenesisHex != nil {
		writeKey(&b, "genesishex", *o.GenesisHex)
	}

	// The file may hold RPC credentials.
	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func writeKey(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "%s = %s\n", key, value)
}
