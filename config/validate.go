// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reallyshadydev/wonkyordflopcoin/network"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if _, err := cfg.Params(); err != nil {
		return err
	}

	if cfg.RPCURL != "" {
		if _, err := cfg.RPC(nil); err != nil {
			if errors.Is(err, network.ErrInvalidRPCURL) {
				return fmt.Errorf("%w: %w", ErrInvalidRPCURL, err)
			}
			return err
		}
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	return nil
}
