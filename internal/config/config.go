// Copyright 2023-2024 daviszhen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config resolves the CLI's runtime configuration: command-line
// flags, a TOML file, and environment variables, in that priority order,
// following the layering the teacher builds in cmd/root.go's
// setAllConfig, translated from Viper-over-pflag to Viper-over-cobra.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds every knob hashpartctl exposes, independent of how it was
// set (flag, file, or environment).
type Config struct {
	NumPartitions int    `toml:"num_partitions"`
	KeyColumns    string `toml:"key_columns"` // comma-separated column indices
	Kernel        string `toml:"kernel"`      // "murmur32" or "metro32"
	Workers       int    `toml:"workers"`
	BlockSize     int    `toml:"block_size"`
	Input         string `toml:"input"`
	Output        string `toml:"output"`
}

const envPrefix = "HASHPARTCTL"

// Load layers cmd's bound flags over a TOML config file (if --config was
// given) over environment variables named HASHPARTCTL_<FLAG>, matching the
// teacher's env-prefix convention in cmd/root.go.
func Load(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("config: bind flags: %w", err)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if path := v.GetString("config"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("num-partitions") || cfg.NumPartitions == 0 {
		cfg.NumPartitions = v.GetInt("num-partitions")
	}
	if flags.Changed("keys") || cfg.KeyColumns == "" {
		cfg.KeyColumns = v.GetString("keys")
	}
	if flags.Changed("kernel") || cfg.Kernel == "" {
		cfg.Kernel = v.GetString("kernel")
	}
	if flags.Changed("workers") || cfg.Workers == 0 {
		cfg.Workers = v.GetInt("workers")
	}
	if flags.Changed("block-size") || cfg.BlockSize == 0 {
		cfg.BlockSize = v.GetInt("block-size")
	}
	if flags.Changed("input") || cfg.Input == "" {
		cfg.Input = v.GetString("input")
	}
	if flags.Changed("output") || cfg.Output == "" {
		cfg.Output = v.GetString("output")
	}
	return cfg, nil
}
