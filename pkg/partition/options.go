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

package partition

import (
	"runtime"

	"github.com/cordata/hashpart/pkg/rowhash"
)

// Config holds everything spec §6's signatures leave to the
// implementation: which finalizer C1 uses, how many rows a block owns,
// and how many blocks may run concurrently.
type Config struct {
	Kernel    rowhash.Kernel
	Workers   int
	BlockSize int
}

func defaultConfig() Config {
	return Config{
		Kernel:    rowhash.Murmur32,
		Workers:   runtime.GOMAXPROCS(0),
		BlockSize: 1 << 16,
	}
}

type Option func(*Config)

func WithHashKernel(k rowhash.Kernel) Option {
	return func(c *Config) { c.Kernel = k }
}

func WithWorkers(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Workers = n
		}
	}
}

func WithBlockSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.BlockSize = n
		}
	}
}
