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

package util

import (
	"github.com/petermattis/goid"
	"go.uber.org/zap"
)

// TraceBlock emits a debug-level line naming which goroutine ran a given
// block-worker task. Block/scatter tasks are dispatched onto a shared pool
// where a goroutine is reused across many tasks, so goid.Get() is the only
// way to tell, after the fact, whether the pool actually spread work
// across goroutines or serialized it onto one — useful when a report of
// unexpectedly poor wall-clock scaling needs a first thing to check.
func TraceBlock(stage string, block int, rowsStart, rowsEnd int) {
	Debug("block task scheduled",
		zap.String("stage", stage),
		zap.Int64("goroutine", goid.Get()),
		zap.Int("block", block),
		zap.Int("rows_start", rowsStart),
		zap.Int("rows_end", rowsEnd))
}
