/*
 * Copyright 2025 SREDiag Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package plugin

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultRecentCalls = 64
	maxRecentCalls     = 1 << 16
	maxOffloadWorkers  = 4096
)

// Config controls a Module. The zero values of the optional fields turn the
// matching feature off.
type Config struct {
	// LogOutput receives the module's log lines. Nil means stdout.
	LogOutput io.Writer

	// RecentCalls is how many completed calls Recent keeps. Must be > 0.
	RecentCalls uint64

	// OffloadWorkers sizes the pool behind Go. Zero disables Go.
	OffloadWorkers int

	// Registerer, when set, receives the posix_* Prometheus collectors.
	Registerer prometheus.Registerer

	// Meter and Tracer, when either is set, wrap every call in an
	// OpenTelemetry span and counter.
	Meter  metric.Meter
	Tracer trace.Tracer
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LogOutput:   os.Stdout,
		RecentCalls: defaultRecentCalls,
	}
}

// VerifyConfig reports the first invalid field of config.
func VerifyConfig(config *Config) error {
	if config == nil {
		return errors.New("config is nil")
	}
	if config.RecentCalls == 0 || config.RecentCalls > maxRecentCalls {
		return fmt.Errorf("RecentCalls must be in [1, %d], got %d", maxRecentCalls, config.RecentCalls)
	}
	if config.OffloadWorkers < 0 || config.OffloadWorkers > maxOffloadWorkers {
		return fmt.Errorf("OffloadWorkers must be in [0, %d], got %d", maxOffloadWorkers, config.OffloadWorkers)
	}
	return nil
}
