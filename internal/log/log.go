/*
Copyright 2023 Alexander Bartolomey (github@alexanderbartolomey.de)

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package log carries the process-wide logr.Logger.
//
// Until SetLogger is called, the first use of the root logger lazily builds a zap-backed
// logger named "nvipfix". The level is taken from NVIPFIX_LOG_LEVEL (debug, info, warn,
// error), defaulting to info.
package log

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const Name = "nvipfix"

var (
	initOnce sync.Once
	mu       sync.RWMutex
	root     logr.Logger
)

// SetLogger replaces the root logger. Calling it before the first log line skips building
// the default zap logger.
func SetLogger(l logr.Logger) {
	initOnce.Do(func() {})
	mu.Lock()
	defer mu.Unlock()
	root = l
}

// Log returns the root logger
func Log() logr.Logger {
	initOnce.Do(func() {
		l := newDefault()
		mu.Lock()
		root = l
		mu.Unlock()
	})
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// FromContext returns the logger stored in ctx, or the root logger, with the given key value
// pairs attached
func FromContext(ctx context.Context, keysAndValues ...interface{}) logr.Logger {
	l := Log()
	if ctx != nil {
		if logger, err := logr.FromContext(ctx); err == nil {
			l = logger
		}
	}
	return l.WithValues(keysAndValues...)
}

func IntoContext(ctx context.Context, l logr.Logger) context.Context {
	return logr.NewContext(ctx, l)
}

func newDefault() logr.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(level(os.Getenv("NVIPFIX_LOG_LEVEL")))

	z, err := cfg.Build()
	if err != nil {
		return logr.Discard()
	}
	return zapr.NewLogger(z).WithName(Name)
}

// level maps a level name to zap's levels. logr's V(1) maps to zap's debug level.
func level(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
