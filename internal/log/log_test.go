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

package log

import (
	"context"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"go.uber.org/zap/zapcore"
)

func TestFromContext(t *testing.T) {
	var lines []string
	SetLogger(funcr.New(func(prefix, args string) {
		lines = append(lines, prefix+" "+args)
	}, funcr.Options{}).WithName("root"))
	t.Cleanup(func() { SetLogger(logr.Discard()) })

	FromContext(context.Background(), "collector", "foo").Info("exported")
	if len(lines) != 1 || !strings.Contains(lines[0], "root") || !strings.Contains(lines[0], `"collector"="foo"`) {
		t.Fatalf("expected root logger with values, found %v", lines)
	}

	lines = nil
	ctxLogger := funcr.New(func(prefix, args string) {
		lines = append(lines, "ctx "+args)
	}, funcr.Options{})
	ctx := IntoContext(context.Background(), ctxLogger)
	FromContext(ctx).Info("from context")
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "ctx") {
		t.Fatalf("expected context logger to be used, found %v", lines)
	}
}

func TestLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"DEBUG":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := level(in); got != want {
			t.Errorf("level(%q): expected %s, found %s", in, want, got)
		}
	}
}
