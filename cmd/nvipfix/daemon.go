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

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/zoomoid/nvipfix/internal/config"
	"github.com/zoomoid/nvipfix/internal/datetime"
	"github.com/zoomoid/nvipfix/internal/exporter"
	"github.com/zoomoid/nvipfix/internal/log"
	"github.com/zoomoid/nvipfix/internal/nvapi"
	"golang.org/x/sys/unix"
)

const defaultPidFile = "nvipfix.pid"

func pidFile() string {
	if p := os.Getenv("NVIPFIX_PIDFILE"); p != "" {
		return p
	}
	return defaultPidFile
}

func writePid(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("pid file %s exists, is nvipfix already running?", path)
		}
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%d\n", os.Getpid())
	return err
}

func readPid(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid file %s", path)
	}
	return pid, nil
}

func stopDaemon(ctx context.Context, path string) int {
	logger := log.FromContext(ctx, "pidfile", path)
	pid, err := readPid(path)
	if err != nil {
		logger.Error(err, "failed to read pid file")
		return exitStartDaemon
	}
	if err := unix.Kill(pid, unix.SIGTERM); err != nil {
		logger.Error(err, "failed to stop nvipfix", "pid", pid)
		return exitStartDaemon
	}
	logger.Info("stopping nvipfix", "pid", pid)
	return exitOK
}

// startDaemon exports the records of every export interval until ctx is cancelled
func startDaemon(ctx context.Context, path string) int {
	logger := log.FromContext(ctx, "component", "daemon")

	store, err := loadConfig(ctx, config.Path())
	if err != nil {
		logger.Error(err, "failed to load configuration", "path", config.Path())
		return exitConfig
	}
	src, err := nvapi.NewHTTPSource(*store.Switch())
	if err != nil {
		logger.Error(err, "no data source")
		return exitConfig
	}
	exp, err := newExporter(store)
	if err != nil {
		logger.Error(err, "failed to create exporter")
		return exitConfig
	}
	defer exp.Close()

	if err := writePid(path); err != nil {
		logger.Error(err, "failed to write pid file")
		return exitStartDaemon
	}
	defer os.Remove(path)

	if addr := store.MetricsAddress(); addr != "" {
		srv := &http.Server{
			Addr:              addr,
			Handler:           newRouter(exp, newRegistry()),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("serving metrics", "address", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error(err, "metrics server failed")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	interval := store.ExportInterval()
	logger.Info("started", "interval", interval.String(), "collectors", len(store.Collectors()))
	tick(ctx, logger, interval, func(ctx context.Context, start, end time.Time) {
		exportWindow(ctx, logger, src, exp, store, start, end)
	})
	logger.Info("stopped")
	return exitOK
}

// tick calls fn with consecutive windows of length interval until ctx is cancelled
func tick(ctx context.Context, logger logr.Logger, interval time.Duration, fn func(ctx context.Context, start, end time.Time)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			tickCtx, cancel := context.WithTimeout(ctx, interval)
			fn(log.IntoContext(tickCtx, logger), last, now)
			cancel()
			last = now
		}
	}
}

func exportWindow(ctx context.Context, logger logr.Logger, src nvapi.Source, exp *exporter.Exporter, store *config.Store, start, end time.Time) {
	from, to := datetime.FromTime(start), datetime.FromTime(end)
	records, err := src.Records(ctx, from, to)
	if err != nil {
		logger.Error(err, "failed to read records", "start", from.String(), "end", to.String())
		return
	}
	defer records.Free()
	if err := exp.ExportAll(ctx, store.Collectors(), records, from, to); err != nil {
		logger.Error(err, "export failed")
	}
}
