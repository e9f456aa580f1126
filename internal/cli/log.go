package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a timestamped logger writing to w at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Resolved 42 dependencies (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports engine events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnFetchStart(_ context.Context, runID string, dependencies int) {
	h.logger.Debug("fetch start", "run", short(runID), "dependencies", dependencies)
}

func (h *logHooks) OnFetchComplete(_ context.Context, runID string, dependencies int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("fetch failed", "run", short(runID), "dependencies", dependencies, "took", d, "err", err)
		return
	}
	h.logger.Debug("fetch done", "run", short(runID), "dependencies", dependencies, "took", d)
}

func (h *logHooks) OnTarget(_ context.Context, runID, pkg, dependency, from, to string) {
	h.logger.Debug("target", "run", short(runID), "package", pkg, "dependency", dependency, "from", from, "to", to)
}

func (h *logHooks) OnBump(_ context.Context, pkg, from, to string) {
	h.logger.Debug("bump", "package", pkg, "from", from, "to", to)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "host", host, "path", path, "status", status, "took", d)
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("request failed", "method", method, "host", host, "path", path, "err", err)
}

// short trims a run ID to its first block.
func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
