package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug log entry.
// It implements [PipelineHooks], [CacheHooks] and [HTTPHooks].
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnLayoutStart(_ context.Context, presetHash string) {
	h.logger.Debug("layout started", "preset", short(presetHash))
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, presetHash string, instances int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "preset", short(presetHash), "err", err)
		return
	}
	h.logger.Debug("layout done", "preset", short(presetHash), "instances", instances, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render done", "formats", formats, "duration", d, "err", err)
}

func (h *LogHooks) OnExportStart(_ context.Context, totalFrames int) {
	h.logger.Debug("export started", "frames", totalFrames)
}

func (h *LogHooks) OnExportFrame(_ context.Context, frame, totalFrames int, d time.Duration) {
	h.logger.Debug("frame written", "frame", frame, "of", totalFrames, "duration", d)
}

func (h *LogHooks) OnExportComplete(_ context.Context, frames int, d time.Duration, err error) {
	h.logger.Debug("export done", "frames", frames, "duration", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "route", route, "status", status, "duration", d)
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
