// Package logger provides the colored slog handler used across the service.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

type LogType string

const (
	TypeHTTP   LogType = "HTTP"
	TypeDB     LogType = "DB"
	TypeSystem LogType = "SYS"
	TypeError  LogType = "ERR"
)

var typeTags = map[string]LogType{
	"http": TypeHTTP,
	"db":   TypeDB,
	"sys":  TypeSystem,
	"err":  TypeError,
}

type CustomHandler struct {
	opts      *slog.HandlerOptions
	service   string
	startTime time.Time
	attrs     []slog.Attr
	groups    []string
	mu        *sync.Mutex
}

func NewHandler(service string) *CustomHandler {
	return &CustomHandler{
		opts:      &slog.HandlerOptions{Level: slog.LevelDebug},
		service:   service,
		startTime: time.Now(),
		attrs:     make([]slog.Attr, 0),
		groups:    make([]string, 0),
		mu:        &sync.Mutex{},
	}
}

// SetLevel adjusts the minimum level after construction.
func (h *CustomHandler) SetLevel(level slog.Level) {
	h.opts.Level = level
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CustomHandler{
		opts:      h.opts,
		service:   h.service,
		startTime: h.startTime,
		attrs:     append(h.attrs, attrs...),
		groups:    h.groups,
		mu:        h.mu,
	}
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	return &CustomHandler{
		opts:      h.opts,
		service:   h.service,
		startTime: h.startTime,
		attrs:     h.attrs,
		groups:    append(h.groups, name),
		mu:        h.mu,
	}
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	timestamp := time.Now().Format("15:04:05")

	var levelColor, levelText string
	switch r.Level {
	case slog.LevelDebug:
		levelColor = colorPurple
		levelText = "DEBUG"
	case slog.LevelInfo:
		levelColor = colorGreen
		levelText = "INFO"
	case slog.LevelWarn:
		levelColor = colorYellow
		levelText = "WARN"
	case slog.LevelError:
		levelColor = colorRed
		levelText = "ERROR"
	}

	logType := h.logType(&r)
	var fields strings.Builder
	appendAttr := func(a slog.Attr) bool {
		if a.Key == "type" {
			return true
		}
		fmt.Fprintf(&fields, " %s%s%s=%v", colorCyan, a.Key, colorReset, a.Value)
		return true
	}
	for _, a := range h.attrs {
		appendAttr(a)
	}
	r.Attrs(appendAttr)

	h.mu.Lock()
	defer h.mu.Unlock()
	fmt.Printf("%s%s%s %s[%s]%s %s%-5s%s [%s] %s%s\n",
		colorBlue, timestamp, colorReset,
		colorPurple, h.service, colorReset,
		levelColor, levelText, colorReset,
		logType,
		r.Message,
		fields.String(),
	)
	return nil
}

func (h *CustomHandler) logType(r *slog.Record) LogType {
	var found LogType
	lookup := func(a slog.Attr) bool {
		if a.Key == "type" {
			if tag, ok := typeTags[strings.ToLower(a.Value.String())]; ok {
				found = tag
			}
			return false
		}
		return true
	}
	for _, a := range h.attrs {
		lookup(a)
	}
	r.Attrs(lookup)
	if found != "" {
		return found
	}
	if r.Level == slog.LevelError {
		return TypeError
	}
	return TypeSystem
}
