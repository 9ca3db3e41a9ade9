// Package cache implements the JSON file-backed TTL stores for the catalog
// total and the FX rate table.
//
// Caching here is an optimization, never a correctness requirement: a
// missing, unreadable or malformed file is a miss, and write failures are
// logged and swallowed.
package cache

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/use-agent/skindex/models"
)

// timestampKey is the envelope field holding the capture time.
const timestampKey = "timestamp"

// Store persists one value of type T under a named JSON key, together with
// the timestamp it was captured at. The on-disk envelope is
// {"<key>": <value>, "timestamp": "<RFC 3339>"}, which is the file format
// collaborators already read.
type Store[T any] struct {
	path string
	key  string
	ttl  time.Duration

	now func() time.Time // overridable in tests
}

// NewStore creates a Store persisting to path under the given value key.
func NewStore[T any](path, key string, ttl time.Duration) *Store[T] {
	return &Store[T]{path: path, key: key, ttl: ttl, now: time.Now}
}

// Read loads the persisted value. The second return is false on any kind of
// miss: absent file, unreadable file, malformed envelope, or expired TTL.
// Read never returns an error to the caller.
func (s *Store[T]) Read() (T, bool) {
	var zero T

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("cache read failed, treating as miss",
				"code", models.ErrCodeCache, "path", s.path, "error", err)
		}
		return zero, false
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		slog.Warn("cache file malformed, treating as miss", "path", s.path, "error", err)
		return zero, false
	}

	capturedAt, ok := parseTimestamp(envelope[timestampKey])
	if !ok {
		slog.Warn("cache timestamp malformed, treating as miss", "path", s.path)
		return zero, false
	}
	if s.now().Sub(capturedAt) >= s.ttl {
		slog.Info("cache expired", "path", s.path, "capturedAt", capturedAt, "ttl", s.ttl)
		return zero, false
	}

	var value T
	if err := json.Unmarshal(envelope[s.key], &value); err != nil {
		slog.Warn("cache value malformed, treating as miss", "path", s.path, "error", err)
		return zero, false
	}
	return value, true
}

// Write persists the value with the current timestamp. Failures are logged
// and swallowed; the fresh value is already in the caller's hands.
func (s *Store[T]) Write(value T) {
	rawValue, err := json.Marshal(value)
	if err != nil {
		slog.Error("cache value not serializable", "path", s.path, "error", err)
		return
	}

	envelope := map[string]json.RawMessage{
		s.key:        rawValue,
		timestampKey: mustMarshal(s.now().Format(time.RFC3339)),
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		slog.Error("cache envelope not serializable", "path", s.path, "error", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		slog.Warn("cache dir creation failed, skipping write",
			"code", models.ErrCodeCache, "path", s.path, "error", err)
		return
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		slog.Warn("cache write failed",
			"code", models.ErrCodeCache, "path", s.path, "error", err)
		return
	}
	slog.Debug("cache written", "path", s.path)
}

// Invalidate deletes the persisted entry. A missing file is not an error.
func (s *Store[T]) Invalidate() {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("cache invalidation failed", "path", s.path, "error", err)
		return
	}
	slog.Info("cache invalidated", "path", s.path)
}

// Age reports how long ago the persisted entry was captured, regardless of
// TTL. Used by the health probe; a miss returns ok=false.
func (s *Store[T]) Age() (time.Duration, bool) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return 0, false
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return 0, false
	}
	capturedAt, ok := parseTimestamp(envelope[timestampKey])
	if !ok {
		return 0, false
	}
	return s.now().Sub(capturedAt), true
}

// parseTimestamp accepts RFC 3339 with or without a zone offset; the
// original cache files were written with naive local timestamps.
func parseTimestamp(raw json.RawMessage) (time.Time, bool) {
	if raw == nil {
		return time.Time{}, false
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999"} {
		if t, err := time.ParseInLocation(layout, text, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func mustMarshal(v any) json.RawMessage {
	raw, _ := json.Marshal(v)
	return raw
}
