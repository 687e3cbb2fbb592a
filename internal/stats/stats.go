// Package stats - счетчики обработанных соединений
package stats

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/Kostushka/webworker/internal/connection"
	"github.com/Kostushka/webworker/internal/connection/types"
	"github.com/Kostushka/webworker/internal/file"
	"github.com/Kostushka/webworker/internal/querydata"
)

// Stats - счетчики, общие для всех соединений; обновляются только атомарно
type Stats struct {
	started time.Time

	active      atomic.Int64
	total       atomic.Int64
	found       atomic.Int64
	notFound    atomic.Int64
	malformed   atomic.Int64
	faults      atomic.Int64
	readErrors  atomic.Int64
	unsupported atomic.Int64
	bodyBytes   atomic.Int64
}

// Snapshot - значения счетчиков на момент вызова
type Snapshot struct {
	Active      int64   `json:"active"`
	Total       int64   `json:"total"`
	Found       int64   `json:"found"`
	NotFound    int64   `json:"not_found"`
	Malformed   int64   `json:"malformed"`
	Faults      int64   `json:"transport_faults"`
	ReadErrors  int64   `json:"file_read_errors"`
	Unsupported int64   `json:"unsupported_content_type"`
	BodyBytes   int64   `json:"body_bytes"`
	Uptime      float64 `json:"uptime_seconds"`
}

// New - создать счетчики
func New() *Stats {
	return &Stats{started: time.Now()}
}

// Begin - соединение принято
func (s *Stats) Begin() {
	s.active.Add(1)
}

// Done - соединение обработано
func (s *Stats) Done(summary connection.Summary, err error) {
	s.active.Add(-1)
	s.total.Add(1)
	s.bodyBytes.Add(summary.BodyBytes)

	switch {
	case errors.Is(err, querydata.ErrMalformedRequest):
		s.malformed.Add(1)
		return
	case errors.Is(err, connection.ErrTransportFault):
		s.faults.Add(1)
	case errors.Is(err, file.ErrRead):
		s.readErrors.Add(1)
	}

	// запрос не был разобран
	if summary.Request == nil {
		return
	}

	if summary.Outcome == types.Found {
		s.found.Add(1)
	} else {
		s.notFound.Add(1)
	}

	if !summary.ContentType.Supported() {
		s.unsupported.Add(1)
	}
}

// Snapshot - получить значения счетчиков
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Active:      s.active.Load(),
		Total:       s.total.Load(),
		Found:       s.found.Load(),
		NotFound:    s.notFound.Load(),
		Malformed:   s.malformed.Load(),
		Faults:      s.faults.Load(),
		ReadErrors:  s.readErrors.Load(),
		Unsupported: s.unsupported.Load(),
		BodyBytes:   s.bodyBytes.Load(),
		Uptime:      time.Since(s.started).Seconds(),
	}
}
