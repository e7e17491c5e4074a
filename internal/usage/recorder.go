// Package usage records conversion requests for the admin statistics.
package usage

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mandalnilabja/mpgconverter/internal/conversion"
	"github.com/mandalnilabja/mpgconverter/internal/storage"
)

// Event describes one handled conversion request.
type Event struct {
	RequestID  string
	Unit       conversion.Unit
	Channel    string
	Err        error // conversion error, nil on success
	StatusCode int
	Start      time.Time
}

// Recorder writes request logs and daily usage counters.
// A Recorder with nil storage discards everything.
type Recorder struct {
	store  storage.Storage
	logger *slog.Logger
	now    func() time.Time
}

// NewRecorder creates a Recorder. store may be nil to disable recording.
func NewRecorder(store storage.Storage, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{store: store, logger: logger, now: time.Now}
}

// Enabled reports whether events are persisted.
func (r *Recorder) Enabled() bool {
	return r != nil && r.store != nil
}

// Record persists ev. Storage failures are logged and otherwise ignored.
func (r *Recorder) Record(ev Event) {
	if !r.Enabled() {
		return
	}

	now := r.now()
	outcome := Outcome(ev.Err)
	// Client-supplied slugs never become storage keys; only the catalog does.
	unit := storage.UnitUnknown
	if ev.Unit.Valid() {
		unit = string(ev.Unit)
	}
	channel := ev.Channel
	if channel == "" {
		channel = storage.ChannelAPI
	}

	var duration int64
	if !ev.Start.IsZero() {
		duration = now.Sub(ev.Start).Milliseconds()
	}

	log := &storage.RequestLog{
		ID:         uuid.New().String(),
		RequestID:  ev.RequestID,
		Unit:       unit,
		Channel:    channel,
		Outcome:    outcome,
		StatusCode: ev.StatusCode,
		DurationMs: duration,
		CreatedAt:  now,
	}
	if err := r.store.LogRequest(log); err != nil {
		r.logger.Warn("failed to log conversion request", "error", err, "request_id", ev.RequestID)
	}

	invalid := 0
	if outcome != storage.OutcomeOK {
		invalid = 1
	}
	daily := &storage.DailyUsage{
		Date:         now.UTC().Format("2006-01-02"),
		Unit:         unit,
		RequestCount: 1,
		InvalidCount: invalid,
	}
	if err := r.store.UpdateDailyUsage(daily); err != nil {
		r.logger.Warn("failed to update daily usage", "error", err, "unit", unit)
	}
}

// Outcome maps a conversion error to the stored outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return storage.OutcomeOK
	case errors.Is(err, conversion.ErrUnknownUnit):
		return storage.OutcomeUnknownUnit
	default:
		return storage.OutcomeInvalidInput
	}
}
