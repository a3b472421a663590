package event

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/doorsentry/core/internal/infrastructure/influxdb"
)

// Report is a device-submitted access report before validation.
type Report struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	ActorName   string `json:"actor_name"`
	BiometricID string `json:"biometric_id"`
	Note        string `json:"note"`
}

// Ingestor validates and records device access reports.
//
// The optional InfluxDB mirror and broadcast sink are best-effort:
// both run after the durable insert and neither can fail it.
type Ingestor struct {
	repo      Repository
	mirror    *influxdb.Client
	broadcast func(*AccessEvent)
	logger    *slog.Logger
}

// NewIngestor creates an ingestor over the given store.
// mirror may be nil when the InfluxDB mirror is disabled.
func NewIngestor(repo Repository, mirror *influxdb.Client, logger *slog.Logger) *Ingestor {
	return &Ingestor{repo: repo, mirror: mirror, logger: logger}
}

// SetBroadcast registers a sink invoked with every recorded event,
// used to push the live dashboard feed. Must be set before serving.
func (i *Ingestor) SetBroadcast(fn func(*AccessEvent)) {
	i.broadcast = fn
}

// RecordEvent validates a report and appends it to the log.
//
// Date and time are required and strictly formatted; everything else is
// optional. A missing actor name becomes the unrecognised sentinel.
func (i *Ingestor) RecordEvent(ctx context.Context, report Report) (*AccessEvent, error) {
	date := strings.TrimSpace(report.Date)
	if date == "" {
		return nil, ErrDateRequired
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadDate, date)
	}

	clock := strings.TrimSpace(report.Time)
	if clock == "" {
		return nil, ErrTimeRequired
	}
	if _, err := time.Parse(TimeLayout, clock); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadTime, clock)
	}

	actor := strings.TrimSpace(report.ActorName)
	if actor == "" {
		actor = UnknownActor
	}

	ev := &AccessEvent{
		Date:        date,
		Time:        clock,
		ActorName:   actor,
		BiometricID: strings.TrimSpace(report.BiometricID),
		Note:        strings.TrimSpace(report.Note),
	}
	if err := i.repo.Insert(ctx, ev); err != nil {
		return nil, err
	}

	i.logger.Info("access event recorded",
		"event_id", ev.ID,
		"actor", ev.ActorName,
		"recognised", ev.ActorName != UnknownActor,
	)

	if i.mirror != nil {
		if at, err := time.Parse(DateLayout+" "+TimeLayout, date+" "+clock); err == nil {
			i.mirror.WriteAccessEvent(ev.ActorName, ev.ActorName != UnknownActor, at)
		}
	}
	if i.broadcast != nil {
		i.broadcast(ev)
	}

	return ev, nil
}
