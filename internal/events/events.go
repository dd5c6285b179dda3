// Package events defines the outbound mutation events emitted after a
// successful write. Publishing is best-effort: services log a failed publish
// and never fail the mutation for it.
package events

import (
	"context"
	"log/slog"
	"time"
)

// Event kinds emitted by the mutation services.
const (
	KindAccountCreated = "account.created"
	KindAccountUpdated = "account.updated"
	KindAccountDeleted = "account.deleted"
	KindEntryCreated   = "entry.created"
	KindEntryUpdated   = "entry.updated"
	KindEntryDeleted   = "entry.deleted"
)

// Event describes one committed mutation.
type Event struct {
	Kind        string    `json:"kind"`
	ID          string    `json:"id"`
	KhateNumber string    `json:"khate_number,omitempty"`
	At          time.Time `json:"at"`
}

// Publisher sends events to an external broker.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Noop discards every event. It is the default when no broker is configured.
type Noop struct{}

// Publish implements Publisher.
func (Noop) Publish(context.Context, Event) error { return nil }

// Logged wraps a publisher so failures are logged and swallowed, keeping
// event emission best-effort for the mutation path.
func Logged(next Publisher, log *slog.Logger) Publisher {
	return logged{next: next, log: log}
}

type logged struct {
	next Publisher
	log  *slog.Logger
}

func (l logged) Publish(ctx context.Context, ev Event) error {
	if err := l.next.Publish(ctx, ev); err != nil {
		l.log.Warn("event publish failed", "kind", ev.Kind, "id", ev.ID, "err", err)
	}
	return nil
}
