package service

import (
	"context"
	"time"

	"github.com/opsdesk/ticketera/internal/event"
	"github.com/opsdesk/ticketera/internal/form"
	"github.com/opsdesk/ticketera/internal/model"
	"github.com/opsdesk/ticketera/internal/notify"
	"github.com/opsdesk/ticketera/internal/sheet"
)

// TicketService drives a submit end to end: validate the draft, build the
// record, append it, then emit the best-effort notifications.
type TicketService struct {
	gateway  *sheet.Gateway
	events   *event.Producer
	notifier *notify.Client
	now      func() time.Time
}

func NewTicketService(gateway *sheet.Gateway, events *event.Producer, notifier *notify.Client) *TicketService {
	return &TicketService{
		gateway:  gateway,
		events:   events,
		notifier: notifier,
		now:      time.Now,
	}
}

// WithClock fixes the close-timestamp clock; tests only.
func (s *TicketService) WithClock(now func() time.Time) *TicketService {
	s.now = now
	return s
}

// Submit validates and persists the draft for operator. On validation failure
// it returns the full ValidationErrors list; on backend failure a
// PersistenceError. The caller resets the draft only after a nil error.
func (s *TicketService) Submit(ctx context.Context, d *model.Draft, operator string) (*model.Record, error) {
	if verrs := form.Validate(d); len(verrs) > 0 {
		return nil, verrs
	}
	rec := form.BuildRecord(d, operator, s.now())
	if err := s.gateway.Append(ctx, rec); err != nil {
		return nil, err
	}
	s.events.TicketSaved(ctx, &rec)
	s.notifier.TicketSavedAsync(&rec)
	return &rec, nil
}

// History returns the full log in stored order, optionally capped to the last
// limit rows.
func (s *TicketService) History(ctx context.Context, limit int) ([]model.Record, error) {
	recs, err := s.gateway.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(recs) > limit {
		recs = recs[len(recs)-limit:]
	}
	return recs, nil
}

// HistoryForUser returns operator's recent rows, newest first.
func (s *TicketService) HistoryForUser(ctx context.Context, operator string) ([]model.Record, error) {
	return s.gateway.ListForUser(ctx, operator)
}
