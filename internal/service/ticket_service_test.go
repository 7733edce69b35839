package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/ticketera/internal/errs"
	"github.com/opsdesk/ticketera/internal/event"
	"github.com/opsdesk/ticketera/internal/form"
	"github.com/opsdesk/ticketera/internal/model"
	"github.com/opsdesk/ticketera/internal/notify"
	"github.com/opsdesk/ticketera/internal/sheet"
)

type fakeSource struct {
	rows      [][]string
	appendErr error
}

func (f *fakeSource) Append(_ context.Context, row []string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeSource) Rows(_ context.Context) ([][]string, error) {
	return f.rows, nil
}

func newService(src *fakeSource) *TicketService {
	gateway := sheet.NewGateway(src, 5)
	return NewTicketService(gateway, event.NewProducer(nil, ""), notify.NewClient("")).
		WithClock(func() time.Time {
			return time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
		})
}

func validDraft() *model.Draft {
	d := model.NewDraft(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	form.SetOrigin(d, model.OriginTroubleticket)
	form.SetExtraField(d, 0, "INC0009999")
	form.SetReason(d, "Reenviado a Territorio")
	form.SetDetails(d, "detalle del caso")
	return d
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("valid draft is appended and returned", func(t *testing.T) {
		src := &fakeSource{rows: [][]string{sheet.Header}}
		svc := newService(src)

		rec, err := svc.Submit(ctx, validDraft(), "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", rec.Operator)
		assert.Equal(t, "INC0009999", rec.Reference)
		assert.Equal(t, "2025-03-10 09:30:00", rec.ClosedAt.Format(model.TimeLayout))
		assert.Len(t, src.rows, 2)
	})

	t.Run("invalid draft returns every validation error and writes nothing", func(t *testing.T) {
		src := &fakeSource{rows: [][]string{sheet.Header}}
		svc := newService(src)

		_, err := svc.Submit(ctx, model.NewDraft(time.Now()), "alice")
		var verrs errs.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 3)
		assert.Len(t, src.rows, 1)
	})

	t.Run("backend failure surfaces as persistence error", func(t *testing.T) {
		src := &fakeSource{appendErr: errors.New("503 backend")}
		svc := newService(src)

		_, err := svc.Submit(ctx, validDraft(), "alice")
		var perr *errs.PersistenceError
		require.ErrorAs(t, err, &perr)
	})
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{rows: [][]string{sheet.Header}}
	svc := newService(src)
	for i := 0; i < 4; i++ {
		d := validDraft()
		_, err := svc.Submit(ctx, d, "alice")
		require.NoError(t, err)
	}
	_, err := svc.Submit(ctx, validDraft(), "bob")
	require.NoError(t, err)

	t.Run("full history in stored order", func(t *testing.T) {
		recs, err := svc.History(ctx, 0)
		require.NoError(t, err)
		require.Len(t, recs, 5)
		assert.Equal(t, "bob", recs[4].Operator)
	})

	t.Run("limit keeps the most recent rows", func(t *testing.T) {
		recs, err := svc.History(ctx, 2)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "bob", recs[1].Operator)
	})

	t.Run("per-user history", func(t *testing.T) {
		recs, err := svc.HistoryForUser(ctx, "alice")
		require.NoError(t, err)
		assert.Len(t, recs, 4)
	})
}
