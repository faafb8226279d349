package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type fakeSource struct {
	entries   []OutboxEntry
	delivered []uuid.UUID
}

func (f *fakeSource) FetchPending(context.Context, int32) ([]OutboxEntry, error) {
	return f.entries, nil
}

func (f *fakeSource) MarkDelivered(_ context.Context, id uuid.UUID) (bool, error) {
	f.delivered = append(f.delivered, id)
	return true, nil
}

type fakeHandler struct {
	handled []OutboxEntry
	failFor string
}

func (f *fakeHandler) Handle(_ context.Context, entry OutboxEntry) error {
	if entry.Type == f.failFor {
		return errors.New("transport down")
	}
	f.handled = append(f.handled, entry)
	return nil
}

func TestDeliverer_DrainMarksDelivered(t *testing.T) {
	src := &fakeSource{entries: []OutboxEntry{
		{ID: uuid.New(), Type: TypePaymentSucceeded, Payload: json.RawMessage(`{}`)},
		{ID: uuid.New(), Type: TypeQuoteEmailed, Payload: json.RawMessage(`{}`)},
	}}
	handler := &fakeHandler{}

	d := NewDeliverer(src, handler, nil)
	d.drain(context.Background())

	if len(handler.handled) != 2 {
		t.Fatalf("handled %d entries, want 2", len(handler.handled))
	}
	if len(src.delivered) != 2 {
		t.Fatalf("marked %d delivered, want 2", len(src.delivered))
	}
}

func TestDeliverer_FailedEntryStaysPending(t *testing.T) {
	keep := OutboxEntry{ID: uuid.New(), Type: TypePaymentSucceeded}
	fail := OutboxEntry{ID: uuid.New(), Type: TypeLeadConverted}
	src := &fakeSource{entries: []OutboxEntry{fail, keep}}
	handler := &fakeHandler{failFor: TypeLeadConverted}

	d := NewDeliverer(src, handler, nil)
	d.drain(context.Background())

	if len(src.delivered) != 1 || src.delivered[0] != keep.ID {
		t.Errorf("delivered = %v, want only %v", src.delivered, keep.ID)
	}
}

func TestDeliverer_Options(t *testing.T) {
	d := NewDeliverer(&fakeSource{}, &fakeHandler{}, nil).WithBatchSize(0).WithInterval(0)
	if d.batchSize != 25 {
		t.Errorf("batchSize = %d, want default kept on invalid option", d.batchSize)
	}
}
