package events

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
)

func TestProcessedStore_MarkProcessed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec("INSERT INTO processed_events").
		WithArgs("stripe", "evt_1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO processed_events").
		WithArgs("stripe", "evt_1").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	store := NewProcessedStoreWithQuerier(mock)

	first, err := store.MarkProcessed(context.Background(), "stripe", "evt_1")
	if err != nil || !first {
		t.Fatalf("first mark = (%v, %v), want (true, nil)", first, err)
	}
	second, err := store.MarkProcessed(context.Background(), "stripe", "evt_1")
	if err != nil || second {
		t.Fatalf("second mark = (%v, %v), want (false, nil)", second, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestProcessedStore_AlreadyProcessed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT 1 FROM processed_events").
		WithArgs("stripe", "evt_seen").
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery("SELECT 1 FROM processed_events").
		WithArgs("stripe", "evt_new").
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}))

	store := NewProcessedStoreWithQuerier(mock)

	seen, err := store.AlreadyProcessed(context.Background(), "stripe", "evt_seen")
	if err != nil || !seen {
		t.Fatalf("seen = (%v, %v), want (true, nil)", seen, err)
	}
	fresh, err := store.AlreadyProcessed(context.Background(), "stripe", "evt_new")
	if err != nil || fresh {
		t.Fatalf("fresh = (%v, %v), want (false, nil)", fresh, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
