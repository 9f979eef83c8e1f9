package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/vikask011/react-native/internal/domain"
)

type fakeEventRepo struct {
	count    int64
	countErr error
	created  []*domain.Event
	titles   map[string]bool
}

func (f *fakeEventRepo) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	return nil, nil
}
func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	return nil, domain.ErrEventNotFound
}
func (f *fakeEventRepo) DecrementSeat(ctx context.Context, id int64) error { return nil }
func (f *fakeEventRepo) Count(ctx context.Context) (int64, error)         { return f.count, f.countErr }

func (f *fakeEventRepo) CreateBatch(ctx context.Context, events []*domain.Event) (int, error) {
	if f.titles == nil {
		f.titles = make(map[string]bool)
	}
	n := 0
	for _, e := range events {
		if f.titles[e.Title] {
			continue
		}
		f.titles[e.Title] = true
		f.created = append(f.created, e)
		n++
	}
	f.count += int64(n)
	return n, nil
}

func TestCatalog(t *testing.T) {
	events := Catalog()
	if len(events) != 22 {
		t.Fatalf("len(Catalog()) = %d, want 22", len(events))
	}

	categories := map[string]int{}
	free := 0
	for _, e := range events {
		if !e.IsActive {
			t.Errorf("%s is not active", e.Title)
		}
		if e.AvailableSeats <= 0 {
			t.Errorf("%s has no seats", e.Title)
		}
		if e.Price == 0 {
			free++
		}
		categories[e.Category]++
	}

	want := map[string]int{"Music": 4, "Tech": 4, "Sports": 3, "Food": 3, "Art": 2, "Comedy": 3, "Business": 3}
	for cat, n := range want {
		if categories[cat] != n {
			t.Errorf("category %s has %d events, want %d", cat, categories[cat], n)
		}
	}
	if free != 3 {
		t.Errorf("free events = %d, want 3", free)
	}

	// Copies must not alias the package catalog
	events[0].AvailableSeats = 0
	if Catalog()[0].AvailableSeats == 0 {
		t.Error("Catalog() returned shared events")
	}
}

func TestCatalog_DatesInIST(t *testing.T) {
	coldplay := Catalog()[0]
	if coldplay.Date.UTC().Hour() != 13 || coldplay.Date.UTC().Minute() != 30 {
		t.Errorf("19:00 IST = %v UTC, want 13:30", coldplay.Date.UTC())
	}
}

func TestSeed_EmptyTable(t *testing.T) {
	repo := &fakeEventRepo{}
	n, err := Seed(context.Background(), repo, false)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if n != 22 {
		t.Errorf("Seed() = %d, want 22", n)
	}
}

func TestSeed_SkipsWhenEventsExist(t *testing.T) {
	repo := &fakeEventRepo{count: 3}
	n, err := Seed(context.Background(), repo, false)
	if err != nil || n != 0 {
		t.Errorf("Seed() = %d, %v, want 0, nil", n, err)
	}
	if len(repo.created) != 0 {
		t.Error("Seed() inserted events into a populated table")
	}
}

func TestSeed_ForceAddsOnlyMissing(t *testing.T) {
	repo := &fakeEventRepo{}
	Seed(context.Background(), repo, false)

	n, err := Seed(context.Background(), repo, true)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if n != 0 {
		t.Errorf("forced reseed inserted %d duplicates", n)
	}
}

func TestSeed_CountError(t *testing.T) {
	repo := &fakeEventRepo{countErr: errors.New("db down")}
	if _, err := Seed(context.Background(), repo, false); err == nil {
		t.Error("Seed() expected error")
	}
}
