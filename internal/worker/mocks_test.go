package worker

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/vikask011/react-native/internal/domain"
	"github.com/vikask011/react-native/internal/repository"
	"github.com/vikask011/react-native/pkg/kafka"
)

// mockBookingRepository is a testify mock of repository.BookingRepository
type mockBookingRepository struct {
	mock.Mock
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *mockBookingRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	args := m.Called(ctx, userID)
	bs, _ := args.Get(0).([]*domain.Booking)
	return bs, args.Error(1)
}

func (m *mockBookingRepository) ConfirmWithSeat(ctx context.Context, req *repository.ConfirmRequest) (*domain.Booking, error) {
	args := m.Called(ctx, req)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepository) ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]*domain.Booking, error) {
	args := m.Called(ctx, cutoff, limit)
	bs, _ := args.Get(0).([]*domain.Booking)
	return bs, args.Error(1)
}

func (m *mockBookingRepository) CancelWithOutbox(ctx context.Context, booking *domain.Booking, msg *domain.OutboxMessage) error {
	return m.Called(ctx, booking, msg).Error(0)
}

// fakeOutboxRepository keeps messages in memory
type fakeOutboxRepository struct {
	mu        sync.Mutex
	messages  map[string]*domain.OutboxMessage
	order     []string
	deleted   time.Time
	deleteErr error
}

func newFakeOutboxRepository(msgs ...*domain.OutboxMessage) *fakeOutboxRepository {
	f := &fakeOutboxRepository{messages: make(map[string]*domain.OutboxMessage)}
	for _, m := range msgs {
		f.Create(context.Background(), m)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, msg *domain.OutboxMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[msg.ID] = msg
	f.order = append(f.order, msg.ID)
	return nil
}

func (f *fakeOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.OutboxMessage
	for _, id := range f.order {
		m := f.messages[id]
		if m.Status == domain.OutboxStatusPending || m.CanRetry() {
			cp := *m
			out = append(out, &cp)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeOutboxRepository) MarkAsPublished(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[id].MarkAsPublished(time.Now())
	return nil
}

func (f *fakeOutboxRepository) MarkAsFailed(ctx context.Context, id string, errMsg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[id].MarkAsFailed(errMsg)
	return nil
}

func (f *fakeOutboxRepository) DeletePublished(ctx context.Context, olderThan time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = olderThan
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	var n int64
	for id, m := range f.messages {
		if m.Status == domain.OutboxStatusPublished && m.PublishedAt.Before(olderThan) {
			delete(f.messages, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeOutboxRepository) status(id string) domain.OutboxStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages[id].Status
}

// mockPublisher is a testify mock of Publisher
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, msg *domain.OutboxMessage) error {
	return m.Called(ctx, msg).Error(0)
}

// recordingProducer captures produced records
type recordingProducer struct {
	messages []*kafka.Message
	err      error
}

func (p *recordingProducer) Produce(ctx context.Context, msg *kafka.Message) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, msg)
	return nil
}
