package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/vikask011/react-native/internal/domain"
	"github.com/vikask011/react-native/internal/gateway"
	"github.com/vikask011/react-native/internal/repository"
)

// mockUserRepository is an in-memory UserRepository
type mockUserRepository struct {
	mu         sync.Mutex
	nextID     int64
	users      map[int64]*domain.User
	emailIndex map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:      make(map[int64]*domain.User),
		emailIndex: make(map[string]*domain.User),
	}
}

func (r *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.emailIndex[user.Email]; exists {
		return domain.ErrDuplicateEmail
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	r.emailIndex[user.Email] = user
	return nil
}

func (r *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.emailIndex[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *mockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// mockEventRepository is an in-memory EventRepository that also records cache invalidations
type mockEventRepository struct {
	mu          sync.Mutex
	events      map[int64]*domain.Event
	invalidated []int64
	getError    error
}

func newMockEventRepository(events ...*domain.Event) *mockEventRepository {
	r := &mockEventRepository{events: make(map[int64]*domain.Event)}
	for _, e := range events {
		r.events[e.ID] = e
	}
	return r
}

func (r *mockEventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Event, 0)
	for _, e := range r.events {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *mockEventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getError != nil {
		return nil, r.getError
	}
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	c := *e
	return &c, nil
}

func (r *mockEventRepository) DecrementSeat(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.decrementLocked(id)
}

func (r *mockEventRepository) decrementLocked(id int64) error {
	e, ok := r.events[id]
	if !ok {
		return domain.ErrEventNotFound
	}
	if e.AvailableSeats <= 0 {
		return domain.ErrSoldOut
	}
	e.AvailableSeats--
	return nil
}

func (r *mockEventRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.events)), nil
}

func (r *mockEventRepository) CreateBatch(ctx context.Context, events []*domain.Event) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range events {
		e.ID = int64(len(r.events) + 1)
		r.events[e.ID] = e
	}
	return len(events), nil
}

func (r *mockEventRepository) Invalidate(ctx context.Context, eventID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidated = append(r.invalidated, eventID)
}

func (r *mockEventRepository) seats(id int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[id].AvailableSeats
}

// mockBookingRepository is an in-memory BookingRepository. ConfirmWithSeat
// holds one lock across the seat decrement and the status change, like the
// database transaction does.
type mockBookingRepository struct {
	mu          sync.Mutex
	nextID      int64
	bookings    map[int64]*domain.Booking
	events      *mockEventRepository
	outbox      []*domain.OutboxMessage
	createError error
}

func newMockBookingRepository(events *mockEventRepository) *mockBookingRepository {
	return &mockBookingRepository{
		bookings: make(map[int64]*domain.Booking),
		events:   events,
	}
}

func (r *mockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createError != nil {
		return r.createError
	}
	r.nextID++
	booking.ID = r.nextID
	c := *booking
	r.bookings[booking.ID] = &c
	return nil
}

func (r *mockBookingRepository) byOrderRef(orderRef string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.OrderRef == orderRef {
			c := *b
			return &c, nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

func (r *mockBookingRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.UserID == userID {
			c := *b
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *mockBookingRepository) ConfirmWithSeat(ctx context.Context, req *repository.ConfirmRequest) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var booking *domain.Booking
	for _, b := range r.bookings {
		if b.OrderRef == req.OrderRef && b.UserID == req.UserID && b.Status == domain.BookingStatusPending {
			booking = b
		}
	}
	if booking == nil || (req.EventID != 0 && booking.EventID != req.EventID) {
		return nil, domain.ErrBookingNotFound
	}

	r.events.mu.Lock()
	err := r.events.decrementLocked(booking.EventID)
	r.events.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := booking.Confirm(req.PaymentRef, time.Now()); err != nil {
		return nil, err
	}
	msg, err := domain.NewBookingOutboxMessage(domain.EventTypeBookingConfirmed, req.Topic, booking, req.Headers)
	if err != nil {
		return nil, err
	}
	r.outbox = append(r.outbox, msg)

	c := *booking
	return &c, nil
}

func (r *mockBookingRepository) ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]*domain.Booking, error) {
	return nil, nil
}

func (r *mockBookingRepository) CancelWithOutbox(ctx context.Context, booking *domain.Booking, msg *domain.OutboxMessage) error {
	return nil
}

func (r *mockBookingRepository) status(id int64) domain.BookingStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookings[id].Status
}

// mockGateway is a testify mock of gateway.PaymentGateway
type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateOrder(ctx context.Context, req *gateway.OrderRequest) (*gateway.Order, error) {
	args := m.Called(ctx, req)
	switch o := args.Get(0).(type) {
	case func(context.Context, *gateway.OrderRequest) *gateway.Order:
		return o(ctx, req), args.Error(1)
	case *gateway.Order:
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) error {
	return m.Called(ctx, orderID, paymentID, signature).Error(0)
}

func (m *mockGateway) KeyID() string { return "rzp_test_key" }

func (m *mockGateway) Name() string { return "mock" }
