package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/pkg/pubsub"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// memStore is an in-memory database shared by the fake repositories below.
// Each fake embeds the repository interface, so calling a method the fake
// does not implement panics and flags an unexpected dependency.
type memStore struct {
	mu sync.Mutex

	tenants   map[uuid.UUID]*entity.Tenant
	cinemas   map[uuid.UUID]*entity.Cinema
	halls     map[uuid.UUID]*entity.Hall
	seats     map[uuid.UUID]*entity.Seat
	movies    map[uuid.UUID]*entity.Movie
	showtimes map[uuid.UUID]*entity.Showtime
	bookings  map[uuid.UUID]*entity.Booking
	tickets   []*entity.Ticket
	contacts  map[uuid.UUID]*entity.Contact

	bookingWrites int
	// codeCollisions makes the next n booking inserts fail on the
	// confirmation code constraint.
	codeCollisions int
}

func newMemStore() *memStore {
	return &memStore{
		tenants:   map[uuid.UUID]*entity.Tenant{},
		cinemas:   map[uuid.UUID]*entity.Cinema{},
		halls:     map[uuid.UUID]*entity.Hall{},
		seats:     map[uuid.UUID]*entity.Seat{},
		movies:    map[uuid.UUID]*entity.Movie{},
		showtimes: map[uuid.UUID]*entity.Showtime{},
		bookings:  map[uuid.UUID]*entity.Booking{},
		contacts:  map[uuid.UUID]*entity.Contact{},
	}
}

func (m *memStore) repository() *repository.Repository {
	return &repository.Repository{
		Tenant:   &fakeTenantRepo{store: m},
		Hall:     &fakeHallRepo{store: m},
		Seat:     &fakeSeatRepo{store: m},
		Movie:    &fakeMovieRepo{store: m},
		Showtime: &fakeShowtimeRepo{store: m},
		Booking:  &fakeBookingRepo{store: m},
		Ticket:   &fakeTicketRepo{store: m},
		Contact:  &fakeContactRepo{store: m},
	}
}

func (m *memStore) ticketCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tickets)
}

func (m *memStore) bookingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings)
}

// ==================== TENANT ====================

type fakeTenantRepo struct {
	repository.TenantRepository
	store *memStore
}

func (r *fakeTenantRepo) FindOrCreateDefault(_ context.Context) (*entity.Tenant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, t := range r.store.tenants {
		if t.IsDefault {
			return t, nil
		}
	}
	t := &entity.Tenant{
		Base:               entity.NewBase(),
		Name:               entity.DefaultTenantName,
		SubscriptionStatus: entity.SubscriptionActive,
		IsDefault:          true,
	}
	r.store.tenants[t.ID] = t
	return t, nil
}

// ==================== HALL ====================

type fakeHallRepo struct {
	repository.HallRepository
	store *memStore
}

func (r *fakeHallRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Hall, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.halls[id], nil
}

// ==================== SEAT ====================

type fakeSeatRepo struct {
	repository.SeatRepository
	store *memStore
}

func (r *fakeSeatRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.Seat
	for _, id := range ids {
		if seat, ok := r.store.seats[id]; ok {
			out = append(out, seat)
		}
	}
	return out, nil
}

func (r *fakeSeatRepo) FindByHallID(_ context.Context, hallID uuid.UUID) ([]*entity.Seat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.Seat
	for _, seat := range r.store.seats {
		if seat.HallID == hallID {
			out = append(out, seat)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label() < out[j].Label() })
	return out, nil
}

// ==================== MOVIE ====================

type fakeMovieRepo struct {
	repository.MovieRepository
	store *memStore
}

func (r *fakeMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.movies[movie.ID] = movie
	return nil
}

func (r *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.movies[id], nil
}

func (r *fakeMovieRepo) SlugExists(_ context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, m := range r.store.movies {
		if m.Slug == slug && (excludeID == nil || m.ID != *excludeID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMovieRepo) Update(_ context.Context, movie *entity.Movie) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.movies[movie.ID] = movie
	return nil
}

// ==================== SHOWTIME ====================

type fakeShowtimeRepo struct {
	repository.ShowtimeRepository
	store *memStore
}

func (r *fakeShowtimeRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Showtime, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	st, ok := r.store.showtimes[id]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (r *fakeShowtimeRepo) Create(_ context.Context, showtime *entity.Showtime) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *showtime
	r.store.showtimes[showtime.ID] = &cp
	return nil
}

func (r *fakeShowtimeRepo) Update(_ context.Context, showtime *entity.Showtime) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.showtimes[showtime.ID]; !ok {
		return errors.New("showtime not found")
	}
	cp := *showtime
	r.store.showtimes[showtime.ID] = &cp
	return nil
}

func (r *fakeShowtimeRepo) HasOverlap(_ context.Context, hallID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, st := range r.store.showtimes {
		if excludeID != nil && st.ID == *excludeID {
			continue
		}
		if st.HallID == hallID && st.StartsAt.Before(end) && st.EndsAt.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeShowtimeRepo) FindDetail(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	st, err := r.FindByID(ctx, id)
	if err != nil || st == nil {
		return st, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	st.Movie = r.store.movies[st.MovieID]
	if hall, ok := r.store.halls[st.HallID]; ok {
		h := *hall
		h.Cinema = r.store.cinemas[hall.CinemaID]
		st.Hall = &h
	}
	return st, nil
}

func (r *fakeShowtimeRepo) ResolveTenantID(_ context.Context, showtimeID uuid.UUID) (*uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	st, ok := r.store.showtimes[showtimeID]
	if !ok {
		return nil, errors.New("showtime not found")
	}
	hall := r.store.halls[st.HallID]
	if hall == nil {
		return nil, nil
	}
	cinema := r.store.cinemas[hall.CinemaID]
	if cinema == nil {
		return nil, nil
	}
	return cinema.TenantID, nil
}

// ==================== BOOKING ====================

type fakeBookingRepo struct {
	repository.BookingRepository
	store *memStore
}

// heldLocked returns the seats of the showtime held by active bookings.
func (m *memStore) heldLocked(showtimeID uuid.UUID) map[uuid.UUID]bool {
	held := map[uuid.UUID]bool{}
	for _, t := range m.tickets {
		if t.ShowtimeID != showtimeID || t.Status != entity.TicketStatusValid {
			continue
		}
		if b, ok := m.bookings[t.BookingID]; ok && b.Status.Active() {
			held[t.SeatID] = true
		}
	}
	return held
}

func (r *fakeBookingRepo) CreateWithTickets(_ context.Context, booking *entity.Booking, tickets []*entity.Ticket) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.showtimes[booking.ShowtimeID]; !ok {
		return errors.New("showtime not found")
	}

	held := r.store.heldLocked(booking.ShowtimeID)
	var taken []uuid.UUID
	for _, t := range tickets {
		if held[t.SeatID] {
			taken = append(taken, t.SeatID)
		}
	}
	if len(taken) > 0 {
		return &repository.SeatsTakenError{ShowtimeID: booking.ShowtimeID, SeatIDs: taken}
	}

	if r.store.codeCollisions > 0 {
		r.store.codeCollisions--
		return repository.ErrConfirmationCodeTaken
	}

	cp := *booking
	cp.Tickets = nil
	r.store.bookings[booking.ID] = &cp
	for _, t := range tickets {
		tc := *t
		r.store.tickets = append(r.store.tickets, &tc)
	}
	r.store.bookingWrites++
	return nil
}

func (r *fakeBookingRepo) FindBookedSeatIDs(_ context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var ids []uuid.UUID
	for id := range r.store.heldLocked(showtimeID) {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	for _, t := range r.store.tickets {
		if t.BookingID == id {
			cp.Tickets = append(cp.Tickets, t)
		}
	}
	return &cp, nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	b.Status = entity.BookingStatusCancelled
	for _, t := range r.store.tickets {
		if t.BookingID == id {
			t.Status = entity.TicketStatusVoid
		}
	}
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.bookings, id)
	kept := r.store.tickets[:0]
	for _, t := range r.store.tickets {
		if t.BookingID != id {
			kept = append(kept, t)
		}
	}
	r.store.tickets = kept
	return nil
}

// ==================== TICKET ====================

type fakeTicketRepo struct {
	repository.TicketRepository
	store *memStore
}

func (r *fakeTicketRepo) FindByShowtimeID(_ context.Context, showtimeID uuid.UUID) ([]*entity.Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.Ticket
	for _, t := range r.store.tickets {
		if t.ShowtimeID == showtimeID {
			out = append(out, t)
		}
	}
	return out, nil
}

// ==================== CONTACT ====================

type fakeContactRepo struct {
	repository.ContactRepository
	store *memStore
}

func (r *fakeContactRepo) Create(_ context.Context, contact *entity.Contact) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.contacts[contact.ID] = contact
	return nil
}

// ==================== FIXTURE ====================

// cinemaFixture is one cinema with a 1x3 hall (A1..A3), a movie and a
// showtime priced at 12.50.
type cinemaFixture struct {
	store    *memStore
	cinema   *entity.Cinema
	hall     *entity.Hall
	seats    map[string]*entity.Seat
	movie    *entity.Movie
	showtime *entity.Showtime
	unit     decimal.Decimal
}

func newCinemaFixture() *cinemaFixture {
	store := newMemStore()
	f := &cinemaFixture{
		store: store,
		seats: map[string]*entity.Seat{},
		unit:  decimal.RequireFromString("12.50"),
	}

	f.cinema = &entity.Cinema{Base: entity.NewBase(), Name: "Downtown", Location: "Main St 1"}
	f.hall = &entity.Hall{Base: entity.NewBase(), CinemaID: f.cinema.ID, Name: "Hall 1", Capacity: 3, Rows: 1, Columns: 3}
	store.cinemas[f.cinema.ID] = f.cinema
	store.halls[f.hall.ID] = f.hall

	for _, seat := range SeatGrid(f.hall, nil) {
		store.seats[seat.ID] = seat
		f.seats[seat.Label()] = seat
	}

	f.movie = &entity.Movie{
		Base:            entity.NewBase(),
		Title:           "Arrival",
		Slug:            "arrival",
		DurationMinutes: 116,
		Status:          entity.MovieStatusNowShowing,
	}
	store.movies[f.movie.ID] = f.movie

	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Minute)
	f.showtime = &entity.Showtime{
		Base:        entity.NewBase(),
		MovieID:     f.movie.ID,
		HallID:      f.hall.ID,
		StartsAt:    start,
		EndsAt:      start.Add(2 * time.Hour),
		PriceMatrix: entity.PriceMatrix{entity.SeatTypeStandard: f.unit},
	}
	store.showtimes[f.showtime.ID] = f.showtime

	return f
}

// addHall adds an empty second hall to the fixture's cinema.
func (f *cinemaFixture) addHall(name string) *entity.Hall {
	hall := &entity.Hall{Base: entity.NewBase(), CinemaID: f.cinema.ID, Name: name, Capacity: 3, Rows: 1, Columns: 3}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.halls[hall.ID] = hall
	for _, seat := range SeatGrid(hall, nil) {
		f.store.seats[seat.ID] = seat
	}
	return hall
}

func (f *cinemaFixture) seatIDs(labels ...string) []string {
	ids := make([]string, 0, len(labels))
	for _, label := range labels {
		ids = append(ids, f.seats[label].ID.String())
	}
	return ids
}

func (f *cinemaFixture) bookingService() BookingService {
	return NewBookingService(f.store.repository(), bookingConfig(), zap.NewNop())
}

func (f *cinemaFixture) showtimeService() ShowtimeService {
	return NewShowtimeService(f.store.repository(), zap.NewNop())
}

// ==================== PUBLISHER ====================

type publishedEvent struct {
	Channel string
	Event   pubsub.Event
}

// recordingPublisher captures events and optionally fails every publish.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, channel string, event pubsub.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{Channel: channel, Event: event})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}
