package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/campushub/facility-booking/internal/clock"
	"github.com/campushub/facility-booking/internal/model"
)

// fakeStore holds in-memory state shared by the three store views below.
// WithTx holds the mutex for the whole callback and restores a snapshot
// on error, giving the engine the same serialization and rollback
// behavior it gets from the real database.
type fakeStore struct {
	mu         sync.Mutex
	facilities map[uint64]model.Facility
	slots      map[uint64]*model.Slot
	bookings   map[uint64]*model.Booking
	users      map[uint64]model.BookingUser
	nextID     uint64
}

type fakeTxKey struct{}

func newFakeStore() *fakeStore {
	return &fakeStore{
		facilities: make(map[uint64]model.Facility),
		slots:      make(map[uint64]*model.Slot),
		bookings:   make(map[uint64]*model.Booking),
		users:      make(map[uint64]model.BookingUser),
	}
}

// newTestService wires an engine over the fake with the given clock and
// policy.
func newTestService(f *fakeStore, clk clock.Clock, policy CheckinPolicy) *Service {
	return NewService(f, fakeFacilities{f}, fakeSlots{f}, fakeBookings{f}, clk, policy)
}

func (f *fakeStore) addFacility(fc model.Facility) { f.facilities[fc.ID] = fc }

func (f *fakeStore) addSlot(s model.Slot) {
	cp := s
	f.slots[s.ID] = &cp
}

func (f *fakeStore) addUser(u model.BookingUser) { f.users[u.ID] = u }

// lock acquires the mutex unless the context already runs inside WithTx.
func (f *fakeStore) lock(ctx context.Context) func() {
	if ctx.Value(fakeTxKey{}) != nil {
		return func() {}
	}
	f.mu.Lock()
	return f.mu.Unlock
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(fakeTxKey{}) != nil {
		return fn(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	slotSnap := make(map[uint64]*model.Slot, len(f.slots))
	for id, s := range f.slots {
		cp := *s
		slotSnap[id] = &cp
	}
	bookSnap := make(map[uint64]*model.Booking, len(f.bookings))
	for id, b := range f.bookings {
		cp := *b
		bookSnap[id] = &cp
	}
	nextSnap := f.nextID

	err := fn(context.WithValue(ctx, fakeTxKey{}, true))
	if err != nil {
		f.slots = slotSnap
		f.bookings = bookSnap
		f.nextID = nextSnap
	}
	return err
}

func (f *fakeStore) detail(b *model.Booking, withUser bool) *model.BookingDetail {
	d := &model.BookingDetail{
		ID:          b.ID,
		Purpose:     b.Purpose,
		Status:      b.Status,
		QRToken:     b.QRToken,
		CreatedAt:   b.CreatedAt,
		CheckedInAt: b.CheckedInAt,
	}
	if fc, ok := f.facilities[b.FacilityID]; ok {
		d.Facility = model.BookingFacility{ID: fc.ID, Name: fc.Name, Category: fc.Category, Building: fc.Building}
	}
	if s, ok := f.slots[b.SlotID]; ok {
		d.Slot = model.BookingSlot{ID: s.ID, StartTime: s.StartsAt, EndTime: s.EndsAt}
	}
	if withUser {
		if u, ok := f.users[b.UserID]; ok {
			cp := u
			d.User = &cp
		}
	}
	return d
}

// ----- FacilityStore view -----

type fakeFacilities struct{ *fakeStore }

func (f fakeFacilities) List(ctx context.Context) ([]model.Facility, error) {
	defer f.lock(ctx)()
	out := make([]model.Facility, 0, len(f.facilities))
	for _, fc := range f.facilities {
		out = append(out, fc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeFacilities) GetByID(ctx context.Context, id uint64) (*model.Facility, error) {
	defer f.lock(ctx)()
	fc, ok := f.facilities[id]
	if !ok {
		return nil, ErrFacilityNotFound
	}
	cp := fc
	return &cp, nil
}

// ----- SlotStore view -----

type fakeSlots struct{ *fakeStore }

func (f fakeSlots) GetByID(ctx context.Context, id uint64) (*model.Slot, error) {
	defer f.lock(ctx)()
	s, ok := f.slots[id]
	if !ok {
		return nil, ErrSlotNotFound
	}
	cp := *s
	return &cp, nil
}

func (f fakeSlots) ListAvailable(ctx context.Context, facilityID uint64, day string) ([]model.Slot, error) {
	defer f.lock(ctx)()
	var out []model.Slot
	for _, s := range f.slots {
		if s.FacilityID != facilityID || s.Status != model.SlotAvailable {
			continue
		}
		if day != "" && s.StartsAt.Format("2006-01-02") != day {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (f fakeSlots) Reserve(ctx context.Context, id uint64) error {
	defer f.lock(ctx)()
	s, ok := f.slots[id]
	if !ok {
		return ErrSlotNotFound
	}
	if s.Status != model.SlotAvailable {
		return ErrSlotUnavailable
	}
	s.Status = model.SlotBooked
	return nil
}

func (f fakeSlots) Release(ctx context.Context, id uint64) error {
	defer f.lock(ctx)()
	s, ok := f.slots[id]
	if !ok {
		return ErrSlotNotFound
	}
	s.Status = model.SlotAvailable
	return nil
}

// ----- BookingStore view -----

type fakeBookings struct{ *fakeStore }

func (f fakeBookings) Create(ctx context.Context, b *model.Booking) error {
	defer f.lock(ctx)()
	f.nextID++
	b.ID = f.nextID
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f fakeBookings) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	defer f.lock(ctx)()
	b, ok := f.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f fakeBookings) GetByToken(ctx context.Context, token string) (*model.Booking, error) {
	defer f.lock(ctx)()
	for _, b := range f.bookings {
		if b.QRToken != nil && *b.QRToken == token {
			cp := *b
			return &cp, nil
		}
	}
	return nil, ErrTokenNotFound
}

func (f fakeBookings) GetDetailByID(ctx context.Context, id uint64) (*model.BookingDetail, error) {
	defer f.lock(ctx)()
	b, ok := f.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return f.detail(b, true), nil
}

func (f fakeBookings) ListByUser(ctx context.Context, userID uint64) ([]model.BookingDetail, error) {
	defer f.lock(ctx)()
	var out []model.BookingDetail
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *f.detail(b, false))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f fakeBookings) ListPending(ctx context.Context) ([]model.BookingDetail, error) {
	defer f.lock(ctx)()
	var out []model.BookingDetail
	for _, b := range f.bookings {
		if b.Status == model.StatusPending {
			out = append(out, *f.detail(b, true))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f fakeBookings) MarkApproved(ctx context.Context, id uint64, token string) (bool, error) {
	defer f.lock(ctx)()
	b, ok := f.bookings[id]
	if !ok || b.Status != model.StatusPending {
		return false, nil
	}
	b.Status = model.StatusApproved
	b.QRToken = &token
	return true, nil
}

func (f fakeBookings) MarkRejected(ctx context.Context, id uint64) (bool, error) {
	defer f.lock(ctx)()
	b, ok := f.bookings[id]
	if !ok || b.Status != model.StatusPending {
		return false, nil
	}
	b.Status = model.StatusRejected
	return true, nil
}

func (f fakeBookings) MarkCanceled(ctx context.Context, id uint64) (bool, error) {
	defer f.lock(ctx)()
	b, ok := f.bookings[id]
	if !ok || (b.Status != model.StatusPending && b.Status != model.StatusApproved) {
		return false, nil
	}
	b.Status = model.StatusCanceled
	return true, nil
}

func (f fakeBookings) MarkCheckedIn(ctx context.Context, id uint64, at time.Time) (bool, error) {
	defer f.lock(ctx)()
	b, ok := f.bookings[id]
	if !ok || b.Status != model.StatusApproved {
		return false, nil
	}
	b.Status = model.StatusCheckedIn
	t := at
	b.CheckedInAt = &t
	return true, nil
}

func (f fakeBookings) Summary(ctx context.Context) (*model.Summary, error) {
	defer f.lock(ctx)()
	sum := &model.Summary{}
	byFacility := make(map[uint64]uint64)
	for _, b := range f.bookings {
		sum.TotalBookings++
		if b.Status == model.StatusApproved || b.Status == model.StatusCheckedIn {
			sum.TotalApproved++
		}
		if b.Status == model.StatusCheckedIn {
			sum.TotalCheckedIn++
		}
		byFacility[b.FacilityID]++
	}
	ids := make([]uint64, 0, len(byFacility))
	for id := range byFacility {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		name := ""
		if fc, ok := f.facilities[id]; ok {
			name = fc.Name
		}
		sum.ByFacility = append(sum.ByFacility, model.FacilityCount{FacilityName: name, Count: byFacility[id]})
	}
	return sum, nil
}
