package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/campushub/facility-booking/internal/clock"
	"github.com/campushub/facility-booking/internal/model"
)

func TestApprove(t *testing.T) {
	f := newFakeStore()
	seedCatalog(f)
	svc := newTestService(f, clock.NewFixed(testNow), CheckinPolicy{})
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, 7, 1, 10, "")
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	detail, err := svc.Approve(ctx, b.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if detail.Status != model.StatusApproved {
		t.Fatalf("status = %s, want APPROVED", detail.Status)
	}
	if detail.QRToken == nil || len(*detail.QRToken) != 64 {
		t.Fatalf("approval must mint a 64-char token, got %v", detail.QRToken)
	}
	if detail.User == nil || detail.User.Email != "dana@example.com" {
		t.Fatalf("detail must embed the requester, got %+v", detail.User)
	}

	// Approving a non-PENDING booking is a transition error.
	if _, err := svc.Approve(ctx, b.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("re-approve: got %v, want ErrInvalidTransition", err)
	}
}

func TestApproveUnknownBooking(t *testing.T) {
	f := newFakeStore()
	seedCatalog(f)
	svc := newTestService(f, clock.NewFixed(testNow), CheckinPolicy{})

	if _, err := svc.Approve(context.Background(), 42); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("got %v, want ErrBookingNotFound", err)
	}
}

func TestApproveConcurrentSingleWinner(t *testing.T) {
	f := newFakeStore()
	seedCatalog(f)
	svc := newTestService(f, clock.NewFixed(testNow), CheckinPolicy{})
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, 7, 1, 10, "")
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	const n = 8
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Approve(ctx, b.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrInvalidTransition):
		default:
			t.Fatalf("unexpected error under contention: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("got %d approval winners, want exactly 1", wins)
	}
}

func TestReject(t *testing.T) {
	f := newFakeStore()
	seedCatalog(f)
	svc := newTestService(f, clock.NewFixed(testNow), CheckinPolicy{})
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, 7, 1, 10, "")
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	detail, err := svc.Reject(ctx, b.ID)
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if detail.Status != model.StatusRejected {
		t.Fatalf("status = %s, want REJECTED", detail.Status)
	}
	if detail.QRToken != nil {
		t.Fatalf("rejection must not mint a token")
	}
	if f.slots[10].Status != model.SlotAvailable {
		t.Fatalf("slot not released on rejection")
	}

	// REJECTED is terminal.
	if _, err := svc.Approve(ctx, b.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("approve after reject: got %v, want ErrInvalidTransition", err)
	}
	if _, err := svc.Reject(ctx, b.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("re-reject: got %v, want ErrInvalidTransition", err)
	}
}

func TestListPendingOldestFirst(t *testing.T) {
	f := newFakeStore()
	seedCatalog(f)
	f.addUser(model.BookingUser{ID: 8, Name: "Ravi", Email: "ravi@example.com"})
	ctx := context.Background()

	first := newTestService(f, clock.NewFixed(testNow), CheckinPolicy{})
	b1, err := first.CreateBooking(ctx, 7, 1, 10, "")
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	second := newTestService(f, clock.NewFixed(testNow.Add(time.Minute)), CheckinPolicy{})
	b2, err := second.CreateBooking(ctx, 8, 1, 11, "")
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	items, err := first.ListPending(ctx)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d pending, want 2", len(items))
	}
	if items[0].ID != b1.ID || items[1].ID != b2.ID {
		t.Fatalf("pending queue not oldest first: %d then %d", items[0].ID, items[1].ID)
	}
	if items[0].User == nil || items[1].User == nil {
		t.Fatalf("pending queue must embed requesters")
	}

	// The queue shrinks as staff work through it.
	if _, err := first.Approve(ctx, b1.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	items, err = first.ListPending(ctx)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(items) != 1 || items[0].ID != b2.ID {
		t.Fatalf("pending queue after approval wrong: %+v", items)
	}
}

func TestCheckinTokensUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := newCheckinToken()
		if err != nil {
			t.Fatalf("newCheckinToken: %v", err)
		}
		if len(tok) != 64 {
			t.Fatalf("token length = %d, want 64", len(tok))
		}
		if seen[tok] {
			t.Fatalf("duplicate token after %d draws", i)
		}
		seen[tok] = true
	}
}
