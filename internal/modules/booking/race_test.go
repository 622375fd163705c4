// README: Concurrency tests for the accept critical section.
package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"carpool/internal/types"
)

// TestConcurrentAcceptsNeverOverbook races many accepts for the same
// ride offer: exactly as many may succeed as capacity allows, and the
// remaining seats must never go negative.
func TestConcurrentAcceptsNeverOverbook(t *testing.T) {
	svc, rides := newTestService(t)
	rideID := seedOffer(t, rides, "r1", 3)

	const riders = 8
	bookingIDs := make([]types.ID, riders)
	for i := range bookingIDs {
		id, err := svc.Create(context.Background(), CreateCommand{
			RiderName:     fmt.Sprintf("rider-%d", i),
			RiderPhone:    fmt.Sprintf("555-02%02d", i),
			StartLabel:    "Downtown Station",
			EndLabel:      "Airport Terminal",
			NumPassengers: 1,
			RideOfferID:   &rideID,
		})
		if err != nil {
			t.Fatalf("create booking %d: %v", i, err)
		}
		bookingIDs[i] = id
	}

	start := make(chan struct{})
	errs := make(chan error, riders)
	var wg sync.WaitGroup
	for _, id := range bookingIDs {
		wg.Add(1)
		go func(id types.ID) {
			defer wg.Done()
			<-start
			errs <- svc.Accept(context.Background(), id)
		}(id)
	}
	close(start)
	wg.Wait()
	close(errs)

	success := 0
	for err := range errs {
		if err == nil {
			success++
			continue
		}
		if !errors.Is(err, ErrCapacityExceeded) {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if success != 3 {
		t.Fatalf("expected exactly 3 accepts to succeed, got %d", success)
	}
	if got := offerCapacity(t, rides, rideID); got != 0 {
		t.Fatalf("capacity = %d, want 0", got)
	}
}

// TestConcurrentDoubleAccept races two accepts of one booking; one
// wins, and the seats are taken once.
func TestConcurrentDoubleAccept(t *testing.T) {
	svc, rides := newTestService(t)
	rideID := seedOffer(t, rides, "r1", 5)
	bookingID := mustCreateBooking(t, svc, &rideID, 2)

	start := make(chan struct{})
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs <- svc.Accept(context.Background(), bookingID)
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	success := 0
	for err := range errs {
		if err == nil {
			success++
			continue
		}
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if success != 1 {
		t.Fatalf("expected exactly 1 success, got %d", success)
	}
	if got := offerCapacity(t, rides, rideID); got != 3 {
		t.Fatalf("capacity = %d, want 3", got)
	}
}

// TestConcurrentAcceptVsReject races accept against reject on the same
// pending booking; exactly one transition wins.
func TestConcurrentAcceptVsReject(t *testing.T) {
	svc, rides := newTestService(t)
	rideID := seedOffer(t, rides, "r1", 5)
	bookingID := mustCreateBooking(t, svc, &rideID, 2)

	var wg sync.WaitGroup
	errs := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		errs <- svc.Accept(context.Background(), bookingID)
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs <- svc.Reject(context.Background(), bookingID)
	}()
	wg.Wait()
	close(errs)

	success := 0
	for err := range errs {
		if err == nil {
			success++
			continue
		}
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if success != 1 {
		t.Fatalf("expected exactly 1 winning transition, got %d", success)
	}

	b, err := svc.Get(context.Background(), bookingID)
	if err != nil {
		t.Fatalf("get booking: %v", err)
	}
	switch b.Status {
	case StatusAccepted:
		if got := offerCapacity(t, rides, rideID); got != 3 {
			t.Fatalf("capacity = %d, want 3 after accept won", got)
		}
	case StatusRejected:
		if got := offerCapacity(t, rides, rideID); got != 5 {
			t.Fatalf("capacity = %d, want 5 after reject won", got)
		}
	default:
		t.Fatalf("unexpected final status %s", b.Status)
	}
}
