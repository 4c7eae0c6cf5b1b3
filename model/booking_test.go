package model

import "testing"

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to BookingStatus }{
		{BookingPending, BookingConfirmed},
		{BookingPending, BookingCancelled},
		{BookingConfirmed, BookingActive},
		{BookingConfirmed, BookingCancelled},
		{BookingActive, BookingCompleted},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to BookingStatus }{
		{BookingPending, BookingActive},
		{BookingPending, BookingCompleted},
		{BookingActive, BookingCancelled},
		{BookingCompleted, BookingCancelled},
		{BookingCancelled, BookingPending},
		{BookingCompleted, BookingActive},
	}
	for _, tc := range denied {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("%s -> %s should be rejected", tc.from, tc.to)
		}
	}
}

func TestBlocks(t *testing.T) {
	for _, s := range []BookingStatus{BookingPending, BookingConfirmed, BookingActive} {
		if !s.Blocks() {
			t.Errorf("%s should block", s)
		}
	}
	for _, s := range []BookingStatus{BookingCompleted, BookingCancelled} {
		if s.Blocks() {
			t.Errorf("%s should not block", s)
		}
	}
}

func TestCancellable(t *testing.T) {
	if !BookingPending.Cancellable() || !BookingConfirmed.Cancellable() {
		t.Error("PENDING and CONFIRMED must be cancellable")
	}
	if BookingActive.Cancellable() || BookingCompleted.Cancellable() || BookingCancelled.Cancellable() {
		t.Error("ACTIVE, COMPLETED and CANCELLED must not be cancellable")
	}
}
