// model/booking.go
package model

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingActive    BookingStatus = "ACTIVE"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// BlockingStatuses are the statuses that reserve the equipment: any
// booking in one of them must be considered when checking date
// conflicts. Every overlap query and availability check reads this set;
// do not restate it at call sites.
var BlockingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingActive}

var transitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingActive, BookingCancelled},
	BookingActive:    {BookingCompleted},
}

// CanTransition reports whether a booking may move from one status to
// another. COMPLETED and CANCELLED are terminal.
func CanTransition(from, to BookingStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s BookingStatus) Blocks() bool {
	for _, b := range BlockingStatuses {
		if s == b {
			return true
		}
	}
	return false
}

// Cancellable reports whether a user may still cancel; once the rental
// is handed out (ACTIVE) cancellation is a staff concern.
func (s BookingStatus) Cancellable() bool {
	return s == BookingPending || s == BookingConfirmed
}

func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingActive, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID            int64         `json:"id"`
	EquipmentID   int64         `json:"equipment_id"`
	UserID        int64         `json:"user_id"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       time.Time     `json:"end_date"`
	TotalDays     int64         `json:"total_days"`
	TotalPrice    float64       `json:"total_price"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
}
