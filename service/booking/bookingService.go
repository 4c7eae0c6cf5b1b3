package bookingsvc

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yar64/diplom-equipment-rental-sub000/model"
	bookingrepo "github.com/yar64/diplom-equipment-rental-sub000/repository/booking"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound      ErrCode = "NOT_FOUND"
	ErrUnavailable   ErrCode = "UNAVAILABLE"
	ErrConflict      ErrCode = "CONFLICT"
	ErrInvalidRange  ErrCode = "INVALID_RANGE"
	ErrNotOwner      ErrCode = "NOT_OWNER"
	ErrBadTransition ErrCode = "BAD_TRANSITION"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Row = bookingrepo.Row

type Service interface {
	// Create validates the range against existing blocking bookings,
	// prices it, and persists a PENDING booking.
	Create(ctx context.Context, userID, equipmentID int64, startDate, endDate time.Time) (*model.Booking, error)

	// Available reports whether the range is free for the equipment.
	// The probe is day-granular: startDate == endDate asks about a
	// single day's occupancy, while Create requires at least one
	// elapsed day to have something to bill.
	Available(ctx context.Context, equipmentID int64, startDate, endDate time.Time) (bool, error)

	// Cancel is the user-facing transition to CANCELLED; paid bookings
	// flip to REFUNDED.
	Cancel(ctx context.Context, userID, bookingID int64) error

	// Transition is the staff path: confirm, activate, complete.
	Transition(ctx context.Context, bookingID int64, to model.BookingStatus) error

	// MarkPaid moves payment_status PENDING -> PAID.
	MarkPaid(ctx context.Context, bookingID int64) error

	MyBookings(ctx context.Context, userID int64) ([]Row, error)
	AllBookings(ctx context.Context) ([]Row, error)
}

type service struct {
	r bookingrepo.Repo
}

func New(r bookingrepo.Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, userID, equipmentID int64, startDate, endDate time.Time) (*model.Booking, error) {
	start := NormalizeDay(startDate)
	end := NormalizeDay(endDate)

	days := RentalDays(start, end)
	if days <= 0 {
		return nil, makeErr(ErrInvalidRange)
	}

	var out *model.Booking
	err := s.r.Serializable(ctx, func(q bookingrepo.Tx) error {
		eq, err := q.EquipmentByID(ctx, equipmentID)
		if err != nil {
			return err
		}
		if eq == nil {
			return makeErr(ErrNotFound)
		}
		if !eq.Rentable() {
			return makeErr(ErrUnavailable)
		}

		existing, err := q.BlockingBookings(ctx, equipmentID)
		if err != nil {
			return err
		}
		for _, b := range existing {
			if Overlaps(start, end, b.StartDate, b.EndDate) {
				return makeErr(ErrConflict)
			}
		}

		b := &model.Booking{
			EquipmentID:   equipmentID,
			UserID:        userID,
			StartDate:     start,
			EndDate:       end,
			TotalDays:     days,
			TotalPrice:    Quote(eq.PricePerDay, days),
			Status:        model.BookingPending,
			PaymentStatus: model.PaymentPending,
		}
		if err := q.InsertBooking(ctx, b); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, mapStoreConflict(err)
	}
	return out, nil
}

// mapStoreConflict translates the two ways a racing writer loses at
// commit (serialization failure, bookings exclusion constraint) into
// the same Conflict the pre-check would have produced.
func mapStoreConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.SerializationFailure, pgerrcode.ExclusionViolation:
			return makeErr(ErrConflict)
		}
	}
	return err
}

func (s *service) Available(ctx context.Context, equipmentID int64, startDate, endDate time.Time) (bool, error) {
	start := NormalizeDay(startDate)
	end := NormalizeDay(endDate)
	if end.Before(start) {
		return false, makeErr(ErrInvalidRange)
	}

	existing, err := s.r.BlockingBookings(ctx, equipmentID)
	if err != nil {
		return false, err
	}
	for _, b := range existing {
		if Overlaps(start, end, b.StartDate, b.EndDate) {
			return false, nil
		}
	}
	return true, nil
}

func (s *service) Cancel(ctx context.Context, userID, bookingID int64) error {
	return s.r.Serializable(ctx, func(q bookingrepo.Tx) error {
		b, err := q.BookingForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b == nil {
			return makeErr(ErrNotFound)
		}
		if b.UserID != userID {
			return makeErr(ErrNotOwner)
		}
		if !b.Status.Cancellable() {
			return makeErr(ErrBadTransition)
		}

		pay := b.PaymentStatus
		if pay == model.PaymentPaid {
			pay = model.PaymentRefunded
		}
		return q.SetStatus(ctx, bookingID, model.BookingCancelled, pay)
	})
}

func (s *service) Transition(ctx context.Context, bookingID int64, to model.BookingStatus) error {
	if !model.ValidBookingStatus(to) {
		return makeErr(ErrBadTransition)
	}
	return s.r.Serializable(ctx, func(q bookingrepo.Tx) error {
		b, err := q.BookingForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b == nil {
			return makeErr(ErrNotFound)
		}
		if !model.CanTransition(b.Status, to) {
			return makeErr(ErrBadTransition)
		}
		return q.SetStatus(ctx, bookingID, to, b.PaymentStatus)
	})
}

func (s *service) MarkPaid(ctx context.Context, bookingID int64) error {
	return s.r.Serializable(ctx, func(q bookingrepo.Tx) error {
		b, err := q.BookingForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b == nil {
			return makeErr(ErrNotFound)
		}
		if b.PaymentStatus != model.PaymentPending || !b.Status.Blocks() {
			return makeErr(ErrBadTransition)
		}
		return q.SetStatus(ctx, bookingID, b.Status, model.PaymentPaid)
	})
}

func (s *service) MyBookings(ctx context.Context, userID int64) ([]Row, error) {
	return s.r.ListByUser(ctx, userID)
}

func (s *service) AllBookings(ctx context.Context) ([]Row, error) {
	return s.r.ListAll(ctx)
}
