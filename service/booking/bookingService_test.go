// service/booking/booking_service_test.go
package bookingsvc

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/yar64/diplom-equipment-rental-sub000/model"
	bookingrepo "github.com/yar64/diplom-equipment-rental-sub000/repository/booking"
)

// txMock is an in-memory stand-in for one transaction's view of the
// store; repoMock runs the closure directly against it.
type txMock struct {
	equipment map[int64]*model.Equipment
	bookings  []*model.Booking
	nextID    int64
}

func (m *txMock) EquipmentByID(_ context.Context, id int64) (*model.Equipment, error) {
	return m.equipment[id], nil
}

func (m *txMock) BlockingBookings(_ context.Context, equipmentID int64) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range m.bookings {
		if b.EquipmentID == equipmentID && b.Status.Blocks() {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *txMock) InsertBooking(_ context.Context, b *model.Booking) error {
	m.nextID++
	b.ID = m.nextID
	b.CreatedAt = time.Now().UTC()
	m.bookings = append(m.bookings, b)
	return nil
}

func (m *txMock) BookingForUpdate(_ context.Context, id int64) (*model.Booking, error) {
	for _, b := range m.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (m *txMock) SetStatus(_ context.Context, id int64, st model.BookingStatus, pay model.PaymentStatus) error {
	for _, b := range m.bookings {
		if b.ID == id {
			b.Status = st
			b.PaymentStatus = pay
		}
	}
	return nil
}

type repoMock struct {
	tx     *txMock
	txErr  error
	listFn func(ctx context.Context, userID int64) ([]bookingrepo.Row, error)
}

func (m *repoMock) Serializable(_ context.Context, fn func(q bookingrepo.Tx) error) error {
	if m.txErr != nil {
		return m.txErr
	}
	return fn(m.tx)
}

func (m *repoMock) BlockingBookings(ctx context.Context, equipmentID int64) ([]model.Booking, error) {
	return m.tx.BlockingBookings(ctx, equipmentID)
}

func (m *repoMock) ListByUser(ctx context.Context, userID int64) ([]bookingrepo.Row, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *repoMock) ListAll(context.Context) ([]bookingrepo.Row, error) { return nil, nil }

func day(d int) time.Time {
	return time.Date(2024, time.April, d, 0, 0, 0, 0, time.UTC)
}

func newMock() *repoMock {
	return &repoMock{tx: &txMock{
		equipment: map[int64]*model.Equipment{
			1: {ID: 1, Name: "Excavator", PricePerDay: 5000, Quantity: 2, Available: true},
			2: {ID: 2, Name: "Crane", PricePerDay: 9000, Quantity: 0, Available: true},
			3: {ID: 3, Name: "Drill", PricePerDay: 300, Quantity: 5, Available: false},
		},
	}}
}

func TestCreate_PricingDeterministic(t *testing.T) {
	svc := New(newMock())

	b, err := svc.Create(context.Background(), 7, 1, day(10), day(13))
	require.NoError(t, err)
	require.Equal(t, int64(3), b.TotalDays)
	require.Equal(t, float64(15000), b.TotalPrice)
	require.Equal(t, model.BookingPending, b.Status)
	require.Equal(t, model.PaymentPending, b.PaymentStatus)
	require.Equal(t, int64(7), b.UserID)
}

func TestCreate_TimeOfDayIgnored(t *testing.T) {
	svc := New(newMock())

	start := time.Date(2024, time.April, 10, 15, 30, 0, 0, time.UTC)
	end := time.Date(2024, time.April, 13, 9, 0, 0, 0, time.UTC)
	b, err := svc.Create(context.Background(), 7, 1, start, end)
	require.NoError(t, err)
	require.Equal(t, int64(3), b.TotalDays)
	require.Equal(t, day(10), b.StartDate)
	require.Equal(t, day(13), b.EndDate)
}

func TestCreate_OverlapRejected(t *testing.T) {
	m := newMock()
	svc := New(m)
	ctx := context.Background()

	_, err := svc.Create(ctx, 7, 1, day(10), day(12))
	require.NoError(t, err)

	_, err = svc.Create(ctx, 8, 1, day(11), day(13))
	require.Error(t, err)
	require.Equal(t, ErrConflict, Code(err))
	require.Len(t, m.tx.bookings, 1)
}

func TestCreate_BoundaryDayConflicts(t *testing.T) {
	svc := New(newMock())
	ctx := context.Background()

	_, err := svc.Create(ctx, 7, 1, day(10), day(12))
	require.NoError(t, err)

	// the item is out for the whole of the 12th
	_, err = svc.Create(ctx, 8, 1, day(12), day(14))
	require.Error(t, err)
	require.Equal(t, ErrConflict, Code(err))
}

func TestCreate_DisjointRangesSucceed(t *testing.T) {
	svc := New(newMock())
	ctx := context.Background()

	_, err := svc.Create(ctx, 7, 1, day(10), day(12))
	require.NoError(t, err)

	b, err := svc.Create(ctx, 8, 1, day(13), day(15))
	require.NoError(t, err)
	require.Equal(t, int64(2), b.TotalDays)
}

func TestCreate_CancelledBookingDoesNotBlock(t *testing.T) {
	m := newMock()
	svc := New(m)
	ctx := context.Background()

	b, err := svc.Create(ctx, 7, 1, day(10), day(12))
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, 7, b.ID))

	_, err = svc.Create(ctx, 8, 1, day(11), day(13))
	require.NoError(t, err)
}

func TestCreate_ZeroQuantity(t *testing.T) {
	svc := New(newMock())

	_, err := svc.Create(context.Background(), 7, 2, day(10), day(12))
	require.Error(t, err)
	require.Equal(t, ErrUnavailable, Code(err))
}

func TestCreate_SwitchedOff(t *testing.T) {
	svc := New(newMock())

	_, err := svc.Create(context.Background(), 7, 3, day(10), day(12))
	require.Error(t, err)
	require.Equal(t, ErrUnavailable, Code(err))
}

func TestCreate_UnknownEquipment(t *testing.T) {
	svc := New(newMock())

	_, err := svc.Create(context.Background(), 7, 999, day(10), day(12))
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestCreate_InvalidRange(t *testing.T) {
	svc := New(newMock())
	ctx := context.Background()

	_, err := svc.Create(ctx, 7, 1, day(13), day(10))
	require.Equal(t, ErrInvalidRange, Code(err))

	// same calendar day is a zero-day rental
	_, err = svc.Create(ctx, 7, 1, day(10), day(10))
	require.Equal(t, ErrInvalidRange, Code(err))
}

func TestCreate_StoreConflictMapped(t *testing.T) {
	// a racing writer loses at commit; surface it as the same conflict
	for _, code := range []string{pgerrcode.SerializationFailure, pgerrcode.ExclusionViolation} {
		m := newMock()
		m.txErr = &pgconn.PgError{Code: code}
		svc := New(m)

		_, err := svc.Create(context.Background(), 7, 1, day(10), day(12))
		require.Error(t, err)
		require.Equal(t, ErrConflict, Code(err))
	}
}

func TestCancel_FromPending(t *testing.T) {
	m := newMock()
	svc := New(m)
	ctx := context.Background()

	b, err := svc.Create(ctx, 7, 1, day(10), day(12))
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, 7, b.ID))
	require.Equal(t, model.BookingCancelled, m.tx.bookings[0].Status)
	require.Equal(t, model.PaymentPending, m.tx.bookings[0].PaymentStatus)
}

func TestCancel_PaidBookingRefunded(t *testing.T) {
	m := newMock()
	svc := New(m)
	ctx := context.Background()

	b, err := svc.Create(ctx, 7, 1, day(10), day(12))
	require.NoError(t, err)
	require.NoError(t, svc.MarkPaid(ctx, b.ID))

	require.NoError(t, svc.Cancel(ctx, 7, b.ID))
	require.Equal(t, model.PaymentRefunded, m.tx.bookings[0].PaymentStatus)
}

func TestCancel_CompletedRejected(t *testing.T) {
	m := newMock()
	svc := New(m)
	ctx := context.Background()

	b, err := svc.Create(ctx, 7, 1, day(10), day(12))
	require.NoError(t, err)
	require.NoError(t, svc.Transition(ctx, b.ID, model.BookingConfirmed))
	require.NoError(t, svc.Transition(ctx, b.ID, model.BookingActive))
	require.NoError(t, svc.Transition(ctx, b.ID, model.BookingCompleted))

	err = svc.Cancel(ctx, 7, b.ID)
	require.Error(t, err)
	require.Equal(t, ErrBadTransition, Code(err))
}

func TestCancel_NotOwner(t *testing.T) {
	m := newMock()
	svc := New(m)
	ctx := context.Background()

	b, err := svc.Create(ctx, 7, 1, day(10), day(12))
	require.NoError(t, err)

	err = svc.Cancel(ctx, 8, b.ID)
	require.Error(t, err)
	require.Equal(t, ErrNotOwner, Code(err))
}

func TestTransition_InvalidPaths(t *testing.T) {
	m := newMock()
	svc := New(m)
	ctx := context.Background()

	b, err := svc.Create(ctx, 7, 1, day(10), day(12))
	require.NoError(t, err)

	// PENDING cannot jump straight to COMPLETED or ACTIVE
	require.Equal(t, ErrBadTransition, Code(svc.Transition(ctx, b.ID, model.BookingCompleted)))
	require.Equal(t, ErrBadTransition, Code(svc.Transition(ctx, b.ID, model.BookingActive)))
	require.Equal(t, ErrBadTransition, Code(svc.Transition(ctx, b.ID, model.BookingStatus("SHIPPED"))))

	require.NoError(t, svc.Cancel(ctx, 7, b.ID))
	require.Equal(t, ErrBadTransition, Code(svc.Transition(ctx, b.ID, model.BookingConfirmed)))
}

func TestTransition_NotFound(t *testing.T) {
	svc := New(newMock())

	err := svc.Transition(context.Background(), 404, model.BookingConfirmed)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestMarkPaid_Twice(t *testing.T) {
	m := newMock()
	svc := New(m)
	ctx := context.Background()

	b, err := svc.Create(ctx, 7, 1, day(10), day(12))
	require.NoError(t, err)

	require.NoError(t, svc.MarkPaid(ctx, b.ID))
	require.Equal(t, model.PaymentPaid, m.tx.bookings[0].PaymentStatus)

	err = svc.MarkPaid(ctx, b.ID)
	require.Equal(t, ErrBadTransition, Code(err))
}

func TestAvailable(t *testing.T) {
	m := newMock()
	svc := New(m)
	ctx := context.Background()

	_, err := svc.Create(ctx, 7, 1, day(10), day(12))
	require.NoError(t, err)

	free, err := svc.Available(ctx, 1, day(12), day(14))
	require.NoError(t, err)
	require.False(t, free)

	free, err = svc.Available(ctx, 1, day(13), day(15))
	require.NoError(t, err)
	require.True(t, free)

	_, err = svc.Available(ctx, 1, day(14), day(13))
	require.Equal(t, ErrInvalidRange, Code(err))
}

func TestAvailable_SingleDayProbe(t *testing.T) {
	m := newMock()
	svc := New(m)
	ctx := context.Background()

	_, err := svc.Create(ctx, 7, 1, day(10), day(12))
	require.NoError(t, err)

	// a zero-length range is a valid occupancy question even though it
	// would be rejected as a booking
	free, err := svc.Available(ctx, 1, day(11), day(11))
	require.NoError(t, err)
	require.False(t, free)

	free, err = svc.Available(ctx, 1, day(13), day(13))
	require.NoError(t, err)
	require.True(t, free)
}
