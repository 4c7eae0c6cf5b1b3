// repository/booking/repo.go
package bookingrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yar64/diplom-equipment-rental-sub000/model"
	"github.com/yar64/diplom-equipment-rental-sub000/util/database"
)

// Row is the listing shape for booking history and the admin overview.
type Row struct {
	BookingID     int64               `json:"booking_id"`
	EquipmentID   int64               `json:"equipment_id"`
	EquipmentName string              `json:"equipment_name"`
	UserID        int64               `json:"user_id"`
	StartDate     time.Time           `json:"start_date"`
	EndDate       time.Time           `json:"end_date"`
	TotalDays     int64               `json:"total_days"`
	TotalPrice    float64             `json:"total_price"`
	Status        model.BookingStatus `json:"status"`
	PaymentStatus model.PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time           `json:"created_at"`
}

// Tx is the slice of the store visible inside one booking transaction.
type Tx interface {
	EquipmentByID(ctx context.Context, id int64) (*model.Equipment, error)
	BlockingBookings(ctx context.Context, equipmentID int64) ([]model.Booking, error)
	InsertBooking(ctx context.Context, b *model.Booking) error
	BookingForUpdate(ctx context.Context, id int64) (*model.Booking, error)
	SetStatus(ctx context.Context, id int64, st model.BookingStatus, pay model.PaymentStatus) error
}

type Repo interface {
	// Serializable runs fn inside a SERIALIZABLE transaction. The
	// overlap check and the insert must share one transaction or two
	// concurrent requests can both pass the check; the schema's
	// exclusion constraint backs this up at commit time.
	Serializable(ctx context.Context, fn func(q Tx) error) error

	BlockingBookings(ctx context.Context, equipmentID int64) ([]model.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]Row, error)
	ListAll(ctx context.Context) ([]Row, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }

func (r *repo) Serializable(ctx context.Context, fn func(q Tx) error) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()
	if err = fn(&queries{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func blockingStrings() []string {
	out := make([]string, 0, len(model.BlockingStatuses))
	for _, s := range model.BlockingStatuses {
		out = append(out, string(s))
	}
	return out
}

const selectBooking = `
	SELECT id, equipment_id, user_id, start_date, end_date,
	       total_days, total_price, status, payment_status, created_at
	FROM bookings`

func scanBookings(rows pgx.Rows) ([]model.Booking, error) {
	defer rows.Close()
	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(
			&b.ID, &b.EquipmentID, &b.UserID, &b.StartDate, &b.EndDate,
			&b.TotalDays, &b.TotalPrice, &b.Status, &b.PaymentStatus, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) BlockingBookings(ctx context.Context, equipmentID int64) ([]model.Booking, error) {
	const q = selectBooking + `
	WHERE equipment_id = $1
	AND status = ANY($2)`
	rows, err := r.db.Pool.Query(ctx, q, equipmentID, blockingStrings())
	if err != nil {
		return nil, err
	}
	return scanBookings(rows)
}

const selectRow = `
	SELECT b.id, b.equipment_id, e.name, b.user_id, b.start_date, b.end_date,
	       b.total_days, b.total_price, b.status, b.payment_status, b.created_at
	FROM bookings b
	JOIN equipment e ON e.id = b.equipment_id`

func scanRows(rows pgx.Rows) ([]Row, error) {
	defer rows.Close()
	var out []Row
	for rows.Next() {
		var h Row
		if err := rows.Scan(
			&h.BookingID, &h.EquipmentID, &h.EquipmentName, &h.UserID,
			&h.StartDate, &h.EndDate, &h.TotalDays, &h.TotalPrice,
			&h.Status, &h.PaymentStatus, &h.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]Row, error) {
	const q = selectRow + `
	WHERE b.user_id = $1
	ORDER BY b.created_at DESC, b.id DESC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

func (r *repo) ListAll(ctx context.Context) ([]Row, error) {
	const q = selectRow + `
	ORDER BY b.created_at DESC, b.id DESC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

// queries runs against one open transaction.
type queries struct{ tx pgx.Tx }

func (q *queries) EquipmentByID(ctx context.Context, id int64) (*model.Equipment, error) {
	const s = `
	SELECT id, name, category, description, image_url,
	       price_per_day, quantity, available, created_at
	FROM equipment
	WHERE id = $1`
	e := &model.Equipment{}
	err := q.tx.QueryRow(ctx, s, id).Scan(
		&e.ID, &e.Name, &e.Category, &e.Description, &e.ImageURL,
		&e.PricePerDay, &e.Quantity, &e.Available, &e.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (q *queries) BlockingBookings(ctx context.Context, equipmentID int64) ([]model.Booking, error) {
	const s = selectBooking + `
	WHERE equipment_id = $1
	AND status = ANY($2)`
	rows, err := q.tx.Query(ctx, s, equipmentID, blockingStrings())
	if err != nil {
		return nil, err
	}
	return scanBookings(rows)
}

func (q *queries) InsertBooking(ctx context.Context, b *model.Booking) error {
	const s = `
	INSERT INTO bookings (equipment_id, user_id, start_date, end_date,
	                      total_days, total_price, status, payment_status)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	RETURNING id, created_at`
	return q.tx.QueryRow(ctx, s,
		b.EquipmentID, b.UserID, b.StartDate, b.EndDate,
		b.TotalDays, b.TotalPrice, string(b.Status), string(b.PaymentStatus),
	).Scan(&b.ID, &b.CreatedAt)
}

func (q *queries) BookingForUpdate(ctx context.Context, id int64) (*model.Booking, error) {
	const s = selectBooking + `
	WHERE id = $1
	FOR UPDATE`
	b := &model.Booking{}
	err := q.tx.QueryRow(ctx, s, id).Scan(
		&b.ID, &b.EquipmentID, &b.UserID, &b.StartDate, &b.EndDate,
		&b.TotalDays, &b.TotalPrice, &b.Status, &b.PaymentStatus, &b.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (q *queries) SetStatus(ctx context.Context, id int64, st model.BookingStatus, pay model.PaymentStatus) error {
	const s = `
	UPDATE bookings
	SET status = $2,
	    payment_status = $3
	WHERE id = $1`
	_, err := q.tx.Exec(ctx, s, id, string(st), string(pay))
	return err
}
