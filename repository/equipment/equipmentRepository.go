package equipmentrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/yar64/diplom-equipment-rental-sub000/model"
	"github.com/yar64/diplom-equipment-rental-sub000/util/database"
)

type Repo interface {
	Create(ctx context.Context, e *model.Equipment) error
	Update(ctx context.Context, e *model.Equipment) (bool, error)
	SetAvailability(ctx context.Context, id int64, available bool) (bool, error)
	List(ctx context.Context, category string) ([]model.Equipment, error)
	Detail(ctx context.Context, id int64) (*model.Equipment, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const cols = `id, name, category, description, image_url, price_per_day, quantity, available, created_at`

func (r *repo) Create(ctx context.Context, e *model.Equipment) error {
	const q = `
	INSERT INTO equipment (name, category, description, image_url, price_per_day, quantity, available)
	VALUES ($1,$2,$3,$4,$5,$6,$7)
	RETURNING id, created_at`
	return r.db.Pool.QueryRow(ctx, q,
		e.Name, e.Category, e.Description, e.ImageURL, e.PricePerDay, e.Quantity, e.Available,
	).Scan(&e.ID, &e.CreatedAt)
}

func (r *repo) Update(ctx context.Context, e *model.Equipment) (bool, error) {
	const q = `
	UPDATE equipment
	SET name = $2,
	    category = $3,
	    description = $4,
	    image_url = $5,
	    price_per_day = $6,
	    quantity = $7,
	    available = $8
	WHERE id = $1`
	tag, err := r.db.Pool.Exec(ctx, q,
		e.ID, e.Name, e.Category, e.Description, e.ImageURL, e.PricePerDay, e.Quantity, e.Available,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repo) SetAvailability(ctx context.Context, id int64, available bool) (bool, error) {
	const q = `
	UPDATE equipment
	SET available = $2
	WHERE id = $1`
	tag, err := r.db.Pool.Exec(ctx, q, id, available)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repo) List(ctx context.Context, category string) ([]model.Equipment, error) {
	q := `
	SELECT ` + cols + `
	FROM equipment
	ORDER BY id DESC`
	args := []any{}
	if category != "" {
		q = `
	SELECT ` + cols + `
	FROM equipment
	WHERE category = $1
	ORDER BY id DESC`
		args = append(args, category)
	}
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Equipment
	for rows.Next() {
		var e model.Equipment
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Category, &e.Description, &e.ImageURL,
			&e.PricePerDay, &e.Quantity, &e.Available, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Equipment, error) {
	const q = `
	SELECT ` + cols + `
	FROM equipment
	WHERE id = $1`
	e := &model.Equipment{}
	err := r.db.Pool.QueryRow(ctx, q, id).Scan(
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
