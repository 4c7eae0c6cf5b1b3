package userrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/yar64/diplom-equipment-rental-sub000/model"
	"github.com/yar64/diplom-equipment-rental-sub000/util/database"
)

type Repo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)

	AddFavorite(ctx context.Context, userID, equipmentID int64) error
	RemoveFavorite(ctx context.Context, userID, equipmentID int64) (bool, error)
	ListFavorites(ctx context.Context, userID int64) ([]model.Equipment, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	u := &model.User{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, username, password_hash, role, created_at
		FROM users
		WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, first_name, last_name, email, username, password_hash, role, created_at
		FROM users
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// AddFavorite is idempotent; favoriting twice is not an error.
func (r *repo) AddFavorite(ctx context.Context, userID, equipmentID int64) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO favorites (user_id, equipment_id)
		VALUES ($1,$2)
		ON CONFLICT DO NOTHING`,
		userID, equipmentID)
	return err
}

func (r *repo) RemoveFavorite(ctx context.Context, userID, equipmentID int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		DELETE FROM favorites
		WHERE user_id = $1 AND equipment_id = $2`,
		userID, equipmentID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repo) ListFavorites(ctx context.Context, userID int64) ([]model.Equipment, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT e.id, e.name, e.category, e.description, e.image_url,
		       e.price_per_day, e.quantity, e.available, e.created_at
		FROM favorites f
		JOIN equipment e ON e.id = f.equipment_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`,
		userID)
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
