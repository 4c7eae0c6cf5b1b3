package reviewrepo

import (
	"context"

	"github.com/yar64/diplom-equipment-rental-sub000/model"
	"github.com/yar64/diplom-equipment-rental-sub000/util/database"
)

type Repo interface {
	Create(ctx context.Context, rv *model.Review) error
	ListByEquipment(ctx context.Context, equipmentID int64) ([]model.Review, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, rv *model.Review) error {
	const q = `
	INSERT INTO reviews (equipment_id, user_id, rating, comment)
	VALUES ($1,$2,$3,$4)
	RETURNING id, created_at`
	return r.db.Pool.QueryRow(ctx, q,
		rv.EquipmentID, rv.UserID, rv.Rating, rv.Comment,
	).Scan(&rv.ID, &rv.CreatedAt)
}

func (r *repo) ListByEquipment(ctx context.Context, equipmentID int64) ([]model.Review, error) {
	const q = `
	SELECT r.id, r.equipment_id, r.user_id, u.username, r.rating, r.comment, r.created_at
	FROM reviews r
	JOIN users u ON u.id = r.user_id
	WHERE r.equipment_id = $1
	ORDER BY r.created_at DESC`
	rows, err := r.db.Pool.Query(ctx, q, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.EquipmentID, &rv.UserID, &rv.Username, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
