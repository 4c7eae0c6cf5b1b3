package reviewsvc

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yar64/diplom-equipment-rental-sub000/model"
	reviewrepo "github.com/yar64/diplom-equipment-rental-sub000/repository/review"
)

var (
	ErrBadInput        = errors.New("invalid payload")
	ErrNotFound        = errors.New("review not found")
	ErrEquipmentGone   = errors.New("equipment not found")
	ErrAlreadyReviewed = errors.New("already reviewed")
)

type Service interface {
	Create(ctx context.Context, userID, equipmentID int64, rating int, comment string) (*model.Review, error)
	ListByEquipment(ctx context.Context, equipmentID int64) ([]model.Review, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r reviewrepo.Repo }

func New(r reviewrepo.Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, userID, equipmentID int64, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrBadInput
	}
	rv := &model.Review{
		EquipmentID: equipmentID,
		UserID:      userID,
		Rating:      rating,
		Comment:     strings.TrimSpace(comment),
	}
	if err := s.r.Create(ctx, rv); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return nil, ErrAlreadyReviewed
			case pgerrcode.ForeignKeyViolation:
				return nil, ErrEquipmentGone
			}
		}
		return nil, err
	}
	return rv, nil
}

func (s *service) ListByEquipment(ctx context.Context, equipmentID int64) ([]model.Review, error) {
	return s.r.ListByEquipment(ctx, equipmentID)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	ok, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
