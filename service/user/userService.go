package usersvc

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yar64/diplom-equipment-rental-sub000/model"
	userrepo "github.com/yar64/diplom-equipment-rental-sub000/repository/user"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrEquipmentGone = errors.New("equipment not found")
	ErrNotFavorite   = errors.New("not a favorite")
)

type Service interface {
	Profile(ctx context.Context, userID int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)

	AddFavorite(ctx context.Context, userID, equipmentID int64) error
	RemoveFavorite(ctx context.Context, userID, equipmentID int64) error
	Favorites(ctx context.Context, userID int64) ([]model.Equipment, error)
}

type service struct{ r userrepo.Repo }

func New(r userrepo.Repo) Service { return &service{r: r} }

func (s *service) Profile(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.r.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *service) List(ctx context.Context) ([]model.User, error) {
	return s.r.List(ctx)
}

func (s *service) AddFavorite(ctx context.Context, userID, equipmentID int64) error {
	err := s.r.AddFavorite(ctx, userID, equipmentID)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return ErrEquipmentGone
	}
	return err
}

func (s *service) RemoveFavorite(ctx context.Context, userID, equipmentID int64) error {
	ok, err := s.r.RemoveFavorite(ctx, userID, equipmentID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFavorite
	}
	return nil
}

func (s *service) Favorites(ctx context.Context, userID int64) ([]model.Equipment, error) {
	return s.r.ListFavorites(ctx, userID)
}
