package equipmentsvc

import (
	"context"
	"errors"

	"github.com/yar64/diplom-equipment-rental-sub000/model"
	equipmentrepo "github.com/yar64/diplom-equipment-rental-sub000/repository/equipment"
)

var (
	ErrBadInput = errors.New("invalid payload")
	ErrNotFound = errors.New("equipment not found")
)

type Repo interface {
	Create(ctx context.Context, e *model.Equipment) error
	Update(ctx context.Context, e *model.Equipment) (bool, error)
	SetAvailability(ctx context.Context, id int64, available bool) (bool, error)
	List(ctx context.Context, category string) ([]model.Equipment, error)
	Detail(ctx context.Context, id int64) (*model.Equipment, error)
}

var _ Repo = equipmentrepo.Repo(nil)

type Service interface {
	Create(ctx context.Context, e *model.Equipment) (int64, error)
	Update(ctx context.Context, e *model.Equipment) error
	SetAvailability(ctx context.Context, id int64, available bool) error
	List(ctx context.Context, category string) ([]model.Equipment, error)
	Detail(ctx context.Context, id int64) (*model.Equipment, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, e *model.Equipment) (int64, error) {
	if e.Name == "" || e.Category == "" || e.PricePerDay <= 0 || e.Quantity < 0 {
		return 0, ErrBadInput
	}
	if err := s.r.Create(ctx, e); err != nil {
		return 0, err
	}
	return e.ID, nil
}

func (s *service) Update(ctx context.Context, e *model.Equipment) error {
	if e.ID <= 0 || e.Name == "" || e.Category == "" || e.PricePerDay <= 0 || e.Quantity < 0 {
		return ErrBadInput
	}
	ok, err := s.r.Update(ctx, e)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *service) SetAvailability(ctx context.Context, id int64, available bool) error {
	ok, err := s.r.SetAvailability(ctx, id, available)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *service) List(ctx context.Context, category string) ([]model.Equipment, error) {
	return s.r.List(ctx, category)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Equipment, error) {
	e, err := s.r.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	return e, nil
}
