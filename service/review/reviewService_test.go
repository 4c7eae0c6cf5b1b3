package reviewsvc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yar64/diplom-equipment-rental-sub000/model"
	reviewsvc "github.com/yar64/diplom-equipment-rental-sub000/service/review"
)

type repoMock struct {
	createFn func(ctx context.Context, rv *model.Review) error
	listFn   func(ctx context.Context, equipmentID int64) ([]model.Review, error)
	deleteFn func(ctx context.Context, id int64) (bool, error)
}

func (m *repoMock) Create(ctx context.Context, rv *model.Review) error { return m.createFn(ctx, rv) }
func (m *repoMock) ListByEquipment(ctx context.Context, equipmentID int64) ([]model.Review, error) {
	return m.listFn(ctx, equipmentID)
}
func (m *repoMock) Delete(ctx context.Context, id int64) (bool, error) { return m.deleteFn(ctx, id) }

func TestCreate_RatingBounds(t *testing.T) {
	s := reviewsvc.New(&repoMock{})
	ctx := context.Background()

	for _, rating := range []int{0, -1, 6} {
		if _, err := s.Create(ctx, 1, 1, rating, ""); !errors.Is(err, reviewsvc.ErrBadInput) {
			t.Fatalf("rating %d: got %v; want ErrBadInput", rating, err)
		}
	}
}

func TestCreate_TrimsComment(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, rv *model.Review) error {
			rv.ID = 5
			return nil
		},
	}
	s := reviewsvc.New(m)

	rv, err := s.Create(context.Background(), 1, 2, 4, "  solid machine  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rv.Comment != "solid machine" || rv.ID != 5 {
		t.Fatalf("got %+v", rv)
	}
}

func TestCreate_DuplicateMapped(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, rv *model.Review) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
		},
	}
	s := reviewsvc.New(m)

	if _, err := s.Create(context.Background(), 1, 2, 4, ""); !errors.Is(err, reviewsvc.ErrAlreadyReviewed) {
		t.Fatalf("got %v; want ErrAlreadyReviewed", err)
	}
}

func TestCreate_MissingEquipmentMapped(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, rv *model.Review) error {
			return &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
		},
	}
	s := reviewsvc.New(m)

	if _, err := s.Create(context.Background(), 1, 999, 4, ""); !errors.Is(err, reviewsvc.ErrEquipmentGone) {
		t.Fatalf("got %v; want ErrEquipmentGone", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	m := &repoMock{
		deleteFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}
	s := reviewsvc.New(m)

	if err := s.Delete(context.Background(), 9); !errors.Is(err, reviewsvc.ErrNotFound) {
		t.Fatalf("got %v; want ErrNotFound", err)
	}
}
