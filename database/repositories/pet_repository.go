package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/petplan/backend/database/models"
)

type PetRepository interface {
	Create(ctx context.Context, pet *models.Pet) error
	GetByUserID(ctx context.Context, userID string) (*models.Pet, error)
	Update(ctx context.Context, pet *models.Pet) error
}

type petRepository struct {
	db *bun.DB
}

func NewPetRepository(db *bun.DB) PetRepository {
	return &petRepository{db: db}
}

func (r *petRepository) Create(ctx context.Context, pet *models.Pet) error {
	if pet.ID == "" {
		pet.ID = uuid.NewString()
	}
	pet.CreatedAt = time.Now()

	ctx, cancel := WithTimeout(ctx)
	defer cancel()
	_, err := r.db.NewInsert().Model(pet).Exec(ctx)
	return HandleError("create", "pet", pet.UserID, err)
}

func (r *petRepository) GetByUserID(ctx context.Context, userID string) (*models.Pet, error) {
	ctx, cancel := WithTimeout(ctx)
	defer cancel()

	pet := new(models.Pet)
	err := r.db.NewSelect().
		Model(pet).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, HandleError("get_by_user_id", "pet", userID, err)
	}
	return pet, nil
}

func (r *petRepository) Update(ctx context.Context, pet *models.Pet) error {
	ctx, cancel := WithTimeout(ctx)
	defer cancel()
	_, err := r.db.NewUpdate().
		Model(pet).
		WherePK().
		Exec(ctx)
	return HandleError("update", "pet", pet.UserID, err)
}
