package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campground_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// CamperRepository defines the interface for camper profile operations.
type CamperRepository interface {
	CreateCamper(ctx context.Context, executor SQLExecutor, camper *models.Camper) (int64, error)
	GetCamperByUserID(ctx context.Context, userID int64) (*models.Camper, error)
	UpdateCamper(ctx context.Context, executor SQLExecutor, camper *models.Camper) error
}

type camperRepository struct {
	db *sqlx.DB
}

// NewCamperRepository creates a new instance of CamperRepository.
func NewCamperRepository(db *sqlx.DB) CamperRepository {
	return &camperRepository{db: db}
}

func (r *camperRepository) CreateCamper(ctx context.Context, executor SQLExecutor, camper *models.Camper) (int64, error) {
	query := executor.Rebind(`INSERT INTO campers (user_id, age, phone_number) VALUES (?, ?, ?) RETURNING id`)
	if err := executor.GetContext(ctx, &camper.ID, query, camper.UserID, camper.Age, camper.PhoneNumber); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: user %d already has a camper profile", ErrDuplicateKey, camper.UserID)
		}
		return 0, fmt.Errorf("%w: creating camper: %v", ErrDatabaseError, err)
	}
	return camper.ID, nil
}

func (r *camperRepository) GetCamperByUserID(ctx context.Context, userID int64) (*models.Camper, error) {
	camper := &models.Camper{}
	query := r.db.Rebind(`SELECT id, user_id, age, phone_number FROM campers WHERE user_id = ?`)
	if err := r.db.GetContext(ctx, camper, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding camper for user %d: %v", ErrDatabaseError, userID, err)
	}
	return camper, nil
}

func (r *camperRepository) UpdateCamper(ctx context.Context, executor SQLExecutor, camper *models.Camper) error {
	query := executor.Rebind(`UPDATE campers SET age = ?, phone_number = ? WHERE id = ?`)
	result, err := executor.ExecContext(ctx, query, camper.Age, camper.PhoneNumber, camper.ID)
	if err != nil {
		return fmt.Errorf("%w: updating camper %d: %v", ErrDatabaseError, camper.ID, err)
	}
	return expectAffected(result, "updating camper")
}
