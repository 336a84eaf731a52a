package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campground_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// CampsiteRepository defines the interface for campsite, image and
// amenity-link operations.
type CampsiteRepository interface {
	CreateCampsite(ctx context.Context, executor SQLExecutor, campsite *models.Campsite) (int64, error)
	GetCampsiteByID(ctx context.Context, id int64) (*models.Campsite, error)
	GetCampsites(ctx context.Context) ([]models.Campsite, error)
	UpdateCampsite(ctx context.Context, executor SQLExecutor, campsite *models.Campsite) error

	AddImage(ctx context.Context, executor SQLExecutor, image *models.CampsiteImage) (int64, error)
	GetImagesForCampsites(ctx context.Context, campsiteIDs []int64) ([]models.CampsiteImage, error)
	DeleteImages(ctx context.Context, executor SQLExecutor, campsiteID int64) error

	GetAmenitiesForCampsites(ctx context.Context, campsiteIDs []int64) (map[int64][]models.Amenity, error)
	LinkAmenity(ctx context.Context, executor SQLExecutor, campsiteID, amenityID int64) error
	UnlinkAmenities(ctx context.Context, executor SQLExecutor, campsiteID int64, amenityIDs []int64) error
}

type campsiteRepository struct {
	db *sqlx.DB
}

// NewCampsiteRepository creates a new instance of CampsiteRepository.
func NewCampsiteRepository(db *sqlx.DB) CampsiteRepository {
	return &campsiteRepository{db: db}
}

const campsiteColumns = `id, site_number, description, coordinates, price_per_night, max_occupancy, available, created_at, updated_at`

func (r *campsiteRepository) CreateCampsite(ctx context.Context, executor SQLExecutor, campsite *models.Campsite) (int64, error) {
	query := executor.Rebind(`INSERT INTO campsites (site_number, description, coordinates, price_per_night, max_occupancy, available, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	          RETURNING id`)
	now := time.Now().UTC()
	campsite.CreatedAt, campsite.UpdatedAt = now, now
	err := executor.GetContext(ctx, &campsite.ID, query,
		campsite.SiteNumber, campsite.Description, campsite.Coordinates, campsite.PricePerNight,
		campsite.MaxOccupancy, campsite.Available, campsite.CreatedAt, campsite.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: creating campsite: %v", ErrDatabaseError, err)
	}
	return campsite.ID, nil
}

func (r *campsiteRepository) GetCampsiteByID(ctx context.Context, id int64) (*models.Campsite, error) {
	campsite := &models.Campsite{}
	query := r.db.Rebind(`SELECT ` + campsiteColumns + ` FROM campsites WHERE id = ?`)
	if err := r.db.GetContext(ctx, campsite, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding campsite %d: %v", ErrDatabaseError, id, err)
	}
	return campsite, nil
}

func (r *campsiteRepository) GetCampsites(ctx context.Context) ([]models.Campsite, error) {
	campsites := []models.Campsite{}
	if err := r.db.SelectContext(ctx, &campsites, `SELECT `+campsiteColumns+` FROM campsites ORDER BY id`); err != nil {
		return nil, fmt.Errorf("%w: listing campsites: %v", ErrDatabaseError, err)
	}
	return campsites, nil
}

func (r *campsiteRepository) UpdateCampsite(ctx context.Context, executor SQLExecutor, campsite *models.Campsite) error {
	query := executor.Rebind(`UPDATE campsites
	          SET site_number = ?, description = ?, coordinates = ?, price_per_night = ?, max_occupancy = ?, available = ?, updated_at = ?
	          WHERE id = ?`)
	campsite.UpdatedAt = time.Now().UTC()
	result, err := executor.ExecContext(ctx, query,
		campsite.SiteNumber, campsite.Description, campsite.Coordinates, campsite.PricePerNight,
		campsite.MaxOccupancy, campsite.Available, campsite.UpdatedAt, campsite.ID)
	if err != nil {
		return fmt.Errorf("%w: updating campsite %d: %v", ErrDatabaseError, campsite.ID, err)
	}
	return expectAffected(result, "updating campsite")
}

// --- Images ---

func (r *campsiteRepository) AddImage(ctx context.Context, executor SQLExecutor, image *models.CampsiteImage) (int64, error) {
	query := executor.Rebind(`INSERT INTO campsite_images (campsite_id, image_url, uploaded_at) VALUES (?, ?, ?) RETURNING id`)
	if image.UploadedAt.IsZero() {
		image.UploadedAt = time.Now().UTC()
	}
	if err := executor.GetContext(ctx, &image.ID, query, image.CampsiteID, image.ImageURL, image.UploadedAt); err != nil {
		return 0, fmt.Errorf("%w: adding campsite image: %v", ErrDatabaseError, err)
	}
	return image.ID, nil
}

func (r *campsiteRepository) GetImagesForCampsites(ctx context.Context, campsiteIDs []int64) ([]models.CampsiteImage, error) {
	images := []models.CampsiteImage{}
	if len(campsiteIDs) == 0 {
		return images, nil
	}
	query, args, err := sqlx.In(`SELECT id, campsite_id, image_url, uploaded_at FROM campsite_images WHERE campsite_id IN (?) ORDER BY id`, campsiteIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: building image query: %v", ErrDatabaseError, err)
	}
	if err := r.db.SelectContext(ctx, &images, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("%w: listing campsite images: %v", ErrDatabaseError, err)
	}
	return images, nil
}

func (r *campsiteRepository) DeleteImages(ctx context.Context, executor SQLExecutor, campsiteID int64) error {
	if _, err := executor.ExecContext(ctx, executor.Rebind(`DELETE FROM campsite_images WHERE campsite_id = ?`), campsiteID); err != nil {
		return fmt.Errorf("%w: deleting campsite images: %v", ErrDatabaseError, err)
	}
	return nil
}

// --- Amenity links ---

type campsiteAmenityRow struct {
	CampsiteID int64  `db:"campsite_id"`
	ID         int64  `db:"id"`
	Name       string `db:"name"`
}

// GetAmenitiesForCampsites returns each campsite's amenities keyed by campsite ID.
func (r *campsiteRepository) GetAmenitiesForCampsites(ctx context.Context, campsiteIDs []int64) (map[int64][]models.Amenity, error) {
	result := make(map[int64][]models.Amenity, len(campsiteIDs))
	if len(campsiteIDs) == 0 {
		return result, nil
	}
	query, args, err := sqlx.In(`SELECT ca.campsite_id, a.id, a.name
	          FROM campsite_amenity ca
	          JOIN amenities a ON a.id = ca.amenity_id
	          WHERE ca.campsite_id IN (?)
	          ORDER BY a.id`, campsiteIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: building amenity query: %v", ErrDatabaseError, err)
	}
	var rows []campsiteAmenityRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("%w: listing campsite amenities: %v", ErrDatabaseError, err)
	}
	for _, row := range rows {
		result[row.CampsiteID] = append(result[row.CampsiteID], models.Amenity{ID: row.ID, Name: row.Name})
	}
	return result, nil
}

func (r *campsiteRepository) LinkAmenity(ctx context.Context, executor SQLExecutor, campsiteID, amenityID int64) error {
	query := executor.Rebind(`INSERT INTO campsite_amenity (campsite_id, amenity_id) VALUES (?, ?)`)
	if _, err := executor.ExecContext(ctx, query, campsiteID, amenityID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: amenity %d already linked to campsite %d", ErrDuplicateKey, amenityID, campsiteID)
		}
		return fmt.Errorf("%w: linking amenity: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *campsiteRepository) UnlinkAmenities(ctx context.Context, executor SQLExecutor, campsiteID int64, amenityIDs []int64) error {
	if len(amenityIDs) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM campsite_amenity WHERE campsite_id = ? AND amenity_id IN (?)`, campsiteID, amenityIDs)
	if err != nil {
		return fmt.Errorf("%w: building unlink query: %v", ErrDatabaseError, err)
	}
	if _, err := executor.ExecContext(ctx, executor.Rebind(query), args...); err != nil {
		return fmt.Errorf("%w: unlinking amenities: %v", ErrDatabaseError, err)
	}
	return nil
}
