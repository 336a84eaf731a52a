package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"campground_backend/internal/database"
	"campground_backend/internal/models"
	"campground_backend/internal/repositories"
	"campground_backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// --- Custom Service Errors for Campsites ---
var (
	ErrCampsiteNotFound   = fmt.Errorf("campsite %w", ErrNotFound)
	ErrCampsiteValidation = fmt.Errorf("%w: campsite", ErrInvalidInput)
	ErrUnknownAmenity     = fmt.Errorf("%w: unknown amenity", ErrInvalidInput)
	ErrAmenityExists      = fmt.Errorf("%w: amenity already exists", ErrInvalidInput)
	ErrInvalidImageURL    = fmt.Errorf("%w: image must be a jpg, jpeg or png file", ErrInvalidInput)
	ErrInvalidRating      = fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	ErrStaffOnly          = fmt.Errorf("%w: staff access required", ErrForbidden)
)

var allowedImageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// --- Campsite DTOs ---

type CreateCampsiteRequest struct {
	SiteNumber    string   `json:"site_number" binding:"required"`
	Description   string   `json:"description"`
	Coordinates   string   `json:"coordinates"`
	PricePerNight float64  `json:"price_per_night" binding:"required"`
	MaxOccupancy  int      `json:"max_occupancy" binding:"required"`
	Available     *bool    `json:"available"`
	AmenityIDs    []int64  `json:"amenity_ids"`
	ImageURLs     []string `json:"image_urls"`
}

// UpdateCampsiteRequest is a partial update. AmenityIDs, when present, is
// the full desired set; ImageURLs, when present, replaces all images.
type UpdateCampsiteRequest struct {
	SiteNumber    *string   `json:"site_number"`
	Description   *string   `json:"description"`
	Coordinates   *string   `json:"coordinates"`
	PricePerNight *float64  `json:"price_per_night"`
	MaxOccupancy  *int      `json:"max_occupancy"`
	Available     *bool     `json:"available"`
	AmenityIDs    *[]int64  `json:"amenity_ids"`
	ImageURLs     *[]string `json:"image_urls"`
}

type CreateAmenityRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateReviewRequest struct {
	Rating  int     `json:"rating" binding:"required"`
	Comment *string `json:"comment"`
}

// --- CampsiteService Interface ---
type CampsiteService interface {
	ListCampsites(ctx context.Context) ([]models.Campsite, error)
	GetCampsite(ctx context.Context, campsiteID int64) (*models.Campsite, error)
	CreateCampsite(ctx context.Context, rc RequestContext, req CreateCampsiteRequest) (*models.Campsite, error)
	UpdateCampsite(ctx context.Context, rc RequestContext, campsiteID int64, req UpdateCampsiteRequest) (*models.Campsite, error)

	ListAmenities(ctx context.Context) ([]models.Amenity, error)
	CreateAmenity(ctx context.Context, rc RequestContext, req CreateAmenityRequest) (*models.Amenity, error)

	AddReview(ctx context.Context, rc RequestContext, campsiteID int64, req CreateReviewRequest) (*models.Review, error)
}

// --- campsiteService Implementation ---
type campsiteService struct {
	campsiteRepo repositories.CampsiteRepository
	amenityRepo  repositories.AmenityRepository
	reviewRepo   repositories.ReviewRepository
	camperRepo   repositories.CamperRepository
	db           *sqlx.DB
}

// NewCampsiteService creates a new instance of CampsiteService.
func NewCampsiteService(
	csr repositories.CampsiteRepository,
	ar repositories.AmenityRepository,
	rvr repositories.ReviewRepository,
	cr repositories.CamperRepository,
	db *sqlx.DB,
) CampsiteService {
	return &campsiteService{
		campsiteRepo: csr,
		amenityRepo:  ar,
		reviewRepo:   rvr,
		camperRepo:   cr,
		db:           db,
	}
}

func requireStaff(rc RequestContext) error {
	if !rc.IsStaff {
		return ErrStaffOnly
	}
	return nil
}

// validateImageURL accepts jpg, jpeg and png references, case-insensitively.
func validateImageURL(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fmt.Errorf("%w: empty image url", ErrInvalidImageURL)
	}
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	if !allowedImageExtensions[strings.ToLower(path.Ext(trimmed))] {
		return fmt.Errorf("%w: %q", ErrInvalidImageURL, raw)
	}
	return nil
}

func validateCampsite(c *models.Campsite) error {
	if utils.IsEmpty(c.SiteNumber) {
		return fmt.Errorf("%w: site_number is required", ErrCampsiteValidation)
	}
	if c.PricePerNight <= 0 {
		return fmt.Errorf("%w: price_per_night must be positive", ErrCampsiteValidation)
	}
	if c.MaxOccupancy <= 0 {
		return fmt.Errorf("%w: max_occupancy must be positive", ErrCampsiteValidation)
	}
	c.PricePerNight = utils.RoundCents(c.PricePerNight)
	return nil
}

// dedupeIDs returns the distinct ids in ascending order.
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// diffAmenities returns the links to drop and the links to create to move
// a campsite from current to desired.
func diffAmenities(current, desired []int64) (remove, add []int64) {
	want := make(map[int64]bool, len(desired))
	for _, id := range desired {
		want[id] = true
	}
	have := make(map[int64]bool, len(current))
	for _, id := range current {
		have[id] = true
		if !want[id] {
			remove = append(remove, id)
		}
	}
	for _, id := range dedupeIDs(desired) {
		if !have[id] {
			add = append(add, id)
		}
	}
	return remove, add
}

// ensureAmenitiesExist fails with ErrUnknownAmenity naming the first id
// that does not resolve.
func (s *campsiteService) ensureAmenitiesExist(ctx context.Context, ids []int64) error {
	found, err := s.amenityRepo.GetAmenitiesByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to look up amenities: %w", err)
	}
	known := make(map[int64]bool, len(found))
	for _, a := range found {
		known[a.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return fmt.Errorf("%w: id %d", ErrUnknownAmenity, id)
		}
	}
	return nil
}

// hydrate attaches images, reviews and amenities to each campsite.
func (s *campsiteService) hydrate(ctx context.Context, campsites []models.Campsite) error {
	if len(campsites) == 0 {
		return nil
	}
	ids := make([]int64, len(campsites))
	index := make(map[int64]int, len(campsites))
	for i := range campsites {
		ids[i] = campsites[i].ID
		index[campsites[i].ID] = i
		campsites[i].Images = []models.CampsiteImage{}
		campsites[i].Reviews = []models.Review{}
		campsites[i].Amenities = []models.Amenity{}
	}

	images, err := s.campsiteRepo.GetImagesForCampsites(ctx, ids)
	if err != nil {
		return err
	}
	for _, img := range images {
		c := &campsites[index[img.CampsiteID]]
		c.Images = append(c.Images, img)
	}

	reviews, err := s.reviewRepo.GetReviewsForCampsites(ctx, ids)
	if err != nil {
		return err
	}
	for _, rv := range reviews {
		c := &campsites[index[rv.CampsiteID]]
		c.Reviews = append(c.Reviews, rv)
	}

	amenities, err := s.campsiteRepo.GetAmenitiesForCampsites(ctx, ids)
	if err != nil {
		return err
	}
	for id, list := range amenities {
		campsites[index[id]].Amenities = list
	}
	return nil
}

func (s *campsiteService) ListCampsites(ctx context.Context) ([]models.Campsite, error) {
	campsites, err := s.campsiteRepo.GetCampsites(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list campsites: %w", err)
	}
	if err := s.hydrate(ctx, campsites); err != nil {
		return nil, fmt.Errorf("failed to load campsite details: %w", err)
	}
	return campsites, nil
}

func (s *campsiteService) GetCampsite(ctx context.Context, campsiteID int64) (*models.Campsite, error) {
	campsite, err := s.campsiteRepo.GetCampsiteByID(ctx, campsiteID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrCampsiteNotFound, campsiteID)
		}
		return nil, fmt.Errorf("failed to get campsite: %w", err)
	}
	list := []models.Campsite{*campsite}
	if err := s.hydrate(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to load campsite details: %w", err)
	}
	return &list[0], nil
}

func (s *campsiteService) CreateCampsite(ctx context.Context, rc RequestContext, req CreateCampsiteRequest) (*models.Campsite, error) {
	if err := requireStaff(rc); err != nil {
		return nil, err
	}

	campsite := &models.Campsite{
		SiteNumber:    strings.TrimSpace(req.SiteNumber),
		Description:   req.Description,
		Coordinates:   req.Coordinates,
		PricePerNight: req.PricePerNight,
		MaxOccupancy:  req.MaxOccupancy,
		Available:     true,
	}
	if req.Available != nil {
		campsite.Available = *req.Available
	}
	if err := validateCampsite(campsite); err != nil {
		return nil, err
	}
	for _, u := range req.ImageURLs {
		if err := validateImageURL(u); err != nil {
			return nil, err
		}
	}
	amenityIDs := dedupeIDs(req.AmenityIDs)
	if err := s.ensureAmenitiesExist(ctx, amenityIDs); err != nil {
		return nil, err
	}

	err := database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := s.campsiteRepo.CreateCampsite(ctx, tx, campsite); err != nil {
			return err
		}
		for _, id := range amenityIDs {
			if err := s.campsiteRepo.LinkAmenity(ctx, tx, campsite.ID, id); err != nil {
				return err
			}
		}
		for _, u := range req.ImageURLs {
			img := &models.CampsiteImage{CampsiteID: campsite.ID, ImageURL: strings.TrimSpace(u)}
			if _, err := s.campsiteRepo.AddImage(ctx, tx, img); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create campsite: %w", err)
	}

	utils.LogInfo("Campsite created", map[string]interface{}{"campsite_id": campsite.ID, "site_number": campsite.SiteNumber})
	return s.GetCampsite(ctx, campsite.ID)
}

// UpdateCampsite applies field changes, the amenity diff and any image
// replacement as one transaction.
func (s *campsiteService) UpdateCampsite(ctx context.Context, rc RequestContext, campsiteID int64, req UpdateCampsiteRequest) (*models.Campsite, error) {
	if err := requireStaff(rc); err != nil {
		return nil, err
	}

	existing, err := s.GetCampsite(ctx, campsiteID)
	if err != nil {
		return nil, err
	}

	campsite := *existing
	if req.SiteNumber != nil {
		campsite.SiteNumber = strings.TrimSpace(*req.SiteNumber)
	}
	if req.Description != nil {
		campsite.Description = *req.Description
	}
	if req.Coordinates != nil {
		campsite.Coordinates = *req.Coordinates
	}
	if req.PricePerNight != nil {
		campsite.PricePerNight = *req.PricePerNight
	}
	if req.MaxOccupancy != nil {
		campsite.MaxOccupancy = *req.MaxOccupancy
	}
	if req.Available != nil {
		campsite.Available = *req.Available
	}
	if err := validateCampsite(&campsite); err != nil {
		return nil, err
	}

	var remove, add []int64
	if req.AmenityIDs != nil {
		desired := dedupeIDs(*req.AmenityIDs)
		if err := s.ensureAmenitiesExist(ctx, desired); err != nil {
			return nil, err
		}
		current := make([]int64, len(existing.Amenities))
		for i, a := range existing.Amenities {
			current[i] = a.ID
		}
		remove, add = diffAmenities(current, desired)
	}
	if req.ImageURLs != nil {
		for _, u := range *req.ImageURLs {
			if err := validateImageURL(u); err != nil {
				return nil, err
			}
		}
	}

	err = database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := s.campsiteRepo.UnlinkAmenities(ctx, tx, campsiteID, remove); err != nil {
			return err
		}
		for _, id := range add {
			if err := s.campsiteRepo.LinkAmenity(ctx, tx, campsiteID, id); err != nil {
				return err
			}
		}
		if req.ImageURLs != nil {
			if err := s.campsiteRepo.DeleteImages(ctx, tx, campsiteID); err != nil {
				return err
			}
			for _, u := range *req.ImageURLs {
				img := &models.CampsiteImage{CampsiteID: campsiteID, ImageURL: strings.TrimSpace(u)}
				if _, err := s.campsiteRepo.AddImage(ctx, tx, img); err != nil {
					return err
				}
			}
		}
		return s.campsiteRepo.UpdateCampsite(ctx, tx, &campsite)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrCampsiteNotFound, campsiteID)
		}
		return nil, fmt.Errorf("failed to update campsite: %w", err)
	}

	return s.GetCampsite(ctx, campsiteID)
}

// --- Amenities ---

func (s *campsiteService) ListAmenities(ctx context.Context) ([]models.Amenity, error) {
	amenities, err := s.amenityRepo.GetAmenities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list amenities: %w", err)
	}
	return amenities, nil
}

func (s *campsiteService) CreateAmenity(ctx context.Context, rc RequestContext, req CreateAmenityRequest) (*models.Amenity, error) {
	if err := requireStaff(rc); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 100 {
		return nil, fmt.Errorf("%w: amenity name must be 1 to 100 characters", ErrInvalidInput)
	}

	amenity := &models.Amenity{Name: name}
	if _, err := s.amenityRepo.CreateAmenity(ctx, s.db, amenity); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: '%s'", ErrAmenityExists, name)
		}
		return nil, fmt.Errorf("failed to create amenity: %w", err)
	}
	return amenity, nil
}

// --- Reviews ---

func (s *campsiteService) AddReview(ctx context.Context, rc RequestContext, campsiteID int64, req CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	camper, err := resolveCamper(ctx, s.camperRepo, rc)
	if err != nil {
		return nil, err
	}
	if _, err := s.campsiteRepo.GetCampsiteByID(ctx, campsiteID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrCampsiteNotFound, campsiteID)
		}
		return nil, fmt.Errorf("failed to get campsite: %w", err)
	}

	review := &models.Review{
		CamperID:   camper.ID,
		CampsiteID: campsiteID,
		Rating:     req.Rating,
		Comment:    utils.NewNullString(utils.NullStringValue(req.Comment)),
	}
	if _, err := s.reviewRepo.CreateReview(ctx, s.db, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	reviews, err := s.reviewRepo.GetReviewsForCampsites(ctx, []int64{campsiteID})
	if err != nil {
		return nil, fmt.Errorf("failed to reload review: %w", err)
	}
	for i := range reviews {
		if reviews[i].ID == review.ID {
			return &reviews[i], nil
		}
	}
	return review, nil
}
