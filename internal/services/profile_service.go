package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"campground_backend/internal/models"
	"campground_backend/internal/repositories"
	"campground_backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// --- Custom Service Errors for Profiles ---
var (
	ErrCamperNotFound    = fmt.Errorf("camper profile %w", ErrNotFound)
	ErrProfileValidation = fmt.Errorf("%w: profile", ErrInvalidInput)
)

const maxPhoneNumberLength = 15

// --- Profile DTOs ---

type UpdateProfileRequest struct {
	Age         *int    `json:"age"`
	PhoneNumber *string `json:"phone_number"`
}

// --- ProfileService Interface ---
type ProfileService interface {
	GetProfile(ctx context.Context, rc RequestContext) (*models.CamperProfile, error)
	UpdateProfile(ctx context.Context, rc RequestContext, req UpdateProfileRequest) (*models.CamperProfile, error)
	DeleteProfile(ctx context.Context, rc RequestContext) error
}

// --- profileService Implementation ---
type profileService struct {
	authRepo        repositories.AuthRepository
	camperRepo      repositories.CamperRepository
	paymentRepo     repositories.PaymentMethodRepository
	reservationRepo repositories.ReservationRepository
	campsites       CampsiteService
	db              *sqlx.DB
}

// NewProfileService creates a new instance of ProfileService.
func NewProfileService(
	ar repositories.AuthRepository,
	cr repositories.CamperRepository,
	pr repositories.PaymentMethodRepository,
	rr repositories.ReservationRepository,
	cs CampsiteService,
	db *sqlx.DB,
) ProfileService {
	return &profileService{
		authRepo:        ar,
		camperRepo:      cr,
		paymentRepo:     pr,
		reservationRepo: rr,
		campsites:       cs,
		db:              db,
	}
}

// resolveCamper maps the acting identity to its camper profile.
func resolveCamper(ctx context.Context, repo repositories.CamperRepository, rc RequestContext) (*models.Camper, error) {
	camper, err := repo.GetCamperByUserID(ctx, rc.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrCamperNotFound, rc.UserID)
		}
		return nil, fmt.Errorf("failed to resolve camper: %w", err)
	}
	return camper, nil
}

func (s *profileService) GetProfile(ctx context.Context, rc RequestContext) (*models.CamperProfile, error) {
	camper, err := resolveCamper(ctx, s.camperRepo, rc)
	if err != nil {
		return nil, err
	}
	user, err := s.authRepo.FindUserByID(ctx, camper.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrCamperNotFound, camper.UserID)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	methods, err := s.paymentRepo.GetPaymentMethodsByCamper(ctx, camper.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment methods: %w", err)
	}
	reservations, err := s.reservationRepo.GetReservationsByCamper(ctx, camper.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}

	campsites := make(map[int64]*models.Campsite)
	for i := range reservations {
		id := reservations[i].CampsiteID
		if _, ok := campsites[id]; !ok {
			site, err := s.campsites.GetCampsite(ctx, id)
			if err != nil {
				return nil, err
			}
			campsites[id] = site
		}
		reservations[i].Campsite = campsites[id]
	}

	return &models.CamperProfile{
		ID:                 camper.ID,
		User:               user,
		IsAdmin:            user.IsStaff,
		PaymentMethods:     methods,
		ReservationHistory: reservations,
		Age:                camper.Age,
		PhoneNumber:        camper.PhoneNumber,
	}, nil
}

// UpdateProfile applies a partial update to age and phone number.
func (s *profileService) UpdateProfile(ctx context.Context, rc RequestContext, req UpdateProfileRequest) (*models.CamperProfile, error) {
	camper, err := resolveCamper(ctx, s.camperRepo, rc)
	if err != nil {
		return nil, err
	}

	if req.Age != nil {
		if *req.Age < 0 {
			return nil, fmt.Errorf("%w: age cannot be negative", ErrProfileValidation)
		}
		camper.Age = req.Age
	}
	if req.PhoneNumber != nil {
		phone := strings.TrimSpace(*req.PhoneNumber)
		if len(phone) > maxPhoneNumberLength {
			return nil, fmt.Errorf("%w: phone_number is limited to %d characters", ErrProfileValidation, maxPhoneNumberLength)
		}
		camper.PhoneNumber = utils.NewNullString(phone)
	}

	if err := s.camperRepo.UpdateCamper(ctx, s.db, camper); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.GetProfile(ctx, rc)
}

// DeleteProfile removes the account and, by cascade, everything the camper owns.
func (s *profileService) DeleteProfile(ctx context.Context, rc RequestContext) error {
	camper, err := resolveCamper(ctx, s.camperRepo, rc)
	if err != nil {
		return err
	}
	if err := s.authRepo.DeleteUser(ctx, s.db, camper.UserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: user %d", ErrCamperNotFound, camper.UserID)
		}
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	utils.LogInfo("Camper profile deleted", map[string]interface{}{"camper_id": camper.ID, "user_id": camper.UserID})
	return nil
}
