package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campground_backend/internal/database"
	"campground_backend/internal/models"
	"campground_backend/internal/repositories"
	"campground_backend/pkg/utils"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameExists     = fmt.Errorf("%w: username already exists", ErrInvalidInput)
	ErrRegistration       = fmt.Errorf("%w: registration", ErrInvalidInput)
)

// --- Data Transfer Objects (DTOs) ---

// LoginRequest DTO. Username may also be the account's email.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest DTO
type RegisterRequest struct {
	Username    string  `json:"username" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8"`
	FirstName   string  `json:"first_name" binding:"required"`
	LastName    string  `json:"last_name" binding:"required"`
	Age         *int    `json:"age"`
	PhoneNumber *string `json:"phone_number"`
}

// AuthResponse DTO
type AuthResponse struct {
	Valid bool   `json:"valid,omitempty"`
	Token string `json:"token"`
	ID    int64  `json:"id"`
}

// --- AuthService Interface ---
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	PromoteToStaff(ctx context.Context, username string) error
}

// --- authService Implementation ---
type authService struct {
	authRepo      repositories.AuthRepository
	camperRepo    repositories.CamperRepository
	db            *sqlx.DB
	jwtSecret     []byte
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(authRepo repositories.AuthRepository, camperRepo repositories.CamperRepository, db *sqlx.DB, jwtSecret string, jwtExp time.Duration) AuthService {
	return &authService{
		authRepo:      authRepo,
		camperRepo:    camperRepo,
		db:            db,
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: jwtExp,
	}
}

func (s *authService) issueToken(user *models.User) (string, error) {
	return utils.GenerateAccessToken(s.jwtSecret, s.jwtExpiration, user.ID, user.Username, user.IsStaff)
}

// Register creates the user and its camper profile together.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || len(username) > 150 || strings.Contains(username, "@") {
		return nil, fmt.Errorf("%w: username must be 1 to 150 characters without '@'", ErrRegistration)
	}
	if req.Age != nil && *req.Age < 0 {
		return nil, fmt.Errorf("%w: age cannot be negative", ErrRegistration)
	}
	phone := utils.NewNullString(utils.NullStringValue(req.PhoneNumber))
	if phone != nil && len(*phone) > maxPhoneNumberLength {
		return nil, fmt.Errorf("%w: phone_number is limited to %d characters", ErrRegistration, maxPhoneNumberLength)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        strings.TrimSpace(req.Email),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: string(hashed),
	}
	err = database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := s.authRepo.CreateUser(ctx, tx, user); err != nil {
			return err
		}
		camper := &models.Camper{UserID: user.ID, Age: req.Age, PhoneNumber: phone}
		_, err := s.camperRepo.CreateCamper(ctx, tx, camper)
		return err
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	utils.LogInfo("User registered", map[string]interface{}{"user_id": user.ID, "username": user.Username})
	return &AuthResponse{Token: token, ID: user.ID}, nil
}

// Login checks the password and issues a token. A username containing '@'
// is looked up by email.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var (
		user *models.User
		err  error
	)
	if strings.Contains(req.Username, "@") {
		user, err = s.authRepo.FindUserByEmail(ctx, strings.TrimSpace(req.Username))
	} else {
		user, err = s.authRepo.FindUserByUsername(ctx, strings.TrimSpace(req.Username))
	}
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &AuthResponse{Valid: true, Token: token, ID: user.ID}, nil
}

// PromoteToStaff grants staff access to an existing user.
func (s *authService) PromoteToStaff(ctx context.Context, username string) error {
	if err := s.authRepo.SetStaff(ctx, strings.TrimSpace(username), true); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrUserNotFound, username)
		}
		return fmt.Errorf("failed to promote user: %w", err)
	}
	return nil
}
