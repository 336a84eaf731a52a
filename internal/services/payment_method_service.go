package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"campground_backend/internal/database"
	"campground_backend/internal/models"
	"campground_backend/internal/repositories"
	"campground_backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// --- Custom Service Errors for Payment Methods ---
var (
	ErrPaymentMethodNotFound   = fmt.Errorf("payment method %w", ErrNotFound)
	ErrPaymentMethodValidation = fmt.Errorf("%w: payment method", ErrInvalidInput)
	ErrInvalidExpiration       = fmt.Errorf("%w: expiration_date must be MM/YY", ErrInvalidInput)
)

var (
	expirationPattern = regexp.MustCompile(`^(\d{2})/(\d{2})$`)
	digitsPattern     = regexp.MustCompile(`^\d+$`)
)

// --- Payment Method DTOs ---

type AddPaymentMethodRequest struct {
	Issuer         string  `json:"issuer" binding:"required"`
	CardNumber     string  `json:"card_number" binding:"required"`
	CardholderName string  `json:"cardholder_name" binding:"required"`
	ExpirationDate string  `json:"expiration_date" binding:"required"`
	CVV            string  `json:"cvv" binding:"required"`
	BillingName    *string `json:"billing_name"`
	BillingAddress *string `json:"billing_address"`
	IsDefault      bool    `json:"is_default"`
}

type RemovePaymentMethodRequest struct {
	PaymentMethodID int64 `json:"payment_method_id" binding:"required"`
}

// --- PaymentMethodService Interface ---
type PaymentMethodService interface {
	AddPaymentMethod(ctx context.Context, rc RequestContext, req AddPaymentMethodRequest) (*models.PaymentMethod, error)
	RemovePaymentMethod(ctx context.Context, rc RequestContext, paymentMethodID int64) error
}

// --- paymentMethodService Implementation ---
type paymentMethodService struct {
	paymentRepo repositories.PaymentMethodRepository
	camperRepo  repositories.CamperRepository
	db          *sqlx.DB
}

// NewPaymentMethodService creates a new instance of PaymentMethodService.
func NewPaymentMethodService(pr repositories.PaymentMethodRepository, cr repositories.CamperRepository, db *sqlx.DB) PaymentMethodService {
	return &paymentMethodService{paymentRepo: pr, camperRepo: cr, db: db}
}

// ParseExpiration converts an MM/YY expiration into the first day of that
// month. Two-digit years are taken as 20YY.
func ParseExpiration(value string) (models.Date, error) {
	m := expirationPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return models.Date{}, fmt.Errorf("%w: got %q", ErrInvalidExpiration, value)
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return models.Date{}, fmt.Errorf("%w: month %02d out of range", ErrInvalidExpiration, month)
	}
	return models.NewDate(2000+year, time.Month(month), 1), nil
}

func normalizeCardNumber(raw string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(raw))
}

// buildPaymentMethod validates the request and maps it onto a model.
func buildPaymentMethod(camperID int64, req AddPaymentMethodRequest) (*models.PaymentMethod, error) {
	issuer, ok := models.NormalizeIssuer(req.Issuer)
	if !ok {
		return nil, fmt.Errorf("%w: issuer must be one of Visa, MasterCard, Amex", ErrPaymentMethodValidation)
	}
	card := normalizeCardNumber(req.CardNumber)
	if !digitsPattern.MatchString(card) || len(card) < 12 || len(card) > 19 {
		return nil, fmt.Errorf("%w: card_number must be 12 to 19 digits", ErrPaymentMethodValidation)
	}
	cvv := strings.TrimSpace(req.CVV)
	if !digitsPattern.MatchString(cvv) || len(cvv) < 3 || len(cvv) > 4 {
		return nil, fmt.Errorf("%w: cvv must be 3 or 4 digits", ErrPaymentMethodValidation)
	}
	name := strings.TrimSpace(req.CardholderName)
	if name == "" || len(name) > 100 {
		return nil, fmt.Errorf("%w: cardholder_name must be 1 to 100 characters", ErrPaymentMethodValidation)
	}
	expiration, err := ParseExpiration(req.ExpirationDate)
	if err != nil {
		return nil, err
	}

	return &models.PaymentMethod{
		CamperID:       camperID,
		Issuer:         issuer,
		CardNumber:     card,
		CardholderName: name,
		ExpirationDate: expiration,
		CVV:            cvv,
		BillingName:    utils.NewNullString(utils.NullStringValue(req.BillingName)),
		BillingAddress: utils.NewNullString(utils.NullStringValue(req.BillingAddress)),
		IsDefault:      req.IsDefault,
	}, nil
}

// AddPaymentMethod stores a card for the acting camper. A new default
// clears the previous one in the same transaction.
func (s *paymentMethodService) AddPaymentMethod(ctx context.Context, rc RequestContext, req AddPaymentMethodRequest) (*models.PaymentMethod, error) {
	camper, err := resolveCamper(ctx, s.camperRepo, rc)
	if err != nil {
		return nil, err
	}
	pm, err := buildPaymentMethod(camper.ID, req)
	if err != nil {
		return nil, err
	}

	err = database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if pm.IsDefault {
			if err := s.paymentRepo.ClearDefault(ctx, tx, camper.ID); err != nil {
				return err
			}
		}
		_, err := s.paymentRepo.CreatePaymentMethod(ctx, tx, pm)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add payment method: %w", err)
	}
	return pm, nil
}

// RemovePaymentMethod deletes one of the acting camper's cards. A card that
// belongs to someone else is reported as not found.
func (s *paymentMethodService) RemovePaymentMethod(ctx context.Context, rc RequestContext, paymentMethodID int64) error {
	camper, err := resolveCamper(ctx, s.camperRepo, rc)
	if err != nil {
		return err
	}
	if err := s.paymentRepo.DeletePaymentMethod(ctx, s.db, paymentMethodID, camper.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: ID %d", ErrPaymentMethodNotFound, paymentMethodID)
		}
		return fmt.Errorf("failed to remove payment method: %w", err)
	}
	return nil
}
