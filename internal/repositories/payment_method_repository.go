package repositories

import (
	"context"
	"fmt"
	"time"

	"campground_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// PaymentMethodRepository defines the interface for stored card operations.
// Every read and delete is scoped to the owning camper.
type PaymentMethodRepository interface {
	CreatePaymentMethod(ctx context.Context, executor SQLExecutor, pm *models.PaymentMethod) (int64, error)
	ClearDefault(ctx context.Context, executor SQLExecutor, camperID int64) error
	GetPaymentMethodsByCamper(ctx context.Context, camperID int64) ([]models.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, executor SQLExecutor, id, camperID int64) error
}

type paymentMethodRepository struct {
	db *sqlx.DB
}

// NewPaymentMethodRepository creates a new instance of PaymentMethodRepository.
func NewPaymentMethodRepository(db *sqlx.DB) PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

func (r *paymentMethodRepository) CreatePaymentMethod(ctx context.Context, executor SQLExecutor, pm *models.PaymentMethod) (int64, error) {
	query := executor.Rebind(`INSERT INTO payment_methods
	          (camper_id, issuer, card_number, cardholder_name, expiration_date, cvv, billing_name, billing_address, is_default, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	          RETURNING id`)

	now := time.Now().UTC()
	pm.CreatedAt, pm.UpdatedAt = now, now
	err := executor.GetContext(ctx, &pm.ID, query,
		pm.CamperID, pm.Issuer, pm.CardNumber, pm.CardholderName, pm.ExpirationDate, pm.CVV,
		pm.BillingName, pm.BillingAddress, pm.IsDefault, pm.CreatedAt, pm.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: camper %d already has a default payment method", ErrDuplicateKey, pm.CamperID)
		}
		return 0, fmt.Errorf("%w: creating payment method: %v", ErrDatabaseError, err)
	}
	return pm.ID, nil
}

// ClearDefault unsets the default flag on all of a camper's payment methods.
func (r *paymentMethodRepository) ClearDefault(ctx context.Context, executor SQLExecutor, camperID int64) error {
	query := executor.Rebind(`UPDATE payment_methods SET is_default = ?, updated_at = ? WHERE camper_id = ? AND is_default = ?`)
	if _, err := executor.ExecContext(ctx, query, false, time.Now().UTC(), camperID, true); err != nil {
		return fmt.Errorf("%w: clearing default payment method: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *paymentMethodRepository) GetPaymentMethodsByCamper(ctx context.Context, camperID int64) ([]models.PaymentMethod, error) {
	query := r.db.Rebind(`SELECT id, camper_id, issuer, card_number, cardholder_name, expiration_date, cvv,
	                 billing_name, billing_address, is_default, created_at, updated_at
	          FROM payment_methods
	          WHERE camper_id = ?
	          ORDER BY id`)
	methods := []models.PaymentMethod{}
	if err := r.db.SelectContext(ctx, &methods, query, camperID); err != nil {
		return nil, fmt.Errorf("%w: listing payment methods: %v", ErrDatabaseError, err)
	}
	return methods, nil
}

// DeletePaymentMethod returns ErrNotFound when the method does not exist or
// belongs to another camper; callers cannot tell the two apart.
func (r *paymentMethodRepository) DeletePaymentMethod(ctx context.Context, executor SQLExecutor, id, camperID int64) error {
	query := executor.Rebind(`DELETE FROM payment_methods WHERE id = ? AND camper_id = ?`)
	result, err := executor.ExecContext(ctx, query, id, camperID)
	if err != nil {
		return fmt.Errorf("%w: deleting payment method %d: %v", ErrDatabaseError, id, err)
	}
	return expectAffected(result, "deleting payment method")
}
