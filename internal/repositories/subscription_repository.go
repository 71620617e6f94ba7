package repositories

import (
	"context"

	"dairy-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SubscriptionRepository struct {
	DB *pgxpool.Pool
}

func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

// Upsert creates or replaces the subscription for (customer, product).
func (r *SubscriptionRepository) Upsert(ctx context.Context, s *models.Subscription) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO subscriptions(customer_id, product_id, quantity, is_active)
		 VALUES($1, $2, $3, $4)
		 ON CONFLICT (customer_id, product_id)
		 DO UPDATE SET quantity=EXCLUDED.quantity, is_active=EXCLUDED.is_active, updated_at=NOW()
		 RETURNING id, created_at, updated_at`,
		s.CustomerID, s.ProductID, s.Quantity, s.IsActive,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *SubscriptionRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Subscription, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, customer_id, product_id, quantity, is_active, created_at, updated_at
		 FROM subscriptions WHERE customer_id=$1 ORDER BY product_id`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.Subscription
	for rows.Next() {
		var s models.Subscription
		err := rows.Scan(&s.ID, &s.CustomerID, &s.ProductID, &s.Quantity, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		subs = append(subs, &s)
	}
	return subs, rows.Err()
}

// SumActiveByProduct returns the total subscribed quantity for one product.
func (r *SubscriptionRepository) SumActiveByProduct(ctx context.Context, productID int) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM subscriptions
		 WHERE product_id=$1 AND is_active`, productID).Scan(&total)
	return total, err
}
