package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dairy-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DeliveryRepository struct {
	DB *pgxpool.Pool
}

func NewDeliveryRepository(db *pgxpool.Pool) *DeliveryRepository {
	return &DeliveryRepository{DB: db}
}

// InsertIdempotent records a delivery and its payment exactly once per
// (customer, product, calendar day). The existence checks, the guarded
// insert and the payment insert share one transaction; the unique index on
// deliveries backs the guard so concurrent identical submissions cannot both
// insert. Returns created=false when the day's record already exists.
func (r *DeliveryRepository) InsertIdempotent(ctx context.Context, d *models.Delivery, p *models.Payment) (bool, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE id=$1)`, d.CustomerID).Scan(&exists); err != nil {
		return false, err
	}
	if !exists {
		return false, fmt.Errorf("customer %d: %w", d.CustomerID, models.ErrNotFound)
	}
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE id=$1)`, d.ProductID).Scan(&exists); err != nil {
		return false, err
	}
	if !exists {
		return false, fmt.Errorf("product %d: %w", d.ProductID, models.ErrNotFound)
	}

	// ON CONFLICT DO NOTHING + RETURNING yields no row when the day's
	// delivery already exists, which is the duplicate path
	err = tx.QueryRow(ctx,
		`INSERT INTO deliveries(worker_id, customer_id, product_id, quantity, delivered_at, delivery_date, actor_login)
		 VALUES($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (customer_id, product_id, delivery_date) DO NOTHING
		 RETURNING id, created_at`,
		d.WorkerID, d.CustomerID, d.ProductID, d.Quantity, d.DeliveredAt, d.DeliveryDate, d.ActorLogin,
	).Scan(&d.ID, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, tx.Commit(ctx)
	}
	if err != nil {
		return false, fmt.Errorf("insert delivery: %w", err)
	}

	p.DeliveryID = d.ID
	err = tx.QueryRow(ctx,
		`INSERT INTO payments(delivery_id, customer_id, product_id, bill_amount, is_collected, payment_date)
		 VALUES($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		p.DeliveryID, p.CustomerID, p.ProductID, p.BillAmount, p.IsCollected, p.PaymentDate,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("insert payment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (r *DeliveryRepository) ListForDay(ctx context.Context, day time.Time) ([]*models.Delivery, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, worker_id, customer_id, product_id, quantity, delivered_at, delivery_date,
		        actor_login, verification_id, created_at
		 FROM deliveries WHERE delivery_date=$1
		 ORDER BY delivered_at`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deliveries []*models.Delivery
	for rows.Next() {
		var d models.Delivery
		err := rows.Scan(&d.ID, &d.WorkerID, &d.CustomerID, &d.ProductID, &d.Quantity,
			&d.DeliveredAt, &d.DeliveryDate, &d.ActorLogin, &d.VerificationID, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, &d)
	}
	return deliveries, rows.Err()
}

func (r *DeliveryRepository) ListForWorkerDay(ctx context.Context, workerID int, day time.Time) ([]*models.Delivery, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, worker_id, customer_id, product_id, quantity, delivered_at, delivery_date,
		        actor_login, verification_id, created_at
		 FROM deliveries WHERE worker_id=$1 AND delivery_date=$2
		 ORDER BY delivered_at`, workerID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deliveries []*models.Delivery
	for rows.Next() {
		var d models.Delivery
		err := rows.Scan(&d.ID, &d.WorkerID, &d.CustomerID, &d.ProductID, &d.Quantity,
			&d.DeliveredAt, &d.DeliveryDate, &d.ActorLogin, &d.VerificationID, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, &d)
	}
	return deliveries, rows.Err()
}
