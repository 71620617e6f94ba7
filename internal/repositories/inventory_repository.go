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

type InventoryRepository struct {
	DB *pgxpool.Pool
}

func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{DB: db}
}

// UpsertOrdered writes the day's demand figure for a product, creating the
// day row if this is the first write.
func (r *InventoryRepository) UpsertOrdered(ctx context.Context, productID int, day time.Time, orderedQty float64, updatedBy string) (*models.InventoryRecord, error) {
	var rec models.InventoryRecord
	err := r.DB.QueryRow(ctx,
		`INSERT INTO inventory_records(product_id, record_date, ordered_qty, last_updated_by)
		 VALUES($1, $2, $3, $4)
		 ON CONFLICT (product_id, record_date)
		 DO UPDATE SET ordered_qty=EXCLUDED.ordered_qty, last_updated_by=EXCLUDED.last_updated_by, updated_at=NOW()
		 RETURNING id, product_id, record_date, ordered_qty, received_qty, remaining_qty, last_updated_by, created_at, updated_at`,
		productID, day, orderedQty, updatedBy,
	).Scan(&rec.ID, &rec.ProductID, &rec.RecordDate, &rec.OrderedQty, &rec.ReceivedQty,
		&rec.RemainingQty, &rec.LastUpdatedBy, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert ordered qty: %w", err)
	}
	return &rec, nil
}

// SetReceived records how much stock actually arrived for the day.
func (r *InventoryRepository) SetReceived(ctx context.Context, productID int, day time.Time, qty float64, updatedBy string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE inventory_records
		 SET received_qty=$1, last_updated_by=$2, updated_at=NOW()
		 WHERE product_id=$3 AND record_date=$4`,
		qty, updatedBy, productID, day)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inventory record for product %d on %s: %w",
			productID, day.Format("2006-01-02"), models.ErrNotFound)
	}
	return nil
}

// SetRemaining records the end-of-day leftover. The value may not exceed the
// total picked across workers for that product-day; the check runs in the
// same transaction as the write.
func (r *InventoryRepository) SetRemaining(ctx context.Context, productID int, day time.Time, qty float64, updatedBy string) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var pickedTotal float64
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(picked_qty), 0) FROM worker_inventory
		 WHERE product_id=$1 AND record_date=$2 AND picked_qty IS NOT NULL`,
		productID, day).Scan(&pickedTotal)
	if err != nil {
		return err
	}
	if qty > pickedTotal {
		return fmt.Errorf("remaining %.3f exceeds picked total %.3f for product %d: %w",
			qty, pickedTotal, productID, models.ErrValidation)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE inventory_records
		 SET remaining_qty=$1, last_updated_by=$2, updated_at=NOW()
		 WHERE product_id=$3 AND record_date=$4`,
		qty, updatedBy, productID, day)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inventory record for product %d on %s: %w",
			productID, day.Format("2006-01-02"), models.ErrNotFound)
	}

	return tx.Commit(ctx)
}

func (r *InventoryRepository) GetForDay(ctx context.Context, productID int, day time.Time) (*models.InventoryRecord, error) {
	var rec models.InventoryRecord
	err := r.DB.QueryRow(ctx,
		`SELECT i.id, i.product_id, i.record_date, i.ordered_qty, i.received_qty, i.remaining_qty,
		        i.last_updated_by, i.created_at, i.updated_at, p.name
		 FROM inventory_records i
		 JOIN products p ON p.id = i.product_id
		 WHERE i.product_id=$1 AND i.record_date=$2`,
		productID, day,
	).Scan(&rec.ID, &rec.ProductID, &rec.RecordDate, &rec.OrderedQty, &rec.ReceivedQty,
		&rec.RemainingQty, &rec.LastUpdatedBy, &rec.CreatedAt, &rec.UpdatedAt, &rec.ProductName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("inventory record for product %d on %s: %w",
			productID, day.Format("2006-01-02"), models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *InventoryRepository) ListForDay(ctx context.Context, day time.Time) ([]*models.InventoryRecord, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT i.id, i.product_id, i.record_date, i.ordered_qty, i.received_qty, i.remaining_qty,
		        i.last_updated_by, i.created_at, i.updated_at, p.name
		 FROM inventory_records i
		 JOIN products p ON p.id = i.product_id
		 WHERE i.record_date=$1
		 ORDER BY p.name`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.InventoryRecord
	for rows.Next() {
		var rec models.InventoryRecord
		err := rows.Scan(&rec.ID, &rec.ProductID, &rec.RecordDate, &rec.OrderedQty, &rec.ReceivedQty,
			&rec.RemainingQty, &rec.LastUpdatedBy, &rec.CreatedAt, &rec.UpdatedAt, &rec.ProductName)
		if err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
