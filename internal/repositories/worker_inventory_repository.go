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

type WorkerInventoryRepository struct {
	DB *pgxpool.Pool
}

func NewWorkerInventoryRepository(db *pgxpool.Pool) *WorkerInventoryRepository {
	return &WorkerInventoryRepository{DB: db}
}

// UpsertPickedBatch applies a morning pick batch for one worker in a single
// transaction. Each item upserts the (worker, product, day) row; the unique
// constraint guarantees no duplicate rows under concurrent calls. A pick
// update below an already recorded remaining quantity is rejected, keeping
// remaining <= picked on every row.
func (r *WorkerInventoryRepository) UpsertPickedBatch(ctx context.Context, workerID int, day time.Time, items []models.WorkerStockItem) ([]*models.WorkerInventoryRecord, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	records := make([]*models.WorkerInventoryRecord, 0, len(items))
	for _, item := range items {
		var rec models.WorkerInventoryRecord
		err := tx.QueryRow(ctx,
			`INSERT INTO worker_inventory(worker_id, product_id, record_date, picked_qty)
			 VALUES($1, $2, $3, $4)
			 ON CONFLICT (worker_id, product_id, record_date)
			 DO UPDATE SET picked_qty=EXCLUDED.picked_qty, updated_at=NOW()
			 WHERE worker_inventory.remaining_qty IS NULL
			    OR worker_inventory.remaining_qty <= EXCLUDED.picked_qty
			 RETURNING id, worker_id, product_id, record_date, picked_qty, remaining_qty, created_at, updated_at`,
			workerID, item.ProductID, day, item.Quantity,
		).Scan(&rec.ID, &rec.WorkerID, &rec.ProductID, &rec.RecordDate,
			&rec.PickedQty, &rec.RemainingQty, &rec.CreatedAt, &rec.UpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("picked %.3f for product %d is below the remaining already recorded today: %w",
				item.Quantity, item.ProductID, models.ErrValidation)
		}
		if err != nil {
			return nil, fmt.Errorf("record picked qty for product %d: %w", item.ProductID, err)
		}
		records = append(records, &rec)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

// SetRemainingBatch applies an evening remaining batch for one worker.
// Every item requires an existing picked row for the day and remaining must
// not exceed picked; any violation rolls the whole batch back.
func (r *WorkerInventoryRepository) SetRemainingBatch(ctx context.Context, workerID int, day time.Time, items []models.WorkerStockItem) ([]*models.WorkerInventoryRecord, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	records := make([]*models.WorkerInventoryRecord, 0, len(items))
	for _, item := range items {
		var picked *float64
		var productName string
		err := tx.QueryRow(ctx,
			`SELECT wi.picked_qty, p.name
			 FROM worker_inventory wi
			 JOIN products p ON p.id = wi.product_id
			 WHERE wi.worker_id=$1 AND wi.product_id=$2 AND wi.record_date=$3`,
			workerID, item.ProductID, day).Scan(&picked, &productName)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("no picked record for product %d today, record picking first: %w",
				item.ProductID, models.ErrNotFound)
		}
		if err != nil {
			return nil, err
		}
		if picked == nil {
			return nil, fmt.Errorf("no picked quantity for %s today, record picking first: %w",
				productName, models.ErrNotFound)
		}
		if item.Quantity > *picked {
			return nil, fmt.Errorf("remaining %.3f exceeds picked %.3f for %s: %w",
				item.Quantity, *picked, productName, models.ErrValidation)
		}

		var rec models.WorkerInventoryRecord
		err = tx.QueryRow(ctx,
			`UPDATE worker_inventory
			 SET remaining_qty=$1, updated_at=NOW()
			 WHERE worker_id=$2 AND product_id=$3 AND record_date=$4
			 RETURNING id, worker_id, product_id, record_date, picked_qty, remaining_qty, created_at, updated_at`,
			item.Quantity, workerID, item.ProductID, day,
		).Scan(&rec.ID, &rec.WorkerID, &rec.ProductID, &rec.RecordDate,
			&rec.PickedQty, &rec.RemainingQty, &rec.CreatedAt, &rec.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("record remaining qty for %s: %w", productName, err)
		}
		rec.ProductName = productName
		records = append(records, &rec)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *WorkerInventoryRepository) ListForWorkerDay(ctx context.Context, workerID int, day time.Time) ([]*models.WorkerInventoryRecord, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT wi.id, wi.worker_id, wi.product_id, wi.record_date, wi.picked_qty, wi.remaining_qty,
		        wi.created_at, wi.updated_at, p.name
		 FROM worker_inventory wi
		 JOIN products p ON p.id = wi.product_id
		 WHERE wi.worker_id=$1 AND wi.record_date=$2
		 ORDER BY p.name`, workerID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.WorkerInventoryRecord
	for rows.Next() {
		var rec models.WorkerInventoryRecord
		err := rows.Scan(&rec.ID, &rec.WorkerID, &rec.ProductID, &rec.RecordDate,
			&rec.PickedQty, &rec.RemainingQty, &rec.CreatedAt, &rec.UpdatedAt, &rec.ProductName)
		if err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
