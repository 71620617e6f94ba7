package repositories

import (
	"context"
	"errors"
	"time"

	"dairy-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CashRepository struct {
	DB *pgxpool.Pool
}

func NewCashRepository(db *pgxpool.Pool) *CashRepository {
	return &CashRepository{DB: db}
}

// UpsertReported sets the worker's self-reported cash for the day. Repeated
// calls overwrite the reported figure; the admin-verified actual_amount is
// never touched here.
func (r *CashRepository) UpsertReported(ctx context.Context, workerID int, day time.Time, amount float64) (*models.CashInHandRecord, error) {
	var rec models.CashInHandRecord
	err := r.DB.QueryRow(ctx,
		`INSERT INTO cash_in_hand(worker_id, record_date, reported_amount)
		 VALUES($1, $2, $3)
		 ON CONFLICT (worker_id, record_date)
		 DO UPDATE SET reported_amount=EXCLUDED.reported_amount, updated_at=NOW()
		 RETURNING id, worker_id, record_date, reported_amount, actual_amount, created_at, updated_at`,
		workerID, day, amount,
	).Scan(&rec.ID, &rec.WorkerID, &rec.RecordDate, &rec.ReportedAmount, &rec.ActualAmount,
		&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *CashRepository) GetForWorkerDay(ctx context.Context, workerID int, day time.Time) (*models.CashInHandRecord, error) {
	var rec models.CashInHandRecord
	err := r.DB.QueryRow(ctx,
		`SELECT id, worker_id, record_date, reported_amount, actual_amount, created_at, updated_at
		 FROM cash_in_hand WHERE worker_id=$1 AND record_date=$2`,
		workerID, day,
	).Scan(&rec.ID, &rec.WorkerID, &rec.RecordDate, &rec.ReportedAmount, &rec.ActualAmount,
		&rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *CashRepository) ListForDay(ctx context.Context, day time.Time) ([]*models.CashInHandRecord, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, worker_id, record_date, reported_amount, actual_amount, created_at, updated_at
		 FROM cash_in_hand WHERE record_date=$1 ORDER BY worker_id`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.CashInHandRecord
	for rows.Next() {
		var rec models.CashInHandRecord
		err := rows.Scan(&rec.ID, &rec.WorkerID, &rec.RecordDate, &rec.ReportedAmount,
			&rec.ActualAmount, &rec.CreatedAt, &rec.UpdatedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
