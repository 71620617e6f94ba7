package repositories

import (
	"context"
	"errors"
	"log"
	"time"

	"dairy-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VerificationRepository struct {
	DB *pgxpool.Pool
}

func NewVerificationRepository(db *pgxpool.Pool) *VerificationRepository {
	return &VerificationRepository{DB: db}
}

// SubmitVerification applies one reconciliation submission for the given day
// in a single transaction. Every line for a day shares one verification ID:
// the first submission of the day mints a UUID, later submissions reuse it,
// so re-runs upsert instead of accumulating.
//
// Each delivery line runs inside its own savepoint. A line that violates a
// constraint rolls back alone and is counted as failed; the rest of the
// submission still commits.
func (r *VerificationRepository) SubmitVerification(ctx context.Context, day time.Time, req *models.SubmitVerificationRequest) (*models.VerificationResult, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// One verification ID per day. Two concurrent first submissions would
	// each see an empty day and mint their own ID, so submissions for the
	// same day serialize on a transaction-scoped advisory lock held until
	// commit.
	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock($1, $2)`, verificationLockClass, epochDay(day)); err != nil {
		return nil, err
	}

	verificationID, err := r.verificationIDForDay(ctx, tx, day)
	if err != nil {
		return nil, err
	}

	result := &models.VerificationResult{VerificationID: verificationID}

	for _, line := range req.Deliveries {
		if err := r.upsertLine(ctx, tx, verificationID, day, req.VerifiedBy, line); err != nil {
			log.Printf("verification %s: line worker=%d customer=%d product=%d failed: %v",
				verificationID, line.WorkerID, line.CustomerID, line.ProductID, err)
			result.FailedDeliveries++
			continue
		}
		result.ProcessedDeliveries++
	}

	// Stamp the day's raw deliveries for the verified products so the
	// recorder's rows show which run certified them.
	productIDs := make(map[int]struct{}, len(req.Deliveries))
	for _, line := range req.Deliveries {
		productIDs[line.ProductID] = struct{}{}
	}
	for productID := range productIDs {
		tag, err := tx.Exec(ctx,
			`UPDATE deliveries SET verification_id=$1
			 WHERE product_id=$2 AND delivery_date=$3 AND verification_id IS DISTINCT FROM $1`,
			verificationID, productID, day)
		if err != nil {
			return nil, err
		}
		result.UpdatedDeliveryRecords += int(tag.RowsAffected())
	}

	for _, cash := range req.CashData {
		tag, err := tx.Exec(ctx,
			`UPDATE cash_in_hand SET actual_amount=$1, updated_at=NOW()
			 WHERE worker_id=$2 AND record_date=$3`,
			cash.ActualAmount, cash.WorkerID, day)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			// No report exists for this worker today; skipping beats
			// inventing a reported figure.
			result.SkippedCashRecords++
			continue
		}
		result.UpdatedCashRecords++
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// Advisory lock class for per-day reconciliation serialization.
const verificationLockClass = 7201

// epochDay maps a calendar day to a stable advisory lock key.
func epochDay(day time.Time) int32 {
	return int32(day.Unix() / 86400)
}

// verificationIDForDay returns the day's existing verification ID, or mints
// a new one when this is the day's first submission. The caller must hold
// the day's advisory lock; without it two first submissions could both see
// an empty day and mint distinct IDs.
func (r *VerificationRepository) verificationIDForDay(ctx context.Context, tx pgx.Tx, day time.Time) (string, error) {
	var id string
	err := tx.QueryRow(ctx,
		`SELECT verification_id FROM verified_deliveries WHERE delivered_on=$1 LIMIT 1`, day,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.New().String(), nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// upsertLine writes one verified line under a savepoint so its failure
// cannot poison the enclosing transaction.
func (r *VerificationRepository) upsertLine(ctx context.Context, tx pgx.Tx, verificationID string, day time.Time, verifiedBy string, line models.VerificationLine) error {
	sp, err := tx.Begin(ctx)
	if err != nil {
		return err
	}

	_, err = sp.Exec(ctx,
		`INSERT INTO verified_deliveries(verification_id, worker_id, customer_id, product_id,
		        product_name, delivered_qty, bill, is_collected, delivered_on, verified_by)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (verification_id, worker_id, customer_id, product_id)
		 DO UPDATE SET product_name=EXCLUDED.product_name,
		               delivered_qty=EXCLUDED.delivered_qty,
		               bill=EXCLUDED.bill,
		               is_collected=EXCLUDED.is_collected,
		               verified_by=EXCLUDED.verified_by,
		               verified_at=NOW()`,
		verificationID, line.WorkerID, line.CustomerID, line.ProductID,
		line.ProductName, line.DeliveredQty, line.Bill, line.IsCollected, day, verifiedBy)
	if err != nil {
		sp.Rollback(ctx)
		return err
	}
	return sp.Commit(ctx)
}

func (r *VerificationRepository) ListForDay(ctx context.Context, day time.Time) ([]*models.VerifiedDelivery, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, verification_id, worker_id, customer_id, product_id, product_name,
		        delivered_qty, bill, is_collected, billed, bill_id, delivered_on, verified_by, verified_at
		 FROM verified_deliveries WHERE delivered_on=$1
		 ORDER BY worker_id, customer_id, product_id`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVerifiedDeliveries(rows)
}

func (r *VerificationRepository) ListForCustomerRange(ctx context.Context, customerID int, start, end time.Time) ([]*models.VerifiedDelivery, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, verification_id, worker_id, customer_id, product_id, product_name,
		        delivered_qty, bill, is_collected, billed, bill_id, delivered_on, verified_by, verified_at
		 FROM verified_deliveries
		 WHERE customer_id=$1 AND delivered_on BETWEEN $2 AND $3
		 ORDER BY delivered_on, product_name`, customerID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVerifiedDeliveries(rows)
}

func scanVerifiedDeliveries(rows pgx.Rows) ([]*models.VerifiedDelivery, error) {
	var records []*models.VerifiedDelivery
	for rows.Next() {
		var v models.VerifiedDelivery
		err := rows.Scan(&v.ID, &v.VerificationID, &v.WorkerID, &v.CustomerID, &v.ProductID,
			&v.ProductName, &v.DeliveredQty, &v.Bill, &v.IsCollected, &v.Billed, &v.BillID,
			&v.DeliveredOn, &v.VerifiedBy, &v.VerifiedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, &v)
	}
	return records, rows.Err()
}
