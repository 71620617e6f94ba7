package repositories

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"dairy-backend/internal/models"
	"dairy-backend/internal/timeutil"

	"github.com/jackc/pgx/v5/pgxpool"
)

// These tests exercise the real constraint-backed invariants and need a
// migrated Postgres. Set INTEGRATION_TESTS=1 and DATABASE_URL to run them.
func integrationPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests")
	}
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Fatal("DATABASE_URL is required for integration tests")
	}
	pool, err := pgxpool.New(context.Background(), url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func seedFixtures(t *testing.T, ctx context.Context, pool *pgxpool.Pool) (workerID, customerID, productID int) {
	t.Helper()
	err := pool.QueryRow(ctx,
		`INSERT INTO users(name, email, password_hash, role) VALUES('it-worker', 'it-'||random()::text||'@test', 'x', 'worker') RETURNING id`,
	).Scan(&workerID)
	if err != nil {
		t.Fatalf("seed worker: %v", err)
	}
	err = pool.QueryRow(ctx,
		`INSERT INTO customers(name, phone, address) VALUES('it-customer', 'it-'||random()::text, 'x') RETURNING id`,
	).Scan(&customerID)
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	err = pool.QueryRow(ctx,
		`INSERT INTO products(name, unit, price) VALUES('it-product-'||random()::text, 'ltr', 30) RETURNING id`,
	).Scan(&productID)
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return workerID, customerID, productID
}

func TestDeliveryInsertIdempotent(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()
	repo := NewDeliveryRepository(pool)
	workerID, customerID, productID := seedFixtures(t, ctx, pool)

	now := timeutil.Now()
	build := func() (*models.Delivery, *models.Payment) {
		return &models.Delivery{
				WorkerID:     workerID,
				CustomerID:   customerID,
				ProductID:    productID,
				Quantity:     2,
				DeliveredAt:  now,
				DeliveryDate: timeutil.DateOf(now),
				ActorLogin:   "it",
			}, &models.Payment{
				CustomerID:  customerID,
				ProductID:   productID,
				BillAmount:  60,
				PaymentDate: timeutil.DateOf(now),
			}
	}

	d1, p1 := build()
	created, err := repo.InsertIdempotent(ctx, d1, p1)
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if !created {
		t.Fatal("first insert reported duplicate")
	}

	d2, p2 := build()
	created, err = repo.InsertIdempotent(ctx, d2, p2)
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if created {
		t.Fatal("second insert for same customer/product/day must be absorbed")
	}

	var count int
	if err := pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM deliveries WHERE customer_id=$1 AND product_id=$2 AND delivery_date=$3`,
		customerID, productID, d1.DeliveryDate).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("deliveries = %d, want 1", count)
	}
}

func TestVerificationIDStableAcrossSubmissions(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()
	repo := NewVerificationRepository(pool)
	workerID, customerID, productID := seedFixtures(t, ctx, pool)

	day := timeutil.DateOf(timeutil.Now())
	submit := func(qty float64) *models.VerificationResult {
		res, err := repo.SubmitVerification(ctx, day, &models.SubmitVerificationRequest{
			Deliveries: []models.VerificationLine{{
				WorkerID:     workerID,
				CustomerID:   customerID,
				ProductID:    productID,
				ProductName:  "it-product",
				DeliveredQty: qty,
				Bill:         qty * 30,
			}},
			VerifiedBy: "it",
		})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		return res
	}

	first := submit(2)
	second := submit(3)
	if first.VerificationID != second.VerificationID {
		t.Errorf("verification id changed across same-day submissions: %s vs %s",
			first.VerificationID, second.VerificationID)
	}

	var count int
	var qty float64
	err := pool.QueryRow(ctx,
		`SELECT COUNT(*), MAX(delivered_qty) FROM verified_deliveries
		 WHERE verification_id=$1 AND customer_id=$2 AND product_id=$3`,
		first.VerificationID, customerID, productID).Scan(&count, &qty)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("verified lines = %d, want upsert in place", count)
	}
	if qty != 3 {
		t.Errorf("delivered_qty = %v, want latest submission to win", qty)
	}
}

func TestVerificationIDSingleUnderConcurrentFirstSubmissions(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()
	repo := NewVerificationRepository(pool)

	// A day no other test touches, so both submissions are the day's first.
	day := timeutil.DateOf(timeutil.Now()).AddDate(-3, 0, 0)

	results := make([]*models.VerificationResult, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		workerID, customerID, productID := seedFixtures(t, ctx, pool)
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = repo.SubmitVerification(ctx, day, &models.SubmitVerificationRequest{
				Deliveries: []models.VerificationLine{{
					WorkerID:     workerID,
					CustomerID:   customerID,
					ProductID:    productID,
					ProductName:  "it-product",
					DeliveredQty: 1,
					Bill:         30,
				}},
				VerifiedBy: "it",
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	if results[0].VerificationID != results[1].VerificationID {
		t.Errorf("concurrent first submissions minted distinct ids: %s vs %s",
			results[0].VerificationID, results[1].VerificationID)
	}

	var distinct int
	if err := pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT verification_id) FROM verified_deliveries WHERE delivered_on=$1`,
		day).Scan(&distinct); err != nil {
		t.Fatalf("count: %v", err)
	}
	if distinct != 1 {
		t.Errorf("day split across %d verification ids, want 1", distinct)
	}
}

func TestMarkPaidMarksVerifiedRowsCollected(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()
	verifications := NewVerificationRepository(pool)
	bills := NewBillRepository(pool)
	workerID, customerID, productID := seedFixtures(t, ctx, pool)

	day := timeutil.DateOf(timeutil.Now()).AddDate(-1, 0, 0)
	_, err := verifications.SubmitVerification(ctx, day, &models.SubmitVerificationRequest{
		Deliveries: []models.VerificationLine{{
			WorkerID:     workerID,
			CustomerID:   customerID,
			ProductID:    productID,
			ProductName:  "it-product",
			DeliveredQty: 2,
			Bill:         60,
		}},
		VerifiedBy: "it",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	bill := &models.Bill{
		CustomerID: customerID,
		StartDate:  day,
		EndDate:    day,
		CreatedBy:  "it",
	}
	if _, err := bills.GenerateBill(ctx, bill); err != nil {
		t.Fatalf("generate bill: %v", err)
	}
	if err := bills.MarkPaid(ctx, bill.ID); err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	var collected bool
	err = pool.QueryRow(ctx,
		`SELECT bool_and(is_collected) FROM verified_deliveries WHERE bill_id=$1`,
		bill.ID).Scan(&collected)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !collected {
		t.Error("verified rows of a paid bill must be collected")
	}
}

func TestPickUpdateBelowRemainingRejected(t *testing.T) {
	pool := integrationPool(t)
	ctx := context.Background()
	repo := NewWorkerInventoryRepository(pool)
	workerID, _, productID := seedFixtures(t, ctx, pool)

	day := timeutil.DateOf(timeutil.Now())
	pick := func(qty float64) error {
		_, err := repo.UpsertPickedBatch(ctx, workerID, day,
			[]models.WorkerStockItem{{ProductID: productID, Quantity: qty}})
		return err
	}

	if err := pick(50); err != nil {
		t.Fatalf("initial pick: %v", err)
	}
	if _, err := repo.SetRemainingBatch(ctx, workerID, day,
		[]models.WorkerStockItem{{ProductID: productID, Quantity: 38}}); err != nil {
		t.Fatalf("remaining: %v", err)
	}

	if err := pick(30); !errors.Is(err, models.ErrValidation) {
		t.Errorf("pick below recorded remaining: err = %v, want validation error", err)
	}

	var picked, remaining float64
	err := pool.QueryRow(ctx,
		`SELECT picked_qty, remaining_qty FROM worker_inventory
		 WHERE worker_id=$1 AND product_id=$2 AND record_date=$3`,
		workerID, productID, day).Scan(&picked, &remaining)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if picked != 50 || remaining != 38 {
		t.Errorf("row = picked %v remaining %v, want 50/38 untouched", picked, remaining)
	}

	// Correcting the pick to anything at or above remaining still works.
	if err := pick(40); err != nil {
		t.Errorf("pick above remaining rejected: %v", err)
	}
}
