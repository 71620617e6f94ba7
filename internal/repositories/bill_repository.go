package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dairy-backend/internal/models"
	"dairy-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BillRepository struct {
	DB *pgxpool.Pool
}

func NewBillRepository(db *pgxpool.Pool) *BillRepository {
	return &BillRepository{DB: db}
}

// GenerateBill creates a bill over the customer's verified, unbilled
// deliveries in [start, end]. Selecting the rows FOR UPDATE, inserting the
// bill and flagging the rows billed all happen in one transaction, so two
// concurrent generations over overlapping ranges cannot bill the same
// delivery twice: the second waits on the row locks and then sees billed
// rows, or finds nothing left and gets ErrNoUnbilledDeliveries.
func (r *BillRepository) GenerateBill(ctx context.Context, bill *models.Bill) ([]*models.VerifiedDelivery, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		`SELECT id, verification_id, worker_id, customer_id, product_id, product_name,
		        delivered_qty, bill, is_collected, billed, bill_id, delivered_on, verified_by, verified_at
		 FROM verified_deliveries
		 WHERE customer_id=$1 AND delivered_on BETWEEN $2 AND $3 AND billed=FALSE
		 ORDER BY delivered_on, product_name
		 FOR UPDATE`, bill.CustomerID, bill.StartDate, bill.EndDate)
	if err != nil {
		return nil, err
	}
	deliveries, err := scanVerifiedDeliveries(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}
	if len(deliveries) == 0 {
		return nil, models.ErrNoUnbilledDeliveries
	}

	var total float64
	ids := make([]int, 0, len(deliveries))
	for _, d := range deliveries {
		total += d.Bill
		ids = append(ids, d.ID)
	}
	bill.TotalAmount = total
	bill.GrandTotal = total + bill.DeliveryCharges

	number, err := r.nextBillNumber(ctx, tx, timeutil.Now())
	if err != nil {
		return nil, err
	}
	bill.BillNumber = number

	err = tx.QueryRow(ctx,
		`INSERT INTO bills(bill_number, customer_id, start_date, end_date, total_amount,
		        delivery_charges, grand_total, created_by)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, is_paid, created_at, updated_at`,
		bill.BillNumber, bill.CustomerID, bill.StartDate, bill.EndDate, bill.TotalAmount,
		bill.DeliveryCharges, bill.GrandTotal, bill.CreatedBy,
	).Scan(&bill.ID, &bill.IsPaid, &bill.CreatedAt, &bill.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert bill: %w", mapPgError(err))
	}

	tag, err := tx.Exec(ctx,
		`UPDATE verified_deliveries SET billed=TRUE, bill_id=$1 WHERE id=ANY($2)`,
		bill.ID, ids)
	if err != nil {
		return nil, err
	}
	if int(tag.RowsAffected()) != len(ids) {
		return nil, fmt.Errorf("billed %d of %d selected deliveries: %w",
			tag.RowsAffected(), len(ids), models.ErrConflict)
	}

	for _, d := range deliveries {
		d.Billed = true
		id := bill.ID
		d.BillID = &id
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return deliveries, nil
}

// nextBillNumber mints BILL-<year>-<n> where n counts this year's bills.
// The caller's transaction holds the verified-delivery row locks, and the
// unique constraint on bill_number catches a concurrent mint of the same n.
func (r *BillRepository) nextBillNumber(ctx context.Context, tx pgx.Tx, at time.Time) (string, error) {
	year := at.Year()
	var count int
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bills WHERE EXTRACT(YEAR FROM created_at)=$1`, year,
	).Scan(&count)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("BILL-%d-%d", year, count+1), nil
}

// SelectUnbilled is the read-only preview of what GenerateBill would consume.
func (r *BillRepository) SelectUnbilled(ctx context.Context, customerID int, start, end time.Time) ([]*models.VerifiedDelivery, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, verification_id, worker_id, customer_id, product_id, product_name,
		        delivered_qty, bill, is_collected, billed, bill_id, delivered_on, verified_by, verified_at
		 FROM verified_deliveries
		 WHERE customer_id=$1 AND delivered_on BETWEEN $2 AND $3 AND billed=FALSE
		 ORDER BY delivered_on, product_name`, customerID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVerifiedDeliveries(rows)
}

func (r *BillRepository) Get(ctx context.Context, id int) (*models.Bill, error) {
	return r.getBy(ctx, `b.id=$1`, id)
}

func (r *BillRepository) GetByNumber(ctx context.Context, number string) (*models.Bill, error) {
	return r.getBy(ctx, `b.bill_number=$1`, number)
}

func (r *BillRepository) getBy(ctx context.Context, where string, arg any) (*models.Bill, error) {
	var b models.Bill
	err := r.DB.QueryRow(ctx,
		`SELECT b.id, b.bill_number, b.customer_id, c.name, b.start_date, b.end_date,
		        b.total_amount, b.delivery_charges, b.grand_total, b.is_paid, b.file_path,
		        b.created_by, b.created_at, b.updated_at
		 FROM bills b JOIN customers c ON c.id=b.customer_id
		 WHERE `+where, arg,
	).Scan(&b.ID, &b.BillNumber, &b.CustomerID, &b.CustomerName, &b.StartDate, &b.EndDate,
		&b.TotalAmount, &b.DeliveryCharges, &b.GrandTotal, &b.IsPaid, &b.FilePath,
		&b.CreatedBy, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BillRepository) List(ctx context.Context) ([]*models.Bill, error) {
	return r.listWhere(ctx, ``, nil)
}

func (r *BillRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Bill, error) {
	return r.listWhere(ctx, `WHERE b.customer_id=$1`, []any{customerID})
}

func (r *BillRepository) listWhere(ctx context.Context, where string, args []any) ([]*models.Bill, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT b.id, b.bill_number, b.customer_id, c.name, b.start_date, b.end_date,
		        b.total_amount, b.delivery_charges, b.grand_total, b.is_paid, b.file_path,
		        b.created_by, b.created_at, b.updated_at
		 FROM bills b JOIN customers c ON c.id=b.customer_id
		 `+where+` ORDER BY b.created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		var b models.Bill
		err := rows.Scan(&b.ID, &b.BillNumber, &b.CustomerID, &b.CustomerName, &b.StartDate,
			&b.EndDate, &b.TotalAmount, &b.DeliveryCharges, &b.GrandTotal, &b.IsPaid,
			&b.FilePath, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, err
		}
		bills = append(bills, &b)
	}
	return bills, rows.Err()
}

// MarkPaid flags the bill paid and marks collection on the verified rows the
// bill consumed and on their payment rows, in one transaction.
func (r *BillRepository) MarkPaid(ctx context.Context, billID int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE bills SET is_paid=TRUE, updated_at=NOW() WHERE id=$1`, billID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	_, err = tx.Exec(ctx,
		`UPDATE payments p SET is_collected=TRUE
		 FROM verified_deliveries v
		 WHERE v.bill_id=$1
		   AND p.customer_id=v.customer_id
		   AND p.product_id=v.product_id
		   AND p.payment_date=v.delivered_on`, billID)
	if err != nil {
		return err
	}

	// The daily summary reads collection off the verified rows, so they
	// must flip together with the payments.
	_, err = tx.Exec(ctx,
		`UPDATE verified_deliveries SET is_collected=TRUE WHERE bill_id=$1`, billID)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *BillRepository) UpdateFilePath(ctx context.Context, billID int, path string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE bills SET file_path=$1, updated_at=NOW() WHERE id=$2`, path, billID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
