// AngelaMos | 2026
// repository.go

package invoice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rossoverde/supporters/internal/core"
)

type Repository interface {
	Create(ctx context.Context, inv *Invoice) (*Invoice, error)
	ListByUser(ctx context.Context, userID string) ([]Invoice, error)
	GetOwned(ctx context.Context, id, userID string) (*Invoice, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const invoiceColumns = `id, order_id, user_id, invoice_number, issue_date,
	due_date, total_amount, currency, status, pdf_url, created_at`

func (r *repository) Create(ctx context.Context, inv *Invoice) (*Invoice, error) {
	query := `
		INSERT INTO invoices (
			order_id, user_id, invoice_number, issue_date, due_date,
			total_amount, currency, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + invoiceColumns

	var out Invoice
	err := r.db.GetContext(ctx, &out, query,
		inv.OrderID,
		inv.UserID,
		inv.InvoiceNumber,
		inv.IssueDate,
		inv.DueDate,
		inv.TotalAmount,
		inv.Currency,
		inv.Status,
	)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return nil, fmt.Errorf("create invoice: %w", core.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return &out, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE user_id = $1
		ORDER BY issue_date DESC`

	out := []Invoice{}
	if err := r.db.SelectContext(ctx, &out, query, userID); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return out, nil
}

func (r *repository) GetOwned(ctx context.Context, id, userID string) (*Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 AND user_id = $2`

	var inv Invoice
	err := r.db.GetContext(ctx, &inv, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get invoice: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}
