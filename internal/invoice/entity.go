// AngelaMos | 2026
// entity.go

package invoice

import (
	"fmt"
	"time"

	"github.com/rossoverde/supporters/internal/core"
)

type Invoice struct {
	ID            string     `db:"id"             json:"id"`
	OrderID       string     `db:"order_id"       json:"order_id"`
	UserID        string     `db:"user_id"        json:"user_id"`
	InvoiceNumber string     `db:"invoice_number" json:"invoice_number"`
	IssueDate     time.Time  `db:"issue_date"     json:"issue_date"`
	DueDate       *time.Time `db:"due_date"       json:"due_date"`
	TotalAmount   float64    `db:"total_amount"   json:"total_amount"`
	Currency      string     `db:"currency"       json:"currency"`
	Status        string     `db:"status"         json:"status"`
	PDFURL        *string    `db:"pdf_url"        json:"pdf_url"`
	CreatedAt     time.Time  `db:"created_at"     json:"created_at"`
}

const StatusIssued = "issued"

// NewNumber builds INV-<unix milliseconds>-<9 base36 characters>.
func NewNumber(now time.Time) (string, error) {
	suffix, err := core.RandomBase36(9)
	if err != nil {
		return "", fmt.Errorf("invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%d-%s", now.UnixMilli(), suffix), nil
}
