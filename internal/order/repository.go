// AngelaMos | 2026
// repository.go

package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/rossoverde/supporters/internal/core"
)

// ErrPriceChanged is returned when an item's unit price no longer matches
// the catalog.
var ErrPriceChanged = errors.New("price changed")

// TxHook runs inside the order transaction after the rows are written.
type TxHook func(ctx context.Context, tx core.DBTX, o *Order) error

type Repository interface {
	Create(ctx context.Context, o NewOrder, hook TxHook) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	GetOwned(ctx context.Context, id, userID string) (*Order, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)
	Summary(ctx context.Context, since time.Time) (Summary, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, user_id, status, total_amount, currency,
	payment_method, payment_id, shipping_address, billing_address, notes,
	created_at, updated_at`

func (r *repository) Create(
	ctx context.Context,
	o NewOrder,
	hook TxHook,
) (*Order, error) {
	var created Order

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := verifyPrices(ctx, tx, o.Items); err != nil {
			return err
		}

		query := `
			INSERT INTO orders (
				user_id, status, total_amount, currency, payment_method,
				shipping_address, billing_address, notes
			)
			VALUES ($1, 'pending', $2, $3, $4, $5, $6, $7)
			RETURNING ` + orderColumns

		if err := tx.GetContext(ctx, &created, query,
			o.UserID,
			o.TotalAmount,
			o.Currency,
			o.PaymentMethod,
			o.ShippingAddress,
			o.BillingAddress,
			o.Notes,
		); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		itemQuery := `
			INSERT INTO order_items (
				order_id, product_id, membership_tier_id, quantity,
				unit_price, total_price
			)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`

		for _, it := range o.Items {
			var id string
			if err := tx.GetContext(ctx, &id, itemQuery,
				created.ID,
				it.ProductID,
				it.MembershipTierID,
				it.Quantity,
				it.UnitPrice,
				it.TotalPrice,
			); err != nil {
				if core.IsForeignKeyViolation(err) {
					return fmt.Errorf("insert order item: %w", core.ErrNotFound)
				}
				return fmt.Errorf("insert order item: %w", err)
			}
		}

		items, err := loadItems(ctx, tx, []string{created.ID})
		if err != nil {
			return err
		}
		created.Items = items[created.ID]

		if hook != nil {
			return hook(ctx, tx, &created)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return &created, nil
}

// verifyPrices checks each line against the live catalog row. Inactive or
// unknown products and tiers are reported as not found.
func verifyPrices(ctx context.Context, tx core.DBTX, items []NewItem) error {
	for _, it := range items {
		var (
			price float64
			err   error
		)
		switch {
		case it.ProductID != nil:
			err = tx.GetContext(ctx, &price,
				`SELECT price FROM products WHERE id = $1 AND is_active = TRUE`,
				*it.ProductID)
		case it.MembershipTierID != nil:
			err = tx.GetContext(ctx, &price,
				`SELECT price FROM membership_tiers WHERE id = $1 AND is_active = TRUE`,
				*it.MembershipTierID)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("verify price: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("verify price: %w", err)
		}
		if cents(price) != cents(it.UnitPrice) {
			return fmt.Errorf("verify price: %w", ErrPriceChanged)
		}
	}
	return nil
}

func loadItems(
	ctx context.Context,
	db core.DBTX,
	orderIDs []string,
) (map[string][]Item, error) {
	query := `
		SELECT i.id, i.order_id, i.product_id, i.membership_tier_id,
		       i.quantity, i.unit_price, i.total_price, i.created_at,
		       COALESCE(p.name_en, t.name_en) AS name_en,
		       COALESCE(p.name_fr, t.name_fr) AS name_fr,
		       COALESCE(p.name_ar, t.name_ar) AS name_ar
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id
		LEFT JOIN membership_tiers t ON t.id = i.membership_tier_id
		WHERE i.order_id = ANY($1)
		ORDER BY i.created_at ASC`

	var items []Item
	if err := db.SelectContext(ctx, &items, query, pq.Array(orderIDs)); err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}

	byOrder := make(map[string][]Item, len(orderIDs))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	return byOrder, nil
}

func (r *repository) withItems(ctx context.Context, orders []Order) ([]Order, error) {
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
	}

	items, err := loadItems(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items = items[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []Item{}
		}
	}
	return orders, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`

	orders := []Order{}
	if err := r.db.SelectContext(ctx, &orders, query, userID); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return r.withItems(ctx, orders)
}

func (r *repository) ListAll(ctx context.Context) ([]Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	orders := []Order{}
	if err := r.db.SelectContext(ctx, &orders, query); err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	return r.withItems(ctx, orders)
}

func (r *repository) GetOwned(ctx context.Context, id, userID string) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND user_id = $2`

	var o Order
	err := r.db.GetContext(ctx, &o, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get order: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	withItems, err := r.withItems(ctx, []Order{o})
	if err != nil {
		return nil, err
	}
	return &withItems[0], nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id string,
	req UpdateStatusRequest,
) (*Order, error) {
	a := core.NewAssignments(id)
	a.Add("status", req.Status)
	core.SetIf(a, "payment_id", req.PaymentID)
	a.Raw("updated_at = NOW()")

	query := `UPDATE orders SET ` + a.Clause() +
		` WHERE id = $1 RETURNING ` + orderColumns

	var o Order
	err := r.db.GetContext(ctx, &o, query, a.Args()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update order: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	withItems, err := r.withItems(ctx, []Order{o})
	if err != nil {
		return nil, err
	}
	return &withItems[0], nil
}

func (r *repository) Summary(ctx context.Context, since time.Time) (Summary, error) {
	query := `
		SELECT COUNT(*) AS orders,
		       COALESCE(SUM(total_amount) FILTER (WHERE status = 'completed'), 0) AS revenue
		FROM orders
		WHERE created_at >= $1`

	var s Summary
	if err := r.db.GetContext(ctx, &s, query, since); err != nil {
		return Summary{}, fmt.Errorf("order summary: %w", err)
	}
	return s, nil
}
