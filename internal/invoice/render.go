// AngelaMos | 2026
// render.go

package invoice

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rossoverde/supporters/internal/i18n"
	"github.com/rossoverde/supporters/internal/order"
)

type labels struct {
	title, number, issued, order, item, qty, unit, total string
}

func labelsFor(lang i18n.Language) labels {
	return labels{
		title:  i18n.Pick(lang, "INVOICE", "FACTURE", "فاتورة"),
		number: i18n.Pick(lang, "Number", "Numéro", "الرقم"),
		issued: i18n.Pick(lang, "Issued", "Émise le", "تاريخ الإصدار"),
		order:  i18n.Pick(lang, "Order", "Commande", "الطلب"),
		item:   i18n.Pick(lang, "Item", "Article", "المنتج"),
		qty:    i18n.Pick(lang, "Qty", "Qté", "الكمية"),
		unit:   i18n.Pick(lang, "Unit price", "Prix unitaire", "سعر الوحدة"),
		total:  i18n.Pick(lang, "Total", "Total", "المجموع"),
	}
}

// Render writes a plain-text invoice. o may be nil when the order has
// gone; the invoice total still stands on its own.
func Render(w io.Writer, lang i18n.Language, inv *Invoice, o *order.Order) error {
	l := labelsFor(lang)

	if _, err := fmt.Fprintf(w, "RossoVerde - %s\n\n%s: %s\n%s: %s\n%s: %s\n\n",
		l.title,
		l.number, inv.InvoiceNumber,
		l.issued, inv.IssueDate.Format("2006-01-02"),
		l.order, inv.OrderID,
	); err != nil {
		return fmt.Errorf("render invoice: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if o != nil && len(o.Items) > 0 {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.item, l.qty, l.unit, l.total)
		for _, it := range o.Items {
			fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\n",
				it.Name(lang), it.Quantity, it.UnitPrice, it.TotalPrice)
		}
		fmt.Fprintln(tw)
	}
	fmt.Fprintf(tw, "%s\t\t\t%.2f %s\n", l.total, inv.TotalAmount, inv.Currency)

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("render invoice: %w", err)
	}
	return nil
}
