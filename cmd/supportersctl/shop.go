// AngelaMos | 2026
// shop.go

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rossoverde/supporters/internal/client"
	"github.com/rossoverde/supporters/internal/order"
)

func newTiersCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "List the membership tiers on sale",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sdk, err := opts.open()
			if err != nil {
				return err
			}
			lang := sdk.Preferences.Language()

			tiers := sdk.Tiers()
			if err := tiers.Fetch(cmd.Context()); err != nil {
				return errors.New(client.Message(err))
			}

			tw := newTable(cmd)
			fmt.Fprintln(tw, "ID\tNAME\tPRICE")
			for _, t := range tiers.Data() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", t.ID, t.Name(lang), money(t.Price, t.Currency))
			}
			return tw.Flush()
		},
	}
}

func newProductsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the products in the store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sdk, err := opts.open()
			if err != nil {
				return err
			}
			lang := sdk.Preferences.Language()

			products := sdk.Products()
			if err := products.Fetch(cmd.Context()); err != nil {
				return errors.New(client.Message(err))
			}

			tw := newTable(cmd)
			fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK")
			for _, p := range products.Data() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n",
					p.ID, p.Name(lang), money(p.Price, p.Currency), p.StockQuantity)
			}
			return tw.Flush()
		},
	}
}

func newOrdersCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List or place orders",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List your orders",
			RunE: func(cmd *cobra.Command, _ []string) error {
				sdk, err := opts.open()
				if err != nil {
					return err
				}
				if err := requireSession(sdk); err != nil {
					return err
				}

				orders := sdk.Orders()
				if err := orders.Fetch(cmd.Context()); err != nil {
					return errors.New(client.Message(err))
				}

				tw := newTable(cmd)
				fmt.Fprintln(tw, "ID\tSTATUS\tTOTAL\tITEMS\tPLACED")
				for _, o := range orders.Data() {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
						o.ID, o.Status, money(o.TotalAmount, o.Currency), len(o.Items),
						o.CreatedAt.Format("2006-01-02"))
				}
				return tw.Flush()
			},
		},
		newOrderCreateCommand(opts),
	)

	return cmd
}

func newOrderCreateCommand(opts *options) *cobra.Command {
	var products, tiers []string
	var address, notes string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Place an order for products and membership tiers",
		Long: `Place an order. Lines are given as <id>[:quantity].

Examples:
  supportersctl orders create --product 3f0c...:2 --tier 91ab...`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sdk, err := opts.open()
			if err != nil {
				return err
			}
			if err := requireSession(sdk); err != nil {
				return err
			}
			if len(products) == 0 && len(tiers) == 0 {
				return errors.New("nothing to order, pass --product or --tier")
			}

			req, err := priceOrder(cmd, sdk, products, tiers)
			if err != nil {
				return err
			}
			if address != "" {
				req.ShippingAddress = &address
			}
			if notes != "" {
				req.Notes = &notes
			}

			res := sdk.Orders().Create(cmd.Context(), req)
			if !res.OK() {
				return errors.New(res.Error)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "order %s placed, total %s\n",
				res.Data.ID, money(res.Data.TotalAmount, res.Data.Currency))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&products, "product", nil, "product line as <id>[:quantity]")
	cmd.Flags().StringSliceVar(&tiers, "tier", nil, "membership tier line as <id>[:quantity]")
	cmd.Flags().StringVar(&address, "address", "", "shipping address")
	cmd.Flags().StringVar(&notes, "notes", "", "notes for the club shop")

	return cmd
}

// priceOrder fills each line with the catalogue price the server will check
// the order against.
func priceOrder(
	cmd *cobra.Command,
	sdk *client.SDK,
	productLines, tierLines []string,
) (order.CreateRequest, error) {
	req := order.CreateRequest{}

	if len(productLines) > 0 {
		products := sdk.Products()
		if err := products.Fetch(cmd.Context()); err != nil {
			return req, errors.New(client.Message(err))
		}
		prices := map[string]float64{}
		for _, p := range products.Data() {
			prices[p.ID] = p.Price
		}

		for _, line := range productLines {
			id, qty, err := parseLine(line)
			if err != nil {
				return req, err
			}
			price, ok := prices[id]
			if !ok {
				return req, fmt.Errorf("unknown product %s", id)
			}
			req.Items = append(req.Items, order.ItemRequest{ProductID: &id, Quantity: qty, UnitPrice: price})
		}
	}

	if len(tierLines) > 0 {
		tiers := sdk.Tiers()
		if err := tiers.Fetch(cmd.Context()); err != nil {
			return req, errors.New(client.Message(err))
		}
		prices := map[string]float64{}
		for _, t := range tiers.Data() {
			prices[t.ID] = t.Price
		}

		for _, line := range tierLines {
			id, qty, err := parseLine(line)
			if err != nil {
				return req, err
			}
			price, ok := prices[id]
			if !ok {
				return req, fmt.Errorf("unknown membership tier %s", id)
			}
			req.Items = append(req.Items, order.ItemRequest{MembershipTierID: &id, Quantity: qty, UnitPrice: price})
		}
	}

	return req, nil
}

func parseLine(line string) (string, int, error) {
	id, qtyText, found := strings.Cut(line, ":")
	if !found {
		return id, 1, nil
	}
	qty, err := strconv.Atoi(qtyText)
	if err != nil || qty < 1 {
		return "", 0, fmt.Errorf("invalid quantity in %q", line)
	}
	return id, qty, nil
}

func newInvoicesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "invoices",
		Short: "List your invoices",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sdk, err := opts.open()
			if err != nil {
				return err
			}
			if err := requireSession(sdk); err != nil {
				return err
			}

			invoices := sdk.Invoices()
			if err := invoices.Fetch(cmd.Context()); err != nil {
				return errors.New(client.Message(err))
			}

			tw := newTable(cmd)
			fmt.Fprintln(tw, "NUMBER\tORDER\tTOTAL\tSTATUS\tISSUED")
			for _, inv := range invoices.Data() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					inv.InvoiceNumber, inv.OrderID, money(inv.TotalAmount, inv.Currency),
					inv.Status, inv.IssueDate.Format("2006-01-02"))
			}
			return tw.Flush()
		},
	}
}

func money(amount float64, currency string) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}
