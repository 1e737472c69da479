// Package pdf renders invoices as PDF documents. It is a pure formatting
// boundary: stored figures are printed verbatim and never recomputed.
package pdf

import (
	"context"
	"fmt"
	"os"
	"time"

	companydomain "github.com/smallbiznis/facturo/internal/company"
	invoicedomain "github.com/smallbiznis/facturo/internal/invoice/domain"
	"go.uber.org/fx"
)

type Provider interface {
	RenderInvoice(ctx context.Context, doc Document) ([]byte, error)
}

// Document carries everything the renderer prints, preformatted.
type Document struct {
	CompanyName    string
	CompanyAddress string
	CompanyEmail   string
	CompanyPhone   string

	Reference string
	Date      string
	DueDate   string

	BillToName    string
	BillToAddress string

	Items []Line

	Subtotal string
	Tax      string
	Total    string
}

type Line struct {
	Description string
	Qty         int64
	UnitPrice   string
	Amount      string
}

// BuildDocument maps a fully-loaded invoice plus the company profile onto
// a printable document. The billed-to block uses the invoice's snapshot
// fields, not live customer data.
func BuildDocument(inv invoicedomain.Invoice, profile companydomain.Company) Document {
	doc := Document{
		CompanyName:    profile.Name,
		CompanyAddress: profile.Address,
		CompanyEmail:   profile.Email,
		CompanyPhone:   profile.Phone,
		Reference:      inv.Reference,
		Date:           formatDate(time.Time(inv.Date)),
		BillToName:     inv.CustomerName,
		BillToAddress:  inv.CustomerAddress,
		Subtotal:       formatAmount(inv.Subtotal),
		Tax:            formatAmount(inv.Tax),
		Total:          formatAmount(inv.Total),
	}
	if inv.DueDate != nil {
		doc.DueDate = formatDate(time.Time(*inv.DueDate))
	}
	for _, item := range inv.Items {
		doc.Items = append(doc.Items, Line{
			Description: item.ProductName,
			Qty:         item.Quantity,
			UnitPrice:   formatAmount(item.UnitPrice),
			Amount:      formatAmount(item.TotalPrice),
		})
	}
	return doc
}

// WriteInvoice renders doc and writes the byte stream to path.
func WriteInvoice(ctx context.Context, p Provider, doc Document, path string) error {
	data, err := p.RenderInvoice(ctx, doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write invoice pdf %s: %w", path, err)
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)
