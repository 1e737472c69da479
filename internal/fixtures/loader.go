// Package fixtures bulk-loads customers, products, and invoices from JSON
// files. Import is best-effort: a bad record is logged and counted, and
// the rest of the file still loads.
package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	customerdomain "github.com/smallbiznis/facturo/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/facturo/internal/invoice/domain"
	productdomain "github.com/smallbiznis/facturo/internal/product/domain"
	"github.com/smallbiznis/facturo/pkg/telemetry"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// Summary reports one import run.
type Summary struct {
	Created int
	Failed  int
}

type Params struct {
	fx.In

	Log       *zap.Logger
	Customers customerdomain.Service
	Products  productdomain.Service
	Invoices  invoicedomain.Service
	Metrics   *telemetry.Metrics `optional:"true"`
}

type Loader struct {
	log       *zap.Logger
	customers customerdomain.Service
	products  productdomain.Service
	invoices  invoicedomain.Service
	metrics   *telemetry.Metrics
}

func New(p Params) *Loader {
	return &Loader{
		log:       p.Log.Named("fixtures.loader"),
		customers: p.Customers,
		products:  p.Products,
		invoices:  p.Invoices,
		metrics:   p.Metrics,
	}
}

type customerRecord struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

func (l *Loader) LoadCustomers(ctx context.Context, path string) (Summary, error) {
	var records []customerRecord
	if err := readRecords(path, &records); err != nil {
		return Summary{}, err
	}

	var summary Summary
	for _, rec := range records {
		_, err := l.customers.Create(ctx, customerdomain.CreateCustomerRequest{
			Name:    rec.Name,
			Address: rec.Address,
			Email:   rec.Email,
		})
		l.metrics.RecordFixtureRecord("customer", err)
		if err != nil {
			summary.Failed++
			l.log.Warn("customer record skipped",
				zap.String("name", rec.Name),
				zap.Error(err))
			continue
		}
		summary.Created++
	}

	l.log.Info("customers loaded",
		zap.String("path", path),
		zap.Int("created", summary.Created),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

type productRecord struct {
	Reference string   `json:"reference"`
	Name      *string  `json:"name"`
	Price     *float64 `json:"price"`
	Stock     *int64   `json:"stock"`
	Sold      *int64   `json:"sold"`
}

// LoadProducts creates each record, or updates the existing product when
// the reference is already taken.
func (l *Loader) LoadProducts(ctx context.Context, path string) (Summary, error) {
	var records []productRecord
	if err := readRecords(path, &records); err != nil {
		return Summary{}, err
	}

	var summary Summary
	for _, rec := range records {
		err := l.loadProduct(ctx, rec)
		l.metrics.RecordFixtureRecord("product", err)
		if err != nil {
			summary.Failed++
			l.log.Warn("product record skipped",
				zap.String("reference", rec.Reference),
				zap.Error(err))
			continue
		}
		summary.Created++
	}

	l.log.Info("products loaded",
		zap.String("path", path),
		zap.Int("created", summary.Created),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

func (l *Loader) loadProduct(ctx context.Context, rec productRecord) error {
	existing, err := l.products.GetByReference(ctx, rec.Reference)
	if err != nil {
		return err
	}
	if existing != nil {
		_, err = l.products.Update(ctx, existing.ID, productdomain.Patch{
			Name:  rec.Name,
			Price: rec.Price,
			Stock: rec.Stock,
			Sold:  rec.Sold,
		})
		return err
	}
	_, err = l.products.Create(ctx, productdomain.CreateProductRequest{
		Reference: rec.Reference,
		Name:      rec.Name,
		Price:     rec.Price,
		Stock:     rec.Stock,
		Sold:      rec.Sold,
	})
	return err
}

type invoiceItemRecord struct {
	Description string  `json:"description"`
	Quantity    int64   `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

type invoiceRecord struct {
	Reference string              `json:"reference"`
	Date      string              `json:"date"`
	DueDate   string              `json:"due_date"`
	Customer  string              `json:"customer"`
	Subtotal  float64             `json:"subtotal"`
	Tax       float64             `json:"tax"`
	Total     float64             `json:"total"`
	Items     []invoiceItemRecord `json:"items"`
}

func (l *Loader) LoadInvoices(ctx context.Context, path string) (Summary, error) {
	var records []invoiceRecord
	if err := readRecords(path, &records); err != nil {
		return Summary{}, err
	}

	var summary Summary
	for _, rec := range records {
		err := l.loadInvoice(ctx, rec)
		l.metrics.RecordFixtureRecord("invoice", err)
		if err != nil {
			summary.Failed++
			l.log.Warn("invoice record skipped",
				zap.String("reference", rec.Reference),
				zap.Error(err))
			continue
		}
		summary.Created++
	}

	l.log.Info("invoices loaded",
		zap.String("path", path),
		zap.Int("created", summary.Created),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

func (l *Loader) loadInvoice(ctx context.Context, rec invoiceRecord) error {
	date, err := parseDate(rec.Date)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", rec.Date, err)
	}

	var dueDate *datatypes.Date
	if rec.DueDate != "" {
		parsed, err := parseDate(rec.DueDate)
		if err != nil {
			return fmt.Errorf("parse due date %q: %w", rec.DueDate, err)
		}
		dueDate = &parsed
	}

	// The customer block is a multi-line string: first line is the name,
	// the remaining lines are the address.
	name, address := splitCustomerBlock(rec.Customer)

	items := make([]invoicedomain.ItemInput, 0, len(rec.Items))
	for _, item := range rec.Items {
		items = append(items, invoicedomain.ItemInput{
			ProductName: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}

	_, err = l.invoices.Create(ctx, invoicedomain.CreateInvoiceRequest{
		Reference:       rec.Reference,
		Date:            date,
		DueDate:         dueDate,
		CustomerName:    name,
		CustomerAddress: address,
		Subtotal:        rec.Subtotal,
		Tax:             rec.Tax,
		Total:           rec.Total,
		Items:           items,
	})
	return err
}

func readRecords(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixtures file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse fixtures file %s: %w", path, err)
	}
	return nil
}

func parseDate(value string) (datatypes.Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

func splitCustomerBlock(block string) (name, address string) {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	if len(lines) == 0 {
		return "", ""
	}
	name = strings.TrimSpace(lines[0])
	if len(lines) > 1 {
		rest := make([]string, 0, len(lines)-1)
		for _, line := range lines[1:] {
			rest = append(rest, strings.TrimSpace(line))
		}
		address = strings.Join(rest, "\n")
	}
	return name, address
}

var Module = fx.Module("fixtures",
	fx.Provide(New),
)
