// Command facturo is the headless entrypoint of the invoicing core:
// database initialization, JSON fixture import, and PDF export.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/facturo/internal/clock"
	"github.com/smallbiznis/facturo/internal/company"
	"github.com/smallbiznis/facturo/internal/config"
	"github.com/smallbiznis/facturo/internal/customer"
	"github.com/smallbiznis/facturo/internal/fixtures"
	"github.com/smallbiznis/facturo/internal/invoice"
	invoicedomain "github.com/smallbiznis/facturo/internal/invoice/domain"
	"github.com/smallbiznis/facturo/internal/logger"
	"github.com/smallbiznis/facturo/internal/product"
	pdfprovider "github.com/smallbiznis/facturo/internal/providers/pdf"
	"github.com/smallbiznis/facturo/internal/settings"
	"github.com/smallbiznis/facturo/pkg/db"
	"github.com/smallbiznis/facturo/pkg/telemetry"
	"go.uber.org/fx"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]

	var err error
	switch cmd {
	case "init":
		err = runInit(args)
	case "load-customers":
		err = runLoad(args, "customers.json", (*fixtures.Loader).LoadCustomers)
	case "load-products":
		err = runLoad(args, "products.json", (*fixtures.Loader).LoadProducts)
	case "load-invoices":
		err = runLoad(args, "invoices.json", (*fixtures.Loader).LoadInvoices)
	case "pdf":
		err = runPDF(args)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "facturo:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: facturo <command> [flags]

commands:
  init            initialize the database file
  load-customers  import customers from a JSON fixtures file
  load-products   import products from a JSON fixtures file
  load-invoices   import invoices from a JSON fixtures file
  pdf             export one invoice as a PDF document

common flags:
  --db <path>     database file (default: last opened, then facturo.db)`)
}

func modules() fx.Option {
	return fx.Options(
		config.Module,
		logger.Module,
		telemetry.Module,
		clock.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		settings.Module,
		customer.Module,
		product.Module,
		invoice.Module,
		company.Module,
		pdfprovider.Module,
		fixtures.Module,
	)
}

func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

// runApp assembles the application and runs invoke during startup.
func runApp(invoke any) error {
	app := fx.New(
		modules(),
		fx.NopLogger,
		fx.Invoke(invoke),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStop()
	return app.Stop(stopCtx)
}

// openDatabase repoints the manager when --db was given, falls back to the
// remembered last-opened file otherwise, migrates, and records the file in
// the recent list.
func openDatabase(ctx context.Context, m *db.Manager, store *settings.Store, override string) error {
	if override == "" {
		override = store.LastDatabase()
	}
	if override != "" {
		if err := m.SetDatabasePath(override); err != nil {
			return err
		}
	}
	if err := m.Init(ctx); err != nil {
		return err
	}
	return store.Touch(m.Path())
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	dbPath := fs.String("db", "", "path to database file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return runApp(func(m *db.Manager, store *settings.Store) error {
		if err := openDatabase(context.Background(), m, store, *dbPath); err != nil {
			return err
		}
		fmt.Printf("Database initialized: %s\n", m.Path())
		return nil
	})
}

func runLoad(args []string, defaultFile string, load func(*fixtures.Loader, context.Context, string) (fixtures.Summary, error)) error {
	fs := flag.NewFlagSet("load", flag.ExitOnError)
	dbPath := fs.String("db", "", "path to database file")
	file := fs.String("file", "", "path to fixtures JSON file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return runApp(func(cfg config.Config, m *db.Manager, store *settings.Store, loader *fixtures.Loader) error {
		ctx := context.Background()
		if err := openDatabase(ctx, m, store, *dbPath); err != nil {
			return err
		}

		path := *file
		if path == "" {
			path = filepath.Join(cfg.FixturesDir, defaultFile)
		}

		summary, err := load(loader, ctx, path)
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			fmt.Printf("Loaded %d records from %s (%d errors)\n", summary.Created, path, summary.Failed)
		} else {
			fmt.Printf("Loaded %d records from %s\n", summary.Created, path)
		}
		return nil
	})
}

func runPDF(args []string) error {
	fs := flag.NewFlagSet("pdf", flag.ExitOnError)
	dbPath := fs.String("db", "", "path to database file")
	invoiceID := fs.String("invoice", "", "invoice id to export")
	out := fs.String("out", "invoice.pdf", "output PDF path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := strconv.ParseInt(*invoiceID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid invoice id %q", *invoiceID)
	}

	return runApp(func(m *db.Manager, store *settings.Store, invoices invoicedomain.Service, companies company.Service, provider pdfprovider.Provider) error {
		ctx := context.Background()
		if err := openDatabase(ctx, m, store, *dbPath); err != nil {
			return err
		}

		inv, err := invoices.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("invoice %d not found", id)
		}

		profile, err := companies.Get(ctx)
		if err != nil {
			return err
		}

		doc := pdfprovider.BuildDocument(*inv, profile)
		if err := pdfprovider.WriteInvoice(ctx, provider, doc, *out); err != nil {
			return err
		}
		fmt.Printf("Invoice %s exported to %s\n", inv.Reference, *out)
		return nil
	})
}
