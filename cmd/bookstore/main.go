package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/ahinestrog/mybookstore-checkout/internal/catalog"
	"github.com/ahinestrog/mybookstore-checkout/internal/config"
	"github.com/ahinestrog/mybookstore-checkout/internal/events"
	"github.com/ahinestrog/mybookstore-checkout/internal/logging"
	"github.com/ahinestrog/mybookstore-checkout/internal/payment"
	"github.com/ahinestrog/mybookstore-checkout/internal/purchase"
)

const usage = `usage: bookstore <command> [flags]

commands:
  catalog                 list every book with its stock
  search  -q QUERY        search by title or author
  buy     -q QUERY -book ID -qty N -method METHOD [-coupon CODE] [-gateway simulated|approve|decline]
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat, stderr)

	var code int
	switch args[0] {
	case "catalog":
		code = cmdCatalog(ctx, cfg, log, args[1:], stdout)
	case "search":
		code = cmdSearch(ctx, cfg, log, args[1:], stdout)
	case "buy":
		code = cmdBuy(ctx, cfg, log, args[1:], stdout)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		code = 2
	}
	return code
}

func cmdCatalog(ctx context.Context, cfg config.Config, log zerolog.Logger, args []string, out io.Writer) int {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil { return usageError(log, err) }

	app, err := open(ctx, cfg, log, "")
	if err != nil { return fatal(log, err) }
	defer app.close()

	books, err := app.store.Catalog(ctx)
	if err != nil { return fatal(log, err) }
	return writeJSON(log, out, books)
}

func cmdSearch(ctx context.Context, cfg config.Config, log zerolog.Logger, args []string, out io.Writer) int {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	q := fs.String("q", "", "query")
	if err := fs.Parse(args); err != nil { return usageError(log, err) }

	app, err := open(ctx, cfg, log, "")
	if err != nil { return fatal(log, err) }
	defer app.close()

	books, err := app.store.SearchBooks(ctx, *q)
	if err != nil { return fatal(log, err) }
	log.Info().Str("query", *q).Int("results", len(books)).Msg("search")
	return writeJSON(log, out, books)
}

func cmdBuy(ctx context.Context, cfg config.Config, log zerolog.Logger, args []string, out io.Writer) int {
	fs := flag.NewFlagSet("buy", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	q := fs.String("q", "", "search query")
	book := fs.Int64("book", 0, "book id")
	qty := fs.Int("qty", 1, "quantity")
	method := fs.String("method", "credit-card", "payment method")
	coupon := fs.String("coupon", "", "coupon code")
	gw := fs.String("gateway", "simulated", "simulated | approve | decline")
	if err := fs.Parse(args); err != nil { return usageError(log, err) }

	app, err := open(ctx, cfg, log, *gw)
	if err != nil { return fatal(log, err) }
	defer app.close()

	res := app.store.CompletePurchase(ctx, purchase.Request{
		Query:         *q,
		BookID:        *book,
		Quantity:      *qty,
		PaymentMethod: *method,
		CouponCode:    *coupon,
	})
	if res.OK() {
		log.Info().
			Str("order", res.OrderID).
			Str("total", "$"+humanize.CommafWithDigits(res.Total, 2)).
			Str("method", res.PaymentMethod).
			Msg(res.Message)
		for _, a := range res.LowStockAlerts { log.Warn().Msg(a) }
	}
	if code := writeJSON(log, out, res); code != 0 { return code }
	if !res.OK() { return 1 }
	return 0
}

type app struct {
	store  *purchase.Store
	closer []func()
}

func (a *app) close() {
	for i := len(a.closer) - 1; i >= 0; i-- { a.closer[i]() }
}

func open(ctx context.Context, cfg config.Config, log zerolog.Logger, gateway string) (*app, error) {
	a := &app{}

	var repo catalog.Repository
	switch cfg.CatalogDriver {
	case "sqlite":
		sq, err := catalog.NewSQLiteRepository(ctx, cfg.CatalogSQLiteDSN, catalog.SeedBooks())
		if err != nil { return nil, err }
		a.closer = append(a.closer, func() { _ = sq.Close() })
		repo = sq
	default:
		repo = catalog.NewMemoryRepository(catalog.SeedBooks())
	}

	gw, err := pickGateway(gateway, cfg)
	if err != nil { a.close(); return nil, err }

	var ev purchase.Events
	rb, err := events.NewRabbit(cfg.RabbitURL, cfg.ExchangeName)
	if err != nil {
		log.Warn().Err(err).Msg("RabbitMQ not available, continuing without events")
	} else if rb != nil {
		a.closer = append(a.closer, rb.Close)
		ev = rb
	}

	store, err := purchase.New(repo, gw, purchase.Config{
		LowStockThreshold: cfg.LowStockThreshold,
		SearchCacheSize:   cfg.SearchCacheSize,
	}, ev, log)
	if err != nil { a.close(); return nil, err }
	a.store = store

	log.Debug().Str("catalog", cfg.CatalogDriver).Str("gateway", gateway).Bool("events", ev != nil).Msg("store ready")
	return a, nil
}

func pickGateway(name string, cfg config.Config) (payment.Gateway, error) {
	switch name {
	case "", "simulated":
		return payment.NewSimulated(cfg.PaymentSuccessRate, cfg.PaymentSeed), nil
	case "approve":
		return payment.Approve, nil
	case "decline":
		return payment.Decline, nil
	default:
		return nil, fmt.Errorf("unknown gateway %q", name)
	}
}

func writeJSON(log zerolog.Logger, out io.Writer, v any) int {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil { return fatal(log, err) }
	return 0
}

func usageError(log zerolog.Logger, err error) int {
	if errors.Is(err, flag.ErrHelp) {
		log.Info().Msg(usage)
		return 0
	}
	log.Error().Err(err).Msg("bad flags")
	return 2
}

func fatal(log zerolog.Logger, err error) int {
	log.Error().Err(err).Msg("fatal")
	return 1
}
