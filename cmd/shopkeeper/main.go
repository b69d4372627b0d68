package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/andresuchdata/shopkeeper/backend-go/internal/config"
	"github.com/andresuchdata/shopkeeper/backend-go/internal/domain"
	"github.com/andresuchdata/shopkeeper/backend-go/internal/forecast"
	"github.com/andresuchdata/shopkeeper/backend-go/internal/ledger"
	"github.com/andresuchdata/shopkeeper/backend-go/internal/report"
	"github.com/andresuchdata/shopkeeper/backend-go/internal/service"
	"github.com/andresuchdata/shopkeeper/backend-go/pkg/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("shopkeeper failed")
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "shopkeeper",
		Usage:     "Forecast product demand and get reorder suggestions from daily sales",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.SetLevel(c.String("log-level"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "products",
				Usage:  "List the product catalog",
				Action: listProducts,
			},
			{
				Name:  "forecast",
				Usage: "Forecast every product in a Date,Product,Quantity sales CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Sales CSV file, - for stdin",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:    "stock",
						Aliases: []string{"s"},
						Usage:   "Current stock as Product=Quantity, repeatable",
					},
					&cli.Float64Flag{
						Name:  "default-stock",
						Usage: "Current stock assumed for products without --stock",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the report as JSON",
					},
				},
				Action: runForecast,
			},
		},
	}
}

func listProducts(c *cli.Context) error {
	for _, entry := range domain.Catalog() {
		if _, err := fmt.Fprintf(c.App.Writer, "%-10s %s\n", entry.Product, entry.Label); err != nil {
			return err
		}
	}
	return nil
}

func runForecast(c *cli.Context) error {
	cfg := config.Load()

	stocks, err := parseStocks(c.StringSlice("stock"))
	if err != nil {
		return err
	}

	l := ledger.New()
	if err := loadSales(l, c.String("file")); err != nil {
		return err
	}

	if c.IsSet("default-stock") {
		fallback := c.Float64("default-stock")
		if err := forecast.ValidateStock(fallback); err != nil {
			return fmt.Errorf("invalid --default-stock: %w", err)
		}
		for _, p := range l.Products() {
			if _, ok := stocks[p]; !ok {
				stocks[p] = fallback
			}
		}
	}

	engine, err := service.NewEngine(cfg.Forecast)
	if err != nil {
		return err
	}
	svc := service.NewForecastService(engine, cfg.Forecast.Workers)

	rep, err := svc.ForecastAll(c.Context, l, stocks)
	if err != nil {
		return fmt.Errorf("forecast failed: %w", err)
	}

	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	return report.WriteText(c.App.Writer, rep.Status, rep.Outcomes)
}

func loadSales(l *ledger.Ledger, path string) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open sales file: %w", err)
		}
		defer f.Close()
		r = f
	}

	n, err := ledger.LoadCSV(l, r)
	if err != nil {
		return fmt.Errorf("failed to load sales from %s: %w", path, err)
	}
	logger.Log.Debug().Int("rows", n).Str("file", path).Msg("loaded sales")
	return nil
}

// parseStocks reads Product=Quantity pairs.
func parseStocks(pairs []string) (map[domain.Product]float64, error) {
	stocks := make(map[domain.Product]float64, len(pairs))
	for _, pair := range pairs {
		name, qtyStr, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid stock %q, want Product=Quantity", pair)
		}
		product, ok := domain.ParseProduct(name)
		if !ok {
			return nil, fmt.Errorf("invalid stock %q: %w", pair, ledger.ErrUnknownProduct)
		}
		qty, err := strconv.ParseFloat(strings.TrimSpace(qtyStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid stock %q: %w", pair, forecast.ErrInvalidStock)
		}
		if err := forecast.ValidateStock(qty); err != nil {
			return nil, fmt.Errorf("invalid stock %q: %w", pair, err)
		}
		stocks[product] = qty
	}
	return stocks, nil
}
