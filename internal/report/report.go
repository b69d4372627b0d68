// Package report turns forecast outcomes into display-ready values.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/andresuchdata/shopkeeper/backend-go/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	MsgEmptyLedger  = "Please enter some sales data first."
	MsgOrderNow     = "Order Now! Your stock (%s) is below the reorder point."
	MsgStockOK      = "Stock OK. You have enough stock for upcoming demand."
	MsgFewSaleDates = "Not enough data to forecast %s (need 2+ entries)."
	MsgNoLagRows    = "Not enough lag data for %s."
)

// Row is one forecast table line.
type Row struct {
	Date           string `json:"date"`
	PredictedSales string `json:"predicted_sales"`
}

// View is the render-ready form of a single product outcome.
type View struct {
	Product            domain.Product     `json:"product"`
	Label              string             `json:"label"`
	Kind               domain.OutcomeKind `json:"kind"`
	Message            string             `json:"message,omitempty"`
	Rows               []Row              `json:"rows,omitempty"`
	AverageDailyDemand string             `json:"average_daily_demand,omitempty"`
	ReorderPoint       string             `json:"reorder_point,omitempty"`
	EOQ                string             `json:"eoq,omitempty"`
	CurrentStock       string             `json:"current_stock,omitempty"`
	OrderNow           *bool              `json:"order_now,omitempty"`
}

// Units rounds v to a whole number, halves to even.
func Units(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).RoundBank(0)
}

// Render builds the view for an outcome.
func Render(o domain.Outcome) View {
	product := o.Product()
	v := View{Product: product, Label: product.Label(), Kind: o.Kind}

	switch o.Kind {
	case domain.OutcomeInsufficientData:
		if o.Insufficient.Reason == domain.ReasonNoLagRows {
			v.Message = fmt.Sprintf(MsgNoLagRows, product)
		} else {
			v.Message = fmt.Sprintf(MsgFewSaleDates, product)
		}
	case domain.OutcomeForecast:
		fillForecast(&v, *o.Forecast)
	case domain.OutcomeRecommendation:
		rec := o.Recommendation
		fillForecast(&v, rec.Forecast)
		stock := decimal.NewFromFloat(rec.CurrentStock).String()
		v.CurrentStock = stock
		orderNow := rec.ShouldOrderNow
		v.OrderNow = &orderNow
		if orderNow {
			v.Message = fmt.Sprintf(MsgOrderNow, stock)
		} else {
			v.Message = MsgStockOK
		}
	}

	return v
}

func fillForecast(v *View, f domain.Forecast) {
	v.Rows = make([]Row, len(f.Points))
	for i, pt := range f.Points {
		v.Rows[i] = Row{
			Date:           pt.Date.Format(domain.DateLayout),
			PredictedSales: Units(pt.PredictedSales).String(),
		}
	}
	v.AverageDailyDemand = decimal.NewFromFloat(f.AverageDailyDemand).StringFixed(2)
	v.ReorderPoint = Units(f.ReorderPoint).String()
	v.EOQ = Units(f.EconomicOrderQuantity).String()
}

// WriteText prints a plain-text report of every outcome to w.
func WriteText(w io.Writer, status domain.Status, outcomes []domain.Outcome) error {
	if status == domain.StatusEmptyLedger {
		_, err := fmt.Fprintln(w, MsgEmptyLedger)
		return err
	}

	for _, o := range outcomes {
		v := Render(o)
		if _, err := fmt.Fprintf(w, "---\nProduct: %s\n", v.Label); err != nil {
			return err
		}
		if o.Skipped() {
			if _, err := fmt.Fprintln(w, v.Message); err != nil {
				return err
			}
			continue
		}

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		if _, err := fmt.Fprintln(tw, "Date\tPredicted Sales"); err != nil {
			return err
		}
		for _, r := range v.Rows {
			if _, err := fmt.Fprintf(tw, "%s\t%s\n", r.Date, r.PredictedSales); err != nil {
				return err
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "Reorder Point: %s units\n", v.ReorderPoint); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "EOQ (suggested order quantity): %s units\n", v.EOQ); err != nil {
			return err
		}
		if v.Message != "" {
			if _, err := fmt.Fprintln(w, v.Message); err != nil {
				return err
			}
		}
	}
	return nil
}
