package forecast

import (
	"testing"
	"time"

	"github.com/andresuchdata/shopkeeper/backend-go/internal/domain"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func sale(t *testing.T, date string, product domain.Product, qty int) domain.SaleEvent {
	t.Helper()
	return domain.SaleEvent{Date: day(t, date), Product: product, Quantity: qty}
}

// recordingModel predicts lag+1 and remembers every feature vector it was asked about.
type recordingModel struct {
	fitted []domain.FeatureRow
	inputs [][]float64
}

func (m *recordingModel) Fit(rows []domain.FeatureRow) error {
	m.fitted = rows
	return nil
}

func (m *recordingModel) Predict(features []float64) float64 {
	m.inputs = append(m.inputs, append([]float64(nil), features...))
	return features[3] + 1
}
