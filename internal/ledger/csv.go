package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/shopkeeper/backend-go/internal/domain"
)

// LoadCSV appends every row of a Date,Product,Quantity CSV to l.
// The header row is required; column order is taken from it.
func LoadCSV(l *Ledger, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read header: %w", err)
	}

	idx := map[string]int{"date": -1, "product": -1, "quantity": -1}
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(col))
		if _, ok := idx[key]; ok {
			idx[key] = i
		}
	}
	for col, i := range idx {
		if i < 0 {
			return 0, fmt.Errorf("missing required column %q", col)
		}
	}

	added := 0
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return added, fmt.Errorf("line %d: %w", line, err)
		}

		in, err := parseRecord(record, idx)
		if err != nil {
			return added, fmt.Errorf("line %d: %w", line, err)
		}
		if _, err := l.Add(in); err != nil {
			return added, fmt.Errorf("line %d: %w", line, err)
		}
		added++
	}

	return added, nil
}

func parseRecord(record []string, idx map[string]int) (domain.SaleInput, error) {
	date, err := ParseDate(record[idx["date"]])
	if err != nil {
		return domain.SaleInput{}, err
	}

	qtyStr := strings.TrimSpace(record[idx["quantity"]])
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return domain.SaleInput{}, fmt.Errorf("%w: %q", ErrInvalidQuantity, qtyStr)
	}

	product, ok := domain.ParseProduct(record[idx["product"]])
	if !ok {
		return domain.SaleInput{}, fmt.Errorf("%w: %q", ErrUnknownProduct, record[idx["product"]])
	}

	return domain.SaleInput{Date: date, Product: product, Quantity: qty}, nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}
