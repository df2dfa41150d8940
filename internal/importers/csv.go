// Package importers turns statement files into engine transactions. It
// owns parsing mechanics only; categorization happens downstream.
package importers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quillback/spendsort/internal/model"
)

// CSVImporter parses CSV statement exports. The expected header row is
// flexible: columns are located by name, unknown columns are ignored.
type CSVImporter struct {
	// DefaultAccountID is used for rows without an account column.
	DefaultAccountID string
}

// NewCSVImporter creates a CSV importer.
func NewCSVImporter(defaultAccountID string) *CSVImporter {
	return &CSVImporter{DefaultAccountID: defaultAccountID}
}

// recognized header names, lowercased.
var csvColumns = map[string][]string{
	"id":          {"id", "transaction_id", "txn_id"},
	"date":        {"date", "posted", "transaction_date"},
	"account":     {"account", "account_id"},
	"merchant":    {"merchant", "merchant_name", "payee", "vendor"},
	"description": {"description", "name", "details"},
	"memo":        {"memo", "extended_description", "notes"},
	"amount":      {"amount", "value"},
	"currency":    {"currency", "currency_code"},
	"primary":     {"category", "primary_category", "category_primary"},
	"secondary":   {"subcategory", "secondary_category", "category_secondary"},
	"code":        {"category_id", "category_code"},
	"pending":     {"pending"},
}

var csvDateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
}

// Parse reads CSV rows into transactions. Rows that cannot be parsed are
// skipped with a warning; an unusable header is an error.
func (p *CSVImporter) Parse(_ context.Context, reader io.Reader) ([]model.Transaction, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	idx := indexColumns(header)
	if _, ok := idx["amount"]; !ok {
		return nil, fmt.Errorf("CSV header has no amount column")
	}
	if _, ok := idx["date"]; !ok {
		return nil, fmt.Errorf("CSV header has no date column")
	}

	var transactions []model.Transaction
	var skipped int
	line := 1

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			slog.Warn("Skipping malformed CSV row", "line", line, "error", err)
			skipped++
			continue
		}

		txn, err := p.convertRow(record, idx)
		if err != nil {
			slog.Warn("Skipping unparseable CSV row", "line", line, "error", err)
			skipped++
			continue
		}
		transactions = append(transactions, txn)
	}

	slog.Info("Parsed CSV file",
		"total_transactions", len(transactions),
		"skipped", skipped)

	return transactions, nil
}

func (p *CSVImporter) convertRow(record []string, idx map[string]int) (model.Transaction, error) {
	field := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, err := parseDate(field("date"))
	if err != nil {
		return model.Transaction{}, err
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(field("amount"), ",", ""))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount %q: %w", field("amount"), err)
	}

	accountID := field("account")
	if accountID == "" {
		accountID = p.DefaultAccountID
	}

	id := field("id")
	if id == "" {
		// Statement exports frequently lack stable IDs; mint one.
		id = uuid.NewString()
	}

	txn := model.Transaction{
		ID:                  id,
		Date:                date,
		AccountID:           accountID,
		Merchant:            field("merchant"),
		Description:         field("description"),
		ExtendedDescription: field("memo"),
		Currency:            field("currency"),
		ProviderPrimary:     field("primary"),
		ProviderSecondary:   field("secondary"),
		ProviderCode:        field("code"),
		Amount:              amount,
		Pending:             strings.EqualFold(field("pending"), "true"),
		Source:              model.SourceCSV,
	}
	txn.Hash = txn.GenerateHash()

	return txn, nil
}

func indexColumns(header []string) map[string]int {
	idx := make(map[string]int)
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for name, aliases := range csvColumns {
			if _, seen := idx[name]; seen {
				continue
			}
			for _, alias := range aliases {
				if h == alias {
					idx[name] = i
					break
				}
			}
		}
	}
	return idx
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}
	for _, layout := range csvDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
