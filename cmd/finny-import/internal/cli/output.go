package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/finny-import/internal/importer"
	"github.com/MrJamesThe3rd/finny-import/internal/ingest"
	"github.com/MrJamesThe3rd/finny-import/internal/transaction"
)

type format string

const (
	formatJSON format = "json"
	formatYAML format = "yaml"
)

func parseFormat(s string) (format, error) {
	switch f := format(s); f {
	case formatJSON, formatYAML:
		return f, nil
	}

	return "", fmt.Errorf("unknown output format %q (want json or yaml)", s)
}

type transactionOut struct {
	ID          string `json:"id" yaml:"id"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	Amount      string `json:"amount" yaml:"amount"`
	Date        string `json:"date" yaml:"date"`
	PostingDate string `json:"posting_date" yaml:"posting_date"`
	Category    string `json:"category" yaml:"category"`
	Status      string `json:"status" yaml:"status"`
	IsRecurring bool   `json:"is_recurring" yaml:"is_recurring"`
}

type diagnosticOut struct {
	Line     int    `json:"line" yaml:"line"`
	Severity string `json:"severity" yaml:"severity"`
	Reason   string `json:"reason" yaml:"reason"`
	Message  string `json:"message" yaml:"message"`
}

type statsOut struct {
	Count      int    `json:"count" yaml:"count"`
	Income     string `json:"income" yaml:"income"`
	Expense    string `json:"expense" yaml:"expense"`
	Balance    string `json:"balance" yaml:"balance"`
	Recurring  int    `json:"recurring" yaml:"recurring"`
	Categories int    `json:"categories" yaml:"categories"`
}

type reportOut struct {
	File         string           `json:"file" yaml:"file"`
	Charset      string           `json:"charset" yaml:"charset"`
	Layout       string           `json:"layout" yaml:"layout"`
	Rows         int              `json:"rows" yaml:"rows"`
	Rejected     int              `json:"rejected" yaml:"rejected"`
	Stats        statsOut         `json:"stats" yaml:"stats"`
	Transactions []transactionOut `json:"transactions" yaml:"transactions"`
	Diagnostics  []diagnosticOut  `json:"diagnostics" yaml:"diagnostics"`
}

type detectOut struct {
	File            string          `json:"file" yaml:"file"`
	FilenameLayout  string          `json:"filename_layout,omitempty" yaml:"filename_layout,omitempty"`
	FilenameMatched bool            `json:"filename_matched" yaml:"filename_matched"`
	Layout          string          `json:"layout" yaml:"layout"`
	Columns         int             `json:"columns" yaml:"columns"`
	DataStartLine   int             `json:"data_start_line" yaml:"data_start_line"`
	Diagnostics     []diagnosticOut `json:"diagnostics" yaml:"diagnostics"`
}

func toTransactionOut(tx transaction.Transaction) transactionOut {
	return transactionOut{
		ID:          tx.ID,
		Type:        string(tx.Type),
		Description: tx.Description,
		Amount:      tx.Amount.StringFixed(2),
		Date:        tx.Date,
		PostingDate: tx.PostingDate,
		Category:    tx.Category,
		Status:      string(tx.Status),
		IsRecurring: tx.IsRecurring,
	}
}

func toDiagnosticsOut(diags []ingest.Diagnostic) []diagnosticOut {
	out := make([]diagnosticOut, len(diags))
	for i, d := range diags {
		out[i] = diagnosticOut{
			Line:     d.Line,
			Severity: string(d.Severity),
			Reason:   string(d.Reason),
			Message:  d.Message,
		}
	}

	return out
}

func toReportOut(r *importer.Report) reportOut {
	stats := r.Stats()

	txs := make([]transactionOut, len(r.Transactions))
	for i, tx := range r.Transactions {
		txs[i] = toTransactionOut(tx)
	}

	return reportOut{
		File:     r.Filename,
		Charset:  string(r.Charset),
		Layout:   r.Layout.String(),
		Rows:     r.Rows,
		Rejected: r.Rejected(),
		Stats: statsOut{
			Count:      stats.Count,
			Income:     stats.Income.StringFixed(2),
			Expense:    stats.Expense.StringFixed(2),
			Balance:    stats.Balance.StringFixed(2),
			Recurring:  stats.Recurring,
			Categories: stats.Categories,
		},
		Transactions: txs,
		Diagnostics:  toDiagnosticsOut(r.Diagnostics),
	}
}

func write(w io.Writer, f format, v any) error {
	switch f {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}

		return nil
	}
}
