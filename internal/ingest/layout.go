package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Layout is the column layout a statement file follows.
type Layout string

const (
	// LayoutSpreadsheet is the user-authored 8-column export:
	// type, description, amount, date, posting date, category, status, recurring.
	LayoutSpreadsheet Layout = "spreadsheet"
	// LayoutOpenFinance is a bank/aggregator export with credit/debit codes
	// and an account column.
	LayoutOpenFinance Layout = "open_finance"
	// LayoutExtrato is a raw bank statement with 2 to 5 columns and no fixed
	// schema. The transaction type comes from the amount sign.
	LayoutExtrato Layout = "extrato"
)

// Layouts lists every supported layout.
var Layouts = []Layout{LayoutSpreadsheet, LayoutOpenFinance, LayoutExtrato}

func (l Layout) String() string {
	return string(l)
}

// ParseLayout resolves a layout name, accepting a few common spellings.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spreadsheet", "planilha":
		return LayoutSpreadsheet, nil
	case "open_finance", "openfinance", "open-finance":
		return LayoutOpenFinance, nil
	case "extrato", "statement":
		return LayoutExtrato, nil
	}

	return "", fmt.Errorf("unknown layout: %q", s)
}

// filenameHints maps filename fragments to layouts, checked in order so that
// statement hints win the same way statement keywords win in headers.
var filenameHints = []struct {
	fragment string
	layout   Layout
}{
	{"extrato", LayoutExtrato},
	{"statement", LayoutExtrato},
	{"openfinance", LayoutOpenFinance},
	{"open_finance", LayoutOpenFinance},
	{"open-finance", LayoutOpenFinance},
	{"open finance", LayoutOpenFinance},
	{"planilha", LayoutSpreadsheet},
	{"spreadsheet", LayoutSpreadsheet},
}

// LayoutFromFilename guesses the layout from a file name alone.
// It reports false when the name carries no hint.
func LayoutFromFilename(name string) (Layout, bool) {
	base := fold(filepath.Base(name))

	for _, h := range filenameHints {
		if strings.Contains(base, h.fragment) {
			return h.layout, true
		}
	}

	return "", false
}
