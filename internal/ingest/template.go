package ingest

import (
	"fmt"
	"strings"
)

type template struct {
	delimiter string
	header    []string
	rows      [][]string
}

var templates = map[Layout]template{
	LayoutSpreadsheet: {
		delimiter: ",",
		header:    []string{"Type", "Description", "Amount", "Date", "PostingDate", "Category", "Status", "Recurring"},
		rows: [][]string{
			{"Income", "Salary", "5000.00", "05/01/2025", "05/01/2025", "Salary", "paid", "Yes"},
			{"Expense", "Rent", "1500.00", "10/01/2025", "10/01/2025", "Housing", "paid", "Yes"},
			{"Income", "Freelance project", "1200.00", "15/01/2025", "16/01/2025", "Freelance", "paid", "No"},
			{"Expense", "Groceries", "350.75", "18/01/2025", "18/01/2025", "Food", "paid", "No"},
			{"Income", "Dividends", "89.90", "20/01/2025", "20/01/2025", "Investments", "scheduled", "No"},
			{"Expense", "Electricity bill", "180.40", "25/01/2025", "27/01/2025", "Utilities", "due", "Yes"},
			{"Income", "Cashback", "25.00", "28/01/2025", "28/01/2025", "Other", "paid", "No"},
			{"Expense", "Internet", "99.90", "30/01/2025", "30/01/2025", "Utilities", "overdue", "Yes"},
		},
	},
	LayoutOpenFinance: {
		delimiter: ",",
		header:    []string{"Date", "Type", "Amount", "Description", "Account", "Category", "Status"},
		rows: [][]string{
			{"01/02/2025", "CREDIT", "3500,00", "Salary deposit", "Checking 0001", "Salary", "paid"},
			{"03/02/2025", "DEBIT", "120,50", "Supermarket", "Checking 0001", "Food", "paid"},
			{"05/02/2025", "DEBIT", "89,90", "Phone bill", "Checking 0001", "Utilities", "due"},
			{"10/02/2025", "CREDIT", "450,00", "Transfer received", "Savings 0002", "Transfers", "paid"},
		},
	},
	LayoutExtrato: {
		delimiter: ";",
		header:    []string{"Date", "History", "DocumentNo", "Amount", "Balance"},
		rows: [][]string{
			{"01/03/2025", "Salary", "000123", "1500,00", "1500,00"},
			{"05/03/2025", "Rent payment", "000124", "-800,00", "700,00"},
			{"12/03/2025", "Card purchase", "000125", "-150,35", "549,65"},
			{"20/03/2025", "Transfer received", "000126", "250,00", "799,65"},
		},
	},
}

// Template returns the example document for layout: a quoted-field delimited
// text block that Parse reads back as the same layout.
func Template(layout Layout) (string, error) {
	t, ok := templates[layout]
	if !ok {
		return "", fmt.Errorf("unknown layout: %q", layout)
	}

	var sb strings.Builder

	writeQuoted(&sb, t.header, t.delimiter)

	for _, row := range t.rows {
		writeQuoted(&sb, row, t.delimiter)
	}

	return sb.String(), nil
}

// TemplateRows returns the header and rows of a template, unquoted.
func TemplateRows(layout Layout) ([]string, [][]string, error) {
	t, ok := templates[layout]
	if !ok {
		return nil, nil, fmt.Errorf("unknown layout: %q", layout)
	}

	return t.header, t.rows, nil
}

// TemplateFilename is the suggested download name for a template.
func TemplateFilename(layout Layout) string {
	return fmt.Sprintf("%s_template.csv", layout)
}

func writeQuoted(sb *strings.Builder, fields []string, delimiter string) {
	for i, f := range fields {
		if i > 0 {
			sb.WriteString(delimiter)
		}

		sb.WriteString(`"`)
		sb.WriteString(f)
		sb.WriteString(`"`)
	}

	sb.WriteString("\n")
}
