package ingest

import (
	"fmt"

	"github.com/MrJamesThe3rd/finny-import/internal/transaction"
)

// minPopulated is the fewest non-empty fields a fixed-layout row may have.
const minPopulated = 3

const (
	defaultStatus    = string(transaction.StatusPaid)
	defaultRecurring = "no"
	// extratoDescription is used for statement rows that only carry a date
	// and an amount.
	extratoDescription = "Bank transaction"
)

// rawFields are the semantic fields of a row, still as text.
type rawFields struct {
	Type        string
	Description string
	Amount      string
	Date        string
	PostingDate string
	Category    string
	Status      string
	Recurring   string
}

// skip explains why a row could not be mapped.
type skip struct {
	reason  Reason
	message string
}

// mapRow extracts raw fields from row according to layout. today is the
// YYYY-MM-DD date substituted for statement rows without a date.
func mapRow(layout Layout, row RawRow, today string) (rawFields, *skip) {
	switch layout {
	case LayoutSpreadsheet:
		return mapSpreadsheet(row)
	case LayoutOpenFinance:
		return mapOpenFinance(row)
	case LayoutExtrato:
		return mapExtrato(row, today)
	}

	panic(fmt.Sprintf("ingest: unhandled layout %q", layout))
}

func mapSpreadsheet(row RawRow) (rawFields, *skip) {
	if n := row.populated(); n < minPopulated {
		return rawFields{}, tooFewColumns(n)
	}

	f := rawFields{
		Type:        row.at(0),
		Description: row.at(1),
		Amount:      row.at(2),
		Date:        row.at(3),
		PostingDate: row.at(4),
		Category:    row.at(5),
		Status:      or(row.at(6), defaultStatus),
		Recurring:   or(row.at(7), defaultRecurring),
	}

	f.PostingDate = or(f.PostingDate, f.Date)

	return f, nil
}

func mapOpenFinance(row RawRow) (rawFields, *skip) {
	if n := row.populated(); n < minPopulated {
		return rawFields{}, tooFewColumns(n)
	}

	// Column 4 is the account and is not part of the record.
	return rawFields{
		Date:        row.at(0),
		Type:        typeFromCode(row.at(1)),
		Amount:      row.at(2),
		Description: row.at(3),
		PostingDate: row.at(0),
		Category:    row.at(5),
		Status:      or(row.at(6), defaultStatus),
		Recurring:   defaultRecurring,
	}, nil
}

func mapExtrato(row RawRow, today string) (rawFields, *skip) {
	f := rawFields{
		Status:    defaultStatus,
		Recurring: defaultRecurring,
	}

	switch n := len(row); {
	case n >= 4:
		f.Date, f.Description = row.at(0), row.at(1)
		f.Amount = or(row.at(3), row.at(2))
	case n == 3:
		f.Date, f.Description, f.Amount = row.at(0), row.at(1), row.at(2)
	case n == 2:
		if datePrefix.MatchString(row.at(0)) {
			f.Date, f.Description, f.Amount = row.at(0), extratoDescription, row.at(1)
		} else {
			f.Date, f.Description, f.Amount = today, row.at(0), row.at(1)
		}
	default:
		return rawFields{}, &skip{
			reason:  ReasonInsufficientColumns,
			message: fmt.Sprintf("statement row has %d column(s), need at least 2", n),
		}
	}

	f.PostingDate = f.Date
	f.Type = string(transaction.TypeIncome)

	if amount, err := parseSignedAmount(f.Amount); err == nil && amount.IsNegative() {
		f.Type = string(transaction.TypeExpense)
	}

	return f, nil
}

func tooFewColumns(n int) *skip {
	return &skip{
		reason:  ReasonInsufficientColumns,
		message: fmt.Sprintf("row has %d populated column(s), need at least %d", n, minPopulated),
	}
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}
