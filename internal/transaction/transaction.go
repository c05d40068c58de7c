package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("transaction not found")

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Status represents the lifecycle state of a transaction.
type Status string

const (
	StatusDue       Status = "due"
	StatusScheduled Status = "scheduled"
	StatusOverdue   Status = "overdue"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// Statuses lists the canonical statuses in lifecycle order.
var Statuses = []Status{StatusDue, StatusScheduled, StatusOverdue, StatusPaid, StatusCancelled}

func (s Status) Valid() bool {
	for _, c := range Statuses {
		if s == c {
			return true
		}
	}

	return false
}

// DateLayout is the canonical form of Date and PostingDate.
const DateLayout = time.DateOnly

// Transaction is a normalized financial transaction.
// Amount is always positive; the sign is carried by Type.
type Transaction struct {
	ID          string
	Type        Type
	Description string
	Amount      decimal.Decimal
	Date        string // YYYY-MM-DD
	PostingDate string // YYYY-MM-DD
	Category    string
	Status      Status
	IsRecurring bool
	CreatedAt   time.Time
}
