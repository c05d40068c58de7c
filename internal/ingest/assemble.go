package ingest

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finny-import/internal/transaction"
)

// IDSource hands out transaction ids. Ids must not repeat within one parse.
type IDSource interface {
	NextID() string
}

// UUIDs is the default IDSource.
type UUIDs struct{}

func (UUIDs) NextID() string {
	return uuid.NewString()
}

// SequenceIDs yields prefix1, prefix2, ... and is safe for concurrent use.
type SequenceIDs struct {
	prefix string
	next   atomic.Uint64
}

func NewSequenceIDs(prefix string) *SequenceIDs {
	return &SequenceIDs{prefix: prefix}
}

func (s *SequenceIDs) NextID() string {
	return fmt.Sprintf("%s%d", s.prefix, s.next.Add(1))
}

// normalized holds validated field values ready for assembly.
type normalized struct {
	Type        transaction.Type
	Description string
	Amount      decimal.Decimal
	Date        string
	PostingDate string
	Category    string
	Status      transaction.Status
	IsRecurring bool
}

func assemble(ids IDSource, n normalized) transaction.Transaction {
	return transaction.Transaction{
		ID:          ids.NextID(),
		Type:        n.Type,
		Description: n.Description,
		Amount:      n.Amount,
		Date:        n.Date,
		PostingDate: n.PostingDate,
		Category:    n.Category,
		Status:      n.Status,
		IsRecurring: n.IsRecurring,
	}
}
