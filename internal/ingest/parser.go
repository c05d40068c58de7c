package ingest

import (
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/finny-import/internal/transaction"
)

// DefaultCategory is assigned to rows without a category.
const DefaultCategory = "Other"

// Parser turns statement text into normalized transactions. A Parser holds no
// per-parse state and may be shared.
type Parser struct {
	ids             IDSource
	now             func() time.Time
	defaultCategory string
}

type Option func(*Parser)

// WithIDSource replaces the UUID id source, e.g. with SequenceIDs in tests.
func WithIDSource(ids IDSource) Option {
	return func(p *Parser) {
		p.ids = ids
	}
}

// WithClock sets the clock used for statement rows that carry no date.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

func WithDefaultCategory(category string) Option {
	return func(p *Parser) {
		if category != "" {
			p.defaultCategory = category
		}
	}
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{
		ids:             UUIDs{},
		now:             time.Now,
		defaultCategory: DefaultCategory,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Result is the outcome of one parse. Transactions keep input order.
type Result struct {
	Layout       Layout
	Transactions []transaction.Transaction
	Diagnostics  []Diagnostic
	// Rows is the number of data rows examined.
	Rows int
}

// Stats summarizes the accepted transactions.
func (r *Result) Stats() transaction.Stats {
	return transaction.Summarize(r.Transactions)
}

// Rejected counts rows that were skipped.
func (r *Result) Rejected() int {
	n := 0

	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			n++
		}
	}

	return n
}

// Parse is shorthand for NewParser().Parse(content).
func Parse(content string) (*Result, error) {
	return NewParser().Parse(content)
}

// Parse classifies the header once, then maps, normalizes and assembles every
// data row. Bad rows become diagnostics; only ErrTooFewLines and *TypeError
// abort.
func (p *Parser) Parse(content string) (*Result, error) {
	lines := splitLines(content)
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: got %d non-blank line(s)", ErrTooFewLines, len(lines))
	}

	c := classify(lines)

	res := &Result{
		Layout:      c.Layout,
		Diagnostics: c.Diagnostics,
	}

	today := p.now().Format(transaction.DateLayout)

	for _, ln := range lines[c.DataStart:] {
		res.Rows++

		raw, sk := mapRow(c.Layout, Tokenize(ln.Text), today)
		if sk != nil {
			res.Diagnostics = append(res.Diagnostics, rejection(ln.Number, sk.reason, "%s", sk.message))
			continue
		}

		n, diag, err := p.normalize(raw, ln.Number)
		if err != nil {
			return nil, err
		}

		if diag != nil {
			res.Diagnostics = append(res.Diagnostics, *diag)
			continue
		}

		res.Transactions = append(res.Transactions, assemble(p.ids, n))
	}

	return res, nil
}

// normalize converts raw fields to typed values. Structural problems with the
// amount or date skip the row; an unknown type is fatal.
func (p *Parser) normalize(raw rawFields, lineNo int) (normalized, *Diagnostic, error) {
	if isRepeatedHeader(raw.Date, raw.Description) {
		d := rejection(lineNo, ReasonRepeatedHeader, "row repeats the header")
		return normalized{}, &d, nil
	}

	amount, err := normalizeAmount(raw.Amount)
	if err != nil {
		d := rejection(lineNo, ReasonInvalidAmount, "invalid amount %q: %v", raw.Amount, err)
		return normalized{}, &d, nil
	}

	date, ok := NormalizeDate(raw.Date)
	if !ok {
		d := rejection(lineNo, ReasonInvalidDate, "unparsable date %q", raw.Date)
		return normalized{}, &d, nil
	}

	postingDate, ok := NormalizeDate(raw.PostingDate)
	if !ok {
		postingDate = date
	}

	txType, ok := normalizeType(raw.Type)
	if !ok {
		return normalized{}, nil, &TypeError{Line: lineNo, Value: raw.Type}
	}

	return normalized{
		Type:        txType,
		Description: or(raw.Description, fmt.Sprintf("Transaction %d", lineNo)),
		Amount:      amount,
		Date:        date,
		PostingDate: postingDate,
		Category:    or(raw.Category, p.defaultCategory),
		Status:      normalizeStatus(raw.Status),
		IsRecurring: normalizeRecurring(raw.Recurring),
	}, nil, nil
}
