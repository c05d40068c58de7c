package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/finny-import/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectColumns = `id, type, description, amount, date, posting_date, category, status, is_recurring, created_at`

func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var (
		tx                 transaction.Transaction
		typeStr, statusStr string
		date, postingDate  time.Time
	)

	if err := s.Scan(
		&tx.ID, &typeStr, &tx.Description, &tx.Amount, &date, &postingDate,
		&tx.Category, &statusStr, &tx.IsRecurring, &tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)
	tx.Status = transaction.Status(statusStr)
	tx.Date = date.Format(transaction.DateLayout)
	tx.PostingDate = postingDate.Format(transaction.DateLayout)

	return &tx, nil
}

// batchLockKey serializes concurrent saves covering the same date range.
func batchLockKey(txs []transaction.Transaction) int64 {
	minDate, maxDate := txs[0].Date, txs[0].Date

	for _, tx := range txs[1:] {
		minDate = min(minDate, tx.Date)
		maxDate = max(maxDate, tx.Date)
	}

	h := fnv.New64a()
	h.Write([]byte(minDate))
	h.Write([]byte{0})
	h.Write([]byte(maxDate))

	return int64(h.Sum64())
}

// CreateTransactions inserts the batch in one transaction. Ids come from the
// parser, so a repeated confirm of the same preview is a no-op.
func (s *Store) CreateTransactions(ctx context.Context, txs []transaction.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import tx: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", batchLockKey(txs)); err != nil {
		return fmt.Errorf("acquiring import lock: %w", err)
	}

	query := `
		INSERT INTO transactions (id, type, description, amount, date, posting_date, category, status, is_recurring, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (id) DO NOTHING
	`

	for _, tx := range txs {
		if _, err := dbTx.ExecContext(ctx, query,
			tx.ID,
			tx.Type,
			tx.Description,
			tx.Amount,
			tx.Date,
			tx.PostingDate,
			tx.Category,
			tx.Status,
			tx.IsRecurring,
		); err != nil {
			return fmt.Errorf("creating transaction %s: %w", tx.ID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id string) (*transaction.Transaction, error) {
	query := `SELECT ` + selectColumns + ` FROM transactions WHERE id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]transaction.Transaction, error) {
	query, args := listQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, *tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func listQuery(filter transaction.ListFilter) (string, []any) {
	var (
		where []string
		args  []any
	)

	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if filter.Type != nil {
		add("type = $%d", *filter.Type)
	}

	if filter.Status != nil {
		add("status = $%d", *filter.Status)
	}

	if filter.Category != nil {
		add("category = $%d", *filter.Category)
	}

	if filter.StartDate != nil {
		add("date >= $%d", *filter.StartDate)
	}

	if filter.EndDate != nil {
		add("date <= $%d", *filter.EndDate)
	}

	query := `SELECT ` + selectColumns + ` FROM transactions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	return query + " ORDER BY date ASC, created_at ASC", args
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}
