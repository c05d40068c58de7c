package transaction

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransactions(ctx context.Context, txs []Transaction) error
	GetTransaction(ctx context.Context, id string) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListFilter narrows List and Summary. Dates are inclusive YYYY-MM-DD bounds.
type ListFilter struct {
	Type      *Type
	Status    *Status
	Category  *string
	StartDate *string
	EndDate   *string
}

// SaveBatch persists a batch of normalized transactions atomically.
// Every record is checked against the transaction invariants first so a
// hand-edited confirm payload cannot store a negative amount or an unknown
// status.
func (s *Service) SaveBatch(ctx context.Context, txs []Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	for i, tx := range txs {
		if err := Validate(tx); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
	}

	if err := s.repo.CreateTransactions(ctx, txs); err != nil {
		return fmt.Errorf("create transactions: %w", err)
	}

	return nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteTransaction(ctx, id)
}

// Summary returns Stats over the stored transactions matching filter.
func (s *Service) Summary(ctx context.Context, filter ListFilter) (Stats, error) {
	txs, err := s.repo.ListTransactions(ctx, filter)
	if err != nil {
		return Stats{}, fmt.Errorf("list transactions: %w", err)
	}

	return Summarize(txs), nil
}
