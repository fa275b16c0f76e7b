package runtime

import (
	"context"
	"io"

	"chat-store/domain"
)

// SliceSource replays an in-memory list of records.
type SliceSource struct {
	records []domain.Transaction
	next    int
}

func NewSliceSource(records ...domain.Transaction) *SliceSource {
	return &SliceSource{records: records}
}

func (s *SliceSource) Next(ctx context.Context) (domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.next >= len(s.records) {
		return nil, io.EOF
	}
	tx := s.records[s.next]
	s.next++
	return tx, nil
}

// FuncSource adapts a pull function, such as a stream Recv wrapped with a
// decoder, into a TransactionSource.
type FuncSource func(ctx context.Context) (domain.Transaction, error)

func (f FuncSource) Next(ctx context.Context) (domain.Transaction, error) {
	return f(ctx)
}
