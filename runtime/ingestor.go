// Package runtime applies transaction streams to a profile's document store.
// It owns the single writer of a profile: one record at a time, each record
// committed as its own atomic batch.
package runtime

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"chat-store/codec"
	"chat-store/domain"
	"chat-store/errors"
	"chat-store/infrastructure/storage"
	"chat-store/observability"
	"chat-store/projection"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Ingestor struct {
	mu    sync.Mutex
	store storage.IDocumentStore
	view  *projection.ChatroomView
	log   *slog.Logger
}

func NewIngestor(store storage.IDocumentStore, view *projection.ChatroomView, log *slog.Logger) *Ingestor {
	return &Ingestor{store: store, view: view, log: log}
}

// Apply validates and commits a single record.
func (i *Ingestor) Apply(ctx context.Context, tx domain.Transaction) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.apply(ctx, tx)
}

// Consume applies records in order until the source is drained. It stops at
// the first rejected record: records before it stay committed and the
// returned AbortedError carries the index of the failing one. The count of
// committed records is returned in every case.
func (i *Ingestor) Consume(ctx context.Context, src domain.TransactionSource) (int, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	applied := 0
	for {
		tx, err := src.Next(ctx)
		if stderrors.Is(err, io.EOF) {
			observability.CommitStreams.WithLabelValues("ok").Inc()
			return applied, nil
		}
		if err == nil {
			err = i.apply(ctx, tx)
		}
		if err != nil {
			observability.CommitStreams.WithLabelValues("aborted").Inc()
			i.log.Warn("Commit stream aborted", "index", applied, "error", err)
			return applied, &errors.AbortedError{Index: applied, Err: err}
		}
		applied++
	}
}

func (i *Ingestor) apply(ctx context.Context, tx domain.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tx == nil {
		i.reject("unknown", errors.ErrUnrecognizedPayload)
		return errors.WrapValidation(errors.ErrUnrecognizedPayload)
	}

	start := time.Now()
	err := i.dispatch(tx)
	observability.ApplyDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		i.reject(tx.Op(), err)
		return err
	}
	observability.TransactionsApplied.WithLabelValues(tx.Op()).Inc()
	i.log.Debug("Transaction applied", "op", tx.Op())
	return nil
}

func (i *Ingestor) dispatch(tx domain.Transaction) error {
	if err := validate.Struct(tx); err != nil {
		return errors.WrapValidation(err)
	}
	switch t := tx.(type) {
	case domain.AddMessage:
		return i.addMessage(t)
	case domain.AddChatroom:
		return i.store.Batch(func(txn *storage.Txn) error {
			return i.view.ApplyChatroom(txn, domain.Chatroom{Name: t.Name, Members: t.Members})
		})
	case domain.AddPeer:
		return i.store.Batch(func(txn *storage.Txn) error {
			return txn.Put(codec.EncodePeer(t.Peer()))
		})
	case domain.AddVcard:
		return i.store.Batch(func(txn *storage.Txn) error {
			return txn.Put(codec.EncodeVcard(t.Vcard()))
		})
	case domain.Delete:
		return i.delete(t)
	default:
		return errors.WrapValidation(fmt.Errorf("%w: %T", errors.ErrUnrecognizedPayload, tx))
	}
}

func (i *Ingestor) addMessage(p domain.AddMessage) error {
	msg := p.Message()
	if p.MessageID != nil && *p.MessageID != msg.ID {
		return errors.WrapValidation(fmt.Errorf("%w: got %s, computed %s", errors.ErrMessageIDMismatch, p.MessageID, msg.ID))
	}
	return i.store.Batch(func(txn *storage.Txn) error {
		if err := txn.Put(codec.EncodeMessage(msg)); err != nil {
			return err
		}
		return i.view.ApplyMessage(txn, msg)
	})
}

// delete removes a document. A message deletion also re-points its chatroom.
// Deleting something absent commits nothing.
func (i *Ingestor) delete(d domain.Delete) error {
	key := d.Target.Key(d.ID)
	return i.store.Batch(func(txn *storage.Txn) error {
		doc, found, err := txn.Get(key)
		if err != nil || !found {
			return err
		}
		if err = txn.Delete(key); err != nil {
			return err
		}
		if d.Target != domain.KindMessage {
			return nil
		}
		msg, err := codec.DecodeMessage(doc)
		if err != nil {
			return err
		}
		return i.view.RemoveMessage(txn, msg)
	})
}

func (i *Ingestor) reject(op string, err error) {
	reason := "storage"
	switch {
	case errors.IsValidation(err):
		reason = "validation"
	case errors.IsCorruption(err):
		reason = "corruption"
	}
	observability.TransactionsRejected.WithLabelValues(op, reason).Inc()
	i.log.Warn("Transaction rejected", "op", op, "reason", reason, "error", err)
}
