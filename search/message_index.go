// Package search keeps a full-text index of message contents next to the
// document store. The index is derived: it can always be rebuilt from the
// stored messages.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"chat-store/codec"
	"chat-store/domain"
	"chat-store/infrastructure/storage"
	"chat-store/observability"

	"github.com/blugelabs/bluge"
)

const (
	fieldContent  = "content"
	fieldChatroom = "chatroom"
	fieldSender   = "sender"
	fieldTime     = "time"

	defaultLimit = 20
)

// Query searches message contents, optionally within one chatroom.
type Query struct {
	Text       string
	ChatroomID *domain.ID
	Limit      int
}

type MessageIndex struct {
	writer *bluge.Writer
	store  storage.IDocumentStore
	log    *slog.Logger
}

func NewMessageIndex(writer *bluge.Writer, store storage.IDocumentStore, log *slog.Logger) *MessageIndex {
	return &MessageIndex{writer: writer, store: store, log: log}
}

// Changed reindexes the messages a committed batch touched. It runs inline so
// that a search issued once Batch returned already sees the batch. Index
// failures are logged; the store stays the source of truth.
func (i *MessageIndex) Changed(keys []string) {
	prefix := domain.KindMessage.Prefix()
	for _, key := range keys {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if err := i.sync(key); err != nil {
			i.log.Error("Message index update failed", "key", key, "error", err)
		}
	}
}

func (i *MessageIndex) sync(key string) error {
	doc, found, err := i.store.Get(key)
	if err != nil {
		return err
	}
	id := strings.TrimPrefix(key, domain.KindMessage.Prefix())
	if !found {
		return i.writer.Delete(bluge.Identifier(id))
	}
	msg, err := codec.DecodeMessage(doc)
	if err != nil {
		return err
	}
	return i.Index(msg)
}

func (i *MessageIndex) Index(msg domain.Message) error {
	doc := messageDocument(msg)
	if err := i.writer.Update(doc.ID(), doc); err != nil {
		return fmt.Errorf("index message %s: %w", msg.ID, err)
	}
	observability.IndexedMessages.Inc()
	return nil
}

func messageDocument(msg domain.Message) *bluge.Document {
	return bluge.NewDocument(msg.ID.String()).
		AddField(bluge.NewTextField(fieldContent, msg.Content)).
		AddField(bluge.NewKeywordField(fieldChatroom, msg.ChatroomID.String())).
		AddField(bluge.NewKeywordField(fieldSender, msg.Sender.String())).
		AddField(bluge.NewDateTimeField(fieldTime, msg.Time))
}

// Rebuild indexes every stored message.
func (i *MessageIndex) Rebuild() (int, error) {
	docs, err := i.store.Query(storage.Query{Prefix: domain.KindMessage.Prefix()})
	if err != nil {
		return 0, err
	}
	msgs, err := codec.DecodeMessages(docs)
	if err != nil {
		return 0, err
	}
	batch := bluge.NewBatch()
	for _, msg := range msgs {
		doc := messageDocument(msg)
		batch.Update(doc.ID(), doc)
	}
	if err = i.writer.Batch(batch); err != nil {
		return 0, fmt.Errorf("rebuild message index: %w", err)
	}
	i.log.Info("Message index rebuilt", "messages", len(msgs))
	return len(msgs), nil
}

// Search returns the ids of matching messages, best match first.
func (i *MessageIndex) Search(ctx context.Context, q Query) ([]domain.ID, error) {
	observability.SearchQueries.Inc()
	if strings.TrimSpace(q.Text) == "" {
		return nil, nil
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	query := bluge.NewBooleanQuery().AddMust(bluge.NewMatchQuery(q.Text).SetField(fieldContent))
	if q.ChatroomID != nil {
		query.AddMust(bluge.NewTermQuery(q.ChatroomID.String()).SetField(fieldChatroom))
	}

	reader, err := i.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("open index reader: %w", err)
	}
	defer func() { _ = reader.Close() }()

	matches, err := reader.Search(ctx, bluge.NewTopNSearch(limit, query))
	if err != nil {
		return nil, fmt.Errorf("search messages: %w", err)
	}

	var ids []domain.ID
	match, err := matches.Next()
	for err == nil && match != nil {
		var visitErr error
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field != "_id" {
				return true
			}
			var id domain.ID
			id, visitErr = domain.ParseID(string(value))
			if visitErr == nil {
				ids = append(ids, id)
			}
			return false
		})
		if err == nil {
			err = visitErr
		}
		if err == nil {
			match, err = matches.Next()
		}
	}
	if err != nil {
		return nil, fmt.Errorf("read search results: %w", err)
	}
	return ids, nil
}
