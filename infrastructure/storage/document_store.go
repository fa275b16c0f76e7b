//go:generate go run go.uber.org/mock/mockgen -source=document_store.go -destination=../../mocks/mock_document_store.go -package=mocks
package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Listener is told which keys a committed batch wrote or deleted. It runs on
// the writer goroutine before Batch returns and may read the store, which
// already holds the batch. The next write waits for it, so listeners with
// heavy work record the keys and defer the rest to a worker.
type Listener interface {
	Changed(keys []string)
}

type IDocumentStore interface {
	Get(key string) (Document, bool, error)
	Query(q Query) ([]Document, error)
	Put(doc Document) error
	Delete(key string) error
	View(fn func(tx *Txn) error) error
	Batch(fn func(tx *Txn) error) error
	AddListener(listeners ...Listener)
}

// DocumentStore maps namespaced documents onto BadgerDB. Every write goes
// through Batch: one badger transaction, visible all at once or not at all.
type DocumentStore struct {
	db        *badger.DB
	log       *slog.Logger
	mu        sync.RWMutex
	listeners []Listener
}

func NewDocumentStore(db *badger.DB, log *slog.Logger) *DocumentStore {
	return &DocumentStore{db: db, log: log}
}

func (s *DocumentStore) AddListener(listeners ...Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listeners...)
}

func (s *DocumentStore) Get(key string) (Document, bool, error) {
	var (
		doc   Document
		found bool
	)
	err := s.View(func(tx *Txn) error {
		var err error
		doc, found, err = tx.Get(key)
		return err
	})
	return doc, found, err
}

func (s *DocumentStore) Query(q Query) ([]Document, error) {
	var docs []Document
	err := s.View(func(tx *Txn) error {
		var err error
		docs, err = tx.Query(q)
		return err
	})
	return docs, err
}

func (s *DocumentStore) Put(doc Document) error {
	return s.Batch(func(tx *Txn) error {
		return tx.Put(doc)
	})
}

func (s *DocumentStore) Delete(key string) error {
	return s.Batch(func(tx *Txn) error {
		return tx.Delete(key)
	})
}

// View runs fn against a read-only snapshot.
func (s *DocumentStore) View(fn func(tx *Txn) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		return fn(&Txn{txn: txn})
	})
}

// Batch runs fn in a single read-write transaction. If fn fails nothing is
// written. Listeners are notified only after a successful commit.
func (s *DocumentStore) Batch(fn func(tx *Txn) error) error {
	var written []string
	err := s.db.Update(func(txn *badger.Txn) error {
		tx := &Txn{txn: txn, seen: make(map[string]struct{})}
		if err := fn(tx); err != nil {
			return err
		}
		written = tx.written
		return nil
	})
	if err != nil {
		return err
	}
	if len(written) > 0 {
		s.notify(written)
	}
	return nil
}

func (s *DocumentStore) notify(keys []string) {
	s.mu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	s.log.Debug("Batch committed", "keys", len(keys), "listeners", len(listeners))
	for _, l := range listeners {
		l.Changed(keys)
	}
}

// Txn is the view of one badger transaction. Reads observe the writes
// already made through the same Txn.
type Txn struct {
	txn     *badger.Txn
	written []string
	seen    map[string]struct{}
}

func (t *Txn) Get(key string) (Document, bool, error) {
	item, err := t.txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Document{}, false, nil
	}
	if err != nil {
		return Document{}, false, fmt.Errorf("get %s: %w", key, err)
	}
	doc, err := decodeItem(key, item)
	if err != nil {
		return Document{}, false, err
	}
	return doc, true, nil
}

func (t *Txn) Put(doc Document) error {
	if doc.Key == "" || doc.Body == nil {
		return fmt.Errorf("put: document without key or body")
	}
	data, err := proto.Marshal(doc.Body)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", doc.Key, err)
	}
	if err = t.txn.Set([]byte(doc.Key), data); err != nil {
		return fmt.Errorf("set %s: %w", doc.Key, err)
	}
	t.track(doc.Key)
	return nil
}

func (t *Txn) Delete(key string) error {
	if err := t.txn.Delete([]byte(key)); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	t.track(key)
	return nil
}

// Query scans the key prefix, keeps matching documents, then sorts and limits.
func (t *Txn) Query(q Query) ([]Document, error) {
	var docs []Document
	prefix := []byte(q.Prefix)

	options := badger.DefaultIteratorOptions
	options.Prefix = prefix
	it := t.txn.NewIterator(options)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		key := string(item.KeyCopy(nil))
		doc, err := decodeItem(key, item)
		if err != nil {
			return nil, err
		}
		if q.Matches(doc) {
			docs = append(docs, doc)
		}
	}
	return q.apply(docs), nil
}

// Writes counts the distinct keys written or deleted so far.
func (t *Txn) Writes() int {
	return len(t.written)
}

func (t *Txn) track(key string) {
	if t.seen == nil {
		return
	}
	if _, ok := t.seen[key]; ok {
		return
	}
	t.seen[key] = struct{}{}
	t.written = append(t.written, key)
}

func decodeItem(key string, item *badger.Item) (Document, error) {
	body := &structpb.Struct{}
	err := item.Value(func(value []byte) error {
		return proto.Unmarshal(value, body)
	})
	if err != nil {
		return Document{}, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return Document{Key: key, Body: body}, nil
}
