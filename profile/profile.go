// Package profile owns the per-account resources: the Badger database, the
// document store on top of it, the subscription registry, the message search
// index and the single ingestor writing to them. Nothing is global; every
// component receives the profile it works on.
package profile

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"chat-store/domain"
	"chat-store/infrastructure/storage"
	"chat-store/projection"
	"chat-store/repositories"
	"chat-store/runtime"
	"chat-store/search"
	"chat-store/subscription"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
)

type Options struct {
	AccountID    domain.ID
	Badger       badger.Options
	BlugePath    string
	RebuildIndex bool
}

type Profile struct {
	AccountID domain.ID
	DB        *badger.DB
	Store     *storage.DocumentStore
	Registry  *subscription.Registry
	Index     *search.MessageIndex
	Ingestor  *runtime.Ingestor

	Messages  repositories.IMessageRepository
	Chatrooms repositories.IChatroomRepository
	Peers     repositories.IPeerRepository
	Vcards    repositories.IVcardRepository

	blugeWriter *bluge.Writer
	log         *slog.Logger
}

// Open opens the account's storage and wires its components. On failure
// everything opened so far is closed again.
func Open(opts Options, log *slog.Logger) (*Profile, error) {
	if opts.AccountID.IsZero() {
		return nil, fmt.Errorf("profile needs an account id")
	}
	db, err := badger.Open(opts.Badger)
	if err != nil {
		return nil, fmt.Errorf("database opening failed: %w", err)
	}
	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(opts.BlugePath))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open bluge writer: %w", err)
	}

	log = log.With("account", opts.AccountID.String())
	store := storage.NewDocumentStore(db, log)
	registry := subscription.NewRegistry(log)
	index := search.NewMessageIndex(blugeWriter, store, log)
	store.AddListener(index, registry)

	p := &Profile{
		AccountID:   opts.AccountID,
		DB:          db,
		Store:       store,
		Registry:    registry,
		Index:       index,
		Ingestor:    runtime.NewIngestor(store, projection.NewChatroomView(log), log),
		Messages:    repositories.NewMessageRepository(store, registry, log),
		Chatrooms:   repositories.NewChatroomRepository(store, registry, log),
		Peers:       repositories.NewPeerRepository(store, registry, log),
		Vcards:      repositories.NewVcardRepository(store, registry, log),
		blugeWriter: blugeWriter,
		log:         log,
	}

	if opts.RebuildIndex {
		if _, err = index.Rebuild(); err != nil {
			_ = p.Close()
			return nil, err
		}
	}
	log.Info("Profile opened")
	return p, nil
}

// Apply commits one record through the profile's single writer.
func (p *Profile) Apply(ctx context.Context, tx domain.Transaction) error {
	return p.Ingestor.Apply(ctx, tx)
}

// Close releases open subscriptions, then the index and the database.
func (p *Profile) Close() error {
	p.Registry.Close()
	var errs []error
	if err := p.blugeWriter.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close bluge: %w", err))
	}
	if err := p.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close badger: %w", err))
	}
	p.log.Info("Profile closed")
	return stderrors.Join(errs...)
}

// BadgerOptions follows the process log level.
func BadgerOptions(path string, log *slog.Logger) badger.Options {
	options := badger.DefaultOptions(path)
	if log.Enabled(context.Background(), slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG)
	}
	return options.WithLoggingLevel(badger.WARNING)
}
