//go:generate go run go.uber.org/mock/mockgen -source=vcard.go -destination=../mocks/mock_vcard_repository.go -package=mocks
package repositories

import (
	"log/slog"

	"chat-store/codec"
	"chat-store/domain"
	"chat-store/infrastructure/storage"
	"chat-store/subscription"
)

type IVcardRepository interface {
	Find(id domain.ID) (domain.Vcard, bool, error)
	Watch(id domain.ID) *subscription.Subscription[*domain.Vcard]
}

type VcardRepository struct {
	store    storage.IDocumentStore
	registry *subscription.Registry
	log      *slog.Logger
}

func NewVcardRepository(store storage.IDocumentStore, registry *subscription.Registry, log *slog.Logger) VcardRepository {
	return VcardRepository{store: store, registry: registry, log: log}
}

func (v VcardRepository) Find(id domain.ID) (domain.Vcard, bool, error) {
	return find(v.store, domain.KindVcard, id, codec.DecodeVcard)
}

func (v VcardRepository) Watch(id domain.ID) *subscription.Subscription[*domain.Vcard] {
	return watchOne(v.registry, v.store, domain.KindVcard, id, codec.DecodeVcard)
}
