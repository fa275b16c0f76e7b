//go:generate go run go.uber.org/mock/mockgen -source=chatroom.go -destination=../mocks/mock_chatroom_repository.go -package=mocks
package repositories

import (
	"log/slog"

	"chat-store/codec"
	"chat-store/domain"
	"chat-store/infrastructure/storage"
	"chat-store/subscription"
)

type IChatroomRepository interface {
	Find(id domain.ID) (domain.Chatroom, bool, error)
	All() ([]domain.Chatroom, error)
	Watch(id domain.ID) *subscription.Subscription[*domain.Chatroom]
	WatchAll() *subscription.Subscription[[]domain.Chatroom]
}

type ChatroomRepository struct {
	store    storage.IDocumentStore
	registry *subscription.Registry
	log      *slog.Logger
}

func NewChatroomRepository(store storage.IDocumentStore, registry *subscription.Registry, log *slog.Logger) ChatroomRepository {
	return ChatroomRepository{store: store, registry: registry, log: log}
}

func (c ChatroomRepository) Find(id domain.ID) (domain.Chatroom, bool, error) {
	return find(c.store, domain.KindChatroom, id, codec.DecodeChatroom)
}

// All lists chatrooms, most recently active first.
func (c ChatroomRepository) All() ([]domain.Chatroom, error) {
	return list(c.store, allChatrooms, codec.DecodeChatroom)
}

func (c ChatroomRepository) Watch(id domain.ID) *subscription.Subscription[*domain.Chatroom] {
	return watchOne(c.registry, c.store, domain.KindChatroom, id, codec.DecodeChatroom)
}

func (c ChatroomRepository) WatchAll() *subscription.Subscription[[]domain.Chatroom] {
	return watchList(c.registry, c.store, allChatrooms, codec.DecodeChatroom)
}

var allChatrooms = storage.Query{
	Prefix:     domain.KindChatroom.Prefix(),
	OrderBy:    codec.FieldLastActivity,
	Descending: true,
}
