//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"log/slog"

	"chat-store/codec"
	"chat-store/domain"
	"chat-store/infrastructure/storage"
	"chat-store/subscription"
)

type IMessageRepository interface {
	Find(id domain.ID) (domain.Message, bool, error)
	ByChatroom(chatroomID domain.ID, limit int) ([]domain.Message, error)
	Latest(chatroomID domain.ID) (domain.Message, bool, error)
	WatchChatroom(chatroomID domain.ID) *subscription.Subscription[[]domain.Message]
}

type MessageRepository struct {
	store    storage.IDocumentStore
	registry *subscription.Registry
	log      *slog.Logger
}

func NewMessageRepository(store storage.IDocumentStore, registry *subscription.Registry, log *slog.Logger) MessageRepository {
	return MessageRepository{store: store, registry: registry, log: log}
}

func (m MessageRepository) Find(id domain.ID) (domain.Message, bool, error) {
	return find(m.store, domain.KindMessage, id, codec.DecodeMessage)
}

// ByChatroom lists the messages of a chatroom, newest first. A zero limit
// returns them all.
func (m MessageRepository) ByChatroom(chatroomID domain.ID, limit int) ([]domain.Message, error) {
	return list(m.store, chatroomMessages(chatroomID, limit), codec.DecodeMessage)
}

// Latest follows the chatroom aggregate to its latest message.
func (m MessageRepository) Latest(chatroomID domain.ID) (domain.Message, bool, error) {
	chatroom, found, err := find(m.store, domain.KindChatroom, chatroomID, codec.DecodeChatroom)
	if err != nil || !found || !chatroom.HasLatestMessage() {
		return domain.Message{}, false, err
	}
	return m.Find(chatroom.LatestMessageID)
}

// WatchChatroom is the live version of ByChatroom.
func (m MessageRepository) WatchChatroom(chatroomID domain.ID) *subscription.Subscription[[]domain.Message] {
	m.log.Debug("Watching chatroom messages", "chatroom", chatroomID)
	return watchList(m.registry, m.store, chatroomMessages(chatroomID, 0), codec.DecodeMessage)
}

func chatroomMessages(chatroomID domain.ID, limit int) storage.Query {
	return storage.Query{
		Prefix:     domain.KindMessage.Prefix(),
		Where:      []storage.Condition{storage.Equal(codec.FieldChatroomID, chatroomID.String())},
		OrderBy:    codec.FieldTime,
		Descending: true,
		Limit:      limit,
	}
}
