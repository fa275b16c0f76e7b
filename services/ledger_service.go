//go:generate go run go.uber.org/mock/mockgen -source=ledger_service.go -destination=../mocks/mock_ledger_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"

	"chat-store/codec"
	"chat-store/domain"
	"chat-store/errors"
	"chat-store/infrastructure/storage"
	"chat-store/profile"
	"chat-store/repositories"
	"chat-store/search"
)

type ILedgerService interface {
	Commit(ctx context.Context, src domain.TransactionSource) (int, error)
	Find(kind domain.Kind, id domain.ID) (storage.Document, bool, error)
	SearchMessages(ctx context.Context, text string) ([]domain.Message, error)
}

// TransactionConsumer is the single writer of a profile.
type TransactionConsumer interface {
	Consume(ctx context.Context, src domain.TransactionSource) (int, error)
}

// MessageSearcher resolves a full-text query to message ids, best match first.
type MessageSearcher interface {
	Search(ctx context.Context, q search.Query) ([]domain.ID, error)
}

// LedgerService answers the transport on behalf of one profile. Reads go
// through the repositories so that a corrupted document is reported, never
// served.
type LedgerService struct {
	ingestor  TransactionConsumer
	index     MessageSearcher
	messages  repositories.IMessageRepository
	chatrooms repositories.IChatroomRepository
	peers     repositories.IPeerRepository
	vcards    repositories.IVcardRepository
	log       *slog.Logger
}

func NewLedgerService(p *profile.Profile, log *slog.Logger) *LedgerService {
	return &LedgerService{
		ingestor:  p.Ingestor,
		index:     p.Index,
		messages:  p.Messages,
		chatrooms: p.Chatrooms,
		peers:     p.Peers,
		vcards:    p.Vcards,
		log:       log,
	}
}

func (s *LedgerService) Commit(ctx context.Context, src domain.TransactionSource) (int, error) {
	applied, err := s.ingestor.Consume(ctx, src)
	s.log.Debug("Commit stream consumed", "applied", applied)
	return applied, err
}

// Find returns the document of an entity, re-encoded from its decoded form.
func (s *LedgerService) Find(kind domain.Kind, id domain.ID) (storage.Document, bool, error) {
	var (
		doc   storage.Document
		found bool
		err   error
	)
	switch kind {
	case domain.KindMessage:
		var m domain.Message
		if m, found, err = s.messages.Find(id); found {
			doc = codec.EncodeMessage(m)
		}
	case domain.KindChatroom:
		var c domain.Chatroom
		if c, found, err = s.chatrooms.Find(id); found {
			doc = codec.EncodeChatroom(c)
		}
	case domain.KindPeer:
		var p domain.Peer
		if p, found, err = s.peers.Find(id); found {
			doc = codec.EncodePeer(p)
		}
	case domain.KindVcard:
		var v domain.Vcard
		if v, found, err = s.vcards.Find(id); found {
			doc = codec.EncodeVcard(v)
		}
	default:
		return storage.Document{}, false, errors.NewValidationError(fmt.Sprintf("unknown kind %q", kind))
	}
	if err != nil {
		return storage.Document{}, false, err
	}
	return doc, found, nil
}

// SearchMessages runs a full-text query and loads the matching messages,
// best match first.
func (s *LedgerService) SearchMessages(ctx context.Context, text string) ([]domain.Message, error) {
	ids, err := s.index.Search(ctx, search.Query{Text: text})
	if err != nil {
		return nil, err
	}
	messages := make([]domain.Message, 0, len(ids))
	for _, id := range ids {
		msg, found, err := s.messages.Find(id)
		if err != nil {
			return nil, err
		}
		if !found {
			s.log.Warn("Indexed message is missing from the store", "message", id)
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
