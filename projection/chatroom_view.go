// Package projection maintains the chatroom aggregates derived from messages.
// Every operation runs inside the caller's batch so that the message and the
// aggregate it changes commit together.
package projection

import (
	"log/slog"
	"time"

	"chat-store/codec"
	"chat-store/domain"
	"chat-store/errors"
	"chat-store/infrastructure/storage"
)

type ChatroomView struct {
	log *slog.Logger
}

func NewChatroomView(log *slog.Logger) *ChatroomView {
	return &ChatroomView{log: log}
}

// ApplyMessage folds msg into its chatroom, creating the chatroom on first use.
// A message becomes the latest one when it is not older than the current
// latest message; last activity never decreases. Applying the same message twice writes nothing the second time.
func (v *ChatroomView) ApplyMessage(tx *storage.Txn, msg domain.Message) error {
	if msg.Sender.IsZero() {
		return errors.NewValidationError("no sender")
	}
	members := msg.Members()
	chatroomID := domain.ChatroomIDOf(members)

	chatroom, found, err := v.load(tx, chatroomID)
	if err != nil {
		return err
	}
	if !found {
		name, err := v.FallbackName(tx, members)
		if err != nil {
			return err
		}
		v.log.Debug("Chatroom created from message", "chatroom", chatroomID, "message", msg.ID)
		return tx.Put(codec.EncodeChatroom(domain.Chatroom{
			ID:              chatroomID,
			Name:            name,
			Members:         members,
			LatestMessageID: msg.ID,
			LastActivity:    msg.Time,
		}))
	}

	latestTime, hasLatest, err := v.latestTime(tx, chatroom)
	if err != nil {
		return err
	}
	changed := false
	if chatroom.LatestMessageID != msg.ID && (!hasLatest || !msg.Time.Before(latestTime)) {
		chatroom.LatestMessageID = msg.ID
		changed = true
	}
	if msg.Time.After(chatroom.LastActivity) {
		chatroom.LastActivity = msg.Time
		changed = true
	}
	if !changed {
		return nil
	}
	return tx.Put(codec.EncodeChatroom(chatroom))
}

// latestTime is the time of the message the chatroom points at. It differs
// from last activity once the latest message has been deleted.
func (v *ChatroomView) latestTime(tx *storage.Txn, chatroom domain.Chatroom) (time.Time, bool, error) {
	if !chatroom.HasLatestMessage() {
		return time.Time{}, false, nil
	}
	doc, found, err := tx.Get(domain.KindMessage.Key(chatroom.LatestMessageID))
	if err != nil || !found {
		return time.Time{}, false, err
	}
	latest, err := codec.DecodeMessage(doc)
	if err != nil {
		return time.Time{}, false, err
	}
	return latest.Time, true, nil
}

// ApplyChatroom stores chatroom metadata while keeping the aggregates already
// derived from messages. An empty name is replaced by the fallback name.
func (v *ChatroomView) ApplyChatroom(tx *storage.Txn, chatroom domain.Chatroom) error {
	if len(chatroom.Members) == 0 {
		return errors.WrapValidation(errors.ErrEmptyMembers)
	}
	chatroom.Members = domain.CanonicalIDs(chatroom.Members)
	chatroom.ID = domain.ChatroomIDOf(chatroom.Members)

	// Zero aggregates when the chatroom is new.
	existing, _, err := v.load(tx, chatroom.ID)
	if err != nil {
		return err
	}
	chatroom.LatestMessageID = existing.LatestMessageID
	chatroom.LastActivity = existing.LastActivity
	if chatroom.Name == "" {
		if chatroom.Name, err = v.FallbackName(tx, chatroom.Members); err != nil {
			return err
		}
	}
	return tx.Put(codec.EncodeChatroom(chatroom))
}

// RemoveMessage re-points the chatroom to its newest remaining message when
// msg was its latest one. Last activity is left untouched.
func (v *ChatroomView) RemoveMessage(tx *storage.Txn, msg domain.Message) error {
	chatroom, found, err := v.load(tx, msg.ChatroomID)
	if err != nil || !found {
		return err
	}
	if chatroom.LatestMessageID != msg.ID {
		return nil
	}

	docs, err := tx.Query(storage.Query{
		Prefix:     domain.KindMessage.Prefix(),
		Where:      []storage.Condition{storage.Equal(codec.FieldChatroomID, msg.ChatroomID.String())},
		OrderBy:    codec.FieldTime,
		Descending: true,
	})
	if err != nil {
		return err
	}
	deletedKey := domain.KindMessage.Key(msg.ID)
	chatroom.LatestMessageID = domain.ID{}
	for _, doc := range docs {
		if doc.Key == deletedKey {
			continue
		}
		remaining, err := codec.DecodeMessage(doc)
		if err != nil {
			return err
		}
		chatroom.LatestMessageID = remaining.ID
		break
	}
	v.log.Debug("Chatroom latest message re-pointed", "chatroom", chatroom.ID, "latest", chatroom.LatestMessageID)
	return tx.Put(codec.EncodeChatroom(chatroom))
}

// FallbackName names a chatroom after its members: the peer name, else the
// vcard name, else the hex account id.
func (v *ChatroomView) FallbackName(tx *storage.Txn, members []domain.ID) (string, error) {
	names := make([]string, 0, len(members))
	for _, member := range domain.CanonicalIDs(members) {
		name, err := displayName(tx, member)
		if err != nil {
			return "", err
		}
		names = append(names, name)
	}
	return domain.FallbackName(names), nil
}

func displayName(tx *storage.Txn, account domain.ID) (string, error) {
	doc, found, err := tx.Get(domain.KindPeer.Key(account))
	if err != nil {
		return "", err
	}
	if found {
		peer, err := codec.DecodePeer(doc)
		if err != nil {
			return "", err
		}
		if peer.Name != "" {
			return peer.Name, nil
		}
	}

	doc, found, err = tx.Get(domain.KindVcard.Key(account))
	if err != nil {
		return "", err
	}
	if found {
		vcard, err := codec.DecodeVcard(doc)
		if err != nil {
			return "", err
		}
		if vcard.Name != "" {
			return vcard.Name, nil
		}
	}
	return account.String(), nil
}

func (v *ChatroomView) load(tx *storage.Txn, id domain.ID) (domain.Chatroom, bool, error) {
	doc, found, err := tx.Get(domain.KindChatroom.Key(id))
	if err != nil || !found {
		return domain.Chatroom{}, false, err
	}
	chatroom, err := codec.DecodeChatroom(doc)
	if err != nil {
		return domain.Chatroom{}, false, err
	}
	return chatroom, true, nil
}
