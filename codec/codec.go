package codec

import (
	"chat-store/domain"
	"chat-store/infrastructure/storage"

	"google.golang.org/protobuf/types/known/structpb"
)

func EncodeMessage(m domain.Message) storage.Document {
	fields := map[string]*structpb.Value{
		FieldType:       structpb.NewStringValue(string(domain.KindMessage)),
		FieldMessageID:  idValue(m.ID),
		FieldChatroomID: idValue(m.ChatroomID),
		FieldContent:    structpb.NewStringValue(m.Content),
		FieldTime:       timeValue(m.Time),
		FieldSender:     idValue(m.Sender),
		FieldRecipients: idsValue(m.Recipients),
	}
	if m.Attachment != nil {
		fields[FieldAttachment] = blobValue(m.Attachment)
	}
	return storage.NewDocument(domain.KindMessage.Key(m.ID), fields)
}

func DecodeMessage(doc storage.Document) (domain.Message, error) {
	d := newDecoder(doc)
	m := domain.Message{
		ID:         d.id(FieldMessageID, true),
		ChatroomID: d.id(FieldChatroomID, true),
		Content:    d.text(FieldContent, false),
		Attachment: d.blob(FieldAttachment),
		Time:       d.timestamp(FieldTime, true),
		Sender:     d.id(FieldSender, true),
		Recipients: d.ids(FieldRecipients, false),
	}
	if d.err != nil {
		return domain.Message{}, d.err
	}
	return m, nil
}

// EncodeChatroom stores members in canonical order. The latest message id is
// omitted while the chatroom has none.
func EncodeChatroom(c domain.Chatroom) storage.Document {
	fields := map[string]*structpb.Value{
		FieldType:         structpb.NewStringValue(string(domain.KindChatroom)),
		FieldChatroomID:   idValue(c.ID),
		FieldName:         structpb.NewStringValue(c.Name),
		FieldMembers:      idsValue(domain.CanonicalIDs(c.Members)),
		FieldLastActivity: timeValue(c.LastActivity),
	}
	if c.HasLatestMessage() {
		fields[FieldLatestMessageID] = idValue(c.LatestMessageID)
	}
	return storage.NewDocument(domain.KindChatroom.Key(c.ID), fields)
}

func DecodeChatroom(doc storage.Document) (domain.Chatroom, error) {
	d := newDecoder(doc)
	c := domain.Chatroom{
		ID:              d.id(FieldChatroomID, true),
		Name:            d.text(FieldName, false),
		Members:         d.ids(FieldMembers, true),
		LatestMessageID: d.id(FieldLatestMessageID, false),
		LastActivity:    d.timestamp(FieldLastActivity, true),
	}
	if d.err == nil && len(c.Members) == 0 {
		d.fail(FieldMembers)
	}
	if d.err != nil {
		return domain.Chatroom{}, d.err
	}
	return c, nil
}

func EncodePeer(p domain.Peer) storage.Document {
	return storage.NewDocument(domain.KindPeer.Key(p.AccountID), map[string]*structpb.Value{
		FieldType:      structpb.NewStringValue(string(domain.KindPeer)),
		FieldAccountID: idValue(p.AccountID),
		FieldName:      structpb.NewStringValue(p.Name),
		FieldRole:      structpb.NewStringValue(string(p.Role)),
	})
}

func DecodePeer(doc storage.Document) (domain.Peer, error) {
	d := newDecoder(doc)
	p := domain.Peer{
		AccountID: d.id(FieldAccountID, true),
		Name:      d.text(FieldName, false),
		Role:      domain.PeerRole(d.text(FieldRole, true)),
	}
	if d.err == nil && !p.Role.Valid() {
		d.fail(FieldRole)
	}
	if d.err != nil {
		return domain.Peer{}, d.err
	}
	return p, nil
}

func EncodeVcard(v domain.Vcard) storage.Document {
	fields := map[string]*structpb.Value{
		FieldType:        structpb.NewStringValue(string(domain.KindVcard)),
		FieldAccountID:   idValue(v.AccountID),
		FieldName:        structpb.NewStringValue(v.Name),
		FieldTimeUpdated: timeValue(v.UpdatedAt),
	}
	if v.Photo != nil {
		fields[FieldPhoto] = blobValue(v.Photo)
	}
	return storage.NewDocument(domain.KindVcard.Key(v.AccountID), fields)
}

func DecodeVcard(doc storage.Document) (domain.Vcard, error) {
	d := newDecoder(doc)
	v := domain.Vcard{
		AccountID: d.id(FieldAccountID, true),
		Name:      d.text(FieldName, false),
		Photo:     d.blob(FieldPhoto),
		UpdatedAt: d.timestamp(FieldTimeUpdated, true),
	}
	if d.err != nil {
		return domain.Vcard{}, d.err
	}
	return v, nil
}

// DecodeMessages decodes a query result, failing on the first corrupted document.
func DecodeMessages(docs []storage.Document) ([]domain.Message, error) {
	return decodeAll(docs, DecodeMessage)
}

func DecodeChatrooms(docs []storage.Document) ([]domain.Chatroom, error) {
	return decodeAll(docs, DecodeChatroom)
}

func DecodePeers(docs []storage.Document) ([]domain.Peer, error) {
	return decodeAll(docs, DecodePeer)
}

func decodeAll[T any](docs []storage.Document, decode func(storage.Document) (T, error)) ([]T, error) {
	res := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := decode(doc)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}
