package domain

import (
	"context"
	"time"
)

// Transaction is one record of the commit stream. The set of variants is
// closed: AddMessage, AddChatroom, AddPeer, AddVcard and Delete.
type Transaction interface {
	Kind() Kind
	Op() string
	isTransaction()
}

// TransactionSource yields records in commit order and io.EOF once drained.
type TransactionSource interface {
	Next(ctx context.Context) (Transaction, error)
}

// AddMessage commits a message. MessageID is optional; when present it must
// equal the content hash of the other fields.
type AddMessage struct {
	MessageID  *ID
	Content    string
	Attachment *Blob     `validate:"omitempty"`
	Time       time.Time `validate:"required"`
	Sender     ID        `validate:"required"`
	Recipients []ID      `validate:"dive,required"`
}

func (AddMessage) Kind() Kind     { return KindMessage }
func (AddMessage) Op() string     { return "AddMessage" }
func (AddMessage) isTransaction() {}

// Message builds the entity: canonical recipients, content id, owning chatroom.
func (p AddMessage) Message() Message {
	recipients := CanonicalIDs(p.Recipients)
	p.Recipients = recipients
	var attachment *Blob
	if p.Attachment != nil {
		a := *p.Attachment
		attachment = &a
	}
	msg := Message{
		ID:         MessageIDOf(p),
		Content:    p.Content,
		Attachment: attachment,
		Time:       p.Time.UTC(),
		Sender:     p.Sender,
		Recipients: recipients,
	}
	msg.ChatroomID = ChatroomIDOf(msg.Members())
	return msg
}

// AddChatroom commits chatroom metadata. The chatroom id is derived from Members.
type AddChatroom struct {
	Name    string
	Members []ID `validate:"min=1,dive,required"`
}

func (AddChatroom) Kind() Kind     { return KindChatroom }
func (AddChatroom) Op() string     { return "AddChatroom" }
func (AddChatroom) isTransaction() {}

func (p AddChatroom) ChatroomID() ID {
	return ChatroomIDOf(p.Members)
}

type AddPeer struct {
	AccountID ID `validate:"required"`
	Name      string
	Role      PeerRole `validate:"oneof=friend blocked unknown"`
}

func (AddPeer) Kind() Kind     { return KindPeer }
func (AddPeer) Op() string     { return "AddPeer" }
func (AddPeer) isTransaction() {}

func (p AddPeer) Peer() Peer {
	return Peer{AccountID: p.AccountID, Name: p.Name, Role: p.Role}
}

type AddVcard struct {
	AccountID ID `validate:"required"`
	Name      string
	Photo     *Blob     `validate:"omitempty"`
	UpdatedAt time.Time `validate:"required"`
}

func (AddVcard) Kind() Kind     { return KindVcard }
func (AddVcard) Op() string     { return "AddVcard" }
func (AddVcard) isTransaction() {}

func (p AddVcard) Vcard() Vcard {
	var photo *Blob
	if p.Photo != nil {
		b := *p.Photo
		photo = &b
	}
	return Vcard{AccountID: p.AccountID, Name: p.Name, Photo: photo, UpdatedAt: p.UpdatedAt.UTC()}
}

// Delete removes the document of the given kind and id.
type Delete struct {
	Target Kind `validate:"oneof=Message Chatroom Peer Vcard"`
	ID     ID   `validate:"required"`
}

func (d Delete) Kind() Kind   { return d.Target }
func (d Delete) Op() string   { return "Delete" + string(d.Target) }
func (Delete) isTransaction() {}
