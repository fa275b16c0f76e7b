package domain

import (
	"time"
)

// Message is an immutable chat message. Its ID is the hash of its content and
// its ChatroomID is derived from {Sender} ∪ Recipients, never transmitted.
type Message struct {
	ID         ID
	ChatroomID ID
	Content    string
	Attachment *Blob
	Time       time.Time
	Sender     ID
	Recipients []ID
}

// Members returns the canonical member set of the chatroom owning m.
func (m Message) Members() []ID {
	return CanonicalIDs(append([]ID{m.Sender}, m.Recipients...))
}
