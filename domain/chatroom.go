package domain

import (
	"strings"
	"time"
)

const memberNameSeparator = ", "

// Chatroom is identified by its member set. LatestMessageID and LastActivity
// are aggregates maintained from the message stream.
type Chatroom struct {
	ID              ID
	Name            string
	Members         []ID
	LatestMessageID ID
	LastActivity    time.Time
}

// HasLatestMessage reports whether any message has been attached yet.
func (c Chatroom) HasLatestMessage() bool {
	return !c.LatestMessageID.IsZero()
}

// FallbackName joins member display names in member order.
func FallbackName(names []string) string {
	return strings.Join(names, memberNameSeparator)
}
