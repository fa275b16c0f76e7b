// Package domain contains core concepts of the chat store.
// Entities are immutable snapshots; identities are content addressed.
// No storage, network, or UI logic should be added here.
package domain

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

const IDSize = 32

// ID is a content-addressed identifier (a BLAKE2b-256 digest).
type ID [IDSize]byte

// String is the canonical text form: upper-case hex.
func (id ID) String() string {
	return strings.ToUpper(hex.EncodeToString(id[:]))
}

func (id ID) IsZero() bool {
	return id == ID{}
}

// ParseID decodes hex text in either case.
func ParseID(text string) (ID, error) {
	var id ID
	raw, err := hex.DecodeString(strings.ToLower(strings.TrimSpace(text)))
	if err != nil {
		return id, fmt.Errorf("invalid id %q: %w", text, err)
	}
	if len(raw) != IDSize {
		return id, fmt.Errorf("invalid id %q: expected %d bytes, got %d", text, IDSize, len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

func MustParseID(text string) ID {
	id, err := ParseID(text)
	if err != nil {
		panic(err)
	}
	return id
}

// CanonicalIDs deduplicates ids and sorts them bytewise.
// Returns nil for an empty input.
func CanonicalIDs(ids []ID) []ID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[ID]struct{}, len(ids))
	res := make([]ID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i][:], res[j][:]) < 0
	})
	return res
}

// Kind namespaces stored documents.
type Kind string

const (
	KindMessage  Kind = "Message"
	KindChatroom Kind = "Chatroom"
	KindPeer     Kind = "Peer"
	KindVcard    Kind = "Vcard"
)

func (k Kind) Valid() bool {
	switch k {
	case KindMessage, KindChatroom, KindPeer, KindVcard:
		return true
	default:
		return false
	}
}

// Prefix is the query prefix shared by every document of this kind.
func (k Kind) Prefix() string {
	return string(k) + ":"
}

// Key formats the storage key "{Kind}:{UPPERCASE_HEX_ID}".
func (k Kind) Key(id ID) string {
	return k.Prefix() + id.String()
}
