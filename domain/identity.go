package domain

import (
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/blake2b"
)

const messageDomain = "chat-store message"

// IDOf hashes arbitrary content into an ID.
func IDOf(content []byte) ID {
	return blake2b.Sum256(content)
}

// AccountIDOf derives an account id from its certificate bytes.
func AccountIDOf(certificate []byte) ID {
	return IDOf(certificate)
}

// ChatroomIDOf hashes the canonical member set. Member order and duplicates
// never change the result. Callers reject an empty member set beforehand.
func ChatroomIDOf(members []ID) ID {
	h := newHasher()
	for _, member := range CanonicalIDs(members) {
		writeBytes(h, member[:])
	}
	return sum(h)
}

// MessageIDOf hashes every field a message is made of. Recipients are hashed
// in canonical order so that permuting them yields the same message.
func MessageIDOf(m AddMessage) ID {
	h := newHasher()
	writeBytes(h, []byte(messageDomain))
	writeBytes(h, m.Sender[:])

	recipients := CanonicalIDs(m.Recipients)
	writeUint(h, uint64(len(recipients)))
	for _, recipient := range recipients {
		h.Write(recipient[:])
	}

	// Seconds and nanoseconds apart so that every year gets its own encoding.
	writeUint(h, uint64(m.Time.Unix()))
	writeUint(h, uint64(m.Time.Nanosecond()))
	writeBytes(h, []byte(m.Content))

	if m.Attachment != nil {
		writeUint(h, 1)
		writeBytes(h, []byte(m.Attachment.MIME))
		digest := IDOf(m.Attachment.Content)
		h.Write(digest[:])
	} else {
		writeUint(h, 0)
	}
	return sum(h)
}

func newHasher() hash.Hash {
	// New256 only fails on an oversized key.
	h, _ := blake2b.New256(nil)
	return h
}

func writeUint(h hash.Hash, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}

// writeBytes length-prefixes b so that adjacent fields cannot collide.
func writeBytes(h hash.Hash, b []byte) {
	writeUint(h, uint64(len(b)))
	h.Write(b)
}

func sum(h hash.Hash) ID {
	var id ID
	copy(id[:], h.Sum(nil))
	return id
}
