package main

import (
	stderrors "errors"
	"fmt"
	"strings"

	"chat-store/codec"
	"chat-store/domain"
	"chat-store/errors"
	"chat-store/infrastructure/storage"

	"github.com/samber/lo"
)

const maxDetail = 60

// Row is one printed line: the document key, its kind and a one-line summary.
type Row struct {
	Key       string
	Type      string
	Detail    string
	Corrupted bool
}

// Summarize decodes a document with its kind's codec. A document that fails
// to decode is still listed, flagged as corrupted.
func Summarize(doc storage.Document) Row {
	kind, _, _ := strings.Cut(doc.Key, ":")
	row := Row{Key: doc.Key, Type: kind}

	var (
		detail string
		err    error
	)
	switch domain.Kind(kind) {
	case domain.KindMessage:
		var m domain.Message
		if m, err = codec.DecodeMessage(doc); err == nil {
			detail = fmt.Sprintf("%s %s: %s", m.Time.Format("2006-01-02 15:04:05"), short(m.Sender), m.Content)
			if m.Attachment != nil {
				detail += fmt.Sprintf(" [%s, %d bytes]", m.Attachment.MIME, len(m.Attachment.Content))
			}
		}
	case domain.KindChatroom:
		var c domain.Chatroom
		if c, err = codec.DecodeChatroom(doc); err == nil {
			detail = fmt.Sprintf("%q members=%d", c.Name, len(c.Members))
			if c.HasLatestMessage() {
				detail += fmt.Sprintf(" latest=%s at %s", short(c.LatestMessageID), c.LastActivity.Format("2006-01-02 15:04:05"))
			}
		}
	case domain.KindPeer:
		var p domain.Peer
		if p, err = codec.DecodePeer(doc); err == nil {
			detail = fmt.Sprintf("%q %s", p.Name, p.Role)
		}
	case domain.KindVcard:
		var v domain.Vcard
		if v, err = codec.DecodeVcard(doc); err == nil {
			detail = fmt.Sprintf("%q updated %s", v.Name, v.UpdatedAt.Format("2006-01-02 15:04:05"))
			if v.Photo != nil {
				detail += " with photo"
			}
		}
	default:
		row.Type = "RAW"
		detail = strings.Join(lo.Keys(doc.Body.GetFields()), ",")
	}
	if err != nil {
		row.Corrupted = true
		detail = err.Error()
		var corruption *errors.CorruptionError
		if stderrors.As(err, &corruption) {
			detail = fmt.Sprintf("corrupted field %q", corruption.Field)
		}
	}
	row.Detail = truncate(detail)
	return row
}

func short(id domain.ID) string {
	return id.String()[:8]
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxDetail {
		return s
	}
	return string(runes[:maxDetail-1]) + "…"
}
