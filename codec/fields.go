// Package codec maps domain entities to and from stored documents.
// Encoding is pure. Decoding never defaults a required field: a missing or
// malformed one is reported as a CorruptionError naming the key and field.
package codec

import (
	"encoding/base64"
	"time"

	"chat-store/domain"
	"chat-store/errors"
	"chat-store/infrastructure/storage"

	"github.com/samber/lo"
	"google.golang.org/protobuf/types/known/structpb"
)

// TimeLayout is fixed width so that text order is time order.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

const (
	FieldType            = "type"
	FieldMessageID       = "message-id"
	FieldChatroomID      = "chatroom-id"
	FieldContent         = "content"
	FieldAttachment      = "attachment"
	FieldTime            = "time"
	FieldSender          = "sender"
	FieldRecipients      = "recipients"
	FieldName            = "name"
	FieldMembers         = "members"
	FieldLatestMessageID = "latest-message-id"
	FieldLastActivity    = "last-activity"
	FieldAccountID       = "account-id"
	FieldRole            = "role"
	FieldPhoto           = "photo"
	FieldTimeUpdated     = "time-updated"

	blobMIME    = "mime"
	blobContent = "content"
)

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func ParseTime(text string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, text)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func idValue(id domain.ID) *structpb.Value {
	return structpb.NewStringValue(id.String())
}

func idsValue(ids []domain.ID) *structpb.Value {
	values := lo.Map(ids, func(id domain.ID, _ int) *structpb.Value {
		return idValue(id)
	})
	return structpb.NewListValue(&structpb.ListValue{Values: values})
}

func timeValue(t time.Time) *structpb.Value {
	return structpb.NewStringValue(FormatTime(t))
}

func blobValue(b *domain.Blob) *structpb.Value {
	return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
		blobMIME:    structpb.NewStringValue(b.MIME),
		blobContent: structpb.NewStringValue(base64.StdEncoding.EncodeToString(b.Content)),
	}})
}

// decoder reads typed fields off one document and remembers the first
// corrupted field it met.
type decoder struct {
	doc storage.Document
	err error
}

func newDecoder(doc storage.Document) *decoder {
	return &decoder{doc: doc}
}

func (d *decoder) fail(field string) {
	if d.err == nil {
		d.err = &errors.CorruptionError{Key: d.doc.Key, Field: field}
	}
}

func (d *decoder) text(field string, required bool) string {
	v, ok := d.doc.Field(field)
	if !ok {
		if required {
			d.fail(field)
		}
		return ""
	}
	s, isString := v.GetKind().(*structpb.Value_StringValue)
	if !isString {
		d.fail(field)
		return ""
	}
	return s.StringValue
}

func (d *decoder) id(field string, required bool) domain.ID {
	text := d.text(field, required)
	if text == "" {
		if required {
			d.fail(field)
		}
		return domain.ID{}
	}
	id, err := domain.ParseID(text)
	if err != nil {
		d.fail(field)
	}
	return id
}

func (d *decoder) ids(field string, required bool) []domain.ID {
	v, ok := d.doc.Field(field)
	if !ok {
		if required {
			d.fail(field)
		}
		return nil
	}
	list, isList := v.GetKind().(*structpb.Value_ListValue)
	if !isList {
		d.fail(field)
		return nil
	}
	var ids []domain.ID
	for _, item := range list.ListValue.GetValues() {
		id, err := domain.ParseID(item.GetStringValue())
		if err != nil {
			d.fail(field)
			return nil
		}
		ids = append(ids, id)
	}
	return ids
}

func (d *decoder) timestamp(field string, required bool) time.Time {
	text := d.text(field, required)
	if text == "" {
		if required {
			d.fail(field)
		}
		return time.Time{}
	}
	t, err := ParseTime(text)
	if err != nil {
		d.fail(field)
	}
	return t
}

func (d *decoder) blob(field string) *domain.Blob {
	v, ok := d.doc.Field(field)
	if !ok {
		return nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil
	}
	s := v.GetStructValue()
	if s == nil {
		d.fail(field)
		return nil
	}
	mime, hasMIME := s.GetFields()[blobMIME]
	content, hasContent := s.GetFields()[blobContent]
	if !hasMIME || !hasContent || mime.GetStringValue() == "" {
		d.fail(field)
		return nil
	}
	raw, err := base64.StdEncoding.DecodeString(content.GetStringValue())
	if err != nil {
		d.fail(field)
		return nil
	}
	if len(raw) == 0 {
		raw = nil
	}
	return &domain.Blob{MIME: mime.GetStringValue(), Content: raw}
}
