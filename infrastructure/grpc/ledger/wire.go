package ledger

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"chat-store/codec"
	"chat-store/domain"
	"chat-store/domain/mimetypes"
	"chat-store/errors"

	"github.com/samber/lo"
	"google.golang.org/protobuf/types/known/structpb"
)

// FieldKind selects the transaction variant of a wire record. The other
// field names are the document field names.
const (
	FieldKind = "kind"
	FieldID   = "id"

	blobMIME    = "mime"
	blobContent = "content"
)

// DecodeRecord turns one wire record into a transaction. Every problem with
// the record is a validation error; nothing about it is defaulted except the
// media type of a blob, which is sniffed from its content when absent.
func DecodeRecord(record *structpb.Struct) (domain.Transaction, error) {
	r := &reader{fields: record.GetFields()}
	kind := r.text(FieldKind, true)
	if r.err != nil {
		return nil, r.err
	}

	var tx domain.Transaction
	switch kind {
	case "AddMessage":
		tx = domain.AddMessage{
			MessageID:  r.optionalID(codec.FieldMessageID),
			Content:    r.text(codec.FieldContent, false),
			Attachment: r.blob(codec.FieldAttachment),
			Time:       r.time(codec.FieldTime),
			Sender:     r.id(codec.FieldSender),
			Recipients: r.ids(codec.FieldRecipients),
		}
	case "AddChatroom":
		tx = domain.AddChatroom{
			Name:    r.text(codec.FieldName, false),
			Members: r.ids(codec.FieldMembers),
		}
	case "AddPeer":
		tx = domain.AddPeer{
			AccountID: r.id(codec.FieldAccountID),
			Name:      r.text(codec.FieldName, false),
			Role:      domain.PeerRole(r.text(codec.FieldRole, true)),
		}
	case "AddVcard":
		tx = domain.AddVcard{
			AccountID: r.id(codec.FieldAccountID),
			Name:      r.text(codec.FieldName, false),
			Photo:     r.blob(codec.FieldPhoto),
			UpdatedAt: r.time(codec.FieldTimeUpdated),
		}
	default:
		target, isDelete := strings.CutPrefix(kind, "Delete")
		if !isDelete || !domain.Kind(target).Valid() {
			return nil, errors.WrapValidation(fmt.Errorf("%w: kind %q", errors.ErrUnrecognizedPayload, kind))
		}
		tx = domain.Delete{Target: domain.Kind(target), ID: r.id(FieldID)}
	}
	if r.err != nil {
		return nil, r.err
	}
	return tx, nil
}

// EncodeRecord is the inverse of DecodeRecord, used by clients feeding Commit.
func EncodeRecord(tx domain.Transaction) (*structpb.Struct, error) {
	fields := map[string]*structpb.Value{
		FieldKind: structpb.NewStringValue(tx.Op()),
	}
	switch p := tx.(type) {
	case domain.AddMessage:
		if p.MessageID != nil {
			fields[codec.FieldMessageID] = idValue(*p.MessageID)
		}
		fields[codec.FieldContent] = structpb.NewStringValue(p.Content)
		if p.Attachment != nil {
			fields[codec.FieldAttachment] = blobValue(p.Attachment)
		}
		fields[codec.FieldTime] = structpb.NewStringValue(codec.FormatTime(p.Time))
		fields[codec.FieldSender] = idValue(p.Sender)
		fields[codec.FieldRecipients] = idsValue(p.Recipients)
	case domain.AddChatroom:
		fields[codec.FieldName] = structpb.NewStringValue(p.Name)
		fields[codec.FieldMembers] = idsValue(p.Members)
	case domain.AddPeer:
		fields[codec.FieldAccountID] = idValue(p.AccountID)
		fields[codec.FieldName] = structpb.NewStringValue(p.Name)
		fields[codec.FieldRole] = structpb.NewStringValue(string(p.Role))
	case domain.AddVcard:
		fields[codec.FieldAccountID] = idValue(p.AccountID)
		fields[codec.FieldName] = structpb.NewStringValue(p.Name)
		if p.Photo != nil {
			fields[codec.FieldPhoto] = blobValue(p.Photo)
		}
		fields[codec.FieldTimeUpdated] = structpb.NewStringValue(codec.FormatTime(p.UpdatedAt))
	case domain.Delete:
		fields[FieldID] = idValue(p.ID)
	default:
		return nil, errors.WrapValidation(fmt.Errorf("%w: %T", errors.ErrUnrecognizedPayload, tx))
	}
	return &structpb.Struct{Fields: fields}, nil
}

func idValue(id domain.ID) *structpb.Value {
	return structpb.NewStringValue(id.String())
}

func idsValue(ids []domain.ID) *structpb.Value {
	return structpb.NewListValue(&structpb.ListValue{Values: lo.Map(ids, func(id domain.ID, _ int) *structpb.Value {
		return idValue(id)
	})})
}

func blobValue(b *domain.Blob) *structpb.Value {
	return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
		blobMIME:    structpb.NewStringValue(b.MIME),
		blobContent: structpb.NewStringValue(base64.StdEncoding.EncodeToString(b.Content)),
	}})
}

// reader keeps the first validation error met while reading a record.
type reader struct {
	fields map[string]*structpb.Value
	err    error
}

func (r *reader) fail(field, format string, args ...any) {
	if r.err == nil {
		r.err = errors.NewValidationError(fmt.Sprintf("field %q: ", field) + fmt.Sprintf(format, args...))
	}
}

func (r *reader) text(field string, required bool) string {
	v, ok := r.fields[field]
	if !ok {
		if required {
			r.fail(field, "missing")
		}
		return ""
	}
	s, isString := v.GetKind().(*structpb.Value_StringValue)
	if !isString {
		r.fail(field, "not a string")
		return ""
	}
	return s.StringValue
}

func (r *reader) id(field string) domain.ID {
	text := r.text(field, true)
	if r.err != nil {
		return domain.ID{}
	}
	id, err := domain.ParseID(text)
	if err != nil {
		r.fail(field, "%v", err)
	}
	return id
}

func (r *reader) optionalID(field string) *domain.ID {
	if _, ok := r.fields[field]; !ok {
		return nil
	}
	id := r.id(field)
	return &id
}

func (r *reader) ids(field string) []domain.ID {
	v, ok := r.fields[field]
	if !ok {
		return nil
	}
	list, isList := v.GetKind().(*structpb.Value_ListValue)
	if !isList {
		r.fail(field, "not a list")
		return nil
	}
	ids := make([]domain.ID, 0, len(list.ListValue.GetValues()))
	for i, item := range list.ListValue.GetValues() {
		id, err := domain.ParseID(item.GetStringValue())
		if err != nil {
			r.fail(field, "item %d: %v", i, err)
			return nil
		}
		ids = append(ids, id)
	}
	return ids
}

// time accepts the storage layout and RFC 3339.
func (r *reader) time(field string) time.Time {
	text := r.text(field, true)
	if r.err != nil {
		return time.Time{}
	}
	if t, err := codec.ParseTime(text); err == nil {
		return t
	}
	t, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		r.fail(field, "%v", err)
		return time.Time{}
	}
	return t.UTC()
}

func (r *reader) blob(field string) *domain.Blob {
	v, ok := r.fields[field]
	if !ok {
		return nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil
	}
	s := v.GetStructValue()
	if s == nil {
		r.fail(field, "not an object")
		return nil
	}
	inner := &reader{fields: s.GetFields()}
	encoded := inner.text(blobContent, true)
	declared := inner.text(blobMIME, false)
	if inner.err != nil {
		r.fail(field, "%v", inner.err)
		return nil
	}
	content, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		r.fail(field, "content: %v", err)
		return nil
	}
	if len(content) == 0 {
		content = nil
	}
	mime, err := mimetypes.Resolve(declared, content)
	if err != nil {
		r.fail(field, "%v", err)
		return nil
	}
	return &domain.Blob{MIME: mime, Content: content}
}
