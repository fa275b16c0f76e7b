package codec

import (
	"testing"
	"time"

	"chat-store/domain"
	"chat-store/errors"
	"chat-store/infrastructure/storage"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

var (
	alice = domain.IDOf([]byte("alice"))
	bob   = domain.IDOf([]byte("bob"))
	carol = domain.IDOf([]byte("carol"))
	at    = time.Unix(1_700_000_000, 123_456_789).UTC()
)

func sampleMessage() domain.Message {
	return domain.AddMessage{
		Content:    "hello",
		Attachment: &domain.Blob{MIME: "text/plain", Content: []byte("file")},
		Time:       at,
		Sender:     alice,
		Recipients: []domain.ID{carol, bob},
	}.Message()
}

func TestMessage_RoundTrip(t *testing.T) {
	req := require.New(t)
	msg := sampleMessage()

	doc := EncodeMessage(msg)
	got, err := DecodeMessage(doc)

	req.NoError(err)
	req.Equal(msg, got)
	req.Equal("Message:"+msg.ID.String(), doc.Key)
	req.Equal(msg.ChatroomID.String(), doc.Body.Fields[FieldChatroomID].GetStringValue())
}

func TestMessage_RoundTripWithoutOptionalFields(t *testing.T) {
	req := require.New(t)
	msg := domain.AddMessage{Time: at, Sender: alice}.Message()

	got, err := DecodeMessage(EncodeMessage(msg))

	req.NoError(err)
	req.Equal(msg, got)
	req.Nil(got.Attachment)
	req.Nil(got.Recipients)
}

func TestChatroom_RoundTrip(t *testing.T) {
	req := require.New(t)
	members := domain.CanonicalIDs([]domain.ID{alice, bob})
	chatroom := domain.Chatroom{
		ID:              domain.ChatroomIDOf(members),
		Name:            "team",
		Members:         members,
		LatestMessageID: domain.IDOf([]byte("latest")),
		LastActivity:    at,
	}

	got, err := DecodeChatroom(EncodeChatroom(chatroom))

	req.NoError(err)
	req.Equal(chatroom, got)
}

func TestChatroom_EncodeNormalisesMembers(t *testing.T) {
	req := require.New(t)
	chatroom := domain.Chatroom{ID: domain.ChatroomIDOf([]domain.ID{alice, bob}), Members: []domain.ID{bob, alice, bob}}

	got, err := DecodeChatroom(EncodeChatroom(chatroom))

	req.NoError(err)
	req.Equal(domain.CanonicalIDs([]domain.ID{alice, bob}), got.Members)
	req.False(got.HasLatestMessage())
	req.True(got.LastActivity.IsZero())
}

func TestPeer_RoundTrip(t *testing.T) {
	req := require.New(t)
	peer := domain.Peer{AccountID: bob, Name: "Bob", Role: domain.RoleBlocked}

	got, err := DecodePeer(EncodePeer(peer))

	req.NoError(err)
	req.Equal(peer, got)
}

func TestVcard_RoundTrip(t *testing.T) {
	req := require.New(t)
	vcard := domain.Vcard{
		AccountID: carol,
		Name:      "Carol",
		Photo:     &domain.Blob{MIME: "image/png", Content: []byte{0x89, 'P', 'N', 'G'}},
		UpdatedAt: at,
	}

	got, err := DecodeVcard(EncodeVcard(vcard))

	req.NoError(err)
	req.Equal(vcard, got)
}

func TestDecode_MissingRequiredFieldIsCorruption(t *testing.T) {
	message := EncodeMessage(sampleMessage())
	chatroom := EncodeChatroom(domain.Chatroom{ID: alice, Members: []domain.ID{alice}, LastActivity: at})
	peer := EncodePeer(domain.Peer{AccountID: bob, Role: domain.RoleFriend})
	vcard := EncodeVcard(domain.Vcard{AccountID: carol, UpdatedAt: at})

	cases := []struct {
		name   string
		field  string
		decode func() error
	}{
		{"message id", FieldMessageID, func() error { _, err := DecodeMessage(message.Without(FieldMessageID)); return err }},
		{"message chatroom", FieldChatroomID, func() error { _, err := DecodeMessage(message.Without(FieldChatroomID)); return err }},
		{"message time", FieldTime, func() error { _, err := DecodeMessage(message.Without(FieldTime)); return err }},
		{"message sender", FieldSender, func() error { _, err := DecodeMessage(message.Without(FieldSender)); return err }},
		{"chatroom id", FieldChatroomID, func() error { _, err := DecodeChatroom(chatroom.Without(FieldChatroomID)); return err }},
		{"chatroom members", FieldMembers, func() error { _, err := DecodeChatroom(chatroom.Without(FieldMembers)); return err }},
		{"chatroom activity", FieldLastActivity, func() error { _, err := DecodeChatroom(chatroom.Without(FieldLastActivity)); return err }},
		{"peer account", FieldAccountID, func() error { _, err := DecodePeer(peer.Without(FieldAccountID)); return err }},
		{"peer role", FieldRole, func() error { _, err := DecodePeer(peer.Without(FieldRole)); return err }},
		{"vcard account", FieldAccountID, func() error { _, err := DecodeVcard(vcard.Without(FieldAccountID)); return err }},
		{"vcard time", FieldTimeUpdated, func() error { _, err := DecodeVcard(vcard.Without(FieldTimeUpdated)); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)

			err := tc.decode()

			req.True(errors.IsCorruption(err))
			var corruption *errors.CorruptionError
			req.ErrorAs(err, &corruption)
			req.Equal(tc.field, corruption.Field)
		})
	}
}

func TestDecode_MalformedFieldIsCorruption(t *testing.T) {
	req := require.New(t)

	// Given a peer whose role is not a known role
	peer := EncodePeer(domain.Peer{AccountID: bob, Role: domain.RoleFriend})
	peer.Body.Fields[FieldRole] = structpb.NewStringValue("enemy")

	// Then decoding reports the role field
	_, err := DecodePeer(peer)
	var corruption *errors.CorruptionError
	req.ErrorAs(err, &corruption)
	req.Equal(FieldRole, corruption.Field)

	// Given a message whose time is a number
	message := EncodeMessage(sampleMessage())
	message.Body.Fields[FieldTime] = structpb.NewNumberValue(42)

	_, err = DecodeMessage(message)
	req.ErrorAs(err, &corruption)
	req.Equal(FieldTime, corruption.Field)

	// Given an attachment without a mime type
	message = EncodeMessage(sampleMessage())
	message.Body.Fields[FieldAttachment] = structpb.NewStructValue(&structpb.Struct{})

	_, err = DecodeMessage(message)
	req.ErrorAs(err, &corruption)
	req.Equal(FieldAttachment, corruption.Field)
}

func TestDecodeMessages_StopsAtFirstCorruption(t *testing.T) {
	req := require.New(t)
	good := EncodeMessage(sampleMessage())
	bad := good.Without(FieldSender)

	msgs, err := DecodeMessages([]storage.Document{good, bad})

	req.Nil(msgs)
	req.True(errors.IsCorruption(err))
}

func TestFormatTime_IsLexicographicallyOrdered(t *testing.T) {
	req := require.New(t)
	early := time.Date(2024, 1, 2, 3, 4, 5, 6, time.UTC)
	late := early.Add(time.Nanosecond)

	req.Less(FormatTime(early), FormatTime(late))

	parsed, err := ParseTime(FormatTime(late))
	req.NoError(err)
	req.Equal(late, parsed)
}
