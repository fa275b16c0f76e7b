package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"chat-store/codec"
	"chat-store/domain"
	"chat-store/errors"
	"chat-store/mocks"
	"chat-store/profile"
	"chat-store/runtime"
	"chat-store/search"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	alice = domain.AccountIDOf([]byte("alice certificate"))
	bob   = domain.AccountIDOf([]byte("bob certificate"))
	t0    = time.Unix(1_700_000_000, 0).UTC()
)

func setup(t *testing.T) (*LedgerService, *profile.Profile) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	dir := t.TempDir()
	p, err := profile.Open(profile.Options{
		AccountID: alice,
		Badger:    badger.DefaultOptions(filepath.Join(dir, "badger")).WithLoggingLevel(badger.ERROR),
		BlugePath: filepath.Join(dir, "bluge"),
	}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return NewLedgerService(p, log), p
}

func TestLedgerService_CommitAndFind(t *testing.T) {
	req := require.New(t)
	service, _ := setup(t)
	msg := domain.AddMessage{Content: "hello", Time: t0, Sender: alice, Recipients: []domain.ID{bob}}

	applied, err := service.Commit(context.Background(), runtime.NewSliceSource(
		domain.AddVcard{AccountID: bob, Name: "Bob", UpdatedAt: t0},
		msg,
	))
	req.NoError(err)
	req.Equal(2, applied)

	doc, found, err := service.Find(domain.KindVcard, bob)
	req.NoError(err)
	req.True(found)
	req.Equal(domain.KindVcard.Key(bob), doc.Key)
	vcard, err := codec.DecodeVcard(doc)
	req.NoError(err)
	req.Equal("Bob", vcard.Name)

	doc, found, err = service.Find(domain.KindChatroom, msg.Message().ChatroomID)
	req.NoError(err)
	req.True(found)
	chatroom, err := codec.DecodeChatroom(doc)
	req.NoError(err)
	req.Equal(msg.Message().ID, chatroom.LatestMessageID)
}

func TestLedgerService_FindAbsent(t *testing.T) {
	req := require.New(t)
	service, _ := setup(t)

	_, found, err := service.Find(domain.KindMessage, bob)

	req.NoError(err)
	req.False(found)
}

func TestLedgerService_FindUnknownKind(t *testing.T) {
	req := require.New(t)
	service, _ := setup(t)

	_, _, err := service.Find(domain.Kind("Reaction"), bob)

	req.True(errors.IsValidation(err))
}

func TestLedgerService_FindCorruptedDocument(t *testing.T) {
	req := require.New(t)
	service, p := setup(t)
	// Given a peer document written without its role
	broken := codec.EncodePeer(domain.Peer{AccountID: bob, Name: "Bob", Role: domain.RoleFriend}).Without(codec.FieldRole)
	req.NoError(p.Store.Put(broken))

	// When it is looked up
	_, _, err := service.Find(domain.KindPeer, bob)

	// Then the corruption is reported instead of a defaulted peer
	req.True(errors.IsCorruption(err))
	var corruption *errors.CorruptionError
	req.ErrorAs(err, &corruption)
	req.Equal(codec.FieldRole, corruption.Field)
}

func TestLedgerService_SearchMessages(t *testing.T) {
	req := require.New(t)
	service, p := setup(t)
	ctx := context.Background()
	first := domain.AddMessage{Content: "budget draft attached", Time: t0, Sender: alice, Recipients: []domain.ID{bob}}
	second := domain.AddMessage{Content: "final budget", Time: t0.Add(time.Hour), Sender: bob, Recipients: []domain.ID{alice}}
	req.NoError(p.Apply(ctx, first))
	req.NoError(p.Apply(ctx, second))

	messages, err := service.SearchMessages(ctx, "budget")

	req.NoError(err)
	req.Len(messages, 2)
	req.ElementsMatch(
		[]domain.ID{first.Message().ID, second.Message().ID},
		[]domain.ID{messages[0].ID, messages[1].ID},
	)
}

func TestLedgerService_SearchSkipsEmptyQuery(t *testing.T) {
	req := require.New(t)
	service, _ := setup(t)

	messages, err := service.SearchMessages(context.Background(), "  ")

	req.NoError(err)
	req.Empty(messages)
}

type mocked struct {
	ingestor  *mocks.MockTransactionConsumer
	index     *mocks.MockMessageSearcher
	messages  *mocks.MockIMessageRepository
	chatrooms *mocks.MockIChatroomRepository
	peers     *mocks.MockIPeerRepository
	vcards    *mocks.MockIVcardRepository
}

func setupMocked(t *testing.T) (*LedgerService, mocked) {
	ctrl := gomock.NewController(t)
	m := mocked{
		ingestor:  mocks.NewMockTransactionConsumer(ctrl),
		index:     mocks.NewMockMessageSearcher(ctrl),
		messages:  mocks.NewMockIMessageRepository(ctrl),
		chatrooms: mocks.NewMockIChatroomRepository(ctrl),
		peers:     mocks.NewMockIPeerRepository(ctrl),
		vcards:    mocks.NewMockIVcardRepository(ctrl),
	}
	service := &LedgerService{
		ingestor:  m.ingestor,
		index:     m.index,
		messages:  m.messages,
		chatrooms: m.chatrooms,
		peers:     m.peers,
		vcards:    m.vcards,
		log:       logs.GetLoggerFromLevel(slog.LevelDebug),
	}
	return service, m
}

func TestLedgerService_CommitReportsAppliedOnFailure(t *testing.T) {
	req := require.New(t)
	service, m := setupMocked(t)
	src := runtime.NewSliceSource()
	aborted := &errors.AbortedError{Index: 2, Err: errors.NewValidationError("no sender")}
	m.ingestor.EXPECT().Consume(gomock.Any(), src).Return(2, aborted)

	applied, err := service.Commit(context.Background(), src)

	req.Equal(2, applied)
	req.ErrorIs(err, errors.ErrIngestionAborted)
}

func TestLedgerService_FindAsksOnlyTheKindRepository(t *testing.T) {
	req := require.New(t)
	service, m := setupMocked(t)
	peer := domain.Peer{AccountID: bob, Name: "Bob", Role: domain.RoleBlocked}
	// Other repositories carry no expectation and fail the test when called
	m.peers.EXPECT().Find(bob).Return(peer, true, nil)

	doc, found, err := service.Find(domain.KindPeer, bob)

	req.NoError(err)
	req.True(found)
	req.Equal(domain.KindPeer.Key(bob), doc.Key)
	decoded, err := codec.DecodePeer(doc)
	req.NoError(err)
	req.Equal(peer, decoded)
}

func TestLedgerService_FindPropagatesRepositoryError(t *testing.T) {
	req := require.New(t)
	service, m := setupMocked(t)
	corruption := &errors.CorruptionError{Key: domain.KindChatroom.Key(bob), Field: codec.FieldMembers}
	m.chatrooms.EXPECT().Find(bob).Return(domain.Chatroom{}, false, corruption)

	_, found, err := service.Find(domain.KindChatroom, bob)

	req.False(found)
	req.True(errors.IsCorruption(err))
}

func TestLedgerService_SearchSkipsMessagesMissingFromStore(t *testing.T) {
	req := require.New(t)
	service, m := setupMocked(t)
	kept := domain.AddMessage{Content: "kept", Time: t0, Sender: alice, Recipients: []domain.ID{bob}}.Message()
	gone := domain.IDOf([]byte("gone"))
	// Given an index still listing a message the store no longer has
	m.index.EXPECT().Search(gomock.Any(), search.Query{Text: "kept"}).Return([]domain.ID{gone, kept.ID}, nil)
	gomock.InOrder(
		m.messages.EXPECT().Find(gone).Return(domain.Message{}, false, nil),
		m.messages.EXPECT().Find(kept.ID).Return(kept, true, nil),
	)

	messages, err := service.SearchMessages(context.Background(), "kept")

	// Then only the stored message is answered
	req.NoError(err)
	req.Equal([]domain.Message{kept}, messages)
}

func TestLedgerService_SearchStopsOnLookupError(t *testing.T) {
	req := require.New(t)
	service, m := setupMocked(t)
	id := domain.IDOf([]byte("broken"))
	m.index.EXPECT().Search(gomock.Any(), gomock.Any()).Return([]domain.ID{id}, nil)
	m.messages.EXPECT().Find(id).Return(domain.Message{}, false, fmt.Errorf("disk failure"))

	messages, err := service.SearchMessages(context.Background(), "anything")

	req.Error(err)
	req.Nil(messages)
}
