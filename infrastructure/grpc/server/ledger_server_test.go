package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"path/filepath"
	"testing"
	"time"

	"chat-store/auth"
	"chat-store/domain"
	"chat-store/errors"
	"chat-store/infrastructure/grpc/client"
	"chat-store/infrastructure/grpc/ledger"
	"chat-store/infrastructure/storage"
	"chat-store/mocks"
	"chat-store/profile"
	"chat-store/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	bufSize = 1024 * 1024
	secret  = "ledger_suite_secret_for_hs256"
)

var (
	owner = domain.AccountIDOf([]byte("owner certificate"))
	bob   = domain.AccountIDOf([]byte("bob certificate"))
	t0    = time.Unix(1_700_000_000, 0).UTC()
)

type ledgerSuite struct {
	suite.Suite
	profile  *profile.Profile
	server   *grpc.Server
	listener *bufconn.Listener
	token    string
	conns    []*grpc.ClientConn
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, &ledgerSuite{})
}

func (s *ledgerSuite) SetupTest() {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	dir := s.T().TempDir()
	p, err := profile.Open(profile.Options{
		AccountID: owner,
		Badger:    badger.DefaultOptions(filepath.Join(dir, "badger")).WithLoggingLevel(badger.ERROR),
		BlugePath: filepath.Join(dir, "bluge"),
	}, log)
	s.Require().NoError(err)
	s.profile = p

	authenticator := auth.NewAuthenticator(secret, owner, time.Hour)
	s.token, err = authenticator.GenerateToken()
	s.Require().NoError(err)

	s.listener = bufconn.Listen(bufSize)
	s.server = NewGRPCServer(services.NewLedgerService(p, log), authenticator, log)
	go func() { _ = s.server.Serve(s.listener) }()
}

func (s *ledgerSuite) TearDownTest() {
	for _, conn := range s.conns {
		_ = conn.Close()
	}
	s.conns = nil
	s.server.Stop()
	s.Require().NoError(s.profile.Close())
}

func (s *ledgerSuite) dial(token string) *grpc.ClientConn {
	opts := []grpc.DialOption{
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return s.listener.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if token != "" {
		opts = append(opts, grpc.WithPerRPCCredentials(auth.BearerToken(token)))
	}
	conn, err := grpc.NewClient("passthrough:///bufnet", opts...)
	s.Require().NoError(err)
	s.conns = append(s.conns, conn)
	return conn
}

func (s *ledgerSuite) client() *client.LedgerClient {
	return client.NewLedgerClient(s.dial(s.token), logs.GetLoggerFromLevel(slog.LevelDebug))
}

func (s *ledgerSuite) ctx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	s.T().Cleanup(cancel)
	return ctx
}

func (s *ledgerSuite) TestCommitThenFind() {
	c := s.client()
	msg := domain.AddMessage{Content: "lunch?", Time: t0, Sender: owner, Recipients: []domain.ID{bob}}

	// Given a peer and a message committed on one stream
	s.Require().NoError(c.Commit(s.ctx(),
		domain.AddPeer{AccountID: bob, Name: "Bob", Role: domain.RoleFriend},
		msg,
	))

	// Then the peer is found
	peer, found, err := c.FindPeer(s.ctx(), bob)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal("Bob", peer.Name)

	// Then the message chatroom points at the message
	m := msg.Message()
	chatroom, found, err := c.FindChatroom(s.ctx(), m.ChatroomID)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal(m.ID, chatroom.LatestMessageID)
	s.Equal(t0, chatroom.LastActivity)

	stored, found, err := c.FindMessage(s.ctx(), m.ID)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal(m, stored)
}

func (s *ledgerSuite) TestFindAbsentIsSoft() {
	c := s.client()

	_, found, err := c.FindVcard(s.ctx(), bob)

	s.Require().NoError(err)
	s.False(found)
}

func (s *ledgerSuite) TestFindMalformedID() {
	raw := ledger.NewLedgerClient(s.dial(s.token))

	_, err := raw.FindPeer(s.ctx(), wrapperspb.String("not-hex"))

	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *ledgerSuite) TestCommitAbortsAtFirstInvalidRecord() {
	c := s.client()
	forged := domain.IDOf([]byte("forged"))
	valid, err := ledger.EncodeRecord(domain.AddPeer{AccountID: bob, Name: "Bob", Role: domain.RoleFriend})
	s.Require().NoError(err)
	invalid, err := ledger.EncodeRecord(domain.AddMessage{MessageID: &forged, Content: "x", Time: t0, Sender: owner})
	s.Require().NoError(err)
	never, err := ledger.EncodeRecord(domain.AddVcard{AccountID: bob, Name: "Bob", UpdatedAt: t0})
	s.Require().NoError(err)

	// When the second record carries a message id that does not match
	err = c.CommitRecords(s.ctx(), []*structpb.Struct{valid, invalid, never})

	// Then the stream is rejected and only the first record stays committed
	s.Equal(codes.InvalidArgument, status.Code(err))
	_, found, err := c.FindPeer(s.ctx(), bob)
	s.Require().NoError(err)
	s.True(found)
	_, found, err = c.FindVcard(s.ctx(), bob)
	s.Require().NoError(err)
	s.False(found)
}

func (s *ledgerSuite) TestCommitRejectsUnknownKind() {
	c := s.client()
	record, err := structpb.NewStruct(map[string]any{"kind": "AddReaction"})
	s.Require().NoError(err)

	err = c.CommitRecords(s.ctx(), []*structpb.Struct{record})

	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *ledgerSuite) TestSearchMessages() {
	c := s.client()
	hit := domain.AddMessage{Content: "the release is tomorrow", Time: t0, Sender: owner, Recipients: []domain.ID{bob}}
	miss := domain.AddMessage{Content: "see you", Time: t0.Add(time.Minute), Sender: bob, Recipients: []domain.ID{owner}}
	s.Require().NoError(c.Commit(s.ctx(), hit, miss))

	messages, err := c.SearchMessages(s.ctx(), "release")

	s.Require().NoError(err)
	s.Require().Len(messages, 1)
	s.Equal(hit.Message().ID, messages[0].ID)
}

func (s *ledgerSuite) TestRejectsCallsWithoutToken() {
	c := client.NewLedgerClient(s.dial(""), logs.GetLoggerFromLevel(slog.LevelDebug))

	_, _, err := c.FindPeer(s.ctx(), bob)
	s.Equal(codes.Unauthenticated, status.Code(err))

	err = c.Commit(s.ctx(), domain.AddPeer{AccountID: bob, Role: domain.RoleFriend})
	s.Equal(codes.Unauthenticated, status.Code(err))

	_, found, err := s.profile.Peers.Find(bob)
	s.Require().NoError(err)
	s.False(found)
}

func TestLedgerServer_MapsServiceErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"corrupted document", &errors.CorruptionError{Key: domain.KindPeer.Key(bob), Field: "role"}, codes.DataLoss},
		{"storage failure", fmt.Errorf("disk full"), codes.Internal},
		{"invalid kind", errors.NewValidationError("unknown kind"), codes.InvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			ctrl := gomock.NewController(t)
			service := mocks.NewMockILedgerService(ctrl)
			service.EXPECT().Find(domain.KindPeer, bob).Return(storage.Document{}, false, tt.err)
			server := NewLedgerServer(service, logs.GetLoggerFromLevel(slog.LevelDebug))

			_, err := server.FindPeer(context.Background(), wrapperspb.String(bob.String()))

			req.Equal(tt.code, status.Code(err))
		})
	}
}

func TestLedgerServer_FindAbsentIsNotFound(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	service := mocks.NewMockILedgerService(ctrl)
	service.EXPECT().Find(domain.KindVcard, bob).Return(storage.Document{}, false, nil)
	server := NewLedgerServer(service, logs.GetLoggerFromLevel(slog.LevelDebug))

	_, err := server.FindVcard(context.Background(), wrapperspb.String(bob.String()))

	req.Equal(codes.NotFound, status.Code(err))
}

func TestLedgerServer_SearchFailure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	service := mocks.NewMockILedgerService(ctrl)
	service.EXPECT().SearchMessages(gomock.Any(), "report").Return(nil, fmt.Errorf("index closed"))
	server := NewLedgerServer(service, logs.GetLoggerFromLevel(slog.LevelDebug))

	_, err := server.SearchMessages(context.Background(), wrapperspb.String("report"))

	req.Equal(codes.Internal, status.Code(err))
}
