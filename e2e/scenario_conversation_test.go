package e2e

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"chat-store/domain"
	"chat-store/infrastructure/grpc/client"
	"chat-store/infrastructure/grpc/ledger"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type testConversationSuite struct {
	BaseGrpcSuite
}

func TestConversationSuite(t *testing.T) {
	suite.Run(t, &testConversationSuite{})
}

func (s *testConversationSuite) TestConversationFlow() {
	// Fresh accounts so that the scenario can run against a used profile
	run := uuid.NewString()
	me := domain.AccountIDOf([]byte("me " + run))
	friend := domain.AccountIDOf([]byte("friend " + run))
	first := domain.AddMessage{Content: "kickoff " + run, Time: time.Now().UTC().Add(-time.Minute), Sender: me, Recipients: []domain.ID{friend}}
	reply := domain.AddMessage{Content: "ack", Time: time.Now().UTC(), Sender: friend, Recipients: []domain.ID{me}}
	chatroomID := first.Message().ChatroomID

	s.Run("Step 1: Commit a roster entry and two messages", func() {
		s.WithLedger("Commit stream", func(ctx context.Context, conn *grpc.ClientConn, _ ledger.LedgerClient) {
			c := client.NewLedgerClient(conn, logs.GetLoggerFromLevel(slog.LevelInfo))
			s.Require().NoError(c.Commit(ctx,
				domain.AddPeer{AccountID: friend, Name: "Friend", Role: domain.RoleFriend},
				first,
				reply,
			))
		})
	})

	s.Run("Step 2: The chatroom points at the reply", func() {
		s.WithLedger("Find chatroom", func(ctx context.Context, conn *grpc.ClientConn, _ ledger.LedgerClient) {
			c := client.NewLedgerClient(conn, logs.GetLoggerFromLevel(slog.LevelInfo))
			chatroom, found, err := c.FindChatroom(ctx, chatroomID)
			s.Require().NoError(err)
			s.Require().True(found)
			s.Equal(reply.Message().ID, chatroom.LatestMessageID)
			s.Contains(chatroom.Name, "Friend")
		})
	})

	s.Run("Step 3: The first message is searchable", func() {
		s.WithLedger("Search", func(ctx context.Context, conn *grpc.ClientConn, _ ledger.LedgerClient) {
			c := client.NewLedgerClient(conn, logs.GetLoggerFromLevel(slog.LevelInfo))
			messages, err := c.SearchMessages(ctx, run)
			s.Require().NoError(err)
			ids := lo.Map(messages, func(m domain.Message, _ int) domain.ID { return m.ID })
			s.Contains(ids, first.Message().ID)
		})
	})

	s.Run("Step 4: Deleting the reply re-points the chatroom", func() {
		s.WithLedger("Delete reply", func(ctx context.Context, conn *grpc.ClientConn, raw ledger.LedgerClient) {
			c := client.NewLedgerClient(conn, logs.GetLoggerFromLevel(slog.LevelInfo))
			s.Require().NoError(c.Commit(ctx, domain.Delete{Target: domain.KindMessage, ID: reply.Message().ID}))

			_, err := raw.FindMessage(ctx, wrapperspb.String(reply.Message().ID.String()))
			s.Equal(codes.NotFound, status.Code(err))

			chatroom, found, err := c.FindChatroom(ctx, chatroomID)
			s.Require().NoError(err)
			s.Require().True(found)
			s.Equal(first.Message().ID, chatroom.LatestMessageID)
		})
	})
}
