package server

import (
	"context"
	"fmt"
	"log/slog"

	"chat-store/codec"
	"chat-store/domain"
	"chat-store/errors"
	"chat-store/infrastructure/grpc/ledger"
	"chat-store/runtime"
	"chat-store/services"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type LedgerServer struct {
	ledger.UnimplementedLedgerServer
	service services.ILedgerService
	log     *slog.Logger
}

func NewLedgerServer(service services.ILedgerService, log *slog.Logger) *LedgerServer {
	return &LedgerServer{service: service, log: log}
}

// Commit decodes records as they arrive and applies them in order. The ack is
// sent once the client closed its side and every record is committed; the
// first failing record aborts the stream, the ones before it stay committed.
func (s *LedgerServer) Commit(stream ledger.CommitServer) error {
	streamID := uuid.NewString()
	src := runtime.FuncSource(func(context.Context) (domain.Transaction, error) {
		record, err := stream.Recv()
		if err != nil {
			return nil, err
		}
		return ledger.DecodeRecord(record)
	})

	applied, err := s.service.Commit(stream.Context(), src)
	if err != nil {
		s.log.Warn("Commit stream failed", "stream_id", streamID, "applied", applied, "error", err)
		return errors.MapToGRPCError(err)
	}
	s.log.Info("Commit stream applied", "stream_id", streamID, "applied", applied)
	return stream.SendAndClose(&emptypb.Empty{})
}

func (s *LedgerServer) FindMessage(_ context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	return s.find(domain.KindMessage, req)
}

func (s *LedgerServer) FindChatroom(_ context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	return s.find(domain.KindChatroom, req)
}

func (s *LedgerServer) FindPeer(_ context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	return s.find(domain.KindPeer, req)
}

func (s *LedgerServer) FindVcard(_ context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	return s.find(domain.KindVcard, req)
}

func (s *LedgerServer) find(kind domain.Kind, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	id, err := domain.ParseID(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	doc, found, err := s.service.Find(kind, id)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	if !found {
		return nil, errors.MapToGRPCError(fmt.Errorf("%w: %s", errors.ErrNotFound, kind.Key(id)))
	}
	return doc.Body, nil
}

// SearchMessages answers the message documents matching a full-text query.
func (s *LedgerServer) SearchMessages(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	messages, err := s.service.SearchMessages(ctx, req.GetValue())
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	values := lo.Map(messages, func(m domain.Message, _ int) *structpb.Value {
		return structpb.NewStructValue(codec.EncodeMessage(m).Body)
	})
	return &structpb.ListValue{Values: values}, nil
}
