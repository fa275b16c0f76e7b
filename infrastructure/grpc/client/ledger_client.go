package client

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"

	"chat-store/codec"
	"chat-store/domain"
	"chat-store/infrastructure/grpc/ledger"
	"chat-store/infrastructure/storage"

	"github.com/samber/lo"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// LedgerClient is the typed side of the Ledger service: transactions go out
// as wire records and documents come back as entities.
type LedgerClient struct {
	client ledger.LedgerClient
	log    *slog.Logger
}

func NewLedgerClient(conn grpc.ClientConnInterface, log *slog.Logger) *LedgerClient {
	return &LedgerClient{client: ledger.NewLedgerClient(conn), log: log}
}

// Commit sends transactions in order on one stream.
func (c *LedgerClient) Commit(ctx context.Context, txs ...domain.Transaction) error {
	records := make([]*structpb.Struct, 0, len(txs))
	for _, tx := range txs {
		record, err := ledger.EncodeRecord(tx)
		if err != nil {
			return err
		}
		records = append(records, record)
	}
	return c.CommitRecords(ctx, records)
}

// CommitRecords streams raw wire records and waits for the ack. When the
// server aborts the stream early its status is returned, not the send error.
func (c *LedgerClient) CommitRecords(ctx context.Context, records []*structpb.Struct) error {
	stream, err := c.client.Commit(ctx)
	if err != nil {
		return err
	}
	for i, record := range records {
		if err = stream.Send(record); err != nil {
			if stderrors.Is(err, io.EOF) {
				break
			}
			c.log.Error("Failed to send record", "index", i, "error", err)
			return err
		}
	}
	_, err = stream.CloseAndRecv()
	return err
}

func (c *LedgerClient) FindMessage(ctx context.Context, id domain.ID) (domain.Message, bool, error) {
	return find(ctx, c.client.FindMessage, domain.KindMessage, id, codec.DecodeMessage)
}

func (c *LedgerClient) FindChatroom(ctx context.Context, id domain.ID) (domain.Chatroom, bool, error) {
	return find(ctx, c.client.FindChatroom, domain.KindChatroom, id, codec.DecodeChatroom)
}

func (c *LedgerClient) FindPeer(ctx context.Context, id domain.ID) (domain.Peer, bool, error) {
	return find(ctx, c.client.FindPeer, domain.KindPeer, id, codec.DecodePeer)
}

func (c *LedgerClient) FindVcard(ctx context.Context, id domain.ID) (domain.Vcard, bool, error) {
	return find(ctx, c.client.FindVcard, domain.KindVcard, id, codec.DecodeVcard)
}

type findCall func(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)

// find maps NotFound back to soft absence.
func find[T any](ctx context.Context, call findCall, kind domain.Kind, id domain.ID, decode func(storage.Document) (T, error)) (T, bool, error) {
	var zero T
	body, err := call(ctx, wrapperspb.String(id.String()))
	if status.Code(err) == codes.NotFound {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	entity, err := decode(storage.Document{Key: kind.Key(id), Body: body})
	if err != nil {
		return zero, false, err
	}
	return entity, true, nil
}

// SearchMessages returns the messages matching a full-text query.
func (c *LedgerClient) SearchMessages(ctx context.Context, text string) ([]domain.Message, error) {
	list, err := c.client.SearchMessages(ctx, wrapperspb.String(text))
	if err != nil {
		return nil, err
	}
	docs := lo.Map(list.GetValues(), func(v *structpb.Value, _ int) storage.Document {
		return storage.Document{Key: domain.KindMessage.Prefix(), Body: v.GetStructValue()}
	})
	return codec.DecodeMessages(docs)
}
