package server

import (
	"log/slog"

	"chat-store/auth"
	"chat-store/infrastructure/grpc/ledger"
	"chat-store/services"

	grpc3 "github.com/mama165/sdk-go/grpc"
	"google.golang.org/grpc"
)

// NewGRPCServer builds the server exposing the ledger. Unary calls are
// logged; when an authenticator is given every call needs a bearer token.
func NewGRPCServer(service services.ILedgerService, authenticator *auth.Authenticator, log *slog.Logger) *grpc.Server {
	unary := []grpc.UnaryServerInterceptor{grpc3.UnaryLoggingInterceptor(log)}
	var stream []grpc.StreamServerInterceptor
	if authenticator != nil {
		unary = append(unary, authenticator.UnaryInterceptor)
		stream = append(stream, authenticator.StreamInterceptor)
	}

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(unary...),
		grpc.ChainStreamInterceptor(stream...),
	)
	ledger.RegisterLedgerServer(s, NewLedgerServer(service, log))
	return s
}
