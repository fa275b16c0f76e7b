package auth

import (
	"context"
	"strings"

	"chat-store/domain"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type contextKey string

const AccountIDKey contextKey = "account_id"

// AccountFromContext returns the account injected by the interceptors.
func AccountFromContext(ctx context.Context) (domain.ID, bool) {
	id, ok := ctx.Value(AccountIDKey).(domain.ID)
	return id, ok
}

// UnaryInterceptor handles JWT validation for unary calls.
func (a *Authenticator) UnaryInterceptor(ctx context.Context, req any,
	_ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	newCtx, err := a.authenticate(ctx)
	if err != nil {
		return nil, err
	}
	return handler(newCtx, req)
}

// StreamInterceptor handles JWT validation for streaming calls.
func (a *Authenticator) StreamInterceptor(srv any, ss grpc.ServerStream,
	_ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	newCtx, err := a.authenticate(ss.Context())
	if err != nil {
		return err
	}
	return handler(srv, &authenticatedStream{ServerStream: ss, ctx: newCtx})
}

func (a *Authenticator) authenticate(ctx context.Context) (context.Context, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "metadata is missing")
	}

	// Expecting the standard "Bearer <token>" format
	values := md.Get("authorization")
	if len(values) == 0 {
		return nil, status.Error(codes.Unauthenticated, "authorization token is missing")
	}
	tokenStr := strings.TrimPrefix(values[0], "Bearer ")

	accountID, err := a.ValidateToken(tokenStr)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid or expired token")
	}
	return context.WithValue(ctx, AccountIDKey, accountID), nil
}

type authenticatedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *authenticatedStream) Context() context.Context {
	return s.ctx
}

// BearerToken attaches a token to every outgoing call of a client.
type BearerToken string

func (t BearerToken) GetRequestMetadata(context.Context, ...string) (map[string]string, error) {
	return map[string]string{"authorization": "Bearer " + string(t)}, nil
}

// RequireTransportSecurity is false: the ledger listens on a local socket.
func (t BearerToken) RequireTransportSecurity() bool {
	return false
}
