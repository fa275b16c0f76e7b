package e2e

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"chat-store/auth"
	"chat-store/infrastructure/grpc/ledger"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

type BaseGrpcSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseGrpcSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.LedgerAddr == "" {
		s.T().Skip("LEDGER_ADDR is not set")
	}
}

// GrpcConn opens a connection that logs every unary call, with the JSON
// bodies when E2E_DEBUG_JSON is set.
func (s *BaseGrpcSuite) GrpcConn(t *testing.T, name string, addr string) *grpc.ClientConn {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)

	marshaler := protojson.MarshalOptions{
		UseProtoNames:   true,
		Multiline:       true,
		EmitUnpopulated: true,
	}

	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
			start := time.Now()
			err := invoker(ctx, method, req, reply, cc, opts...)

			logBuilder := strings.Builder{}
			fmt.Fprintf(&logBuilder, "GRPC %s [%s] in %v", method, status.Code(err), time.Since(start))

			if s.Config.DebugJSON {
				fmt.Fprintln(&logBuilder, "\nREQUEST:")
				fmt.Fprintln(&logBuilder, marshaler.Format(req.(proto.Message)))
				if err != nil {
					fmt.Fprintln(&logBuilder, "ERROR:", err)
				} else {
					fmt.Fprintln(&logBuilder, "RESPONSE:")
					fmt.Fprintln(&logBuilder, marshaler.Format(reply.(proto.Message)))
				}
			}
			t.Log(logBuilder.String())
			return err
		}),
	}
	if s.Config.AuthToken != "" {
		opts = append(opts, grpc.WithPerRPCCredentials(auth.BearerToken(s.Config.AuthToken)))
	}
	conn, err := grpc.NewClient(addr, opts...)
	s.Require().NoError(err, "Failed to connect to gRPC server at "+addr)
	return conn
}

// WithLedger provides a Ledger client within a contextual test step
func (s *BaseGrpcSuite) WithLedger(name string, fn func(ctx context.Context, conn *grpc.ClientConn, client ledger.LedgerClient)) {
	conn := s.GrpcConn(s.T(), name, s.Config.LedgerAddr)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), s.Config.Timeout)
	defer cancel()

	fn(ctx, conn, ledger.NewLedgerClient(conn))
}
