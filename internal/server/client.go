package server

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/protobuf/types/known/structpb"

	gloxerror "github.com/msto63/glox/foundation/core/error"
	gloxlog "github.com/msto63/glox/foundation/core/log"
)

// ClientConfig holds gRPC client configuration
type ClientConfig struct {
	Target            string
	Timeout           time.Duration // per call
	MaxRecvMsgSize    int
	KeepaliveInterval time.Duration
	KeepaliveTimeout  time.Duration
}

// DefaultClientConfig returns a default client configuration
func DefaultClientConfig(target string) ClientConfig {
	return ClientConfig{
		Target:            target,
		Timeout:           10 * time.Second,
		MaxRecvMsgSize:    16 * 1024 * 1024,
		KeepaliveInterval: 30 * time.Second,
		KeepaliveTimeout:  10 * time.Second,
	}
}

// Client calls a remote glox.v1.ParserService
type Client struct {
	conn    *grpc.ClientConn
	timeout time.Duration
	owned   bool
}

// Dial creates a client connection to cfg.Target
func Dial(cfg ClientConfig, logger *gloxlog.Logger, opts ...grpc.DialOption) (*Client, error) {
	if logger == nil {
		logger = gloxlog.GetDefault()
	}

	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(cfg.MaxRecvMsgSize)),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                cfg.KeepaliveInterval,
			Timeout:             cfg.KeepaliveTimeout,
			PermitWithoutStream: true,
		}),
		grpc.WithChainUnaryInterceptor(
			ClientRequestIDInterceptor(),
			ClientLoggingInterceptor(logger.WithName("grpc-client")),
		),
	}
	dialOpts = append(dialOpts, opts...)

	conn, err := grpc.NewClient(cfg.Target, dialOpts...)
	if err != nil {
		return nil, gloxerror.Wrap(err, "failed to create client connection").
			WithCode(gloxerror.CodeServiceUnavailable).
			WithOperation("server.Dial").
			WithDetail("target", cfg.Target)
	}

	return &Client{conn: conn, timeout: cfg.Timeout, owned: true}, nil
}

// NewClient wraps an existing connection. Close does not close it.
func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn}
}

// Parse sends source to the remote parser
func (c *Client) Parse(ctx context.Context, source, printerStyle string) (*ParseResponse, error) {
	req := &ParseRequest{Source: source, Printer: printerStyle}
	in, err := req.toStruct()
	if err != nil {
		return nil, err
	}

	out, err := c.invoke(ctx, ParseMethod, in)
	if err != nil {
		return nil, err
	}
	return parseResponseFrom(out), nil
}

// Scan sends source to the remote lexer
func (c *Client) Scan(ctx context.Context, source string) (*ScanResponse, error) {
	req := &ScanRequest{Source: source}
	in, err := req.toStruct()
	if err != nil {
		return nil, err
	}

	out, err := c.invoke(ctx, ScanMethod, in)
	if err != nil {
		return nil, err
	}
	return scanResponseFrom(out), nil
}

func (c *Client) invoke(ctx context.Context, method string, in *structpb.Struct) (*structpb.Struct, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, in, out); err != nil {
		return nil, gloxerror.Wrap(err, "remote call failed").
			WithCode(gloxerror.CodeServiceUnavailable).
			WithOperation("server.Client").
			WithDetail("method", method)
	}
	return out, nil
}

// Close releases the connection if the client created it
func (c *Client) Close() error {
	if !c.owned {
		return nil
	}
	return c.conn.Close()
}
