// ============================================================================
// glox - Lox expression front end
// ============================================================================
//
// Package:     server
// Description: glox.v1.ParserService registration and implementation
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	gloxerror "github.com/msto63/glox/foundation/core/error"
	gloxlog "github.com/msto63/glox/foundation/core/log"
	"github.com/msto63/glox/foundation/lox"
	"github.com/msto63/glox/foundation/lox/printer"
)

// Service and method names
const (
	ServiceName = "glox.v1.ParserService"

	ParseMethod = "/" + ServiceName + "/Parse"
	ScanMethod  = "/" + ServiceName + "/Scan"
)

// ParserServer is the server API of glox.v1.ParserService
type ParserServer interface {
	Parse(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Scan(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ParserServiceDesc describes the service for grpc.Server.RegisterService
var ParserServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ParserServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Parse", Handler: parseHandler},
		{MethodName: "Scan", Handler: scanHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "glox/v1/parser.proto",
}

// RegisterParserServer registers srv on s
func RegisterParserServer(s grpc.ServiceRegistrar, srv ParserServer) {
	s.RegisterService(&ParserServiceDesc, srv)
}

func parseHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ParserServer).Parse(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ParseMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ParserServer).Parse(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func scanHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ParserServer).Scan(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ScanMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ParserServer).Scan(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Service implements ParserServer on top of the front end
type Service struct {
	frontend *lox.Frontend
	metrics  *Metrics
	logger   *gloxlog.Logger
}

// NewService creates the service. metrics may be nil.
func NewService(frontend *lox.Frontend, metrics *Metrics, logger *gloxlog.Logger) *Service {
	if logger == nil {
		logger = gloxlog.GetDefault()
	}
	return &Service{
		frontend: frontend,
		metrics:  metrics,
		logger:   logger.WithField("component", "parser-service"),
	}
}

// Parse handles glox.v1.ParserService/Parse. Syntax errors are reported in
// the response, not as a gRPC status.
func (s *Service) Parse(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := parseRequestFrom(in)
	log := s.logger.WithRequestID(GetRequestID(ctx))

	style, err := printer.ParseStyle(req.Printer)
	if err != nil {
		return nil, toStatus(err)
	}

	res, err := s.frontend.Parse(req.Source)
	if err != nil {
		log.LogError(err)
		return nil, toStatus(err)
	}
	s.metrics.observeSource("parse", len(req.Source), len(res.Diagnostics))

	resp := NewParseResponse(res, style)

	log.Debug("Parse handled", gloxlog.Fields{
		"bytes":       len(req.Source),
		"ok":          resp.OK,
		"diagnostics": len(resp.Diagnostics),
	})
	return resp.toStruct()
}

// Scan handles glox.v1.ParserService/Scan
func (s *Service) Scan(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := scanRequestFrom(in)

	res, err := s.frontend.Scan(req.Source)
	if err != nil {
		s.logger.WithRequestID(GetRequestID(ctx)).LogError(err)
		return nil, toStatus(err)
	}
	s.metrics.observeSource("scan", len(req.Source), len(res.Diagnostics))

	return NewScanResponse(res).toStruct()
}

// toStatus maps coded errors to gRPC status codes
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var code codes.Code
	switch gloxerror.GetCode(err) {
	case gloxerror.CodeInvalidInput, gloxerror.CodeSourceTooLarge, gloxerror.CodeSyntax:
		code = codes.InvalidArgument
	case gloxerror.CodeNotFound:
		code = codes.NotFound
	case gloxerror.CodeTimeout:
		code = codes.DeadlineExceeded
	case gloxerror.CodeServiceUnavailable:
		code = codes.Unavailable
	default:
		code = codes.Internal
	}
	return status.Error(code, err.Error())
}
