package interceptors

// Package interceptors defines the interceptor chains applied to every gRPC
// call (request ID propagation, panic recovery, logging), for both unary and
// server-streaming RPCs, plus the client-side interceptors that carry the
// request ID to upstream services.

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const requestIDHeader = "x-request-id"

// UnaryChain builds the unary interceptor chain.
func UnaryChain(logger *slog.Logger) grpc.ServerOption {
	return grpc.ChainUnaryInterceptor(
		requestIDInterceptor(),
		recoveryInterceptor(logger),
		loggingInterceptor(logger),
	)
}

// StreamChain builds the server-stream interceptor chain.
func StreamChain(logger *slog.Logger) grpc.ServerOption {
	return grpc.ChainStreamInterceptor(
		streamRequestIDInterceptor(),
		streamRecoveryInterceptor(logger),
		streamLoggingInterceptor(logger),
	)
}

func requestIDInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		return handler(withRequestID(ctx), req)
	}
}

func streamRequestIDInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		return handler(srv, &wrappedStream{ServerStream: ss, ctx: withRequestID(ss.Context())})
	}
}

func withRequestID(ctx context.Context) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.MD{}
	}

	var requestID string
	if ids := md.Get(requestIDHeader); len(ids) > 0 && ids[0] != "" {
		requestID = ids[0]
	} else {
		requestID = uuid.NewString()
		md.Set(requestIDHeader, requestID)
		ctx = metadata.NewIncomingContext(ctx, md)
	}

	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func loggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logRequest(ctx, logger, info.FullMethod, time.Since(start), err)
		return resp, err
	}
}

func streamLoggingInterceptor(logger *slog.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)
		logRequest(ss.Context(), logger, info.FullMethod, time.Since(start), err)
		return err
	}
}

func logRequest(ctx context.Context, logger *slog.Logger, method string, elapsed time.Duration, err error) {
	fields := []any{
		"method", method,
		"duration", elapsed,
	}
	if rid := RequestIDFromContext(ctx); rid != "" {
		fields = append(fields, "request_id", rid)
	}
	if err != nil {
		fields = append(fields, "error", err.Error())
		logger.Error("grpc request failed", fields...)
	} else {
		logger.Info("grpc request completed", fields...)
	}
}

func recoveryInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", "method", info.FullMethod, "panic", r)
				err = status.Errorf(13, "internal server error") // codes.Internal
			}
		}()
		return handler(ctx, req)
	}
}

func streamRecoveryInterceptor(logger *slog.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", "method", info.FullMethod, "panic", r)
				err = status.Errorf(13, "internal server error") // codes.Internal
			}
		}()
		return handler(srv, ss)
	}
}

type wrappedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedStream) Context() context.Context { return w.ctx }

type requestIDKey struct{}

// RequestIDFromContext extracts the request ID set by the interceptor.
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// ContextWithRequestID stamps an explicit request ID onto the context, for
// callers that mint the ID outside gRPC (the HTTP edge).
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// UnaryClientRequestID copies the request ID from the context into outgoing
// metadata so downstream services log the same ID.
func UnaryClientRequestID() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		return invoker(attachRequestID(ctx), method, req, reply, cc, opts...)
	}
}

// StreamClientRequestID is the stream variant of UnaryClientRequestID.
func StreamClientRequestID() grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		return streamer(attachRequestID(ctx), desc, cc, method, opts...)
	}
}

func attachRequestID(ctx context.Context) context.Context {
	if rid := RequestIDFromContext(ctx); rid != "" {
		return metadata.AppendToOutgoingContext(ctx, requestIDHeader, rid)
	}
	return ctx
}
