package middleware

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	ports "notes-blog-service/internal/domain/ports/output"
)

// RateLimiter keeps one token bucket per caller.
type RateLimiter struct {
	rps      rate.Limit
	burst    int
	limiters sync.Map // map[string]*rate.Limiter
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{rps: rate.Limit(rps), burst: burst}
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}
	v, _ := l.limiters.LoadOrStore(key, rate.NewLimiter(l.rps, l.burst))
	return v.(*rate.Limiter)
}

// callerKey prefers the authenticated subject and falls back to the peer address.
func callerKey(ctx context.Context) string {
	if session, ok := SessionFromContext(ctx); ok {
		return "sub:" + session.Identity.Email
	}
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		return "addr:" + p.Addr.String()
	}
	return "addr:unknown"
}

func (l *RateLimiter) UnaryInterceptor(log ports.Logger, metrics ports.MetricsProvider) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		key := callerKey(ctx)
		if !l.limiter(key).Allow() {
			metrics.IncrementRateLimited(info.FullMethod)
			log.Debug("Rate limit exceeded", slog.String("method", info.FullMethod), slog.String("caller", key))
			return nil, status.Error(codes.ResourceExhausted, "rate limit exceeded")
		}
		return handler(ctx, req)
	}
}
