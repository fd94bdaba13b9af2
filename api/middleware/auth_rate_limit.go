package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/MajQs/WineLog/api/responses"
	pkgerrors "github.com/MajQs/WineLog/pkg/errors"
	"github.com/MajQs/WineLog/pkg/logger"
)

type rateLimiterStore interface {
	// FixedWindowAllow counts a hit against the named scope and reports
	// whether it is still under the limit. The store owns key namespacing.
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// AuthRateLimitPolicy bundles the window and limits for one auth surface.
// A zero window or all-zero limits disables the middleware entirely.
type AuthRateLimitPolicy struct {
	name       string
	window     time.Duration
	ipLimit    int
	emailLimit int
}

// NewAuthRateLimitPolicy builds a policy for the named surface (login, register).
func NewAuthRateLimitPolicy(name string, window time.Duration, ipLimit, emailLimit int) AuthRateLimitPolicy {
	p := AuthRateLimitPolicy{
		name:       strings.ToLower(strings.TrimSpace(name)),
		window:     window,
		ipLimit:    ipLimit,
		emailLimit: emailLimit,
	}
	if p.name == "" {
		p.name = "auth"
	}
	return p
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.emailLimit > 0)
}

// AuthRateLimit throttles an auth endpoint by client IP and, when the body
// carries one, by a hash of the submitted email. The email counter is shared
// across IPs so distributed guessing against one account still trips it.
func AuthRateLimit(policy AuthRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := clientIP(r)

			if policy.ipLimit > 0 && ip != "" {
				scope := "ip:" + policy.name + ":" + ip
				allowed, count, err := store.FixedWindowAllow(ctx, scope, int64(policy.ipLimit), policy.window)
				if err != nil {
					responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
					return
				}
				if !allowed {
					logBlocked(ctx, logg, policy, "ip", count)
					responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
					return
				}
			}

			if policy.emailLimit > 0 {
				email, restore, err := peekEmail(r)
				if err != nil {
					responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request"))
					return
				}
				r.Body = restore

				if email != "" {
					sum := sha256.Sum256([]byte(email))
					scope := "email:" + policy.name + ":" + hex.EncodeToString(sum[:])
					allowed, count, err := store.FixedWindowAllow(ctx, scope, int64(policy.emailLimit), policy.window)
					if err != nil {
						responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
						return
					}
					if !allowed {
						logBlocked(ctx, logg, policy, "email", count)
						responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// peekEmail reads the body to extract a lowercased email and hands back a
// replacement reader so the handler still sees the full payload.
func peekEmail(r *http.Request) (string, io.ReadCloser, error) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return "", nil, err
	}
	restore := io.NopCloser(bytes.NewReader(payload))

	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return "", restore, nil
	}
	return strings.ToLower(strings.TrimSpace(body.Email)), restore, nil
}

func logBlocked(ctx context.Context, logg *logger.Logger, policy AuthRateLimitPolicy, scope string, count int64) {
	if logg == nil {
		return
	}
	logCtx := logg.WithFields(ctx, map[string]any{
		"policy":         policy.name,
		"scope":          scope,
		"attempts":       count,
		"window_seconds": int(policy.window.Seconds()),
	})
	logg.Warn(logCtx, "auth.rate_limit.blocked")
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
