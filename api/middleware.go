package api

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/p-miano/portfolio-api/auth"
	"github.com/p-miano/portfolio-api/errs"
	"github.com/p-miano/portfolio-api/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const requestIDHeaderName = "X-Request-ID"

// accountLookup resolves the user a token was issued to.
type accountLookup interface {
	Profile(ctx context.Context, userID uint) (*models.User, error)
}

type authMiddleware struct {
	responder Responder
	tokens    *auth.Tokens
	accounts  accountLookup
}

func newAuthMiddleware(tokens *auth.Tokens, accounts accountLookup) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()
	return authMiddleware{
		responder: NewResponder(logger),
		tokens:    tokens,
		accounts:  accounts,
	}
}

// authenticate requires a valid bearer token whose user still exists and
// stores the user id in the request context.
func (m authMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			m.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			m.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}

		userID, err := m.tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				m.responder.WriteError(w, errs.NewExpiredTokenError())
				return
			}
			m.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}

		if _, err := m.accounts.Profile(r.Context(), userID); err != nil {
			if errs.IsUnauthorized(err) {
				m.responder.WriteError(w, errs.NewInvalidTokenError())
				return
			}
			m.responder.WriteError(w, err)
			return
		}

		updatedCtx := ctxWithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(updatedCtx))
	})
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// RequestID reuses an incoming X-Request-ID (capped at 128 bytes) or
// generates one, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeaderName))
		if len(requestID) > 128 {
			requestID = requestID[:128]
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeaderName, requestID)
		next.ServeHTTP(w, r.WithContext(ctxWithRequestID(r.Context(), requestID)))
	})
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				log.Error().
					Str("requestID", RequestIDFromContext(r.Context())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				// Write 500 if nothing written yet
				if !srw.wroteHeader {
					NewResponder(log.Logger).WriteError(srw, errs.NewInternalError("panic"))
				}
			}
		}()

		next.ServeHTTP(srw, r)
	})
}

// HTTPLoggingMiddleware logs each request at a level picked from its status code.
func HTTPLoggingMiddleware(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			srw := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(srw, r)

			var logEvent *zerolog.Event
			switch {
			case srw.status >= 500:
				logEvent = logger.Error()
			case srw.status >= 400:
				logEvent = logger.Warn()
			default:
				logEvent = logger.Info()
			}

			logEvent.
				Str("requestID", RequestIDFromContext(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", srw.status).
				Dur("duration", time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Msg("HTTP Request")
		})
	}
}
