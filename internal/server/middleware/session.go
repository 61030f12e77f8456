// Package middleware provides HTTP middleware that resolves the session named in the request path.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/resume-ats/internal/session"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// sessionKey is the context key for storing the resolved session.
const sessionKey ContextKey = "session"

// sessionIDKey is the context key for storing the session ID.
const sessionIDKey ContextKey = "sessionID"

// SessionLookup resolves a session ID to its controller.
type SessionLookup interface {
	Get(id string) (*session.Controller, error)
}

// RequireSession creates middleware that resolves the {id} path value to a
// session and adds it to the request context. Unknown sessions get a 404.
// It must wrap a handler registered on a pattern containing {id}.
func RequireSession(sessions SessionLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.PathValue("id")
			if id == "" {
				writeError(w, http.StatusBadRequest, "session ID is required")
				return
			}

			controller, err := sessions.Get(id)
			if err != nil {
				var notFound *session.NotFoundError
				if errors.As(err, &notFound) {
					writeError(w, http.StatusNotFound, err.Error())
					return
				}
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, controller)
			ctx = context.WithValue(ctx, sessionIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession extracts the resolved session controller from the request context.
func GetSession(r *http.Request) (*session.Controller, error) {
	controller, ok := r.Context().Value(sessionKey).(*session.Controller)
	if !ok || controller == nil {
		return nil, fmt.Errorf("session not found in request context")
	}
	return controller, nil
}

// GetSessionID extracts the resolved session ID from the request context.
func GetSessionID(r *http.Request) (string, error) {
	id, ok := r.Context().Value(sessionIDKey).(string)
	if !ok || id == "" {
		return "", fmt.Errorf("session ID not found in request context")
	}
	return id, nil
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}
