package handlers

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey int

const userIDKey ctxKey = iota

const tokenScheme = "Token"

// Authenticated resolves `Authorization: Token <key>` to a user id.
func (h *HTTPHandler) Authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, ok := tokenFromHeader(r.Header.Get("Authorization"))
		if !ok {
			h.error(w, http.StatusUnauthorized, "authentication credentials were not provided")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.responseTimeout)
		defer cancel()

		userId, err := h.storage.GetUserIDByToken(ctx, key)
		if err != nil {
			h.appError(w, err)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userId)))
	}
}

func tokenFromHeader(header string) (string, bool) {
	scheme, key, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, tokenScheme) {
		return "", false
	}
	key = strings.TrimSpace(key)
	return key, key != ""
}

func userIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
