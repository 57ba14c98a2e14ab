package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SessionCookie identifies the shopper across requests. The value keys the
// stored cart id, taking the place of browser local storage.
type SessionCookie struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

func (sc SessionCookie) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if c, err := r.Cookie(sc.Name); err == nil {
			if _, perr := uuid.Parse(c.Value); perr == nil {
				sid = c.Value
			}
		}
		if sid == "" {
			sid = uuid.NewString()
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sc.Name,
			Value:    sid,
			Path:     "/",
			MaxAge:   int(sc.MaxAge.Seconds()),
			HttpOnly: true,
			Secure:   sc.Secure,
			SameSite: http.SameSiteLaxMode,
		})

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxSessionID, sid)))
	})
}

func GetSessionID(ctx context.Context) string {
	if v := ctx.Value(ctxSessionID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
