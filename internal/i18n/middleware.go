package i18n

import (
	"context"
	"net/http"

	"github.com/PabloGalante/career-companion/internal/domain"
)

type userLanguageContextKey struct{}

var userLanguageContextKeyInstance = userLanguageContextKey{}

// Middleware stores the first supported language of Accept-Language in the request context.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if code, ok := Normalize(r.Header.Get("Accept-Language")); ok {
				ctx := context.WithValue(r.Context(), userLanguageContextKeyInstance, code)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// UserLanguage returns the language found by Middleware, or "" when none was.
func UserLanguage(ctx context.Context) domain.LanguageCode {
	if code, ok := ctx.Value(userLanguageContextKeyInstance).(domain.LanguageCode); ok {
		return code
	}
	return ""
}
