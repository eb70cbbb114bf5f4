package lightboxes

import (
	"context"
	"net/http"
	"strings"

	"github.com/adampresley/adamgokit/sessions"
	"github.com/adampresley/yearinreview/pkg/lightbox"
	"github.com/adampresley/yearinreview/pkg/models"
)

/*
NewStateMiddleware puts the visitor's open lightbox on the request context.
The cookie session only holds the id; the state itself comes from the
session store. Visitors without a live session get an empty, closed state.
*/
func NewStateMiddleware(sessionService sessions.Session[string], sessionStore lightbox.SessionStorer, excludedPaths []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				err   error
				id    string
				state models.LightboxState
			)

			path := r.URL.Path

			for _, excludedPath := range excludedPaths {
				if strings.HasPrefix(path, excludedPath) {
					next.ServeHTTP(w, r)
					return
				}
			}

			if id, err = sessionService.Get(r); err == nil && id != "" {
				if stored, ok := sessionStore.Get(id); ok {
					state = stored
				}
			}

			ctx := context.WithValue(r.Context(), "lightbox", &state)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
