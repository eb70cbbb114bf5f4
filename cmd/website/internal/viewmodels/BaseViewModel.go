package viewmodels

import (
	"net/http"

	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/yearinreview/pkg/models"
)

type BaseViewModel struct {
	Message            string
	IsError            bool
	IsWarning          bool
	IsHtmx             bool
	JavascriptIncludes []rendering.JavascriptInclude
}

/*
GetLightboxStateFromContext returns the visitor's stored lightbox, or an
empty state when none is open.
*/
func GetLightboxStateFromContext(r *http.Request) *models.LightboxState {
	if result, ok := r.Context().Value("lightbox").(*models.LightboxState); ok && result != nil {
		return result
	}

	return &models.LightboxState{}
}
