package platform

import (
	"slices"

	"github.com/ubytes/appplatform/pkg/core"
	"github.com/ubytes/appplatform/pkg/platform/driver"
)

// WebViewSettings are feature toggles read once by BeginSetup. Later changes
// to the value have no effect on a web view already set up.
type WebViewSettings struct {
	// ElasticOverscroll enables rubber-band scrolling past content edges.
	ElasticOverscroll bool
	// DraggableRegions lets content mark areas that move the window
	// (CSS app-region: drag).
	DraggableRegions bool
	// DeveloperExtras enables the inspector.
	DeveloperExtras bool
	// TransparentBackground shows the window through unpainted content.
	TransparentBackground bool
	// UserAgent overrides the engine default when non-empty.
	UserAgent string
	// BackgroundColor is painted before content loads.
	BackgroundColor *core.Color4f
}

func (s WebViewSettings) toDriver(accelerators []AcceleratorKey) driver.WebViewSettings {
	out := driver.WebViewSettings{
		ElasticOverscroll:     s.ElasticOverscroll,
		DraggableRegions:      s.DraggableRegions,
		DeveloperExtras:       s.DeveloperExtras,
		TransparentBackground: s.TransparentBackground,
		UserAgent:             s.UserAgent,
		Accelerators:          slices.Clone(accelerators),
	}
	if s.BackgroundColor != nil {
		c := *s.BackgroundColor
		out.BackgroundColor = &c
	}
	return out
}
