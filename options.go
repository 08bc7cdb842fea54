package docview

import "github.com/gogpu/docview/thumbcache"

// Option configures a document during Open.
//
// Example:
//
//	store, _ := thumbcache.New("/tmp/thumbs")
//	doc, err := docview.Open("report.pdf", docview.WithThumbnailCache(store))
type Option func(*config)

// config holds optional configuration applied at Open.
type config struct {
	renderScale    float64
	thumbnailScale float64
	thumbCache     *thumbcache.Store
	cacheSet       bool
}

// defaultConfig returns the default open configuration.
func defaultConfig() config {
	return config{
		renderScale:    defaultRenderScale,
		thumbnailScale: defaultThumbnailScale,
	}
}

// WithRenderScale overrides the sharp-display multiplier used for portable
// page renders.
func WithRenderScale(scale float64) Option {
	return func(c *config) {
		if scale > 0 {
			c.renderScale = scale
		}
	}
}

// WithThumbnailScale overrides the preview multiplier used for portable
// page thumbnails.
func WithThumbnailScale(scale float64) Option {
	return func(c *config) {
		if scale > 0 {
			c.thumbnailScale = scale
		}
	}
}

// WithThumbnailCache sets the disk store consulted before regenerating a
// thumbnail. Pass nil to disable disk caching entirely. When the option is
// absent, a store under the user cache directory is used.
func WithThumbnailCache(s *thumbcache.Store) Option {
	return func(c *config) {
		c.thumbCache = s
		c.cacheSet = true
	}
}
