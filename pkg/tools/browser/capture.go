package browser

import (
	"strings"

	"github.com/trawlerhq/trawler/pkg/engine"
)

// Quality is a screenshot quality tier.
type Quality int

// Quality tiers.
const (
	QualityLow Quality = iota
	QualityHigh
)

// JPEGQuality maps the tier to a JPEG quality value.
func (q Quality) JPEGQuality() int {
	if q == QualityHigh {
		return 80
	}
	return 40
}

func (q Quality) String() string {
	if q == QualityHigh {
		return "high"
	}
	return "low"
}

// ViewportTier is a capture viewport size tier.
type ViewportTier int

// Viewport tiers.
const (
	ViewportNormal ViewportTier = iota
	ViewportSmall
)

// Size maps the tier to viewport dimensions.
func (v ViewportTier) Size() engine.Viewport {
	if v == ViewportSmall {
		return engine.Viewport{Width: 800, Height: 600}
	}
	return engine.Viewport{Width: 1280, Height: 720}
}

func (v ViewportTier) String() string {
	if v == ViewportSmall {
		return "small"
	}
	return "normal"
}

// CaptureConfig is the decoded screenshot configuration.
type CaptureConfig struct {
	Quality  Quality
	Viewport ViewportTier
}

// DecodeCaptureInput turns the free-form capture input into an explicit
// configuration, decoded once at the action boundary. Defaults are low
// quality and the normal viewport.
func DecodeCaptureInput(input string) CaptureConfig {
	cfg := CaptureConfig{Quality: QualityLow, Viewport: ViewportNormal}
	if strings.Contains(input, "high") {
		cfg.Quality = QualityHigh
	}
	if strings.Contains(input, "small") {
		cfg.Viewport = ViewportSmall
	}
	return cfg
}
