package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trawlerhq/trawler/pkg/engine"
)

func TestDecodeCaptureInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  CaptureConfig
	}{
		{
			name:  "empty input uses defaults",
			input: "",
			want:  CaptureConfig{Quality: QualityLow, Viewport: ViewportNormal},
		},
		{
			name:  "high quality flag",
			input: "high",
			want:  CaptureConfig{Quality: QualityHigh, Viewport: ViewportNormal},
		},
		{
			name:  "small viewport flag",
			input: "small please",
			want:  CaptureConfig{Quality: QualityLow, Viewport: ViewportSmall},
		},
		{
			name:  "both flags in free-form text",
			input: "give me a high quality small shot",
			want:  CaptureConfig{Quality: QualityHigh, Viewport: ViewportSmall},
		},
		{
			name:  "matching is case-sensitive",
			input: "HIGH SMALL",
			want:  CaptureConfig{Quality: QualityLow, Viewport: ViewportNormal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeCaptureInput(tt.input))
		})
	}
}

func TestCaptureTiers(t *testing.T) {
	assert.Equal(t, 80, QualityHigh.JPEGQuality())
	assert.Equal(t, 40, QualityLow.JPEGQuality())
	assert.Equal(t, engine.Viewport{Width: 800, Height: 600}, ViewportSmall.Size())
	assert.Equal(t, engine.Viewport{Width: 1280, Height: 720}, ViewportNormal.Size())
}
