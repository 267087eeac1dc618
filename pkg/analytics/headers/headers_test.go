package headers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrale/wrale-analytics/api/types/v1alpha1"
	"github.com/wrale/wrale-analytics/pkg/analytics/headers"
)

func header(kv ...string) http.Header {
	h := http.Header{}
	for i := 0; i+1 < len(kv); i += 2 {
		h.Set(kv[i], kv[i+1])
	}
	return h
}

func TestViewport(t *testing.T) {
	tests := []struct {
		name   string
		h      http.Header
		width  *int
		height *int
	}{
		{
			name:   "client hints",
			h:      header("Sec-CH-Viewport-Width", "1280", "Sec-CH-Viewport-Height", "720"),
			width:  intPtr(1280),
			height: intPtr(720),
		},
		{
			name:   "legacy fallback",
			h:      header("Viewport-Width", "390", "Viewport-Height", "844"),
			width:  intPtr(390),
			height: intPtr(844),
		},
		{
			name:   "client hint wins over legacy",
			h:      header("Sec-CH-Viewport-Width", "1024", "Viewport-Width", "800"),
			width:  intPtr(1024),
			height: nil,
		},
		{
			name:   "numeric prefix",
			h:      header("Sec-CH-Viewport-Width", "1280.5", "Sec-CH-Viewport-Height", " 800px"),
			width:  intPtr(1280),
			height: intPtr(800),
		},
		{
			name: "sign without digits",
			h:    header("Sec-CH-Viewport-Width", "-", "Viewport-Height", "+px"),
		},
		{
			name: "non numeric",
			h:    header("Sec-CH-Viewport-Width", "wide", "Viewport-Height", "tall"),
		},
		{
			name: "absent",
			h:    http.Header{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.width, headers.ViewportWidth(tt.h))
			assert.Equal(t, tt.height, headers.ViewportHeight(tt.h))
		})
	}
}

func TestLanguageAndTimezone(t *testing.T) {
	h := header("Lang", "de-CH", "CloudFront-Viewer-Time-Zone", "Europe/Zurich")
	require.NotNil(t, headers.Language(h))
	assert.Equal(t, "de-CH", *headers.Language(h))
	require.NotNil(t, headers.Timezone(h))
	assert.Equal(t, "Europe/Zurich", *headers.Timezone(h))

	h.Set("Sec-CH-Lang", "en")
	h.Set("X-Vercel-IP-Timezone", "America/New_York")
	assert.Equal(t, "en", *headers.Language(h))
	assert.Equal(t, "America/New_York", *headers.Timezone(h))

	assert.Nil(t, headers.Language(http.Header{}))
	assert.Nil(t, headers.Timezone(http.Header{}))
}

func TestExtract(t *testing.T) {
	full := header(
		"User-Agent", "test-agent",
		"Sec-CH-Viewport-Width", "1280",
		"Sec-CH-Viewport-Height", "720",
		"Sec-CH-Lang", "en",
		"X-Vercel-IP-Timezone", "UTC",
	)

	t.Run("nothing ignored", func(t *testing.T) {
		s := headers.Extract(full, v1alpha1.IgnoreMetrics{})
		assert.Equal(t, v1alpha1.Signals{
			UserAgent:      strPtr("test-agent"),
			ViewportWidth:  intPtr(1280),
			ViewportHeight: intPtr(720),
			Language:       strPtr("en"),
			Timezone:       strPtr("UTC"),
		}, s)
	})

	t.Run("viewport ignored", func(t *testing.T) {
		s := headers.Extract(full, v1alpha1.IgnoreMetrics{ViewportSize: true})
		assert.Nil(t, s.ViewportWidth)
		assert.Nil(t, s.ViewportHeight)
		assert.NotNil(t, s.Language)
	})

	t.Run("everything ignored", func(t *testing.T) {
		s := headers.Extract(full, v1alpha1.IgnoreMetrics{
			UserAgent:    true,
			ViewportSize: true,
			Language:     true,
			Timezone:     true,
		})
		assert.Equal(t, v1alpha1.Signals{}, s)
	})

	t.Run("missing user agent is empty not nil", func(t *testing.T) {
		s := headers.Extract(nil, v1alpha1.IgnoreMetrics{})
		require.NotNil(t, s.UserAgent)
		assert.Equal(t, "", *s.UserAgent)
		assert.Nil(t, s.Language)
	})
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
