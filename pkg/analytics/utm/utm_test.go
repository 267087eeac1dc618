package utm_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrale/wrale-analytics/api/types/v1alpha1"
	"github.com/wrale/wrale-analytics/pkg/analytics/utm"
)

func TestParseStrict(t *testing.T) {
	q, err := url.ParseQuery("utm_source=ads&utm_medium=cpc&junk=1")
	require.NoError(t, err)

	got := utm.Parse(q, utm.DefaultOptions())
	assert.Equal(t, v1alpha1.UTM{Source: "ads", Medium: "cpc"}, got)
}

func TestParseAllParameters(t *testing.T) {
	q := url.Values{
		utm.Source:   {"newsletter"},
		utm.Medium:   {"email"},
		utm.Campaign: {"spring sale"},
		utm.Term:     {"shoes"},
		utm.Content:  {"banner-1"},
	}

	got := utm.Parse(q, utm.Options{Strict: true})
	assert.Equal(t, v1alpha1.UTM{
		Source:   "newsletter",
		Medium:   "email",
		Campaign: "spring sale",
		Term:     "shoes",
		Content:  "banner-1",
	}, got)
}

func TestParseDropsMalformedInStrictMode(t *testing.T) {
	q := url.Values{
		utm.Source:   {"ok"},
		utm.Medium:   {"bad\x00value"},
		utm.Campaign: {strings.Repeat("x", utm.MaxValueLength+1)},
		utm.Term:     {"   "},
		utm.Content:  {"line\nbreak"},
	}

	got := utm.Parse(q, utm.Options{Strict: true})
	assert.Equal(t, v1alpha1.UTM{Source: "ok"}, got)
}

func TestParseNonStrictPassesRawValues(t *testing.T) {
	q := url.Values{
		utm.Medium:  {"bad\x00value"},
		utm.Content: {" padded "},
	}

	got := utm.Parse(q, utm.Options{Strict: false})
	assert.Equal(t, v1alpha1.UTM{Medium: "bad\x00value", Content: " padded "}, got)
}

func TestParseNilQuery(t *testing.T) {
	assert.True(t, utm.Parse(nil, utm.DefaultOptions()).IsZero())
}

func TestValid(t *testing.T) {
	assert.True(t, utm.Valid("newsletter"))
	assert.True(t, utm.Valid("café"))
	assert.True(t, utm.Valid(strings.Repeat("a", utm.MaxValueLength)))
	assert.False(t, utm.Valid(""))
	assert.False(t, utm.Valid("tab\there"))
	assert.False(t, utm.Valid("\xff"))
}
