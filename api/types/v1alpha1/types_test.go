package v1alpha1_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrale/wrale-analytics/api/types/v1alpha1"
)

func TestPageviewJSONIsFlat(t *testing.T) {
	ua := "test-agent"
	pv := v1alpha1.NewPageview("example.com", "/blog")
	pv.UserAgent = &ua
	pv.UTM.Source = "newsletter"

	data, err := json.Marshal(pv)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, map[string]any{
		"type":       "pageview",
		"hostname":   "example.com",
		"event":      "pageview",
		"path":       "/blog",
		"ua":         "test-agent",
		"utm_source": "newsletter",
	}, got)
}

func TestEventOmitsNilSignals(t *testing.T) {
	empty := ""
	ev := v1alpha1.NewEvent("example.com", "signup")
	ev.UserAgent = &empty

	data, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"event","hostname":"example.com","event":"signup","ua":""}`, string(data))
}

func TestMetadataValidate(t *testing.T) {
	tests := []struct {
		name    string
		meta    v1alpha1.Metadata
		wantErr bool
	}{
		{name: "scalars", meta: v1alpha1.Metadata{"plan": "pro", "seats": 3, "trial": false, "price": 9.5, "ref": nil}},
		{name: "empty", meta: nil},
		{name: "nested map", meta: v1alpha1.Metadata{"user": map[string]any{"id": 1}}, wantErr: true},
		{name: "slice", meta: v1alpha1.Metadata{"tags": []string{"a"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.meta.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
