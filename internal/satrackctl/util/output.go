// Package util provides shared utilities for the CLI
package util

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/wrale/wrale-analytics/api/types/v1alpha1"
)

// PrintJSON writes a JSON representation of v to w with proper indentation
func PrintJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ParseKeyValues splits each "key=value" pair
func ParseKeyValues(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("invalid format %q - use key=value", pair)
		}
		out[strings.TrimSpace(parts[0])] = parts[1]
	}
	return out, nil
}

// ParseHeaders converts "Name=value" pairs into a header set
func ParseHeaders(pairs []string) (http.Header, error) {
	kv, err := ParseKeyValues(pairs)
	if err != nil {
		return nil, err
	}
	h := http.Header{}
	for k, v := range kv {
		h.Set(k, v)
	}
	return h, nil
}

// ParseMetadata converts "key=value" pairs into event metadata. Values that
// look like booleans or numbers are sent as such.
func ParseMetadata(pairs []string) (v1alpha1.Metadata, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	kv, err := ParseKeyValues(pairs)
	if err != nil {
		return nil, err
	}
	meta := make(v1alpha1.Metadata, len(kv))
	for k, v := range kv {
		meta[k] = scalar(v)
	}
	return meta, nil
}

func scalar(v string) any {
	switch v {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}

// ParseIgnore turns names such as "ua,viewport" into IgnoreMetrics flags
func ParseIgnore(names []string, base v1alpha1.IgnoreMetrics) (v1alpha1.IgnoreMetrics, error) {
	out := base
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "ua", "user-agent", "useragent":
			out.UserAgent = true
		case "viewport", "viewport-size", "viewportsize":
			out.ViewportSize = true
		case "language", "lang":
			out.Language = true
		case "timezone", "tz":
			out.Timezone = true
		case "utm":
			out.UTM = true
		default:
			return out, fmt.Errorf("unknown metric %q (valid: %s)", name, strings.Join(IgnoreNames(), ", "))
		}
	}
	return out, nil
}

// IgnoreNames lists the canonical metric names accepted by ParseIgnore
func IgnoreNames() []string {
	names := []string{"ua", "viewport", "language", "timezone", "utm"}
	sort.Strings(names)
	return names
}
