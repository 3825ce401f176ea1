package explorer

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FlatEntry is one key/value pair produced by Flatten. Order is
// significant, so the result is a slice rather than a map.
type FlatEntry struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// Flatten turns a nested plain object into a single-level list of
// key/value pairs. Parent and child keys are joined with a single space.
// Arrays are kept as opaque leaf values. Excluded keys are dropped at any
// depth. With sortKeys the result is ordered alphabetically, otherwise
// insertion order is kept.
func Flatten(obj map[string]interface{}, excluded []string, prefix string, sortKeys bool) []FlatEntry {
	skip := make(map[string]bool, len(excluded))
	for _, key := range excluded {
		skip[key] = true
	}

	var out []FlatEntry
	flattenInto(&out, obj, skip, prefix, sortKeys)
	if sortKeys {
		sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	}
	return out
}

func flattenInto(out *[]FlatEntry, obj map[string]interface{}, skip map[string]bool, prefix string, sortKeys bool) {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	// Map iteration order is random; keep the per-level order stable.
	sort.Strings(keys)

	for _, key := range keys {
		if skip[key] {
			continue
		}
		full := key
		if prefix != "" {
			full = prefix + " " + key
		}
		if nested, ok := obj[key].(map[string]interface{}); ok {
			flattenInto(out, nested, skip, full, sortKeys)
			continue
		}
		*out = append(*out, FlatEntry{Key: full, Value: obj[key]})
	}
}

// HumanizeDuration renders the span between two ISO timestamps as the
// largest two non-zero units among days, hours, minutes and seconds.
// Seconds are dropped at hour granularity and minutes at day granularity.
// A zero span renders as "0s". Reversed or unparsable input returns
// ok=false.
func HumanizeDuration(startISO, endISO string) (string, bool) {
	start, err := parseISOTime(startISO)
	if err != nil {
		return "", false
	}
	end, err := parseISOTime(endISO)
	if err != nil {
		return "", false
	}

	total := int64(end.Sub(start).Seconds())
	if total < 0 {
		return "", false
	}
	if total == 0 {
		return "0s", true
	}

	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case days > 0:
		if hours > 0 {
			return fmt.Sprintf("%dd %dh", days, hours), true
		}
		return fmt.Sprintf("%dd", days), true
	case hours > 0:
		if minutes > 0 {
			return fmt.Sprintf("%dh %dm", hours, minutes), true
		}
		return fmt.Sprintf("%dh", hours), true
	case minutes > 0:
		if seconds > 0 {
			return fmt.Sprintf("%dm %ds", minutes, seconds), true
		}
		return fmt.Sprintf("%dm", minutes), true
	default:
		return fmt.Sprintf("%ds", seconds), true
	}
}

func parseISOTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// HealthGlyph maps a node health string to a status glyph.
func HealthGlyph(status string) string {
	switch strings.ToUpper(status) {
	case "HEALTHY":
		return "✓"
	case "UNHEALTHY", "UNAVAILABLE":
		return "✗"
	case "INDEXING":
		return "…"
	default:
		return "?"
	}
}

// BackupStatusIcon maps a backup job status to an icon name.
func BackupStatusIcon(status string) string {
	switch strings.ToUpper(status) {
	case "SUCCESS":
		return "check"
	case "FAILED", "CANCELED":
		return "error"
	case "STARTED", "TRANSFERRING", "TRANSFERRED":
		return "sync"
	default:
		return "question"
	}
}

// ConnectionIcon maps a connection status to an icon name.
func ConnectionIcon(connected bool) string {
	if connected {
		return "plug-connected"
	}
	return "plug-disconnected"
}

// LeaderMarker returns a marker suffix for a cluster node that is the
// current raft leader, empty otherwise.
func LeaderMarker(nodeName, leaderID string) string {
	if leaderID != "" && nodeName == leaderID {
		return " ★ leader"
	}
	return ""
}

// clip trims a human-readable error string to at most max runes.
func clip(message string, max int) string {
	message = strings.TrimSpace(message)
	runes := []rune(message)
	if max <= 0 || len(runes) <= max {
		return message
	}
	return string(runes[:max]) + "…"
}
