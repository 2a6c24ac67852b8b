package util

import (
	"sort"
	"strings"
)

// FormatInfo renders info key-values sorted by key, one "key:value" per line.
func FormatInfo(info map[string]string) string {
	var builder strings.Builder
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		builder.WriteString(k)
		builder.WriteString(":")
		builder.WriteString(info[k])
		builder.WriteString("\n")
	}
	return builder.String()
}

// FormatInfoPrefix is FormatInfo restricted to keys starting with prefix.
func FormatInfoPrefix(info map[string]string, prefix string) string {
	filtered := make(map[string]string)
	for k, v := range info {
		if strings.HasPrefix(k, prefix) {
			filtered[k] = v
		}
	}
	return FormatInfo(filtered)
}
