// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// SplitList splits a separated list such as an environment variable value,
// trimming each element and dropping empty entries and repeats. Order is preserved.
// Returns nil when nothing remains.
//
// Example:
//
//	SplitList(" kafka-1:9092, kafka-2:9092,,kafka-1:9092 ", ",")
//	// Returns: []string{"kafka-1:9092", "kafka-2:9092"}
func SplitList(raw, sep string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, sep)
	seen := make(map[string]struct{}, len(parts))
	var result []string

	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}
