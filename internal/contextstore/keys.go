package contextstore

import "strings"

const globalKeyPrefix = "mockmate"

// contextKey builds a namespaced redis key for a session's conversation data.
// Kinds: "log" (append log), "topics" (set), "map" (hash), "archived" (flag).
func contextKey(kind, sessionID string) string {
	return strings.Join([]string{globalKeyPrefix, "context", kind, sessionID}, ":")
}
