package testhelper

import "testing"

var rd shared

// RedisURL returns a redis:// URL of the shared Redis container.
// Tests sharing it should namespace their keys.
func RedisURL(t *testing.T) string {
	t.Helper()
	return "redis://" + rd.get(t, containerSpec{
		image:    "redis:7-alpine",
		port:     "6379",
		readyLog: "Ready to accept connections",
	}) + "/0"
}
