package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is the process local cache services read through
type Cache interface {
	// Get returns the cached value and whether it was present
	Get(ctx context.Context, key string) (interface{}, bool)
	// Set stores value; a zero expiration uses the cache default
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)
	Delete(ctx context.Context, key string)
	DeleteByPrefix(ctx context.Context, prefix string)
	Flush(ctx context.Context)
}

// PrefixSettings namespaces resolved setting values. Bump the version when
// the cached representation changes.
const PrefixSettings = "settings:v1"

// Key joins a namespace and its parts with colons, e.g. "settings:v1:PAYMENT_DUE_DAY"
func Key(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}
