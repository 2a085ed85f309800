// Package pagination implements opaque keyset cursors for newest-first listings.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// Cursor identifies the last item of a page by its ordering key.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// Before reports whether c sorts strictly before other in ascending (CreatedAt, ID) order.
func (c Cursor) Before(other Cursor) bool {
	if !c.CreatedAt.Equal(other.CreatedAt) {
		return c.CreatedAt.Before(other.CreatedAt)
	}
	return c.ID < other.ID
}

// EncodeToken creates a URL-safe token from a cursor.
func EncodeToken(c Cursor) string {
	tokenStr := c.CreatedAt.UTC().Format(timeFormat) + "|" + c.ID
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token created by EncodeToken.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	createdAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	return Cursor{CreatedAt: createdAt, ID: parts[1]}, nil
}

// PageDescending slices one page out of items sorted newest first.
// An empty token starts from the top. The returned token is empty on the last page.
func PageDescending[T any](items []T, key func(T) Cursor, token string, limit int) ([]T, string, error) {
	start := 0
	if token != "" {
		after, err := DecodeToken(token)
		if err != nil {
			return nil, "", err
		}
		for start < len(items) && !key(items[start]).Before(after) {
			start++
		}
	}

	end := start + limit
	if limit <= 0 || end >= len(items) {
		return items[start:], "", nil
	}
	return items[start:end], EncodeToken(key(items[end-1])), nil
}
