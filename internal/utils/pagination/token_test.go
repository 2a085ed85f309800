package pagination

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id string
	at time.Time
}

func itemKey(i item) Cursor { return Cursor{CreatedAt: i.at, ID: i.id} }

func TestEncodeDecodeToken(t *testing.T) {
	c := Cursor{CreatedAt: time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC), ID: "a|b"}

	token := EncodeToken(c)
	assert.NotEmpty(t, token)

	decoded, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, c.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, "a|b", decoded.ID)
}

func TestDecodeToken_Invalid(t *testing.T) {
	for _, token := range []string{"%%%", EncodeToken(Cursor{})[:2], "bm8tc2VwYXJhdG9y"} {
		_, err := DecodeToken(token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestCursorBefore(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, Cursor{CreatedAt: t0, ID: "z"}.Before(Cursor{CreatedAt: t0.Add(time.Second), ID: "a"}))
	assert.True(t, Cursor{CreatedAt: t0, ID: "a"}.Before(Cursor{CreatedAt: t0, ID: "b"}))
	assert.False(t, Cursor{CreatedAt: t0, ID: "b"}.Before(Cursor{CreatedAt: t0, ID: "b"}))
}

func TestPageDescending_WalksAllPages(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := make([]item, 0, 5)
	for i := 4; i >= 0; i-- {
		items = append(items, item{id: fmt.Sprintf("e%d", i), at: t0.Add(time.Duration(i) * time.Minute)})
	}

	var seen []string
	token := ""
	pages := 0
	for {
		page, next, err := PageDescending(items, itemKey, token, 2)
		require.NoError(t, err)
		for _, it := range page {
			seen = append(seen, it.id)
		}
		pages++
		if next == "" {
			break
		}
		token = next
	}

	assert.Equal(t, 3, pages)
	assert.Equal(t, []string{"e4", "e3", "e2", "e1", "e0"}, seen)
}

func TestPageDescending_ExactFitHasNoNextToken(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []item{{id: "b", at: t0}, {id: "a", at: t0}}

	page, next, err := PageDescending(items, itemKey, "", 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Empty(t, next)
}

func TestPageDescending_BadToken(t *testing.T) {
	_, _, err := PageDescending([]item{}, itemKey, "!!", 2)
	assert.Error(t, err)
}
