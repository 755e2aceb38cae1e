package redis_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	redisstore "github.com/gosuda/boardlive/internal/store/redis"
)

func TestBoardChannel(t *testing.T) {
	t.Parallel()

	boardID := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")

	t.Run("happy path", func(t *testing.T) {
		t.Parallel()

		got := redisstore.BoardChannel(boardID)
		assert.Equal(t, "board:aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", got)
	})

	t.Run("nil UUID", func(t *testing.T) {
		t.Parallel()

		got := redisstore.BoardChannel(uuid.Nil)
		assert.Equal(t, "board:00000000-0000-0000-0000-000000000000", got)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Parallel()

		got := redisstore.BoardChannel(boardID)
		assert.True(t, strings.HasPrefix(got, "board:"), "expected prefix 'board:', got %q", got)
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		a := redisstore.BoardChannel(boardID)
		b := redisstore.BoardChannel(boardID)
		assert.Equal(t, a, b)
	})

	t.Run("different boards produce different channels", func(t *testing.T) {
		t.Parallel()

		other := uuid.MustParse("11111111-2222-3333-4444-555555555555")
		a := redisstore.BoardChannel(boardID)
		b := redisstore.BoardChannel(other)
		assert.NotEqual(t, a, b)
	})
}
