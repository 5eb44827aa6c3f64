package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbalint/jarvis/internal/llm"
)

func TestMemoryStore_SaveIsolatesCaller(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(0)
	ctx := context.Background()

	tr := NewTranscript("rules").Append(llm.User("hi"))
	require.NoError(t, store.Save(ctx, tr))

	// Mutating the caller's slice must not affect the stored copy.
	tr[1].Content = "changed"

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hi", loaded[1].Content)
}

func TestMemoryStore_SaveEnforcesCap(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(3)
	ctx := context.Background()

	tr := NewTranscript("rules").Append(
		llm.User("one"), llm.Assistant("two"),
		llm.User("three"), llm.Assistant("four"),
	)
	require.NoError(t, store.Save(ctx, tr))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, llm.RoleSystem, loaded[0].Role)
	assert.Equal(t, "four", loaded[2].Content)
}

func TestMemoryStore_Clear(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, NewTranscript("rules")))
	require.NoError(t, store.Clear(ctx))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestTruncateResponse(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncateResponse("short"))

	long := make([]rune, interactionResponseLimit+1)
	for i := range long {
		long[i] = 'é'
	}
	got := truncateResponse(string(long))
	assert.Len(t, []rune(got), interactionResponseLimit+3)
}
