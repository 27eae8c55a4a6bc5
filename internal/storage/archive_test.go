package storage

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	at := time.Date(2026, 3, 7, 23, 0, 0, 0, time.UTC)
	key := ObjectKey("code_feedback", at)
	require.Regexp(t, regexp.MustCompile(`^llm/code_feedback/2026/03/07/[0-9a-f-]{36}\.txt$`), key)
	require.NotEqual(t, key, ObjectKey("code_feedback", at))
}

func TestMemoryArchiver(t *testing.T) {
	a := NewMemoryArchiver()
	ctx := context.Background()

	key, err := a.Archive(ctx, "internship_planner", `{"tasks":[]}`)
	require.NoError(t, err)

	raw, err := a.Fetch(ctx, key)
	require.NoError(t, err)
	require.Equal(t, `{"tasks":[]}`, raw)
	require.Equal(t, []string{key}, a.Keys("llm/internship_planner/"))

	_, err = a.Fetch(ctx, "llm/missing.txt")
	require.Error(t, err)
}

func TestNopArchiver(t *testing.T) {
	key, err := NopArchiver{}.Archive(context.Background(), "x", "raw")
	require.NoError(t, err)
	require.Empty(t, key)
	_, err = NopArchiver{}.Fetch(context.Background(), "k")
	require.Error(t, err)
}
