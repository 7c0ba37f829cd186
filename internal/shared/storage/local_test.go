package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	key := GenerateKey("minutes.pdf")
	require.NoError(t, store.Put(ctx, key, strings.NewReader("hello"), 5, "application/pdf"))

	rc, err := store.Get(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, ErrObjectNotFound)

	// deleting twice is fine
	assert.NoError(t, store.Delete(ctx, key))
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	err = store.Put(context.Background(), "../escape.txt", strings.NewReader("x"), 1, "")
	assert.Error(t, err)
}

func TestLocalStore_NeverOverwrites(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "a.txt", strings.NewReader("first"), 5, ""))
	assert.Error(t, store.Put(ctx, "a.txt", strings.NewReader("second"), 6, ""))
}

func TestGenerateKey(t *testing.T) {
	a := GenerateKey("../../etc/passwd")
	b := GenerateKey("../../etc/passwd")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, "_passwd"))
	assert.NotContains(t, a, "/")

	assert.True(t, strings.HasSuffix(GenerateKey(`C:\docs\report.docx`), "_report.docx"))
}

func TestTruncateName(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		maxBytes int
		want     string
	}{
		{"short name untouched", "notes.txt", 20, "notes.txt"},
		{"keeps extension", strings.Repeat("a", 30) + ".pdf", 12, "aaaaaaaa.pdf"},
		{"does not split runes", strings.Repeat("é", 10) + ".pdf", 9, "éé.pdf"},
		{"long extension dropped", "archive." + strings.Repeat("x", 20), 10, "archive.xx"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := TruncateName(tc.input, tc.maxBytes)
			assert.Equal(t, tc.want, got)
			assert.LessOrEqual(t, len(got), tc.maxBytes)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestGenerateKey_BoundsLongNames(t *testing.T) {
	key := GenerateKey(strings.Repeat("n", 230) + ".pdf")

	assert.LessOrEqual(t, len(key), 36+1+maxKeyNameBytes)
	assert.True(t, strings.HasSuffix(key, ".pdf"))
}
