package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFileStorageRoundTrip тестирует сохранение и чтение объекта
func TestFileStorageRoundTrip(t *testing.T) {
	s := NewFileStorage(t.TempDir(), "http://localhost:8080/")

	require.NoError(t, s.SaveBytes("results/a.png", []byte("payload")))
	assert.True(t, s.Exists("results/a.png"))

	data, err := s.GetBytes("results/a.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	require.NoError(t, s.Delete("results/a.png"))
	assert.False(t, s.Exists("results/a.png"))

	_, err = s.GetBytes("results/a.png")
	assert.Error(t, err)
}

// TestKeyEscapingRootRejected тестирует защиту от выхода ключа за корень хранилища
func TestKeyEscapingRootRejected(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "objects")
	require.NoError(t, os.MkdirAll(base, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.txt"), []byte("top secret"), 0644))

	s := NewFileStorage(base, "http://localhost:8080")

	// соседний файл вне корня недостижим ни на чтение, ни на запись
	_, err := s.GetBytes("../secret.txt")
	assert.ErrorIs(t, err, ErrKeyOutsideRoot)
	assert.False(t, s.Exists("../secret.txt"))
	assert.ErrorIs(t, s.SaveBytes("../evil.txt", []byte("x")), ErrKeyOutsideRoot)
	assert.ErrorIs(t, s.Delete("../secret.txt"), ErrKeyOutsideRoot)

	tests := []struct {
		name string
		key  string
	}{
		{name: "plain parent", key: ".."},
		{name: "nested traversal", key: "uploads/../../secret.txt"},
		{name: "absolute path", key: "/etc/passwd"},
		{name: "bare dot", key: "."},
		{name: "empty key", key: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.GetBytes(tt.key)
			assert.ErrorIs(t, err, ErrKeyOutsideRoot)
		})
	}

	// внутренние ".." сегменты, не покидающие корень, остаются допустимыми
	require.NoError(t, s.SaveBytes("a/../b.txt", []byte("ok")))
	assert.True(t, s.Exists("b.txt"))
}

// TestMintKey тестирует уникальность ключей с сохранением расширения
func TestMintKey(t *testing.T) {
	s := NewFileStorage(t.TempDir(), "http://localhost:8080")

	first := s.MintKey("uploads", "photo.jpg")
	second := s.MintKey("uploads", "photo.jpg")

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, "uploads/"))
	assert.True(t, strings.HasSuffix(first, ".jpg"))
}

// TestResolveURL тестирует выдачу просмотровой ссылки
func TestResolveURL(t *testing.T) {
	s := NewFileStorage(t.TempDir(), "http://localhost:8080/")

	url := s.ResolveURL("results/a b.png")
	assert.Equal(t, "http://localhost:8080/view?key=results%2Fa+b.png", url)
}
