package wishlist

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "wishlists"))
	require.NoError(t, err)
	return s
}

func TestStore_AddAndList(t *testing.T) {
	s := newTestStore(t)

	added, err := s.Add("U1", "iPhone 15")
	require.NoError(t, err)
	assert.True(t, added)

	items, err := s.List("U1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "iPhone 15", items[0].Name)
	assert.False(t, items[0].LowestPrice.Known)
}

func TestStore_AddDuplicateName(t *testing.T) {
	s := newTestStore(t)

	added, err := s.Add("U1", "iPhone 15")
	require.NoError(t, err)
	require.True(t, added)

	added, err = s.Add("U1", "iPhone 15")
	require.NoError(t, err)
	assert.False(t, added)

	items, err := s.List("U1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestStore_Remove(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add("U1", "X")
	require.NoError(t, err)

	removed, err := s.Remove("U1", "X")
	require.NoError(t, err)
	assert.True(t, removed)

	items, err := s.List("U1")
	require.NoError(t, err)
	assert.Empty(t, items)

	removed, err = s.Remove("U1", "X")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestStore_RemoveIsCaseSensitive(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add("U1", "iPhone 15")
	require.NoError(t, err)

	removed, err := s.Remove("U1", "iphone 15")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestStore_ClearAlwaysYieldsEmptyList(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Clear("U1"), "clearing a missing list must succeed")

	_, err := s.Add("U1", "A")
	require.NoError(t, err)
	_, err = s.Add("U1", "B")
	require.NoError(t, err)

	require.NoError(t, s.Clear("U1"))

	items, err := s.List("U1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStore_ListsAreIsolatedPerUser(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add("U1", "A")
	require.NoError(t, err)

	items, err := s.List("U2")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPrice_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Item{Name: "X"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"lowest_price":"unknown"`)

	data, err = json.Marshal(Item{Name: "X", LowestPrice: Price{Value: 32900, Known: true}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"lowest_price":32900`)

	var item Item
	require.NoError(t, json.Unmarshal(data, &item))
	assert.Equal(t, 32900, item.LowestPrice.Value)
	assert.True(t, item.LowestPrice.Known)
}

func TestStore_PathIsConfinedToDataDir(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add("../../escape", "X")
	require.NoError(t, err)

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "escape.json", entries[0].Name())
}

func TestFormatList(t *testing.T) {
	assert.Equal(t, "您的願望清單是空的。", FormatList(nil))

	out := FormatList([]Item{{Name: "A"}, {Name: "B"}})
	assert.Contains(t, out, "1. A")
	assert.Contains(t, out, "2. B")
	assert.Contains(t, out, "清空購物車")
}
