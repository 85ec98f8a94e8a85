// Package wishlist persists each user's wishlist as an ordered JSON list in
// one file per user id. Writes are last-write-wins; a user is expected to have
// a single active session at a time.
package wishlist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/wayneshih/threec-bot/internal/errors"
)

// Item is one wishlist entry. LowestPrice stays "unknown" until a price lookup
// fills it in.
type Item struct {
	Name        string    `json:"name"`
	AddedAt     time.Time `json:"added_at"`
	LowestPrice Price     `json:"lowest_price"`
}

// Price is an integer NT$ amount or the literal "unknown" on the wire.
type Price struct {
	Value int
	Known bool
}

// MarshalJSON writes the integer amount, or "unknown" when no price is known.
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Known {
		return []byte(`"unknown"`), nil
	}
	return json.Marshal(p.Value)
}

// UnmarshalJSON accepts either an integer or the string "unknown".
func (p *Price) UnmarshalJSON(data []byte) error {
	if string(data) == `"unknown"` {
		*p = Price{}
		return nil
	}

	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("parse lowest_price: %w", err)
	}

	*p = Price{Value: v, Known: true}
	return nil
}

// Store reads and writes wishlist files under a fixed directory.
type Store struct {
	dir string
}

// NewStore creates the data directory if needed and returns the store.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	return &Store{dir: dir}, nil
}

// Dir returns the wishlist data directory.
func (s *Store) Dir() string {
	return s.dir
}

// List returns the user's wishlist in insertion order. A missing file is an
// empty list.
func (s *Store) List(userID string) ([]Item, error) {
	data, err := os.ReadFile(s.path(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperrors.NewStorageError(err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	return items, nil
}

// Add appends an item with the given name. Names are matched exactly, case
// sensitive; a duplicate name reports added=false and leaves the list alone.
func (s *Store) Add(userID, name string) (bool, error) {
	items, err := s.List(userID)
	if err != nil {
		return false, err
	}

	for _, item := range items {
		if item.Name == name {
			return false, nil
		}
	}

	items = append(items, Item{
		Name:    name,
		AddedAt: time.Now(),
	})

	return true, s.save(userID, items)
}

// Remove deletes the item with the exact given name. Reports removed=false
// when no such item exists.
func (s *Store) Remove(userID, name string) (bool, error) {
	items, err := s.List(userID)
	if err != nil {
		return false, err
	}

	kept := items[:0]
	removed := false
	for _, item := range items {
		if item.Name == name {
			removed = true
			continue
		}
		kept = append(kept, item)
	}

	if !removed {
		return false, nil
	}

	return true, s.save(userID, kept)
}

// Clear replaces the user's wishlist with an empty list.
func (s *Store) Clear(userID string) error {
	return s.save(userID, []Item{})
}

func (s *Store) save(userID string, items []Item) error {
	if items == nil {
		items = []Item{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return apperrors.NewStorageError(err)
	}

	if err := os.WriteFile(s.path(userID), data, 0o644); err != nil {
		return apperrors.NewStorageError(err)
	}

	return nil
}

func (s *Store) path(userID string) string {
	// User ids come from LINE and are alphanumeric, but never trust them as
	// path components.
	safe := strings.ReplaceAll(filepath.Base(userID), string(os.PathSeparator), "_")
	return filepath.Join(s.dir, safe+".json")
}

// FormatList renders the wishlist view reply.
func FormatList(items []Item) string {
	if len(items) == 0 {
		return "您的願望清單是空的。"
	}

	var b strings.Builder
	b.WriteString("🛒 您的願望清單：\n\n")
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Name)
	}
	b.WriteString("\n要移除項目，請輸入「移除+產品名稱」\n要清空清單，請輸入「清空購物車」")

	return b.String()
}
