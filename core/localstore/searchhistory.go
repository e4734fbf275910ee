package localstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	historyFile = "search_history.json"
	// maxHistoryItems bounds the recent-search list; older terms fall off.
	maxHistoryItems = 5
)

// SearchHistory keeps the user's recent search terms, most recent first,
// deduplicated and capped at maxHistoryItems entries.
type SearchHistory struct {
	mu   sync.Mutex
	path string
}

// NewSearchHistory creates a search history store rooted at dir.
func NewSearchHistory(dir string) (*SearchHistory, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Join(ErrStorageUnavailable, err)
	}
	return &SearchHistory{path: filepath.Join(dir, historyFile)}, nil
}

// All returns the stored terms, most recent first. An absent file yields an
// empty list.
func (h *SearchHistory) All() ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.load()
}

// Add records a search term at the front of the list, removing any earlier
// occurrence of the same term. Blank terms are ignored.
func (h *SearchHistory) Add(term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	terms, err := h.load()
	if err != nil {
		return err
	}

	next := make([]string, 0, maxHistoryItems)
	next = append(next, term)
	for _, t := range terms {
		if strings.EqualFold(t, term) {
			continue
		}
		next = append(next, t)
		if len(next) == maxHistoryItems {
			break
		}
	}
	return h.save(next)
}

// Clear removes all stored terms.
func (h *SearchHistory) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.Remove(h.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}

func (h *SearchHistory) load() ([]string, error) {
	data, err := os.ReadFile(h.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrStorageUnavailable, err)
	}
	var terms []string
	if err := json.Unmarshal(data, &terms); err != nil {
		// A corrupt history list is not worth surfacing; start over.
		return nil, nil
	}
	return terms, nil
}

func (h *SearchHistory) save(terms []string) error {
	data, err := json.Marshal(terms)
	if err != nil {
		return err
	}
	tmp := h.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmp, h.path); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}
