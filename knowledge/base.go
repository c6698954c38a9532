package knowledge

import (
	"fmt"
	"sync"

	"github.com/jonwraymond/brokerdiag/probe"
)

type key struct {
	probeID string
	status  probe.Status
}

// Base is an in-memory probe.KnowledgeBase.
type Base struct {
	mu       sync.RWMutex
	articles map[key]probe.Article
}

// New returns an empty base.
func New() *Base {
	return &Base{articles: make(map[key]probe.Article)}
}

// TryGet returns the article for the probe and status.
func (b *Base) TryGet(probeID string, status probe.Status) (probe.Article, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	a, ok := b.articles[key{probeID, status}]
	return a, ok
}

// Add stores an article, replacing any existing article for the same
// probe and status.
func (b *Base) Add(a probe.Article) error {
	if a.ProbeID == "" {
		return ErrMissingProbe
	}
	b.mu.Lock()
	b.articles[key{a.ProbeID, a.Status}] = a
	b.mu.Unlock()
	return nil
}

// Merge adds every article, stopping at the first invalid one.
func (b *Base) Merge(articles []probe.Article) error {
	for i, a := range articles {
		if err := b.Add(a); err != nil {
			return fmt.Errorf("article %d: %w", i, err)
		}
	}
	return nil
}

// Len returns the number of stored articles.
func (b *Base) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.articles)
}

var _ probe.KnowledgeBase = (*Base)(nil)
