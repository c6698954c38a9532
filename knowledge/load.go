package knowledge

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/brokerdiag/probe"
)

type document struct {
	Articles []entry `yaml:"articles"`
}

type entry struct {
	Probe       string        `yaml:"probe"`
	Status      *probe.Status `yaml:"status"`
	Reason      string        `yaml:"reason"`
	Remediation string        `yaml:"remediation"`
}

// Load reads a YAML article document into a new base. Unknown fields,
// missing or unknown statuses and repeated (probe, status) pairs are rejected.
func Load(r io.Reader) (*Base, error) {
	b := New()
	if err := b.Load(r); err != nil {
		return nil, err
	}
	return b, nil
}

// LoadFile reads a YAML article document from path into a new base.
func LoadFile(path string) (*Base, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open knowledge file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Load reads a YAML article document into b. Articles in the document
// replace existing articles for the same probe and status. Nothing is
// added when the document is invalid.
func (b *Base) Load(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode knowledge: %w", err)
	}

	seen := make(map[key]bool, len(doc.Articles))
	articles := make([]probe.Article, 0, len(doc.Articles))
	for i, e := range doc.Articles {
		if e.Probe == "" {
			return fmt.Errorf("article %d: %w", i, ErrMissingProbe)
		}
		if e.Status == nil {
			return fmt.Errorf("article %d: %w", i, ErrMissingStatus)
		}
		k := key{e.Probe, *e.Status}
		if seen[k] {
			return fmt.Errorf("article %d: %w: %s/%s", i, ErrDuplicateArticle, e.Probe, *e.Status)
		}
		seen[k] = true
		articles = append(articles, probe.Article{
			ProbeID:     e.Probe,
			Status:      *e.Status,
			Reason:      e.Reason,
			Remediation: e.Remediation,
		})
	}
	return b.Merge(articles)
}
