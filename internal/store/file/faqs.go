package file

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"faqhub.org/internal/faq"
)

// FAQStore keeps question/answer pairs in faqs.json.
type FAQStore struct {
	mu   sync.Mutex
	path string
}

var _ faq.Store = (*FAQStore)(nil)

// NewFAQStore creates a store rooted at dir.
func NewFAQStore(dir string) (*FAQStore, error) {
	path := filepath.Join(dir, "faqs.json")
	if err := ensureDir(path); err != nil {
		return nil, fmt.Errorf("faq store: %w", err)
	}
	return &FAQStore{path: path}, nil
}

func (s *FAQStore) load() []faq.FAQ {
	faqs := []faq.FAQ{}
	if err := readJSON(s.path, &faqs); err != nil {
		return []faq.FAQ{}
	}
	return faqs
}

func (s *FAQStore) List(context.Context) ([]faq.FAQ, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

func (s *FAQStore) Create(_ context.Context, f faq.FAQ) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s.path, append(s.load(), f))
}

func (s *FAQStore) Update(_ context.Context, id string, upd faq.Update) (faq.FAQ, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	faqs := s.load()
	for i, f := range faqs {
		if f.ID != id {
			continue
		}
		if upd.Question != nil {
			faqs[i].Question = strings.TrimSpace(*upd.Question)
		}
		if upd.Answer != nil {
			faqs[i].Answer = strings.TrimSpace(*upd.Answer)
		}
		if err := writeJSON(s.path, faqs); err != nil {
			return faq.FAQ{}, err
		}
		return faqs[i], nil
	}
	return faq.FAQ{}, faq.ErrNotFound
}

func (s *FAQStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	faqs := s.load()
	kept := faqs[:0]
	for _, f := range faqs {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(faqs) {
		return faq.ErrNotFound
	}
	return writeJSON(s.path, kept)
}
