package tools

import (
	"strings"
	"sync"
)

// MistakeRecord is one learner mistake.
type MistakeRecord struct {
	Topic  string `json:"topic"`
	Detail string `json:"detail"`
}

// MistakeStore holds the mistakes recorded during one process, in insertion
// order. Nothing is persisted and duplicates are kept.
type MistakeStore struct {
	mu      sync.Mutex
	records []MistakeRecord
}

func NewMistakeStore() *MistakeStore {
	return &MistakeStore{}
}

func (s *MistakeStore) Add(rec MistakeRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
}

// Search returns at most limit records in stored order. An empty topic
// matches everything, otherwise topics are compared case-insensitively.
func (s *MistakeStore) Search(topic string, limit int) []MistakeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := make([]MistakeRecord, 0)
	for _, rec := range s.records {
		if len(ret) >= limit {
			break
		}
		if topic == "" || strings.EqualFold(rec.Topic, topic) {
			ret = append(ret, rec)
		}
	}
	return ret
}

func (s *MistakeStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
