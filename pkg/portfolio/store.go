package portfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/patrickmn/go-cache"
)

// ErrInvalidData is returned by Load when a data file exists but cannot be decoded.
var ErrInvalidData = errors.New("invalid portfolio data")

// Topic is the closed taxonomy the classifier routes on.
type Topic string

const (
	TopicProjects   Topic = "projects"
	TopicExperience Topic = "experience"
	TopicSkills     Topic = "skills"
	TopicPersonal   Topic = "personal"
)

// Topics lists every topic in prompt order.
var Topics = []Topic{TopicPersonal, TopicExperience, TopicProjects, TopicSkills}

// DetailTopics lists the topics that have a detail table.
var DetailTopics = []Topic{TopicExperience, TopicProjects}

// ParseTopic returns the topic for s, or false when s is not part of the taxonomy.
func ParseTopic(s string) (Topic, bool) {
	for _, t := range Topics {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Store holds the summary and detail datasets. It is filled once by Load and never
// written afterwards, so concurrent readers need no locking.
type Store struct {
	summary map[Topic]interface{}
	detail  map[Topic][]Record

	// rendered prompt blocks, keyed by renderKey
	rendered *cache.Cache
}

// NewStore builds a store from already-decoded tables. Load is the usual entry point.
func NewStore(summary map[Topic]interface{}, detail map[Topic][]Record) *Store {
	if summary == nil {
		summary = map[Topic]interface{}{}
	}
	if detail == nil {
		detail = map[Topic][]Record{}
	}
	for topic, records := range detail {
		sorted := append([]Record(nil), records...)
		sort.SliceStable(sorted, func(i, j int) bool {
			a, _ := sorted[i].ID()
			b, _ := sorted[j].ID()
			return a < b
		})
		detail[topic] = sorted
	}
	return &Store{
		summary:  summary,
		detail:   detail,
		rendered: cache.New(cache.NoExpiration, 0),
	}
}

var summaryFiles = map[Topic]string{
	TopicPersonal:   "personal_info.json",
	TopicExperience: "experience.json",
	TopicProjects:   "projects.json",
	TopicSkills:     "skills.json",
}

var detailFiles = map[Topic]string{
	TopicExperience: "detailed_experience.json",
	TopicProjects:   "detailed_projects.json",
}

// Load reads <dataDir>/summary/*.json and <dataDir>/detail/*.json. Missing files leave
// their topic empty; files that exist but do not decode fail the load.
func Load(dataDir string) (*Store, error) {
	summary := make(map[Topic]interface{}, len(summaryFiles))
	for topic, name := range summaryFiles {
		value, found, err := readTopicFile(filepath.Join(dataDir, "summary", name), topic)
		if err != nil {
			return nil, err
		}
		if found {
			summary[topic] = value
		}
	}

	detail := make(map[Topic][]Record, len(detailFiles))
	for topic, name := range detailFiles {
		value, found, err := readTopicFile(filepath.Join(dataDir, "detail", name), topic)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		records, err := toRecords(value)
		if err != nil {
			return nil, fmt.Errorf("%w: detail %s: %v", ErrInvalidData, topic, err)
		}
		detail[topic] = records
	}

	return NewStore(summary, detail), nil
}

// readTopicFile decodes a data file. Payloads may be wrapped in an object keyed by the
// topic ({"projects": [...]} or {"det_projects": [...]}); a single matching key is unwrapped.
func readTopicFile(path string, topic Topic) (interface{}, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrInvalidData, path, err)
	}

	if obj, ok := value.(map[string]interface{}); ok && len(obj) == 1 {
		for key, inner := range obj {
			if key == string(topic) || key == "det_"+string(topic) {
				value = inner
			}
		}
	}

	return value, true, nil
}

func toRecords(value interface{}) ([]Record, error) {
	list, ok := value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a list of records, got %T", value)
	}
	records := make([]Record, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("record %d: expected an object, got %T", i, item)
		}
		records = append(records, Record(obj))
	}
	return records, nil
}

// GetSummary returns the summary value for topic: a list of records for projects and
// experience, an object for personal and skills.
func (s *Store) GetSummary(topic Topic) (interface{}, bool) {
	value, ok := s.summary[topic]
	return value, ok
}

// SummaryTable returns every summary topic. Callers must treat the result as read-only.
func (s *Store) SummaryTable() map[Topic]interface{} {
	return s.summary
}

// SummaryRecords returns the list-shaped summary for topic, or nil.
func (s *Store) SummaryRecords(topic Topic) []Record {
	records, err := toRecords(s.summary[topic])
	if err != nil {
		return nil
	}
	return records
}

// GetDetail returns the detail record for (topic, id).
func (s *Store) GetDetail(topic Topic, id int) (Record, bool) {
	for _, record := range s.detail[topic] {
		if recordID, ok := record.ID(); ok && recordID == id {
			return record, true
		}
	}
	return nil, false
}

// DetailTable returns every detail record for topic, ordered by id.
func (s *Store) DetailTable(topic Topic) []Record {
	return s.detail[topic]
}

// HasDetail reports whether topic has a non-empty detail table.
func (s *Store) HasDetail(topic Topic) bool {
	return len(s.detail[topic]) > 0
}

// DetailStore returns the detail tables across all topics.
func (s *Store) DetailStore() map[Topic][]Record {
	return s.detail
}
