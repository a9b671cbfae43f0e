package portfolio

import (
	"encoding/json"
	"fmt"

	"github.com/patrickmn/go-cache"
)

// Renderings are plain indented JSON. Every block except a single record is memoized;
// the store never changes after Load so entries never go stale.

// RenderSummary serializes the whole summary table for prompt grounding.
func (s *Store) RenderSummary() string {
	return s.memo("summary", func() interface{} { return s.summary })
}

// RenderDetail serializes every detail record for topic.
func (s *Store) RenderDetail(topic Topic) string {
	return s.memo("detail:"+string(topic), func() interface{} {
		records := s.detail[topic]
		if records == nil {
			records = []Record{}
		}
		return records
	})
}

// RenderAllDetail serializes the detail tables across all topics.
func (s *Store) RenderAllDetail() string {
	return s.memo("detail:*", func() interface{} { return s.detail })
}

// RenderDetailRecord serializes a single detail record.
func (s *Store) RenderDetailRecord(record Record) string {
	return renderJSON(record)
}

func (s *Store) memo(key string, value func() interface{}) string {
	if cached, ok := s.rendered.Get(key); ok {
		return cached.(string)
	}
	rendered := renderJSON(value())
	s.rendered.Set(key, rendered, cache.NoExpiration)
	return rendered
}

func renderJSON(v interface{}) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// values come from json.Unmarshal, so this only happens on programmer error
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}
