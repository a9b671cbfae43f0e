package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_BundledData(t *testing.T) {
	store, err := Load("../../data")
	require.NoError(t, err)

	for _, topic := range Topics {
		_, ok := store.GetSummary(topic)
		assert.True(t, ok, "summary for %s", topic)
	}
	for _, topic := range DetailTopics {
		assert.True(t, store.HasDetail(topic), "detail for %s", topic)
	}

	// every selectable item must have a detail record
	for _, option := range store.AllOptions() {
		topic, _ := TopicForOptionType(option.Type)
		_, ok := store.GetDetail(topic, option.ID)
		assert.True(t, ok, "%s %d has no detail record", option.Type, option.ID)
	}
}
