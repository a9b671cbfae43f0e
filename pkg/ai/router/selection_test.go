package router

import (
	"errors"
	"testing"

	"portfolio-chat-be/pkg/portfolio"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantOK    bool
		wantType  string
		wantID    int
		wantTopic portfolio.Topic
	}{
		{
			name:      "marker prefix",
			content:   `Selected: {"type":"project","id":2}`,
			wantOK:    true,
			wantType:  "project",
			wantID:    2,
			wantTopic: portfolio.TopicProjects,
		},
		{
			name:      "marker is case insensitive",
			content:   `  SELECTED:{"type":"experience","id":3}  `,
			wantOK:    true,
			wantType:  "experience",
			wantID:    3,
			wantTopic: portfolio.TopicExperience,
		},
		{
			name:      "bare object with extra fields",
			content:   `{"type":"project","id":4,"name":"Alpha","display":"Alpha"}`,
			wantOK:    true,
			wantType:  "project",
			wantID:    4,
			wantTopic: portfolio.TopicProjects,
		},
		{
			name:      "numeric string id",
			content:   `Selected: {"type":"project","id":"7"}`,
			wantOK:    true,
			wantType:  "project",
			wantID:    7,
			wantTopic: portfolio.TopicProjects,
		},
		{name: "plain chat", content: "Tell me about your projects"},
		{name: "marker with prose", content: "Selected: the second one"},
		{name: "broken json", content: `Selected: {"type":"project","id":`},
		{name: "missing type", content: `{"id":2}`},
		{name: "missing id", content: `{"type":"project"}`},
		{name: "unknown type", content: `{"type":"skill","id":1}`},
		{name: "fractional id", content: `{"type":"project","id":2.5}`},
		{name: "non numeric id", content: `{"type":"project","id":"two"}`},
		{name: "json array", content: `[{"type":"project","id":2}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSelection(tt.content)
			if ok != tt.wantOK {
				t.Fatalf("ParseSelection(%q) ok = %v, want %v", tt.content, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", got.Type, tt.wantType)
			}
			if got.ID != tt.wantID {
				t.Errorf("ID = %d, want %d", got.ID, tt.wantID)
			}
			if got.Topic() != tt.wantTopic {
				t.Errorf("Topic() = %q, want %q", got.Topic(), tt.wantTopic)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    string
		wantErr error
	}{
		{
			name:  "bare object",
			reply: `{"mode":"chat"}`,
			want:  `{"mode":"chat"}`,
		},
		{
			name:  "json fence",
			reply: "```json\n{\"mode\":\"deep_dive\"}\n```",
			want:  `{"mode":"deep_dive"}`,
		},
		{
			name:  "bare fence",
			reply: "```\n{\"mode\":\"chat\"}\n```",
			want:  `{"mode":"chat"}`,
		},
		{
			name:  "prose around object",
			reply: "Here is the routing:\n{\"currentTopic\":\"projects\"}\nHope that helps.",
			want:  `{"currentTopic":"projects"}`,
		},
		{
			name:  "nested object and braces in strings",
			reply: `{"a":{"b":"}"},"c":"{"} trailing {`,
			want:  `{"a":{"b":"}"},"c":"{"}`,
		},
		{
			name:  "escaped quote in string",
			reply: `{"a":"say \"}\" now"}`,
			want:  `{"a":"say \"}\" now"}`,
		},
		{
			name:    "no object",
			reply:   "I think you mean the projects section.",
			wantErr: ErrNoJSONObject,
		},
		{
			name:    "empty reply",
			reply:   "   ",
			wantErr: ErrNoJSONObject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.reply)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ExtractJSON(%q) err = %v, want %v", tt.reply, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractJSON(%q) unexpected error: %v", tt.reply, err)
			}
			if got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.reply, got, tt.want)
			}
		})
	}
}
