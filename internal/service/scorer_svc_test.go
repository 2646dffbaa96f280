package service

import (
	"reflect"
	"testing"

	"github.com/DecafCoding/TargetBrowse-sub004/internal/model"
)

func TestKeywords(t *testing.T) {
	svc := NewScorerService()

	tests := []struct {
		name      string
		topicName string
		want      []string
	}{
		{"simple two words", "Machine Learning", []string{"machine", "learning"}},
		{"short words dropped", "AI", nil},
		{"mixed lengths", "go concurrency", []string{"concurrency"}},
		{"duplicates collapse", "rust rust RUST tutorial", []string{"rust", "tutorial"}},
		{"extra whitespace", "  deep \t learning  ", []string{"deep", "learning"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Keywords(tt.topicName)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Keywords(%q) = %v, want %v", tt.topicName, got, tt.want)
			}
		})
	}
}

func TestScore(t *testing.T) {
	svc := NewScorerService()

	tests := []struct {
		name        string
		topic       string
		title       string
		description string
		wantScore   float64
		wantMatched []string
	}{
		{
			// Both keywords in title (+1.5 each), multi-match bonus
			// (2*0.5), phrase bonus (+2.0): 11.0 clamped to 10.0.
			name:        "full phrase match clamps at 10",
			topic:       "Machine Learning",
			title:       "Intro to Machine Learning",
			description: "basics",
			wantScore:   10.0,
			wantMatched: []string{"machine", "learning"},
		},
		{
			name:        "short-word topic is neutral",
			topic:       "AI",
			title:       "Weekly news",
			description: "no mention",
			wantScore:   5.0,
			wantMatched: nil,
		},
		{
			name:        "no matches stays at base",
			topic:       "kubernetes",
			title:       "Baking sourdough",
			description: "flour and water",
			wantScore:   5.0,
			wantMatched: nil,
		},
		{
			name:        "single title match, no multi bonus",
			topic:       "kubernetes networking",
			title:       "kubernetes tutorial",
			description: "",
			wantScore:   6.5,
			wantMatched: []string{"kubernetes"},
		},
		{
			name:        "description-only match",
			topic:       "kubernetes",
			title:       "Cluster tour",
			description: "a kubernetes walkthrough",
			wantScore:   5.5,
			wantMatched: []string{"kubernetes"},
		},
		{
			name:        "two title matches without phrase",
			topic:       "machine learning",
			title:       "machine tools for learning",
			description: "",
			wantScore:   9.0, // 5 + 1.5 + 1.5 + 2*0.5
			wantMatched: []string{"machine", "learning"},
		},
		{
			name:        "title and description matches combine",
			topic:       "rust compiler internals",
			title:       "the rust borrow checker",
			description: "notes on compiler internals",
			wantScore:   7.5, // 5 + 1.5 + 0.5 + 0.5
			wantMatched: []string{"rust", "compiler", "internals"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topic := model.Topic{TopicID: "t1", Name: tt.topic}
			candidate := model.Candidate{Title: tt.title, Description: tt.description}

			score, matched := svc.Score(topic, candidate)
			if score != tt.wantScore {
				t.Errorf("Score() = %.2f, want %.2f", score, tt.wantScore)
			}
			if !reflect.DeepEqual(matched, tt.wantMatched) {
				t.Errorf("matched = %v, want %v", matched, tt.wantMatched)
			}
		})
	}
}

func TestScore_PhraseBonusIsExactlyTwo(t *testing.T) {
	svc := NewScorerService()

	// "go" is below the keyword length cutoff, so only "concurrency" scores
	// as a keyword. The titles differ only in containing the full phrase.
	topic := model.Topic{Name: "go concurrency"}

	without, _ := svc.Score(topic, model.Candidate{Title: "concurrency patterns"})
	with, _ := svc.Score(topic, model.Candidate{Title: "go concurrency patterns"})

	if diff := with - without; diff != 2.0 {
		t.Errorf("phrase bonus = %.2f (%.2f vs %.2f), want exactly 2.0", diff, with, without)
	}
}

func TestScore_Pure(t *testing.T) {
	svc := NewScorerService()
	topic := model.Topic{Name: "distributed systems"}
	candidate := model.Candidate{
		Title:       "Designing distributed systems",
		Description: "consensus and replication",
	}

	s1, m1 := svc.Score(topic, candidate)
	s2, m2 := svc.Score(topic, candidate)

	if s1 != s2 || !reflect.DeepEqual(m1, m2) {
		t.Errorf("Score is not deterministic: (%.2f, %v) vs (%.2f, %v)", s1, m1, s2, m2)
	}
}

func TestScore_AlwaysWithinBounds(t *testing.T) {
	svc := NewScorerService()

	topics := []string{"", "AI", "machine learning", "a very long topic name with many words matching"}
	candidates := []model.Candidate{
		{},
		{Title: "machine learning machine learning machine learning", Description: "machine learning"},
		{Title: "a very long topic name with many words matching everything", Description: "many words matching"},
	}

	for _, name := range topics {
		for _, c := range candidates {
			score, _ := svc.Score(model.Topic{Name: name}, c)
			if score < 0.0 || score > MaxRelevanceScore {
				t.Errorf("Score(%q, %q) = %.2f, out of [0, 10]", name, c.Title, score)
			}
		}
	}
}
