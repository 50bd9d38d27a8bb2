package strategy

import (
	"strings"

	"mockmate/internal/domain"
)

// behavioralPhrases is the fixed phrase list used to detect behavioral
// questions for the STAR breakdown.
var behavioralPhrases = []string{
	"tell me about a time",
	"describe a situation",
	"give me an example",
	"have you ever",
	"how did you handle",
	"how do you deal with",
	"what would you do if",
	"describe a conflict",
	"describe a challenge",
	"walk me through a time",
}

// IsBehavioralQuestion reports whether the question text matches the fixed
// behavioral phrase list.
func IsBehavioralQuestion(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range behavioralPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// topicVocabulary is the fixed vocabulary the keyword classifier matches
// against conversation content.
var topicVocabulary = []string{
	"algorithms", "data structures", "system design", "databases", "sql",
	"concurrency", "networking", "api", "microservices", "testing",
	"security", "leadership", "teamwork", "communication", "conflict",
	"deadline", "architecture", "debugging", "performance", "scalability",
	"cloud", "devops", "frontend", "backend", "machine learning",
}

// KeywordClassifier is the fixed-vocabulary domain.TopicClassifier.
type KeywordClassifier struct{}

// NewKeywordClassifier creates the default topic classifier.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// Topics implements domain.TopicClassifier
func (c *KeywordClassifier) Topics(content string) []string {
	lower := strings.ToLower(content)
	var topics []string
	for _, term := range topicVocabulary {
		if strings.Contains(lower, term) {
			topics = append(topics, term)
		}
	}
	return topics
}

var _ domain.TopicClassifier = (*KeywordClassifier)(nil)
