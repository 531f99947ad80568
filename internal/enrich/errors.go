package enrich

import "strings"

// Kind classifies an enrichment failure for the HTTP layer. The
// external services signal their condition only through message text,
// so classification is by substring.
type Kind int

const (
	// KindGeneric is any failure without a more specific classification.
	KindGeneric Kind = iota
	// KindNotConfigured means the AI service credentials are missing.
	KindNotConfigured
	// KindRateLimited means the external service refused on rate or quota grounds.
	KindRateLimited
	// KindVectorUnavailable means the vector store could not be reached.
	KindVectorUnavailable
)

// Classify inspects an error's message and returns its Kind.
func Classify(err error) Kind {
	if err == nil {
		return KindGeneric
	}
	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, strings.ToLower("OPENAI_API_KEY")) || strings.Contains(msg, "api key") {
		return KindNotConfigured
	}
	if strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota") {
		return KindRateLimited
	}
	if strings.Contains(msg, "qdrant") || strings.Contains(msg, "vector") ||
		strings.Contains(msg, "failed to search points") {
		return KindVectorUnavailable
	}
	return KindGeneric
}
