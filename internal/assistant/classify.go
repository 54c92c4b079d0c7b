package assistant

import (
	"regexp"
	"strings"
)

// Canned replies. The external generator is never consulted for these.
const (
	// GreetingReply answers small talk.
	GreetingReply = "Hey there! I'm Lakshmi, your personal finance assistant. How can I help you today?"
	// RedirectReply explains the assistant's scope for off-topic queries.
	RedirectReply = "Hi! I specialize in finance, goals, and savings. Try asking something like 'How much did I spend this month?' or 'How can I reach my goal faster?'"
	// FallbackReply replaces any failure from the external generator.
	FallbackReply = "There was an issue connecting to the assistant. Please try again later."
)

// greetings are matched exactly (case-insensitive) against the trimmed query.
var greetings = map[string]bool{
	"hi":          true,
	"hello":       true,
	"hey":         true,
	"hlo":         true,
	"how are you": true,
	"who are you": true,
	"ok":          true,
	"thanks":      true,
	"thank you":   true,
}

// financeScope matches anywhere in the query, case-insensitive.
var financeScope = regexp.MustCompile(`(?i)(spend|expense|income|goal|saving|budget|money|finance|amount|balance|house|car|buy|plan|achieve|target|worth|invest|investment|save|loan|dream|property|debt|rent|bill|wallet|tiffin|restaurant|startup|profit|loss)`)

// IsGreeting reports whether the query is one of the fixed small-talk phrases.
func IsGreeting(query string) bool {
	return greetings[strings.ToLower(strings.TrimSpace(query))]
}

// IsFinanceScoped reports whether the query contains a finance keyword.
func IsFinanceScoped(query string) bool {
	return financeScope.MatchString(query)
}
