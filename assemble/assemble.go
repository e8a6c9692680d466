// Package assemble implements the context assembler (C9): it windows
// conversation history, summarizes long histories, selects and tags
// retrieved chunks, and assembles the three-zone prompt context handed
// to the stream dispatcher.
package assemble

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ragserve/core/dedup"
)

const (
	maxHistoryMessages    = 10
	summarizeThreshold    = 6
	summarySourceTurns    = 5
	maxRecentTurns        = 3
	recentTurnCharCap     = 200
	maxSelectedChunks     = 5
	defaultContextCap     = 4000
	emptyKnowledgeBaseMsg = "No documents have been indexed yet. Please upload a document before asking questions."
)

// Message is one turn of conversation history.
type Message struct {
	Role    string
	Content string
}

// Options configures a single assembly call.
type Options struct {
	ContextCap        int // caller-configured cap on the assembled string; default 4000
	DocumentCount     int // total indexed documents, for the empty-KB short circuit
	SessionSummary    string
	SetSessionSummary func(summary string)
}

// Result is the assembled prompt context plus metadata describing how
// it was built.
type Result struct {
	Context      string
	Truncated    bool
	ChunksUsed   []dedup.Scored
	ShortCircuit bool
}

// Assemble implements C9 end to end: history filtering, optional
// summarization, chunk selection, and three-zone assembly truncated to
// the context cap.
func Assemble(question string, history []Message, chunks []dedup.Scored, opts Options) Result {
	if opts.DocumentCount == 0 {
		return Result{Context: emptyKnowledgeBaseMsg, ShortCircuit: true}
	}

	contextCap := opts.ContextCap
	if contextCap <= 0 {
		contextCap = defaultContextCap
	}

	questionWords := wordSet(question)

	relevant := filterHistory(history, questionWords)

	summary := opts.SessionSummary
	if summary == "" && len(relevant) > summarizeThreshold {
		summary = summarize(relevant)
		if opts.SetSessionSummary != nil {
			opts.SetSessionSummary(summary)
		}
	}

	selected := selectChunks(chunks, questionWords, maxSelectedChunks)

	var b strings.Builder
	if summary != "" {
		b.WriteString("Conversation Summary:\n")
		b.WriteString(summary)
		b.WriteString("\n\n")
	}

	recent := recentTurns(relevant, maxRecentTurns)
	if len(recent) > 0 {
		b.WriteString("Recent Conversation Context:\n")
		for _, m := range recent {
			b.WriteString(truncateTo(m.Content, recentTurnCharCap))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Document Context:\n")
	for _, c := range selected {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", c.Attribution, c.Content)
	}

	out := b.String()
	truncated := false
	if len(out) > contextCap {
		out = out[:contextCap]
		truncated = true
	}

	return Result{Context: out, Truncated: truncated, ChunksUsed: selected}
}

// filterHistory retains the last <= maxHistoryMessages user messages
// whose keyword overlap with the current question is non-empty.
func filterHistory(history []Message, questionWords map[string]struct{}) []Message {
	var userMessages []Message
	for _, m := range history {
		if m.Role != "user" {
			continue
		}
		if overlap(wordSet(m.Content), questionWords) == 0 {
			continue
		}
		userMessages = append(userMessages, m)
	}
	if len(userMessages) > maxHistoryMessages {
		userMessages = userMessages[len(userMessages)-maxHistoryMessages:]
	}
	return userMessages
}

// summarize synthesizes a short summary from the first words of the
// last summarySourceTurns user messages.
func summarize(messages []Message) string {
	start := len(messages) - summarySourceTurns
	if start < 0 {
		start = 0
	}
	var topics []string
	for _, m := range messages[start:] {
		words := strings.Fields(m.Content)
		if len(words) > 6 {
			words = words[:6]
		}
		topics = append(topics, strings.Join(words, " "))
	}
	return "Previous topics discussed: " + strings.Join(topics, "; ")
}

// recentTurns returns the last n messages, most recent last.
func recentTurns(messages []Message, n int) []Message {
	if len(messages) > n {
		return messages[len(messages)-n:]
	}
	return messages
}

// selectChunks scores chunks by word overlap with the question and
// keeps the top n, preserving each chunk's source attribution.
func selectChunks(chunks []dedup.Scored, questionWords map[string]struct{}, n int) []dedup.Scored {
	type scored struct {
		chunk dedup.Scored
		score int
	}
	ranked := make([]scored, len(chunks))
	for i, c := range chunks {
		ranked[i] = scored{chunk: c, score: overlap(wordSet(c.Content), questionWords)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]dedup.Scored, len(ranked))
	for i, r := range ranked {
		out[i] = r.chunk
	}
	return out
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		trimmed := strings.Trim(w, ".,!?;:\"'()[]{}")
		if trimmed == "" {
			continue
		}
		set[trimmed] = struct{}{}
	}
	return set
}

func overlap(a, b map[string]struct{}) int {
	count := 0
	for k := range a {
		if _, ok := b[k]; ok {
			count++
		}
	}
	return count
}

func truncateTo(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
