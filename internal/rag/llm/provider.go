package llm

import (
	"context"
	"fmt"
	"strings"
)

// Provider generates a narrative answer from the question and its retrieved
// context. Matches arrive in ranked order, messageHistory holds prior turns
// of the conversation oldest first.
type Provider interface {
	Generate(ctx context.Context, query string, matches []string, messageHistory []string) (string, error)
}

// BuildUserPrompt assembles the user-side prompt shared by every provider.
func BuildUserPrompt(userQuery string, matches []string, messageHistory []string) string {
	var b strings.Builder

	if len(messageHistory) > 0 {
		b.WriteString("Message History, Question stands for the user question and the answer stands for the answer you gave:\n")
		b.WriteString(strings.Join(messageHistory, "\n"))
		b.WriteString("\n\n")
	}

	contextText := strings.Join(matches, "\n")
	fmt.Fprintf(&b, "Context:\n%s\n\nUser Question: %s", contextText, userQuery)
	return b.String()
}
