package assistant

import (
	"fmt"
	"strings"

	"github.com/aretw0/cyberdesk/internal/manuals"
)

// NoInformationAnswer is what the model must reply when the manuals do not cover a question.
const NoInformationAnswer = "I do not have enough information in the provided manuals to answer this question."

const systemPrompt = `You are a specialized assistant for Cyber Crime Investigation Officers. Your sole purpose is to provide accurate, step-by-step guidance based *exclusively* on the provided context from the official investigation manuals.

INSTRUCTIONS:
1. Analyze the provided CONTEXT and answer the QUESTION based *only* on this information.
2. Do not use any external knowledge or information you were pre-trained on.
3. For every piece of information you provide, you MUST cite the source document and page number from the metadata of the context.
4. If the provided CONTEXT does not contain enough information to answer the question, you MUST respond with: "%s"
5. Structure your answers clearly. If the question asks for a procedure, provide a step-by-step list.`

// SystemPrompt returns the fixed instructions sent with every question.
func SystemPrompt() string {
	return fmt.Sprintf(systemPrompt, NoInformationAnswer)
}

// UserPrompt frames a question with the manual excerpts it must be answered from.
// Each excerpt carries the source document and page the model has to cite.
func UserPrompt(excerpts []manuals.Excerpt, question string) string {
	var b strings.Builder
	b.WriteString("CONTEXT:\n")
	if len(excerpts) == 0 {
		b.WriteString("(no manual excerpts available)\n")
	}
	for i, e := range excerpts {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Content: %s\nMetadata: {%s}\n", strings.TrimSpace(e.Text), e.Citation())
	}
	b.WriteString("\nQUESTION:\n")
	b.WriteString(strings.TrimSpace(question))
	return b.String()
}
