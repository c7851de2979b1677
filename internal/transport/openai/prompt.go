package openai

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/actdex/internal/domain"
	"github.com/kailas-cloud/actdex/internal/domain/style"
)

const systemPrompt = "You are a helpful Indian legal explainer bot for laypersons."

const hinglishTask = `Task:
1. In 3-5 lines, explain in very simple friendly Hinglish (mix of Hindi and English) what the law is saying with respect to the query.
2. Then give bullet points in Hinglish summarizing the most important points and which page/section they roughly relate to (if visible from the snippet).
3. Be very clear that this is NOT legal advice.

Style:
- Use short sentences.
- Avoid very heavy legal jargon, explain in plain language.
- Address the user as "aap" or "tum" in a polite conversational tone.

Important:
- If information is not clearly present, say that details are not fully clear and the user should check the bare act or consult a lawyer.
- End with this exact disclaimer sentence:
"Ye information educational purpose ke liye hai, legal advice nahi."`

const englishTask = `Task:
1. In 3-5 lines, explain in very simple friendly English what the law is saying with respect to the query.
2. Then give bullet points in English summarizing the most important points and which page/section they roughly relate to (if visible from the snippet).
3. Be very clear that this is NOT legal advice.

Style:
- Use short sentences.
- Avoid very heavy legal jargon, explain in plain language.
- Keep a polite conversational tone.

Important:
- If information is not clearly present, say that details are not fully clear and the user should check the bare act or consult a lawyer.
- End with this exact disclaimer sentence:
"Ye information educational purpose ke liye hai, legal advice nahi."`

// buildPrompt renders the user message: the query between explicit markers,
// the retrieved passages, and the task block matching the detected style.
func buildPrompt(input domain.ExplainInput) string {
	parts := make([]string, 0, len(input.Passages))
	for _, p := range input.Passages {
		parts = append(parts, fmt.Sprintf("=== Source ===\nTitle: %s\nSnippet:\n%s\n", sourceLabel(p), p.Snippet))
	}

	contextText := "No matching law text found."
	if len(parts) > 0 {
		contextText = strings.Join(parts, "\n\n")
	}

	task := englishTask
	if input.Style == style.Hinglish {
		task = hinglishTask
	}

	return fmt.Sprintf(
		"User query:\n[START_USER_QUERY]\n%s\n[END_USER_QUERY]\n\nRelevant law snippets (may contain multiple pages and acts):\n%s\n\n%s",
		input.Query, contextText, task,
	)
}

// sourceLabel formats one passage heading, "<act> - <title> (Page <n>)".
// The page marker is dropped when the page is unknown.
func sourceLabel(p domain.ExplainPassage) string {
	label := fmt.Sprintf("%s - %s", p.ActName, p.Title)
	if p.PageNo > 0 {
		label = fmt.Sprintf("%s (Page %d)", label, p.PageNo)
	}
	return strings.TrimSpace(label)
}
