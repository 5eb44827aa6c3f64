package assistant

import "fmt"

// Synthetic instruction messages folded into the working transcript.
// The model sees tool and search scaffolding as ordinary conversation;
// none of it reaches the persisted transcript.

const (
	// budgetApology is the terminal degraded answer when the retry
	// budgets run out without a clean final answer
	budgetApology = "I apologize, but I'm having trouble finding the right information. Could you rephrase your question?"

	// transportApology is the degraded answer for a failed model call
	transportApology = "I apologize, but I ran into a technical problem. Please try again."

	// searchFailedPrompt asks the model to answer without search results
	searchFailedPrompt = "The search failed. Please answer based on your existing knowledge instead."
)

func autoSearchResultsPrompt(query, results string) string {
	return fmt.Sprintf(`[SEARCH RESULTS for %q]

%s

Based on these search results, answer the user's question directly and naturally.
Extract the specific information they need (like temperature, news, etc.) and present it conversationally.
Do NOT just list websites - give them the actual information.`, query, results)
}

func finalAnswerPrompt(query, results string) string {
	return fmt.Sprintf(`[SEARCH RESULTS for %q]

%s

IMPORTANT: Based on these search results, provide your FINAL answer to the user's question.
Extract the key information (temperature, facts, data, etc.) and present it naturally.
Do NOT just list websites or sources - give the actual answer.
Do NOT request another search. Answer conversationally.`, query, results)
}

func toolResultPrompt(name, result string) string {
	return fmt.Sprintf("[TOOL RESULT for '%s']: %s\n\nUse this information to answer the user naturally.", name, result)
}

func toolFailedPrompt(reason string) string {
	return fmt.Sprintf("Tool failed: %s. Please answer based on your knowledge.", reason)
}
