package ai

import "fmt"

// Prompt templates the proxy wraps user text in. Kept as fixed natural-language
// strings; the provider receives nothing else about the request.

// MacroPrompt asks for a concise macroeconomic explanation of the text
func MacroPrompt(text string) string {
	return fmt.Sprintf(
		"Explain the following macroeconomic news concisely, in plain language a beginner can understand:\n\n%s",
		text,
	)
}

// RecommendationPrompt asks for beginner-investor recommendations based on the text
func RecommendationPrompt(text string) string {
	return fmt.Sprintf(
		"Based on the following information, give investment recommendations suitable for a beginner investor:\n\n%s",
		text,
	)
}
