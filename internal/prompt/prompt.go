// Package prompt builds the chat messages sent to LLM translation backends.
package prompt

import "fmt"

// Message is one chat-completions message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RolePrompt is the system message establishing the translator persona.
const RolePrompt = `You are a professional translator, proficient in various languages including English, Chinese, Japanese, Korean, German, French, and Spanish.
You have expertise in specialized vocabulary across different fields and understand the cultural nuances of each language.
Your translations are accurate, natural, and maintain the original tone and style of the text.`

// userPromptTemplate is the user message; the placeholders are the target
// language and the input text, in that order.
const userPromptTemplate = `
Please translate the following text into %s, ensuring accurate conveyance of the original meaning while maintaining consistency in style and tone.

# Translation Guidelines
1. Maintain the original meaning and context
2. Use appropriate terminology for the target language
3. Keep the same level of formality
4. Preserve any technical terms or proper nouns
5. Ensure natural flow in the target language
6. Consider cultural context and localization needs
7. If the text contains a URL or number, then directly return the URL or number

# Language-Specific Notes
- For Chinese: Use Simplified Chinese characters and modern standard Mandarin
- For Japanese: Use appropriate keigo (honorific language) when context requires
- For Korean: Use appropriate honorific forms based on context
- For European languages: Maintain proper gender agreement and formal/informal distinctions

# Output Format
Return only the translated text without any additional content or explanation.

Input Text: %s
Your Translated Text:
`

// Messages returns the system and user messages for one translation request.
func Messages(text, targetLanguage string) []Message {
	return []Message{
		{Role: "system", Content: RolePrompt},
		{Role: "user", Content: fmt.Sprintf(userPromptTemplate, targetLanguage, text)},
	}
}
