package translator

// Language is one supported target language.
type Language struct {
	// Name is the display name accepted on the command line.
	Name string
	// Prompt is the name interpolated into LLM prompts; it differs from
	// Name only for Chinese, where "Simplified Chinese" pins the script.
	Prompt string
	// Tag is the BCP 47 tag used by API-based backends.
	Tag string
}

// supportedLanguages is the fixed target-language table, in listing order.
var supportedLanguages = []Language{
	{Name: "English", Prompt: "English", Tag: "en"},
	{Name: "Chinese", Prompt: "Simplified Chinese", Tag: "zh-CN"},
	{Name: "Japanese", Prompt: "Japanese", Tag: "ja"},
	{Name: "Korean", Prompt: "Korean", Tag: "ko"},
	{Name: "German", Prompt: "German", Tag: "de"},
	{Name: "French", Prompt: "French", Tag: "fr"},
	{Name: "Spanish", Prompt: "Spanish", Tag: "es"},
}

// Languages returns the supported target languages in listing order.
func Languages() []Language {
	out := make([]Language, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// LanguageNames returns the display names of the supported languages.
func LanguageNames() []string {
	names := make([]string, len(supportedLanguages))
	for i, l := range supportedLanguages {
		names[i] = l.Name
	}
	return names
}

// LookupLanguage resolves a display name to its table entry.
func LookupLanguage(name string) (Language, bool) {
	for _, l := range supportedLanguages {
		if l.Name == name {
			return l, true
		}
	}
	return Language{}, false
}
