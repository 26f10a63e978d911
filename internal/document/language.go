package document

import "strings"

// PlainText is the code-block language used when the judge language is unknown.
const PlainText = "plain text"

// MapLanguage maps a BOJ language label ("PyPy3", "C++17", "Java 11") to a
// code-block language the document store recognizes.
func MapLanguage(judge string) string {
	lang := strings.ToLower(strings.TrimSpace(judge))
	has := func(sub string) bool { return strings.Contains(lang, sub) }

	switch {
	case has("node") || has("javascript"):
		return "javascript"
	case has("typescript"):
		return "typescript"
	case has("java") && !has("script"):
		return "java"
	case has("python") || has("pypy"):
		return "python"
	case has("c++"):
		return "c++"
	case has("c#"):
		return "c#"
	case has("kotlin"):
		return "kotlin"
	case has("rust"):
		return "rust"
	case has("swift"):
		return "swift"
	case has("ruby"):
		return "ruby"
	case lang == "go" || strings.HasPrefix(lang, "go ") || has("golang"):
		return "go"
	case lang == "c" || strings.HasPrefix(lang, "c ") || has("c11") || has("c99"):
		return "c"
	}
	return PlainText
}
