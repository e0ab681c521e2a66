package lint

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Format constants for the syntaxes engines commonly understand.
const (
	FormatSCSS = "scss"
	FormatSass = "sass"
	FormatCSS  = "css"
	FormatLess = "less"
	FormatText = "text"
)

// DetectFormat returns the syntax hint for a file, used both as the engine's
// format option and as the extension of any temporary file written for it.
//
// The file extension wins when present: it is what the author declared, and
// indented-syntax Sass cannot be told apart from SCSS reliably by content.
// Extensionless content falls back to go-enry classification, and "text"
// when that is inconclusive.
func DetectFormat(path string, content []byte) string {
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."); ext != "" {
		return ext
	}
	if len(content) == 0 {
		return FormatText
	}

	candidates := []string{"SCSS", "Sass", "CSS", "Less"}
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalizeLanguage(lang)
	}

	return FormatText
}

// normalizeLanguage maps enry's language names onto format hints.
func normalizeLanguage(lang string) string {
	switch strings.ToLower(lang) {
	case "scss":
		return FormatSCSS
	case "sass":
		return FormatSass
	case "css":
		return FormatCSS
	case "less":
		return FormatLess
	default:
		return strings.ToLower(lang)
	}
}
