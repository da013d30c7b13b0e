// Package langdetect classifies documentation files as MDX or Markdown.
// Extension lookups go through go-enry's linguist data; content is only
// consulted when the extension is unknown to it.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language is the document dialect of a file.
type Language string

const (
	LanguageUnknown  Language = ""
	LanguageMDX      Language = "mdx"
	LanguageMarkdown Language = "markdown"
)

// linguist language names.
const (
	enryMDX      = "MDX"
	enryMarkdown = "Markdown"
)

// sniffLimit bounds how much content Detect inspects.
const sniffLimit = 8 << 10

// IsDocument reports whether l is a language mdxlint lints.
func (l Language) IsDocument() bool {
	return l == LanguageMDX || l == LanguageMarkdown
}

// ByPath classifies a file by its name alone. The second result is false
// when the extension is unknown and content is needed to decide.
func ByPath(path string) (Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return LanguageUnknown, false
	}

	// go-enry matches extensions case-sensitively against linguist data.
	candidates := enry.GetLanguagesByExtension("file"+ext, nil, nil)
	if len(candidates) == 0 {
		if ext == ".mdx" {
			return LanguageMDX, true
		}
		return LanguageUnknown, false
	}

	for _, lang := range candidates {
		if lang == enryMDX {
			return LanguageMDX, true
		}
	}
	for _, lang := range candidates {
		if lang == enryMarkdown {
			return LanguageMarkdown, true
		}
	}

	// Known to linguist as something else entirely.
	return LanguageUnknown, true
}

// DocumentLanguage classifies a file by name, falling back to its content
// for extensions go-enry does not know. Binary content is never a document.
func DocumentLanguage(path string, content []byte) Language {
	if lang, ok := ByPath(path); ok {
		return lang
	}
	return Detect(content)
}

// Detect classifies content that has no useful file name.
// A capitalised JSX tag or a top-level import/export marks MDX; other
// non-empty text is Markdown.
func Detect(content []byte) Language {
	if len(content) > sniffLimit {
		content = content[:sniffLimit]
	}
	if len(bytes.TrimSpace(content)) == 0 || enry.IsBinary(content) {
		return LanguageUnknown
	}
	if looksLikeMDX(content) {
		return LanguageMDX
	}
	return LanguageMarkdown
}

func looksLikeMDX(content []byte) bool {
	for line := range bytes.Lines(content) {
		trimmed := bytes.TrimLeft(line, " \t")
		if bytes.HasPrefix(line, []byte("import ")) || bytes.HasPrefix(line, []byte("export ")) {
			return true
		}
		if len(trimmed) > 1 && trimmed[0] == '<' && trimmed[1] >= 'A' && trimmed[1] <= 'Z' {
			return true
		}
	}
	return false
}

// IsVendored reports whether a slash-separated relative path falls under a
// vendored or dependency directory such as node_modules. Directory paths
// should carry a trailing slash.
func IsVendored(relPath string) bool {
	return enry.IsVendor(filepath.ToSlash(relPath))
}
