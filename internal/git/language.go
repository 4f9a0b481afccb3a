package git

import (
	"path/filepath"
	"strings"
)

// Pseudo-languages used for files the extractors never own. The registry
// ignores these when picking a commit's primary language.
const (
	LanguageConfig  = "config"
	LanguageDocs    = "docs"
	LanguageOther   = "other"
	LanguageUnknown = "unknown"
)

var extensionLanguages = map[string]string{
	".go":    "go",
	".py":    "python",
	".pyi":   "python",
	".js":    "javascript",
	".jsx":   "javascript",
	".mjs":   "javascript",
	".cjs":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
	".java":  "java",
	".cs":    "csharp",
	".rb":    "ruby",
	".php":   "php",
	".rs":    "rust",
	".c":     "c",
	".cpp":   "cpp",
	".cc":    "cpp",
	".h":     "c",
	".hpp":   "cpp",
	".swift": "swift",
	".kt":    "kotlin",
	".scala": "scala",
	".sql":   "sql",
	".sh":    "shell",
	".bash":  "shell",

	".json":   LanguageConfig,
	".yaml":   LanguageConfig,
	".yml":    LanguageConfig,
	".toml":   LanguageConfig,
	".ini":    LanguageConfig,
	".env":    LanguageConfig,
	".lock":   LanguageConfig,
	".mod":    LanguageConfig,
	".sum":    LanguageConfig,
	".xml":    LanguageConfig,
	".csproj": LanguageConfig,

	".md":   LanguageDocs,
	".rst":  LanguageDocs,
	".txt":  LanguageDocs,
	".adoc": LanguageDocs,
}

// DetectLanguage returns the language a file belongs to based on its
// extension. Manifest files keep their real classification separate so the
// dependency analyzer can still pick them up.
func DetectLanguage(path string) string {
	base := strings.ToLower(filepath.Base(path))
	switch base {
	case "dockerfile", "makefile", "jenkinsfile", "gemfile", "rakefile":
		return LanguageConfig
	}

	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return LanguageOther
}

// IsAnalyzableLanguage reports whether a language counts toward primary
// language detection
func IsAnalyzableLanguage(lang string) bool {
	switch lang {
	case LanguageConfig, LanguageDocs, LanguageOther, LanguageUnknown, "":
		return false
	}
	return true
}

// IsTestFile reports whether a path looks like a test file
func IsTestFile(path string) bool {
	lower := strings.ToLower(path)
	base := filepath.Base(path)

	if strings.HasSuffix(lower, "_test.go") || strings.HasSuffix(lower, "_test.py") {
		return true
	}
	if strings.Contains(lower, ".spec.") || strings.Contains(lower, ".test.") {
		return true
	}
	if strings.HasPrefix(base, "test_") {
		return true
	}
	if strings.HasSuffix(base, "Test.java") || strings.HasSuffix(base, "Tests.cs") || strings.HasSuffix(base, "Test.cs") {
		return true
	}
	for _, dir := range []string{"/test/", "/tests/", "/__tests__/", "/spec/"} {
		if strings.Contains("/"+lower+"/", dir) {
			return true
		}
	}
	return false
}
