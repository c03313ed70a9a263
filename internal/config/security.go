package config

import (
	"fmt"
	"regexp"
	"strings"
)

// SensitivePattern represents a pattern that might indicate sensitive data
type SensitivePattern struct {
	Name        string
	Pattern     *regexp.Regexp
	Description string
}

var sensitivePatterns = []SensitivePattern{
	{
		Name:        "GitHub Token",
		Pattern:     regexp.MustCompile(`\b(gh[pousr]_[A-Za-z0-9]{36,}|github_pat_[A-Za-z0-9_]{22,})\b`),
		Description: "Potential GitHub token detected",
	},
	{
		Name:        "Token",
		Pattern:     regexp.MustCompile(`(?i)(token|auth[_-]?token|access[_-]?token|bearer)\s*=\s*['"][A-Za-z0-9_-]{15,}['"]`),
		Description: "Potential authentication token detected",
	},
	{
		Name:        "Azure Client Secret",
		Pattern:     regexp.MustCompile(`(?i)(client[_-]?secret|azure[_-]?client[_-]?secret)\s*=\s*['"].+['"]`),
		Description: "Potential Azure client secret detected",
	},
}

// SensitiveDataFinding represents a detected sensitive data instance
type SensitiveDataFinding struct {
	PatternName string
	Description string
	Line        int
	Preview     string // Redacted preview of the match
}

// DetectSensitiveData scans configuration content for potential sensitive
// data. Lua comments are scanned too: a token in a comment is still leaked.
func DetectSensitiveData(content string) []SensitiveDataFinding {
	var findings []SensitiveDataFinding
	lines := strings.Split(content, "\n")

	for lineNum, line := range lines {
		for _, pattern := range sensitivePatterns {
			if pattern.Pattern.MatchString(line) {
				findings = append(findings, SensitiveDataFinding{
					PatternName: pattern.Name,
					Description: pattern.Description,
					Line:        lineNum + 1, // 1-based line numbers
					Preview:     redactSensitiveValue(line),
				})
				break
			}
		}
	}

	return findings
}

// redactSensitiveValue creates a redacted preview of a line with sensitive data
func redactSensitiveValue(line string) string {
	eqIdx := strings.Index(line, "=")
	if eqIdx == -1 {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) > 4 {
			return trimmed[:4] + "... [REDACTED]"
		}
		return "[REDACTED]"
	}

	// Show the key part, redact the value
	keyPart := strings.TrimSpace(line[:eqIdx])
	return keyPart + " = [REDACTED]"
}

// FormatSensitiveDataWarning formats findings into a user-friendly warning message
func FormatSensitiveDataWarning(path string, findings []SensitiveDataFinding) string {
	if len(findings) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("WARNING: potential credentials in %s\n", path))
	for i, finding := range findings {
		sb.WriteString(fmt.Sprintf("%d. %s (line %d): %s\n", i+1, finding.Description, finding.Line, finding.Preview))
	}
	sb.WriteString("Store tokens in an environment variable and set token_env to its name.\n")

	return sb.String()
}
