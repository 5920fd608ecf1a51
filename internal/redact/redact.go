// Package redact strips credentials, tokens, SQL and file paths from error
// text before it is logged.
package redact

import "regexp"

// Placeholders substituted for redacted text.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	JWTPlaceholder        = "[REDACTED_JWT]"
	SecretPlaceholder     = "[REDACTED]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	PathPlaceholder       = "[REDACTED_PATH]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Rules run in order. JWTs go before bearer tokens so the more specific
// placeholder wins.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`(?i)\b(postgres(?:ql)?|pgx)://[^\s@/]+@`),
		replacement: "${1}://" + CredentialPlaceholder + "@",
	},
	{
		pattern:     regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
		replacement: JWTPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(bearer)\s+[A-Za-z0-9._~+/-]+=*`),
		replacement: "${1} " + TokenPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(password|passwd|secret|jwt[_-]?secret|api[_-]?key)(\s*[=:]\s*)("[^"]*"|'[^']*'|[^\s&,;]+)`),
		replacement: "${1}${2}" + SecretPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`\b(?:SELECT|INSERT|UPDATE|DELETE)\s[^;]*?\b(?:FROM|INTO|SET)\b\s+\w+`),
		replacement: SQLPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?:/[\w.-]+){3,}`),
		replacement: PathPlaceholder,
	},
}

// String returns input with every sensitive fragment replaced.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts err.Error(). A nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
