package internal

import "regexp"

const redactedPlaceholder = "[REDACTED]"

// Patterns that identify secrets in config text. Order matters: block
// patterns (private keys) run before line-level ones.
var secretPatterns = []*regexp.Regexp{
	// PEM private key blocks
	regexp.MustCompile(`(?s)-----BEGIN [A-Z ]*PRIVATE KEY-----.*?-----END [A-Z ]*PRIVATE KEY-----`),
	// OpenAI / Anthropic style keys
	regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{16,}\b`),
	// GitHub tokens
	regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36,}\b`),
	// AWS access key IDs
	regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),
	// Slack tokens
	regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9-]{10,}\b`),
	// Bearer headers
	regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9._~+/-]{16,}=*`),
}

// Assignments like PASSWORD=..., api_key: "..." keep the variable name
// and mask only the value.
var secretAssignment = regexp.MustCompile(
	`(?i)\b([A-Z0-9_]*(?:key|token|secret|password|passwd|credential)[A-Z0-9_]*)(\s*[:=]\s*)("[^"]+"|'[^']+'|\S+)`)

// RedactSecrets masks anything that looks like credential material so it
// never reaches the vector store or the journal.
func RedactSecrets(text string) string {
	for _, p := range secretPatterns {
		text = p.ReplaceAllString(text, redactedPlaceholder)
	}
	text = secretAssignment.ReplaceAllString(text, "${1}${2}"+redactedPlaceholder)
	return text
}
