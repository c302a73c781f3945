// Package crawler detects AI crawlers by User-Agent and keeps an in-memory
// record of their hits for the stats endpoint. State is process-lifetime
// only and resets on restart.
package crawler

import "strings"

// signatures are tested in order; the first match wins. Product-specific
// agents (ChatGPT-User, Claude-Web) come before their vendors' generic
// strings so hits attribute to the most specific name.
var signatures = []struct {
	pattern string
	name    string
}{
	{"chatgpt-user", "ChatGPT-User"},
	{"oai-searchbot", "OAI-SearchBot"},
	{"gptbot", "GPTBot"},
	{"claude-web", "Claude-Web"},
	{"claudebot", "ClaudeBot"},
	{"anthropic-ai", "Anthropic"},
	{"perplexitybot", "PerplexityBot"},
	{"perplexity-user", "Perplexity-User"},
	{"google-extended", "Google-Extended"},
	{"applebot-extended", "Applebot-Extended"},
	{"meta-externalagent", "Meta-ExternalAgent"},
	{"facebookbot", "FacebookBot"},
	{"bytespider", "Bytespider"},
	{"amazonbot", "Amazonbot"},
	{"ccbot", "CCBot"},
	{"cohere-ai", "Cohere"},
	{"youbot", "YouBot"},
	{"diffbot", "Diffbot"},
	{"omgili", "Omgili"},
	{"timpibot", "Timpibot"},
}

// Detect tests a User-Agent string against the known AI crawler signatures
// and returns the first matching crawler's display name. An empty or absent
// User-Agent is simply no match.
func Detect(userAgent string) (string, bool) {
	if userAgent == "" {
		return "", false
	}
	ua := strings.ToLower(userAgent)
	for _, sig := range signatures {
		if strings.Contains(ua, sig.pattern) {
			return sig.name, true
		}
	}
	return "", false
}
