package game

import (
	"strings"
	"unicode/utf8"

	"wordgame-service/domain"
)

type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
	// VerdictStale means the answer targeted a prompt that was already resolved.
	VerdictStale Verdict = "stale"
)

// Normalize lowercases s and keeps only ASCII letters, digits and Hangul syllables.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r >= '가' && r <= '힣':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Judge compares a raw submission against the accepted answer.
func Judge(prompt domain.Prompt, raw string) Verdict {
	got := Normalize(raw)
	if got == "" {
		return VerdictIncorrect
	}
	if got == Normalize(prompt.Answer) {
		return VerdictCorrect
	}
	return VerdictIncorrect
}

// Hint renders the easy-mode hint: the first letter followed by one
// underscore per remaining character.
func Hint(prompt domain.Prompt) string {
	answer := strings.TrimSpace(prompt.Answer)
	if answer == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(answer)
	rest := utf8.RuneCountInString(answer[size:])
	if rest == 0 {
		return string(first)
	}
	return string(first) + strings.TrimSuffix(strings.Repeat("_ ", rest), " ")
}
