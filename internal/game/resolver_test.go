package game

import (
	"testing"

	"wordgame-service/domain"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"  Apple ", "apple"},
		{"APPLE!", "apple"},
		{"ice-cream", "icecream"},
		{"New York", "newyork"},
		{"사과 ", "사과"},
		{"café", "caf"},
		{"R2-D2", "r2d2"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestJudge(t *testing.T) {
	apple := domain.Prompt{ID: "w1", Term: "사과", Answer: "apple"}

	assert.Equal(t, VerdictCorrect, Judge(apple, "Apple"))
	assert.Equal(t, VerdictCorrect, Judge(apple, "  apple.  "))
	assert.Equal(t, VerdictIncorrect, Judge(apple, "apples"))
	assert.Equal(t, VerdictIncorrect, Judge(apple, "  "))
	assert.Equal(t, VerdictIncorrect, Judge(domain.Prompt{Answer: "!!"}, "??"), "empty normalized answers never match")
}

func TestHint(t *testing.T) {
	assert.Equal(t, "a_ _ _ _", Hint(domain.Prompt{Answer: "apple"}))
	assert.Equal(t, "I", Hint(domain.Prompt{Answer: "I"}))
	assert.Equal(t, "", Hint(domain.Prompt{Answer: " "}))
}
