package inputvalidation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func words(n int) string {
	return strings.Repeat("word ", n)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name      string
		text      string
		wantValid bool
		wantWords int
		wantReason string
	}{
		{"empty", "", false, 0, "empty"},
		{"whitespace only", "   \n\t  ", false, 0, "empty"},
		{"too short", words(20), false, 20, "too short"},
		{"exact min", words(MinWords), true, MinWords, ""},
		{"exact max", words(MaxWords), true, MaxWords, ""},
		{"too long", words(MaxWords + 1), false, MaxWords + 1, "too long"},
		{"typical", words(120), true, 120, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Validate(tc.text)
			assert.Equal(t, tc.wantValid, got.Valid)
			assert.Equal(t, tc.wantWords, got.WordCount)
			assert.Equal(t, tc.wantReason, got.Reason)
		})
	}
}
