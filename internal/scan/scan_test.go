package scan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCommentLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"// comment\n", true},
		{"    // indented comment\n", true},
		{"\t// tab indented\n", true},
		{"int x; // trailing comment\n", false},
		{"/* block comment */\n", false},
		{"** inside a block\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.line), func(t *testing.T) {
			assert.Equal(t, tt.want, IsCommentLine(tt.line))
		})
	}
}

func TestVisibleWidth(t *testing.T) {
	tests := []struct {
		name string
		line string
		want int
	}{
		{name: "empty", line: "", want: 0},
		{name: "newline counts as one", line: "\n", want: 1},
		{name: "plain text", line: "abc\n", want: 4},
		{name: "leading tab", line: "\tx", want: 9},
		{name: "two tabs", line: "\t\t", want: 16},
		{name: "tab advances to next stop", line: "abc\tx", want: 9},
		{name: "tab right before stop", line: "abcdefg\tx", want: 9},
		{name: "tab exactly at stop", line: "abcdefgh\tx", want: 17},
		{name: "multibyte runes count once", line: "é\n", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VisibleWidth(tt.line))
		})
	}
}

func TestBraceDelta(t *testing.T) {
	assert.Equal(t, 1, BraceDelta("int main(void) {\n"))
	assert.Equal(t, -1, BraceDelta("}\n"))
	assert.Equal(t, 0, BraceDelta("} else {\n"))
	assert.Equal(t, 2, BraceDelta("{{\n"))
	assert.Equal(t, 1, BraceDelta(`printf("{");`), "braces in strings are counted")
}

func TestIndent(t *testing.T) {
	assert.Equal(t, 0, Indent("int x;\n"))
	assert.Equal(t, 4, Indent("    x;\n"))
	assert.Equal(t, 2, Indent("\t\tx;\n"))
	assert.Equal(t, 5, Indent("    \n"), "whitespace-only lines are all indentation")
	assert.Equal(t, "x;\n", StripIndent(" \t x;\n"))
}

func TestIsFunctionSignature(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"int main(void)\n", true},
		{"static char *my_strdup(char const *str)\n", true},
		{"unsigned int count(int a,\n", true},
		{"size_t my_strlen(char const *s)\n", true},
		{"void my_putchar(char c);\n", false},
		{"    int i = 0;\n", false},
		{"int main(void)", false},
		{"    return (0);\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.line), func(t *testing.T) {
			assert.Equal(t, tt.want, IsFunctionSignature(tt.line))
		})
	}
}
