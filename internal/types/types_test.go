package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Category
	}{
		{"Makefile", CategoryMakefile},
		{"lib/my/Makefile", CategoryMakefile},
		{"include/my.h", CategoryHeader},
		{"src/main.c", CategorySource},
		{"README.md", CategoryUnrecognized},
		{"makefile", CategoryUnrecognized},
		{"src/main.cpp", CategoryUnrecognized},
		{"Makefile.bak", CategoryUnrecognized},
		{"", CategoryUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.path))
		})
	}
}

func TestCategory_HasContent(t *testing.T) {
	assert.True(t, CategorySource.HasContent())
	assert.True(t, CategoryHeader.HasContent())
	assert.True(t, CategoryMakefile.HasContent())
	assert.False(t, CategoryDirectory.HasContent())
	assert.False(t, CategoryUnrecognized.HasContent())
	assert.False(t, Category("bogus").IsValid())
}

func TestSeverity_IsValid(t *testing.T) {
	for _, s := range []Severity{SeverityMajor, SeverityMinor, SeverityInfo} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, Severity("fatal").IsValid())
}

func TestViolation_String(t *testing.T) {
	lined := Violation{Code: "F3", Severity: SeverityMajor, Path: "src/a.c", Line: 4, Message: "Too long line (81 > 80)"}
	assert.Equal(t, "[src/a.c:4] F3 - Too long line (81 > 80)", lined.String())

	fileLevel := Violation{Code: "O1", Severity: SeverityMajor, Path: "notes.txt", Message: "Extraneous file"}
	assert.False(t, fileLevel.HasLine())
	assert.Equal(t, "[notes.txt] O1 - Extraneous file", fileLevel.String())
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{"a\n", "b\n"}, SplitLines("a\nb\n"))
	assert.Equal(t, []string{"a\n", "b"}, SplitLines("a\nb"))
	assert.Equal(t, []string{"\n", "\n"}, SplitLines("\n\n"))

	f := NewSourceFile("x.c", CategorySource, "int x;\n")
	assert.Equal(t, []string{"int x;\n"}, f.Lines)
	assert.Equal(t, CategorySource, f.Category)
}
