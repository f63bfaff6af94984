package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/cnorm/internal/config"
	"github.com/steveyegge/cnorm/internal/rules"
	"github.com/steveyegge/cnorm/internal/types"
)

const (
	validHeader = "/*\n** EPITECH PROJECT, 2024\n** cnorm\n** File description:\n** test\n*/\n"
	validMain   = validHeader + "\nint main(void)\n{\n    return (0);\n}\n"
	makefile    = "##\n## EPITECH PROJECT, 2024\n## cnorm\n## File description:\n## Makefile\n##\n\nall:\n\tgcc -o prog src/main.c\n"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func execCheck(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newCheckCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func projectTree(t *testing.T) string {
	return writeTree(t, map[string]string{
		"Makefile":   makefile,
		"src/main.c": validMain,
		"notes.txt":  "todo\n",
	})
}

func TestCheck_TextReport(t *testing.T) {
	root := projectTree(t)

	out, err := execCheck(t, root, "--colorless")
	require.NoError(t, err)
	assert.Equal(t,
		"[notes.txt] O1 - Your delivery folder should contain only files required for compilation\n"+
			"\nMajor : 1\nMinor : 0\nInfo : 0\n",
		out)
}

func TestCheck_IgnoreFiles(t *testing.T) {
	root := projectTree(t)

	for _, flag := range []string{"-f", "--ignore-files", "-i", "--ignore-all"} {
		t.Run(flag, func(t *testing.T) {
			out, err := execCheck(t, root, "-c", flag)
			require.NoError(t, err)
			assert.Equal(t, "\nMajor : 0\nMinor : 0\nInfo : 0\n", out)
		})
	}
}

func TestCheck_Gitignore(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/main.c":       validMain,
		"notes.txt":        "todo\n",
		".gitignore":       "# local files\nnotes.txt\nbuild\n",
		"tests/test_x.c":   "not checked",
		".git/HEAD":        "ref: refs/heads/main\n",
		"build/output.bin": "",
	})

	out, err := execCheck(t, root, "-c")
	require.NoError(t, err)
	assert.Equal(t, "\nMajor : 0\nMinor : 0\nInfo : 0\n", out)
}

func TestCheck_DisableRule(t *testing.T) {
	root := projectTree(t)

	out, err := execCheck(t, root, "-c", "--disable", "extraneous-file")
	require.NoError(t, err)
	assert.Equal(t, "\nMajor : 0\nMinor : 0\nInfo : 0\n", out)
}

func TestCheck_ReportsViolationsInOrder(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/Bad.c": "int x; \n",
	})

	out, err := execCheck(t, root, "-c")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "[src/Bad.c:1] G8 - Trailing space(s) at the end of the line", lines[0])
	assert.Equal(t, "[src/Bad.c] O4 - Filenames should respect the snake_case naming convention", lines[1])
	assert.Equal(t, "[src/Bad.c] G1 - Missing or corrupted header", lines[2])
	assert.Contains(t, out, "\nMajor : 2\nMinor : 1\nInfo : 0\n")
}

func TestCheck_JSONReport(t *testing.T) {
	root := projectTree(t)

	out, err := execCheck(t, root, "--format", "json")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var v types.Violation
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &v))
	assert.Equal(t, "O1", v.Code)
	assert.Equal(t, "notes.txt", v.Path)
	assert.Equal(t, types.SeverityMajor, v.Severity)

	assert.JSONEq(t, `{"summary":{"major":1,"minor":0,"info":0}}`, lines[1])
}

func TestCheck_ConfigFile(t *testing.T) {
	root := projectTree(t)
	cfgPath := filepath.Join(t.TempDir(), "cnorm.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("ignore_files: true\njobs: 2\n"), 0o644))

	out, err := execCheck(t, root, "-c", "--config", cfgPath)
	require.NoError(t, err)
	assert.NotContains(t, out, "O1")

	out, err = execCheck(t, root, "-c", "--config", cfgPath, "--ignore-files=false")
	require.NoError(t, err)
	assert.Contains(t, out, "O1", "flags override the config file")
}

func TestCheck_ConfigFileUnderRoot(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Makefile":             makefile,
		"src/main.c":           validMain,
		"notes.txt":            "todo\n",
		config.DefaultFileName: "ignore_files: true\n",
	})

	out, err := execCheck(t, root, "-c")
	require.NoError(t, err)
	assert.Equal(t, "\nMajor : 0\nMinor : 0\nInfo : 0\n", out)

	out, err = execCheck(t, root, "-c", "--ignore-files=false")
	require.NoError(t, err)
	assert.Contains(t, out, "[notes.txt] O1")
}

func TestCheck_Errors(t *testing.T) {
	root := projectTree(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad jobs", []string{root, "--jobs", "0"}, "invalid flags"},
		{"bad format", []string{root, "--format", "xml"}, "invalid flags"},
		{"unknown rule", []string{root, "--disable", "nope"}, "unknown rule"},
		{"missing config", []string{root, "--config", filepath.Join(root, "missing.yml")}, "reading config file"},
		{"missing root", []string{filepath.Join(root, "nope")}, "failed to walk"},
		{"too many args", []string{root, root}, "accepts at most 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execCheck(t, tt.args...)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestListRules(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, listRules(&out, true))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, len(rules.All()))
	assert.True(t, strings.HasPrefix(lines[0], "directory-name "))
	assert.Contains(t, lines[0], "O4")
	assert.Contains(t, lines[0], "major")
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DefaultFileName)
	var out bytes.Buffer

	require.NoError(t, initConfig(&out, path, false))
	assert.Contains(t, out.String(), path)

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	assert.ErrorContains(t, initConfig(&out, path, false), "already exists")
	assert.NoError(t, initConfig(&out, path, true))
}
