package rules

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/steveyegge/cnorm/internal/types"
)

var (
	snakeCaseName  = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)
	snakeCaseFile  = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*\.[ch]$`)
	headerTemplate = regexp.MustCompile(`\A/\*\n\*\* EPITECH PROJECT, [0-9]{4}\n\*\* .*\n\*\* File description:\n(\*\* .*\n)+\*/\n`)
	makefileHeader = regexp.MustCompile(`\A##\n## EPITECH PROJECT, [0-9]{4}\n## .*\n## File description:\n## .*\n##\n`)
	headerOnly     = regexp.MustCompile(`^(static\s*inline|#define)`)
)

// broadFileNames are names too generic to say what a file contains.
var broadFileNames = map[string]struct{}{
	"string.c":       {},
	"str.c":          {},
	"my_string.c":    {},
	"my_str.c":       {},
	"algorithm.c":    {},
	"my_algorithm.c": {},
	"algo.c":         {},
	"my_algo.c":      {},
	"program.c":      {},
	"my_program.c":   {},
	"prog.c":         {},
	"my_prog.c":      {},
}

func checkDirectoryName(f *types.SourceFile) []types.Violation {
	if snakeCaseName.MatchString(filepath.Base(f.Path)) {
		return nil
	}
	return []types.Violation{DirectoryName.file(f, "Directory names should respect the snake_case naming convention")}
}

func checkFileName(f *types.SourceFile) []types.Violation {
	if snakeCaseFile.MatchString(filepath.Base(f.Path)) {
		return nil
	}
	return []types.Violation{FileName.file(f, "Filenames should respect the snake_case naming convention")}
}

func checkBroadFileName(f *types.SourceFile) []types.Violation {
	if _, ok := broadFileNames[filepath.Base(f.Path)]; !ok {
		return nil
	}
	return []types.Violation{BroadFileName.file(f, "Filename should be more specific than a generic word")}
}

func checkExtraneousFile(f *types.SourceFile, opts Options) []types.Violation {
	if opts.IgnoreFiles {
		return nil
	}
	return []types.Violation{ExtraneousFile.file(f, "Your delivery folder should contain only files required for compilation")}
}

func checkHeader(f *types.SourceFile) []types.Violation {
	if headerTemplate.MatchString(f.Text) {
		return nil
	}
	return []types.Violation{Header.file(f, "Missing or corrupted header")}
}

func checkMakefileHeader(f *types.SourceFile) []types.Violation {
	if makefileHeader.MatchString(f.Text) {
		return nil
	}
	return []types.Violation{MakefileHeader.file(f, "Missing or corrupted header")}
}

// An empty file has no final line break either.
func checkFinalNewline(f *types.SourceFile) []types.Violation {
	if strings.HasSuffix(f.Text, "\n") {
		return nil
	}
	return []types.Violation{FinalNewline.file(f, "File should end with a line break")}
}

func checkHeaderSeparation(f *types.SourceFile) []types.Violation {
	var out []types.Violation
	eachCodeLine(f, func(n int, line string) {
		if headerOnly.MatchString(line) {
			out = append(out, HeaderSeparation.at(f, n, "Bad separation between source file and header file"))
		}
	})
	return out
}
