package builder

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders line based differences between before and after, prefixing removed lines
// with "-", added with "+" and unchanged with a space
func Diff(before, after string) string {
	dmp := diffmatchpatch.New()
	src, dst, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(src, dst, false), lines)
	builder := &strings.Builder{}
	for _, diff := range diffs {
		prefix := " "
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		text := strings.TrimSuffix(diff.Text, "\n")
		for _, line := range strings.Split(text, "\n") {
			builder.WriteString(prefix)
			builder.WriteString(line)
			builder.WriteString("\n")
		}
	}
	return builder.String()
}
