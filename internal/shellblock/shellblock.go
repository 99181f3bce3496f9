// Package shellblock renders and edits the dotforge managed block inside a
// shell startup file. The block is delimited by fixed marker lines; content
// between the markers is owned by dotforge, everything else is left intact.
package shellblock

import (
	"fmt"
	"strings"

	"github.com/dotforge/dotforge/internal/contrib"
)

const (
	// BeginMarker delimits the start of the managed block.
	BeginMarker = "# >>> dotforge managed block >>>"
	// EndMarker delimits the end of the managed block.
	EndMarker = "# <<< dotforge managed block <<<"
)

// Render builds the managed block content from resolved values. The output
// is deterministic for fixed inputs, which is what lets plan and status
// detect "no changes" by comparing against the block currently on disk.
func Render(paths []string, aliases []contrib.Alias, initSnippets []string, overridesPath string) string {
	var b strings.Builder

	b.WriteString(BeginMarker)
	b.WriteString("\n# Managed by dotforge. Manual edits inside this block will be overwritten.\n")

	if len(paths) > 0 {
		fmt.Fprintf(&b, "export PATH=%q\n", strings.Join(paths, ":")+":$PATH")
	}

	for _, a := range aliases {
		fmt.Fprintf(&b, "alias %s='%s'\n", a.Name, escapeSingleQuotes(a.Value))
	}

	for _, snippet := range initSnippets {
		b.WriteString(strings.TrimRight(snippet, "\n"))
		b.WriteString("\n")
	}

	if overridesPath != "" {
		fmt.Fprintf(&b, "[ -f %q ] && . %q\n", overridesPath, overridesPath)
	}

	b.WriteString(EndMarker)
	return b.String()
}

func escapeSingleQuotes(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}
