package shellblock

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const defaultFileMode os.FileMode = 0o644

// FileState captures the state of a target file prior to modification.
type FileState struct {
	Path            string
	Exists          bool
	Mode            os.FileMode
	Lines           []string
	TrailingNewline bool
}

// ReadFileState reads the current content of path. A missing file is not an
// error: it is reported as a non-existing state with default permissions.
func ReadFileState(path string) (*FileState, error) {
	st := &FileState{Path: path, Mode: defaultFileMode, TrailingNewline: true}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			st.Lines = []string{}
			return st, nil
		}
		return nil, err
	}

	st.Exists = true
	st.Mode = info.Mode().Perm()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	st.Lines, st.TrailingNewline = splitLines(string(data))
	return st, nil
}

// ExtractBlock returns the current managed block, markers included, and
// whether a complete marker pair was found.
func ExtractBlock(lines []string) (string, bool) {
	begin, end := locateMarkers(lines)
	if begin < 0 || end < 0 {
		return "", false
	}
	return strings.Join(lines[begin:end+1], "\n"), true
}

// Upsert replaces the managed block in st's content with block, or appends
// it when no marker pair exists yet. It returns the full new file content
// and whether it differs from the current content. Upsert never touches
// lines outside the markers, so re-rendering is byte-idempotent.
func Upsert(st *FileState, block string) (string, bool) {
	blockLines := strings.Split(block, "\n")

	var newLines []string
	begin, end := locateMarkers(st.Lines)
	if begin >= 0 && end >= 0 {
		newLines = append(newLines, st.Lines[:begin]...)
		newLines = append(newLines, blockLines...)
		newLines = append(newLines, st.Lines[end+1:]...)
	} else {
		newLines = append(newLines, st.Lines...)
		if len(newLines) > 0 && newLines[len(newLines)-1] != "" {
			newLines = append(newLines, "")
		}
		newLines = append(newLines, blockLines...)
	}

	content := strings.Join(newLines, "\n")
	if st.TrailingNewline || !st.Exists {
		content += "\n"
	}

	current := strings.Join(st.Lines, "\n")
	if st.Exists && st.TrailingNewline {
		current += "\n"
	}

	return content, !st.Exists || content != current
}

// WriteFileState writes content to st.Path atomically via a temp file and
// rename, preserving the original permissions.
func WriteFileState(st *FileState, content string) error {
	dir := filepath.Dir(st.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".dotforge-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Chmod(tmpPath, st.Mode); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, st.Path)
}

// locateMarkers returns the indexes of the begin and end marker lines, or
// -1 when either is missing. Only the first complete pair is honored.
func locateMarkers(lines []string) (int, int) {
	begin, end := -1, -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if begin < 0 && trimmed == BeginMarker {
			begin = i
			continue
		}
		if begin >= 0 && trimmed == EndMarker {
			end = i
			break
		}
	}
	if end < 0 {
		return -1, -1
	}
	return begin, end
}

func splitLines(content string) ([]string, bool) {
	if content == "" {
		return []string{}, true
	}
	trailing := strings.HasSuffix(content, "\n")
	trimmed := strings.TrimSuffix(content, "\n")
	if trimmed == "" {
		return []string{}, true
	}
	return strings.Split(trimmed, "\n"), trailing
}
