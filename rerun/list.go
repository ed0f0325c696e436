package rerun

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ListFilePrefix marks an input entry as a reference to a list file: the
// remainder of the entry is a path to a text file whose lines name
// additional input paths.
const ListFilePrefix = '@'

// FileList is the canonical ordered sequence of filesystem paths that the
// staleness checker operates on. Build one with List.
type FileList []string

// List converts loosely-typed path arguments into a FileList. Each item may
// be a string, an integer kind (rendered in decimal), a fmt.Stringer, a
// []string, or another FileList; sequences are flattened in order. A single
// scalar therefore behaves exactly like a one-element list containing it.
func List(items ...any) (FileList, error) {
	var out FileList
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case FileList:
			out = append(out, v...)
		case []string:
			out = append(out, v...)
		case int:
			out = append(out, strconv.Itoa(v))
		case int64:
			out = append(out, strconv.FormatInt(v, 10))
		case fmt.Stringer:
			out = append(out, v.String())
		default:
			return nil, fmt.Errorf("cannot treat %T as a path or path list", item)
		}
	}
	return out, nil
}

// MustList is List for arguments known to be well-typed; it panics on a
// conversion error.
func MustList(items ...any) FileList {
	l, err := List(items...)
	if err != nil {
		panic(err)
	}
	return l
}

// expand replaces each list-file entry (one starting with ListFilePrefix)
// with the paths named by the referenced file, in file order. Plain entries
// pass through unchanged.
func expand(inputs FileList) (FileList, error) {
	expanded := make(FileList, 0, len(inputs))
	for _, in := range inputs {
		if len(in) == 0 || in[0] != ListFilePrefix {
			expanded = append(expanded, in)
			continue
		}
		paths, err := readListFile(in[1:])
		if err != nil {
			return nil, err
		}
		expanded = append(expanded, paths...)
	}
	return expanded, nil
}

// readListFile reads a list file: one path per line, surrounding whitespace
// trimmed, blank lines and '#' comment lines skipped.
func readListFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening list file: %w", err)
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading list file %s: %w", path, err)
	}
	return paths, nil
}
