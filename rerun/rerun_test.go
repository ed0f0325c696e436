package rerun

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeAt creates a file with the given content and sets its mtime.
func writeAt(t *testing.T, path, content string, mtime time.Time) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("setting mtime on %s: %v", path, err)
	}
}

func TestNeedsRerun_MissingOutput(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour).Truncate(time.Second)

	in := filepath.Join(dir, "in.txt")
	writeAt(t, in, "data", base)

	got, err := NeedsRerun(FileList{in}, FileList{filepath.Join(dir, "absent.txt")})
	if err != nil {
		t.Fatalf("NeedsRerun() error = %v", err)
	}
	if !got {
		t.Error("NeedsRerun() = false, want true for missing output")
	}

	// Missing output wins even when the inputs are older or themselves absent.
	got, err = NeedsRerun(nil, FileList{filepath.Join(dir, "absent.txt")})
	if err != nil {
		t.Fatalf("NeedsRerun() with no inputs error = %v", err)
	}
	if !got {
		t.Error("NeedsRerun() = false, want true for missing output with no inputs")
	}
}

func TestNeedsRerun_Timestamps(t *testing.T) {
	base := time.Now().Add(-time.Hour).Truncate(time.Second)

	tests := []struct {
		name   string
		inOff  time.Duration // input mtime offset from base
		outOff time.Duration // output mtime offset from base
		want   bool
	}{
		{name: "input older than output", inOff: 0, outOff: time.Second, want: false},
		{name: "equal timestamps are up to date", inOff: 0, outOff: 0, want: false},
		{name: "input newer than output", inOff: time.Second, outOff: 0, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			in := filepath.Join(dir, "in.txt")
			out := filepath.Join(dir, "out.txt")
			writeAt(t, in, "in", base.Add(tt.inOff))
			writeAt(t, out, "out", base.Add(tt.outOff))

			got, err := NeedsRerun(FileList{in}, FileList{out})
			if err != nil {
				t.Fatalf("NeedsRerun() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("NeedsRerun() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNeedsRerun_OldestOutputIsBaseline(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour).Truncate(time.Second)

	// Two outputs; the older one is the comparison baseline even though the
	// newer one postdates the input.
	in := filepath.Join(dir, "in.txt")
	oldOut := filepath.Join(dir, "old.txt")
	newOut := filepath.Join(dir, "new.txt")
	writeAt(t, in, "in", base.Add(5*time.Second))
	writeAt(t, oldOut, "old", base)
	writeAt(t, newOut, "new", base.Add(10*time.Second))

	got, err := NeedsRerun(FileList{in}, FileList{newOut, oldOut})
	if err != nil {
		t.Fatalf("NeedsRerun() error = %v", err)
	}
	if !got {
		t.Error("NeedsRerun() = false, want true: input newer than oldest output")
	}
}

func TestNeedsRerun_ThreeByThree(t *testing.T) {
	dir := t.TempDir()
	t0 := time.Now().Add(-time.Hour).Truncate(time.Second)
	t1 := t0.Add(time.Second)

	var inputs, outputs FileList
	for j := 0; j < 3; j++ {
		in := filepath.Join(dir, fmt.Sprintf("in%d.txt", j))
		out := filepath.Join(dir, fmt.Sprintf("out%d.txt", j))
		writeAt(t, in, "x", t0)
		writeAt(t, out, "x", t1)
		inputs = append(inputs, in)
		outputs = append(outputs, out)
	}

	got, err := NeedsRerun(inputs, outputs)
	if err != nil {
		t.Fatalf("NeedsRerun(inputs, outputs) error = %v", err)
	}
	if got {
		t.Error("NeedsRerun(inputs, outputs) = true, want false: outputs are newer")
	}

	got, err = NeedsRerun(outputs, inputs)
	if err != nil {
		t.Fatalf("NeedsRerun(outputs, inputs) error = %v", err)
	}
	if !got {
		t.Error("NeedsRerun(outputs, inputs) = false, want true: roles swapped")
	}
}

func TestNeedsRerun_NoOutputs(t *testing.T) {
	_, err := NeedsRerun(FileList{"whatever"}, nil)
	if !errors.Is(err, ErrNoOutputs) {
		t.Errorf("NeedsRerun() error = %v, want ErrNoOutputs", err)
	}
}

func TestNeedsRerun_MissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	writeAt(t, out, "out", time.Now().Add(-time.Minute))

	_, err := NeedsRerun(FileList{filepath.Join(dir, "absent.txt")}, FileList{out})
	if err == nil {
		t.Fatal("NeedsRerun() error = nil, want missing-input error")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("errors.Is(err, fs.ErrNotExist) = false for %v", err)
	}
}

func TestNeedsRerun_ListFile(t *testing.T) {
	t.Run("expands entries in file order", func(t *testing.T) {
		dir := t.TempDir()
		base := time.Now().Add(-time.Hour).Truncate(time.Second)

		a := filepath.Join(dir, "a.txt")
		b := filepath.Join(dir, "b.txt")
		out := filepath.Join(dir, "out.txt")
		writeAt(t, a, "a", base)
		writeAt(t, b, "b", base.Add(5*time.Second)) // newer than out
		writeAt(t, out, "out", base.Add(time.Second))

		listFile := filepath.Join(dir, "inputs.lst")
		content := "# generated inputs\n\n  " + a + "  \n" + b + "\n"
		if err := os.WriteFile(listFile, []byte(content), 0644); err != nil {
			t.Fatalf("writing list file: %v", err)
		}

		got, err := NeedsRerun(FileList{"@" + listFile}, FileList{out})
		if err != nil {
			t.Fatalf("NeedsRerun() error = %v", err)
		}
		if !got {
			t.Error("NeedsRerun() = false, want true: listed input b is newer")
		}
	})

	t.Run("missing list file is an error", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "out.txt")
		writeAt(t, out, "out", time.Now().Add(-time.Minute))

		_, err := NeedsRerun(FileList{"@" + filepath.Join(dir, "absent.lst")}, FileList{out})
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("NeedsRerun() error = %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("expansion replaces the entry in place", func(t *testing.T) {
		dir := t.TempDir()
		listFile := filepath.Join(dir, "inputs.lst")
		if err := os.WriteFile(listFile, []byte("b.txt\nc.txt\n"), 0644); err != nil {
			t.Fatalf("writing list file: %v", err)
		}

		got, err := expand(FileList{"a.txt", "@" + listFile, "d.txt"})
		if err != nil {
			t.Fatalf("expand() error = %v", err)
		}
		want := FileList{"a.txt", "b.txt", "c.txt", "d.txt"}
		if len(got) != len(want) {
			t.Fatalf("expand() = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("expand()[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("comments and blanks are skipped", func(t *testing.T) {
		dir := t.TempDir()
		listFile := filepath.Join(dir, "inputs.lst")
		a := filepath.Join(dir, "a.txt")
		content := "# header\n\n" + a + "\n   \n# trailer\n"
		if err := os.WriteFile(listFile, []byte(content), 0644); err != nil {
			t.Fatalf("writing list file: %v", err)
		}

		paths, err := readListFile(listFile)
		if err != nil {
			t.Fatalf("readListFile() error = %v", err)
		}
		if len(paths) != 1 || paths[0] != a {
			t.Errorf("readListFile() = %v, want [%s]", paths, a)
		}
	})
}

func TestList(t *testing.T) {
	tests := []struct {
		name  string
		items []any
		want  FileList
	}{
		{name: "single string", items: []any{"a.txt"}, want: FileList{"a.txt"}},
		{name: "integer scalar", items: []any{42}, want: FileList{"42"}},
		{name: "string slice flattened", items: []any{[]string{"a", "b"}, "c"}, want: FileList{"a", "b", "c"}},
		{name: "nested FileList", items: []any{FileList{"x"}}, want: FileList{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := List(tt.items...)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("List() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("List()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}

	t.Run("unsupported type is an error", func(t *testing.T) {
		if _, err := List(3.14); err == nil {
			t.Error("List(3.14) error = nil, want conversion error")
		}
	})

	t.Run("must variant converts", func(t *testing.T) {
		got := MustList("a.txt", 7)
		if len(got) != 2 || got[0] != "a.txt" || got[1] != "7" {
			t.Errorf("MustList() = %v, want [a.txt 7]", got)
		}
	})

	t.Run("must variant panics on bad type", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("MustList(3.14) did not panic")
			}
		}()
		MustList(3.14)
	})

	t.Run("scalar equals one-element list", func(t *testing.T) {
		a, err := List("p.txt")
		if err != nil {
			t.Fatalf("List(scalar) error = %v", err)
		}
		b, err := List([]string{"p.txt"})
		if err != nil {
			t.Fatalf("List(slice) error = %v", err)
		}
		if len(a) != 1 || len(b) != 1 || a[0] != b[0] {
			t.Errorf("List(%q) = %v, List([]string{%q}) = %v; want identical", "p.txt", a, "p.txt", b)
		}
	})
}
