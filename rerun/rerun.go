// Package rerun decides whether derived files need rebuilding, based on
// filesystem modification timestamps, and writes files without disturbing
// timestamps when nothing changed. The intent is make-like behaviour for
// build scripts.
//
// Both operations read the filesystem fresh on every call and hold no
// locks; concurrent mutation of the same paths by other processes is the
// caller's problem (last writer wins on WriteIfChanged, and NeedsRerun may
// observe a transient timestamp).
package rerun

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrNoOutputs is returned by NeedsRerun when the output list is empty
// after normalization.
var ErrNoOutputs = errors.New("no outputs specified")

// Checker performs staleness checks and conditional writes. The zero value
// is not usable; construct with NewChecker.
type Checker struct {
	log Logger
}

// NewChecker creates a Checker that reports diagnostic decisions (missing
// outputs, newer inputs) to the given logger. Pass NewNopLogger() to
// silence it.
func NewChecker(logger Logger) *Checker {
	return &Checker{log: logger}
}

// NeedsRerun reports whether a command producing outputs from inputs must
// be rerun.
//
// It returns true if any output is missing, or if any input's modification
// time is strictly newer than the oldest output's. Equal timestamps count
// as up to date. Input entries starting with '@' are expanded from the
// referenced list file before checking.
//
// Missing inputs (and unreadable list files) are errors; test with
// errors.Is(err, fs.ErrNotExist). An empty output list returns
// ErrNoOutputs.
func (c *Checker) NeedsRerun(inputs, outputs FileList) (bool, error) {
	if len(outputs) == 0 {
		return false, ErrNoOutputs
	}

	inputs, err := expand(inputs)
	if err != nil {
		return false, err
	}

	var oldestOut time.Time
	var oldestOutName string
	for i, o := range outputs {
		info, err := os.Stat(o)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				c.log.Info("output missing", "path", o)
				return true, nil
			}
			return false, fmt.Errorf("stat output: %w", err)
		}
		if mt := info.ModTime(); i == 0 || mt.Before(oldestOut) {
			oldestOut = mt
			oldestOutName = o
		}
	}

	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return false, fmt.Errorf("stat input: %w", err)
		}
		if info.ModTime().After(oldestOut) {
			c.log.Info("input newer than oldest output", "input", in, "output", oldestOutName)
			c.log.Debug("timestamps", "input_mtime", info.ModTime(), "output_mtime", oldestOut)
			return true, nil
		}
	}

	return false, nil
}

// defaultChecker backs the package-level convenience functions.
var defaultChecker = NewChecker(NewNopLogger())

// NeedsRerun is a convenience wrapper around Checker.NeedsRerun with
// diagnostics discarded.
func NeedsRerun(inputs, outputs FileList) (bool, error) {
	return defaultChecker.NeedsRerun(inputs, outputs)
}

// WriteIfChanged is a convenience wrapper around Checker.WriteIfChanged.
func WriteIfChanged(path string, content []byte) error {
	return defaultChecker.WriteIfChanged(path, content)
}

// WriteStringIfChanged is a convenience wrapper around
// Checker.WriteStringIfChanged.
func WriteStringIfChanged(path, s string) error {
	return defaultChecker.WriteStringIfChanged(path, s)
}
