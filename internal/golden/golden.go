// Copyright 2024-2026 The fmtkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package golden runs table-driven tests whose table is the file system:
// each file under a corpus root is a test case, and expected outputs live
// in sibling files named after the case.
package golden

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus describes a directory of test cases.
type Corpus struct {
	// Root of the corpus, relative to the file that calls [Corpus.Run].
	Root string

	// Extension (without a dot) of files that define a test case.
	Extension string

	// Environment variable checked for refresh mode. If the variable is set
	// to a glob, cases matching it get their expected outputs rewritten
	// with the actual results instead of compared.
	Refresh string

	// Outputs are the expected outputs of each case, found at the case
	// file's path plus "." plus the extension.
	Outputs []Output

	// Test executes one case and returns one string per entry in Outputs.
	Test func(t *testing.T, path, text string) []string
}

// Output is one expected output of a test case.
type Output struct {
	Extension string
}

// Run executes every case in the corpus as a subtest.
func (c Corpus) Run(t *testing.T) {
	dir := callerDir()
	root := filepath.Join(dir, c.Root)

	var cases []string
	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && strings.TrimPrefix(filepath.Ext(p), ".") == c.Extension {
			cases = append(cases, p)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("golden: error while walking %q: %v", root, err)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("golden: invalid glob in $%s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		t.Logf("golden: refreshing expectations because %s=%s", c.Refresh, refresh)
		// A refreshing run must not pass CI.
		t.Fail()
	}

	for _, path := range cases {
		name, _ := filepath.Rel(dir, path)
		t.Run(name, func(t *testing.T) {
			text, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("golden: error while loading case %q: %v", path, err)
			}

			results := c.Test(t, name, string(text))
			if len(results) != len(c.Outputs) {
				t.Fatalf("golden: case returned %d outputs, want %d", len(results), len(c.Outputs))
			}

			refreshing, _ := doublestar.Match(refresh, name)
			for i, output := range c.Outputs {
				path := fmt.Sprint(path, ".", output.Extension)
				if refreshing {
					if err := os.WriteFile(path, []byte(results[i]), 0o666); err != nil {
						t.Errorf("golden: error while refreshing %q: %v", path, err)
					}
					continue
				}

				want, err := os.ReadFile(path)
				if err != nil && !errors.Is(err, fs.ErrNotExist) {
					t.Errorf("golden: error while loading output %q: %v", path, err)
					continue
				}
				if diff := diff(results[i], string(want)); diff != "" {
					t.Errorf("golden: output mismatch for %q:\n%s", path, diff)
				}
			}
		})
	}
}

func diff(got, want string) string {
	if got == want {
		return ""
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return text
}

func callerDir() string {
	// Two frames up: past this function and past Corpus.Run.
	_, file, _, ok := runtime.Caller(2)
	if !ok {
		panic("golden: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
