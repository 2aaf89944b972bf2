// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package webui

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/contractlens/contractlens/cmd/launcher"
)

// writeStubRunner writes an executable shell script standing in for the real
// frontend runner and returns its path.
func writeStubRunner(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub runner scripts require a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "runner.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("writing stub runner: %v", err)
	}
	return path
}

func newTestLauncher(t *testing.T, runner string) (*WebUILauncher, *bytes.Buffer) {
	t.Helper()

	l := NewLauncher()
	if _, err := l.Parse([]string{"-runner", runner}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	out := &bytes.Buffer{}
	l.stdin = strings.NewReader("")
	l.stdout = out
	l.stderr = out
	return l, out
}

func TestWebUILauncher_Run_PassesEntryPoint(t *testing.T) {
	stub := writeStubRunner(t, `echo "OK:$1"`+"\n"+`exit 0`)
	l, out := newTestLauncher(t, stub)

	if err := l.Run(t.Context(), &launcher.Config{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got, want := strings.TrimSpace(out.String()), "OK:app.py"; got != want {
		t.Errorf("runner output = %q, want %q", got, want)
	}
}

func TestWebUILauncher_Run_SingleArgument(t *testing.T) {
	stub := writeStubRunner(t, `echo "argc:$#"`)
	l, out := newTestLauncher(t, stub)

	if err := l.Run(t.Context(), &launcher.Config{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got, want := strings.TrimSpace(out.String()), "argc:1"; got != want {
		t.Errorf("runner argument count = %q, want %q", got, want)
	}
}

func TestWebUILauncher_Run_UTF8Environment(t *testing.T) {
	stub := writeStubRunner(t, `echo "$PYTHONUTF8|$PYTHONIOENCODING|$LANG|$LC_ALL"`)
	l, out := newTestLauncher(t, stub)

	if err := l.Run(t.Context(), &launcher.Config{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got, want := strings.TrimSpace(out.String()), "1|utf-8|en_US.UTF-8|en_US.UTF-8"; got != want {
		t.Errorf("child environment = %q, want %q", got, want)
	}
}

func TestWebUILauncher_Run_OverridesHostLocale(t *testing.T) {
	t.Setenv("LANG", "C")
	t.Setenv("LC_ALL", "POSIX")

	stub := writeStubRunner(t, `echo "$LANG|$LC_ALL"`)
	l, out := newTestLauncher(t, stub)

	if err := l.Run(t.Context(), &launcher.Config{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got, want := strings.TrimSpace(out.String()), "en_US.UTF-8|en_US.UTF-8"; got != want {
		t.Errorf("child locale = %q, want %q", got, want)
	}
}

func TestWebUILauncher_Run_ForwardsExitCodes(t *testing.T) {
	for _, code := range []int{0, 1, 42} {
		stub := writeStubRunner(t, "exit "+strconv.Itoa(code))
		l, _ := newTestLauncher(t, stub)

		err := l.Run(t.Context(), &launcher.Config{})
		if (err != nil) != (code != 0) {
			t.Errorf("Run() with exit %d: error = %v", code, err)
		}
		if got := ExitCode(err); got != code {
			t.Errorf("ExitCode() = %d, want %d", got, code)
		}
	}
}

func TestWebUILauncher_Run_MissingRunner(t *testing.T) {
	l, _ := newTestLauncher(t, filepath.Join(t.TempDir(), "does-not-exist"))

	err := l.Run(t.Context(), &launcher.Config{})
	if err == nil {
		t.Fatal("Run() error = nil, want startup failure")
	}
	if got := ExitCode(err); got == 0 {
		t.Errorf("ExitCode() = 0, want non-zero")
	}
}

func TestWebUILauncher_Run_Idempotent(t *testing.T) {
	stub := writeStubRunner(t, `echo "OK:$1 argc:$#"`)

	want := ""
	for i := 0; i < 3; i++ {
		l, out := newTestLauncher(t, stub)
		if err := l.Run(t.Context(), &launcher.Config{}); err != nil {
			t.Fatalf("Run() #%d error = %v", i+1, err)
		}
		got := strings.TrimSpace(out.String())
		if i == 0 {
			want = got
		}
		if got != want {
			t.Errorf("Run() #%d output = %q, want %q", i+1, got, want)
		}
	}
	if want != "OK:app.py argc:1" {
		t.Errorf("runner invocation = %q, want %q", want, "OK:app.py argc:1")
	}
}

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != 0 {
		t.Errorf("ExitCode(nil) = %d, want 0", got)
	}
	if got := ExitCode(errors.New("boom")); got != 1 {
		t.Errorf("ExitCode(plain error) = %d, want 1", got)
	}
}

func TestBuildLauncher_LeftoverArgs(t *testing.T) {
	l, rest, err := BuildLauncher([]string{"-runner", "x", "extra"})
	if err != nil {
		t.Fatalf("BuildLauncher() error = %v", err)
	}
	if l == nil {
		t.Fatal("BuildLauncher() launcher = nil")
	}
	if len(rest) != 1 || rest[0] != "extra" {
		t.Errorf("BuildLauncher() leftover args = %v, want [extra]", rest)
	}
}
