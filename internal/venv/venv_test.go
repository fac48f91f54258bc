package venv

import (
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
)

func TestCreateArgs(t *testing.T) {
	tests := []struct {
		name string
		opts CreateOptions
		want []string
	}{
		{
			name: "bare",
			opts: CreateOptions{},
			want: []string{"-m", "venv", "/env/venv"},
		},
		{
			name: "system site packages",
			opts: CreateOptions{SystemSitePackages: true},
			want: []string{"-m", "venv", "--system-site-packages", "/env/venv"},
		},
		{
			name: "prompt",
			opts: CreateOptions{Prompt: "chimeenv"},
			want: []string{"-m", "venv", "--prompt", "chimeenv", "/env/venv"},
		},
		{
			name: "everything",
			opts: CreateOptions{SystemSitePackages: true, Prompt: "chimeenv"},
			want: []string{"-m", "venv", "--system-site-packages", "--prompt", "chimeenv", "/env/venv"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := createArgs("/env/venv", tt.opts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("createArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()

	e := New(filepath.Join(dir, "venv"))
	if e.Exists() {
		t.Error("Exists() = true before creation")
	}

	e = New(dir)
	if !e.Exists() {
		t.Error("Exists() = false for existing directory")
	}
}

func TestPythonPath(t *testing.T) {
	e := New("/env/venv")
	got := e.PythonPath()

	sub := "bin"
	if runtime.GOOS == "windows" {
		sub = "Scripts"
	}
	want := filepath.Join("/env/venv", sub, "python")
	if got != want {
		t.Errorf("PythonPath() = %q, want %q", got, want)
	}
}

func TestParseFreeze(t *testing.T) {
	output := strings.Join([]string{
		"numpy==1.24.4",
		"h5py==3.9.0",
		"caput @ file:///code/caput",
		"-e git+ssh://git@github.com/radiocosmology/draco@abc123#egg=draco",
		"",
	}, "\n")

	got := parseFreeze([]byte(output))
	want := map[string]bool{
		"numpy": true,
		"h5py":  true,
		"caput @ file:///code/caput": true,
		"-e git+ssh://git@github.com/radiocosmology/draco@abc123#egg=draco": true,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseFreeze() = %v, want %v", got, want)
	}
}

func TestParseFreezeEmpty(t *testing.T) {
	if got := parseFreeze(nil); len(got) != 0 {
		t.Errorf("parseFreeze(nil) = %v, want empty", got)
	}
}
