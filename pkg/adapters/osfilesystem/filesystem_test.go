package osfilesystem

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSystem_SettingsRoundTrip(t *testing.T) {
	fs := New()
	path := filepath.Join(t.TempDir(), "debug", "run-1", "settings.yaml")
	want := []byte("framerate: 30\nwidth: 640\n")

	if err := fs.WriteFile(path, want); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	got, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("read back %q, want %q", got, want)
	}
	if ok, _ := fs.Exists(filepath.Dir(path)); !ok {
		t.Error("expected parent directories to be created")
	}
}

func TestFileSystem_ReadMissing(t *testing.T) {
	_, err := New().ReadFile(filepath.Join(t.TempDir(), "out.mp4"))
	if !errors.Is(err, iofs.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestFileSystem_Exists(t *testing.T) {
	fs := New()
	dir := t.TempDir()
	video := filepath.Join(dir, "out.mp4")
	if err := os.WriteFile(video, []byte("ftyp"), 0644); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		path string
		want bool
	}{
		{video, true},
		{dir, true},
		{filepath.Join(dir, "missing.mp4"), false},
	}
	for _, tc := range cases {
		got, err := fs.Exists(tc.path)
		if err != nil {
			t.Fatalf("Exists(%s) failed: %v", tc.path, err)
		}
		if got != tc.want {
			t.Errorf("Exists(%s) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestFileSystem_MkdirAllAndRemove(t *testing.T) {
	fs := New()
	out := filepath.Join(t.TempDir(), "videos", "2024")

	if err := fs.MkdirAll(out); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := fs.MkdirAll(out); err != nil {
		t.Errorf("MkdirAll on an existing directory failed: %v", err)
	}
	if err := fs.Remove(out); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if ok, _ := fs.Exists(out); ok {
		t.Error("expected directory to be removed")
	}
}

func TestFileSystem_ListFiles(t *testing.T) {
	fs := New()
	dir := t.TempDir()

	for _, name := range []string{"frame_002.png", "frame_001.png", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "thumbs"), 0755); err != nil {
		t.Fatal(err)
	}

	paths, err := fs.ListFiles(dir)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	want := []string{
		filepath.Join(dir, "frame_001.png"),
		filepath.Join(dir, "frame_002.png"),
		filepath.Join(dir, "notes.txt"),
	}
	if len(paths) != len(want) {
		t.Fatalf("got %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %s, want %s", i, paths[i], want[i])
		}
	}

	if _, err := fs.ListFiles(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestFileSystem_WriteFileReplacesWithoutLeftovers(t *testing.T) {
	fs := New()
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.md")

	for _, content := range []string{"first", "second"} {
		if err := fs.WriteFile(path, []byte(content)); err != nil {
			t.Fatalf("WriteFile(%q) failed: %v", content, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("expected replaced content, got %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("expected mode 0644, got %v", info.Mode().Perm())
	}
}
