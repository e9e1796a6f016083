package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestLocal_Exists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	fsys := NewLocal()
	ctx := context.Background()

	for _, tc := range []struct {
		name string
		path string
		want bool
	}{
		{"existing file", file, true},
		{"existing dir", dir, true},
		{"missing", filepath.Join(dir, "nope"), false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := fsys.Exists(ctx, tc.path)
			if err != nil {
				t.Fatalf("Exists() error: %v", err)
			}
			if got != tc.want {
				t.Errorf("Exists(%s) = %v, want %v", tc.path, got, tc.want)
			}
		})
	}
}

func TestLocal_IsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	fsys := NewLocal()
	ctx := context.Background()

	if ok, _ := fsys.IsDir(ctx, dir); !ok {
		t.Error("IsDir(dir) = false")
	}
	if ok, _ := fsys.IsDir(ctx, file); ok {
		t.Error("IsDir(file) = true")
	}
	if ok, _ := fsys.IsDir(ctx, filepath.Join(dir, "nope")); ok {
		t.Error("IsDir(missing) = true")
	}
}

func TestLocal_Glob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.jpg", "b.jpg", "c.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	fsys := NewLocal()
	matches, err := fsys.Glob(context.Background(), filepath.Join(dir, "*.jpg"))
	if err != nil {
		t.Fatalf("Glob() error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2: %v", len(matches), matches)
	}
}

func TestLocal_GlobMissingDir(t *testing.T) {
	fsys := NewLocal()
	matches, err := fsys.Glob(context.Background(), filepath.Join(t.TempDir(), "nope", "*.jpg"))
	if err != nil {
		t.Fatalf("Glob() error: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("got %d matches from a missing dir, want 0", len(matches))
	}
}

func TestLocal_List(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	fsys := NewLocal()
	names, err := fsys.List(context.Background(), dir)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	sort.Strings(names)
	if len(names) != 2 || names[0] != "a.txt" || names[1] != "sub" {
		t.Errorf("List() = %v, want [a.txt sub]", names)
	}
}

func TestLocal_SizeRenameOpenCreate(t *testing.T) {
	dir := t.TempDir()
	fsys := NewLocal()
	ctx := context.Background()

	w, err := fsys.Create(ctx, filepath.Join(dir, "a.txt"))
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	size, err := fsys.Size(ctx, filepath.Join(dir, "a.txt"))
	if err != nil {
		t.Fatalf("Size() error: %v", err)
	}
	if size != 5 {
		t.Errorf("Size() = %d, want 5", size)
	}

	if err := fsys.Rename(ctx, filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")); err != nil {
		t.Fatalf("Rename() error: %v", err)
	}

	r, err := fsys.Open(ctx, filepath.Join(dir, "b.txt"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("read %q, want %q", data, "hello")
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name string
		elem []string
		want string
	}{
		{"local", []string{"a", "b", "c.jpg"}, filepath.Join("a", "b", "c.jpg")},
		{"gs url", []string{"gs://bucket", "data", "x.jpg"}, "gs://bucket/data/x.jpg"},
		{"gs url with path", []string{"gs://bucket/data", "x.jpg"}, "gs://bucket/data/x.jpg"},
		{"empty", nil, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Join(tc.elem...); got != tc.want {
				t.Errorf("Join(%v) = %q, want %q", tc.elem, got, tc.want)
			}
		})
	}
}

func TestParseGS(t *testing.T) {
	bucket, object, err := parseGS("gs://my-bucket/data/file.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if bucket != "my-bucket" || object != "data/file.jpg" {
		t.Errorf("parseGS = (%q, %q)", bucket, object)
	}

	if _, _, err := parseGS("/local/path"); err == nil {
		t.Error("parseGS should reject non-gs paths")
	}
	if _, _, err := parseGS("gs://"); err == nil {
		t.Error("parseGS should reject a missing bucket")
	}
}

func TestFixedPrefix(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"data/train/*.jpg", "data/train/"},
		{"data/**/*.png", "data/"},
		{"data/exact.jpg", "data/exact.jpg"},
	}
	for _, tc := range tests {
		if got := fixedPrefix(tc.pattern); got != tc.want {
			t.Errorf("fixedPrefix(%q) = %q, want %q", tc.pattern, got, tc.want)
		}
	}
}
