package discovery

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/ziadkadry99/dataprep/internal/storage"
)

// fixtureDir returns the absolute path to the testdata/dataset directory.
func fixtureDir(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("unable to determine test file location")
	}
	root := filepath.Join(filepath.Dir(filename), "..", "..", "testdata", "dataset")
	abs, err := filepath.Abs(root)
	if err != nil {
		t.Fatalf("resolve testdata path: %v", err)
	}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		t.Fatalf("testdata dir does not exist: %s", abs)
	}
	return abs
}

func TestByDirectory_Fixture(t *testing.T) {
	root := fixtureDir(t)

	ix := New(storage.NewLocal())
	res, err := ix.ByDirectory(context.Background(), root, []string{"cat", "dog"}, Options{})
	if err != nil {
		t.Fatalf("ByDirectory() error: %v", err)
	}

	if res.Len() != 3 {
		t.Fatalf("got %d records, want 3", res.Len())
	}
	if !reflect.DeepEqual(res.Labels, []int{0, 0, 1}) {
		t.Errorf("Labels = %v, want [0 0 1]", res.Labels)
	}
}

func TestByManifest_Fixture(t *testing.T) {
	root := fixtureDir(t)

	ix := New(storage.NewLocal())
	res, err := ix.ByManifest(context.Background(), root, filepath.Join(root, "labels.csv"), Options{})
	if err != nil {
		t.Fatalf("ByManifest() error: %v", err)
	}

	if !reflect.DeepEqual([]string(res.LabelSet), []string{"cat", "dog"}) {
		t.Errorf("LabelSet = %v, want [cat dog]", res.LabelSet)
	}
	if !reflect.DeepEqual(res.Labels, []int{1, 0, 0}) {
		t.Errorf("Labels = %v, want [1 0 0]", res.Labels)
	}
	// Manifest rows resolve to root/<id>.jpg whether or not the file exists;
	// discovery does not stat them.
	if res.Paths[0] != filepath.Join(root, "1.jpg") {
		t.Errorf("path[0] = %q", res.Paths[0])
	}
}
