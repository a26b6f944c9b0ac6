package gallery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestInspect_Complete(t *testing.T) {
	dir := t.TempDir()
	if _, err := New(&fakeDownloader{}, WithLogger(quietLogger())).Materialize(context.Background(), testURLs(3), dir); err != nil {
		t.Fatal(err)
	}

	in, err := Inspect(dir)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if len(in.Images) != 3 {
		t.Errorf("len(Images) = %d, want 3", len(in.Images))
	}
	if !in.Complete() {
		t.Errorf("Missing = %v, want none", in.Missing)
	}
}

func TestInspect_Missing(t *testing.T) {
	dir := t.TempDir()
	urls := testURLs(3)
	d := &fakeDownloader{failures: map[string]error{urls[2]: errors.New("boom")}}
	if _, err := New(d, WithLogger(quietLogger())).Materialize(context.Background(), urls, dir); err != nil {
		t.Fatal(err)
	}

	in, err := Inspect(dir)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if in.Complete() || len(in.Missing) != 1 || in.Missing[0] != "img2.jpg" {
		t.Errorf("Missing = %v, want [img2.jpg]", in.Missing)
	}
}

func TestInspect_RemoteImagesNotChecked(t *testing.T) {
	dir := t.TempDir()
	page := `<html><body><img src="http://example.test/a.jpg"><img src="local.jpg"><img></body></html>`
	if err := os.WriteFile(filepath.Join(dir, IndexFile), []byte(page), 0644); err != nil {
		t.Fatal(err)
	}

	in, err := Inspect(dir)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if len(in.Images) != 2 {
		t.Errorf("Images = %v, want 2", in.Images)
	}
	if len(in.Remote) != 1 {
		t.Errorf("Remote = %v, want 1", in.Remote)
	}
	if len(in.Missing) != 1 || in.Missing[0] != "local.jpg" {
		t.Errorf("Missing = %v, want [local.jpg]", in.Missing)
	}
}

func TestInspect_NoIndex(t *testing.T) {
	_, err := Inspect(t.TempDir())
	var fsErr *FilesystemError
	if !errors.As(err, &fsErr) {
		t.Fatalf("Inspect() error = %v, want *FilesystemError", err)
	}
}
