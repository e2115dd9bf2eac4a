package services

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parsing multipart form: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

func TestSaveKeepsBaseAndExtension(t *testing.T) {
	svc, err := NewMediaService(t.TempDir())
	if err != nil {
		t.Fatalf("NewMediaService: %v", err)
	}

	stored, err := svc.Save(fileHeader(t, "sunset.png", []byte("image-bytes")), MaxAvatarSize)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(stored, "sunset") {
		t.Errorf("stored name %q does not keep the original base", stored)
	}
	if !strings.HasSuffix(stored, ".png") {
		t.Errorf("stored name %q does not keep the original extension", stored)
	}
	if stored == "sunset.png" {
		t.Error("stored name has no random suffix")
	}

	data, err := os.ReadFile(filepath.Join(svc.Dir(), stored))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("stored content = %q", data)
	}
}

func TestSaveDistinctNamesForSameFile(t *testing.T) {
	svc, err := NewMediaService(t.TempDir())
	if err != nil {
		t.Fatalf("NewMediaService: %v", err)
	}

	a, err := svc.Save(fileHeader(t, "pic.jpg", []byte("a")), MaxAvatarSize)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, err := svc.Save(fileHeader(t, "pic.jpg", []byte("b")), MaxAvatarSize)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if a == b {
		t.Errorf("two saves of %q produced the same stored name %q", "pic.jpg", a)
	}
}

func TestSaveTooLarge(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewMediaService(dir)
	if err != nil {
		t.Fatalf("NewMediaService: %v", err)
	}

	_, err = svc.Save(fileHeader(t, "big.png", bytes.Repeat([]byte("x"), 600)), 500)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("Save error = %v, want ErrFileTooLarge", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("oversized save left %d files on disk", len(entries))
	}
}

func TestDelete(t *testing.T) {
	svc, err := NewMediaService(t.TempDir())
	if err != nil {
		t.Fatalf("NewMediaService: %v", err)
	}

	stored, err := svc.Save(fileHeader(t, "gone.png", []byte("x")), MaxAvatarSize)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := svc.Delete(stored); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(svc.Dir(), stored)); !os.IsNotExist(err) {
		t.Error("file still exists after Delete")
	}

	if err := svc.Delete(stored); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("second Delete error = %v, want ErrFileNotFound", err)
	}
}

func TestDeleteQuietlyNeverPanics(t *testing.T) {
	svc, err := NewMediaService(t.TempDir())
	if err != nil {
		t.Fatalf("NewMediaService: %v", err)
	}
	svc.DeleteQuietly("")
	svc.DeleteQuietly("no-such-file.png")
}
