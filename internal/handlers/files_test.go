package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"booking-server/internal/models"
)

type recordedFiles struct {
	created []models.File
}

func (f *recordedFiles) Create(_ context.Context, name, path string) (*models.File, error) {
	file := models.File{BaseModel: models.BaseModel{ID: uint(len(f.created) + 1)}, Name: name, Path: path}
	file.SetURL()
	f.created = append(f.created, file)
	return &file, nil
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	files := &recordedFiles{}
	h := NewFileHandler(files, dir, zerolog.Nop())
	r := newRouter(1)
	r.POST("/files", h.Store)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "Avatar.PNG")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("png-bytes"))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/files", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if len(files.created) != 1 {
		t.Fatalf("created %d files", len(files.created))
	}
	got := files.created[0]
	if got.Name != "Avatar.PNG" || !strings.HasSuffix(got.Path, ".png") || got.Path == "avatar.png" {
		t.Fatalf("file = %+v", got)
	}
	data, err := os.ReadFile(filepath.Join(dir, got.Path))
	if err != nil || string(data) != "png-bytes" {
		t.Fatalf("stored file: %q, %v", data, err)
	}
}

func TestFileStore_MissingFile(t *testing.T) {
	h := NewFileHandler(&recordedFiles{}, t.TempDir(), zerolog.Nop())
	r := newRouter(1)
	r.POST("/files", h.Store)

	if rec := do(r, http.MethodPost, "/files", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}
