package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestNoDirListing(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "basket.jpg"), []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Mounted exactly as the server mounts the upload directory.
	h := http.StripPrefix("/uploads/", NoDirListing(http.FileServer(http.Dir(dir))))

	tests := []struct {
		path     string
		wantCode int
	}{
		{"/uploads/basket.jpg", http.StatusOK},
		{"/uploads/", http.StatusNotFound},
		{"/uploads/sub/", http.StatusNotFound},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if w.Code != tt.wantCode {
			t.Errorf("GET %s = %d, want %d", tt.path, w.Code, tt.wantCode)
		}
	}
}
