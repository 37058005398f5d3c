package figma

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileKey(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "https://www.figma.com/file/AbCdEf123456/Landing-Page", want: "AbCdEf123456"},
		{in: "https://www.figma.com/design/ZyXw987654321/App?node-id=0-1", want: "ZyXw987654321"},
		{in: "  AbCdEf123456 ", want: "AbCdEf123456"},
		{in: "https://example.com/not-figma", wantErr: true},
		{in: "short", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFileKey(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidFileKey, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestImportFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "figd_token", r.Header.Get("X-Figma-Token"))
		switch r.URL.Path {
		case "/v1/files/KEY1234567890":
			assert.Equal(t, "2", r.URL.Query().Get("depth"))
			w.Write([]byte(`{
				"name": "Banking App",
				"thumbnailUrl": "https://thumb/1.png",
				"document": {"children": [{"id": "0:1", "name": "Screens", "type": "CANVAS", "children": [
					{"id": "1:2", "name": "Note", "type": "TEXT"},
					{"id": "1:3", "name": "Login", "type": "FRAME"},
					{"id": "1:4", "name": "Dashboard", "type": "FRAME"}
				]}]}
			}`))
		case "/v1/images/KEY1234567890":
			assert.Equal(t, "1:3", r.URL.Query().Get("ids"))
			w.Write([]byte(`{"err": null, "images": {"1:3": "https://render/1-3.png"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	design, err := NewClient(srv.URL).ImportFile(context.Background(), "figd_token", "KEY1234567890")
	require.NoError(t, err)
	assert.Equal(t, "Banking App", design.Name)
	assert.Equal(t, "Screens", design.PageName)
	assert.Equal(t, []string{"Login", "Dashboard"}, design.Frames)
	assert.Equal(t, "https://render/1-3.png", design.ImageURL)
}

func TestImportFile_NoFrames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "Empty", "document": {"children": [{"id": "0:1", "name": "Page", "children": []}]}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ImportFile(context.Background(), "t", "KEY1234567890")
	assert.ErrorIs(t, err, ErrNoFrames)
}

func TestImportFile_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"status": 403, "err": "Invalid token"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ImportFile(context.Background(), "bad", "KEY1234567890")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
