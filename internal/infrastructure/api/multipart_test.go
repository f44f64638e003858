package api

import (
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseForm(t *testing.T, body io.Reader, contentType string) (map[string]string, map[string][]byte) {
	t.Helper()
	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	reader := multipart.NewReader(body, params["boundary"])

	fields := map[string]string{}
	files := map[string][]byte{}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(part)
		require.NoError(t, err)
		if part.FileName() != "" {
			files[part.FormName()+"/"+part.FileName()] = data
		} else {
			fields[part.FormName()] = string(data)
		}
	}
	return fields, files
}

func TestForm_ScalarFields(t *testing.T) {
	body, contentType, err := NewForm().
		Field("latitude", "-6.9").
		Field("pesan", "banjir").
		OptionalField("userId", "7").
		OptionalField("dinasId", "").
		Encode()
	require.NoError(t, err)

	fields, files := parseForm(t, body, contentType)
	assert.Equal(t, "-6.9", fields["latitude"])
	assert.Equal(t, "banjir", fields["pesan"])
	assert.Equal(t, "7", fields["userId"])
	_, present := fields["dinasId"]
	assert.False(t, present, "empty optional field must be omitted")
	assert.Empty(t, files)
}

func TestForm_FilePart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.bin")
	require.NoError(t, os.WriteFile(path, []byte("jpeg-bytes"), 0o600))

	body, contentType, err := NewForm().
		Field("status", "pending").
		File("foto", "foto.jpg", path).
		Encode()
	require.NoError(t, err)

	fields, files := parseForm(t, body, contentType)
	assert.Equal(t, "pending", fields["status"])
	assert.Equal(t, []byte("jpeg-bytes"), files["foto/foto.jpg"])
}

func TestForm_MissingFile(t *testing.T) {
	_, _, err := NewForm().File("foto", "foto.jpg", "/nonexistent/path").Encode()
	assert.Error(t, err)
}

func TestPhotoFileName(t *testing.T) {
	tests := []struct {
		mime     string
		expected string
	}{
		{"image/jpeg", "foto.jpg"},
		{"image/png", "foto.png"},
		{"image/webp", "foto.webp"},
		{"", "foto.jpg"},
		{"application/octet-stream", "foto.jpg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, photoFileName(tt.mime))
	}
}
