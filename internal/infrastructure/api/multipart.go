package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
)

// Form is a typed multipart/form-data builder. Scalar fields and the
// optional file part are declared by name once, which keeps the
// photo-optional branch of report submission a single variant instead of ad
// hoc part-list surgery.
type Form struct {
	fields []formField
	file   *formFile
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	fieldName string
	fileName  string
	path      string
}

// NewForm creates an empty form.
func NewForm() *Form {
	return &Form{}
}

// Field appends a scalar field.
func (f *Form) Field(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// OptionalField appends a scalar field only when value is non-empty.
func (f *Form) OptionalField(name, value string) *Form {
	if value == "" {
		return f
	}
	return f.Field(name, value)
}

// File attaches the single file part, read from path at encode time. The
// upload filename is derived by the caller from the asset's mime type.
func (f *Form) File(fieldName, fileName, path string) *Form {
	f.file = &formFile{fieldName: fieldName, fileName: fileName, path: path}
	return f
}

// Encode writes the multipart body and returns it with its content type.
func (f *Form) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %q: %w", field.name, err)
		}
	}

	if f.file != nil {
		src, err := os.Open(f.file.path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open upload file: %w", err)
		}
		defer src.Close()

		part, err := writer.CreateFormFile(f.file.fieldName, f.file.fileName)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := io.Copy(part, src); err != nil {
			return nil, "", fmt.Errorf("failed to copy upload file: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

// photoFileName derives the upload filename from the asset's mime type.
func photoFileName(mimeType string) string {
	switch mimeType {
	case "image/png":
		return "foto.png"
	case "image/webp":
		return "foto.webp"
	default:
		return "foto.jpg"
	}
}
