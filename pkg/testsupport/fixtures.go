package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-quasargen/pkg/openapi"
)

// LoadDocument reads a fixture and builds an openapi.Document using a file
// source. Failures abort the test.
func LoadDocument(t *testing.T, path string) pkgopenapi.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T so
// fixtures can be wired from setup functions.
func LoadDocumentFromPath(path string) (pkgopenapi.Document, error) {
	if path == "" {
		return pkgopenapi.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), data)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MustLoadJSON decodes a JSON golden file into T.
func MustLoadJSON[T any](t *testing.T, path string) T {
	t.Helper()

	var out T
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load golden: %v", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	return out
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	WriteMaybeGolden(t, path, payload)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// BookResource returns a small resource exercising every field and
// parameter shape the generator distinguishes.
func BookResource() pkgopenapi.Resource {
	res := pkgopenapi.NewResource("books", "Book", pkgopenapi.StaticParameters([]pkgopenapi.Parameter{
		{Variable: "page", Type: pkgopenapi.FieldTypeInteger},
		{Variable: "title", Type: pkgopenapi.FieldTypeString},
		{Variable: "author", Type: pkgopenapi.FieldTypeString},
		{Variable: "author[]", Type: pkgopenapi.FieldTypeString},
		{Variable: "tags[]", Type: pkgopenapi.FieldTypeString},
		{Variable: "order[title]", Type: pkgopenapi.FieldTypeString},
		{Variable: "exists[deletedAt]", Type: pkgopenapi.FieldTypeBoolean},
	}))
	res.Path = "/books"
	res.WritableFields = []pkgopenapi.Field{
		{Name: "title", Type: pkgopenapi.FieldTypeString, Required: true},
		{Name: "author", Type: pkgopenapi.FieldTypeString},
		{Name: "tags", Type: pkgopenapi.FieldTypeArray},
		{Name: "publisher", Type: pkgopenapi.FieldTypeString, Reference: true, Range: "Publisher", MaxCardinality: pkgopenapi.Cardinality(1)},
		{Name: "reviews", Type: pkgopenapi.FieldTypeArray, Reference: true, Range: "Review"},
		{Name: "publishedAt", Type: pkgopenapi.FieldTypeDateTime},
	}
	res.ReadableFields = []pkgopenapi.Field{
		{Name: "id", Type: pkgopenapi.FieldTypeInteger, ReadOnly: true},
		{Name: "title", Type: pkgopenapi.FieldTypeString, Required: true},
		{Name: "author", Type: pkgopenapi.FieldTypeString},
	}
	return res
}
