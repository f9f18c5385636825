package openapi

import (
	"context"
	"errors"
	"testing"
)

func TestDocumentLooksLikeOpenAPI(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "json openapi", raw: `{"openapi":"3.1.0","paths":{}}`, want: true},
		{name: "json swagger", raw: `{"swagger":"2.0"}`, want: true},
		{name: "yaml openapi", raw: "openapi: 3.0.3\ninfo:\n  title: Bookstore\n", want: true},
		{name: "json without marker", raw: `{"info":{"title":"openapi: nope"}}`, want: false},
		{name: "yaml marker nested", raw: "info:\n  openapi: 3.0.3\n", want: false},
		{name: "not a document", raw: "just text", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := MustNewDocument(SourceFromFile("doc"), []byte(tt.raw))
			if got := doc.LooksLikeOpenAPI(); got != tt.want {
				t.Fatalf("LooksLikeOpenAPI() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewDocumentCopiesPayload(t *testing.T) {
	raw := []byte(`{"openapi":"3.1.0"}`)
	doc := MustNewDocument(SourceFromFile("doc.json"), raw)
	raw[0] = 'x'

	if got := doc.Raw()[0]; got != '{' {
		t.Fatalf("document aliases caller buffer")
	}
	if _, err := NewDocument(nil, raw); err == nil {
		t.Fatalf("expected error without source")
	}
	if _, err := NewDocument(SourceFromFile("doc.json"), nil); err == nil {
		t.Fatalf("expected error without payload")
	}
}

func TestParseSource(t *testing.T) {
	src, err := ParseSource(" https://demo.api-platform.com/docs.jsonopenapi ")
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if src.Kind() != SourceKindURL || src.Location() != "https://demo.api-platform.com/docs.jsonopenapi" {
		t.Fatalf("unexpected source %s %s", src.Kind(), src.Location())
	}

	src, err = ParseSource("openapi.yaml")
	if err != nil {
		t.Fatalf("parse file: %v", err)
	}
	if src.Kind() != SourceKindFile {
		t.Fatalf("expected file source, got %s", src.Kind())
	}

	if _, err := ParseSource("  "); err == nil {
		t.Fatalf("expected error for empty location")
	}
}

func TestResourceParameters(t *testing.T) {
	res := NewResource("books", "Book", StaticParameters([]Parameter{{Variable: "title"}}))

	params, err := res.Parameters(context.Background())
	if err != nil {
		t.Fatalf("parameters: %v", err)
	}
	params[0].Variable = "changed"
	again, _ := res.Parameters(context.Background())
	if again[0].Variable != "title" {
		t.Fatalf("static parameters leaked a mutable slice")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := res.Parameters(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	empty, err := NewResource("tags", "Tag", nil).Parameters(context.Background())
	if err != nil || empty != nil {
		t.Fatalf("expected no parameters, got %v %v", empty, err)
	}
}

func TestAPIResourceLookup(t *testing.T) {
	api := API{Resources: []Resource{NewResource("books", "Book", nil)}}

	if _, ok := api.Resource(" BOOK "); !ok {
		t.Fatalf("expected title lookup to match")
	}
	if _, ok := api.Resource("reviews"); ok {
		t.Fatalf("unexpected match")
	}
}
