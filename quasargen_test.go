package quasargen

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	pkgopenapi "github.com/goliatone/go-quasargen/pkg/openapi"
	"github.com/goliatone/go-quasargen/pkg/scaffold"
)

func TestEmbeddedTemplatesCoverCatalog(t *testing.T) {
	files := EmbeddedTemplates()
	for _, id := range scaffold.TemplateIDs() {
		if _, err := fs.Stat(files, id+".tpl"); err != nil {
			t.Errorf("embedded template %s missing: %v", id, err)
		}
	}
}

func TestGenerateFromFile(t *testing.T) {
	out := t.TempDir()
	source := pkgopenapi.SourceFromFile(filepath.Join("internal", "openapi", "parser", "testdata", "bookstore.json"))

	result, err := Generate(context.Background(), source, out, []string{"reviews"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Resources) != 1 || result.Resources[0].Err != nil {
		t.Fatalf("unexpected result %+v", result.Resources)
	}
	if _, err := fs.Stat(os.DirFS(out), "components/review/ReviewShow.vue"); err != nil {
		t.Fatalf("expected review screens: %v", err)
	}
}

func TestLoaderParserRoundTrip(t *testing.T) {
	ctx := context.Background()
	doc, err := NewLoader().Load(ctx, pkgopenapi.SourceFromFile(filepath.Join("internal", "openapi", "parser", "testdata", "bookstore.json")))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	api, err := NewParser().API(ctx, doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := api.Resource("books"); !ok {
		t.Fatalf("books resource missing")
	}
}
