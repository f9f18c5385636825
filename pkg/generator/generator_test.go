package generator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-quasargen/pkg/emit"
	pkgopenapi "github.com/goliatone/go-quasargen/pkg/openapi"
	"github.com/goliatone/go-quasargen/pkg/scaffold"
	"github.com/goliatone/go-quasargen/pkg/testsupport"
)

func bookAPI(extra ...pkgopenapi.Resource) *pkgopenapi.API {
	api := pkgopenapi.API{
		Title:      "Bookstore",
		Entrypoint: "https://api.example.com",
		Resources:  append([]pkgopenapi.Resource{testsupport.BookResource()}, extra...),
	}
	return &api
}

func failingResource(name string) pkgopenapi.Resource {
	return pkgopenapi.NewResource(name, strings.ToUpper(name[:1])+name[1:], func(context.Context) ([]pkgopenapi.Parameter, error) {
		return nil, errors.New("metadata unavailable")
	})
}

func fileExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	return err == nil
}

func TestGenerate_WritesResourceFiles(t *testing.T) {
	out := t.TempDir()

	result, err := New().Generate(context.Background(), Request{API: bookAPI(), OutputDir: out})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if failed := result.Failed(); len(failed) != 0 {
		t.Fatalf("unexpected failures: %v", failed[0].Err)
	}

	for _, rel := range []string{
		"components/book/BookList.vue",
		"components/book/BookFilter.vue",
		"pages/book/PageList.vue",
		"router/book.ts",
		"utils/config.ts",
		"i18n/en-US/book.ts",
	} {
		if !fileExists(t, filepath.Join(out, rel)) {
			t.Errorf("expected %s to be generated", rel)
		}
	}

	config, err := os.ReadFile(filepath.Join(out, "utils", "config.ts"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(config), "https://api.example.com") {
		t.Fatalf("config does not carry the entrypoint:\n%s", config)
	}

	written, skipped, failed := result.Totals()
	if written == 0 || skipped != 0 || failed != 0 {
		t.Fatalf("unexpected totals written=%d skipped=%d failed=%d", written, skipped, failed)
	}
}

func TestGenerate_SecondRunKeepsSharedFiles(t *testing.T) {
	out := t.TempDir()
	gen := New()

	if _, err := gen.Generate(context.Background(), Request{API: bookAPI(), OutputDir: out}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	configPath := filepath.Join(out, "utils", "config.ts")
	if err := os.WriteFile(configPath, []byte("// customised\n"), 0o644); err != nil {
		t.Fatalf("customise config: %v", err)
	}

	result, err := gen.Generate(context.Background(), Request{API: bookAPI(), OutputDir: out})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	report := result.Resources[0].Report
	if report.Count(emit.OutcomeSkipped) == 0 || report.Count(emit.OutcomeOverwritten) == 0 {
		t.Fatalf("expected skipped shared files and overwritten resource files, got %+v", report.Files)
	}
	data, _ := os.ReadFile(configPath)
	if string(data) != "// customised\n" {
		t.Fatalf("shared config overwritten without force")
	}

	if _, err := New(WithForce(true)).Generate(context.Background(), Request{API: bookAPI(), OutputDir: out}); err != nil {
		t.Fatalf("forced run: %v", err)
	}
	data, _ = os.ReadFile(configPath)
	if string(data) == "// customised\n" {
		t.Fatalf("forced run kept the customised config")
	}
}

func TestGenerate_MetadataFailureIsLocal(t *testing.T) {
	var logs bytes.Buffer
	logger := log.New(&logs)
	out := t.TempDir()

	var mu sync.Mutex
	var generated []string
	gen := New(
		WithLogger(logger),
		WithConcurrency(2),
		OnResourceGenerated(func(res ResourceResult) {
			mu.Lock()
			defer mu.Unlock()
			generated = append(generated, res.LowercaseName)
		}),
	)

	result, err := gen.Generate(context.Background(), Request{
		API:       bookAPI(failingResource("authors")),
		OutputDir: out,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	failed := result.Failed()
	if len(failed) != 1 || failed[0].Resource != "authors" {
		t.Fatalf("expected authors to fail, got %+v", failed)
	}
	if diff := cmp.Diff([]string{"book"}, generated); diff != "" {
		t.Fatalf("hook calls mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(logs.String(), "metadata unavailable") {
		t.Fatalf("failure not logged:\n%s", logs.String())
	}
	if fileExists(t, filepath.Join(out, "components", "authors")) {
		t.Fatalf("failed resource must not write files")
	}
}

func TestGenerate_RejectsUnsafeResourceNames(t *testing.T) {
	out := t.TempDir()

	dots := pkgopenapi.NewResource("..", "..", pkgopenapi.StaticParameters(nil))
	result, err := New().Generate(context.Background(), Request{API: bookAPI(dots), OutputDir: out})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	failed := result.Failed()
	if len(failed) != 1 || !errors.Is(failed[0].Err, scaffold.ErrInvalidResourceName) {
		t.Fatalf("expected invalid name failure, got %+v", failed)
	}
	if !fileExists(t, filepath.Join(out, "components", "book", "BookList.vue")) {
		t.Fatalf("valid resource not generated")
	}
	if fileExists(t, filepath.Join(out, "PageList.vue")) || fileExists(t, filepath.Join(out, "pages", "PageList.vue")) {
		t.Fatalf("unsafe resource wrote into a parent directory")
	}
}

func TestGenerate_DryRunWritesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "src")

	result, err := New(WithDryRun(true)).Generate(context.Background(), Request{API: bookAPI(), OutputDir: out})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if fileExists(t, out) {
		t.Fatalf("dry run created the output directory")
	}
	report := result.Resources[0].Report
	if report.Count(emit.OutcomePlanned) != len(result.Resources[0].Plan.Files) {
		t.Fatalf("expected every file planned, got %+v", report.Files)
	}
}

func TestGenerate_ResourceSelection(t *testing.T) {
	api := bookAPI(failingResource("authors"))
	gen := New(WithDryRun(true))

	result, err := gen.Generate(context.Background(), Request{API: api, Resources: []string{"Book"}, OutputDir: "src"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Resources) != 1 || result.Resources[0].Resource != "books" {
		t.Fatalf("expected only books, got %+v", result.Resources)
	}

	_, err = gen.Generate(context.Background(), Request{API: api, Resources: []string{"publishers"}, OutputDir: "src"})
	if !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound, got %v", err)
	}

	_, err = gen.Generate(context.Background(), Request{API: &pkgopenapi.API{}, OutputDir: "src"})
	if !errors.Is(err, ErrNoResources) {
		t.Fatalf("expected ErrNoResources, got %v", err)
	}
}

func TestGenerate_FromDocument(t *testing.T) {
	doc := testsupport.LoadDocument(t, filepath.Join("..", "..", "internal", "openapi", "parser", "testdata", "bookstore.json"))

	result, err := New(WithDryRun(true)).Generate(context.Background(), Request{Document: &doc, OutputDir: "src"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Entrypoint != "https://api.example.com" {
		t.Fatalf("entrypoint = %q", result.Entrypoint)
	}
	var names []string
	for _, res := range result.Resources {
		if res.Err != nil {
			t.Fatalf("%s failed: %v", res.Resource, res.Err)
		}
		names = append(names, res.Resource)
	}
	if diff := cmp.Diff([]string{"books", "reviews"}, names); diff != "" {
		t.Fatalf("resources mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_RequiresOutputDir(t *testing.T) {
	if _, err := New().Generate(context.Background(), Request{API: bookAPI()}); err == nil {
		t.Fatalf("expected error without output directory")
	}
}

func TestGenerate_MissingTemplatesFailBeforeWriting(t *testing.T) {
	out := t.TempDir()
	gen := New(WithRenderer(emptyRenderer{}))

	if _, err := gen.Generate(context.Background(), Request{API: bookAPI(), OutputDir: out}); err == nil {
		t.Fatalf("expected verification error")
	}
	entries, _ := os.ReadDir(out)
	if len(entries) != 0 {
		t.Fatalf("nothing should be written, found %d entries", len(entries))
	}
}

type emptyRenderer struct{}

func (emptyRenderer) Render(string, any) ([]byte, error) { return nil, errors.New("no templates") }
func (emptyRenderer) Verify() error                      { return errors.New("no templates") }

func TestResultTotals(t *testing.T) {
	result := Result{Resources: []ResourceResult{
		{Report: emit.Report{Files: []emit.FileResult{{Outcome: emit.OutcomeCreated}, {Outcome: emit.OutcomeSkipped}}}},
		{Report: emit.Report{Files: []emit.FileResult{{Outcome: emit.OutcomeOverwritten}, {Outcome: emit.OutcomePlanned}}}},
		{Err: errors.New("boom")},
	}}

	written, skipped, failed := result.Totals()
	if written != 3 || skipped != 1 || failed != 1 {
		t.Fatalf("totals = %d %d %d", written, skipped, failed)
	}
}
