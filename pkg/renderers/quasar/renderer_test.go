package quasar_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-quasargen/pkg/renderers/quasar"
	"github.com/goliatone/go-quasargen/pkg/scaffold"
	"github.com/goliatone/go-quasargen/pkg/testsupport"
)

func bookPlan(t *testing.T) scaffold.FilePlan {
	t.Helper()

	res := testsupport.BookResource()
	raw, err := res.Parameters(testsupport.Context())
	if err != nil {
		t.Fatalf("parameters: %v", err)
	}
	params, err := scaffold.ClassifyParameters(raw)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	fields := scaffold.NormalizeFields(res.WritableFields, res.ReadableFields)
	ctx := scaffold.AssembleContext(res, fields, params, scaffold.CommonLabels())
	return scaffold.BuildFilePlan(ctx, "src", scaffold.WithEntrypoint("https://api.example.com"))
}

func renderPlan(t *testing.T, renderer *quasar.Renderer) map[string]string {
	t.Helper()

	out := make(map[string]string)
	for _, entry := range bookPlan(t).Files {
		payload, err := renderer.Render(entry.TemplateID, entry.Data)
		if err != nil {
			t.Fatalf("render %s: %v", entry.TemplateID, err)
		}
		out[filepath.ToSlash(entry.OutputPath)] = string(payload)
	}
	return out
}

func TestRenderer_RendersWholeCatalog(t *testing.T) {
	renderer, err := quasar.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if err := renderer.Verify(); err != nil {
		t.Fatalf("verify: %v", err)
	}

	files := renderPlan(t, renderer)
	if len(files) != len(scaffold.TemplateIDs()) {
		t.Fatalf("rendered %d files, want %d", len(files), len(scaffold.TemplateIDs()))
	}
	for path, content := range files {
		if strings.TrimSpace(content) == "" {
			t.Fatalf("%s rendered empty", path)
		}
		if strings.Contains(content, "{%") || strings.Contains(content, "{{") {
			t.Fatalf("%s contains unrendered template markup", path)
		}
	}

	checks := map[string][]string{
		"src/utils/config.ts":                {"export const ENTRYPOINT = 'https://api.example.com';"},
		"src/types/collection.ts":            {"'hydra:member'?: T[];"},
		"src/stores/book/list.ts":            {"export const useBookListStore = defineStore('bookList'", "api('books', { params })"},
		"src/components/book/BookFilter.vue": {"values['exists[deletedAt]']", "values['author']", "multiple"},
		"src/components/book/BookList.vue":   {"useBreadcrumb('Book', 'Books')", "name: 'title',\n    label: t('book.title'),\n    field: 'title',\n    align: 'left' as const,\n    sortable: true,", "formatDate(value)", "<BookFilter v-model=\"filters\" />"},
		"src/components/book/BookForm.vue":   {"v-model=\"item.reviews\"", "type=\"datetime-local\"", "import CommonFormRepeater"},
		"src/types/book.ts":                  {"export interface Book extends Item {", "  title: string;", "  reviews?: string[];", "  publisher?: string;"},
		"src/i18n/en-US/common.ts":           {"  submit: 'Submit',", "  confirmDelete: 'Are you sure you want to delete this item?',"},
	}
	for path, snippets := range checks {
		content, ok := files[path]
		if !ok {
			t.Fatalf("%s not rendered", path)
		}
		for _, snippet := range snippets {
			if !strings.Contains(content, snippet) {
				t.Fatalf("%s missing %q\n%s", path, snippet, content)
			}
		}
	}

	if strings.Contains(files["src/components/book/BookForm.vue"], "item.id\"") {
		t.Fatalf("read-only id rendered as form input")
	}
	if strings.Contains(files["src/components/book/BookFilter.vue"], "tags[]") {
		t.Fatalf("unjoined tags[] rendered as a filter")
	}
}

func TestRenderer_Goldens(t *testing.T) {
	renderer, err := quasar.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	files := renderPlan(t, renderer)

	goldens := map[string]string{
		"src/router/book.ts":     filepath.Join("testdata", "router.golden"),
		"src/i18n/en-US/book.ts": filepath.Join("testdata", "i18n_book.golden"),
	}
	for path, golden := range goldens {
		got := files[path]
		if testsupport.WriteMaybeGolden(t, golden, []byte(got)) {
			continue
		}
		want := testsupport.MustReadGoldenString(t, golden)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", path, diff)
		}
	}
}

func TestRenderer_TemplatesDirOverrides(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "quasar", "router")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(target, "foo.ts.tpl"), []byte("// custom {{ lc }}\n"), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	renderer, err := quasar.New(quasar.WithTemplatesDir(dir))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if err := renderer.Verify(); err != nil {
		t.Fatalf("verify: %v", err)
	}

	files := renderPlan(t, renderer)
	if got := files["src/router/book.ts"]; got != "// custom book\n" {
		t.Fatalf("override not applied: %q", got)
	}
	if !strings.Contains(files["src/stores/book/show.ts"], "useBookShowStore") {
		t.Fatalf("embedded templates not used for other entries")
	}
}

func TestRenderer_VerifyReportsMissing(t *testing.T) {
	renderer, err := quasar.New(quasar.WithTemplatesFS(fstest.MapFS{
		"quasar/router/foo.ts.tpl": &fstest.MapFile{Data: []byte("routes")},
	}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	err = renderer.Verify()
	if !errors.Is(err, quasar.ErrMissingTemplates) {
		t.Fatalf("expected ErrMissingTemplates, got %v", err)
	}
	if strings.Contains(err.Error(), "quasar/router/foo.ts,") {
		t.Fatalf("present template reported missing: %v", err)
	}
}
