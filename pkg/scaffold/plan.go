package scaffold

import (
	"path/filepath"
	"strings"
)

// DirEntry is a directory to create before any file is written. Shared
// directories are common to every resource and may already exist.
type DirEntry struct {
	Path   string
	Shared bool
}

// FileEntry asks the renderer to render TemplateID with Data into
// OutputPath. Entries without Overwrite must leave existing files untouched.
type FileEntry struct {
	TemplateID string
	OutputPath string
	Data       any
	Overwrite  bool
}

// FilePlan lists what a single resource generation writes. Directories are
// always applied before Files.
type FilePlan struct {
	Resource    string
	Directories []DirEntry
	Files       []FileEntry
}

// ConfigData feeds the API configuration template.
type ConfigData struct {
	Entrypoint string `json:"entrypoint"`
}

// TranslationData feeds the translation templates. Labels are ordered so
// generated files are stable.
type TranslationData struct {
	Labels []Label `json:"labels"`
}

type planConfig struct {
	entrypoint string
	force      bool
}

// PlanOption customises BuildFilePlan.
type PlanOption func(*planConfig)

// WithEntrypoint sets the API URL written into the generated config.
func WithEntrypoint(url string) PlanOption {
	return func(cfg *planConfig) {
		cfg.entrypoint = url
	}
}

// WithForce makes every entry overwrite existing files.
func WithForce(force bool) PlanOption {
	return func(cfg *planConfig) {
		cfg.force = force
	}
}

// BuildFilePlan decides which catalog templates a resource renders and
// where. Shared files, the config and both translation files are created
// only when missing; resource files always overwrite. The filter component
// is skipped when the context has no filter parameters.
func BuildFilePlan(ctx RenderContext, outputDir string, options ...PlanOption) FilePlan {
	cfg := planConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	names := []string{ctx.LowercaseName, ctx.TitleCaseName}
	at := func(rel string) string {
		return filepath.Join(outputDir, filepath.FromSlash(rel))
	}

	plan := FilePlan{
		Resource:    ctx.ResourceName,
		Directories: make([]DirEntry, 0, len(sharedDirectories)+len(resourceDirectories)),
		Files:       make([]FileEntry, 0, len(sharedFiles)+len(resourceFiles)+3),
	}

	for _, dir := range sharedDirectories {
		plan.Directories = append(plan.Directories, DirEntry{Path: at(dir), Shared: true})
	}
	for _, dir := range resourceDirectories {
		plan.Directories = append(plan.Directories, DirEntry{Path: at(expandPattern(dir, names))})
	}

	for _, entry := range sharedFiles {
		plan.Files = append(plan.Files, FileEntry{
			TemplateID: entry.template,
			OutputPath: at(entry.path),
			Data:       ctx,
			Overwrite:  cfg.force,
		})
	}
	for _, entry := range resourceFiles {
		if entry.template == FilterTemplateID && len(ctx.Parameters) == 0 {
			continue
		}
		plan.Files = append(plan.Files, FileEntry{
			TemplateID: entry.template,
			OutputPath: at(expandPattern(entry.path, names)),
			Data:       ctx,
			Overwrite:  true,
		})
	}

	resourceLabels := make([]Label, 0, len(ctx.LabelKeys))
	for _, key := range ctx.LabelKeys {
		text, ok := ctx.Labels[key]
		if !ok {
			text = key
		}
		resourceLabels = append(resourceLabels, Label{Key: key, Text: text})
	}

	plan.Files = append(plan.Files,
		FileEntry{
			TemplateID: ConfigTemplateID,
			OutputPath: at("utils/config.ts"),
			Data:       ConfigData{Entrypoint: cfg.entrypoint},
			Overwrite:  cfg.force,
		},
		FileEntry{
			TemplateID: CommonTranslationTemplateID,
			OutputPath: at("i18n/en-US/common.ts"),
			Data:       TranslationData{Labels: CommonLabelList()},
			Overwrite:  cfg.force,
		},
		FileEntry{
			TemplateID: ResourceTranslationID,
			OutputPath: at("i18n/en-US/" + ctx.LowercaseName + ".ts"),
			Data:       TranslationData{Labels: resourceLabels},
			Overwrite:  cfg.force,
		},
	)
	return plan
}

// expandPattern substitutes each %s in turn with the next value; patterns
// with fewer verbs ignore the remaining values.
func expandPattern(pattern string, values []string) string {
	out := pattern
	for _, value := range values {
		if !strings.Contains(out, "%s") {
			break
		}
		out = strings.Replace(out, "%s", value, 1)
	}
	return out
}
