package output

import (
	"fmt"
	"io"
	"strings"
)

// WiringSnippet returns the router and translation registrations a project
// needs for a freshly generated resource. lc is the lowercase resource title.
func WiringSnippet(lc string) string {
	var b strings.Builder
	b.WriteString("// Import routes in src/router/routes.ts\n")
	fmt.Fprintf(&b, "import %sRoutes from './%s';\n\n", lc, lc)
	b.WriteString("const routes: RouteRecordRaw[] = [\n")
	b.WriteString("  // ...\n")
	fmt.Fprintf(&b, "  ...%sRoutes,\n", lc)
	b.WriteString("];\n\n")
	b.WriteString("// import translations in src/i18n/en-US/index.ts\n")
	fmt.Fprintf(&b, "import %s from './%s';\n\n", lc, lc)
	b.WriteString("export default {\n")
	b.WriteString("  // ...\n")
	fmt.Fprintf(&b, "  %s,\n", lc)
	b.WriteString("}\n")
	return b.String()
}

// PrintHelp writes the post-generation message for a resource to w.
func PrintHelp(w io.Writer, title, lc string) {
	fmt.Fprintln(w, FormatCheckmark(fmt.Sprintf("Code for the %s resource type has been generated!", StyleNoun.Render(title))))
	fmt.Fprintln(w, "Paste the following definitions in your application configuration:")
	fmt.Fprintln(w, StyleSnippet.Render(WiringSnippet(lc)))
}

// FormatSummary renders the per-run totals line.
func FormatSummary(written, skipped, failed int) string {
	line := fmt.Sprintf("%d written, %d skipped, %d failed", written, skipped, failed)
	if failed > 0 {
		return StatusStyle(StatusFailed).Render(line)
	}
	return StyleSummary.Render(line)
}
