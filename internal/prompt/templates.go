package prompt

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"
	"text/template/parse"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Kind names a narrative template.
type Kind string

const (
	KindPopulationDensity Kind = "population_density"
	KindTrade             Kind = "trade"
	KindImportExport      Kind = "import_export"
	KindComprehensive     Kind = "comprehensive"
	// KindCountrySummary is the short overview used by the plain summary
	// endpoint. It is never chosen by Select.
	KindCountrySummary Kind = "country_summary"
)

// Kinds lists every template in the catalog.
var Kinds = []Kind{
	KindPopulationDensity,
	KindTrade,
	KindImportExport,
	KindComprehensive,
	KindCountrySummary,
}

// Select maps a summary parameter to its template. Matching ignores case and
// surrounding whitespace; anything unrecognised, including the empty string,
// selects the comprehensive template.
func Select(parameter string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(parameter))) {
	case KindPopulationDensity:
		return KindPopulationDensity
	case KindTrade:
		return KindTrade
	case KindImportExport:
		return KindImportExport
	default:
		return KindComprehensive
	}
}

// Catalog holds the parsed narrative templates. It is immutable once built
// and safe for concurrent use.
type Catalog struct {
	templates map[Kind]*template.Template
}

// NewCatalog parses the embedded template set.
func NewCatalog() (*Catalog, error) {
	c := &Catalog{templates: make(map[Kind]*template.Template, len(Kinds))}

	for _, kind := range Kinds {
		name := fmt.Sprintf("templates/%s.tmpl", kind)
		content, err := templateFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", kind, err)
		}

		tpl, err := template.New(string(kind)).
			Option("missingkey=error").
			Funcs(template.FuncMap{"fixed": fixed}).
			Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", kind, err)
		}
		c.templates[kind] = tpl
	}

	return c, nil
}

// Placeholders returns the sorted, de-duplicated names a template binds.
func (c *Catalog) Placeholders(kind Kind) ([]string, error) {
	tpl, ok := c.templates[kind]
	if !ok {
		return nil, fmt.Errorf("unknown template %q", kind)
	}

	seen := make(map[string]struct{})
	collectFields(tpl.Tree.Root, seen)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func collectFields(node parse.Node, seen map[string]struct{}) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, child := range n.Nodes {
			collectFields(child, seen)
		}
	case *parse.ActionNode:
		collectFields(n.Pipe, seen)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		for _, cmd := range n.Cmds {
			for _, arg := range cmd.Args {
				collectFields(arg, seen)
			}
		}
	case *parse.FieldNode:
		if len(n.Ident) > 0 {
			seen[n.Ident[0]] = struct{}{}
		}
	}
}
