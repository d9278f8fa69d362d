// Package tmpl renders file templates for generators and manifest commands.
// Templates use text/template syntax with a small set of naming helpers.
package tmpl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Renderer executes templates with the helper functions installed.
type Renderer struct {
	funcs template.FuncMap
}

// New returns a Renderer with the default helpers.
func New() *Renderer {
	return &Renderer{funcs: DefaultFuncs()}
}

// Funcs returns a copy of r with extra helpers added.
func (r *Renderer) Funcs(extra template.FuncMap) *Renderer {
	out := &Renderer{funcs: template.FuncMap{}}
	for k, v := range r.funcs {
		out.funcs[k] = v
	}
	for k, v := range extra {
		out.funcs[k] = v
	}
	return out
}

// Render executes text against data.
func (r *Renderer) Render(name, text string, data any) (string, error) {
	t, err := template.New(name).Funcs(r.funcs).Option("missingkey=zero").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

// RenderFile reads the template at p from fsys and executes it.
func (r *Renderer) RenderFile(fsys fs.FS, p string, data any) (string, error) {
	b, err := fs.ReadFile(fsys, p)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", p, err)
	}
	return r.Render(path.Base(p), string(b), data)
}

// WriteFile renders text and writes it to dest on afs, creating parent
// directories.
func (r *Renderer) WriteFile(afs afero.Fs, dest, text string, data any) error {
	out, err := r.Render(filepath.Base(dest), text, data)
	if err != nil {
		return err
	}
	if err := afs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dest, err)
	}
	if err := afero.WriteFile(afs, dest, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}

// RenderDir renders every file under dir in fsys into destDir on afs.
// A trailing .tmpl is stripped from output names and file names are
// themselves rendered as templates. It returns the written paths.
func (r *Renderer) RenderDir(fsys fs.FS, dir string, afs afero.Fs, destDir string, data any) ([]string, error) {
	var written []string
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, dir), "/")
		name, err := r.Render(rel, strings.TrimSuffix(rel, ".tmpl"), data)
		if err != nil {
			return err
		}
		b, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}
		dest := filepath.Join(destDir, filepath.FromSlash(name))
		if err := r.WriteFile(afs, dest, string(b), data); err != nil {
			return err
		}
		written = append(written, dest)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return written, nil
}

var (
	nonWord  = regexp.MustCompile(`[^A-Za-z0-9]+`)
	camelGap = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// Words splits s into lower-case words on case changes and separators.
func Words(s string) []string {
	s = camelGap.ReplaceAllString(s, "$1 $2")
	var out []string
	for _, w := range strings.Fields(nonWord.ReplaceAllString(s, " ")) {
		out = append(out, strings.ToLower(w))
	}
	return out
}

// Slug returns s as lower-case words joined by dashes.
func Slug(s string) string {
	return strings.Join(Words(s), "-")
}

// Pascal returns s as PascalCase.
func Pascal(s string) string {
	title := cases.Title(language.Und)
	var b strings.Builder
	for _, w := range Words(s) {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// Camel returns s as camelCase.
func Camel(s string) string {
	p := Pascal(s)
	if p == "" {
		return p
	}
	return strings.ToLower(p[:1]) + p[1:]
}

// Snake returns s as lower-case words joined by underscores.
func Snake(s string) string {
	return strings.Join(Words(s), "_")
}

// DefaultFuncs returns the helper functions available in every template.
func DefaultFuncs() template.FuncMap {
	title := cases.Title(language.Und)
	return template.FuncMap{
		"slug":   Slug,
		"pascal": Pascal,
		"camel":  Camel,
		"snake":  Snake,
		"upper":  strings.ToUpper,
		"lower":  strings.ToLower,
		"title":  title.String,
		"join":   strings.Join,
		"str":    cast.ToString,
		"default": func(def, v any) any {
			if s := cast.ToString(v); v == nil || s == "" {
				return def
			}
			return v
		},
		"json": func(v any) (string, error) {
			b, err := json.MarshalIndent(v, "", "  ")
			return string(b), err
		},
	}
}
