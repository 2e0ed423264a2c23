package markdown

import (
	"bytes"
	"html/template"
	"os"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	md     = goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy = bluemonday.UGCPolicy()
)

// Render converts markdown to sanitized HTML that is safe to embed in a page.
func Render(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", errors.Wrap(err, "convert markdown")
	}

	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}

// RenderFile reads and renders a markdown file. An empty path yields no HTML.
func RenderFile(path string) (template.HTML, error) {
	if path == "" {
		return "", nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "read notes %s", path)
	}

	return Render(src)
}
