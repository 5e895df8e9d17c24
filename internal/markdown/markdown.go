// Package markdown renders markdown for terminal output.
package markdown

import (
	"fmt"
	"strings"
	"sync"

	internalstrings "github.com/amonks/focus/internal/strings"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/reflow/wordwrap"
)

type renderer interface {
	Render(string) (string, error)
}

var (
	rendererMu sync.Mutex
	renderers  = map[int]renderer{}
)

// Render formats markdown text for terminal output. Text the renderer
// rejects is word-wrapped instead.
func Render(width, indent int, input []byte) []byte {
	value := normalize(input)
	if value == "" {
		return nil
	}
	renderWidth := contentWidth(width, indent)

	rendered, err := renderWith(markdownRenderer(renderWidth), value)
	if err != nil {
		rendered = Wrap(value, renderWidth)
	}
	return finish(rendered, indent)
}

// SafeRender is Render, but it also falls back to the original text when
// the renderer panics.
func SafeRender(width, indent int, input []byte) (out []byte) {
	defer func() {
		if recover() != nil {
			out = finish(normalize(input), indent)
		}
	}()
	return Render(width, indent, input)
}

// Wrap word-wraps plain text to width.
func Wrap(value string, width int) string {
	if width < 1 {
		width = 1
	}
	return wordwrap.String(value, width)
}

func normalize(input []byte) string {
	if len(input) == 0 {
		return ""
	}
	value := internalstrings.NormalizeNewlines(string(input))
	value = internalstrings.TrimTrailingNewlines(value)
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return value
}

func contentWidth(width, indent int) int {
	if width < 1 {
		width = 1
	}
	if indent < 0 {
		indent = 0
	}
	renderWidth := width - indent
	if renderWidth < 1 {
		renderWidth = 1
	}
	return renderWidth
}

func renderWith(r renderer, value string) (string, error) {
	if r == nil {
		return "", fmt.Errorf("no markdown renderer")
	}
	return r.Render(value)
}

func finish(rendered string, indent int) []byte {
	rendered = internalstrings.TrimTrailingNewlines(rendered)
	if strings.TrimSpace(rendered) == "" {
		return nil
	}
	if indent <= 0 {
		return []byte(rendered)
	}
	return []byte(internalstrings.IndentBlock(rendered, indent))
}

func markdownRenderer(width int) renderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = created
	return created
}
