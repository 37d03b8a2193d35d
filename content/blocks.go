// Package content models lesson bodies as a closed set of block variants
// with an explicit render contract, instead of dispatching on untyped
// markup at render time. Inline LaTeX spans ($...$) survive rendering as
// text and are typeset client-side.
package content

import (
	"fmt"
	"html"
	"strings"
)

type Kind string

const (
	KindHeading   Kind = "heading"
	KindParagraph Kind = "paragraph"
	KindList      Kind = "list"
	KindQuote     Kind = "quote"
	KindCode      Kind = "code"
	KindEmphasis  Kind = "emphasis"
)

// Block is one unit of a lesson body.
type Block interface {
	Kind() Kind
	Render() string
}

type Heading struct {
	Level int
	Text  string
}

func (h Heading) Kind() Kind { return KindHeading }

func (h Heading) Render() string {
	level := h.Level
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return fmt.Sprintf("<h%d>%s</h%d>", level, html.EscapeString(h.Text), level)
}

type Paragraph struct {
	Text string
}

func (p Paragraph) Kind() Kind     { return KindParagraph }
func (p Paragraph) Render() string { return "<p>" + html.EscapeString(p.Text) + "</p>" }

type List struct {
	Items []string
}

func (l List) Kind() Kind { return KindList }

func (l List) Render() string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, item := range l.Items {
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(item))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

type Quote struct {
	Text string
}

func (q Quote) Kind() Kind { return KindQuote }

func (q Quote) Render() string {
	return "<blockquote>" + html.EscapeString(q.Text) + "</blockquote>"
}

type Code struct {
	Language string
	Source   string
}

func (c Code) Kind() Kind { return KindCode }

func (c Code) Render() string {
	class := ""
	if c.Language != "" {
		class = ` class="language-` + html.EscapeString(c.Language) + `"`
	}
	return "<pre><code" + class + ">" + html.EscapeString(c.Source) + "</code></pre>"
}

type Emphasis struct {
	Text string
}

func (e Emphasis) Kind() Kind     { return KindEmphasis }
func (e Emphasis) Render() string { return "<p><em>" + html.EscapeString(e.Text) + "</em></p>" }

// Rendered is the wire form of a block.
type Rendered struct {
	Type Kind   `json:"type"`
	HTML string `json:"html"`
}

func RenderAll(blocks []Block) []Rendered {
	out := make([]Rendered, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, Rendered{Type: b.Kind(), HTML: b.Render()})
	}
	return out
}

// Parse splits a stored lesson body into typed blocks. The format is the
// small markdown subset the seeded lessons use: #-headings, "- " lists,
// "> " quotes, fenced code, whole-line *emphasis*, blank-line separated
// paragraphs.
func Parse(body string) []Block {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	var blocks []Block
	var paragraph []string

	flush := func() {
		if len(paragraph) > 0 {
			blocks = append(blocks, Paragraph{Text: strings.Join(paragraph, " ")})
			paragraph = nil
		}
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			flush()

		case strings.HasPrefix(trimmed, "```"):
			flush()
			lang := strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
			var source []string
			for i++; i < len(lines); i++ {
				if strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
					break
				}
				source = append(source, lines[i])
			}
			blocks = append(blocks, Code{Language: lang, Source: strings.Join(source, "\n")})

		case strings.HasPrefix(trimmed, "#"):
			flush()
			level := 0
			for level < len(trimmed) && trimmed[level] == '#' {
				level++
			}
			blocks = append(blocks, Heading{Level: level, Text: strings.TrimSpace(trimmed[level:])})

		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			flush()
			var items []string
			for ; i < len(lines); i++ {
				t := strings.TrimSpace(lines[i])
				if !strings.HasPrefix(t, "- ") && !strings.HasPrefix(t, "* ") {
					i--
					break
				}
				items = append(items, strings.TrimSpace(t[2:]))
			}
			blocks = append(blocks, List{Items: items})

		case strings.HasPrefix(trimmed, "> "):
			flush()
			var quoted []string
			for ; i < len(lines); i++ {
				t := strings.TrimSpace(lines[i])
				if !strings.HasPrefix(t, "> ") {
					i--
					break
				}
				quoted = append(quoted, strings.TrimSpace(t[2:]))
			}
			blocks = append(blocks, Quote{Text: strings.Join(quoted, " ")})

		case isEmphasisLine(trimmed):
			flush()
			blocks = append(blocks, Emphasis{Text: trimmed[1 : len(trimmed)-1]})

		default:
			paragraph = append(paragraph, trimmed)
		}
	}
	flush()
	return blocks
}

func isEmphasisLine(s string) bool {
	if len(s) < 3 {
		return false
	}
	wrapped := func(marker byte) bool {
		return s[0] == marker && s[len(s)-1] == marker &&
			!strings.Contains(s[1:len(s)-1], string(marker))
	}
	return wrapped('*') || wrapped('_')
}
