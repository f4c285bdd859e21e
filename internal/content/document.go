// Package content turns fetched page HTML into something a terminal can
// show: inline script fragments are lifted out, the rest is sanitized and
// converted to markdown, and markdown is rendered to ANSI with glamour.
package content

import (
	"bytes"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"newsdeck/internal/domain"
)

// Document is one parsed content page.
type Document struct {
	Page      int
	Title     string
	Markdown  string
	Fragments []domain.Fragment
}

var policy = bluemonday.UGCPolicy()

// Parse converts page HTML into a Document.
func Parse(page int, raw []byte) (*Document, error) {
	root, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse page %d: %w", page, err)
	}

	doc := &Document{Page: page}
	walk(root, doc)

	md, err := htmltomarkdown.ConvertString(policy.Sanitize(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("convert page %d: %w", page, err)
	}
	md = strings.ReplaceAll(md, "\r\n", "\n")
	doc.Markdown = strings.TrimSpace(md)

	return doc, nil
}

func walk(n *html.Node, doc *Document) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Script:
			doc.Fragments = append(doc.Fragments, scriptFragment(n))
			return
		case atom.H1, atom.H2:
			if doc.Title == "" {
				doc.Title = textOf(n)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, doc)
	}
}

func scriptFragment(n *html.Node) domain.Fragment {
	f := domain.Fragment{Kind: "script"}
	for _, a := range n.Attr {
		switch a.Key {
		case "type":
			f.Type = a.Val
		case "src":
			f.Src = a.Val
		}
	}
	f.Body = strings.TrimSpace(textOf(n))
	return f
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
