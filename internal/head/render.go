// Package head materializes resolved page metadata into <head> elements.
package head

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"finitefield.org/academy-web/internal/seo"
)

const jsonLDType = "application/ld+json"

// Render writes the head elements for meta followed by one JSON-LD script per
// block, one element per line.
func Render(w io.Writer, meta seo.Metadata, blocks ...map[string]any) error {
	nodes, err := Nodes(meta, blocks...)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, n := range nodes {
		if err := html.Render(bw, n); err != nil {
			return fmt.Errorf("head: render %s: %w", n.Data, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// String renders to a string; see Render.
func String(meta seo.Metadata, blocks ...map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, meta, blocks...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Nodes builds the element nodes without serializing them. Blocks that are nil
// are skipped.
func Nodes(meta seo.Metadata, blocks ...map[string]any) ([]*html.Node, error) {
	nodes := []*html.Node{
		element(atom.Title, nil, text(meta.Title)),
		metaName("description", meta.Description),
		metaName("keywords", meta.Keywords),
		metaName("robots", meta.Robots),
	}
	if meta.CanonicalURL != "" {
		nodes = append(nodes, element(atom.Link, []html.Attribute{
			{Key: "rel", Val: "canonical"},
			{Key: "href", Val: meta.CanonicalURL},
		}))
	}
	nodes = append(nodes,
		metaProperty("og:type", meta.OGType),
		metaProperty("og:site_name", meta.OGSiteName),
		metaProperty("og:locale", meta.OGLocale),
		metaProperty("og:title", meta.OGTitle),
		metaProperty("og:description", meta.OGDescription),
		metaProperty("og:image", meta.OGImage),
		metaProperty("og:url", meta.OGURL),
		metaName("twitter:card", meta.TwitterCard),
		metaName("twitter:site", meta.TwitterSite),
		metaName("twitter:title", meta.TwitterTitle),
		metaName("twitter:description", meta.TwitterDescription),
		metaName("twitter:image", meta.TwitterImage),
	)
	for _, block := range blocks {
		if block == nil {
			continue
		}
		// json.Marshal escapes <, > and & so the payload cannot close the script element.
		payload, err := json.Marshal(block)
		if err != nil {
			return nil, fmt.Errorf("head: encode json-ld: %w", err)
		}
		nodes = append(nodes, element(atom.Script, []html.Attribute{{Key: "type", Val: jsonLDType}}, text(string(payload))))
	}
	return nodes, nil
}

func metaName(name, content string) *html.Node {
	return element(atom.Meta, []html.Attribute{{Key: "name", Val: name}, {Key: "content", Val: content}})
}

func metaProperty(property, content string) *html.Node {
	return element(atom.Meta, []html.Attribute{{Key: "property", Val: property}, {Key: "content", Val: content}})
}

func element(a atom.Atom, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
