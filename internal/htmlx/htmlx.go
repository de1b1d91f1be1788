// Package htmlx has small helpers for pulling links and metadata out of raw
// page text without building a full document tree.
package htmlx

import (
	"strings"

	"golang.org/x/net/html"
)

// Attrs returns the value of attr on every <tag> element, in document order.
// Elements without the attribute (or with an empty value) are skipped.
func Attrs(page string, tag string, attr string) []string {
	var values []string
	z := html.NewTokenizer(strings.NewReader(page))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return values
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != tag || !hasAttr {
				continue
			}
			if v, ok := tagAttr(z, attr); ok && v != "" {
				values = append(values, v)
			}
		}
	}
}

// Links returns all anchor targets in document order.
func Links(page string) []string {
	return Attrs(page, "a", "href")
}

// MetaProperty returns the content of the first <meta> element whose property
// (or name) attribute equals prop, e.g. "og:title".
func MetaProperty(page string, prop string) string {
	z := html.NewTokenizer(strings.NewReader(page))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "meta" || !hasAttr {
				continue
			}
			var key, content string
			for {
				k, v, more := z.TagAttr()
				switch string(k) {
				case "property", "name":
					key = string(v)
				case "content":
					content = string(v)
				}
				if !more {
					break
				}
			}
			if key == prop && content != "" {
				return content
			}
		}
	}
}

// Title returns the text of the first <title> element, trimmed.
func Title(page string) string {
	z := html.NewTokenizer(strings.NewReader(page))
	inTitle := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := z.TagName()
			inTitle = string(name) == "title"
		case html.EndTagToken:
			inTitle = false
		case html.TextToken:
			if inTitle {
				return strings.TrimSpace(string(z.Text()))
			}
		}
	}
}

func tagAttr(z *html.Tokenizer, attr string) (string, bool) {
	var value string
	found := false
	for {
		k, v, more := z.TagAttr()
		if string(k) == attr {
			value = string(v)
			found = true
		}
		if !more {
			break
		}
	}
	return value, found
}
