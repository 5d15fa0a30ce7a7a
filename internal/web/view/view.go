package view

import (
	"embed"
	"fmt"
	"html"
	"strings"
)

//go:embed templates/*.html
var templates embed.FS

// SectionMarker splits a page into header, repeating-row and footer pieces
const SectionMarker = "<!--===product===-->"

// Page loads a template by name. Templates are embedded at build time so a
// missing name is a programming error; it panics rather than returning an
// error every caller would have to thread through.
func Page(name string) string {
	b, err := templates.ReadFile("templates/" + name + ".html")
	if err != nil {
		panic(fmt.Sprintf("unknown page template %q", name))
	}
	return string(b)
}

// Replace substitutes every occurrence of the marker with the value,
// HTML-escaped. All visitor-supplied content goes through this.
func Replace(doc, marker, value string) string {
	return strings.ReplaceAll(doc, marker, html.EscapeString(value))
}

// ReplaceHTML substitutes the marker with a trusted HTML fragment. Only
// server-built fragments may pass through here.
func ReplaceHTML(doc, marker, fragment string) string {
	return strings.ReplaceAll(doc, marker, fragment)
}

// Sections splits the page on the section marker. A page with a repeating
// row yields three pieces: the part before the rows, the row template, and
// the part after.
func Sections(doc string) []string {
	return strings.Split(doc, SectionMarker)
}

// SelectOption marks the dropdown option carrying the value as selected,
// so a re-rendered form keeps the visitor's previous choice
func SelectOption(doc string, value int) string {
	needle := fmt.Sprintf(`value="%d"`, value)
	return strings.Replace(doc, needle, needle+" selected", 1)
}
