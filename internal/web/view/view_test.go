package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplaceEscapesValue(t *testing.T) {
	doc := "<p>---name---</p>"
	out := Replace(doc, "---name---", `<script>alert("x")</script>`)
	require.NotContains(t, out, "<script>")
	require.Contains(t, out, "&lt;script&gt;")
}

func TestReplaceAllOccurrences(t *testing.T) {
	doc := "---x--- and ---x---"
	out := Replace(doc, "---x---", "y")
	require.Equal(t, "y and y", out)
}

func TestReplaceHTMLKeepsFragment(t *testing.T) {
	doc := "<td>---link---</td>"
	out := ReplaceHTML(doc, "---link---", `<a href="/cart">Remove</a>`)
	require.Contains(t, out, `<a href="/cart">Remove</a>`)
}

func TestSectionsSplitsOnMarker(t *testing.T) {
	doc := "header" + SectionMarker + "row" + SectionMarker + "footer"
	pieces := Sections(doc)
	require.Equal(t, []string{"header", "row", "footer"}, pieces)
}

func TestSelectOptionMarksValue(t *testing.T) {
	doc := `<option value="1">1</option><option value="2">2</option>`
	out := SelectOption(doc, 2)
	require.Contains(t, out, `value="2" selected`)
	require.NotContains(t, out, `value="1" selected`)
}

func TestPageTemplatesHaveSections(t *testing.T) {
	for _, name := range []string{"store", "cart"} {
		pieces := Sections(Page(name))
		require.Len(t, pieces, 3, "page %s should have header, row and footer pieces", name)
	}
}

func TestPageUnknownPanics(t *testing.T) {
	require.Panics(t, func() { Page("nope") })
}

func TestTemplatesCarryExpectedMarkers(t *testing.T) {
	cases := map[string][]string{
		"store":    {"---username---", "---email---", "---sign_in_out_page---", "---product_id---", "---product_price---"},
		"cart":     {"---cart_status---", "---product_quantity---", "---remove_item_script---", "---total_price---"},
		"login":    {"---email_value---", "---login_error---"},
		"register": {"---username_error---", "---captcha_error---"},
		"reset":    {"---reset_status---"},
		"contact":  {"---subject_error---", "---submit_status---"},
		"error":    {"---error---"},
	}

	for name, markers := range cases {
		doc := Page(name)
		for _, marker := range markers {
			require.True(t, strings.Contains(doc, marker),
				"page %s should contain marker %s", name, marker)
		}
	}
}
