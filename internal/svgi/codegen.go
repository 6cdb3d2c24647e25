package svgi

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

var (
	openTagRe  = regexp.MustCompile(`(?i)<svg(\s[^>]*|/)?>`)
	closeTagRe = regexp.MustCompile(`(?i)</svg\s*>`)
	attrRe     = regexp.MustCompile(`([^\s=/"']+)\s*=\s*("[^"]*"|'[^']*')`)
)

// document is the cleaned SVG split into its root attributes and inner markup.
type document struct {
	attrs string
	inner string
}

// splitDocument locates the opening <svg> tag and separates the attribute
// list from the markup between the opening and closing tags.
func splitDocument(id, cleaned string) (document, error) {
	loc := openTagRe.FindStringSubmatchIndex(cleaned)
	if loc == nil {
		return document{}, &MalformedInputError{ID: id, Reason: "no opening <svg> tag found"}
	}

	var attrs string
	if loc[2] >= 0 {
		attrs = strings.TrimSpace(cleaned[loc[2]:loc[3]])
	}

	// <svg ... /> has no body and no closing tag.
	if strings.HasSuffix(attrs, "/") {
		return document{attrs: strings.TrimSpace(strings.TrimSuffix(attrs, "/"))}, nil
	}

	// The last closing tag ends the root; anything after it is dropped.
	rest := cleaned[loc[1]:]
	if all := closeTagRe.FindAllStringIndex(rest, -1); len(all) > 0 {
		rest = rest[:all[len(all)-1][0]]
	}
	return document{attrs: attrs, inner: strings.TrimSpace(rest)}, nil
}

// objectLiteral converts `name="value"` pairs into `{ 'name': "value" }`.
// Values keep their original quotes; pairs keep their original order.
func objectLiteral(attrs string) string {
	pairs := attrRe.FindAllStringSubmatch(attrs, -1)
	if len(pairs) == 0 {
		return "{}"
	}

	entries := make([]string, 0, len(pairs))
	for _, p := range pairs {
		entries = append(entries, "'"+p[1]+"': "+p[2])
	}
	return "{ " + strings.Join(entries, ", ") + " }"
}

// stringLiteral serializes s as a JavaScript string literal. JSON strings
// are valid JS literals once HTML escaping is off.
func stringLiteral(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// generate composes the module source for one document. The component is
// anonymous so no file name can collide with the factory or with globals.
func generate(lib Library, doc document) string {
	var b strings.Builder
	b.WriteString(lib.ImportStatement())
	b.WriteString("\n")
	b.WriteString("export default function (props) {\n")
	b.WriteString("\tprops = Object.assign({}, props, { dangerouslySetInnerHTML: { __html: " + stringLiteral(doc.inner) + " } });\n")
	b.WriteString("\treturn " + lib.Pragma + "('svg', Object.assign(" + objectLiteral(doc.attrs) + ", props));\n")
	b.WriteString("}\n")
	return b.String()
}
