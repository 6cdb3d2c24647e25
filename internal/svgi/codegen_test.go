package svgi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDocument(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantAttrs string
		wantInner string
	}{
		{"attributes and body", `<svg width="1" height="2"><g/></svg>`, `width="1" height="2"`, `<g/>`},
		{"no attributes", `<svg><g/></svg>`, ``, `<g/>`},
		{"self closing", `<svg width="1"/>`, `width="1"`, ``},
		{"bare self closing", `<svg/>`, ``, ``},
		{"inner trimmed", `<svg> <g/> </svg> `, ``, `<g/>`},
		{"uppercase tag", `<SVG a="b"><g/></SVG>`, `a="b"`, `<g/>`},
		{"leading text ignored", `junk <svg><g/></svg>`, ``, `<g/>`},
		{"missing close tag", `<svg><g/>`, ``, `<g/>`},
		{"trailing comment", `<svg><g/></svg><!-- end -->`, ``, `<g/>`},
		{"trailing instruction", "<svg><g/></SVG >\n<?pi x?>", ``, `<g/>`},
		{"nested svg keeps inner close", `<svg><svg><g/></svg></svg> x`, ``, `<svg><g/></svg>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := splitDocument("/a.svg", tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAttrs, doc.attrs)
			assert.Equal(t, tt.wantInner, doc.inner)
		})
	}
}

func TestSplitDocumentRejectsNonSVG(t *testing.T) {
	for _, in := range []string{"", "<div/>", "<svgx></svgx>"} {
		_, err := splitDocument("/a.svg", in)
		assert.ErrorIs(t, err, ErrMalformedInput, "input %q", in)
	}
}

func TestObjectLiteral(t *testing.T) {
	assert.Equal(t, "{}", objectLiteral(""))
	assert.Equal(t, `{ 'width': "24", 'height': "24" }`, objectLiteral(`width="24" height="24"`))
	assert.Equal(t, `{ 'fill': 'none', 'aria-hidden': "true" }`, objectLiteral(`fill='none' aria-hidden = "true"`))
}

func TestStringLiteral(t *testing.T) {
	assert.Equal(t, `"<path d=\"M0 0\"/>"`, stringLiteral(`<path d="M0 0"/>`))
	assert.Equal(t, `"a\\b"`, stringLiteral(`a\b`))
	assert.Equal(t, `""`, stringLiteral(""))
}

func TestLibraryImportStatement(t *testing.T) {
	assert.Equal(t, "import React from 'react';", Library{Source: "react", Factory: "React", IsDefault: true}.ImportStatement())
	assert.Equal(t, "import { h } from 'preact';", Library{Source: "preact", Factory: "h"}.ImportStatement())
}

func TestLibraryKindString(t *testing.T) {
	assert.Equal(t, "preact", KindPreact.String())
	assert.Equal(t, "react", KindReact.String())
	assert.Equal(t, "custom", KindCustom.String())
}
