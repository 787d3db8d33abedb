// Package wml reads and rewrites WordprocessingML content: it decides which
// parts of a document body carry translatable text, collects that text into
// per-container units, and writes translated text back into the original run
// structure without disturbing it.
//
// A container is a paragraph (w:p) or a table cell (w:tc). Its translatable
// text is the concatenation of its w:t leaves in document order. Containers
// holding Office Math markup are excluded entirely: their text is never
// extracted and their leaves are never rewritten.
package wml

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/abner-wong/transdoc/internal/xmltree"
)

// Namespace URIs fixed by the OOXML format.
const (
	MainNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	MathNS = "http://schemas.openxmlformats.org/officeDocument/2006/math"
)

var (
	paragraphName = xml.Name{Space: MainNS, Local: "p"}
	textName      = xml.Name{Space: MainNS, Local: "t"}
	tableName     = xml.Name{Space: MainNS, Local: "tbl"}
	rowName       = xml.Name{Space: MainNS, Local: "tr"}
	cellName      = xml.Name{Space: MainNS, Local: "tc"}
)

// IsFormula reports whether n or any of its descendants belongs to the math
// namespace.
func IsFormula(n *xmltree.Node) bool {
	found := false
	n.Walk(func(m *xmltree.Node) bool {
		if m.Name.Space == MathNS {
			found = true
			return false
		}
		return !found
	})
	return found
}

// textLeaves returns the w:t descendants of n in document order.
func textLeaves(n *xmltree.Node) []*xmltree.Node {
	return n.FindAll(textName)
}

// ExtractText returns the trimmed concatenation of n's w:t leaf text in
// document order, with no separator. Formula containers yield "".
func ExtractText(n *xmltree.Node) string {
	if IsFormula(n) {
		return ""
	}
	var sb strings.Builder
	for _, leaf := range textLeaves(n) {
		sb.WriteString(leaf.Text)
	}
	return strings.TrimSpace(sb.String())
}

// Redistribute re-partitions translated across the w:t leaves of container,
// preserving leaf count and order. A single leaf takes the whole text.
// Multiple leaves split on word boundaries: each leaf gets
// max(1, totalWords/leafCount) words, the last leaf absorbs the remainder,
// and leaves past the end of the word list are emptied. This is a layout
// heuristic: it conserves the word sequence, not per-leaf meaning.
func Redistribute(container *xmltree.Node, translated string) {
	if strings.TrimSpace(translated) == "" {
		return
	}

	leaves := textLeaves(container)
	if len(leaves) == 0 {
		return
	}
	if len(leaves) == 1 {
		leaves[0].Text = translated
		return
	}

	words := strings.Fields(translated)
	total := len(words)
	perLeaf := total / len(leaves)
	if perLeaf < 1 {
		perLeaf = 1
	}

	for i, leaf := range leaves {
		start := i * perLeaf
		if start >= total {
			leaf.Text = ""
			continue
		}
		end := start + perLeaf
		if i == len(leaves)-1 || end > total {
			end = total
		}
		leaf.Text = strings.Join(words[start:end], " ")
	}
}

// UnitKind distinguishes the two container kinds a Unit can refer to.
type UnitKind int

const (
	ParagraphUnit UnitKind = iota
	CellUnit
)

// Unit is one container's aggregated translatable text together with the
// node(s) a later write pass will mutate. Units are collected in a read-only
// pass so that cell aggregation sees every paragraph before any is rewritten.
type Unit struct {
	Kind UnitKind
	Text string

	// Index is the 1-based body sequence number of a paragraph unit.
	Index int
	// Row and Col are the 1-based table coordinates of a cell unit.
	Row, Col int

	paragraph *xmltree.Node
	cell      *xmltree.Node
}

// Position describes the unit's location in the document, for log messages.
func (u *Unit) Position() string {
	if u.Kind == CellUnit {
		return fmt.Sprintf("row %d column %d", u.Row, u.Col)
	}
	return fmt.Sprintf("paragraph %d", u.Index)
}

// CollectUnits walks root and returns every non-empty translation unit:
// first body paragraphs in document order (paragraphs inside tables are
// skipped, the cell pass owns them), then tables by row and cell. Cell text
// is the space-joined aggregation of the cell's direct paragraphs; nested
// tables are collected as tables of their own, so their paragraphs never
// leak into the outer cell's aggregate.
func CollectUnits(root *xmltree.Node) []Unit {
	var units []Unit

	index := 0
	root.Walk(func(n *xmltree.Node) bool {
		if n.Name == tableName {
			return false
		}
		if n.Name == paragraphName {
			index++
			if text := ExtractText(n); text != "" {
				units = append(units, Unit{
					Kind:      ParagraphUnit,
					Text:      text,
					Index:     index,
					paragraph: n,
				})
			}
			return false
		}
		return true
	})

	for _, table := range root.FindAll(tableName) {
		for rowIdx, row := range table.ChildrenNamed(rowName) {
			for colIdx, cell := range row.ChildrenNamed(cellName) {
				var sb strings.Builder
				for _, para := range cell.ChildrenNamed(paragraphName) {
					if text := ExtractText(para); text != "" {
						sb.WriteString(text)
						sb.WriteByte(' ')
					}
				}
				text := strings.TrimSpace(sb.String())
				if text == "" {
					continue
				}
				units = append(units, Unit{
					Kind: CellUnit,
					Text: text,
					Row:  rowIdx + 1,
					Col:  colIdx + 1,
					cell: cell,
				})
			}
		}
	}

	return units
}

// ApplyUnit writes translated into the unit's container. A paragraph unit
// redistributes across its own leaves. A cell unit redistributes into the
// first non-formula paragraph that has text leaves and empties the leaves of
// every other non-formula paragraph; formula paragraphs are left untouched.
// An empty translated string is a no-op.
func ApplyUnit(u Unit, translated string) {
	if strings.TrimSpace(translated) == "" {
		return
	}

	if u.Kind == ParagraphUnit {
		Redistribute(u.paragraph, translated)
		return
	}

	var target *xmltree.Node
	for _, para := range u.cell.ChildrenNamed(paragraphName) {
		if IsFormula(para) {
			continue
		}
		if target == nil && len(textLeaves(para)) > 0 {
			target = para
			continue
		}
		for _, leaf := range textLeaves(para) {
			leaf.Text = ""
		}
	}
	if target != nil {
		Redistribute(target, translated)
	}
}
