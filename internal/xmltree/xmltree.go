// Package xmltree parses an XML document into a generic mutable node tree
// and serializes the tree back using the namespace prefixes the document
// itself declares.
//
// encoding/xml's marshaller invents its own prefixes for namespaced names
// and cannot reproduce declarations such as xmlns:w, so output is written
// by hand from the xmlns bindings in scope at each element.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Node is a single XML element. Text holds character data appearing before
// the first child; Tail holds character data following the element's end
// tag (owned by the parent, kept here to preserve document order).
type Node struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Node
	Text     string
	Tail     string
}

// Document is a parsed XML document: the root element plus the prolog
// (declaration and surrounding whitespace) reproduced verbatim on output.
type Document struct {
	Prolog string
	Root   *Node
}

// DefaultProlog is emitted when the source carries no XML declaration.
const DefaultProlog = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Parse decodes data into a Document. Malformed XML and documents without
// a root element are rejected.
func Parse(data []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	doc := &Document{}
	var prolog bytes.Buffer

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.ProcInst:
			if doc.Root == nil {
				prolog.WriteString("<?")
				prolog.WriteString(t.Target)
				prolog.WriteByte(' ')
				prolog.Write(t.Inst)
				prolog.WriteString("?>")
			}
		case xml.Directive:
			if doc.Root == nil {
				prolog.WriteString("<!")
				prolog.Write(t)
				prolog.WriteByte('>')
			}
		case xml.CharData:
			if doc.Root == nil {
				prolog.Write(t)
			}
		case xml.StartElement:
			if doc.Root != nil {
				return nil, fmt.Errorf("multiple root elements")
			}
			root, err := parseElement(dec, t)
			if err != nil {
				return nil, err
			}
			doc.Root = root
		}
	}

	if doc.Root == nil {
		return nil, fmt.Errorf("no root element")
	}
	if prolog.Len() == 0 {
		doc.Prolog = DefaultProlog
	} else {
		doc.Prolog = prolog.String()
	}
	return doc, nil
}

func parseElement(dec *xml.Decoder, start xml.StartElement) (*Node, error) {
	n := &Node{Name: start.Name, Attrs: start.Attr}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child, err := parseElement(dec, t)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		case xml.EndElement:
			return n, nil
		case xml.CharData:
			// CharData buffers are reused by the decoder; copy now.
			if len(n.Children) == 0 {
				n.Text += string(t)
			} else {
				last := n.Children[len(n.Children)-1]
				last.Tail += string(t)
			}
		}
	}
}

// Serialize renders the document: prolog first, then the tree with the
// prefix bindings declared by its xmlns attributes. Elements with no
// content are written self-closing.
func (d *Document) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(d.Prolog)
	if err := writeNode(&buf, d.Root, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// scope maps namespace URIs to the prefix declared for them ("" for the
// default namespace).
func writeNode(buf *bytes.Buffer, n *Node, scope map[string]string) error {
	if decls := xmlnsDecls(n.Attrs); len(decls) > 0 {
		merged := make(map[string]string, len(scope)+len(decls))
		for uri, p := range scope {
			merged[uri] = p
		}
		for uri, p := range decls {
			merged[uri] = p
		}
		scope = merged
	}

	name, err := elementName(n.Name, scope)
	if err != nil {
		return err
	}

	buf.WriteByte('<')
	buf.WriteString(name)
	for _, a := range n.Attrs {
		aname, err := attrName(a.Name, scope)
		if err != nil {
			return err
		}
		buf.WriteByte(' ')
		buf.WriteString(aname)
		buf.WriteString(`="`)
		attrEscaper.WriteString(buf, a.Value)
		buf.WriteByte('"')
	}

	if len(n.Children) == 0 && n.Text == "" {
		buf.WriteString("/>")
		return nil
	}

	buf.WriteByte('>')
	textEscaper.WriteString(buf, n.Text)
	for _, c := range n.Children {
		if err := writeNode(buf, c, scope); err != nil {
			return err
		}
		textEscaper.WriteString(buf, c.Tail)
	}
	buf.WriteString("</")
	buf.WriteString(name)
	buf.WriteByte('>')
	return nil
}

// xmlNamespaceURL is the namespace the decoder substitutes for the
// implicitly declared xml: prefix (as in xml:space).
const xmlNamespaceURL = "http://www.w3.org/XML/1998/namespace"

func elementName(name xml.Name, scope map[string]string) (string, error) {
	if name.Space == "" {
		return name.Local, nil
	}
	if name.Space == xmlNamespaceURL {
		return "xml:" + name.Local, nil
	}
	if prefix, ok := scope[name.Space]; ok {
		if prefix == "" {
			return name.Local, nil
		}
		return prefix + ":" + name.Local, nil
	}
	// The decoder leaves other undeclared prefixes unresolved, in which
	// case Space is the literal prefix rather than a URI.
	if !strings.ContainsAny(name.Space, ":/") {
		return name.Space + ":" + name.Local, nil
	}
	return "", fmt.Errorf("no prefix declared for namespace %q", name.Space)
}

func attrName(name xml.Name, scope map[string]string) (string, error) {
	switch {
	case name.Space == "xmlns":
		return "xmlns:" + name.Local, nil
	case name.Space == "" && name.Local == "xmlns":
		return "xmlns", nil
	case name.Space == "":
		return name.Local, nil
	case name.Space == xmlNamespaceURL:
		return "xml:" + name.Local, nil
	}
	// Attributes never take the default namespace, so "" bindings do not apply.
	if prefix, ok := scope[name.Space]; ok && prefix != "" {
		return prefix + ":" + name.Local, nil
	}
	if !strings.ContainsAny(name.Space, ":/") {
		return name.Space + ":" + name.Local, nil
	}
	return "", fmt.Errorf("no prefix declared for attribute namespace %q", name.Space)
}

func xmlnsDecls(attrs []xml.Attr) map[string]string {
	var decls map[string]string
	for _, a := range attrs {
		var prefix string
		switch {
		case a.Name.Space == "xmlns":
			prefix = a.Name.Local
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			prefix = ""
		default:
			continue
		}
		if decls == nil {
			decls = make(map[string]string)
		}
		decls[a.Value] = prefix
	}
	return decls
}

// Whitespace stays literal so that formatting between elements survives a
// round trip; xml.EscapeText would turn newlines into character references.
var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// Walk visits n and every descendant in document order. Returning false
// from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindAll returns n and every descendant named name, in document order.
func (n *Node) FindAll(name xml.Name) []*Node {
	var out []*Node
	n.Walk(func(m *Node) bool {
		if m.Name == name {
			out = append(out, m)
		}
		return true
	})
	return out
}

// ChildrenNamed returns the direct children of n named name.
func (n *Node) ChildrenNamed(name xml.Name) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}
