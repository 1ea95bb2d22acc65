package board

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// The KiCad file format is an S-expression tree. The node type below is the
// writing counterpart of the reading-side parser this tool family uses: each
// node has a name, a flat list of atoms, and child nodes that are printed
// indented on their own lines.

// atom is a single value inside a node. Strings are quoted, symbols and
// numbers are emitted bare.
type atom struct {
	text   string
	quoted bool
}

type node struct {
	name     string
	atoms    []atom
	children []*node
}

func newNode(name string) *node {
	return &node{name: name}
}

// Sym appends a bare symbol atom (layer kinds, fill types, ...).
func (n *node) Sym(s string) *node {
	n.atoms = append(n.atoms, atom{text: s})
	return n
}

// Str appends a quoted string atom with KiCad escaping.
func (n *node) Str(s string) *node {
	n.atoms = append(n.atoms, atom{text: s, quoted: true})
	return n
}

// Num appends a numeric atom formatted the way pcbnew writes coordinates:
// shortest decimal representation, no exponent.
func (n *node) Num(v float64) *node {
	n.atoms = append(n.atoms, atom{text: formatNum(v)})
	return n
}

// Int appends an integer atom.
func (n *node) Int(v int) *node {
	n.atoms = append(n.atoms, atom{text: strconv.Itoa(v)})
	return n
}

// Child appends and returns a new named child node.
func (n *node) Child(name string) *node {
	c := newNode(name)
	n.children = append(n.children, c)
	return c
}

// Add appends existing child nodes.
func (n *node) Add(children ...*node) *node {
	n.children = append(n.children, children...)
	return n
}

func formatNum(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		s = "0"
	}
	return s
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// write prints the node tree with two-space indentation per level, one child
// per line, matching the layout pcbnew itself produces.
func (n *node) write(w io.Writer, depth int) error {
	indent := strings.Repeat("  ", depth)

	var b strings.Builder
	b.WriteString(indent)
	b.WriteByte('(')
	b.WriteString(n.name)
	for _, a := range n.atoms {
		b.WriteByte(' ')
		if a.quoted {
			b.WriteString(quote(a.text))
		} else {
			b.WriteString(a.text)
		}
	}

	if len(n.children) == 0 {
		b.WriteString(")\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteByte('\n')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := c.write(w, depth+1); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s)\n", indent); err != nil {
		return err
	}
	return nil
}
