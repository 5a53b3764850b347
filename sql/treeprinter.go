package sql

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// TreePrinter is a printer for tree nodes.
type TreePrinter struct {
	buf          bytes.Buffer
	written      bool
	childrenDone bool
}

// NewTreePrinter creates a new tree printer.
func NewTreePrinter() *TreePrinter {
	return new(TreePrinter)
}

var (
	// ErrNodeAlreadyWritten is returned when the node has already been
	// written.
	ErrNodeAlreadyWritten = errors.New("treeprinter: node already written")
	// ErrNodeNotWritten is returned when the children are written before
	// the node.
	ErrNodeNotWritten = errors.New("treeprinter: node must be written before children")
	// ErrChildrenAlreadyWritten is returned when the children have already
	// been written.
	ErrChildrenAlreadyWritten = errors.New("treeprinter: children already written")
)

// WriteNode writes the main node.
func (p *TreePrinter) WriteNode(format string, args ...interface{}) error {
	if p.written {
		return ErrNodeAlreadyWritten
	}
	_, err := fmt.Fprintf(&p.buf, format+"\n", args...)
	if err != nil {
		return err
	}
	p.written = true
	return nil
}

// WriteChildren writes the children of the node, which can be children
// trees already printed.
func (p *TreePrinter) WriteChildren(children ...string) error {
	if !p.written {
		return ErrNodeNotWritten
	}
	if p.childrenDone {
		return ErrChildrenAlreadyWritten
	}
	p.childrenDone = true

	for i, child := range children {
		last := i+1 == len(children)
		lines := strings.Split(strings.TrimRight(child, "\n"), "\n")
		for j, line := range lines {
			var prefix string
			switch {
			case j == 0 && last:
				prefix = " └─ "
			case j == 0:
				prefix = " ├─ "
			case last:
				prefix = "    "
			default:
				prefix = " │  "
			}
			_, err := fmt.Fprintf(&p.buf, "%s%s\n", prefix, line)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// String returns the output of the printed tree.
func (p *TreePrinter) String() string {
	return p.buf.String()
}
