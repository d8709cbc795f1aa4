package main

import (
	"fmt"
	"github.com/danswartzendruber/avl"
	"io"
)

//
// A set of wrapper routines to the AVL package.  The section table
// is an AVL tree ordered by section name.  We do this to hide the
// AVL interface from the rest of the interpreter
//

func newProgram() *program {

	return &program{}
}

//
// Add a section to the table.  A program may define the same section
// twice; the later definition wins, as if the table were a map
//

func (prog *program) insertSection(sect *sectNode) {

	if old := prog.lookupSection(sect.name); old != nil {
		old.stmts = sect.stmts
		old.lineNo = sect.lineNo
		return
	}

	p := avl.AvlTreeInsert(&prog.root, &sect.avl, sect, cmpSectNode)
	if p != nil {
		fatalError("Section %q already in tree???", sect.name)
	}

	prog.count++
}

func (prog *program) lookupSection(name string) *sectNode {

	p := avl.AvlTreeLookup(prog.root, name, cmpSectKey)
	if p != nil {
		return p.(*sectNode)
	} else {
		return nil
	}
}

func (prog *program) firstSection() *sectNode {

	p := avl.AvlTreeFirstInOrder(prog.root)
	if p != nil {
		return p.(*sectNode)
	} else {
		return nil
	}
}

func (prog *program) nextSection(sect *sectNode) *sectNode {

	p := avl.AvlTreeNextInOrder(&sect.avl)
	if p != nil {
		return p.(*sectNode)
	} else {
		return nil
	}
}

func (prog *program) sectionNames() []string {

	names := make([]string, 0, prog.count)

	for sect := prog.firstSection(); sect != nil; sect = prog.nextSection(sect) {
		names = append(names, sect.name)
	}

	return names
}

//
// Write the program back out in canonical form, sections in name order
//

func (prog *program) list(w io.Writer) {

	for sect := prog.firstSection(); sect != nil; sect = prog.nextSection(sect) {
		fmt.Fprintf(w, "%s %s\n", sectKeyword, sect.name)

		for _, sl := range sect.stmts {
			fmt.Fprintf(w, "%5d  %s\n", sl.lineNo, sl.text)
		}

		fmt.Fprintln(w, sectionCloser)
	}
}

func cmpSectKey(key any, node any) int {

	return cmpStringItems(key.(string), node.(*sectNode).name)
}

func cmpSectNode(node1, node2 any) int {

	return cmpStringItems(node1.(*sectNode).name, node2.(*sectNode).name)
}

func cmpStringItems(item1, item2 string) int {

	if item1 < item2 {
		return -1
	} else if item1 > item2 {
		return 1
	} else {
		return 0
	}
}
