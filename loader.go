package main

import (
	"strings"
)

//
// Split the program text into sections.  Statements are stored as
// raw text with their source line numbers; they are not lexed until
// they run.  Clarity programs may also assign variables outside any
// section, and those assignments execute right here, at load time
//

func (ip *interp) loadProgram(text string) (*program, error) {

	var cur *sectNode

	prog := newProgram()

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		sl := srcLine{lineNo: i + 1, text: line}

		switch {
		case hasKeyword(line, sectKeyword):
			name := strings.TrimSpace(line[len(sectKeyword):])
			if name == "" {
				return nil, newSyntaxError(EMISSINGSECTNAME).at(sl)
			}

			//
			// An open section that was never closed is dropped
			//

			cur = &sectNode{name: name, lineNo: sl.lineNo}

		case line == sectionCloser:
			if cur == nil {
				return nil, newSyntaxError(EUNEXPECTEDSEMI).at(sl)
			}

			prog.insertSection(cur)
			cur = nil

		case cur != nil:
			cur.stmts = append(cur.stmts, sl)

		case ip.dialect.allowsTopLevelAssign() && isAssignment(line):
			ctx := &execContext{vars: ip.vars}
			if err := ip.executeLine(ctx, sl); err != nil {
				return nil, err
			}

		default:
			return nil, newSyntaxError(ECODEOUTSIDESECTION).at(sl)
		}
	}

	if cur != nil {
		return nil, newSyntaxError(EUNCLOSEDSECTION, cur.name)
	}

	for _, name := range ip.dialect.entrySections() {
		if prog.lookupSection(name) == nil {
			return nil, newSyntaxError("%s", ip.dialect.missingSectionsMsg())
		}
	}

	return prog, nil
}
