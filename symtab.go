package main

import (
	"sort"
)

//
// The variable table.  There is exactly one per program run, owned
// by the run driver and shared by every section.  There is no
// scoping: a variable stored anywhere is visible everywhere
//

func newSymtab(trace *tracer) *symtab {

	if trace == nil {
		trace = newTracer(nil, traceConfig{})
	}

	return &symtab{vars: make(map[string]value), trace: trace}
}

func (st *symtab) lookup(name string) (value, bool) {

	v, ok := st.vars[name]

	return v, ok
}

func (st *symtab) defined(name string) bool {

	_, ok := st.vars[name]

	return ok
}

func (st *symtab) store(name string, val value) {

	old, ok := st.vars[name]

	st.trace.traceVar(name, old, ok, val)

	st.vars[name] = val
}

func (st *symtab) names() []string {

	names := make([]string, 0, len(st.vars))

	for name := range st.vars {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

//
// Look up a variable reference for a statement, failing if it has
// never been assigned
//

func (st *symtab) fetch(name string) (value, error) {

	v, ok := st.vars[name]
	if !ok {
		return value{}, newRuntimeError(EUNDEFINEDVAR, name)
	}

	return v, nil
}
