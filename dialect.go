package main

import (
	"path/filepath"
	"strings"
)

//
// Everything that differs between Clarity and Timballo is answered
// here; the loader and evaluator only ask
//

func parseDialect(name string) (dialect, error) {

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return dialectUnset, nil

	case "clarity", "lnh":
		return clarity, nil

	case "timballo", "tim":
		return timballo, nil
	}

	return dialectUnset, newFileError(EUNKNOWNDIALECT, name)
}

func (d dialect) String() string {

	switch d {
	case clarity:
		return "Clarity"

	case timballo:
		return "Timballo"

	default:
		return "unset"
	}
}

func (d dialect) suffix() string {

	if d == timballo {
		return timballoFileSuffix
	}

	return clarityFileSuffix
}

//
// The sections that must exist, in the order they are run
//

func (d dialect) entrySections() []string {

	if d == timballo {
		return []string{dataSection, mainSection}
	}

	return []string{mainSection}
}

func (d dialect) missingSectionsMsg() string {

	if d == timballo {
		return ENOMAINORDATA
	}

	return ENOMAIN
}

func (d dialect) allowsTopLevelAssign() bool {

	return d == clarity
}

func (d dialect) keepsUndefinedOperands() bool {

	return d == clarity
}

func (d dialect) restrictsDefinitions() bool {

	return d == timballo
}

//
// Pick the dialect from the program's file suffix.  If the user forced
// a dialect, the suffix must agree with it.  Either way a bad suffix is
// fatal before the file is even opened
//

func selectDialect(filename string, forced dialect) (dialect, error) {

	suffix := strings.ToLower(filepath.Ext(filename))

	if forced != dialectUnset {
		if suffix != forced.suffix() {
			return dialectUnset, suffixError(filename, forced)
		}
		return forced, nil
	}

	switch suffix {
	case clarityFileSuffix:
		return clarity, nil

	case timballoFileSuffix:
		return timballo, nil
	}

	return dialectUnset, suffixError(filename, clarity, timballo)
}

func suffixError(filename string, want ...dialect) error {

	e := newFileError(EINVALIDSUFFIX)
	base := strings.TrimSuffix(filename, filepath.Ext(filename))

	for _, d := range want {
		e.hints = append(e.hints,
			"The "+d.String()+" programming language requires files to have a "+
				d.suffix()+" extension",
			"Please rename '"+filename+"' to '"+base+d.suffix()+"'")
	}

	return e
}
