package main

import (
	"flag"
	"fmt"
	"io"
)

func printUsage(w io.Writer, fset *flag.FlagSet) {

	fmt.Fprintf(w, "Usage: %s [flags] program%s|program%s\n\n", appName,
		clarityFileSuffix, timballoFileSuffix)

	fmt.Fprintln(w, "Flags:")
	fset.PrintDefaults()

	fmt.Fprintln(w)
	printStatementHelp(w)
}

func printStatementHelp(w io.Writer) {

	fmt.Fprintln(w, "Statements:")
	fmt.Fprintln(w, "\tsect <name> ... ;\tdefine a section")
	fmt.Fprintln(w, "\t-- text\t\tcomment")
	fmt.Fprintln(w, "\tprint $name\t\tprint a variable")
	fmt.Fprintln(w, "\tprint \"text\"\t\tprint a string")
	fmt.Fprintln(w, "\t$name = a op b\t\tassign (op is one of + - * / %)")
	fmt.Fprintln(w, "\t$name = %\t\tassign a line read from standard input")
	fmt.Fprintln(w, "\t@<section>\t\trun a section")
	fmt.Fprintln(w, "\tif a op b then stmt\trun stmt if true (op is == != >= <= < >)")
	fmt.Fprintln(w, "\texit\t\t\tstop the program")

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s programs (%s) run main; variables may be assigned"+
		" outside sections.\n", clarity, clarityFileSuffix)
	fmt.Fprintf(w, "%s programs (%s) run data then main; variables are"+
		" defined only in data.\n", timballo, timballoFileSuffix)
}

func printVersionInfo(w io.Writer) {

	fmt.Fprintf(w, "%s/%s interpreter version %s", clarity, timballo, VERSION)

	if buildTimestampStr != "" {
		fmt.Fprintf(w, " (built %s)", buildTimestampStr)
	}

	fmt.Fprintln(w)
}
