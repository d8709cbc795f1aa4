package main

import (
	"errors"
	"flag"
	"fmt"
	"golang.org/x/term"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"runtime/pprof"
	"strings"
	"syscall"
)

func main() {

	os.Exit(call(os.Stdout, func() int {
		return clarityMain(os.Args[1:])
	}))
}

func clarityMain(args []string) int {

	cfg, files, err := parseCommandLine(args, os.Stderr)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			return 0

		case errors.Is(err, errUsage):
			return 1
		}

		var ce *clarityError
		if errors.As(err, &ce) {
			fmt.Fprintln(os.Stdout, renderError(err, false))
		}

		return 1
	}

	if cfg.ShowVersion {
		printVersionInfo(os.Stdout)
		return 0
	}

	cfg.Color = cfg.Color && term.IsTerminal(int(os.Stdout.Fd()))

	//
	// Run the signal handling code in a goroutine
	//

	go sigHdlr()

	in := newInputReader(cfg, os.Stdin, os.Stdout)
	defer in.close()

	return runProgram(cfg, files[0], in, os.Stdout, os.Stderr)
}

//
// The whole pipeline for one program file: pick the dialect, read and
// load the source, then run it.  Program output and error reports go
// to out; traces, dumps and statistics go to errOut.  Returns the
// process exit status
//

func runProgram(cfg *config, filename string, in lineReader, out, errOut io.Writer) int {

	forced, err := parseDialect(cfg.Dialect)
	if err != nil {
		return reportError(out, err, cfg.Color)
	}

	d, err := selectDialect(filename, forced)
	if err != nil {
		return reportError(out, err, cfg.Color)
	}

	text, err := readProgramFile(filename)
	if err != nil {
		return reportError(out, err, cfg.Color)
	}

	ip := newInterp(d, in, out)
	ip.setTracer(newTracer(errOut, cfg.Trace))

	if cfg.Dump {
		ip.dump = errOut
	}

	if cfg.Stats {
		ip.initClock()
	}

	prog, err := ip.loadProgram(text)
	if err != nil {
		return reportError(out, err, cfg.Color)
	}

	ip.prog = prog
	ip.trace.traceSections(prog.sectionNames())

	if cfg.List {
		prog.list(out)
		return 0
	}

	err = ip.run()

	ip.trace.traceVarTable(ip.vars)

	if cfg.Stats {
		ip.printStatistics(errOut)
	}

	if err != nil {
		return reportError(out, err, cfg.Color)
	}

	return 0
}

func reportError(w io.Writer, err error, color bool) int {

	fmt.Fprintln(w, renderError(err, color))

	return 1
}

func writeGoroutineStacks() {

	name := "goroutines-stacks"
	mode := (os.O_CREATE | os.O_WRONLY)

	dumpFile, err := os.OpenFile(name, mode, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open %s (%v)\n", name, err)
		return
	}

	_ = pprof.Lookup("goroutine").WriteTo(dumpFile, 2)

	dumpFile.Close()

	fmt.Fprintf(os.Stderr, "Dumping goroutine stacks to %v and exiting\n", name)

	os.Exit(1)
}

//
// SIGINT is polled between statements, so an interrupted program
// stops with a normal runtime error at a statement boundary
//

func sigHdlr() {

	ch := make(chan os.Signal, 1)

	signal.Notify(ch, syscall.SIGQUIT)
	signal.Notify(ch, syscall.SIGINT)

	for {
		sig := <-ch

		switch sig {
		case syscall.SIGQUIT:
			writeGoroutineStacks() // does not return

		case syscall.SIGINT:
			interrupted.Store(true)
		}
	}
}

//
// Wrapper routine for the interpreter.  We need this so that panic
// calls can be caught and decoded before we exit.  Any panic means
// the run failed
//

func call(w io.Writer, f func() int) (status int) {

	defer func() {
		if e := recover(); e != nil {
			decodePanic(w, e)
			status = 1
		}
	}()

	return f()
}

//
// Two cases here: a call to fatalError, which tells us where it was
// called from, or a panic raised by the Go runtime.  For the latter
// it seems impossible to cleanly find the caller of panic, since
// there can be one or more support routines prior to that.  We scan
// the call stack, looking for a function named 'runtime.gopanic',
// and pick the next non-runtime frame
//

func decodePanic(w io.Writer, e any) {

	switch e := e.(type) {
	default:
		var panicFrame runtime.Frame
		var panicSeen bool
		var panicCount int

		pcs := make([]uintptr, 99)

		frames := runtime.CallersFrames(pcs[:runtime.Callers(1, pcs)])

		for {
			frame, more := frames.Next()

			if frame.Function == "runtime.gopanic" {
				panicSeen = true
				panicCount++
			} else if panicSeen {
				if !strings.HasPrefix(frame.Function, "runtime.") {
					panicFrame = frame
					panicSeen = false
				}
			}

			if !more {
				break
			}
		}

		msg := fmt.Sprint(e)
		if panicCount != 0 {
			msg = fmt.Sprintf("%v at %s line %d", e,
				filepath.Base(panicFrame.File), panicFrame.Line)
		}

		fmt.Fprintln(w, formatError("Internal Error", msg, 0, "", false))

		debug.PrintStack()

	case *internalErrorInfo:
		fmt.Fprintln(w, formatError("Internal Error",
			fmt.Sprintf("%q at %s line %d", e.msg, filepath.Base(e.file), e.line),
			0, "", false))

		debug.PrintStack()
	}
}
