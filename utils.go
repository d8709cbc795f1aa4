package main

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/danswartzendruber/liner"
	"github.com/rs/zerolog"
	"github.com/tklauser/go-sysconf"
	"golang.org/x/term"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
)

//
// Tracing.  Output goes to standard error through zerolog, so a
// traced run prints exactly the same on standard output as an
// untraced one
//

type tracer struct {
	log        zerolog.Logger
	exec       bool
	vars       bool
	tracedVars map[string]bool
}

func newTracer(w io.Writer, tc traceConfig) *tracer {

	t := &tracer{exec: tc.Exec, vars: tc.Vars, tracedVars: make(map[string]bool)}

	for _, name := range tc.Variables {
		t.tracedVars[strings.TrimPrefix(name, sigil)] = true
	}

	if w == nil {
		t.log = zerolog.Nop()
		return t
	}

	cw := zerolog.ConsoleWriter{Out: w, NoColor: true,
		PartsExclude: []string{zerolog.TimestampFieldName}}

	t.log = zerolog.New(cw).With().Str("component", "trace").Logger()

	return t
}

func (t *tracer) traceStmt(section string, sl srcLine) {

	if !t.exec {
		return
	}

	t.log.Info().Str("section", section).Int("line", sl.lineNo).Msg(sl.text)
}

func (t *tracer) traceVar(name string, old value, defined bool, val value) {

	if !t.vars && !t.tracedVars[name] {
		return
	}

	ev := t.log.Info().Str("variable", sigil+name)

	if defined {
		ev = ev.Str("from", old.String())
	}

	ev.Str("to", val.String()).Msg("changed")
}

//
// Exec tracing opens with the section table, in name order
//

func (t *tracer) traceSections(names []string) {

	if !t.exec {
		return
	}

	t.log.Info().Strs("sections", names).Msg("loaded")
}

//
// With vars tracing on, the final value of every variable is logged
// when the run stops
//

func (t *tracer) traceVarTable(st *symtab) {

	if !t.vars {
		return
	}

	for _, name := range st.names() {
		v, _ := st.lookup(name)
		t.log.Info().Str("variable", sigil+name).Str("value", v.String()).Msg("final")
	}
}

//
// Line sources for the read marker.  On a terminal we use liner, so
// the user gets line editing; otherwise plain buffered reads, so
// input can be piped in
//

type bufferedLineReader struct {
	r *bufio.Reader
}

type terminalLineReader struct {
	state   *liner.State
	prompt  string
	timeout int16
}

func newBufferedLineReader(r io.Reader) *bufferedLineReader {

	return &bufferedLineReader{r: bufio.NewReader(r)}
}

func (br *bufferedLineReader) readLine() (string, error) {

	s, err := br.r.ReadString('\n')
	if err == io.EOF && len(s) > 0 {
		err = nil
	}

	if err != nil {
		return "", err
	}

	return strings.TrimRight(s, "\r\n"), nil
}

func (br *bufferedLineReader) close() {
	// nothing to do
}

//
// The liner state is created on the first read, so a program that
// never reads leaves the terminal alone
//

func (tr *terminalLineReader) readLine() (string, error) {

	if tr.state == nil {
		tr.state = liner.NewLiner()
		tr.state.SetCtrlCAborts(true)

		if tr.timeout > 0 {
			if err := tr.state.SetTimeout(tr.timeout); err != nil {
				return "", err
			}
		}
	}

	return tr.state.Prompt(tr.prompt)
}

//
// Restore terminal state
//

func (tr *terminalLineReader) close() {

	if tr.state != nil {
		tr.state.Close()
		tr.state = nil
	}
}

func newInputReader(cfg *config, stdin, stdout *os.File) lineReader {

	if term.IsTerminal(int(stdin.Fd())) && term.IsTerminal(int(stdout.Fd())) {
		return &terminalLineReader{prompt: cfg.ReadPrompt, timeout: cfg.ReadTimeout}
	}

	return newBufferedLineReader(stdin)
}

//
// Map the line source errors to language errors
//

func mapInputError(err error) error {

	switch {
	case errors.Is(err, io.EOF):
		return newRuntimeError(EENDOFINPUT)

	case errors.Is(err, liner.ErrPromptAborted):
		return newRuntimeError(EINTERRUPTED)

	case errors.Is(err, liner.ErrTimedOut):
		return newRuntimeError(ETIMEOUT)
	}

	return newRuntimeError("%v", err)
}

//
// Read the whole program source.  A missing file and an unreadable
// one are told apart, as the user fixes them differently
//

func readProgramFile(filename string) (string, error) {

	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", newFileError(EFILENOTFOUND, filename)
		}

		var pErr *fs.PathError
		if errors.As(err, &pErr) {
			err = pErr.Err
		}

		return "", newFileError(EREADFAILED, err)
	}

	return string(data), nil
}

func pluralize(str string, num int64) string {

	//
	// Oddity: 0 is considered plural
	//

	if num != 1 {
		return str + "s"
	}

	return str
}

//
// Initialize the clock
//

func (ip *interp) initClock() {

	ip.stats.elapsed = time.Now()
	ip.stats.utime, ip.stats.stime, _ = getCPUInfo(1)
}

func (ip *interp) printStatistics(w io.Writer) {

	n := ip.stats.numStatements

	fmt.Fprintf(w, "%d %s executed\n", n, pluralize("statement", n))

	elapsed := time.Since(ip.stats.elapsed)

	utime, stime, err := getCPUInfo(1)
	if err != nil {
		fmt.Fprintf(w, "CPU Usage: elapsed = %s / user = n/a / system = n/a\n",
			formatCPUTime(int64(elapsed.Seconds())))
		return
	}

	fmt.Fprintf(w, "CPU Usage: elapsed = %s / user = %s / system = %s\n",
		formatCPUTime(int64(elapsed.Seconds())),
		formatCPUTime(utime-ip.stats.utime), formatCPUTime(stime-ip.stats.stime))
}

func formatCPUTime(t int64) string {

	var h, m int64

	if t >= 3600 {
		h = t / 3600
		t = t % 3600
	}

	if t >= 60 {
		m = t / 60
		t = t % 60
	}

	return fmt.Sprintf("%02d:%02d:%02d", h, m, t)
}

//
// User and system CPU seconds for this process, from /proc.  Fields
// 14 and 15 of /proc/self/stat are in clock ticks
//

func getCPUInfo(divisor int64) (int64, int64, error) {

	clktck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil {
		return 0, 0, err
	}

	clktck /= divisor
	if clktck <= 0 {
		return 0, 0, fmt.Errorf("bad clock tick rate %d", clktck)
	}

	contents, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		return 0, 0, err
	}

	fields := strings.Fields(string(contents))
	if len(fields) < 15 {
		return 0, 0, fmt.Errorf("short /proc/self/stat")
	}

	utime, err := strconv.ParseInt(fields[13], 10, 64)
	if err != nil {
		return 0, 0, err
	}

	stime, err := strconv.ParseInt(fields[14], 10, 64)
	if err != nil {
		return 0, 0, err
	}

	return utime / clktck, stime / clktck, nil
}
