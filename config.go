package main

import (
	"bytes"
	"errors"
	"flag"
	"gopkg.in/yaml.v3"
	"io"
	"io/fs"
	"math"
	"os"
	"strings"
)

//
// -trace may be given more than once: 'exec', 'vars', or the name of
// a single variable to watch
//

type traceFlag []string

func (tf *traceFlag) String() string {

	return strings.Join(*tf, ",")
}

func (tf *traceFlag) Set(s string) error {

	*tf = append(*tf, s)

	return nil
}

func (tf traceFlag) apply(tc *traceConfig) {

	for _, s := range tf {
		switch s {
		case "exec":
			tc.Exec = true

		case "vars":
			tc.Vars = true

		default:
			tc.Variables = append(tc.Variables, strings.TrimPrefix(s, sigil))
		}
	}
}

func defaultConfig() *config {

	return &config{Color: true}
}

//
// Merge a YAML config file into cfg.  The default file is optional;
// one named on the command line must exist
//

func loadConfigFile(cfg *config, path string, mustExist bool) error {

	data, err := os.ReadFile(path)
	if err != nil {
		if !mustExist && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return newFileError(EBADCONFIG, path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return newFileError(EBADCONFIG, path, err)
	}

	return nil
}

//
// Flags win over the config file, which wins over the defaults.  We
// only copy the flags the user actually set, so an unset boolean
// flag does not clobber a config file value
//

func parseCommandLine(args []string, errOut io.Writer) (*config, []string, error) {

	var traces traceFlag

	fset := flag.NewFlagSet(appName, flag.ContinueOnError)
	fset.SetOutput(errOut)

	configPath := fset.String("config", "", "read settings from this YAML file")
	dialectName := fset.String("dialect", "", "force the dialect (clarity or timballo)")
	color := fset.Bool("color", true, "highlight error messages")
	stats := fset.Bool("stats", false, "print execution statistics when the program stops")
	dump := fset.Bool("dump", false, "dump each statement node before it runs")
	list := fset.Bool("list", false, "list the program's sections and exit")
	readPrompt := fset.String("prompt", "", "prompt shown when the program reads a line")
	readTimeout := fset.Int("timeout", 0, "seconds to wait for a line of input (terminal only)")
	version := fset.Bool("version", false, "print version information and exit")
	fset.Var(&traces, "trace", "trace 'exec', 'vars' or a variable name (repeatable)")

	fset.Usage = func() {
		printUsage(fset.Output(), fset)
	}

	if err := fset.Parse(args); err != nil {
		return nil, nil, err
	}

	if !*version && fset.NArg() != 1 {
		fset.Usage()
		return nil, nil, errUsage
	}

	cfg := defaultConfig()

	path, mustExist := *configPath, true
	if path == "" {
		path, mustExist = defaultConfigFile, false
	}

	if err := loadConfigFile(cfg, path, mustExist); err != nil {
		return nil, nil, err
	}

	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dialect":
			cfg.Dialect = *dialectName

		case "color":
			cfg.Color = *color

		case "stats":
			cfg.Stats = *stats

		case "dump":
			cfg.Dump = *dump

		case "prompt":
			cfg.ReadPrompt = *readPrompt

		case "timeout":
			cfg.ReadTimeout = int16(min(max(*readTimeout, 0), math.MaxInt16))

		case "trace":
			traces.apply(&cfg.Trace)
		}
	})

	cfg.List = *list
	cfg.ShowVersion = *version

	return cfg, fset.Args(), nil
}
