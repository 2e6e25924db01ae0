// Command taasfudge is the competition CLI entry point: parse a track,
// an input framework, and an optional query argument, dispatch through
// the reasoner, and print the result per the ICCMA output contract.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/mthimm/taas-fudge-go/af"
	"github.com/mthimm/taas-fudge-go/format/iccma"
	"github.com/mthimm/taas-fudge-go/format/tgf"
	"github.com/mthimm/taas-fudge-go/reasoner"
	"github.com/mthimm/taas-fudge-go/satsolver"
)

const (
	description = "taasfudge: a SAT-based reasoner for abstract argumentation frameworks"
	formats     = "[i23,tgf]"
	problems    = "[SE-GR,EE-GR,DC-GR,DS-GR,SE-CO,DS-CO,DC-CO,SE-PR,DC-PR,DS-PR,SE-ST,DC-ST,DS-ST,SE-ID,DC-ID,DS-ID,SE-SST,DC-SST,DS-SST,SE-STG,DC-STG,DS-STG,CE-CO,CE-ST,CE-PR,EA-PR]"
)

// config holds the optional --config file defaults (the CLI's ambient
// configuration layer): a SAT adapter kind, a default SAT binary path,
// and a log level, so operators need not repeat -sat on every call.
type config struct {
	SATKind  string `yaml:"sat_kind"`
	SATBin   string `yaml:"sat_binary"`
	LogLevel string `yaml:"log_level"`
}

func loadConfig(path string) (config, error) {
	var cfg config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseSATKind(name string) satsolver.Kind {
	switch name {
	case "external":
		return satsolver.KindExternal
	case "buffer":
		return satsolver.KindBuffer
	default:
		return satsolver.KindGini
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("taasfudge", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	track := flags.StringP("p", "p", "", "track, e.g. DC-PR")
	file := flags.StringP("f", "f", "", "input file path")
	formatFlag := flags.StringP("fo", "", "i23", "input format: i23 or tgf")
	argFlag := flags.StringP("a", "a", "", "query argument (name or id), required for DC-*/DS-*")
	satPath := flags.String("sat", "", "path to external SAT binary")
	satKind := flags.String("sat-kind", "gini", "SAT backend: gini, external, buffer")
	witness := flags.Bool("w", false, "print a witness extension for DC-*/DS-* tracks")
	configPath := flags.String("config", "", "path to a YAML config file of defaults")
	showFormats := flags.Bool("formats", false, "print supported formats and exit")
	showProblems := flags.Bool("problems", false, "print supported problems and exit")

	// pflag reads a single-dash word as a run of one-letter shorthands, so
	// the single-dash long flags -fo and -sat are rewritten to --fo/--sat.
	normalized := make([]string, len(args))
	for i, arg := range args {
		if arg == "-fo" || arg == "-sat" {
			arg = "-" + arg
		}
		normalized[i] = arg
	}
	if err := flags.Parse(normalized); err != nil {
		return 0
	}

	if *showFormats {
		fmt.Fprintln(stdout, formats)
		return 0
	}
	if *showProblems {
		fmt.Fprintln(stdout, problems)
		return 0
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logrus.WithError(err).Error("failed to load config file")
		fmt.Fprintln(stdout, "configuration error: could not read config file")
		return 0
	}
	if *satKind == "gini" && cfg.SATKind != "" {
		*satKind = cfg.SATKind
	}
	if *satPath == "" && cfg.SATBin != "" {
		*satPath = cfg.SATBin
	}
	if cfg.LogLevel != "" {
		if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
			logrus.SetLevel(level)
		}
	}
	logrus.SetOutput(stderr)

	if *track == "" || *file == "" {
		fmt.Fprintln(stdout, description)
		return 0
	}

	tr, err := reasoner.ParseTrack(*track)
	if err != nil {
		logrus.WithError(err).Debug("configuration error")
		fmt.Fprintf(stdout, "configuration error: %v\n", err)
		return 0
	}

	fh, err := os.Open(*file)
	if err != nil {
		fmt.Fprintf(stderr, "input error: %v\n", err)
		return 2
	}
	defer fh.Close()

	var a *af.AF
	switch *formatFlag {
	case "tgf":
		a, err = tgf.Parse(fh)
	default:
		a, err = iccma.Parse(fh)
	}
	if err != nil {
		fmt.Fprintf(stderr, "input error: %v\n", err)
		return 2
	}

	spec := reasoner.TaskSpec{
		Track:         tr,
		Witness:       *witness,
		SATKind:       parseSATKind(*satKind),
		SATBinaryPath: *satPath,
	}
	if tr.NeedsArgument() {
		if *argFlag == "" {
			fmt.Fprintln(stdout, "configuration error: track requires -a")
			return 0
		}
		id, err := resolveArgument(a, *formatFlag, *argFlag)
		if err != nil {
			fmt.Fprintf(stdout, "configuration error: %v\n", err)
			return 0
		}
		spec.Arg, spec.HasArg = id, true
	}

	logrus.WithFields(logrus.Fields{
		"track":     tr.String(),
		"arguments": a.N,
		"attacks":   a.NumAttacks(),
	}).Debug("dispatching task")

	res, err := reasoner.Dispatch(spec, a)
	if err != nil {
		logrus.WithError(err).Error("SAT error")
		fmt.Fprintf(stderr, "sat error: %v\n", err)
		return -1
	}

	printResult(stdout, tr, res, a)
	return 0
}

// resolveArgument maps the -a flag's value to a dense argument id: for
// tgf, it is looked up by name in AF.Names; for i23, it is parsed as the
// file's 1-based numbering.
func resolveArgument(a *af.AF, format, value string) (int, error) {
	if format == "tgf" {
		for i, name := range a.Names {
			if name == value {
				return i, nil
			}
		}
		return 0, fmt.Errorf("unknown argument name %q", value)
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid argument id %q", value)
	}
	return id - 1, nil
}

func printResult(stdout io.Writer, tr reasoner.Track, res *reasoner.Result, a *af.AF) {
	switch tr.Mode {
	case reasoner.ModeDC, reasoner.ModeDS:
		if res.Decision {
			fmt.Fprintln(stdout, "YES")
		} else {
			fmt.Fprintln(stdout, "NO")
		}
		if res.HasWitness {
			printWitness(stdout, a, res.Witness)
		}
	case reasoner.ModeSE, reasoner.ModeEE, reasoner.ModeEA:
		if !res.HasWitness {
			fmt.Fprintln(stdout, "NO")
			return
		}
		printWitness(stdout, a, res.Witness)
	case reasoner.ModeCE:
		fmt.Fprintln(stdout, res.Count)
	}
}

func printWitness(stdout io.Writer, a *af.AF, witness []int) {
	fmt.Fprint(stdout, "w")
	for _, id := range witness {
		fmt.Fprintf(stdout, " %s", a.Name(id))
	}
	fmt.Fprintln(stdout)
}
