package utils

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
)

type options struct {
	minlen       uint
	nodesep      float64
	function     string
	configFile   string
	outputFormat string
	outputName   string
	gopath       string
	modulePath   string
	task         string
	noColorize   bool
	verbose      bool
	includeTests bool
}

const (
	_SEPARATION = iota
	_SEPARATION_LOOP
	_INTERVAL
	_INTERVAL_LOOP
	_TAINT
	_TAINT_LOOP
	_CFG_TO_DOT
	_CAN_BUILD
)

func CanColorize(col func(...interface{}) string) func(...interface{}) string {
	if opts.noColorize {
		return func(is ...interface{}) string {
			return fmt.Sprintf(strings.Repeat("%s", len(is)), is...)
		}
	}
	return col
}

var task = []struct{ flag, explanation string }{{
	"separation",
	"Track exact integer values and report the separation of every pair of named variables",
}, {
	"separation-loop",
	"Report separations over intervals, widening slots that grow by a constant step at a store",
}, {
	"interval",
	"Interval analysis over explored paths, pruning infeasible branches",
}, {
	"interval-loop",
	"Interval analysis up to a fixed point, with widening and narrowing at loops",
}, {
	"taint",
	"Propagate taint from variables named with the source prefix, reported at returns",
}, {
	"taint-loop",
	"Taint analysis that stops expanding a block once its incoming taint set repeats",
}, {
	"cfg-to-dot",
	"Create a graph for the control-flow graph of the entry functions",
}, {
	"check-can-build",
	"Performs a mock building of the package, attempting SSA construction",
}}

var opts = &options{}

type optInterface struct{}

type taskInterface struct{}

func Opts() optInterface {
	return optInterface{}
}

func (optInterface) Minlen() uint {
	return opts.minlen
}
func (optInterface) Nodesep() float64 {
	return opts.nodesep
}
func (optInterface) OutputFormat() string {
	return opts.outputFormat
}
func (optInterface) OutputName() string {
	return opts.outputName
}
func (optInterface) GoPath() string {
	return opts.gopath
}
func (optInterface) ModulePath() string {
	return opts.modulePath
}
func (optInterface) Verbose() bool {
	return opts.verbose
}
func (optInterface) IncludeTests() bool {
	return opts.includeTests
}
func (optInterface) Task() taskInterface {
	return taskInterface{}
}

// Name of the selected task, as given to -task.
func (taskInterface) Name() string {
	return opts.task
}
func (taskInterface) IsCfgToDot() bool {
	return opts.task == task[_CFG_TO_DOT].flag
}
func (taskInterface) IsCanBuild() bool {
	return opts.task == task[_CAN_BUILD].flag
}

// IsAbstractInterpretation holds for the tasks that run one of the analyses.
func (t taskInterface) IsAbstractInterpretation() bool {
	return !t.IsCfgToDot() && !t.IsCanBuild()
}

func init() {
	taskFlag := "\n"
	for _, task := range task {
		taskFlag += task.flag + " -- " + task.explanation + "\n"
	}
	taskFlag += "\n"

	flag.UintVar(&(opts.minlen), "minlen", 2, "Minimum edge length (for wider output).")
	flag.Float64Var(&(opts.nodesep), "nodesep", 0.35, "Minimum space between two adjacent nodes in the same rank (for taller output).")
	flag.StringVar(&(opts.function), "fun", "main", "analyze every function whose name starts with the given prefix.\n"+
		"- Functions are analyzed in declaration order.\n")
	flag.StringVar(&(opts.configFile), "config", "", "TOML file overriding the analysis thresholds")
	flag.StringVar(&(opts.outputFormat), "format", "svg", "output file format [svg | png | jpg | ...]")
	flag.StringVar(&(opts.outputName), "o", "cfg", "base name of the files written by cfg-to-dot")
	flag.StringVar(&(opts.gopath), "gopath", "examples", "specify GOPATH to be used for packages.Load")
	flag.StringVar(&(opts.modulePath), "modulepath", "", `specify a path to a directory containing a Go module.
- If provided this will make our code loading tools (that piggyback on Go's tools) run
in "module-aware" mode (GO111MODULE=on).`)
	flag.StringVar(&(opts.task), "task", task[_INTERVAL_LOOP].flag, "Set the task to do during execution. Options:"+taskFlag)
	flag.BoolVar(&(opts.noColorize), "no-colorize", false, "Disable pretty printer colorization")
	flag.BoolVar(&(opts.verbose), "verbose", false, "enable verbose output")
	flag.BoolVar(&(opts.includeTests), "include-tests", false, "include main package test files in the analysis.")

	// Set up logging
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
	})
}

func ParseArgs() {
	// Calling flag.Parse in init messes up unit tests.
	// See https://stackoverflow.com/questions/60235896/flag-provided-but-not-defined-test-v
	flag.Parse()

	validTask := false
	for _, task := range task {
		if task.flag == opts.task {
			validTask = true
			break
		}
	}

	if !validTask {
		log.Fatalf("Value \"%s\" is not valid for -task", opts.task)
	}

	if Opts().Task().IsCfgToDot() {
		opts.noColorize = true
	}
	if opts.noColorize {
		color.NoColor = true
	}
	if opts.verbose {
		log.SetLevel(log.DebugLevel)
	}
}

func (optInterface) OnVerbose(do func()) {
	if Opts().Verbose() {
		do()
	}
}
