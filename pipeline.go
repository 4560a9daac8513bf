package main

import (
	"github.com/cs-au-dk/absint/analysis/ir"
	"github.com/cs-au-dk/absint/pkgutil"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/tools/go/ssa"
)

// pipeline is the main package of the loaded program, in SSA form.
type pipeline struct {
	main *ssa.Package
}

// load loads a single source file or a package, and builds its SSA form.
func load(path string) (pipeline, error) {
	pkgs, err := pkgutil.LoadPackages(pkgutil.LoadConfig{
		GoPath:       opts.GoPath(),
		ModulePath:   opts.ModulePath(),
		IncludeTests: opts.IncludeTests(),
	}, path)
	if err != nil {
		return pipeline{}, err
	}

	log.Debugln("Building SSA...")
	_, spkgs := pkgutil.BuildSSA(pkgs)
	main := pkgutil.GetMain(spkgs)
	if main == nil {
		return pipeline{}, errors.Errorf("no main package in %s", path)
	}
	return pipeline{main}, nil
}

// entryFunctions converts the functions of the main package starting with
// prefix, in declaration order.
func (pl pipeline) entryFunctions(prefix string) ([]*ir.Function, error) {
	var funs []*ir.Function
	for _, fun := range pkgutil.EntryFunctions(pl.main, prefix) {
		irFun, err := ir.FromSSA(fun)
		if err != nil {
			return nil, errors.Wrapf(err, "converting %s", fun.Name())
		}

		opts.OnVerbose(func() {
			log.Debugln(irFun)
		})
		funs = append(funs, irFun)
	}
	return funs, nil
}
