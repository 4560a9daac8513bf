package pkgutil

import (
	"sort"
	"strings"

	"golang.org/x/tools/go/ssa"
)

// GetMain determines what is the main package as follows:
// 1. Take the package with the most members
// 2. Skip the package suffixed with .test
func GetMain(mains []*ssa.Package) (main *ssa.Package) {
	for _, mp := range mains {
		if mp == nil || strings.HasSuffix(mp.String(), ".test") {
			continue
		}
		if main == nil || len(main.Members) < len(mp.Members) {
			main = mp
		}
	}
	return
}

// EntryFunctions lists the functions of the package whose name starts with
// the given prefix, in declaration order.
func EntryFunctions(pkg *ssa.Package, prefix string) (funs []*ssa.Function) {
	for name, member := range pkg.Members {
		if fun, ok := member.(*ssa.Function); ok && strings.HasPrefix(name, prefix) && len(fun.Blocks) > 0 {
			funs = append(funs, fun)
		}
	}

	sort.Slice(funs, func(i, j int) bool {
		if pi, pj := funs[i].Pos(), funs[j].Pos(); pi != pj {
			return pi < pj
		}
		return funs[i].Name() < funs[j].Name()
	})
	return
}

// AllPackages aggregates all non-synthetic test packages that
// contain at least one member in a slice.
func AllPackages(prog *ssa.Program) []*ssa.Package {
	mp := make(map[string]*ssa.Package)

	for _, pkg := range prog.AllPackages() {
		if strings.HasSuffix(pkg.String(), ".test") {
			continue
		}

		opkg, ok := mp[pkg.String()]
		if !ok || len(pkg.Members) > len(opkg.Members) {
			mp[pkg.String()] = pkg
		}
	}

	res := make([]*ssa.Package, 0, len(mp))
	for _, pkg := range mp {
		res = append(res, pkg)
	}

	return res
}
