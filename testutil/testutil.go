package testutil

import (
	"bytes"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"testing"

	"github.com/cs-au-dk/absint/analysis/ir"
	"github.com/cs-au-dk/absint/pkgutil"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
)

// LoadExampleAsPackages loads an example package to be used for a test.
func LoadExampleAsPackages(t *testing.T, pathToRoot string, pkg string) []*packages.Package {
	// Invoking the package tools is slow because it uses `go list` under the hood.
	// If the package doesn't have imports we can take a fast path by loading the
	// code manually and parsing it ourselves.
	srcDir := filepath.Join(pathToRoot, "examples", "src", pkg)
	if entries, err := os.ReadDir(srcDir); err == nil {
		if len(entries) == 1 {
			entry := entries[0]
			if !entry.IsDir() && entry.Name() == "main.go" {
				if content, err := os.ReadFile(filepath.Join(srcDir, "main.go")); err == nil &&
					// Assert no imports
					!bytes.Contains(content, []byte("import")) {
					return LoadSourceAsPackages(t, pkg, string(content))
				}
			}
		}
	}

	pkgs, err := pkgutil.LoadPackages(pkgutil.LoadConfig{GoPath: filepath.Join(pathToRoot, "examples")}, pkg)
	if err != nil {
		t.Fatal(err)
	}

	if len(pkgs) != 1 {
		t.Fatal("Example contains more than just a main package?")
	}
	return pkgs
}

func LoadSourceAsPackages(t *testing.T, importPath string, content string) []*packages.Package {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(
		fset,
		"main.go",
		content,
		parser.ParseComments)
	if err != nil {
		t.Fatal(err)
	}

	files := []*ast.File{file}

	// First argument is package path, the second is name.
	pkg := types.NewPackage(importPath, "main")
	info := &types.Info{
		Types:        make(map[ast.Expr]types.TypeAndValue),
		Defs:         make(map[*ast.Ident]types.Object),
		Uses:         make(map[*ast.Ident]types.Object),
		Implicits:    make(map[ast.Node]types.Object),
		Instances:    make(map[*ast.Ident]types.Instance),
		Scopes:       make(map[ast.Node]*types.Scope),
		Selections:   make(map[*ast.SelectorExpr]*types.Selection),
		FileVersions: make(map[*ast.File]string),
	}
	if err := types.NewChecker(
		&types.Config{Importer: importer.Default()},
		fset, pkg, info).Files(files); err != nil {
		t.Fatal(err)
	}

	// If the package does not have imports we can take a fast path.
	if len(pkg.Imports()) == 0 {
		return []*packages.Package{{
			ID:        "pkg-loaded-from-src",
			Name:      pkg.Name(),
			PkgPath:   pkg.Path(),
			Types:     pkg,
			Fset:      fset,
			Syntax:    files,
			TypesInfo: info,
		}}
	}

	// Otherwise we need to invoke the packages tool that can import code for
	// dependencies. The reason to not just do this for all packages is that
	// it's a lot slower than the above because it needs to invoke the go tool
	// in a subprocess.
	pkgs, err := pkgutil.LoadPackagesFromSource(content)
	if err != nil {
		t.Fatal(err)
	}
	return pkgs
}

// EntryFunctions builds the SSA form of the packages and converts the
// functions of the main package whose names start with prefix.
func EntryFunctions(t *testing.T, pkgs []*packages.Package, prefix string) []*ir.Function {
	_, spkgs := pkgutil.BuildSSA(pkgs)
	main := pkgutil.GetMain(spkgs)
	if main == nil {
		t.Fatal("No main package found")
	}

	var funs []*ir.Function
	for _, fun := range pkgutil.EntryFunctions(main, prefix) {
		funs = append(funs, FromSSA(t, fun))
	}
	if len(funs) == 0 {
		t.Fatalf("No function with prefix %q", prefix)
	}
	return funs
}

// FunctionFromSource returns the function with the given name, declared in a
// main package with the given content.
func FunctionFromSource(t *testing.T, content string, name string) *ir.Function {
	_, spkgs := pkgutil.BuildSSA(LoadSourceAsPackages(t, "test", content))
	fun := pkgutil.GetMain(spkgs).Func(name)
	if fun == nil {
		t.Fatalf("No function %s in source", name)
	}
	return FromSSA(t, fun)
}

func FromSSA(t *testing.T, fun *ssa.Function) *ir.Function {
	irFun, err := ir.FromSSA(fun)
	if err != nil {
		t.Fatal(err)
	}
	return irFun
}
