package tracegen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var versionSuffix = regexp.MustCompile(`^v[0-9]+$`)

// sourcePackage is the parsed, non-test, non-generated part of a package directory.
type sourcePackage struct {
	fset  *token.FileSet
	name  string
	files []*ast.File
}

func parseDir(dir, skip string) (*sourcePackage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read package directory: %w", err)
	}

	pkg := &sourcePackage{fset: token.NewFileSet()}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || name == skip {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		file, err := parser.ParseFile(pkg.fset, filepath.Join(dir, name), nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		if ast.IsGenerated(file) {
			continue
		}
		if pkg.name == "" {
			pkg.name = file.Name.Name
		} else if pkg.name != file.Name.Name {
			return nil, fmt.Errorf("%s declares package %s, expected %s", name, file.Name.Name, pkg.name)
		}
		pkg.files = append(pkg.files, file)
	}

	if pkg.name == "" {
		return nil, fmt.Errorf("no Go source files in %s", dir)
	}
	return pkg, nil
}

// lookupInterface finds the interface declaration called name and the file declaring it.
func (p *sourcePackage) lookupInterface(name string) (*ast.TypeSpec, *ast.InterfaceType, *ast.File, error) {
	for _, file := range p.files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)
				if ts.Name.Name != name {
					continue
				}
				it, ok := ts.Type.(*ast.InterfaceType)
				if !ok {
					return nil, nil, nil, fmt.Errorf("%w: %s is not an interface", ErrInterfaceNotFound, name)
				}
				if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
					return nil, nil, nil, fmt.Errorf("%w: %s has type parameters", ErrUnsupportedInterface, name)
				}
				return ts, it, file, nil
			}
		}
	}
	return nil, nil, nil, fmt.Errorf("%w: %s", ErrInterfaceNotFound, name)
}

// importName returns the name a file refers to an import spec by.
func importName(spec *ast.ImportSpec) string {
	importPath := strings.Trim(spec.Path.Value, `"`)
	if spec.Name != nil {
		return spec.Name.Name
	}
	base := path.Base(importPath)
	if versionSuffix.MatchString(base) {
		base = path.Base(path.Dir(importPath))
	}
	return strings.ReplaceAll(base, "-", "_")
}

// fileImports maps the names used in file to their import paths.
func fileImports(file *ast.File) map[string]string {
	out := make(map[string]string, len(file.Imports))
	for _, spec := range file.Imports {
		out[importName(spec)] = strings.Trim(spec.Path.Value, `"`)
	}
	return out
}

// usedPackages collects the package qualifiers referenced by expr.
func usedPackages(expr ast.Expr, into map[string]bool) {
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if id, ok := sel.X.(*ast.Ident); ok {
			into[id.Name] = true
		}
		return false
	})
}
