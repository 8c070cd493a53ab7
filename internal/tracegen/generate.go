package tracegen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/printer"
	"go/token"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultCalltraceImport is the import path of the calltrace package used by generated code.
const DefaultCalltraceImport = "github.com/Aleph-Alpha/calltrace/pkg/calltrace"

// DefaultOutput is the file name generated decorators are written to.
const DefaultOutput = "tracing_gen.go"

// Options selects the interfaces to generate decorators for.
type Options struct {
	// Dir is the package directory declaring the interfaces.
	Dir string

	// Interfaces are the names of the interfaces to decorate, in output order.
	Interfaces []string

	// Output is the base name of the generated file. It is skipped when the
	// package is parsed. Defaults to DefaultOutput.
	Output string

	// CalltraceImport overrides DefaultCalltraceImport.
	CalltraceImport string
}

type param struct {
	name     string
	typ      string
	variadic bool
}

type method struct {
	name    string
	params  []param
	result  string
	withErr bool
}

type decorator struct {
	iface   string
	methods []method
}

// Generate renders one gofmt'ed file holding a traced decorator for each
// interface in opts. Every decorator method runs the wrapped call through the
// calltrace call wrappers, so the first parameter of each method must be a
// context.Context and at most one result besides a trailing error is allowed.
func Generate(opts Options) ([]byte, error) {
	if len(opts.Interfaces) == 0 {
		return nil, ErrNoInterfaces
	}
	if opts.Output == "" {
		opts.Output = DefaultOutput
	}
	if opts.CalltraceImport == "" {
		opts.CalltraceImport = DefaultCalltraceImport
	}

	pkg, err := parseDir(opts.Dir, opts.Output)
	if err != nil {
		return nil, err
	}

	imports := map[string]string{"calltrace": opts.CalltraceImport}
	decorators := make([]decorator, 0, len(opts.Interfaces))
	for _, name := range opts.Interfaces {
		d, used, err := pkg.decorator(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		for k, v := range used {
			imports[k] = v
		}
		decorators = append(decorators, d)
	}

	src := render(pkg.name, imports, decorators)
	out, err := format.Source(src)
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w", err)
	}
	return out, nil
}

func (p *sourcePackage) decorator(name string) (decorator, map[string]string, error) {
	_, it, file, err := p.lookupInterface(name)
	if err != nil {
		return decorator{}, nil, err
	}

	known := fileImports(file)
	used := map[string]bool{}
	d := decorator{iface: name}

	for _, field := range it.Methods.List {
		ft, ok := field.Type.(*ast.FuncType)
		if !ok || len(field.Names) == 0 {
			return decorator{}, nil, fmt.Errorf("%w: %s embeds %s", ErrUnsupportedInterface, name, p.expr(field.Type))
		}
		usedPackages(ft, used)

		m, err := p.method(field.Names[0].Name, ft, known)
		if err != nil {
			return decorator{}, nil, fmt.Errorf("%s.%s: %w", name, field.Names[0].Name, err)
		}
		d.methods = append(d.methods, m)
	}

	out := make(map[string]string, len(used))
	for qualifier := range used {
		importPath, ok := known[qualifier]
		if !ok {
			return decorator{}, nil, fmt.Errorf("%w: unknown package %s in %s", ErrUnsupportedInterface, qualifier, name)
		}
		out[qualifier] = importPath
	}
	return d, out, nil
}

func (p *sourcePackage) method(name string, ft *ast.FuncType, imports map[string]string) (method, error) {
	m := method{name: name}

	if ft.Params == nil || len(ft.Params.List) == 0 || !isContext(ft.Params.List[0].Type, imports) {
		return m, fmt.Errorf("%w: first parameter must be a context.Context", ErrUnsupportedMethod)
	}

	reserved := map[string]bool{"d": true, "calltrace": true}
	for qualifier := range imports {
		reserved[qualifier] = true
	}

	for _, field := range ft.Params.List {
		typ := p.expr(field.Type)
		_, variadic := field.Type.(*ast.Ellipsis)
		names := field.Names
		if len(names) == 0 {
			names = []*ast.Ident{nil}
		}
		for _, n := range names {
			idx := len(m.params)
			pname := ""
			if n != nil {
				pname = n.Name
			}
			switch {
			case idx == 0 && (pname == "" || pname == "_"):
				pname = "ctx"
			case pname == "" || pname == "_" || reserved[pname]:
				pname = fmt.Sprintf("p%d", idx)
			}
			m.params = append(m.params, param{name: pname, typ: typ, variadic: variadic})
		}
	}

	var results []string
	if ft.Results != nil {
		for _, field := range ft.Results.List {
			n := len(field.Names)
			if n == 0 {
				n = 1
			}
			for i := 0; i < n; i++ {
				results = append(results, p.expr(field.Type))
			}
		}
	}

	switch len(results) {
	case 0:
	case 1:
		if results[0] == "error" {
			m.withErr = true
		} else {
			m.result = results[0]
		}
	case 2:
		if results[1] != "error" {
			return m, fmt.Errorf("%w: the last of two results must be an error", ErrUnsupportedMethod)
		}
		m.result, m.withErr = results[0], true
	default:
		return m, fmt.Errorf("%w: %d results", ErrUnsupportedMethod, len(results))
	}
	return m, nil
}

func isContext(expr ast.Expr, imports map[string]string) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Context" {
		return false
	}
	id, ok := sel.X.(*ast.Ident)
	return ok && imports[id.Name] == "context"
}

func (p *sourcePackage) expr(expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, p.fset, expr); err != nil {
		return fmt.Sprintf("%T", expr)
	}
	return buf.String()
}

func render(pkgName string, imports map[string]string, decorators []decorator) []byte {
	var b bytes.Buffer

	b.WriteString("// Code generated by tracegen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkgName)
	writeImports(&b, imports)

	for _, d := range decorators {
		writeDecorator(&b, d)
	}
	return b.Bytes()
}

func writeImports(b *bytes.Buffer, imports map[string]string) {
	var std, external []string
	for name, importPath := range imports {
		line := fmt.Sprintf("%q", importPath)
		if defaultName(importPath) != name {
			line = name + " " + line
		}
		if strings.Contains(strings.SplitN(importPath, "/", 2)[0], ".") {
			external = append(external, line)
		} else {
			std = append(std, line)
		}
	}
	sort.Slice(std, func(i, j int) bool { return importKey(std[i]) < importKey(std[j]) })
	sort.Slice(external, func(i, j int) bool { return importKey(external[i]) < importKey(external[j]) })

	b.WriteString("import (\n")
	for _, line := range std {
		fmt.Fprintf(b, "\t%s\n", line)
	}
	if len(std) > 0 && len(external) > 0 {
		b.WriteString("\n")
	}
	for _, line := range external {
		fmt.Fprintf(b, "\t%s\n", line)
	}
	b.WriteString(")\n\n")
}

// importKey orders import lines by path, ignoring aliases.
func importKey(line string) string {
	return line[strings.Index(line, `"`):]
}

func defaultName(importPath string) string {
	return importName(&ast.ImportSpec{Path: &ast.BasicLit{Kind: token.STRING, Value: fmt.Sprintf("%q", importPath)}})
}

func writeDecorator(b *bytes.Buffer, d decorator) {
	typeName := "traced" + d.iface

	fmt.Fprintf(b, "// %s traces the calls of a %s.\n", typeName, d.iface)
	fmt.Fprintf(b, "type %s struct {\n\tnext %s\n\ttracer *calltrace.Tracer\n\tname string\n}\n\n", typeName, d.iface)

	fmt.Fprintf(b, "// NewTraced%s returns a %s whose calls are traced by tracer.\n", d.iface, d.iface)
	fmt.Fprintf(b, "func NewTraced%s(next %s, tracer *calltrace.Tracer) %s {\n", d.iface, d.iface, d.iface)
	fmt.Fprintf(b, "\treturn &%s{next: next, tracer: tracer, name: calltrace.TypeName(next)}\n}\n\n", typeName)

	fmt.Fprintf(b, "// Untraced returns the wrapped %s.\n", d.iface)
	fmt.Fprintf(b, "func (d *%s) Untraced() interface{} { return d.next }\n\n", typeName)

	for _, m := range d.methods {
		writeMethod(b, typeName, m)
	}
}

func writeMethod(b *bytes.Buffer, typeName string, m method) {
	ctx := m.params[0]
	sig := make([]string, 0, len(m.params))
	args := make([]string, 0, len(m.params))
	for _, p := range m.params {
		sig = append(sig, p.name+" "+p.typ)
		arg := p.name
		if p.variadic {
			arg += "..."
		}
		args = append(args, arg)
	}
	call := fmt.Sprintf("d.next.%s(%s)", m.name, strings.Join(args, ", "))
	label := fmt.Sprintf("d.name+%q", "."+m.name+"()")
	closureParam := ctx.name + " " + ctx.typ

	var results, helper, closureResults, body string
	switch {
	case m.result != "" && m.withErr:
		results = fmt.Sprintf(" (%s, error)", m.result)
		helper, closureResults, body = "return calltrace.Call", fmt.Sprintf(" (%s, error)", m.result), "return "+call
	case m.withErr:
		results = " error"
		helper, closureResults, body = "return calltrace.Exec", " error", "return "+call
	case m.result != "":
		results = " " + m.result
		helper, closureResults, body = "return calltrace.Value", " "+m.result, "return "+call
	default:
		helper, body = "calltrace.Run", call
	}

	fmt.Fprintf(b, "func (d *%s) %s(%s)%s {\n", typeName, m.name, strings.Join(sig, ", "), results)
	fmt.Fprintf(b, "\t%s(%s, d.tracer, %s, func(%s)%s {\n\t\t%s\n\t})\n}\n\n",
		helper, ctx.name, label, closureParam, closureResults, body)
}

// OutputPath joins dir and the configured output name.
func (o Options) OutputPath() string {
	name := o.Output
	if name == "" {
		name = DefaultOutput
	}
	return filepath.Join(o.Dir, name)
}
