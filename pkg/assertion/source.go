package assertion

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strings"
	"sync"
)

const unavailableExpr = "<unavailable>"

type sourceFile struct {
	fset *token.FileSet
	file *ast.File
	src  []byte
}

// sources caches parsed files by path. A nil entry records a
// file that could not be read or parsed.
var sources sync.Map

func loadSource(path string) *sourceFile {
	if v, ok := sources.Load(path); ok {
		sf, _ := v.(*sourceFile)
		return sf
	}

	var sf *sourceFile
	if src, err := os.ReadFile(path); err == nil {
		fset := token.NewFileSet()
		if f, err := parser.ParseFile(fset, path, src, 0); err == nil {
			sf = &sourceFile{fset: fset, file: f, src: src}
		}
	}

	v, _ := sources.LoadOrStore(path, sf)
	sf, _ = v.(*sourceFile)
	return sf
}

// callSite is the source text of one assertion call and of
// each of its arguments.
type callSite struct {
	call string
	args []string
}

// callSites locates the calls to fn spanning loc.Line in
// loc.File. Calls enclosing another match are dropped, so nested
// calls resolve to the innermost one. Several sites remain when
// unrelated calls share the line.
func callSites(loc Location, fn string) []callSite {
	sf := loadSource(loc.File)
	if sf == nil {
		return nil
	}

	var matches []*ast.CallExpr
	ast.Inspect(sf.file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok || calleeName(call.Fun) != fn {
			return true
		}
		start := sf.fset.Position(call.Pos()).Line
		end := sf.fset.Position(call.End()).Line
		if loc.Line >= start && loc.Line <= end {
			matches = append(matches, call)
		}
		return true
	})

	var sites []callSite
	for _, c := range matches {
		if enclosesAny(c, matches) {
			continue
		}
		site := callSite{call: sf.text(c)}
		for _, a := range c.Args {
			site.args = append(site.args, sf.text(a))
		}
		sites = append(sites, site)
	}
	return sites
}

func enclosesAny(c *ast.CallExpr, calls []*ast.CallExpr) bool {
	for _, other := range calls {
		if other != c && other.Pos() >= c.Pos() && other.End() <= c.End() {
			return true
		}
	}
	return false
}

func (sf *sourceFile) text(n ast.Node) string {
	tf := sf.fset.File(n.Pos())
	if tf == nil {
		return unavailableExpr
	}
	from, to := tf.Offset(n.Pos()), tf.Offset(n.End())
	if from < 0 || to > len(sf.src) || from > to {
		return unavailableExpr
	}
	return strings.Join(strings.Fields(string(sf.src[from:to])), " ")
}

// calleeName returns the bare function name of a call target,
// unwrapping selectors and explicit type instantiations.
func calleeName(e ast.Expr) string {
	switch f := e.(type) {
	case *ast.Ident:
		return f.Name
	case *ast.SelectorExpr:
		return f.Sel.Name
	case *ast.IndexExpr:
		return calleeName(f.X)
	case *ast.IndexListExpr:
		return calleeName(f.X)
	}
	return ""
}

// argumentText returns the source text of argument i of the fn
// call at loc. Ambiguous lines render every candidate separated
// by " | ".
func argumentText(loc Location, fn string, i int) string {
	var parts []string
	for _, site := range callSites(loc, fn) {
		if i < len(site.args) {
			parts = append(parts, site.args[i])
		}
	}
	return joinSites(parts)
}

// callText returns the source text of the fn call at loc.
func callText(loc Location, fn string) string {
	var parts []string
	for _, site := range callSites(loc, fn) {
		parts = append(parts, site.call)
	}
	return joinSites(parts)
}

func joinSites(parts []string) string {
	if len(parts) == 0 {
		return unavailableExpr
	}
	return strings.Join(parts, " | ")
}
