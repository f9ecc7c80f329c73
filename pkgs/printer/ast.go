package printer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/sourcelang/pytac/pkgs/ast"
)

var astTemplates = template.Must(template.New("ast").Parse(`
{{define "int"}}Int({{.Value}}){{end}}
{{define "float"}}Float({{.Value}}){{end}}
{{define "string"}}String({{.Value}}){{end}}
{{define "bool"}}Bool({{.Value}}){{end}}
{{define "none"}}None{{end}}
{{define "identifier"}}Identifier({{.Name}}){{end}}
{{define "binaryop"}}BinaryOp({{.Op}}){{end}}
{{define "unaryop"}}UnaryOp({{.Op}}){{end}}
{{define "assignment"}}Assignment{{end}}
{{define "call"}}FunctionCall{{end}}
{{define "attribute"}}Attribute(.{{.Name}}){{end}}
{{define "subscript"}}Subscript{{end}}
{{define "list"}}List{{end}}
{{define "dict"}}Dict{{end}}
{{define "functiondef"}}FunctionDef({{.Name}}){{end}}
{{define "classdef"}}ClassDef({{.Name}}){{end}}
{{define "if"}}If{{end}}
{{define "while"}}While{{end}}
{{define "for"}}For{{end}}
{{define "with"}}With(as {{.Alias}}){{end}}
{{define "return"}}Return{{end}}
{{define "import"}}Import({{.Module}}){{end}}
{{define "fromimport"}}FromImport({{.Module}}){{end}}
{{define "pass"}}Pass{{end}}
{{define "break"}}Break{{end}}
{{define "continue"}}Continue{{end}}
`))

// PrintAST renders a depth-indented dump of a node forest. Unlike the IR
// form, this text has no stable contract (spec.md's library surface
// calls pretty-printing format "not specified as stable"); it exists for
// CLI debugging. It is not reparseable source: the print/reparse/compare
// round-trip property uses Unparse instead.
func PrintAST(nodes []ast.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		printNode(&b, n, 0)
	}
	return b.String()
}

func printNode(b *strings.Builder, n ast.Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(headerLine(n))
	b.WriteString("\n")

	switch v := n.(type) {
	case *ast.BinaryOp:
		printNode(b, v.Left, depth+1)
		printNode(b, v.Right, depth+1)
	case *ast.UnaryOp:
		printNode(b, v.Operand, depth+1)
	case *ast.Assignment:
		printNode(b, v.Target, depth+1)
		printNode(b, v.Value, depth+1)
	case *ast.FunctionCall:
		printNode(b, v.Callable, depth+1)
		for _, a := range v.Args {
			printNode(b, a, depth+1)
		}
		for _, name := range v.KeywordOrder {
			printNode(b, v.KeywordArgs[name], depth+1)
		}
	case *ast.Attribute:
		printNode(b, v.Value, depth+1)
	case *ast.Subscript:
		printNode(b, v.Value, depth+1)
		printNode(b, v.Index, depth+1)
	case *ast.List:
		for _, e := range v.Elements {
			printNode(b, e, depth+1)
		}
	case *ast.Dict:
		for _, item := range v.Items {
			printNode(b, item.Key, depth+1)
			printNode(b, item.Value, depth+1)
		}
	case *ast.FunctionDef:
		for _, stmt := range v.Body {
			printNode(b, stmt, depth+1)
		}
	case *ast.ClassDef:
		for _, stmt := range v.Body {
			printNode(b, stmt, depth+1)
		}
	case *ast.If:
		printNode(b, v.Condition, depth+1)
		for _, stmt := range v.Then {
			printNode(b, stmt, depth+1)
		}
		for _, stmt := range v.Else {
			printNode(b, stmt, depth+1)
		}
	case *ast.While:
		printNode(b, v.Condition, depth+1)
		for _, stmt := range v.Body {
			printNode(b, stmt, depth+1)
		}
	case *ast.For:
		printNode(b, v.Target, depth+1)
		printNode(b, v.Iterable, depth+1)
		for _, stmt := range v.Body {
			printNode(b, stmt, depth+1)
		}
	case *ast.With:
		printNode(b, v.Context, depth+1)
		for _, stmt := range v.Body {
			printNode(b, stmt, depth+1)
		}
	case *ast.Return:
		if v.Value != nil {
			printNode(b, v.Value, depth+1)
		}
	}
}

func headerLine(n ast.Node) string {
	name, data := templateFor(n)
	if name == "" {
		return fmt.Sprintf("%T", n)
	}
	var buf bytes.Buffer
	if err := astTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Sprintf("%T", n)
	}
	return buf.String()
}

func templateFor(n ast.Node) (string, any) {
	switch v := n.(type) {
	case *ast.IntLiteral:
		return "int", v
	case *ast.FloatLiteral:
		return "float", v
	case *ast.StringLiteral:
		return "string", v
	case *ast.BoolLiteral:
		return "bool", v
	case *ast.NoneLiteral:
		return "none", v
	case *ast.Identifier:
		return "identifier", v
	case *ast.BinaryOp:
		return "binaryop", v
	case *ast.UnaryOp:
		return "unaryop", v
	case *ast.Assignment:
		return "assignment", v
	case *ast.FunctionCall:
		return "call", v
	case *ast.Attribute:
		return "attribute", v
	case *ast.Subscript:
		return "subscript", v
	case *ast.List:
		return "list", v
	case *ast.Dict:
		return "dict", v
	case *ast.FunctionDef:
		return "functiondef", v
	case *ast.ClassDef:
		return "classdef", v
	case *ast.If:
		return "if", v
	case *ast.While:
		return "while", v
	case *ast.For:
		return "for", v
	case *ast.With:
		return "with", v
	case *ast.Return:
		return "return", v
	case *ast.Import:
		return "import", v
	case *ast.FromImport:
		return "fromimport", v
	case *ast.Pass:
		return "pass", v
	case *ast.Break:
		return "break", v
	case *ast.Continue:
		return "continue", v
	default:
		return "", nil
	}
}
