package printer

import (
	"strconv"
	"strings"

	"github.com/sourcelang/pytac/pkgs/ast"
)

// Unparse renders a node forest back into pytac source text, for the
// parse -> print -> reparse -> compare round-trip property (spec.md §8
// invariant 6). It covers the grammar subset the property names: elif
// and compound assignment are excluded since the parser already
// desugars both irreversibly (elif into a nested If, `x op= e` into
// `x = x op e`), so there is no original surface form to reconstruct.
//
// Every BinaryOp and UnaryOp is fully parenthesized on the way out.
// The property only asks for a structurally identical AST after
// reparsing, not minimal or pretty output, and full parenthesization
// sidesteps having to replicate the parser's precedence table here.
func Unparse(nodes []ast.Node) string {
	var b strings.Builder
	unparseBlock(&b, nodes, 0)
	return b.String()
}

const unparseIndent = "    "

// stringEscaper escapes only what the lexer cannot read raw inside a
// double-quoted literal; every other byte is copied through unchanged.
var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func writeIndent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat(unparseIndent, depth))
}

func unparseBlock(b *strings.Builder, nodes []ast.Node, depth int) {
	for _, n := range nodes {
		unparseStmt(b, n, depth)
	}
}

func unparseStmt(b *strings.Builder, n ast.Node, depth int) {
	switch v := n.(type) {
	case *ast.FunctionDef:
		writeIndent(b, depth)
		b.WriteString("def " + v.Name + "(" + paramsToSource(v.Parameters) + "):\n")
		unparseBlock(b, v.Body, depth+1)
	case *ast.ClassDef:
		writeIndent(b, depth)
		b.WriteString("class " + v.Name)
		if len(v.Bases) > 0 {
			parts := make([]string, len(v.Bases))
			for i, base := range v.Bases {
				parts[i] = exprToSource(base)
			}
			b.WriteString("(" + strings.Join(parts, ", ") + ")")
		}
		b.WriteString(":\n")
		unparseBlock(b, v.Body, depth+1)
	case *ast.If:
		writeIndent(b, depth)
		b.WriteString("if " + exprToSource(v.Condition) + ":\n")
		unparseBlock(b, v.Then, depth+1)
		if len(v.Else) > 0 {
			writeIndent(b, depth)
			b.WriteString("else:\n")
			unparseBlock(b, v.Else, depth+1)
		}
	case *ast.While:
		writeIndent(b, depth)
		b.WriteString("while " + exprToSource(v.Condition) + ":\n")
		unparseBlock(b, v.Body, depth+1)
	case *ast.For:
		writeIndent(b, depth)
		b.WriteString("for " + exprToSource(v.Target) + " in " + exprToSource(v.Iterable) + ":\n")
		unparseBlock(b, v.Body, depth+1)
	case *ast.With:
		writeIndent(b, depth)
		b.WriteString("with " + exprToSource(v.Context))
		if v.Alias != "" {
			b.WriteString(" as " + v.Alias)
		}
		b.WriteString(":\n")
		unparseBlock(b, v.Body, depth+1)
	case *ast.Return:
		writeIndent(b, depth)
		if v.Value != nil {
			b.WriteString("return " + exprToSource(v.Value) + "\n")
		} else {
			b.WriteString("return\n")
		}
	case *ast.Import:
		writeIndent(b, depth)
		b.WriteString("import " + v.Module)
		if v.Alias != "" {
			b.WriteString(" as " + v.Alias)
		}
		b.WriteString("\n")
	case *ast.FromImport:
		writeIndent(b, depth)
		b.WriteString("from " + v.Module + " import ")
		parts := make([]string, len(v.Imports))
		for i, imp := range v.Imports {
			s := imp.Name
			if imp.Alias != "" {
				s += " as " + imp.Alias
			}
			parts[i] = s
		}
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString("\n")
	case *ast.Pass:
		writeIndent(b, depth)
		b.WriteString("pass\n")
	case *ast.Break:
		writeIndent(b, depth)
		b.WriteString("break\n")
	case *ast.Continue:
		writeIndent(b, depth)
		b.WriteString("continue\n")
	case ast.Expr:
		writeIndent(b, depth)
		b.WriteString(exprToSource(v))
		b.WriteString("\n")
	}
}

func paramsToSource(params []*ast.Parameter) string {
	parts := make([]string, 0, len(params)+1)
	kwOnly := false
	for _, p := range params {
		if p.IsKeywordOnly && !kwOnly {
			parts = append(parts, "*")
			kwOnly = true
		}
		s := p.Name
		if p.Default != nil {
			s += "=" + exprToSource(p.Default)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func exprToSource(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.IntLiteral:
		return strconv.FormatInt(v.Value, 10)
	case *ast.FloatLiteral:
		s := strconv.FormatFloat(v.Value, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case *ast.StringLiteral:
		prefix := ""
		if v.IsFString {
			prefix = "f"
		}
		return prefix + `"` + stringEscaper.Replace(v.Value) + `"`
	case *ast.BoolLiteral:
		if v.Value {
			return "True"
		}
		return "False"
	case *ast.NoneLiteral:
		return "None"
	case *ast.Identifier:
		return v.Name
	case *ast.BinaryOp:
		return "(" + exprToSource(v.Left) + " " + v.Op + " " + exprToSource(v.Right) + ")"
	case *ast.UnaryOp:
		if v.Op == "-" {
			return "(-" + exprToSource(v.Operand) + ")"
		}
		return "(" + v.Op + " " + exprToSource(v.Operand) + ")"
	case *ast.Assignment:
		return exprToSource(v.Target) + " = " + exprToSource(v.Value)
	case *ast.FunctionCall:
		parts := make([]string, 0, len(v.Args)+len(v.KeywordOrder))
		for _, a := range v.Args {
			parts = append(parts, exprToSource(a))
		}
		for _, name := range v.KeywordOrder {
			parts = append(parts, name+"="+exprToSource(v.KeywordArgs[name]))
		}
		return exprToSource(v.Callable) + "(" + strings.Join(parts, ", ") + ")"
	case *ast.Attribute:
		return exprToSource(v.Value) + "." + v.Name
	case *ast.Subscript:
		return exprToSource(v.Value) + "[" + exprToSource(v.Index) + "]"
	case *ast.List:
		parts := make([]string, len(v.Elements))
		for i, el := range v.Elements {
			parts[i] = exprToSource(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.Dict:
		parts := make([]string, len(v.Items))
		for i, item := range v.Items {
			parts[i] = exprToSource(item.Key) + ": " + exprToSource(item.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return ""
	}
}
