// Package printer renders AST and IR trees into human-readable text.
// Grounded on the teacher's code generator (pkgs/generator/templates.go,
// go_template.go): named text/template fragments selected by Go code
// per node/instruction kind, rather than ad hoc string concatenation.
package printer

import (
	"bytes"
	"fmt"
	"strings"

	"text/template"

	"github.com/sourcelang/pytac/pkgs/ir"
)

var irTemplates = template.Must(template.New("ir").Parse(`
{{define "binaryop"}}{{.Dest}} = {{.Left}} {{.Op}} {{.Right}}{{end}}
{{define "unaryop"}}{{.Dest}} = {{.Op}} {{.Operand}}{{end}}
{{define "store"}}store {{.Source}} -> {{.Dest}}{{end}}
{{define "load"}}{{.Dest}} = load {{.Source}}{{end}}
{{define "call"}}{{.Dest}} = call {{.Func}}({{.Args}}){{end}}
{{define "methodcall"}}{{.Dest}} = call {{.Object}}.{{.Method}}({{.Args}}){{end}}
{{define "constructorcall"}}{{.Dest}} = new {{.Class}}({{.Args}}){{end}}
{{define "return"}}return {{.Value}}{{end}}
{{define "jump"}}jump {{.Label}}{{end}}
{{define "condjump"}}if {{.Cond}} jump {{.TrueLabel}} else {{.FalseLabel}}{{end}}
{{define "label"}}{{.Name}}:{{end}}
`))

type callView struct {
	Dest, Func, Args string
}

type methodCallView struct {
	Dest, Method, Args string
	Object             ir.Operand
}

type constructorCallView struct {
	Dest, Class, Args string
}

func joinOperands(ops []ir.Operand) string {
	parts := make([]string, len(ops))
	for i, o := range ops {
		parts[i] = o.String()
	}
	return strings.Join(parts, ", ")
}

// PrintIR renders a Program as one "Function name(params):" header per
// function followed by its body's canonical one-line instruction forms.
func PrintIR(p *ir.Program) string {
	var b strings.Builder
	for i, fn := range p.Functions {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Function %s(%s):\n", fn.Name, strings.Join(fn.Params, ", "))
		for _, instr := range fn.Body {
			b.WriteString(formatInstr(instr))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func formatInstr(instr ir.Instr) string {
	var name string
	var data any

	switch v := instr.(type) {
	case ir.BinaryOp:
		name, data = "binaryop", v
	case ir.UnaryOp:
		name, data = "unaryop", v
	case ir.Store:
		name, data = "store", v
	case ir.Load:
		name, data = "load", v
	case ir.Call:
		name, data = "call", callView{Dest: v.Dest, Func: v.Func, Args: joinOperands(v.Args)}
	case ir.MethodCall:
		name, data = "methodcall", methodCallView{Dest: v.Dest, Object: v.Object, Method: v.Method, Args: joinOperands(v.Args)}
	case ir.ConstructorCall:
		name, data = "constructorcall", constructorCallView{Dest: v.Dest, Class: v.Class, Args: joinOperands(v.Args)}
	case ir.Return:
		name, data = "return", v
	case ir.Jump:
		name, data = "jump", v
	case ir.CondJump:
		name, data = "condjump", v
	case ir.Label:
		name, data = "label", v
	default:
		return fmt.Sprintf("<unprintable instruction %T>", instr)
	}

	var buf bytes.Buffer
	if err := irTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Sprintf("<template error: %v>", err)
	}
	return buf.String()
}
