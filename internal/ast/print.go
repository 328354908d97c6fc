package ast

import (
	"fmt"
	"strings"
)

// Dump renders prog as an indented, deterministic S-expression-shaped
// listing used by debug output (`latc ast`) and by the parser/checker
// snapshot tests. It is not meant to be re-parsed.
func Dump(prog *Program) string {
	var sb strings.Builder
	for _, c := range prog.Classes {
		dumpClass(&sb, c, 0)
	}
	for _, f := range prog.Functions {
		dumpFunction(&sb, f, 0)
	}
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func dumpClass(sb *strings.Builder, c *Class, depth int) {
	indent(sb, depth)
	if c.Superclass != "" {
		fmt.Fprintf(sb, "(class %s extends %s\n", c.Name, c.Superclass)
	} else {
		fmt.Fprintf(sb, "(class %s\n", c.Name)
	}
	for _, v := range c.Variables {
		indent(sb, depth+1)
		fmt.Fprintf(sb, "(var %s %s)\n", v.Type, v.Name)
	}
	for _, m := range c.Methods {
		dumpFunction(sb, m, depth+1)
	}
	indent(sb, depth)
	sb.WriteString(")\n")
}

func dumpFunction(sb *strings.Builder, f *Function, depth int) {
	indent(sb, depth)
	fmt.Fprintf(sb, "(func %s %s(", f.Name, f.ReturnType)
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(sb, "%s %s", p.Type, p.Name)
	}
	sb.WriteString(")\n")
	dumpStmt(sb, f.Body, depth+1)
	indent(sb, depth)
	sb.WriteString(")\n")
}

func dumpStmt(sb *strings.Builder, s Stmt, depth int) {
	indent(sb, depth)
	switch n := s.(type) {
	case nil:
		sb.WriteString("(nil)\n")
	case *Empty:
		sb.WriteString("(empty)\n")
	case *Block:
		sb.WriteString("(block\n")
		for _, inner := range n.Stmts {
			dumpStmt(sb, inner, depth+1)
		}
		indent(sb, depth)
		sb.WriteString(")\n")
	case *Definition:
		fmt.Fprintf(sb, "(def %s", n.DeclType)
		for _, v := range n.Vars {
			if v.Init != nil {
				fmt.Fprintf(sb, " %s=%s", v.Name, dumpExpr(v.Init))
			} else {
				fmt.Fprintf(sb, " %s", v.Name)
			}
		}
		sb.WriteString(")\n")
	case *Assignment:
		fmt.Fprintf(sb, "(assign %s %s)\n", dumpExpr(n.LValue), dumpExpr(n.Value))
	case *Incr:
		fmt.Fprintf(sb, "(incr %s)\n", dumpExpr(n.LValue))
	case *Decr:
		fmt.Fprintf(sb, "(decr %s)\n", dumpExpr(n.LValue))
	case *ExprStmt:
		fmt.Fprintf(sb, "(exprstmt %s)\n", dumpExpr(n.X))
	case *Return:
		if n.Value != nil {
			fmt.Fprintf(sb, "(return %s)\n", dumpExpr(n.Value))
		} else {
			sb.WriteString("(return)\n")
		}
	case *If:
		fmt.Fprintf(sb, "(if %s\n", dumpExpr(n.Cond))
		dumpStmt(sb, n.Then, depth+1)
		if n.Else != nil {
			dumpStmt(sb, n.Else, depth+1)
		}
		indent(sb, depth)
		sb.WriteString(")\n")
	case *While:
		fmt.Fprintf(sb, "(while %s\n", dumpExpr(n.Cond))
		dumpStmt(sb, n.Body, depth+1)
		indent(sb, depth)
		sb.WriteString(")\n")
	case *For:
		fmt.Fprintf(sb, "(for %s %s : %s\n", n.ElemType, n.VarName, dumpExpr(n.Array))
		dumpStmt(sb, n.Body, depth+1)
		indent(sb, depth)
		sb.WriteString(")\n")
	default:
		fmt.Fprintf(sb, "(unknown-stmt %T)\n", n)
	}
}

func dumpExpr(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	typ := ""
	if e.Type() != nil {
		typ = ":" + e.Type().String()
	}
	switch n := e.(type) {
	case *IntLit:
		return fmt.Sprintf("%d%s", n.Value, typ)
	case *BoolLit:
		return fmt.Sprintf("%t%s", n.Value, typ)
	case *StringLit:
		return fmt.Sprintf("%q%s", n.Value, typ)
	case *NullLit:
		return "null" + typ
	case *Variable:
		return n.Name + typ
	case *UnaryOp:
		op := "-"
		if n.Op == BoolNeg {
			op = "!"
		}
		return fmt.Sprintf("(%s%s)%s", op, dumpExpr(n.X), typ)
	case *BinaryOp:
		return fmt.Sprintf("(%s %s %s)%s", dumpExpr(n.Left), binOpSym(n.Op), dumpExpr(n.Right), typ)
	case *Call:
		return fmt.Sprintf("(call %s %s)%s", dumpExpr(n.Callee), dumpExprs(n.Args), typ)
	case *StaticCall:
		return fmt.Sprintf("(staticcall %s %s)%s", n.Name, dumpExprs(n.Args), typ)
	case *VirtualCall:
		return fmt.Sprintf("(virtualcall %s.%s %s)%s", dumpExpr(n.Object), n.Name, dumpExprs(n.Args), typ)
	case *Subscript:
		return fmt.Sprintf("(%s[%s])%s", dumpExpr(n.Array), dumpExpr(n.Index), typ)
	case *ClassMember:
		return fmt.Sprintf("(%s.%s)%s", dumpExpr(n.Object), n.Member, typ)
	case *Cast:
		return fmt.Sprintf("((%s)%s)%s", n.Target, dumpExpr(n.X), typ)
	case *NewObject:
		return fmt.Sprintf("(new %s)%s", n.ClassName, typ)
	case *NewArray:
		return fmt.Sprintf("(new %s[%s])%s", n.ElemType, dumpExpr(n.Size), typ)
	default:
		return fmt.Sprintf("<unknown-expr %T>", n)
	}
}

func dumpExprs(es []Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = dumpExpr(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func binOpSym(op BinaryOpKind) string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case Eq:
		return "=="
	case Ne:
		return "!="
	case And:
		return "&&"
	case Or:
		return "||"
	default:
		return "?"
	}
}
