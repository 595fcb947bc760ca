// Package ast defines the Abstract Syntax Tree node types consumed by the
// evaluator. The parser that produces these nodes is out of scope for this
// module; this package only fixes the node shapes
// the evaluator is contractually required to walk.
package ast

import "fmt"

// Position locates a node in its originating source file, for error
// messages and stack frames. The lexer/parser are expected to populate it;
// a zero Position (Line == 0) means "unknown".
type Position struct {
	File string
	Line int
	Column int
}

func (p Position) String() string {
	if p.Line == 0 {
		return "<unknown>"
	}
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Node is the base interface for every AST node.
type Node interface {
	Pos() Position
	String() string
}

// Statement is any node that performs an action without itself producing a
// value (Let, If, For, Return,...).
type Statement interface {
	Node
	statementNode()
}

// Expression is any node that evaluates to a Value (Identifier, BinaryOp,
// Call,...).
type Expression interface {
	Node
	expressionNode()
}

// Pattern is a destructuring target for Let/Const bindings and Match arms.
type Pattern interface {
	Node
	patternNode()
}

// Program is the root of the AST: the full statement list of one source
// file or REPL chunk.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return Position{}
}

func (p *Program) String() string {
	out := ""
	for _, s := range p.Statements {
		out += s.String() + "\n"
	}
	return out
}
