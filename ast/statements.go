package ast

import (
	"fmt"
	"strings"
)

func (*Let) statementNode() {}
func (*Const) statementNode() {}
func (*Assign) statementNode() {}
func (*FuncDef) statementNode() {}
func (*EnumDef) statementNode() {}
func (*StructDef) statementNode() {}
func (*Import) statementNode() {}
func (*Export) statementNode() {}
func (*MatchStmt) statementNode() {}
func (*If) statementNode() {}
func (*Loop) statementNode() {}
func (*For) statementNode() {}
func (*While) statementNode() {}
func (*Break) statementNode() {}
func (*Continue) statementNode() {}
func (*Return) statementNode() {}
func (*TryExcept) statementNode() {}
func (*Block) statementNode() {}
func (*Spawn) statementNode() {}
func (*ExprStmt) statementNode() {}
func (*Test) statementNode() {}
func (*TestSetup) statementNode() {}
func (*TestTeardown) statementNode() {}
func (*TestGroup) statementNode() {}

// Let declares a mutable binding, optionally destructured.
type Let struct {
	Position Position
	Target Pattern
	Value Expression
	Type string // optional declared type annotation; empty if absent
}

func (l *Let) Pos() Position { return l.Position }
func (l *Let) String() string {
	return fmt.Sprintf("let %s := %s", l.Target, l.Value)
}

// Const declares an immutable binding. Structurally identical to Let; the
// evaluator does not re-check mutability (that is a semantic-analysis
// concern out of scope here), it simply defines the binding.
type Const struct {
	Position Position
	Target Pattern
	Value Expression
	Type string
}

func (c *Const) Pos() Position { return c.Position }
func (c *Const) String() string {
	return fmt.Sprintf("const %s := %s", c.Target, c.Value)
}

// AssignTarget is one of Identifier, IndexAccess, or FieldAccess.
type AssignTarget = Expression

// Assign writes to an identifier, index, or field target.
type Assign struct {
	Position Position
	Target AssignTarget
	Op string // ":=", "+=", "-=", "*=", "/=",...
	Value Expression
}

func (a *Assign) Pos() Position { return a.Position }
func (a *Assign) String() string {
	return fmt.Sprintf("%s %s %s", a.Target, a.Op, a.Value)
}

// FuncDef declares a named function, async function, or generator. A
// top-level/nested FuncDef does NOT capture its defining environment
// (only anonymous function expressions and methods do).
type FuncDef struct {
	Position Position
	Name string
	Params []string
	ParamTypes []string
	ReturnType string
	Body *Block
	IsGenerator bool
	IsAsync bool
}

func (f *FuncDef) Pos() Position { return f.Position }
func (f *FuncDef) String() string {
	prefix := "func"
	if f.IsAsync {
		prefix = "async func"
	}
	if f.IsGenerator {
		prefix = "func*"
	}
	return fmt.Sprintf("%s %s(%s)", prefix, f.Name, strings.Join(f.Params, ", "))
}

// EnumVariant is one tagged-union case: a name plus its field names.
type EnumVariant struct {
	Name string
	Fields []string
}

// EnumDef declares a tagged-union type; each variant becomes a constructor
// function bound in the defining scope.
type EnumDef struct {
	Position Position
	Name string
	Variants []EnumVariant
}

func (e *EnumDef) Pos() Position { return e.Position }
func (e *EnumDef) String() string { return fmt.Sprintf("enum %s", e.Name) }

// MethodDef is a function defined inside a StructDef; it always captures
// its defining environment.
type MethodDef struct {
	Name string
	Params []string
	ParamTypes []string
	ReturnType string
	Body *Block
}

// StructDef declares a record type plus its method table.
type StructDef struct {
	Position Position
	Name string
	Fields []string
	Methods []MethodDef
}

func (s *StructDef) Pos() Position { return s.Position }
func (s *StructDef) String() string { return fmt.Sprintf("struct %s", s.Name) }

// Import binds symbols from a module. If Symbols is nil, all exports are
// bulk-imported; otherwise only the named symbols are bound (optionally
// under an alias).
type Import struct {
	Position Position
	Module string
	Symbols []ImportSymbol // nil => import *
}

// ImportSymbol is one selectively-imported name, with an optional alias.
type ImportSymbol struct {
	Name string
	Alias string // empty => same as Name
}

func (i *Import) Pos() Position { return i.Position }
func (i *Import) String() string { return fmt.Sprintf("import %q", i.Module) }

// Export wraps a statement whose bindings should be visible to importers.
type Export struct {
	Position Position
	Stmt Statement
}

func (e *Export) Pos() Position { return e.Position }
func (e *Export) String() string { return "export " + e.Stmt.String() }

// MatchCase is one `pattern(var, var_1,...) { body }` arm.
type MatchCase struct {
	Tag string // dispatch tag: Tagged's tag, "Ok"/"Err", "Some"/"None", or a literal
	Binds []string // inner-value binding names, in order ($0, $1,... by position)
	Body *Block
}

// MatchStmt dispatches on a scrutinee's tag.
type MatchStmt struct {
	Position Position
	Value Expression
	Cases []MatchCase
	Default *Block // nil if absent
}

func (m *MatchStmt) Pos() Position { return m.Position }
func (m *MatchStmt) String() string { return fmt.Sprintf("match %s {... }", m.Value) }

// If is a conditional with an optional else branch.
type If struct {
	Position Position
	Cond Expression
	Then *Block
	Else *Block // nil if absent; may itself wrap a single If for else-if chains
}

func (i *If) Pos() Position { return i.Position }
func (i *If) String() string { return fmt.Sprintf("if %s {... }", i.Cond) }

// Loop is an unconditional (or conditioned) repeat; Cond == nil means
// "loop forever until break".
type Loop struct {
	Position Position
	Cond Expression // nil => infinite
	Body *Block
}

func (l *Loop) Pos() Position { return l.Position }
func (l *Loop) String() string { return "loop {... }" }

// For iterates Var over Iterable, dispatching on the iterable's runtime
// type.
type For struct {
	Position Position
	Var string
	Iterable Expression
	Body *Block
}

func (f *For) Pos() Position { return f.Position }
func (f *For) String() string { return fmt.Sprintf("for %s in %s {... }", f.Var, f.Iterable) }

// While repeats Body while Cond is truthy.
type While struct {
	Position Position
	Cond Expression
	Body *Block
}

func (w *While) Pos() Position { return w.Position }
func (w *While) String() string { return fmt.Sprintf("while %s {... }", w.Cond) }

// Break exits the innermost enclosing Loop/For/While.
type Break struct{ Position Position }

func (b *Break) Pos() Position { return b.Position }
func (b *Break) String() string { return "break" }

// Continue skips to the next iteration of the innermost enclosing loop.
type Continue struct{ Position Position }

func (c *Continue) Pos() Position { return c.Position }
func (c *Continue) String() string { return "continue" }

// Return evaluates Expr (or null if absent) and wraps it in a Return
// marker. Distinct from Yield at the AST level, so a generator body can
// tell an explicit return from a yield without ambiguity.
type Return struct {
	Position Position
	Expr Expression // nil => return null
}

func (r *Return) Pos() Position { return r.Position }
func (r *Return) String() string {
	if r.Expr == nil {
		return "return"
	}
	return "return " + r.Expr.String()
}

// TryExcept runs Try; on an Error/ErrorObject return_value it constructs the
// bound error struct, binds it to ExceptVar, and runs Except instead.
type TryExcept struct {
	Position Position
	Try *Block
	ExceptVar string
	Except *Block
}

func (t *TryExcept) Pos() Position { return t.Position }
func (t *TryExcept) String() string { return fmt.Sprintf("try {... } except %s {... }", t.ExceptVar) }

// Block is a bare statement list, also used as the body of functions,
// loops, branches, and generators.
type Block struct {
	Position Position
	Statements []Statement
}

func (b *Block) Pos() Position { return b.Position }
func (b *Block) String() string {
	parts := make([]string, len(b.Statements))
	for i, s := range b.Statements {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// Spawn launches Body on a new goroutine seeded with the transferable
// subset of the parent environment.
type Spawn struct {
	Position Position
	Body *Block
}

func (s *Spawn) Pos() Position { return s.Position }
func (s *Spawn) String() string { return "spawn {... }" }

// ExprStmt evaluates an expression purely for its side effects, discarding
// the result.
type ExprStmt struct {
	Position Position
	Expr Expression
}

func (e *ExprStmt) Pos() Position { return e.Position }
func (e *ExprStmt) String() string { return e.Expr.String() }

// Test, TestSetup, TestTeardown, and TestGroup are no-ops under normal
// evaluation; the Test Runner (internal/testrunner) collects and drives
// them separately.
type Test struct {
	Position Position
	Name string
	Body *Block
}

func (t *Test) Pos() Position { return t.Position }
func (t *Test) String() string { return fmt.Sprintf("test %q {... }", t.Name) }

type TestSetup struct {
	Position Position
	Body *Block
}

func (t *TestSetup) Pos() Position { return t.Position }
func (t *TestSetup) String() string { return "setup {... }" }

type TestTeardown struct {
	Position Position
	Body *Block
}

func (t *TestTeardown) Pos() Position { return t.Position }
func (t *TestTeardown) String() string { return "teardown {... }" }

// TestGroup nests further Test/TestSetup/TestTeardown/TestGroup
// statements; setup/teardown statements are inherited by nested tests.
type TestGroup struct {
	Position Position
	Name string
	Body *Block
}

func (t *TestGroup) Pos() Position { return t.Position }
func (t *TestGroup) String() string { return fmt.Sprintf("test_group %q {... }", t.Name) }
