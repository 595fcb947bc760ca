package ast

import "strings"

func (*IdentPattern) patternNode() {}
func (*IgnorePattern) patternNode() {}
func (*ArrayPattern) patternNode() {}
func (*DictPattern) patternNode() {}

// IdentPattern binds the whole value to Name.
type IdentPattern struct {
	Position Position
	Name string
}

func (p *IdentPattern) Pos() Position { return p.Position }
func (p *IdentPattern) String() string { return p.Name }

// IgnorePattern discards the value (`_`).
type IgnorePattern struct{ Position Position }

func (p *IgnorePattern) Pos() Position { return p.Position }
func (p *IgnorePattern) String() string { return "_" }

// ArrayPattern destructures an array: `[p0, p1,...rest]`. Rest is nil if
// no rest-binding is present.
type ArrayPattern struct {
	Position Position
	Elements []Pattern
	Rest *string
}

func (p *ArrayPattern) Pos() Position { return p.Position }
func (p *ArrayPattern) String() string {
	parts := make([]string, len(p.Elements))
	for i, e := range p.Elements {
		parts[i] = e.String()
	}
	if p.Rest != nil {
		parts = append(parts, "..."+*p.Rest)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DictPattern destructures a dict: `{k0, k1,...rest}`. Rest is nil if no
// rest-binding is present.
type DictPattern struct {
	Position Position
	Keys []string
	Rest *string
}

func (p *DictPattern) Pos() Position { return p.Position }
func (p *DictPattern) String() string {
	parts := append([]string{}, p.Keys...)
	if p.Rest != nil {
		parts = append(parts, "..."+*p.Rest)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
