// Copyright 2020 ConsenSys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package query models the boolean keyword expression half of a query:
// its external JSON shape, and the De Morgan/DNF normalization the
// planner runs before lowering it to a DAG.
package query

import "fmt"

// ExprKind tags the variant an Expr node holds.
type ExprKind int

const (
	KindLiteral ExprKind = iota
	KindAnd
	KindOr
	KindNot
)

// Expr is a boolean tree over keyword literals. Leaves carry Word; And/Or
// carry Children; Not carries exactly Children[0].
type Expr struct {
	Kind     ExprKind
	Word     string
	Children []Expr
}

// Literal builds a leaf expression for word.
func Literal(word string) Expr { return Expr{Kind: KindLiteral, Word: word} }

// And builds a conjunction of two or more expressions.
func And(children ...Expr) Expr { return Expr{Kind: KindAnd, Children: children} }

// Or builds a disjunction of two or more expressions.
func Or(children ...Expr) Expr { return Expr{Kind: KindOr, Children: children} }

// Not negates e.
func Not(e Expr) Expr { return Expr{Kind: KindNot, Children: []Expr{e}} }

// QuerySpec is the external JSON shape of one query: a block range, zero
// or more auxiliary value ranges (interpretation left to the index layer),
// and a boolean keyword expression. Expr has no custom JSON decoding, so
// "keyword_exp" is read as Expr's exported fields ({"Kind": n, "Word": ...,
// "Children": [...]}, Kind as the ExprKind integer); keyed objects such as
// {"and": [...]} are not accepted.
type QuerySpec struct {
	StartBlk uint64     `json:"start_blk"`
	EndBlk   uint64     `json:"end_blk"`
	Ranges   [][2]int64 `json:"range,omitempty"`
	Keyword  Expr       `json:"keyword_exp"`
}

// Normalize pushes Not down to literals via De Morgan's laws and flattens
// nested And/Or of the same kind, so the planner never has to special-case
// a Not(And(...)) or a doubly-nested And(And(...)).
func Normalize(e Expr) Expr {
	switch e.Kind {
	case KindLiteral:
		return e
	case KindNot:
		inner := e.Children[0]
		switch inner.Kind {
		case KindLiteral:
			return e
		case KindNot:
			return Normalize(inner.Children[0])
		case KindAnd:
			negated := make([]Expr, len(inner.Children))
			for i, c := range inner.Children {
				negated[i] = Not(c)
			}
			return Normalize(Or(negated...))
		case KindOr:
			negated := make([]Expr, len(inner.Children))
			for i, c := range inner.Children {
				negated[i] = Not(c)
			}
			return Normalize(And(negated...))
		}
	case KindAnd, KindOr:
		flat := make([]Expr, 0, len(e.Children))
		for _, c := range e.Children {
			nc := Normalize(c)
			if nc.Kind == e.Kind {
				flat = append(flat, nc.Children...)
			} else {
				flat = append(flat, nc)
			}
		}
		return Expr{Kind: e.Kind, Children: flat}
	}
	return e
}

// ToDNF distributes And over Or to produce disjunctive normal form: a
// top-level Or of And-of-literal clauses. Assumes e is already Normalize'd
// (negation already pushed to literals).
func ToDNF(e Expr) Expr {
	switch e.Kind {
	case KindLiteral, KindNot:
		return e
	case KindOr:
		children := make([]Expr, 0, len(e.Children))
		for _, c := range e.Children {
			dc := ToDNF(c)
			if dc.Kind == KindOr {
				children = append(children, dc.Children...)
			} else {
				children = append(children, dc)
			}
		}
		return Expr{Kind: KindOr, Children: children}
	case KindAnd:
		clauses := [][]Expr{{}}
		for _, c := range e.Children {
			dc := ToDNF(c)
			var terms []Expr
			if dc.Kind == KindOr {
				terms = dc.Children
			} else {
				terms = []Expr{dc}
			}
			next := make([][]Expr, 0, len(clauses)*len(terms))
			for _, clause := range clauses {
				for _, t := range terms {
					combined := make([]Expr, len(clause), len(clause)+1)
					copy(combined, clause)
					combined = append(combined, t)
					next = append(next, combined)
				}
			}
			clauses = next
		}
		orChildren := make([]Expr, len(clauses))
		for i, clause := range clauses {
			orChildren[i] = Expr{Kind: KindAnd, Children: clause}
		}
		if len(orChildren) == 1 {
			return orChildren[0]
		}
		return Expr{Kind: KindOr, Children: orChildren}
	}
	return e
}

// String renders e for diagnostics and tests.
func (e Expr) String() string {
	switch e.Kind {
	case KindLiteral:
		return fmt.Sprintf("lit(%s)", e.Word)
	case KindNot:
		return fmt.Sprintf("not(%s)", e.Children[0].String())
	case KindAnd:
		return joinExprs("and", e.Children)
	case KindOr:
		return joinExprs("or", e.Children)
	}
	return "?"
}

func joinExprs(op string, children []Expr) string {
	s := op + "("
	for i, c := range children {
		if i > 0 {
			s += ","
		}
		s += c.String()
	}
	return s + ")"
}
