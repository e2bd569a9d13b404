package content

import (
	"fmt"
	"slices"
	"strings"
)

// Node is one request in a plan. After lists the kinds whose output is
// passed to this request as context.
type Node struct {
	Kind  Kind
	After []Kind
}

// Plan is a validated DAG of content requests.
type Plan struct {
	nodes  map[Kind]Node
	order  []Kind
	levels [][]Kind
}

// NewPlan validates nodes and computes their execution order (Kahn's
// algorithm, ties broken by assembly order).
func NewPlan(nodes ...Node) (*Plan, error) {
	p := &Plan{nodes: make(map[Kind]Node, len(nodes))}

	for _, n := range nodes {
		if _, dup := p.nodes[n.Kind]; dup {
			return nil, fmt.Errorf("duplicate request %q", n.Kind)
		}
		p.nodes[n.Kind] = n
	}

	inDegree := make(map[Kind]int, len(nodes))
	dependents := make(map[Kind][]Kind)
	for _, n := range nodes {
		for _, dep := range n.After {
			if _, ok := p.nodes[dep]; !ok {
				return nil, fmt.Errorf("request %q depends on missing %q", n.Kind, dep)
			}
			dependents[dep] = append(dependents[dep], n.Kind)
		}
		inDegree[n.Kind] = len(n.After)
	}

	byRank := func(a, b Kind) int { return a.rank() - b.rank() }

	var frontier []Kind
	for k, deg := range inDegree {
		if deg == 0 {
			frontier = append(frontier, k)
		}
	}

	// Each pass of the loop consumes one level: every node in it has all
	// dependencies in earlier levels.
	for len(frontier) > 0 {
		slices.SortFunc(frontier, byRank)
		level := frontier
		p.levels = append(p.levels, level)
		p.order = append(p.order, level...)

		frontier = nil
		for _, k := range level {
			for _, d := range dependents[k] {
				inDegree[d]--
				if inDegree[d] == 0 {
					frontier = append(frontier, d)
				}
			}
		}
	}

	if len(p.order) < len(nodes) {
		var cyc []string
		for k, deg := range inDegree {
			if deg > 0 {
				cyc = append(cyc, string(k))
			}
		}
		slices.Sort(cyc)
		return nil, fmt.Errorf("cycle detected involving requests: %s", strings.Join(cyc, ", "))
	}

	return p, nil
}

func mustPlan(nodes ...Node) *Plan {
	p, err := NewPlan(nodes...)
	if err != nil {
		panic(err)
	}
	return p
}

// ProblemSetPlan is problems, then optionally review and hints, both fed
// the problem set.
func ProblemSetPlan(review, hints bool) *Plan {
	nodes := []Node{{Kind: KindProblems}}
	if review {
		nodes = append(nodes, Node{Kind: KindReview, After: []Kind{KindProblems}})
	}
	if hints {
		nodes = append(nodes, Node{Kind: KindHints, After: []Kind{KindProblems}})
	}
	return mustPlan(nodes...)
}

// ConceptPlan is a single explanation request.
func ConceptPlan() *Plan {
	return mustPlan(Node{Kind: KindExplanation})
}

// WorksheetPlan runs every kind and compiles them into a worksheet.
func WorksheetPlan() *Plan {
	return mustPlan(
		Node{Kind: KindExplanation},
		Node{Kind: KindProblems},
		Node{Kind: KindReview, After: []Kind{KindProblems}},
		Node{Kind: KindHints, After: []Kind{KindProblems}},
		Node{Kind: KindWorksheet, After: []Kind{KindExplanation, KindProblems, KindReview, KindHints}},
	)
}

// Order returns the sequential execution order.
func (p *Plan) Order() []Kind {
	return slices.Clone(p.order)
}

// Levels groups the order into waves of mutually independent requests.
func (p *Plan) Levels() [][]Kind {
	out := make([][]Kind, len(p.levels))
	for i, l := range p.levels {
		out[i] = slices.Clone(l)
	}
	return out
}

// Contains reports whether the plan requests k.
func (p *Plan) Contains(k Kind) bool {
	_, ok := p.nodes[k]
	return ok
}

// DependsOn returns k's context sources in assembly order.
func (p *Plan) DependsOn(k Kind) []Kind {
	deps := slices.Clone(p.nodes[k].After)
	slices.SortFunc(deps, func(a, b Kind) int { return a.rank() - b.rank() })
	return deps
}
