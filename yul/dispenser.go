package yul

import "strconv"

// NameDispenser issues identifiers guaranteed distinct from every name in a
// tree, every reserved name, and every name it has issued before. Identical
// input produces an identical issue sequence, which the translator relies
// on for reproducible output.
type NameDispenser struct {
	used     map[string]bool
	counters map[string]int
}

// NewNameDispenser collects every name appearing in root, plus the given
// reserved names (typically the dialect's builtin names).
func NewNameDispenser(root *Block, reserved ...string) *NameDispenser {
	d := &NameDispenser{
		used:     make(map[string]bool),
		counters: make(map[string]int),
	}
	for _, name := range reserved {
		d.used[name] = true
	}
	if root != nil {
		d.collectBlock(root)
	}
	return d
}

// Fresh returns an unused identifier of the form prefix_N, marking it used.
func (d *NameDispenser) Fresh(prefix string) string {
	for {
		d.counters[prefix]++
		name := prefix + "_" + strconv.Itoa(d.counters[prefix])
		if !d.used[name] {
			d.used[name] = true
			return name
		}
	}
}

func (d *NameDispenser) collectBlock(b *Block) {
	for _, st := range b.Statements {
		d.collectStatement(st)
	}
}

func (d *NameDispenser) collectStatement(st Statement) {
	switch s := st.(type) {
	case *Block:
		d.collectBlock(s)
	case *VariableDeclaration:
		for _, v := range s.Variables {
			d.used[v] = true
		}
		d.collectExpression(s.Value)
	case *Assignment:
		for _, v := range s.VariableNames {
			d.used[v] = true
		}
		d.collectExpression(s.Value)
	case *ExpressionStatement:
		d.collectExpression(s.Expression)
	case *If:
		d.collectExpression(s.Condition)
		d.collectBlock(&s.Body)
	case *Switch:
		d.collectExpression(s.Expression)
		for i := range s.Cases {
			d.collectBlock(&s.Cases[i].Body)
		}
	case *ForLoop:
		d.collectBlock(&s.Pre)
		d.collectExpression(s.Condition)
		d.collectBlock(&s.Post)
		d.collectBlock(&s.Body)
	case *FunctionDefinition:
		d.used[s.Name] = true
		for _, p := range s.Parameters {
			d.used[p] = true
		}
		for _, r := range s.ReturnVariables {
			d.used[r] = true
		}
		d.collectBlock(&s.Body)
	}
}

func (d *NameDispenser) collectExpression(e Expression) {
	switch x := e.(type) {
	case nil:
	case *FunctionCall:
		d.used[x.FunctionName] = true
		for _, arg := range x.Arguments {
			d.collectExpression(arg)
		}
	case *Identifier:
		d.used[x.Name] = true
	}
}
