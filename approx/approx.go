// Package approx matches regular expressions against text that may differ from
// a true match by a bounded number of edits. An edit is one substituted,
// inserted or deleted rune in the text.
//
// The pattern is compiled with regexp/syntax and executed as a Thompson NFA
// whose threads carry an error count. A thread may consume a rune without
// matching it (substitution), consume a rune without advancing (insertion) or
// advance without consuming (deletion), each at the cost of one edit. Threads
// reaching the same instruction keep the lowest count.
package approx

import (
	"regexp"
	"regexp/syntax"
)

// Regexp is a compiled approximate expression. It is safe for concurrent use.
type Regexp struct {
	expr     string
	maxEdits int
	prog     *syntax.Prog
	exact    *regexp.Regexp
}

// Compile parses expr with Perl syntax. With foldCase set the match is case-insensitive.
// Negative maxEdits are treated as zero.
func Compile(expr string, maxEdits int, foldCase bool) (*Regexp, error) {
	flags := syntax.Perl
	if foldCase {
		flags |= syntax.FoldCase
	}

	re, err := syntax.Parse(expr, flags)
	if err != nil {
		return nil, err
	}

	prog, err := syntax.Compile(re.Simplify())
	if err != nil {
		return nil, err
	}

	exactExpr := expr
	if foldCase {
		exactExpr = "(?i)" + expr
	}
	exact, err := regexp.Compile(exactExpr)
	if err != nil {
		return nil, err
	}

	if maxEdits < 0 {
		maxEdits = 0
	}

	return &Regexp{
		expr:     expr,
		maxEdits: maxEdits,
		prog:     prog,
		exact:    exact,
	}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string, maxEdits int, foldCase bool) *Regexp {
	re, err := Compile(expr, maxEdits, foldCase)
	if err != nil {
		panic(`approx: Compile(` + expr + `): ` + err.Error())
	}
	return re
}

// String returns the source text of the expression.
func (r *Regexp) String() string {
	return r.expr
}

// MaxEdits returns the edit budget.
func (r *Regexp) MaxEdits() int {
	return r.maxEdits
}

// MatchString reports whether some substring of s is within MaxEdits edits of a
// string the expression matches.
func (r *Regexp) MatchString(s string) bool {
	if r.exact.MatchString(s) {
		return true
	}
	if r.maxEdits == 0 {
		return false
	}
	return r.search([]rune(s))
}

func (r *Regexp) search(input []rune) bool {
	m := newMachine(r.prog, r.maxEdits)

	var pending []thread
	for i := 0; ; i++ {
		prev, next := rune(-1), rune(-1)
		if i > 0 {
			prev = input[i-1]
		}
		if i < len(input) {
			next = input[i]
		}
		flag := syntax.EmptyOpContext(prev, next)

		m.reset()
		for _, t := range pending {
			m.add(t.pc, t.edits, flag)
		}
		m.add(uint32(r.prog.Start), 0, flag)

		if m.matched {
			return true
		}
		if i == len(input) {
			return false
		}

		pending = m.step(next, pending[:0])
	}
}

type thread struct {
	pc    uint32
	edits int
}

type machine struct {
	prog     *syntax.Prog
	maxEdits int
	// best holds the lowest edit count seen per instruction; maxEdits+1 means unset.
	best    []int
	waiting []uint32
	matched bool
}

func newMachine(prog *syntax.Prog, maxEdits int) *machine {
	best := make([]int, len(prog.Inst))
	for i := range best {
		best[i] = maxEdits + 1
	}
	return &machine{prog: prog, maxEdits: maxEdits, best: best}
}

func (m *machine) reset() {
	for i := range m.best {
		m.best[i] = m.maxEdits + 1
	}
	m.waiting = m.waiting[:0]
	m.matched = false
}

// add follows the empty transitions from pc and records the instructions that
// wait for input.
func (m *machine) add(pc uint32, edits int, flag syntax.EmptyOp) {
	if edits > m.maxEdits || m.best[pc] <= edits {
		return
	}
	first := m.best[pc] > m.maxEdits
	m.best[pc] = edits

	inst := &m.prog.Inst[pc]
	switch inst.Op {
	case syntax.InstMatch:
		m.matched = true
	case syntax.InstFail:
	case syntax.InstAlt, syntax.InstAltMatch:
		m.add(inst.Out, edits, flag)
		m.add(inst.Arg, edits, flag)
	case syntax.InstCapture, syntax.InstNop:
		m.add(inst.Out, edits, flag)
	case syntax.InstEmptyWidth:
		if first {
			m.waiting = append(m.waiting, pc)
		}
		if syntax.EmptyOp(inst.Arg)&^flag == 0 {
			m.add(inst.Out, edits, flag)
		}
	default:
		if first {
			m.waiting = append(m.waiting, pc)
		}
		// deletion: skip this pattern rune without consuming input
		m.add(inst.Out, edits+1, flag)
	}
}

// step consumes c from every waiting thread and returns the threads to seed
// the next position with.
func (m *machine) step(c rune, out []thread) []thread {
	for _, pc := range m.waiting {
		edits := m.best[pc]
		inst := &m.prog.Inst[pc]

		if edits+1 <= m.maxEdits {
			// insertion: the text carries an extra rune
			out = append(out, thread{pc: pc, edits: edits + 1})
		}

		if inst.Op == syntax.InstEmptyWidth {
			continue
		}

		switch {
		case matchRune(inst, c):
			out = append(out, thread{pc: inst.Out, edits: edits})
		case edits+1 <= m.maxEdits:
			// substitution
			out = append(out, thread{pc: inst.Out, edits: edits + 1})
		}
	}
	return out
}

func matchRune(inst *syntax.Inst, c rune) bool {
	switch inst.Op {
	case syntax.InstRuneAny:
		return true
	case syntax.InstRuneAnyNotNL:
		return c != '\n'
	default:
		return inst.MatchRune(c)
	}
}
