package forest

import "iter"

// childRef names a rule and the position of one of its children.
type childRef struct {
	ruleIdx  int
	childPos int
}

// ruleClassConnector is a two-way index from a class to the rules it
// participates in: the rules it is the parent of, and the rules that use
// it as a child (with the child's position, so a class's advance can
// cheaply find which shift slot to adjust).
//
// Classes are never retired from the connector, even once promoted to
// infinity: the class will simply never advance again, and the memory
// cost of keeping its stale entries around is linear in the number of
// rules, which this package accepts rather than attempt the incomplete
// retirement the original implementation stubbed out (see SPEC_FULL.md
// §9, "Class retirement").
type ruleClassConnector struct {
	pumping map[uint32][]int
	using   map[uint32][]childRef
}

func newRuleClassConnector() *ruleClassConnector {
	return &ruleClassConnector{
		pumping: make(map[uint32][]int),
		using:   make(map[uint32][]childRef),
	}
}

func (c *ruleClassConnector) addPumping(class uint32, ruleIdx int) {
	c.pumping[class] = append(c.pumping[class], ruleIdx)
}

func (c *ruleClassConnector) addUsing(class uint32, ruleIdx, childPos int) {
	c.using[class] = append(c.using[class], childRef{ruleIdx: ruleIdx, childPos: childPos})
}

// rulesPumping yields the indices of every rule for which class is the
// parent. It yields nothing if class has no such rules.
func (c *ruleClassConnector) rulesPumping(class uint32) iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, idx := range c.pumping[class] {
			if !yield(idx) {
				return
			}
		}
	}
}

// rulesUsing yields every (rule, child position) pair for which class
// appears as a child. It yields nothing if class is not used anywhere.
func (c *ruleClassConnector) rulesUsing(class uint32) iter.Seq[childRef] {
	return func(yield func(childRef) bool) {
		for _, ref := range c.using[class] {
			if !yield(ref) {
				return
			}
		}
	}
}
