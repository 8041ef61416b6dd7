package forest

import "iter"

// TableMethod is the incremental fixed-point engine: it owns the
// Function, the rule list, each rule's live shift vector, the
// class/rule connector, the processing queue, the held-back set and the
// current gap. Rules are added one at a time with AddRuleKey, which
// drives the engine to a fixed point before returning.
//
// TableMethod is not safe for concurrent use; see SPEC_FULL.md §5.
type TableMethod struct {
	rules      []RuleKey
	liveShifts [][]*int8
	function   *Function
	gapSize    uint32
	connector  *ruleClassConnector
	queue      intQueue
	currentGap [2]uint32
	heldBack   map[int]struct{}
}

// NewTableMethod returns an empty engine: every class reads as Int(0)
// until rules are added.
func NewTableMethod() *TableMethod {
	return &TableMethod{
		function:   NewFunction(),
		gapSize:    1,
		connector:  newRuleClassConnector(),
		currentGap: [2]uint32{1, 1},
		heldBack:   make(map[int]struct{}),
	}
}

// AddRuleKey stores rule, computes its initial live shift vector, grows
// the gap if rule's shifts demand it, registers it with the connector
// (unless its parent is already pumping), and runs propagation to a fixed
// point before returning the stored copy.
func (tb *TableMethod) AddRuleKey(rule RuleKey) RuleKey {
	tb.rules = append(tb.rules, rule)
	ruleIdx := len(tb.rules) - 1
	tb.liveShifts = append(tb.liveShifts, tb.computeLiveShift(rule))

	if maxShift := rule.maxAbsShift(); maxShift > tb.gapSize {
		tb.gapSize = maxShift
		tb.correctGap()
	}

	if tb.function.Value(rule.Parent).IsFinite() {
		tb.connector.addPumping(rule.Parent, ruleIdx)
		for childPos, child := range rule.Children {
			if tb.function.Value(child).IsFinite() {
				tb.connector.addUsing(child, ruleIdx, childPos)
			}
		}
		tb.queue.pushBack(ruleIdx)
	}

	tb.processQueue()
	return tb.rules[ruleIdx]
}

// IsPumping reports whether class has been certified to pump, i.e.
// f(class) == Infinity.
func (tb *TableMethod) IsPumping(class uint32) bool {
	return tb.function.Value(class).IsInfinite()
}

// StableSubset lazily yields every class that currently pumps.
func (tb *TableMethod) StableSubset() iter.Seq[uint32] {
	return tb.function.Preimage(Infinity)
}

// PumpingSubuniverse lazily yields every stored rule whose parent and
// every child currently pump.
func (tb *TableMethod) PumpingSubuniverse() iter.Seq[RuleKey] {
	return func(yield func(RuleKey) bool) {
		for _, rule := range tb.rules {
			if !tb.IsPumping(rule.Parent) {
				continue
			}
			allChildrenPump := true
			for _, c := range rule.Children {
				if !tb.IsPumping(c) {
					allChildrenPump = false
					break
				}
			}
			if allChildrenPump && !yield(rule) {
				return
			}
		}
	}
}

// FunctionSnapshot returns every materialized, non-zero position of the
// underlying function: a finite value v maps to a non-nil pointer to v
// (values above 255 are clamped to 255), a value of Infinity maps to a
// nil pointer, and zero-valued positions are omitted entirely.
func (tb *TableMethod) FunctionSnapshot() map[uint32]*uint8 {
	snapshot := make(map[uint32]*uint8)
	for i := uint32(0); i < tb.function.Len(); i++ {
		value := tb.function.Value(i)
		if value.IsInfinite() {
			snapshot[i] = nil
			continue
		}
		v, _ := value.Value()
		if v == 0 {
			continue
		}
		if v > 255 {
			v = 255
		}
		clamped := uint8(v)
		snapshot[i] = &clamped
	}
	return snapshot
}

// computeLiveShift derives rule's initial live shift vector from the
// current function values of its parent and children: a child already
// pumping contributes an unconditional (nil/None) slot, otherwise the
// slot holds the child's current credit toward advancing the parent.
func (tb *TableMethod) computeLiveShift(rule RuleKey) []*int8 {
	slots := make([]*int8, len(rule.Children))
	parentValue := tb.function.Value(rule.Parent)
	if parentValue.IsInfinite() {
		return slots
	}
	pv, _ := parentValue.Value()
	for i, child := range rule.Children {
		childValue := tb.function.Value(child)
		if childValue.IsInfinite() {
			continue
		}
		cv, _ := childValue.Value()
		slot := int8(int64(cv) + int64(rule.Shifts[i]) - int64(pv))
		slots[i] = &slot
	}
	return slots
}

// canGiveTerms reports whether every slot is either unconditional (nil)
// or holds positive credit: the predicate under which a rule's parent can
// be advanced.
func canGiveTerms(slots []*int8) bool {
	for _, s := range slots {
		if s != nil && *s <= 0 {
			return false
		}
	}
	return true
}

// correctGap recomputes the empty window the gap tracks and, if its right
// endpoint moved right, releases every held-back rule back onto the
// processing queue: they may now fit under the higher endpoint.
func (tb *TableMethod) correctGap() {
	k := tb.function.PreimageGap(tb.gapSize)
	newGap := [2]uint32{k, k + tb.gapSize}
	if newGap[1] > tb.currentGap[1] {
		for ruleIdx := range tb.heldBack {
			tb.queue.pushBack(ruleIdx)
		}
		tb.heldBack = make(map[int]struct{})
	}
	tb.currentGap = newGap
}

// processQueue drains the processing queue and the held-back set to a
// fixed point: every eligible rule advances its parent, and once the
// queue is empty one held-back rule at a time is promoted, which may make
// further rules eligible.
func (tb *TableMethod) processQueue() {
	for tb.queue.len() > 0 || len(tb.heldBack) > 0 {
		for tb.queue.len() > 0 {
			ruleIdx := tb.queue.popFront()
			if canGiveTerms(tb.liveShifts[ruleIdx]) {
				tb.advance(tb.rules[ruleIdx].Parent, ruleIdx)
			}
		}
		if len(tb.heldBack) > 0 {
			var ruleIdx int
			for idx := range tb.heldBack {
				ruleIdx = idx
				break
			}
			delete(tb.heldBack, ruleIdx)
			tb.setInfinite(tb.rules[ruleIdx].Parent)
		}
	}
}

// advance increases f(class) by one, justified by ruleIdx, and propagates
// the consequences through every rule that has class as parent or child.
// If class already pumps this is a no-op; if class's current value
// exceeds the gap's right endpoint, ruleIdx is held back instead of
// applied.
func (tb *TableMethod) advance(class uint32, ruleIdx int) {
	value := tb.function.Value(class)
	if value.IsInfinite() {
		return
	}
	v, _ := value.Value()
	if v > tb.currentGap[1] {
		tb.heldBack[ruleIdx] = struct{}{}
		return
	}

	tb.function.Increase(class)

	if gapStart := tb.function.PreimageGap(tb.gapSize); gapStart != tb.currentGap[0] {
		tb.correctGap()
	}

	for r := range tb.connector.rulesPumping(class) {
		slots := tb.liveShifts[r]
		for i, s := range slots {
			if s != nil {
				decremented := *s - 1
				slots[i] = &decremented
			}
		}
		if canGiveTerms(slots) {
			tb.queue.pushBack(r)
		}
	}

	for ref := range tb.connector.rulesUsing(class) {
		slots := tb.liveShifts[ref.ruleIdx]
		if s := slots[ref.childPos]; s != nil {
			incremented := *s + 1
			slots[ref.childPos] = &incremented
		}
		if canGiveTerms(slots) {
			tb.queue.pushBack(ref.ruleIdx)
		}
	}
}

// setInfinite promotes f(class) to Infinity: the proof that class is
// stably pumping, having accumulated more terms than the gap can hold.
// It requires the processing queue to be empty and f(class) to already
// exceed the gap's right endpoint; both are internal invariants of
// processQueue's "drain queue, then promote one" discipline; violating
// them is an engine bug, not a data condition, so they panic.
func (tb *TableMethod) setInfinite(class uint32) {
	value := tb.function.Value(class)
	if value.IsInfinite() {
		return
	}
	v, _ := value.Value()
	if v <= tb.currentGap[1] {
		fail("TableMethod.setInfinite: class %d has not accumulated enough terms to promote", class)
	}
	if tb.queue.len() != 0 {
		fail("TableMethod.setInfinite: processing queue must be empty before promotion")
	}

	tb.function.SetInfinite(class)

	for ref := range tb.connector.rulesUsing(class) {
		slots := tb.liveShifts[ref.ruleIdx]
		slots[ref.childPos] = nil
		if canGiveTerms(slots) {
			tb.queue.pushBack(ref.ruleIdx)
		}
	}
}

// intQueue is a minimal FIFO of rule indices, backed by a slice with a
// head offset so repeated pops don't reshuffle the backing array.
type intQueue struct {
	items []int
	head  int
}

func (q *intQueue) pushBack(v int) {
	q.items = append(q.items, v)
}

func (q *intQueue) popFront() int {
	v := q.items[q.head]
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return v
}

func (q *intQueue) len() int {
	return len(q.items) - q.head
}
