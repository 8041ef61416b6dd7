package forest

// ExtractSpecification runs the minimizer against tb, which must already
// have rootClass pumping, and returns the smallest sufficient subset of
// rules this package could find: a forest certificate in which rootClass
// still pumps, every remaining rule's parent is unique (the result is a
// true forest), and every child any remaining rule references is itself
// the parent of some remaining rule (closure).
//
// ExtractSpecification panics if either structural property fails to
// hold on the result; both are internal invariants of a correctly
// implemented minimize pass, not data conditions a caller can trigger.
func ExtractSpecification(rootClass uint32, tb *TableMethod) []RuleKey {
	minimized := minimize(tb, rootClass)

	rules := make([]RuleKey, 0, len(minimized.rules))
	rules = append(rules, minimized.rules...)

	parents := make(map[uint32]struct{}, len(rules))
	for _, r := range rules {
		parents[r.Parent] = struct{}{}
	}
	if len(parents) != len(rules) {
		fail("ExtractSpecification: result has a duplicate parent, not a true forest")
	}
	for _, r := range rules {
		for _, c := range r.Children {
			if _, ok := parents[c]; !ok {
				fail("ExtractSpecification: child %d is not the parent of any remaining rule", c)
			}
		}
	}
	return rules
}

// minimize runs minimizeBucket for every bucket in priority order
// (Reverse, Normal, Equiv, Verification), each time working against the
// table left by the previous bucket's pass.
func minimize(tb *TableMethod, rootClass uint32) *TableMethod {
	for _, bucket := range minimizeOrder {
		tb = minimizeBucket(tb, bucket, rootClass)
	}
	return tb
}

// minimizeBucket runs rounds of minimizeBucketRound until a round reports
// it is done: the root still pumps in the rebuilt table and no candidate
// needed to be kept back.
func minimizeBucket(tb *TableMethod, bucket Bucket, rootClass uint32) *TableMethod {
	maybeUseful := make(map[string]struct{})
	for {
		newTB, done := minimizeBucketRound(tb, bucket, rootClass, maybeUseful)
		tb = newTB
		if done {
			return tb
		}
	}
}

// minimizeBucketRound rebuilds a fresh table from tb's pumping
// subuniverse, setting aside every rule in bucket that isn't already
// marked maybe-useful as a removal candidate. If the fresh table already
// has rootClass pumping, the round is done. Otherwise candidates are
// added back one at a time, most-recently-set-aside first, marking each
// as maybe-useful, until rootClass pumps again; it is a hard error to
// exhaust the candidates without restoring pumping.
func minimizeBucketRound(tb *TableMethod, bucket Bucket, rootClass uint32, maybeUseful map[string]struct{}) (*TableMethod, bool) {
	newTB := NewTableMethod()
	var candidates []RuleKey

	for rule := range tb.PumpingSubuniverse() {
		if rule.Bucket == bucket {
			if _, kept := maybeUseful[rule.canonicalKey()]; !kept {
				candidates = append(candidates, rule)
				continue
			}
		}
		newTB.AddRuleKey(rule)
	}

	if newTB.IsPumping(rootClass) {
		return newTB, true
	}

	for !newTB.IsPumping(rootClass) {
		if len(candidates) == 0 {
			fail("minimizeBucket: root class %d not pumping after adding every %s candidate", rootClass, bucket)
		}
		last := candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]
		added := newTB.AddRuleKey(last)
		maybeUseful[added.canonicalKey()] = struct{}{}
	}
	return newTB, false
}
