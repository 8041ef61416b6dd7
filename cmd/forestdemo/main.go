// Command forestdemo builds a small pumping forest and extracts a minimal
// certificate from it, printing engine status and the extracted rules.
package main

import (
	"fmt"

	"github.com/PermutaTriangle/forest/pkg/forest"
)

func main() {
	tb := forest.NewTableMethod()

	rules := []forest.RuleKey{
		forest.NewRuleKey(0, []uint32{1, 2}, []int8{0, 0}, forest.BucketNormal),
		forest.NewRuleKey(1, nil, nil, forest.BucketVerification),
		forest.NewRuleKey(2, []uint32{3}, []int8{0}, forest.BucketEquiv),
		forest.NewRuleKey(3, []uint32{4}, []int8{0}, forest.BucketEquiv),
		forest.NewRuleKey(4, []uint32{5, 0, 0}, []int8{0, 1, 1}, forest.BucketNormal),
		forest.NewRuleKey(5, nil, nil, forest.BucketVerification),
	}

	for _, r := range rules {
		tb.AddRuleKey(r)
	}

	fmt.Println(tb.Status())

	const root = 0
	if !tb.IsPumping(root) {
		fmt.Printf("class %d does not pump yet\n", root)
		return
	}

	extracted := forest.ExtractSpecification(root, tb)
	fmt.Printf("\nextracted %d rules:\n", len(extracted))
	for _, r := range extracted {
		fmt.Printf("  %d -> %v (shifts %v, bucket %s)\n", r.Parent, r.Children, r.Shifts, r.Bucket)
	}
}
