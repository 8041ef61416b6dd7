// Package forest implements the table method: an incremental fixed-point
// engine that certifies a set of recursive decomposition rules forms a
// pumping forest, and a minimizer that extracts the smallest sufficient
// rule subset once pumping is established.
//
// A TableMethod maintains a function from combinatorial class indices to
// IntOrInf. Rules are added one at a time; each addition is propagated to
// a fixed point before AddRuleKey returns. Once a class's value reaches
// infinity, it is "pumping": the engine has certified it enumerates
// unboundedly under the rules inserted so far.
//
// The package does not enumerate combinatorial terms, construct
// combinatorial classes, or validate that rules are semantically sound —
// callers are trusted to supply valid rules for their own domain.
package forest
