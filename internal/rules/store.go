package rules

import "sort"

// sortRules orders rules by priority ascending, breaking ties by rule ID
// ascending (first-created wins). This is the engine's only rule ordering;
// map insertion order never decides a match.
func sortRules(rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority < rules[j].Priority
		}
		return rules[i].ID < rules[j].ID
	})
}

// Validate reports whether a rule is well-formed enough to ever match:
// it must declare a known priority level, carry the predicates that level
// evaluates, and target a category.
func Validate(rule Rule) error {
	return validateRule(rule)
}
