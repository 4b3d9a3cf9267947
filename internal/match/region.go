package match

import "github.com/tzchat/tzchat-backend/internal/domain"

// searchRegionRules returns a user's region rules for matching. Entries that
// are entirely empty are dropped; an empty list collapses to a single
// wildcard rule, so "no regions configured" means "anywhere".
func searchRegionRules(u *domain.User) []domain.Region {
	rules := make([]domain.Region, 0, len(u.SearchRegions))
	for _, r := range u.SearchRegions {
		r1, r2 := normStr(r.Region1), normStr(r.Region2)
		if r1 == "" && r2 == "" {
			continue
		}
		rules = append(rules, domain.Region{Region1: r1, Region2: r2})
	}
	if len(rules) == 0 {
		return []domain.Region{{Region1: domain.Wildcard, Region2: domain.Wildcard}}
	}
	return rules
}

// matchRegionRule applies one rule to a (region1, region2) pair:
// rule.region1 wildcard passes everything; rule.region2 wildcard matches on
// region1 alone; otherwise both parts must match exactly. The taxonomy is
// treated as opaque strings.
func matchRegionRule(r1, r2 string, rule domain.Region) bool {
	if isAll(rule.Region1) {
		return true
	}
	if isAll(rule.Region2) {
		return normStr(r1) == rule.Region1
	}
	return normStr(r1) == rule.Region1 && normStr(r2) == rule.Region2
}

// matchAnyRegionRule is the OR-disjunction over a rule list.
func matchAnyRegionRule(r1, r2 string, rules []domain.Region) bool {
	for _, rule := range rules {
		if matchRegionRule(r1, r2, rule) {
			return true
		}
	}
	return false
}

// PassRegion is the mutual region predicate: the candidate's home region must
// match one of the viewer's search rules and vice versa.
func PassRegion(viewer, cand *domain.User) bool {
	if !matchAnyRegionRule(cand.Region1, cand.Region2, searchRegionRules(viewer)) {
		return false
	}
	return matchAnyRegionRule(viewer.Region1, viewer.Region2, searchRegionRules(cand))
}
