package main

import "strings"

// ---------------------------------------------------------------------------
// Career Recommendation Buckets
// ---------------------------------------------------------------------------

// careerBucket groups recommendations whose text contains one of its
// keywords. Matching is case-sensitive.
type careerBucket struct {
	Label    string
	Keywords []string
}

// careerBuckets are tested in order; an item lands in the first match only.
var careerBuckets = []careerBucket{
	{Label: "Leadership Roles", Keywords: []string{"leadership", "management", "director"}},
	{Label: "Creative Positions", Keywords: []string{"creative", "design", "innovation"}},
	{Label: "Analytical Roles", Keywords: []string{"analysis", "research", "strategy"}},
}

func (b careerBucket) matches(item string) bool {
	for _, kw := range b.Keywords {
		if strings.Contains(item, kw) {
			return true
		}
	}
	return false
}

// careerGroup is a labelled bucket and the items assigned to it.
type careerGroup struct {
	Label string
	Items []string
}

// classifyCareers assigns each recommendation to the first matching bucket.
// Groups keep bucket order and are returned even when empty; items matching
// no bucket are returned in input order as the remainder.
func classifyCareers(items []string) (groups []careerGroup, remaining []string) {
	groups = make([]careerGroup, len(careerBuckets))
	for i, b := range careerBuckets {
		groups[i].Label = b.Label
	}

	for _, item := range items {
		placed := false
		for i, b := range careerBuckets {
			if b.matches(item) {
				groups[i].Items = append(groups[i].Items, item)
				placed = true
				break
			}
		}
		if !placed {
			remaining = append(remaining, item)
		}
	}
	return groups, remaining
}
