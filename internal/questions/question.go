package questions

import "sort"

// RoleAny is the sentinel role matching every role filter.
const RoleAny = "any"

// Question is a single entry of the interview question bank.
type Question struct {
	ID          string
	Tech        string
	Roles       []string
	MinYears    int
	MaxYears    int
	Tags        []string
	Text        string
	Explanation string
}

// HasRole reports whether the question applies to the given role. Questions
// tagged with the sentinel role match everything.
func (q *Question) HasRole(role string) bool {
	for _, r := range q.Roles {
		if r == role || r == RoleAny {
			return true
		}
	}
	return false
}

// CoversYears reports whether the given experience falls inside the question's
// declared range. An inverted range never matches.
func (q *Question) CoversYears(years int) bool {
	return q.MinYears <= years && years <= q.MaxYears
}

// Catalog is the in-memory question bank built at startup.
type Catalog struct {
	Items []*Question
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

// Techs returns the sorted set of technologies present in the catalog.
func (c *Catalog) Techs() []string {
	if c == nil {
		return nil
	}

	seen := make(map[string]struct{})
	techs := make([]string, 0)
	for _, q := range c.Items {
		if _, ok := seen[q.Tech]; ok {
			continue
		}
		seen[q.Tech] = struct{}{}
		techs = append(techs, q.Tech)
	}

	sort.Strings(techs)
	return techs
}

// Roles returns the sorted set of roles used by questions of the given tech.
// The sentinel role is always present so a user can opt out of role filtering.
func (c *Catalog) Roles(tech string) []string {
	seen := map[string]struct{}{RoleAny: {}}
	roles := []string{RoleAny}

	if c != nil {
		for _, q := range c.Items {
			if q.Tech != tech {
				continue
			}
			for _, r := range q.Roles {
				if _, ok := seen[r]; ok {
					continue
				}
				seen[r] = struct{}{}
				roles = append(roles, r)
			}
		}
	}

	sort.Strings(roles)
	return roles
}

// FilterByTech returns a catalog holding the questions of the given tech in
// catalog order.
func (c *Catalog) FilterByTech(tech string) *Catalog {
	out := &Catalog{}
	if c == nil {
		return out
	}

	for _, q := range c.Items {
		if q.Tech == tech {
			out.Items = append(out.Items, q)
		}
	}
	return out
}
