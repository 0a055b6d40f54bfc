package questions

import (
	"math/rand"
	"time"
)

// Select returns up to n questions for the given tech, shuffled uniformly.
// When the strict tech+role+years pool is smaller than n the constraints are
// relaxed step by step: first the years bound is dropped, then the role, and
// finally any question of the tech qualifies. The result may still be shorter
// than n when the tech itself has too few questions.
//
// rng is injectable for deterministic tests; nil falls back to a time seed.
func Select(c *Catalog, tech, role string, years, n int, rng *rand.Rand) []*Question {
	if c == nil || n <= 0 {
		return nil
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	tiers := []func(*Question) bool{
		func(q *Question) bool { return q.Tech == tech && q.HasRole(role) && q.CoversYears(years) },
		func(q *Question) bool { return q.Tech == tech && q.HasRole(role) },
		func(q *Question) bool { return q.Tech == tech && q.CoversYears(years) },
		func(q *Question) bool { return q.Tech == tech },
	}

	var pool []*Question
	for i, match := range tiers {
		pool = filter(c.Items, match)
		if len(pool) >= n || i == len(tiers)-1 {
			break
		}
	}

	selected := make([]*Question, len(pool))
	copy(selected, pool)
	rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})

	if len(selected) > n {
		selected = selected[:n]
	}

	return selected
}

func filter(items []*Question, match func(*Question) bool) []*Question {
	out := make([]*Question, 0, len(items))
	for _, q := range items {
		if match(q) {
			out = append(out, q)
		}
	}
	return out
}
