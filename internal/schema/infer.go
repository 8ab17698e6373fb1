package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Rule binds a role to its ordered header keywords.
type Rule struct {
	Role     Role     `mapstructure:"role" yaml:"role" json:"role"`
	Keywords []string `mapstructure:"keywords" yaml:"keywords" json:"keywords"`
}

// Rules are evaluated in order.
type Rules []Rule

// DefaultRules returns the built-in keyword table.
func DefaultRules() Rules {
	return Rules{
		{Role: Date, Keywords: []string{"date", "placed"}},
		{Role: Time, Keywords: []string{"time", "placed"}},
		{Role: Region, Keywords: []string{"region", "city", "zone"}},
		{Role: TotalDuration, Keywords: []string{"total deliver", "duration", "mins"}},
		{Role: OrderTotal, Keywords: []string{"order total", "amount", "price"}},
		{Role: RefundAmount, Keywords: []string{"refund", "return"}},
		{Role: RestaurantID, Keywords: []string{"restaurant id", "store id"}},
		{Role: DriverID, Keywords: []string{"driver id", "dasher id"}},
		{Role: PrepDuration, Keywords: []string{"prep"}},
		{Role: DriveDuration, Keywords: []string{"drive"}},
	}
}

// Validate rejects unknown roles, duplicated roles and empty keyword lists.
func (rs Rules) Validate() error {
	seen := map[Role]bool{}
	for i, r := range rs {
		if !r.Role.Known() {
			return fmt.Errorf("rule %d: unknown role %q", i, r.Role)
		}
		if seen[r.Role] {
			return fmt.Errorf("rule %d: role %q listed twice", i, r.Role)
		}
		seen[r.Role] = true
		if len(r.Keywords) == 0 {
			return fmt.Errorf("rule %d (%s): no keywords", i, r.Role)
		}
		for _, k := range r.Keywords {
			if strings.TrimSpace(k) == "" {
				return errors.New("rule " + string(r.Role) + ": empty keyword")
			}
		}
	}
	return nil
}

// Infer assigns each role the first column, in source order, whose
// lowercased name contains one of the role's keywords. Roles without a
// match stay unmapped. A nil rules value uses DefaultRules.
//
// A column is held by at most one role. When two roles want the same
// column it goes to the role whose matching keyword sits earlier in its
// list, then to the longer keyword, then to the earlier rule. The losing
// role moves on to its next matching column.
func Infer(columns []string, rules Rules) Config {
	if rules == nil {
		rules = DefaultRules()
	}
	lower := make([]string, len(columns))
	for i, c := range columns {
		lower[i] = strings.ToLower(c)
	}

	prefs := make([][]claim, len(rules))
	for ri, rule := range rules {
		for ci, name := range lower {
			if rank, size := keywordRank(name, rule.Keywords); rank >= 0 {
				prefs[ri] = append(prefs[ri], claim{rule: ri, col: ci, rank: rank, size: size})
			}
		}
	}

	held := make(map[int]claim) // by column
	next := make([]int, len(rules))
	queue := make([]int, 0, len(rules))
	for ri := range rules {
		queue = append(queue, ri)
	}
	for len(queue) > 0 {
		ri := queue[0]
		queue = queue[1:]
		for next[ri] < len(prefs[ri]) {
			c := prefs[ri][next[ri]]
			next[ri]++
			cur, taken := held[c.col]
			if !taken {
				held[c.col] = c
				break
			}
			if c.beats(cur) {
				held[c.col] = c
				queue = append(queue, cur.rule)
				break
			}
		}
	}

	cfg := make(Config, len(rules))
	for _, rule := range rules {
		cfg[rule.Role] = ""
	}
	for col, c := range held {
		cfg[rules[c.rule].Role] = columns[col]
	}
	return cfg
}

type claim struct {
	rule int
	col  int
	rank int // index of the matched keyword
	size int // length of the matched keyword
}

func (c claim) beats(o claim) bool {
	if c.rank != o.rank {
		return c.rank < o.rank
	}
	if c.size != o.size {
		return c.size > o.size
	}
	return c.rule < o.rule
}

// keywordRank returns the index and length of the first keyword contained
// in name, or -1.
func keywordRank(name string, keywords []string) (int, int) {
	for i, k := range keywords {
		if k == "" {
			continue
		}
		if strings.Contains(name, strings.ToLower(k)) {
			return i, len(k)
		}
	}
	return -1, 0
}
