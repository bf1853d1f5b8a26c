// Copyright (C) 2024 Grundy Lab
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package ruleset parses an octal-game digit string into the ordered
// move rules a position of that game permits.
package ruleset

import (
	"errors"
	"fmt"
)

// ErrInvalidDigit is returned (wrapped with the offending rune) when a
// rules string contains a character that is neither '.' nor a decimal
// digit in 0-7.
var ErrInvalidDigit = errors.New("invalid octal rule digit")

// Rule is the set of moves permitted after removing i tokens from a
// heap, where i is the Rule's position in a RuleSet.
type Rule struct {
	AllowEmpty  bool // bit 0: may empty the heap
	AllowSome   bool // bit 1: may leave a single nonempty heap
	AllowDivide bool // bit 2: may leave two nonempty heaps
}

func ruleFromDigit(d byte) (Rule, error) {
	if d > 7 {
		return Rule{}, fmt.Errorf("%w: digit %q is outside 0-7", ErrInvalidDigit, d)
	}
	return Rule{
		AllowEmpty:  d&1 != 0,
		AllowSome:   d&2 != 0,
		AllowDivide: d&4 != 0,
	}, nil
}

// RuleSet is the immutable, ordered sequence of Rules for an octal
// game, one per removal distance i in [0, Len()).
type RuleSet struct {
	rules []Rule
}

// Parse parses a digit string, conventionally written with a leading
// "0.", into a RuleSet. Any '.' characters are discarded. A character
// that is not '.' and not a decimal digit, or a digit >= 8, fails with
// ErrInvalidDigit.
func Parse(s string) (RuleSet, error) {
	rules := make([]Rule, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '.' {
			continue
		}
		if c < '0' || c > '9' {
			return RuleSet{}, fmt.Errorf("%w: %q at position %d", ErrInvalidDigit, c, i)
		}
		r, err := ruleFromDigit(c - '0')
		if err != nil {
			return RuleSet{}, fmt.Errorf("position %d: %w", i, err)
		}
		rules = append(rules, r)
	}
	return RuleSet{rules: rules}, nil
}

// Len returns r, the number of rules (the distance cutoff beyond which
// the bootstrap-vs-steady-state distinction in the mex engine no
// longer matters).
func (rs RuleSet) Len() int {
	return len(rs.rules)
}

// At returns the rule for removal distance i.
func (rs RuleSet) At(i int) Rule {
	return rs.rules[i]
}

// Rules returns the underlying rule slice. Callers must not mutate it;
// RuleSet is immutable after Parse.
func (rs RuleSet) Rules() []Rule {
	return rs.rules
}
