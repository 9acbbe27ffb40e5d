// Package query assembles parameterized WHERE clauses and pagination
// envelopes for the listing endpoints.
package query

import (
	"strings"
)

// Builder accumulates AND-ed conditions together with their bind args.
// Conditions use ? placeholders.
type Builder struct {
	conds []string
	args  []interface{}
}

func (b *Builder) Where(cond string, args ...interface{}) *Builder {
	b.conds = append(b.conds, cond)
	b.args = append(b.args, args...)
	return b
}

// WhereSQL returns " WHERE a AND b", or an empty string without conditions.
func (b *Builder) WhereSQL() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// Args returns a copy of the bound args followed by extra.
func (b *Builder) Args(extra ...interface{}) []interface{} {
	out := make([]interface{}, 0, len(b.args)+len(extra))
	out = append(out, b.args...)
	return append(out, extra...)
}
