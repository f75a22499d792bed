// AngelaMos | 2026
// assignments.go

package core

import (
	"fmt"
	"strings"
)

// Assignments collects "column = $n" pairs for a partial UPDATE. Arguments
// passed to NewAssignments keep the leading placeholders ($1 is usually the
// row id).
type Assignments struct {
	sets []string
	args []any
}

func NewAssignments(args ...any) *Assignments {
	return &Assignments{args: args}
}

func (a *Assignments) Add(column string, value any) {
	a.args = append(a.args, value)
	a.sets = append(a.sets, fmt.Sprintf("%s = $%d", column, len(a.args)))
}

// Raw adds an expression that needs no argument, such as updated_at = NOW().
func (a *Assignments) Raw(expr string) {
	a.sets = append(a.sets, expr)
}

// Placeholder refers to the most recently added argument, for expressions
// that reuse it.
func (a *Assignments) Placeholder() string {
	return fmt.Sprintf("$%d", len(a.args))
}

func (a *Assignments) Len() int {
	return len(a.sets)
}

func (a *Assignments) Clause() string {
	return strings.Join(a.sets, ", ")
}

func (a *Assignments) Args() []any {
	return a.args
}

// SetIf adds column when v is non-nil.
func SetIf[T any](a *Assignments, column string, v *T) {
	if v != nil {
		a.Add(column, *v)
	}
}
