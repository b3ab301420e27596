package expr

import (
	"fmt"
	"regexp"

	"github.com/pkg/errors"

	"github.com/kushdb/kushdb-go/catalog"
	"github.com/kushdb/kushdb-go/internal/kerrors"
)

// RegexpMatching matches a TEXT operand against an RE2-compatible
// pattern, compiled once at construction time (spec.md §4.2). Go's
// standard regexp package is itself an RE2 implementation, so this is
// the one expression in the algebra that does not reach into the
// dependency corpus for its engine — see DESIGN.md.
type RegexpMatching struct {
	A       Expression
	pattern string
	re      *regexp.Regexp
	typ     catalog.Type
}

func NewRegexpMatching(a Expression, pattern string) (*RegexpMatching, error) {
	if a.Type().Kind != catalog.TEXT {
		return nil, kerrors.TypeMismatch.New(fmt.Sprintf("regexp match requires a TEXT operand, got %s", a.Type()))
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "compiling regexp pattern %q", pattern)
	}
	return &RegexpMatching{A: a, pattern: pattern, re: re, typ: catalog.Type{Kind: catalog.BOOLEAN, Nullable: a.Type().Nullable}}, nil
}

func (r *RegexpMatching) Type() catalog.Type     { return r.typ }
func (r *RegexpMatching) Children() []Expression { return []Expression{r.A} }
func (r *RegexpMatching) String() string         { return fmt.Sprintf("%s REGEXP %q", r.A, r.pattern) }

func (r *RegexpMatching) Eval(b Bindings) (Value, error) {
	v, err := r.A.Eval(b)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return r.re.MatchString(v.(string)), nil
}
