package expression

import (
	"github.com/spf13/cast"

	"github.com/src-d/go-unnest/sql"
)

// Literal is a constant value, kept in its textual form.
type Literal struct {
	Value string
}

// NewLiteral creates a new literal with the given text.
func NewLiteral(value string) *Literal {
	return &Literal{Value: value}
}

// True returns a literal boolean true.
func True() *Literal {
	return NewLiteral("true")
}

// Bool interprets the literal as a boolean. It returns an error when the
// text has no boolean meaning.
func (l *Literal) Bool() (bool, error) {
	return cast.ToBoolE(l.Value)
}

// Children implements the Expression interface.
func (*Literal) Children() []sql.Expression {
	return nil
}

// TransformUp implements the Expression interface.
func (l *Literal) TransformUp(f sql.TransformExprFunc) sql.Expression {
	return f(NewLiteral(l.Value))
}

func (l *Literal) String() string {
	return l.Value
}
