package analyzer

import (
	errors "gopkg.in/src-d/go-errors.v1"
)

// OnceBeforeDefault contains the rules run once before the decorrelation
// rules, to reject malformed plans early.
var OnceBeforeDefault = []Rule{
	{"validate_node_ids", validateNodeIDs},
}

// DefaultRules to apply when analyzing nodes. Correlation discovery must
// run before the rewrite so dependent joins carry their accessing sets.
var DefaultRules = []Rule{
	{"populate_dependencies", populateDependencies},
	{"decorrelate_joins", decorrelateJoins},
}

// OnceAfterDefault contains the rules run once after decorrelation, to
// guarantee the output contract of the rewrite.
var OnceAfterDefault = []Rule{
	{"validate_no_dependent_joins", validateNoDependentJoins},
	{"validate_column_supply", validateColumnSupply},
}

var (
	// ErrDuplicateNodeID is returned when two nodes of a plan carry the
	// same id.
	ErrDuplicateNodeID = errors.NewKind("malformed plan: duplicate node id %d")
	// ErrUnresolvedOuterReference is returned when an outer reference has
	// no locally available equivalent column; the rewrite cannot proceed
	// correctly without it.
	ErrUnresolvedOuterReference = errors.NewKind("outer reference %s cannot be resolved to any available column")
	// ErrColumnNotSupplied is returned when a node references a column that
	// none of its descendants produces.
	ErrColumnNotSupplied = errors.NewKind("column %s referenced by node %d is not produced by any of its descendants%s")
	// ErrResidualDependentJoin is returned when a dependent join survives
	// decorrelation.
	ErrResidualDependentJoin = errors.NewKind("dependent join %d survived decorrelation")
)
