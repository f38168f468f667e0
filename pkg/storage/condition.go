package storage

// ConditionOp is the closed set of preconditions a conditional write may carry.
type ConditionOp int

const (
	OpAttributeNotExists ConditionOp = iota + 1
	OpAttributeExists
)

// Condition is a precondition evaluated by the store at write time.
type Condition struct {
	Op    ConditionOp
	Field string
}

// AttributeNotExists holds when no record with field set is stored under the key.
// It is the idempotent-create condition.
func AttributeNotExists(field string) *Condition {
	return &Condition{Op: OpAttributeNotExists, Field: field}
}

// AttributeExists holds when a record with field set is already stored under the key.
func AttributeExists(field string) *Condition {
	return &Condition{Op: OpAttributeExists, Field: field}
}
