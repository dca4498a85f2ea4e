package logic

// Instruction is one step of a compiled program. Execute performs
// exactly one bounded, side-effecting step against the executor's world.
// It never fails: invalid inputs degrade to a no-op or a null/zero
// result.
//
// Instructions are configuration-only data records; the few variants
// that cache search results own explicitly separated mutable sub-state
// that dies with the instruction array on reload.
type Instruction interface {
	Execute(ex *Executor)
}
