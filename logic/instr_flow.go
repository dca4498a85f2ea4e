package logic

// EndInst halts by setting the counter to the program length: the next
// step falls out of range and wraps to 0, restarting the program.
type EndInst struct{}

func (EndInst) Execute(ex *Executor) {
	ex.Var(VarCounter).NumVal = float64(len(ex.Instructions))
}

// JumpInst assigns the counter to a target address when the comparison
// holds. Address -1 is a permanently disabled jump.
type JumpInst struct {
	Op             CondOp
	Value, Compare int
	Address        int
}

func (in *JumpInst) Execute(ex *Executor) {
	if in.Address == -1 {
		return
	}

	a := ex.Var(in.Value)
	b := ex.Var(in.Compare)
	def := condDefs[in.Op]
	var cmp bool

	switch {
	case in.Op == CondStrictEqual:
		cmp = a.IsObj == b.IsObj &&
			((a.IsObj && a.ObjVal == b.ObjVal) || (!a.IsObj && a.NumVal == b.NumVal))
	case def.objF != nil && a.IsObj && b.IsObj:
		cmp = def.objF(ex.Obj(in.Value), ex.Obj(in.Compare))
	default:
		cmp = def.f(ex.Num(in.Value), ex.Num(in.Compare))
	}

	if cmp {
		ex.Var(VarCounter).NumVal = float64(in.Address)
	}
}

// WaitInst is a non-blocking sleep: it re-selects itself (undoing the
// loop's pre-increment) and yields until the accumulated tick time
// reaches the requested duration in seconds, then resets its
// accumulator and lets the counter advance.
type WaitInst struct {
	Value int

	curTime float64
	frameID int64
}

func (in *WaitInst) Execute(ex *Executor) {
	if in.curTime >= ex.Num(in.Value) {
		in.curTime = 0
	} else {
		// skip back to self
		ex.Var(VarCounter).NumVal--
		ex.Yield = true
	}

	if ex.W.UpdateID != in.frameID {
		in.curTime += ex.W.Delta / 60
		in.frameID = ex.W.UpdateID
	}
}

// StopInst parks the program on itself forever, yielding each tick.
type StopInst struct{}

func (StopInst) Execute(ex *Executor) {
	// skip back to self
	ex.Var(VarCounter).NumVal--
	ex.Yield = true
}
