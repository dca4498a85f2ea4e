package logic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/V9S/Mindustry/world"
)

// Assemble compiles program text into a loadable ProgramDef. Each line
// is one instruction: an opcode followed by space-separated operands.
// Operands are variable names, numeric literals, quoted strings, or
// @-builtins resolved against the world's content. Lines ending in ':'
// are jump labels; '#' starts a comment.
func Assemble(source string, w *world.State) (ProgramDef, error) {
	a := &assembler{
		w:     w,
		slots: make(map[string]int),
	}

	// reserved slots exist in every program
	a.slot("@counter")
	a.slot("@unit")
	a.slot("@this")

	var lines []string
	labels := make(map[string]int)
	for _, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, ":") && !strings.ContainsAny(line, " \t") {
			labels[strings.TrimSuffix(line, ":")] = len(lines)
			continue
		}
		lines = append(lines, line)
	}

	var instructions []Instruction
	for i, line := range lines {
		instr, err := a.parse(line, labels)
		if err != nil {
			return ProgramDef{}, fmt.Errorf("line %d (%q): %w", i+1, line, err)
		}
		instructions = append(instructions, instr)
	}
	if len(instructions) > MaxInstructions {
		return ProgramDef{}, fmt.Errorf("program has %d instructions, limit is %d", len(instructions), MaxInstructions)
	}

	return ProgramDef{Vars: a.defs, Instructions: instructions}, nil
}

type assembler struct {
	w     *world.State
	slots map[string]int
	defs  []VarDef
}

// slot resolves a token to a variable slot, allocating and classifying
// it on first sight.
func (a *assembler) slot(token string) int {
	if id, ok := a.slots[token]; ok {
		return id
	}
	id := len(a.defs)
	a.slots[token] = id
	a.defs = append(a.defs, a.classify(token, id))
	return id
}

func (a *assembler) classify(token string, id int) VarDef {
	d := VarDef{ID: id, Name: token}

	switch {
	case token == "@counter" || token == "@ipt":
		// mutable builtins
	case strings.HasPrefix(token, "\"") && strings.HasSuffix(token, "\"") && len(token) >= 2:
		d.Constant, d.IsObj = true, true
		d.Obj = strings.Trim(token, "\"")
	case token == "null" || token == "@unit" || token == "@this":
		d.IsObj = true
		d.Constant = token == "null" || token == "@this"
	case token == "true":
		d.Constant, d.Num = true, 1
	case token == "false":
		d.Constant = true
	case strings.HasPrefix(token, "@"):
		d.Constant, d.IsObj = true, true
		d.Obj = a.builtin(token[1:])
	default:
		if n, err := parseNumber(token); err == nil {
			d.Constant, d.Num = true, n
		} else {
			// plain variables start as null
			d.IsObj = true
		}
	}
	return d
}

// builtin resolves an @-name: properties first, then content, then
// teams. Unknown names resolve to null.
func (a *assembler) builtin(name string) any {
	if p, ok := world.PropByName(name); ok {
		return p
	}
	switch name {
	case "air":
		return a.w.Content.Air
	case "solid":
		return a.w.Content.SolidWall
	}
	if c := a.w.Content.ByName(name); c != nil {
		return c
	}
	for _, t := range a.w.Teams() {
		if t.Name == name {
			return t
		}
	}
	logrus.Warnf("unknown builtin @%s, resolving to null", name)
	return nil
}

func parseNumber(token string) (float64, error) {
	base := 0
	switch {
	case strings.HasPrefix(token, "0x"):
		base = 16
	case strings.HasPrefix(token, "0b"):
		base = 2
	}
	if base != 0 {
		n, err := strconv.ParseInt(token[2:], base, 64)
		return float64(n), err
	}
	return strconv.ParseFloat(token, 64)
}

// tokenize splits a line on spaces, keeping double-quoted strings
// (including their quotes) as single tokens.
func tokenize(line string) []string {
	var tokens []string
	for i := 0; i < len(line); {
		for i < len(line) && line[i] == ' ' {
			i++
		}
		if i >= len(line) {
			break
		}
		start := i
		if line[i] == '"' {
			i++
			for i < len(line) && line[i] != '"' {
				i++
			}
			if i < len(line) {
				i++
			}
		} else {
			for i < len(line) && line[i] != ' ' {
				i++
			}
		}
		tokens = append(tokens, line[start:i])
	}
	return tokens
}

func (a *assembler) parse(line string, labels map[string]int) (Instruction, error) {
	tokens := tokenize(line)
	op := tokens[0]
	args := tokens[1:]

	// missing trailing operands default to zero
	arg := func(i int) int {
		if i >= len(args) {
			return a.slot("0")
		}
		return a.slot(args[i])
	}
	tag := func(i int) string {
		if i >= len(args) {
			return ""
		}
		return args[i]
	}

	switch op {
	case "noop":
		return NoopInst{}, nil
	case "set":
		return &SetInst{To: arg(0), From: arg(1)}, nil
	case "op":
		o, ok := OpByName(tag(0))
		if !ok {
			return nil, fmt.Errorf("unknown operator %q", tag(0))
		}
		return &OpInst{Op: o, Dest: arg(1), A: arg(2), B: arg(3)}, nil
	case "lookup":
		kind, ok := contentKinds[tag(0)]
		if !ok {
			return nil, fmt.Errorf("unknown content kind %q", tag(0))
		}
		return &LookupInst{Kind: kind, Dest: arg(1), From: arg(2)}, nil
	case "packcolor":
		return &PackColorInst{Result: arg(0), R: arg(1), G: arg(2), B: arg(3), A: arg(4)}, nil
	case "end":
		return EndInst{}, nil
	case "stop":
		return StopInst{}, nil
	case "wait":
		return &WaitInst{Value: arg(0)}, nil
	case "jump":
		cond, ok := CondByName(tag(1))
		if !ok {
			return nil, fmt.Errorf("unknown condition %q", tag(1))
		}
		addr, err := a.jumpTarget(tag(0), labels)
		if err != nil {
			return nil, err
		}
		return &JumpInst{Address: addr, Op: cond, Value: arg(2), Compare: arg(3)}, nil
	case "sensor":
		return &SenseInst{To: arg(0), From: arg(1), Type: arg(2)}, nil
	case "radar":
		t1, ok1 := RadarTargetByName(tag(0))
		t2, ok2 := RadarTargetByName(tag(1))
		t3, ok3 := RadarTargetByName(tag(2))
		sort, ok4 := RadarSortByName(tag(3))
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return nil, fmt.Errorf("bad radar filters %q %q %q %q", tag(0), tag(1), tag(2), tag(3))
		}
		return &RadarInst{Target1: t1, Target2: t2, Target3: t3, Sort: sort,
			Radar: arg(4), SortOrder: arg(5), Output: arg(6)}, nil
	case "ulocate":
		kind, ok := LocateKindByName(tag(0))
		if !ok {
			return nil, fmt.Errorf("unknown locate kind %q", tag(0))
		}
		return &UnitLocateInst{Locate: kind, Flag: world.BlockFlag(tag(1)),
			Enemy: arg(2), Ore: arg(3),
			OutX: arg(4), OutY: arg(5), OutFound: arg(6), OutBuild: arg(7)}, nil
	case "ubind":
		return &UnitBindInst{Type: arg(0)}, nil
	case "ucontrol":
		kind, ok := UnitControlByName(tag(0))
		if !ok {
			return nil, fmt.Errorf("unknown unit action %q", tag(0))
		}
		return &UnitControlInst{Kind: kind, P1: arg(1), P2: arg(2), P3: arg(3), P4: arg(4), P5: arg(5)}, nil
	case "control":
		switch tag(0) {
		case "enabled":
			return &ControlInst{Control: world.PropEnabled, Target: arg(1), P1: arg(2)}, nil
		case "shoot":
			return &ControlInst{Control: world.PropShooting, Target: arg(1), P1: arg(2), P2: arg(3), P3: arg(4)}, nil
		case "config":
			return &ControlInst{Control: world.PropConfig, Target: arg(1), P1: arg(2)}, nil
		case "shootp":
			return &ControlTargetInst{Target: arg(1), Obj: arg(2), Shoot: arg(3)}, nil
		}
		return nil, fmt.Errorf("unknown control %q", tag(0))
	case "getlink":
		return &GetLinkInst{Output: arg(0), Index: arg(1)}, nil
	case "read":
		return &ReadInst{Output: arg(0), Target: arg(1), Position: arg(2)}, nil
	case "write":
		return &WriteInst{Value: arg(0), Target: arg(1), Position: arg(2)}, nil
	case "fetch":
		kind, ok := FetchKindByName(tag(0))
		if !ok {
			return nil, fmt.Errorf("unknown fetch kind %q", tag(0))
		}
		return &FetchInst{Kind: kind, Output: arg(1), Team: arg(2), Index: arg(3), Extra: arg(4)}, nil
	case "print":
		return &PrintInst{Value: arg(0)}, nil
	case "format":
		return &FormatInst{Value: arg(0)}, nil
	case "printflush":
		return &PrintFlushInst{Target: arg(0)}, nil
	case "message":
		mt, ok := MessageTypeByName(tag(0))
		if !ok {
			return nil, fmt.Errorf("unknown message type %q", tag(0))
		}
		return &FlushMessageInst{Type: mt, Duration: arg(1), OutSuccess: arg(2)}, nil
	case "draw":
		cmd, ok := DrawCmdByName(tag(0))
		if !ok {
			return nil, fmt.Errorf("unknown draw command %q", tag(0))
		}
		if cmd == CmdPrint {
			// the align operand is a raw flag value, not a variable
			align, err := parseAlign(tag(3))
			if err != nil {
				return nil, err
			}
			return &DrawInst{Cmd: cmd, X: arg(1), Y: arg(2), P1: int(align)}, nil
		}
		return &DrawInst{Cmd: cmd, X: arg(1), Y: arg(2), P1: arg(3), P2: arg(4), P3: arg(5), P4: arg(6)}, nil
	case "drawflush":
		return &DrawFlushInst{Target: arg(0)}, nil
	case "getblock":
		layer, ok := GetBlockLayerByName(tag(0))
		if !ok {
			return nil, fmt.Errorf("unknown layer %q", tag(0))
		}
		return &GetBlockInst{Layer: layer, Output: arg(1), X: arg(2), Y: arg(3)}, nil
	case "setblock":
		layer, ok := GetBlockLayerByName(tag(0))
		if !ok {
			return nil, fmt.Errorf("unknown layer %q", tag(0))
		}
		return &SetBlockInst{Layer: layer, Block: arg(1), X: arg(2), Y: arg(3), Team: arg(4), Rotation: arg(5)}, nil
	case "spawn":
		return &SpawnUnitInst{Type: arg(0), X: arg(1), Y: arg(2), Rotation: arg(3), Team: arg(4), Output: arg(5)}, nil
	case "status":
		return &ApplyStatusInst{Clear: tag(0) == "true", Effect: tag(1), Unit: arg(2), Duration: arg(3)}, nil
	case "setrule":
		rule, ok := RuleByName(tag(0))
		if !ok {
			return nil, fmt.Errorf("unknown rule %q", tag(0))
		}
		return &SetRuleInst{Rule: rule, Value: arg(1), Team: arg(2),
			P1: arg(3), P2: arg(4), P3: arg(5), P4: arg(6)}, nil
	case "explosion":
		return &ExplosionInst{Team: arg(0), X: arg(1), Y: arg(2), Radius: arg(3), Damage: arg(4),
			Air: arg(5), Ground: arg(6), Pierce: arg(7), Effect: tag(8) != "false"}, nil
	case "setrate":
		return &SetRateInst{Amount: arg(0)}, nil
	case "sync":
		return &SyncInst{Variable: arg(0)}, nil
	case "getflag":
		return &GetFlagInst{Output: arg(0), Flag: arg(1)}, nil
	case "setflag":
		return &SetFlagInst{Flag: arg(0), Value: arg(1)}, nil
	case "spawnwave":
		return &SpawnWaveInst{X: arg(0), Y: arg(1), Natural: tag(2) == "true"}, nil
	case "setprop":
		return &SetPropInst{Key: arg(0), Target: arg(1), Value: arg(2)}, nil
	case "makemarker":
		return &MakeMarkerInst{Type: tag(0), ID: arg(1), X: arg(2), Y: arg(3), Replace: arg(4)}, nil
	case "setmarker":
		control, ok := world.MarkerControlByName(tag(0))
		if !ok {
			return nil, fmt.Errorf("unknown marker control %q", tag(0))
		}
		return &SetMarkerInst{Control: control, ID: arg(1), P1: arg(2), P2: arg(3), P3: arg(4)}, nil
	}
	return nil, fmt.Errorf("unknown opcode %q", op)
}

// parseAlign resolves a text alignment operand: a name like
// "bottomLeft", a numeric flag value, or empty for centered.
func parseAlign(token string) (Align, error) {
	if token == "" {
		return AlignCenter, nil
	}
	if a, ok := AlignByName(token); ok {
		return a, nil
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("unknown alignment %q", token)
	}
	return Align(n), nil
}

// jumpTarget resolves a jump operand: a label name, a numeric address,
// or -1 for a disabled jump.
func (a *assembler) jumpTarget(token string, labels map[string]int) (int, error) {
	if addr, ok := labels[token]; ok {
		return addr, nil
	}
	addr, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("unknown jump target %q", token)
	}
	return addr, nil
}

var contentKinds = map[string]world.ContentKind{
	"block": world.KindBlock, "unit": world.KindUnitType,
	"item": world.KindItem, "status": world.KindStatus,
}
