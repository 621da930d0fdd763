package interp

// Frame is one binding scope on the ProgramStack: a name-to-Value map
// plus an Outer link, grounded on original_source/project_code's
// program_stack.py StackFrame (spec.md §4.4 names this type directly).
// A nil Value bound under a name marks a declared-but-uninitialized
// variable ("none" in spec terms) — reading it is a runtime error.
type Frame struct {
	Name      string
	Variables map[string]Value
	Outer     *Frame
}

// NewFrame creates a frame nested under outer (nil for the global frame).
func NewFrame(name string, outer *Frame) *Frame {
	return &Frame{Name: name, Variables: make(map[string]Value), Outer: outer}
}

// Declare binds name directly in f, shadowing any outer binding. Used for
// VarDecl and for a for loop's variable.
func (f *Frame) Declare(name string, v Value) {
	f.Variables[name] = v
}

// Get climbs the Outer chain looking for name, returning (nil, false) if
// it is bound nowhere on the chain. A bound-but-nil Value (an
// uninitialized variable) is returned as (nil, true).
func (f *Frame) Get(name string) (Value, bool) {
	if v, ok := f.Variables[name]; ok {
		return v, true
	}
	if f.Outer != nil {
		return f.Outer.Get(name)
	}
	return nil, false
}

// Set rebinds name in whichever frame on the chain already declared it,
// per spec.md §4.4's assignment rule ("walking outer frames to find the
// defining frame, never creating new bindings"). It returns false if name
// is not declared anywhere on the chain — semantic analysis guarantees
// this never happens for a well-formed program.
func (f *Frame) Set(name string, v Value) bool {
	if _, ok := f.Variables[name]; ok {
		f.Variables[name] = v
		return true
	}
	if f.Outer != nil {
		return f.Outer.Set(name, v)
	}
	return false
}

// ProgramStack is the interpreter's LIFO stack of active Frames.
type ProgramStack struct {
	frames []*Frame
}

func (s *ProgramStack) Push(f *Frame) { s.frames = append(s.frames, f) }

func (s *ProgramStack) Pop() *Frame {
	n := len(s.frames)
	f := s.frames[n-1]
	s.frames = s.frames[:n-1]
	return f
}

func (s *ProgramStack) Peek() *Frame { return s.frames[len(s.frames)-1] }

func (s *ProgramStack) Size() int { return len(s.frames) }
