package macro

// Position is an opaque location saved by a mark. What it means is up
// to the embedding application (scroll offset, cursor, URL fragment).
type Position struct {
	X int
	Y int
}

// LastJumpMark restores the position before the most recent jump.
const LastJumpMark = "'"

// Marks stores named positions. It implements the mark half of the
// register capture modes.
type Marks struct {
	current func() Position
	jump    func(pos Position)

	marks map[string]Position
}

// NewMarks creates a mark store reading the active position through
// current and jumping through jump.
func NewMarks(current func() Position, jump func(pos Position)) *Marks {
	return &Marks{
		current: current,
		jump:    jump,
		marks:   make(map[string]Position),
	}
}

// SetMark saves the current position under name.
func (m *Marks) SetMark(name string) error {
	name, err := checkRegister(name)
	if err != nil {
		return err
	}
	m.marks[name] = m.current()
	return nil
}

// JumpMark jumps to the position saved under name. The "'" mark returns
// to where the last jump started from.
func (m *Marks) JumpMark(name string) error {
	if name != LastJumpMark {
		var err error
		name, err = checkRegister(name)
		if err != nil {
			return err
		}
	}

	pos, ok := m.marks[name]
	if !ok {
		return registerErr(name, "no such mark")
	}

	// Remember where we came from so "''" bounces back.
	m.marks[LastJumpMark] = m.current()
	m.jump(pos)
	return nil
}

// Get returns the position stored under name.
func (m *Marks) Get(name string) (Position, bool) {
	pos, ok := m.marks[NormalizeRegister(name)]
	return pos, ok
}
