package volume

// ShaderID identifies a volume shader in the scene's shader library
type ShaderID int32

// ObjectID identifies a scene object that encloses a volume
type ObjectID int32

const (
	// ShaderNone marks the end of the stack and the absence of a world volume
	ShaderNone ShaderID = -1
	// ObjectNone is the object id of the world (background) volume
	ObjectNone ObjectID = -1
)

// StackSize is the number of slots in a volume stack, including the
// terminating slot. At most StackSize-1 volumes can be active at once.
const StackSize = 16

// StackEntry is one enclosing volume
type StackEntry struct {
	Shader ShaderID
	Object ObjectID
}

// Crossing describes a path crossing the boundary of a scene object
type Crossing struct {
	Shader     ShaderID
	Object     ObjectID
	HasVolume  bool // the object's shader has a volume component
	Backfacing bool // the path leaves the object
}

// Stack is the ordered set of volumes enclosing a path vertex.
// Active entries are contiguous and always followed by a ShaderNone entry.
// Object ids are unique. A Stack is a value type: assigning it copies the
// whole stack, which is how shadow rays get a private copy.
type Stack struct {
	entries [StackSize]StackEntry
	n       int
}

// NewStack creates a stack seeded with the world volume, if any
func NewStack(background ShaderID) *Stack {
	s := &Stack{}
	s.Init(background)
	return s
}

// Init resets the stack to contain only the world volume.
// The camera is assumed to be outside every object.
func (s *Stack) Init(background ShaderID) {
	s.n = 0
	if background != ShaderNone {
		s.entries[0] = StackEntry{Shader: background, Object: ObjectNone}
		s.n = 1
	}
	s.entries[s.n] = StackEntry{Shader: ShaderNone, Object: ObjectNone}
}

// Len returns the number of active volumes
func (s *Stack) Len() int {
	return s.n
}

// Capacity returns the maximum number of active volumes
func (s *Stack) Capacity() int {
	return StackSize - 1
}

// Entry returns the i-th active volume, outermost entered first
func (s *Stack) Entry(i int) StackEntry {
	return s.entries[i]
}

// Contains reports whether the object is on the stack
func (s *Stack) Contains(object ObjectID) bool {
	return s.index(object) >= 0
}

func (s *Stack) index(object ObjectID) int {
	for i := 0; i < s.n; i++ {
		if s.entries[i].Object == object {
			return i
		}
	}
	return -1
}

// Enter adds a volume. It is a no-op, returning false, when the object is
// already on the stack or the stack is full; a volume beyond capacity is
// silently skipped.
func (s *Stack) Enter(shader ShaderID, object ObjectID) bool {
	if s.Contains(object) || s.n >= s.Capacity() {
		return false
	}

	s.entries[s.n] = StackEntry{Shader: shader, Object: object}
	s.n++
	s.entries[s.n] = StackEntry{Shader: ShaderNone, Object: ObjectNone}
	return true
}

// Exit removes a volume by object id, shifting later entries down so the
// stack stays contiguous. Returns false if the object was not on the stack.
func (s *Stack) Exit(object ObjectID) bool {
	i := s.index(object)
	if i < 0 {
		return false
	}

	copy(s.entries[i:s.n], s.entries[i+1:s.n+1])
	s.n--
	return true
}

// EnterExit updates the stack for a path crossing an object boundary:
// a front-face crossing enters the object, a back-face crossing leaves it.
// Objects without a volume are ignored.
func (s *Stack) EnterExit(c Crossing) {
	if !c.HasVolume {
		return
	}
	if c.Backfacing {
		s.Exit(c.Object)
	} else {
		s.Enter(c.Shader, c.Object)
	}
}

// IsHeterogeneous reports whether any active shader varies with position
func (s *Stack) IsHeterogeneous(shaders VolumeShader) bool {
	for i := 0; i < s.n; i++ {
		if shaders.HeterogeneousShader(s.entries[i].Shader) {
			return true
		}
	}
	return false
}
