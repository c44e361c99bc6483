package volume

import "testing"

func stackObjects(s *Stack) []ObjectID {
	var ids []ObjectID
	for i := 0; i < s.Len(); i++ {
		ids = append(ids, s.Entry(i).Object)
	}
	return ids
}

func TestStack_EnterExit(t *testing.T) {
	s := NewStack(ShaderNone)

	s.EnterExit(Crossing{Shader: 1, Object: 10, HasVolume: true})
	s.EnterExit(Crossing{Shader: 2, Object: 20, HasVolume: true})
	s.EnterExit(Crossing{Shader: 1, Object: 10, HasVolume: true, Backfacing: true})

	ids := stackObjects(s)
	if len(ids) != 1 || ids[0] != 20 {
		t.Fatalf("Expected stack [20], got %v", ids)
	}
	if s.Entry(0).Shader != 2 {
		t.Errorf("Expected shader 2, got %d", s.Entry(0).Shader)
	}
	if s.Entry(1).Shader != ShaderNone {
		t.Error("Active entries should be followed by the terminator")
	}
}

func TestStack_Background(t *testing.T) {
	s := NewStack(3)
	if s.Len() != 1 || s.Entry(0).Object != ObjectNone || s.Entry(0).Shader != 3 {
		t.Fatalf("Expected world volume at the bottom, got %+v", s.Entry(0))
	}

	s.Init(ShaderNone)
	if s.Len() != 0 {
		t.Errorf("Expected empty stack without a world volume, got %d entries", s.Len())
	}
}

func TestStack_DuplicateEnterIsNoop(t *testing.T) {
	s := NewStack(ShaderNone)

	if !s.Enter(1, 10) {
		t.Fatal("First enter should succeed")
	}
	if s.Enter(5, 10) {
		t.Error("Entering the same object twice should be a no-op")
	}
	if s.Len() != 1 || s.Entry(0).Shader != 1 {
		t.Errorf("Stack changed by duplicate enter: %v", stackObjects(s))
	}
}

func TestStack_CapacityIsNoop(t *testing.T) {
	s := NewStack(ShaderNone)

	for i := 0; i < s.Capacity(); i++ {
		if !s.Enter(ShaderID(i), ObjectID(i)) {
			t.Fatalf("Enter %d failed before reaching capacity", i)
		}
	}
	if s.Capacity() != StackSize-1 {
		t.Errorf("Expected capacity %d, got %d", StackSize-1, s.Capacity())
	}

	if s.Enter(99, 99) {
		t.Error("Enter beyond capacity should be a no-op")
	}
	if s.Len() != s.Capacity() || s.Contains(99) {
		t.Errorf("Stack changed after overflow: len %d", s.Len())
	}
}

func TestStack_ExitUnknown(t *testing.T) {
	s := NewStack(ShaderNone)
	s.Enter(1, 10)

	if s.Exit(11) {
		t.Error("Exiting an object not on the stack should report false")
	}

	// crossings without a volume are ignored
	s.EnterExit(Crossing{Shader: 1, Object: 10, Backfacing: true})
	if !s.Contains(10) {
		t.Error("Non-volume crossing should not change the stack")
	}
}

func TestStack_ValueCopy(t *testing.T) {
	s := NewStack(ShaderNone)
	s.Enter(1, 10)

	shadow := *s
	shadow.Enter(2, 20)
	shadow.Exit(10)

	if !s.Contains(10) || s.Contains(20) {
		t.Errorf("Copy modified the original stack: %v", stackObjects(s))
	}
}

func TestStack_IsHeterogeneous(t *testing.T) {
	s := NewStack(ShaderNone)

	if s.IsHeterogeneous(&MockShader{heterogeneous: true}) {
		t.Error("Empty stack cannot be heterogeneous")
	}

	s.Enter(0, 1)
	if !s.IsHeterogeneous(&MockShader{heterogeneous: true}) {
		t.Error("Expected heterogeneous stack")
	}
	if s.IsHeterogeneous(&MockShader{}) {
		t.Error("Expected homogeneous stack")
	}
}
