package profile

import (
	"slices"
	"testing"
)

func TestMake_AppliesOptions(t *testing.T) {
	c := Make(WithMode("cpu"), WithPath("/tmp/p"), WithQuiet(true))

	if c.Mode() != "cpu" || c.Path() != "/tmp/p" || !c.quiet {
		t.Errorf("unexpected config %+v", c)
	}

	if c = WithMode("")(c); c.Mode() != "" || c.Path() != "/tmp/p" {
		t.Errorf("expected mode cleared and path kept, got %+v", c)
	}
}

func TestStart_EmptyModeIsNoop(t *testing.T) {
	s := Make(WithPath(t.TempDir())).Start()

	if _, ok := s.(ignore); !ok {
		t.Errorf("expected no-op stopper, got %T", s)
	}

	s.Stop()
	s.Stop()
}

func TestStart_UnknownModeIsNoop(t *testing.T) {
	s := Make(WithMode("nonsense"), WithPath(t.TempDir())).Start()

	if _, ok := s.(ignore); !ok {
		t.Errorf("expected no-op stopper, got %T", s)
	}

	s.Stop()
}

func TestModes_MatchesBuild(t *testing.T) {
	modes := Modes()

	if Enabled != (len(modes) > 0) {
		t.Errorf("Enabled=%v but %d modes", Enabled, len(modes))
	}

	if !slices.IsSorted(modes) {
		t.Errorf("expected sorted modes, got %v", modes)
	}
}
