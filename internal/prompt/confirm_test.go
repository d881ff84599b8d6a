package prompt

import (
	"bytes"
	"testing"
)

func TestConfirm_NonInteractive(t *testing.T) {
	c := Confirmer{
		In:            bytes.NewBufferString("y\n"),
		Out:           nil,
		IsInteractive: func() bool { return false },
	}
	ok, err := c.Confirm("Remove 3 settings?", false)
	if err == nil {
		t.Fatalf("expected error for non-interactive confirm, got ok=%v", ok)
	}
}

func TestConfirm_Force(t *testing.T) {
	c := Confirmer{
		In:            bytes.NewBufferString("n\n"),
		Out:           nil,
		IsInteractive: func() bool { return false },
	}
	ok, err := c.Confirm("Remove 3 settings?", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true for forced confirm")
	}
}

func TestConfirm_Interactive(t *testing.T) {
	t.Run("yes", func(t *testing.T) {
		c := Confirmer{
			In:            bytes.NewBufferString("y\n"),
			Out:           nil,
			IsInteractive: func() bool { return true },
		}
		ok, err := c.Confirm("Remove 3 settings?", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatalf("expected ok=true")
		}
	})

	t.Run("no", func(t *testing.T) {
		c := Confirmer{
			In:            bytes.NewBufferString("n\n"),
			Out:           nil,
			IsInteractive: func() bool { return true },
		}
		ok, err := c.Confirm("Remove 3 settings?", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Fatalf("expected ok=false")
		}
	})

	t.Run("prompt_written", func(t *testing.T) {
		out := &bytes.Buffer{}
		c := Confirmer{
			In:            bytes.NewBufferString("y\n"),
			Out:           out,
			IsInteractive: func() bool { return true },
		}
		if _, err := c.Confirm("Remove 3 settings?", false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.String() != "Remove 3 settings? (y/n): " {
			t.Fatalf("prompt = %q", out.String())
		}
	})
}
