package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestScriptedReplaysInOrder(t *testing.T) {
	s := &Scripted{Answers: []bool{true, false}, Inputs: []string{"500"}}

	if ok, err := s.Confirm("first", ""); !ok || err != nil {
		t.Fatalf("Confirm #1 = %v, %v", ok, err)
	}
	if ok, err := s.Confirm("second", ""); ok || err != nil {
		t.Fatalf("Confirm #2 = %v, %v", ok, err)
	}
	if _, err := s.Confirm("third", ""); !errors.Is(err, ErrCanceled) {
		t.Fatalf("Confirm past the script = %v, want ErrCanceled", err)
	}
	if v, err := s.Input("budget", "100"); v != "500" || err != nil {
		t.Fatalf("Input = %q, %v", v, err)
	}
	if got := strings.Join(s.Asked, ","); got != "first,second,third,budget" {
		t.Fatalf("Asked = %s", got)
	}
}

func TestAssumeYes(t *testing.T) {
	var a AssumeYes
	if ok, err := a.Confirm("x", "y"); !ok || err != nil {
		t.Fatalf("Confirm = %v, %v", ok, err)
	}
	if v, err := a.Input("x", "300"); v != "300" || err != nil {
		t.Fatalf("Input = %q, %v", v, err)
	}
	if _, err := a.Input("x", ""); !errors.Is(err, ErrCanceled) {
		t.Fatalf("Input without default = %v, want ErrCanceled", err)
	}
}

func TestConsoleRoutesBySeverity(t *testing.T) {
	var out, errOut bytes.Buffer
	c := &Console{Out: &out, Err: &errOut}

	c.Notify("Expense added", Success)
	c.Notify("amount is too large", Error)

	if !strings.Contains(out.String(), "Expense added") {
		t.Fatalf("stdout = %q", out.String())
	}
	if !strings.Contains(errOut.String(), "amount is too large") {
		t.Fatalf("stderr = %q", errOut.String())
	}
	if strings.Contains(out.String(), "too large") {
		t.Fatal("error written to stdout")
	}

	out.Reset()
	c.Quiet = true
	c.Notify("Expense added", Success)
	if out.Len() != 0 {
		t.Fatalf("quiet console wrote %q", out.String())
	}
}

func TestRecorderLast(t *testing.T) {
	var r Recorder
	if _, ok := r.Last(); ok {
		t.Fatal("Last on empty recorder reported ok")
	}
	r.Notify("a", Success)
	r.Notify("b", Error)
	n, ok := r.Last()
	if !ok || n.Msg != "b" || n.Severity != Error {
		t.Fatalf("Last = %+v, %v", n, ok)
	}
	r.Reset()
	if len(r.Notices) != 0 {
		t.Fatal("Reset kept notices")
	}
}
