package output

import (
	"bytes"
	"testing"

	"todos/internal/service"
)

func TestPrinter_Task(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Task(1, service.Task{Text: "Buy milk"})
	p.Task(12, service.Task{Text: "Ship it", Completed: true})

	want := "   1  [ ] Buy milk\n  12  [x] Ship it\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestPrinter_Section(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.SectionHeader(service.Travel, true)
	p.TaskWithLetter('t', 1, service.Task{Text: "Lisbon"})

	want := "------------\nTravel [current]\n------------\n    t1  [ ] Lisbon\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestNormalizeText(t *testing.T) {
	tests := map[string]string{
		"plain":       "plain",
		"two\nlines":  "two lines",
		"crlf\r\nend": "crlf  end",
		"   ":         "(untitled)",
		"":            "(untitled)",
	}
	for in, want := range tests {
		if got := NormalizeText(in); got != want {
			t.Errorf("NormalizeText(%q)=%q, want %q", in, got, want)
		}
	}
}
