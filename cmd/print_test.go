package cmd

import (
	"bytes"
	"fmt"
	"testing"
)

type strItem string

func (s strItem) String() string { return string(s) }

func TestPrintItems(t *testing.T) {
	items := []fmt.Stringer{strItem("a\nb\n\n"), strItem("c\n")}
	buf := &bytes.Buffer{}
	if err := printItems(buf, items); err != nil {
		t.Fatal(err)
	}
	expect := "1   a\n    b\n\n2   c\n"
	if buf.String() != expect {
		t.Errorf("expected %q, got %q", expect, buf.String())
	}
}

func TestFmtItemWideIndex(t *testing.T) {
	got := fmtItem(12, "demo\nowner\n", []byte("    "))
	expect := "12  demo\n    owner\n"
	if got != expect {
		t.Errorf("expected %q, got %q", expect, got)
	}
}
