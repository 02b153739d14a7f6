package cmd

import (
	"testing"
	"time"

	"github.com/irysname/irysname/registry"
)

func TestRecordStringer(t *testing.T) {
	prevNow := nowFunc
	defer func() { nowFunc = prevNow }()
	nowFunc = func() time.Time { return time.UnixMilli(1699564800000).Add(3 * 24 * time.Hour) }

	cases := []struct {
		description string
		color       bool
		rec         registry.Record
		expect      string
	}{
		{"full record, no color",
			false,
			registry.Record{ID: "Qm...tx", Username: "demo", Owner: "0xabc", Timestamp: 1699564800000},
			"demo\nowner: 0xabc\nregistered 3 days ago\nQm...tx\n\n"},
		{"no timestamp or id",
			false,
			registry.Record{Username: "demo", Owner: "0xabc"},
			"demo\nowner: 0xabc\n\n"},
		{"colorized",
			true,
			registry.Record{Username: "demo", Owner: "0xabc"},
			"\u001b[32;1mdemo\u001b[0m\nowner: 0xabc\n\n"},
	}

	for _, c := range cases {
		setNoColor(!c.color)
		got := recordStringer(c.rec).String()
		if got != c.expect {
			t.Errorf("case %q: expected %q, got %q", c.description, c.expect, got)
		}
	}
	setNoColor(true)
}
