package registry

import (
	"regexp"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestValidUsername(t *testing.T) {
	cases := []struct {
		in     string
		expect bool
	}{
		{"", false},
		{"ab", false},
		{"abc", true},
		{"alice_01", true},
		{"ALICE", true},
		{"___", true},
		{strings.Repeat("a", 20), true},
		{strings.Repeat("a", 21), false},
		{"has space", false},
		{"dash-name", false},
		{"dot.name", false},
		{"émile", false},
		{"名前です", false},
		{"abc\n", false},
	}

	for _, c := range cases {
		if got := ValidUsername(c.in); got != c.expect {
			t.Errorf("ValidUsername(%q): expected %t, got %t", c.in, c.expect, got)
		}
	}
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

func TestValidUsernameAcceptsCharset(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[A-Za-z0-9_]{3,20}`).Draw(t, "username")
		if !ValidUsername(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	})
}

func TestValidUsernameMatchesPattern(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		if got, expect := ValidUsername(s), usernamePattern.MatchString(s); got != expect {
			t.Fatalf("ValidUsername(%q) = %t, pattern says %t", s, got, expect)
		}
	})
}

func TestNormalize(t *testing.T) {
	if got := Normalize("Alice_01"); got != "alice_01" {
		t.Errorf("expected alice_01, got %s", got)
	}
	if got := Normalize("0xABCDEF"); got != "0xabcdef" {
		t.Errorf("expected 0xabcdef, got %s", got)
	}
}

func TestRegistrationMessage(t *testing.T) {
	if got := RegistrationMessage("Alice_01"); got != "Register username: Alice_01" {
		t.Errorf("message mismatch: %q", got)
	}
}
