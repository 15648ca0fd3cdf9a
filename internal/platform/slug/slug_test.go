package slug

import "testing"

func TestMakeFoldsCaseAndPunctuation(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Weekly Retro #3": "weekly-retro-3",
		"Alice.B":         "alice-b",
		"  ":              "untitled",
	}
	for input, want := range cases {
		if got := Make(input); got != want {
			t.Fatalf("Make(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestKeySeparatesIdentifiersWithTheSameSlug(t *testing.T) {
	t.Parallel()
	a, b := Key("Alice.B"), Key("alice-b")
	if a == b {
		t.Fatalf("expected distinct keys, both are %q", a)
	}
	if Key("Alice.B") != a {
		t.Fatalf("expected Key to be stable")
	}
	if len(a) != len("alice-b-")+16 || a[:8] != "alice-b-" {
		t.Fatalf("unexpected key shape %q", a)
	}
}
