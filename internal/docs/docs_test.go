package docs

import "testing"

func TestTopicsArePresent(t *testing.T) {
	topics := Topics()
	want := map[string]bool{"editor": false, "projects": false, "export": false}
	for _, topic := range topics {
		if _, ok := want[topic]; ok {
			want[topic] = true
		}
	}
	for topic, seen := range want {
		if !seen {
			t.Fatalf("topic %q missing from %v", topic, topics)
		}
	}
}

func TestGetIsCaseInsensitive(t *testing.T) {
	a, ok := Get("Editor")
	if !ok {
		t.Fatal("Get(Editor) failed")
	}
	b, _ := Get("editor")
	if a != b {
		t.Fatal("case-folded lookup returned different bodies")
	}
	if _, ok := Get("nope"); ok {
		t.Fatal("unknown topic returned ok")
	}
}
