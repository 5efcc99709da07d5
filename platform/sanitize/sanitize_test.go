package sanitize

import "testing"

func TestStripHTML(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<b>Entretien</b> annuel", "Entretien annuel"},
		{"&lt;script&gt;alert(1)&lt;/script&gt;ok", "alert(1)ok"},
		{"  plain note  ", "plain note"},
		{"prix &amp; d&#39;entretien", "prix & d'entretien"},
	}
	for _, c := range cases {
		if got := StripHTML(c.in); got != c.want {
			t.Fatalf("StripHTML(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTextPtr(t *testing.T) {
	if TextPtr(nil) != nil {
		t.Fatal("nil must stay nil")
	}
	in := "<i>note</i>"
	if got := TextPtr(&in); *got != "note" {
		t.Fatalf("expected note, got %q", *got)
	}
}
