package lint

import "testing"

func TestLinkExtractor(t *testing.T) {
	source := []byte(`# Page

See the [install guide](install.md) and [upstream](https://example.com).

Reference style [too][ref].

[ref]: ../guides/advanced.md
`)

	destinations, err := newLinkExtractor().extract(source)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	want := map[string]bool{
		"install.md":             false,
		"https://example.com":    false,
		"../guides/advanced.md":  false,
	}
	for _, destination := range destinations {
		if _, ok := want[destination]; ok {
			want[destination] = true
		}
	}
	for destination, seen := range want {
		if !seen {
			t.Fatalf("expected destination %q in %#v", destination, destinations)
		}
	}
}

func TestRelativeDocTarget(t *testing.T) {
	cases := []struct {
		destination string
		want        string
	}{
		{destination: "install.md", want: "install.md"},
		{destination: "../guides/advanced.md", want: "../guides/advanced.md"},
		{destination: "install.md#setup", want: "install.md"},
		{destination: "install.md?highlight=x", want: "install.md"},
		{destination: "#section", want: ""},
		{destination: "https://example.com/page.md", want: ""},
		{destination: "//cdn.example.com/page.md", want: ""},
		{destination: "mailto:docs@example.com", want: ""},
		{destination: "tel:+15551234567", want: ""},
		{destination: "image.png", want: ""},
		{destination: "", want: ""},
		{destination: "   ", want: ""},
	}

	for _, tc := range cases {
		if got := relativeDocTarget(tc.destination); got != tc.want {
			t.Fatalf("relativeDocTarget(%q) = %q, want %q", tc.destination, got, tc.want)
		}
	}
}
