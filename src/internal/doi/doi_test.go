package doi

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"https://doi.org/10.1234/abc", "10.1234/abc"},
		{"http://dx.doi.org/10.1234/abc", "10.1234/abc"},
		{"HTTPS://DOI.ORG/10.1234/ABC", "10.1234/ABC"},
		{"doi:10.1000/xyz", "10.1000/xyz"},
		{"  10.1000/xyz ", "10.1000/xyz"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Fatalf("Normalize(%q)=%q want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeURL_RoundTrip(t *testing.T) {
	for _, d := range []string{"10.1000/xyz", "10.1234/abc.def-(2020)", "10.12345678/a/b/c"} {
		if got := Normalize(URL(d)); got != d {
			t.Fatalf("round trip %q -> %q", d, got)
		}
	}
	if URL("") != "" {
		t.Fatalf("URL of empty DOI should be empty")
	}
}

func TestFind(t *testing.T) {
	if got := Find(`<p>See doi 10.5555/12345678.</p>`); got != "10.5555/12345678" {
		t.Fatalf("Find: %q", got)
	}
	if got := Find("no identifiers here, only 10.12/short"); got != "" {
		t.Fatalf("Find should reject short registrant: %q", got)
	}
}
