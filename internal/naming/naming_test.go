package naming

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnake(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		label string
		want  string
	}{
		{"space separated", "IP Geolocation", "ip_geolocation"},
		{"kebab case", "ip-geolocation", "ip_geolocation"},
		{"camel case", "ipGeolocation", "ip_geolocation"},
		{"already snake", "ip_geolocation", "ip_geolocation"},
		{"single word", "Website", "website"},
		{"digits stay attached", "CVE Search", "cve_search"},
		{"uppercase input", "WEBSITE", "website"},
		{"trailing space", "website ", "website"},
		{"mixed separators", "To IP-Address", "to_ip_address"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Snake(tc.label))
		})
	}
}

func TestSnake_EquivalentForms(t *testing.T) {
	t.Parallel()

	// All spellings of one identity must normalize identically, since Snake
	// output is the comparison key for registry and transform lookups.
	forms := []string{"IP Geolocation", "ip geolocation", "ip-geolocation", "ipGeolocation", "ip_geolocation"}
	for _, form := range forms {
		require.Equal(t, "ip_geolocation", Snake(form), "form %q", form)
	}
}

func TestCamel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		label string
		want  string
	}{
		{"ip geolocation", "ipGeolocation"},
		{"to_website", "toWebsite"},
		{"website", "website"},
		{"", ""},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, Camel(tc.label), "label %q", tc.label)
	}
}
