package util

import "testing"

func TestMaskSecret(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"ab", "ab"},
		{"abc", "a...c"},
		{"abcde", "ab...de"},
		{"supersecretvalue", "supe...alue"},
	}
	for _, tc := range cases {
		if got := MaskSecret(tc.in); got != tc.want {
			t.Fatalf("MaskSecret(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMaskSensitiveQuery(t *testing.T) {
	t.Parallel()

	if got := MaskSensitiveQuery(""); got != "" {
		t.Fatalf("empty query: got %q", got)
	}
	if got := MaskSensitiveQuery("page=2&status=approved"); got != "page=2&status=approved" {
		t.Fatalf("benign query changed: %q", got)
	}
	masked := MaskSensitiveQuery("auth_token=verylongtokenvalue&page=1")
	if masked == "auth_token=verylongtokenvalue&page=1" {
		t.Fatalf("token not masked: %q", masked)
	}
	if want := "page=1"; masked[len(masked)-len(want):] != want {
		t.Fatalf("non-sensitive parameter altered: %q", masked)
	}
	if got := MaskSensitiveQuery("password=hunter2&q=iris"); got == "password=hunter2&q=iris" {
		t.Fatalf("password not masked: %q", got)
	}
}
