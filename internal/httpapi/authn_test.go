package httpapi

import "testing"

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "case insensitive scheme", header: "bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "surrounding whitespace", header: "  Bearer abc.def.ghi  ", want: "abc.def.ghi"},
		{name: "empty header", header: "", wantErr: true},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", wantErr: true},
		{name: "scheme only", header: "Bearer ", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := extractBearerToken(tc.header)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.header)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIsPublicPath(t *testing.T) {
	public := []string{"/v1/auth/register", "/v1/auth/login", "/healthz", "/readyz", "/v1/info", "/metrics", "/"}
	for _, p := range public {
		if !isPublicPath(p) {
			t.Fatalf("expected %q to be public", p)
		}
	}
	private := []string{"/v1/clients", "/v1/properties/abc", "/v1/auth/me", "/v1/contracts"}
	for _, p := range private {
		if isPublicPath(p) {
			t.Fatalf("expected %q to require auth", p)
		}
	}
}
