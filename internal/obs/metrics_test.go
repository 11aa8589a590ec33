package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                                       "/",
		"/metrics":                               "/metrics",
		"/v1/auth/login":                         "/v1/auth/login",
		"/v1/providers/01HX2":                    "/v1/providers/:id",
		"/v1/clients/01HX2":                      "/v1/clients/:id",
		"/v1/clients/01HX2/partners":             "/v1/clients/:id/partners",
		"/v1/clients/01HX2/extra":                "/v1/clients/01HX2/extra",
		"/v1/contracts/01HX2":                    "/v1/contracts/:id",
		"/v1/properties/01HX2":                   "/v1/properties/:id",
		"/v1/properties/01HX2/units":             "/v1/properties/:id/units",
		"/v1/properties/01HX2/registry-records":  "/v1/properties/:id/registry-records",
		"/v1/properties/01HX2/utility-accounts":  "/v1/properties/:id/utility-accounts",
		"/v1/properties/01HX2/iptu/allocation":   "/v1/properties/:id/iptu/allocation",
		"/v1/properties/01HX2/iptu":              "/v1/properties/01HX2/iptu",
		"/v1/properties?client_id=01HX2":         "/v1/properties",
		"/v1/clients":                            "/v1/clients",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
