package services

import (
	"strings"
	"testing"
)

func validPayload() *CapturePayload {
	return &CapturePayload{
		Phone:              "(555) 123-4567",
		FirstName:          "Jane",
		LastName:           "Doe",
		Zip:                "30301",
		CategorySlug:       "home-services",
		ServiceSlug:        "roof-repair",
		TCPAConsent:        true,
		ConsentText:        "I agree to be contacted.",
		ConsentTextVersion: "v1",
		Domain:             "atlantaroofpros.com",
		PageURL:            "https://atlantaroofpros.com/quote",
	}
}

func TestValidatePayload_AcceptsCompletePayload(t *testing.T) {
	if errs := ValidatePayload(validPayload()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidatePayload_NilPayload(t *testing.T) {
	errs := ValidatePayload(nil)
	if len(errs) != 1 || errs[0] != "payload is required" {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidatePayload_CollectsAllViolations(t *testing.T) {
	errs := ValidatePayload(&CapturePayload{})
	want := []string{
		"phone is required",
		"first_name is required",
		"last_name is required",
		"zip is required",
		"category_slug is required",
		"service_slug is required",
		"tcpa_consent must be true",
		"consent_text is required",
		"consent_text_version is required",
		"domain is required",
		"page_url is required",
	}
	if len(errs) != len(want) {
		t.Fatalf("expected %d errors, got %d: %v", len(want), len(errs), errs)
	}
	for i, msg := range want {
		if errs[i] != msg {
			t.Fatalf("error %d: expected %q, got %q", i, msg, errs[i])
		}
	}
}

func TestValidatePayload_PhoneDigitBounds(t *testing.T) {
	cases := []struct {
		phone string
		ok    bool
	}{
		{"555-123-456", false},      // 9 digits
		{"5551234567", true},        // 10 digits
		{"1-555-123-4567", true},    // 11 digits
		{"+1 555 123 45678", false}, // 12 digits
		{"(555) 123-4567", true},    // formatting stripped
	}
	for _, tc := range cases {
		p := validPayload()
		p.Phone = tc.phone
		errs := ValidatePayload(p)
		hasPhoneErr := false
		for _, e := range errs {
			if e == "phone must be 10-11 digits" {
				hasPhoneErr = true
			}
		}
		if tc.ok && hasPhoneErr {
			t.Fatalf("phone %q unexpectedly rejected", tc.phone)
		}
		if !tc.ok && !hasPhoneErr {
			t.Fatalf("phone %q unexpectedly accepted", tc.phone)
		}
	}
}

func TestValidatePayload_ZipFormat(t *testing.T) {
	for _, bad := range []string{"3030", "303011", "3030a", "30-301"} {
		p := validPayload()
		p.Zip = bad
		errs := ValidatePayload(p)
		found := false
		for _, e := range errs {
			if e == "zip must be 5 digits" {
				found = true
			}
		}
		if !found {
			t.Fatalf("zip %q should have been rejected: %v", bad, errs)
		}
	}
}

func TestValidatePayload_WhitespaceOnlyIsMissing(t *testing.T) {
	p := validPayload()
	p.FirstName = "   "
	errs := ValidatePayload(p)
	if len(errs) != 1 || !strings.Contains(errs[0], "first_name") {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := NormalizePhone("+1 (555) 123-4567"); got != "15551234567" {
		t.Fatalf("unexpected normalization: %q", got)
	}
	if got := NormalizePhone("no digits"); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
