// GikiZero - Carbon Footprint Tracking
// Copyright 2026 Rawad Hossain
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rawadhossain/GikiZero

package validation

import (
	"strings"
	"testing"
)

type signupLike struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Name     *string `json:"name,omitempty" validate:"omitnil,min=1"`
}

type scoreLike struct {
	Score  float64 `json:"score" validate:"gte=0"`
	Impact string  `json:"impactCategory" validate:"required,oneof=Low Medium High"`
}

func strPtr(s string) *string { return &s }

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      interface{}
		wantFields []string
	}{
		{"valid without name", &signupLike{Email: "a@b.co", Password: "12345678"}, nil},
		{"valid with name", &signupLike{Email: "a@b.co", Password: "12345678", Name: strPtr("Ada")}, nil},
		{"short password", &signupLike{Email: "a@b.co", Password: "1234567"}, []string{"password"}},
		{"bad email", &signupLike{Email: "nope", Password: "12345678"}, []string{"email"}},
		{"empty name", &signupLike{Email: "a@b.co", Password: "12345678", Name: strPtr("")}, []string{"name"}},
		{"everything wrong", &signupLike{Email: "", Password: ""}, []string{"email", "password"}},
		{"negative score", &scoreLike{Score: -1, Impact: "Low"}, []string{"score"}},
		{"unknown impact", &scoreLike{Score: 1, Impact: "Extreme"}, []string{"impactCategory"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verr := ValidateStruct(tt.input)
			if len(tt.wantFields) == 0 {
				if verr != nil {
					t.Fatalf("unexpected error: %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatalf("expected errors on %v", tt.wantFields)
			}
			got := verr.FieldErrors()
			if len(got) != len(tt.wantFields) {
				t.Errorf("FieldErrors() = %v, want fields %v", got, tt.wantFields)
			}
			for _, f := range tt.wantFields {
				if len(got[f]) == 0 {
					t.Errorf("expected a message for %q, got %v", f, got)
				}
			}
		})
	}
}

func TestTranslateMessages(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct(&signupLike{Email: "a@b.co", Password: "short"})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	msgs := verr.FieldErrors()["password"]
	if len(msgs) != 1 || msgs[0] != "password must be at least 8 characters" {
		t.Errorf("password messages = %v", msgs)
	}
	if !strings.Contains(verr.Error(), "password") {
		t.Errorf("Error() = %q", verr.Error())
	}

	verr = ValidateStruct(&scoreLike{Score: 0, Impact: "Severe"})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if got := verr.Errors()[0].Error(); got != "impactCategory must be one of: Low Medium High" {
		t.Errorf("oneof message = %q", got)
	}
}
