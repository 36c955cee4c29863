package service

import (
	"errors"
	"testing"

	"github.com/ecofinds/internal/config"
)

func TestCheckPassword(t *testing.T) {
	strict := config.PasswordPolicyConfig{MinLength: 8, RequireUpper: true, RequireNumber: true, RequireSpecial: true}

	cases := []struct {
		name     string
		policy   config.PasswordPolicyConfig
		password string
		username string
		email    string
		wantKey  string
	}{
		{name: "no policy", password: "x", username: "kim", email: "kim@example.com"},
		{name: "too short", policy: strict, password: "Ab1!", wantKey: "error.password_min_length"},
		{name: "runes counted", policy: config.PasswordPolicyConfig{MinLength: 4}, password: "密码密码"},
		{name: "missing upper", policy: strict, password: "lowercase1!", wantKey: "error.password_require_upper"},
		{name: "missing number", policy: strict, password: "Uppercase!!", wantKey: "error.password_require_number"},
		{name: "missing special", policy: strict, password: "Uppercase11", wantKey: "error.password_require_special"},
		{name: "strong", policy: strict, password: "Green-Shelf9", username: "maria", email: "maria@example.com"},
		{name: "contains username", password: "Ilovethrift99", username: "Thrift", email: "t@example.com", wantKey: "error.password_contains_account"},
		{name: "contains email local part", password: "xx-ecoshop-xx", username: "someone", email: "ecoshop@example.com", wantKey: "error.password_contains_account"},
		{name: "short username ignored", password: "bobcat-2024", username: "bob", email: "bob@example.com"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkPassword(tc.policy, tc.password, tc.username, tc.email)
			if tc.wantKey == "" {
				if err != nil {
					t.Fatalf("expected password accepted, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("expected ErrWeakPassword, got %v", err)
			}
			var weak weakPasswordError
			if !errors.As(err, &weak) || weak.Key() != tc.wantKey {
				t.Fatalf("expected key %s, got %v", tc.wantKey, err)
			}
		})
	}
}
