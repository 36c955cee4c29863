package service

import (
	"strings"
	"unicode"

	"github.com/ecofinds/internal/config"
)

// weakPasswordError 注册密码不满足策略，携带 i18n key 供接口层本地化
type weakPasswordError struct {
	key  string
	args []interface{}
}

func (e weakPasswordError) Error() string        { return e.key }
func (e weakPasswordError) Is(target error) bool { return target == ErrWeakPassword }
func (e weakPasswordError) Key() string          { return e.key }
func (e weakPasswordError) Args() []interface{}  { return e.args }

type passwordShape struct {
	length                      int
	upper, lower, digit, symbol bool
}

func shapeOf(password string) passwordShape {
	var shape passwordShape
	for _, r := range password {
		shape.length++
		switch {
		case unicode.IsUpper(r):
			shape.upper = true
		case unicode.IsLower(r):
			shape.lower = true
		case unicode.IsDigit(r):
			shape.digit = true
		default:
			shape.symbol = true
		}
	}
	return shape
}

var passwordCharacterRules = []struct {
	required func(config.PasswordPolicyConfig) bool
	present  func(passwordShape) bool
	key      string
}{
	{func(p config.PasswordPolicyConfig) bool { return p.RequireUpper }, func(s passwordShape) bool { return s.upper }, "error.password_require_upper"},
	{func(p config.PasswordPolicyConfig) bool { return p.RequireLower }, func(s passwordShape) bool { return s.lower }, "error.password_require_lower"},
	{func(p config.PasswordPolicyConfig) bool { return p.RequireNumber }, func(s passwordShape) bool { return s.digit }, "error.password_require_number"},
	{func(p config.PasswordPolicyConfig) bool { return p.RequireSpecial }, func(s passwordShape) bool { return s.symbol }, "error.password_require_special"},
}

// checkPassword 校验注册密码：长度、字符类别，且不得包含用户名或邮箱前缀
func checkPassword(policy config.PasswordPolicyConfig, password, username, email string) error {
	shape := shapeOf(password)
	if policy.MinLength > 0 && shape.length < policy.MinLength {
		return weakPasswordError{key: "error.password_min_length", args: []interface{}{policy.MinLength}}
	}
	for _, rule := range passwordCharacterRules {
		if rule.required(policy) && !rule.present(shape) {
			return weakPasswordError{key: rule.key}
		}
	}

	lowered := strings.ToLower(password)
	local, _, _ := strings.Cut(email, "@")
	for _, account := range []string{username, local} {
		// 过短的账号名容易误伤
		account = strings.ToLower(strings.TrimSpace(account))
		if len(account) >= 4 && strings.Contains(lowered, account) {
			return weakPasswordError{key: "error.password_contains_account"}
		}
	}
	return nil
}
