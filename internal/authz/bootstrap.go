package authz

import (
	"fmt"

	"github.com/ecofinds/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Policies []Policy
}

// BuiltinRoleSeeds 预置角色：审核员可查看全部商品、下架任意商品并查看审计与统计
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleModerator,
			Policies: []Policy{
				{Object: "/moderation/products", Action: "GET"},
				{Object: "/moderation/products/:id/deactivate", Action: "POST"},
				{Object: "/moderation/audit-logs", Action: "GET"},
				{Object: "/moderation/stats", Action: "GET"},
				{Object: "/moderation/stats/trends", Action: "GET"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略，可重复执行
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return errUnavailable
	}
	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}
		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
