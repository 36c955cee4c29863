package moderation

import "github.com/ecofinds/internal/provider"

// Handler 审核接口处理器入口
// 说明：该处理器仅用于 moderator 角色的 API，访问控制由路由层的 casbin 中间件完成。
type Handler struct {
	*provider.Container
}

// New 创建审核处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
