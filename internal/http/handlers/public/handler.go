package public

import "github.com/commerce-next/internal/provider"

// Handler 用户侧 API 处理器入口
// 说明：买家与卖家共用该处理器，权限差异由路由层控制。
type Handler struct {
	*provider.Container
}

// New 创建用户侧处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
