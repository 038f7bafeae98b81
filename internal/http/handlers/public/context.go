package public

import (
	handlershared "github.com/commerce-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "user_id", "用户标识无效", "用户标识类型无效")
}
