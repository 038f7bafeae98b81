package public

import (
	"github.com/commerce-next/internal/http/response"
	"github.com/commerce-next/internal/models"
	"github.com/commerce-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	UserName  string `json:"user_name" binding:"required"`
	Telephone string `json:"telephone"`
	Role      string `json:"role"`
	Nickname  string `json:"nickname"`
	Gender    string `json:"gender"`
	Address   string `json:"address"`
	AgeBand   string `json:"age_band"`
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	user, err := h.UserAuthService.Register(service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		UserName:  req.UserName,
		Telephone: req.Telephone,
		Role:      req.Role,
		Nickname:  req.Nickname,
		Gender:    req.Gender,
		Address:   req.Address,
		AgeBand:   req.AgeBand,
	})
	if err != nil {
		respondUserAuthError(c, err)
		return
	}

	token, expiresAt, err := h.UserAuthService.GenerateUserJWT(user, h.Config.UserJWT.ExpireHours)
	if err != nil {
		respondError(c, response.CodeInternal, "登录凭证生成失败", err)
		return
	}

	response.Success(c, gin.H{
		"user":       buildUserPayload(user),
		"token":      token,
		"expires_at": expiresAt,
	})
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		respondUserAuthError(c, err)
		return
	}

	response.Success(c, gin.H{
		"user":       buildUserPayload(user),
		"token":      token,
		"expires_at": expiresAt,
	})
}

// GetMyProfile 获取当前用户资料
func (h *Handler) GetMyProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	user, info, err := h.UserAuthService.GetProfile(uid)
	if err != nil {
		respondUserAuthError(c, err)
		return
	}

	response.Success(c, gin.H{
		"user": buildUserPayload(user),
		"info": info,
	})
}

func buildUserPayload(user *models.User) gin.H {
	return gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"user_name": user.UserName,
		"telephone": user.Telephone,
		"role":      user.Role,
	}
}
