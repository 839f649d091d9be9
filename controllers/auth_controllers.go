package controllers

import (
	"staydesk/dto"
	"staydesk/response"
	"staydesk/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(ct *services.Container) AuthController {
	return AuthController{auth: ct.Auth}
}

// Login godoc
// @Summary Đăng nhập operator
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "credentials"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Router /v1/auth/login [post]
func (a AuthController) Login(c *gin.Context) {
	var input dto.LoginRequest
	if !bindJSON(c, &input) {
		return
	}
	token, expires, op, err := a.auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.LoginResponse{Token: token, ExpiresAt: expires, Role: op.Role})
}
