package controllers

import (
	"staydesk/response"
	"staydesk/validator"

	"github.com/gin-gonic/gin"
)

// bindJSON bind body theo tag binding, trả lời 400 nếu lỗi
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, validator.Message(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.BadRequest(c, validator.Message(err))
		return false
	}
	return true
}
