package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"ete-kpi/pkg/response"
)

// mustParamID reads a positive integer path parameter. It writes a 400
// response and returns false when the parameter is missing or malformed.
func mustParamID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
