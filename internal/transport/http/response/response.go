package response

import "github.com/gin-gonic/gin"

// OK {"success":true, ...payload}
func OK(payload gin.H) gin.H {
	out := gin.H{"success": true}
	for k, v := range payload {
		out[k] = v
	}
	return out
}

// Fail {"success":false,"error":...,"message":...}
func Fail(errLabel, message string) gin.H {
	return gin.H{"success": false, "error": errLabel, "message": message}
}
