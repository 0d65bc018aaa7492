package handler

import "github.com/gin-gonic/gin"

// Every endpoint answers with the same envelope:
// {"status": bool, "statusCode": int, "message": string, "data": {}}.
func respondOK(c *gin.Context, code int, message string, data interface{}) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(code, gin.H{
		"status":     true,
		"statusCode": code,
		"message":    message,
		"data":       data,
	})
}

func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"status":     false,
		"statusCode": code,
		"message":    message,
		"data":       gin.H{},
	})
}
