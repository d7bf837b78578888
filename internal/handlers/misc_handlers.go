package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIVersion is reported by the version endpoint.
const APIVersion = "0.1.0"

// Root confirms the API is running.
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "API is running"})
}

// HealthCheck reports service health.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "API is healthy"})
}

// GetVersion reports the API version.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "API version " + APIVersion})
}

// GetInfo reports basic information about the API.
func GetInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "This is a simple API for managing memberships and members.",
	})
}
