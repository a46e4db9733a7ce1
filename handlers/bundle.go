package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Provider discovery
	SearchProvidersHandler gin.HandlerFunc

	// Operations
	HealthHandler gin.HandlerFunc
}
