package api

import "github.com/gin-gonic/gin"

// NewRouter builds the route table. openListing controls whether
// GET /transactions is reachable without a token (policy choice per
// deployment); every other transaction route sits behind the strict
// auth middleware.
func NewRouter(h *Handler, openListing bool) *gin.Engine {
	RegisterValidations()

	r := gin.Default()
	r.GET("/healthz", h.Health)

	authGroup := r.Group("/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)

	me := r.Group("/me", h.AuthMiddleware())
	me.GET("", h.Me)
	me.GET("/transactions", h.GetMyTransactions)

	tx := r.Group("/transactions")
	if openListing {
		tx.GET("", h.OptionalAuthMiddleware(), h.GetTransactions)
	} else {
		tx.GET("", h.AuthMiddleware(), h.GetTransactions)
	}

	protected := tx.Group("", h.AuthMiddleware())
	protected.POST("", h.CreateTransaction)
	protected.GET("/:id", h.GetTransaction)
	protected.PUT("/:id", h.UpdateTransaction)
	protected.DELETE("/:id", h.DeleteTransaction)

	return r
}
