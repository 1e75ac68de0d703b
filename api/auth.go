package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akarpov/finlog/db"
	"github.com/akarpov/finlog/models"
)

// callerKey is the gin context key under which the resolved caller is stored.
const callerKey = "caller"

// currentUser returns the caller resolved by the auth middleware, if any.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}

// Register creates a new account. Duplicate email is a 409; the stored
// password hash never appears in the response.
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.log.Error("hashing password", "err", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error"})
		return
	}

	user := models.User{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Email: req.Email,
	}
	if err := h.store.CreateUser(c.Request.Context(), user, hash); err != nil {
		if errors.Is(err, db.ErrEmailTaken) {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: "email already registered"})
			return
		}
		h.log.Error("creating user", "err", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Login verifies credentials and returns a signed token. Failures are
// reported with one generic message so callers cannot probe which emails
// are registered.
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	creds, err := h.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			h.log.Error("looking up user", "err", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error"})
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid credentials"})
		return
	}

	ok, err := h.hasher.Verify(req.Password, creds.PasswordHash)
	if err != nil || !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid credentials"})
		return
	}

	token, err := h.issuer.Issue(creds.User.ID)
	if err != nil {
		h.log.Error("issuing token", "err", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{Token: token})
}

// Me returns the caller's public fields.
func (h *Handler) Me(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthenticated"})
		return
	}
	c.JSON(http.StatusOK, caller)
}

// AuthMiddleware resolves the caller from the bearer token and aborts with
// 401 when no valid identity can be established. A token whose subject no
// longer resolves to a user (deleted after issuance) is unauthenticated,
// not an error.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if caller := h.resolveCaller(c); caller != nil {
			c.Set(callerKey, caller)
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthenticated"})
	}
}

// OptionalAuthMiddleware resolves the caller when possible but never aborts.
// Handlers behind it see an anonymous request when resolution fails.
func (h *Handler) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if caller := h.resolveCaller(c); caller != nil {
			c.Set(callerKey, caller)
		}
		c.Next()
	}
}

// resolveCaller verifies the request's bearer token and looks the subject up
// in storage. Nil means unauthenticated; callers must not treat it as an
// error.
func (h *Handler) resolveCaller(c *gin.Context) *models.User {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil
	}

	userID, err := h.issuer.Verify(token)
	if err != nil {
		return nil
	}

	user, err := h.store.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			h.log.Error("resolving caller", "err", err)
		}
		return nil
	}
	return user
}
