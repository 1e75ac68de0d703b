// Package api wires HTTP handlers over the storage and auth layers.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akarpov/finlog/auth"
	"github.com/akarpov/finlog/db"
	"github.com/akarpov/finlog/models"
)

type Handler struct {
	store  Store
	issuer *auth.Issuer
	hasher *auth.PasswordHasher
	log    *slog.Logger
}

func NewHandler(store Store, issuer *auth.Issuer, hasher *auth.PasswordHasher, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{store: store, issuer: issuer, hasher: hasher, log: log}
}

// typeFilter parses the optional ?type= query parameter. An empty value
// means no filter; anything other than a known type name is rejected.
func typeFilter(c *gin.Context) (models.TransactionType, bool) {
	raw := c.Query("type")
	if raw == "" {
		return "", true
	}
	t := models.TransactionType(raw)
	return t, t.Valid()
}

// GetTransactions lists all transactions, filterable by type. Whether the
// route requires authentication is decided at router wiring per deployment.
func (h *Handler) GetTransactions(c *gin.Context) {
	t, ok := typeFilter(c)
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown transaction type"})
		return
	}

	transactions, err := h.store.ListTransactions(c.Request.Context(), db.TransactionFilter{Type: t})
	if err != nil {
		h.log.Error("listing transactions", "err", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, models.GetTransactionsResponse{Transactions: transactions, Total: len(transactions)})
}

// GetMyTransactions lists the caller's own transactions, filterable by type.
func (h *Handler) GetMyTransactions(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthenticated"})
		return
	}

	t, typeOK := typeFilter(c)
	if !typeOK {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown transaction type"})
		return
	}

	transactions, err := h.store.ListTransactions(c.Request.Context(), db.TransactionFilter{OwnerID: caller.ID, Type: t})
	if err != nil {
		h.log.Error("listing transactions", "err", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, models.GetTransactionsResponse{Transactions: transactions, Total: len(transactions)})
}

func (h *Handler) CreateTransaction(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req models.CreateTransaction
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	transaction := models.Transaction{
		ID:          uuid.NewString(),
		UserID:      caller.ID,
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        req.Type,
	}
	if err := h.store.CreateTransaction(c.Request.Context(), &transaction); err != nil {
		h.log.Error("creating transaction", "err", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// fetchOwned loads a transaction and applies the ownership gate. The order
// of results is fixed: missing record is 404 for everyone; an existing
// record owned by someone else is 403, never 404.
func (h *Handler) fetchOwned(c *gin.Context) (*models.Transaction, bool) {
	caller, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthenticated"})
		return nil, false
	}

	transaction, err := h.store.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "transaction not found"})
			return nil, false
		}
		h.log.Error("loading transaction", "err", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error"})
		return nil, false
	}

	if transaction.UserID != caller.ID {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "forbidden"})
		return nil, false
	}
	return transaction, true
}

func (h *Handler) GetTransaction(c *gin.Context) {
	transaction, ok := h.fetchOwned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, transaction)
}

func (h *Handler) UpdateTransaction(c *gin.Context) {
	transaction, ok := h.fetchOwned(c)
	if !ok {
		return
	}

	var req models.CreateTransaction
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	transaction.Name = req.Name
	transaction.Description = req.Description
	transaction.Amount = req.Amount
	transaction.Type = req.Type

	if err := h.store.UpdateTransaction(c.Request.Context(), transaction); err != nil {
		// The record can vanish between the ownership check and the write.
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "transaction not found"})
			return
		}
		h.log.Error("updating transaction", "err", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, transaction)
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	transaction, ok := h.fetchOwned(c)
	if !ok {
		return
	}

	if err := h.store.DeleteTransaction(c.Request.Context(), transaction.ID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "transaction not found"})
			return
		}
		h.log.Error("deleting transaction", "err", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Health reports process and database liveness.
func (h *Handler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "database unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
