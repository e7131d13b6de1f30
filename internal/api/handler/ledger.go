// internal/api/handler/ledger.go
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bankist-ledger/internal/api/types"
	"bankist-ledger/internal/service"
	"bankist-ledger/internal/session"
	"bankist-ledger/internal/util" // For custom errors
)

// DefaultTimeout bounds the handling time of a single request.
const DefaultTimeout = 15 * time.Second

const defaultMovementLimit = 50

type ctxKey int

const (
	sessionKey ctxKey = iota
	tokenKey
)

// LedgerHandler handles HTTP requests for sessions and ledger operations.
type LedgerHandler struct {
	ledger   service.LedgerService
	sessions *session.Store
	logger   *slog.Logger
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledger service.LedgerService, sessions *session.Store, logger *slog.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledger:   ledger,
		sessions: sessions,
		logger:   logger,
	}
}

// Helper function to send JSON responses.
func (h *LedgerHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h *LedgerHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput), util.IsError(err, util.ErrInvalidAmount), util.IsError(err, util.ErrSelfTransfer):
		statusCode = http.StatusBadRequest
		message = rootMessage(err)
	case util.IsError(err, util.ErrAuthFailure), util.IsError(err, util.ErrNotLoggedIn):
		statusCode = http.StatusUnauthorized
		message = rootMessage(err)
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Account not found"
	case util.IsError(err, util.ErrInsufficientFunds):
		statusCode = http.StatusPaymentRequired // 402 Payment Required
		message = "Insufficient funds"
	case util.IsError(err, util.ErrLoanRejected):
		statusCode = http.StatusUnprocessableEntity
		message = "Loan rejected"
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, types.ErrorResponse{Error: message})
}

// rootMessage drops the operation prefixes added while wrapping.
func rootMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

// RequireSession resolves the bearer token to a logged-in session.
func (h *LedgerHandler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			h.respondWithError(w, util.ErrNotLoggedIn)
			return
		}
		sess, found := h.sessions.Get(token)
		if !found || sess.Username() == "" {
			h.respondWithError(w, util.ErrNotLoggedIn)
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey, sess)
		ctx = context.WithValue(ctx, tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(r *http.Request) *session.Session {
	return r.Context().Value(sessionKey).(*session.Session)
}

func tokenFrom(r *http.Request) string {
	return r.Context().Value(tokenKey).(string)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username"`
	PIN      int    `json:"pin"`
}

// Login authenticates and opens a session.
// POST /sessions
func (h *LedgerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	token, sess := h.sessions.Create()
	acc, err := sess.Login(r.Context(), req.Username, req.PIN)
	if err != nil {
		h.sessions.Delete(token)
		h.logger.Warn("Login failed", "username", req.Username)
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"token":    token,
		"username": acc.Username,
		"owner":    acc.Owner,
		"greeting": fmt.Sprintf("Welcome back, %s!", acc.FirstName()),
	})
}

// Logout ends the current session.
// DELETE /sessions/current
func (h *LedgerHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r).Logout()
	h.sessions.Delete(tokenFrom(r))
	w.WriteHeader(http.StatusNoContent)
}

// GetAccount returns the current account with its summary figures.
// GET /me
func (h *LedgerHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	acc, err := sess.Current(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	summary, err := sess.Summary(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"username":      acc.Username,
		"owner":         acc.Owner,
		"interest_rate": acc.InterestRate,
		"summary":       summary,
	})
}

// GetMovements lists the current account's movements in display order.
// GET /me/movements?limit=&offset=
func (h *LedgerHandler) GetMovements(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultMovementLimit
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	rows, err := sessionFrom(r).DisplayMovements(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, types.Paginate(rows, limit, offset))
}

// ToggleSort flips the movement display order.
// POST /me/sort
func (h *LedgerHandler) ToggleSort(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, map[string]bool{"sorted": sessionFrom(r).ToggleSort()})
}

// TransferRequest represents the request body for transfer.
type TransferRequest struct {
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// Transfer sends money from the current account.
// POST /me/transfers
func (h *LedgerHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	sess := sessionFrom(r)
	if err := sess.Transfer(r.Context(), req.To, req.Amount); err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithBalance(w, r, sess, "Transfer successful")
}

// LoanRequest represents the request body for a loan.
type LoanRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// RequestLoan applies for a loan on the current account.
// POST /me/loans
func (h *LedgerHandler) RequestLoan(w http.ResponseWriter, r *http.Request) {
	var req LoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	sess := sessionFrom(r)
	if err := sess.RequestLoan(r.Context(), req.Amount); err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithBalance(w, r, sess, "Loan granted")
}

func (h *LedgerHandler) respondWithBalance(w http.ResponseWriter, r *http.Request, sess *session.Session, message string) {
	summary, err := sess.Summary(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":     message,
		"new_balance": summary.Balance,
	})
}

// CloseRequest represents the request body for closing the current account.
type CloseRequest struct {
	Username string `json:"username"`
	PIN      int    `json:"pin"`
}

// CloseAccount deletes the current account and ends the session.
// POST /me/close
func (h *LedgerHandler) CloseAccount(w http.ResponseWriter, r *http.Request) {
	var req CloseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	if err := sessionFrom(r).CloseAccount(r.Context(), req.Username, req.PIN); err != nil {
		h.respondWithError(w, err)
		return
	}
	h.sessions.Delete(tokenFrom(r))
	h.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Account closed"})
}

// GetOverallBalance sums the movements of every account.
// GET /ledger/overall-balance
func (h *LedgerHandler) GetOverallBalance(w http.ResponseWriter, r *http.Request) {
	total, err := h.ledger.OverallBalance(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{"overall_balance": total})
}
