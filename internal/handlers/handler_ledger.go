package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/expense_bot/internal/apperrors"
	"github.com/SscSPs/expense_bot/internal/core/domain"
	portssvc "github.com/SscSPs/expense_bot/internal/core/ports/services"
	"github.com/SscSPs/expense_bot/internal/dto"
	"github.com/SscSPs/expense_bot/internal/middleware"
	"github.com/SscSPs/expense_bot/internal/utils/pagination"
)

// ledgerHandler serves read and clear operations over the caller's own ledger.
type ledgerHandler struct {
	sharedService  portssvc.SharedExpenseSvcFacade
	expenseService portssvc.ExpenseSvcFacade
}

func newLedgerHandler(ss portssvc.SharedExpenseSvcFacade, es portssvc.ExpenseSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		sharedService:  ss,
		expenseService: es,
	}
}

// registerLedgerRoutes registers routes scoped to the authenticated chat user.
func registerLedgerRoutes(rg *gin.RouterGroup, ss portssvc.SharedExpenseSvcFacade, es portssvc.ExpenseSvcFacade) {
	h := newLedgerHandler(ss, es)

	me := rg.Group("/me")
	{
		me.GET("/shared-expenses", h.listSharedExpenses)
		me.DELETE("/shared-expenses", h.clearSharedExpenses)
		me.GET("/balances", h.getBalances)
		me.GET("/expenses", h.listExpenses)
		me.GET("/expenses/monthly", h.getMonthlyTotals)
	}
}

// listSharedExpenses godoc
// @Summary List shared expenses
// @Description Returns the shared ledger entries recorded by the caller, newest first, one page at a time
// @Tags ledger
// @Produce  json
// @Param   limit query int false "Page size" minimum(1) maximum(200) default(50)
// @Param   nextToken query string false "Cursor returned by the previous page"
// @Success 200 {object} dto.ListSharedEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list shared expenses"
// @Security BearerAuth
// @Router /me/shared-expenses [get]
func (h *ledgerHandler) listSharedExpenses(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var query dto.ListSharedEntriesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	entries, err := h.sharedService.ListSharedHistory(c.Request.Context(), userID)
	if err != nil && !errors.Is(err, apperrors.ErrEmptyResult) {
		h.internalError(c, err, "Failed to list shared expenses")
		return
	}

	page, next, err := pagination.PageDescending(entries, sharedEntryCursor, query.NextToken, query.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid nextToken"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListSharedEntriesResponse(page, next))
}

// clearSharedExpenses godoc
// @Summary Clear shared expenses
// @Description Deletes every shared ledger entry recorded by the caller
// @Tags ledger
// @Produce  json
// @Success 200 {object} dto.ClearSharedEntriesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to clear shared expenses"
// @Security BearerAuth
// @Router /me/shared-expenses [delete]
func (h *ledgerHandler) clearSharedExpenses(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	removed, err := h.sharedService.ClearSharedExpenses(c.Request.Context(), userID)
	if err != nil {
		h.internalError(c, err, "Failed to clear shared expenses")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Shared expenses cleared via API", slog.Int64("removed", removed))
	c.JSON(http.StatusOK, dto.ClearSharedEntriesResponse{Removed: removed})
}

// getBalances godoc
// @Summary Get net balances
// @Description Nets the caller's shared entries into one signed balance per person
// @Tags ledger
// @Produce  json
// @Success 200 {object} dto.BalancesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to calculate balances"
// @Security BearerAuth
// @Router /me/balances [get]
func (h *ledgerHandler) getBalances(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	net, err := h.sharedService.CalculateBalances(c.Request.Context(), userID)
	if errors.Is(err, apperrors.ErrEmptyResult) {
		c.JSON(http.StatusOK, dto.BalancesResponse{Balances: []dto.BalanceResponse{}, Message: "No balances to show."})
		return
	}
	if err != nil {
		h.internalError(c, err, "Failed to calculate balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalancesResponse(net))
}

// listExpenses godoc
// @Summary List personal expenses
// @Description Returns the caller's personal expenses of the last N days, oldest first
// @Tags expenses
// @Produce  json
// @Param   days query int false "Look-back window in days" minimum(1) maximum(366) default(7)
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} map[string]string "Invalid days"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list expenses"
// @Security BearerAuth
// @Router /me/expenses [get]
func (h *ledgerHandler) listExpenses(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var query dto.ListExpensesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	expenses, err := h.expenseService.ListRecentExpenses(c.Request.Context(), userID, query.Days)
	switch {
	case errors.Is(err, apperrors.ErrEmptyResult):
		expenses = []domain.PersonalExpense{}
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.internalError(c, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExpensesResponse(query.Days, expenses))
}

// getMonthlyTotals godoc
// @Summary Get this month's totals
// @Description Returns the caller's personal expense totals per category since the first of the month (UTC)
// @Tags expenses
// @Produce  json
// @Success 200 {object} dto.MonthlyTotalsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to summarize expenses"
// @Security BearerAuth
// @Router /me/expenses/monthly [get]
func (h *ledgerHandler) getMonthlyTotals(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	totals, err := h.expenseService.MonthlyCategoryTotals(c.Request.Context(), userID)
	if err != nil && !errors.Is(err, apperrors.ErrEmptyResult) {
		h.internalError(c, err, "Failed to summarize expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthlyTotalsResponse(totals))
}

// sharedEntryCursor keys entries by (created_at, seq). Seq is zero-padded so
// the cursor's string comparison follows numeric order.
func sharedEntryCursor(e domain.SharedLedgerEntry) pagination.Cursor {
	return pagination.Cursor{CreatedAt: e.CreatedAt, ID: fmt.Sprintf("%020d", e.Seq)}
}

func (h *ledgerHandler) userID(c *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func (h *ledgerHandler) internalError(c *gin.Context, err error, msg string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Error(msg, slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
