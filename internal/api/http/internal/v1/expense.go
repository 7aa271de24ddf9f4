package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/domain"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/service"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

func (h *Handler) initExpensesRoutes(api *gin.RouterGroup) {
	expenses := api.Group("/expenses")

	expenses.POST("", h.createExpense)
	expenses.GET("", h.listExpenses)
	expenses.PUT("/:id", h.updateExpense)
	expenses.DELETE("/:id", h.deleteExpense)
}

type expenseInput struct {
	Date     string  `json:"date" binding:"required,datetime=2006-01-02"`
	Category string  `json:"category" binding:"required,max=64"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Note     string  `json:"note" binding:"max=500"`
}

type expenseResponse struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note,omitempty"`
}

func newExpenseResponse(expense *domain.Expense) expenseResponse {
	return expenseResponse{
		ID:       expense.ID,
		Date:     expense.SpentAt.Format(dateLayout),
		Category: expense.Category,
		Amount:   expense.Amount,
		Note:     expense.Note,
	}
}

func (i *expenseInput) toServiceInput() (service.ExpenseInput, error) {
	spentAt, err := time.Parse(dateLayout, i.Date)
	if err != nil {
		return service.ExpenseInput{}, err
	}

	return service.ExpenseInput{
		SpentAt:  spentAt,
		Category: i.Category,
		Amount:   i.Amount,
		Note:     i.Note,
	}, nil
}

// @Summary Add expense
// @Tags Expenses
// @Accept  json
// @Produce  json
// @Param input body expenseInput true "expense"
// @Success 200 {object} expenseResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Security UserAuth
// @Router /expenses [post]
func (h *Handler) createExpense(c *gin.Context) {
	userID, err := h.getUserID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var input expenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	serviceInput, err := input.toServiceInput()
	if err != nil {
		validationErrorResponse(c, err)
		return
	}

	expense, err := h.services.Expenses.Create(c.Request.Context(), userID, serviceInput)
	if err != nil {
		logger.Error("create expense failed", zap.Error(err))
		internalErrorResponse(c)
		return
	}

	c.JSON(http.StatusOK, newExpenseResponse(expense))
}

// @Summary List expenses
// @Tags Expenses
// @Produce  json
// @Param category query string false "category filter"
// @Param start_date query string false "inclusive lower bound, YYYY-MM-DD"
// @Param end_date query string false "inclusive upper bound, YYYY-MM-DD"
// @Success 200 {array} expenseResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Security UserAuth
// @Router /expenses [get]
func (h *Handler) listExpenses(c *gin.Context) {
	userID, err := h.getUserID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	filters := domain.ExpenseFilters{
		Category: c.Query("category"),
	}

	if raw := c.Query("start_date"); raw != "" {
		if filters.StartDate, err = time.Parse(dateLayout, raw); err != nil {
			validationErrorResponse(c, err)
			return
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if filters.EndDate, err = time.Parse(dateLayout, raw); err != nil {
			validationErrorResponse(c, err)
			return
		}
	}

	expenses, err := h.services.Expenses.List(c.Request.Context(), userID, filters)
	if err != nil {
		logger.Error("list expenses failed", zap.Error(err))
		internalErrorResponse(c)
		return
	}

	response := make([]expenseResponse, len(expenses))
	for i := range expenses {
		response[i] = newExpenseResponse(&expenses[i])
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Update expense
// @Tags Expenses
// @Accept  json
// @Produce  json
// @Param id path int true "expense id"
// @Param input body expenseInput true "expense"
// @Success 200 {object} expenseResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401
// @Security UserAuth
// @Router /expenses/{id} [put]
func (h *Handler) updateExpense(c *gin.Context) {
	userID, err := h.getUserID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorResponse(c, http.StatusBadRequest, ExpenseNotFoundCode)
		return
	}

	var input expenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	serviceInput, err := input.toServiceInput()
	if err != nil {
		validationErrorResponse(c, err)
		return
	}

	expense, err := h.services.Expenses.Update(c.Request.Context(), userID, id, serviceInput)
	if err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			errorResponse(c, http.StatusNotFound, ExpenseNotFoundCode)
			return
		}
		logger.Error("update expense failed", zap.Error(err))
		internalErrorResponse(c)
		return
	}

	c.JSON(http.StatusOK, newExpenseResponse(expense))
}

// @Summary Delete expense
// @Tags Expenses
// @Produce  json
// @Param id path int true "expense id"
// @Success 200
// @Failure 400 {object} ErrorStruct
// @Failure 401
// @Security UserAuth
// @Router /expenses/{id} [delete]
func (h *Handler) deleteExpense(c *gin.Context) {
	userID, err := h.getUserID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorResponse(c, http.StatusBadRequest, ExpenseNotFoundCode)
		return
	}

	if err := h.services.Expenses.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			errorResponse(c, http.StatusNotFound, ExpenseNotFoundCode)
			return
		}
		logger.Error("delete expense failed", zap.Error(err))
		internalErrorResponse(c)
		return
	}

	c.Status(http.StatusOK)
}
