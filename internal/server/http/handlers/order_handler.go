package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/voltride/paygate/internal/domain/errors"
	"github.com/voltride/paygate/internal/domain/model"
	"github.com/voltride/paygate/internal/server/http/dto"
	"github.com/voltride/paygate/internal/usecase"
)

// OrderHandler manages order intake endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), usecase.CreateOrderInput{
		Amount:      req.Amount,
		ProductInfo: req.ProductInfo,
		FirstName:   req.FirstName,
		Email:       req.Email,
		Phone:       req.Phone,
		UDF:         [5]string{req.UDF1, req.UDF2, req.UDF3, req.UDF4, req.UDF5},
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "amount must be a positive number"})
		case errors.Is(err, domainErrors.ErrMissingField):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domainErrors.ErrDuplicateOrder):
			c.JSON(http.StatusConflict, gin.H{"error": "order already exists"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order, nil))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, txns, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrOrderNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order, txns))
}

func toOrderResponse(order *model.Order, txns []model.Transaction) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:            order.ID,
		Amount:        order.Amount,
		ProductInfo:   order.ProductInfo,
		FirstName:     order.FirstName,
		Email:         order.Email,
		Phone:         order.Phone,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		CreatedAt:     order.CreatedAt,
	}
	for _, t := range txns {
		resp.Transactions = append(resp.Transactions, dto.TransactionResponse{
			PaymentID: t.PaymentID,
			Amount:    t.Amount,
			Status:    string(t.Status),
			CreatedAt: t.CreatedAt,
		})
	}
	return resp
}
