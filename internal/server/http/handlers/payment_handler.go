package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/voltride/paygate/internal/domain/errors"
	"github.com/voltride/paygate/internal/domain/model"
	"github.com/voltride/paygate/internal/server/http/dto"
)

// PaymentHandler manages payment initiation and the gateway webhook.
type PaymentHandler struct {
	facade     PaymentFacade
	successURL string
	failureURL string
}

// NewPaymentHandler constructs PaymentHandler. The success/failure URLs are
// the storefront pages the webhook redirects the customer back to.
func NewPaymentHandler(facade PaymentFacade, successURL, failureURL string) *PaymentHandler {
	return &PaymentHandler{facade: facade, successURL: successURL, failureURL: failureURL}
}

// Initiate handles POST /api/payment/initiate.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req dto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	payment, err := h.facade.InitiatePayment(c.Request.Context(), req.OrderID, req.SuccessURL, req.FailureURL)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrOrderNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "amount must be a positive number"})
		case errors.Is(err, domainErrors.ErrAlreadySettled):
			c.JSON(http.StatusConflict, gin.H{"error": "order already settled"})
		case errors.Is(err, domainErrors.ErrMissingField):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.InitiatePaymentResponse{
		PaymentURL: payment.URL,
		Params:     payment.Params,
	})
}

// Callback handles POST /api/payment/callback, the gateway's asynchronous
// result. A digest mismatch is rejected without touching the store and
// without echoing what the expected digest was. A store failure answers 503
// so the gateway redelivers.
func (h *PaymentHandler) Callback(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form payload"})
		return
	}
	form := c.Request.PostForm

	payload := model.CallbackPayload{
		Status:      form.Get("status"),
		TxnID:       form.Get("txnid"),
		PaymentID:   form.Get("mihpayid"),
		Amount:      form.Get("amount"),
		ProductInfo: form.Get("productinfo"),
		FirstName:   form.Get("firstname"),
		Email:       form.Get("email"),
		Phone:       form.Get("phone"),
		Hash:        form.Get("hash"),
		Raw:         flattenForm(form),
	}
	for i := range payload.UDF {
		payload.UDF[i] = form.Get(fmt.Sprintf("udf%d", i+1))
	}

	settlement, err := h.facade.ProcessCallback(c.Request.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrVerificationFailed):
			c.JSON(http.StatusBadRequest, gin.H{"error": "verification failed"})
		case errors.Is(err, domainErrors.ErrMissingField):
			c.JSON(http.StatusBadRequest, gin.H{"error": "incomplete callback payload"})
		case errors.Is(err, domainErrors.ErrOrderNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrStoreUnavailable):
			c.Status(http.StatusServiceUnavailable)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	target := h.failureURL
	if settlement.Status == model.PaymentStatusCompleted {
		target = h.successURL
	}
	c.Redirect(http.StatusFound, withQueryParams(target, form))
}

func flattenForm(form url.Values) map[string]string {
	flat := make(map[string]string, len(form))
	for key := range form {
		flat[key] = form.Get(key)
	}
	return flat
}

// withQueryParams echoes the received callback parameters onto the redirect
// target as query parameters.
func withQueryParams(target string, form url.Values) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	for key := range form {
		q.Set(key, form.Get(key))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
