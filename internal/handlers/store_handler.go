package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"school-store/internal/dto"
	"school-store/internal/middleware"
	"school-store/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StoreHandler struct {
	catalog  service.CatalogService
	carts    service.CartService
	orders   service.OrderService
	payment  *service.PaymentRedirect
	sessions middleware.SessionStore
	log      *zap.Logger
}

func NewStoreHandler(
	catalog service.CatalogService,
	carts service.CartService,
	orders service.OrderService,
	payment *service.PaymentRedirect,
	sessions middleware.SessionStore,
	log *zap.Logger,
) *StoreHandler {
	return &StoreHandler{
		catalog:  catalog,
		carts:    carts,
		orders:   orders,
		payment:  payment,
		sessions: sessions,
		log:      log,
	}
}

// wantsJSON повторяет accepts('json') оригинальной витрины: fetch шлёт
// Accept/Content-Type c json, обычные формы — нет.
func wantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "json") {
		return true
	}
	return c.ContentType() == "application/json"
}

// saveSession пишет состояние сессии обратно в стор. false — ответ уже отдан.
func saveSession(c *gin.Context, sessions middleware.SessionStore, log *zap.Logger) bool {
	if err := sessions.Save(c.Request.Context(), middleware.SessionID(c), middleware.State(c)); err != nil {
		log.Error("session save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return false
	}
	return true
}

func (h *StoreHandler) Home(c *gin.Context) {
	products, err := h.catalog.ListActive(c.Request.Context())
	if err != nil {
		h.log.Error("list active products failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products": dto.ToProductResponses(products),
		"cart":     dto.ToCartResponse(&middleware.State(c).Cart),
	})
}

func (h *StoreHandler) CartAdd(c *gin.Context) {
	var req dto.CartAddRequest
	if err := c.ShouldBind(&req); err != nil {
		if wantsJSON(c) {
			c.JSON(http.StatusNotFound, dto.CartAddResponse{OK: false})
			return
		}
		c.Redirect(http.StatusFound, "/")
		return
	}

	productID, err := uuid.Parse(req.ID)
	if err != nil {
		if wantsJSON(c) {
			c.JSON(http.StatusNotFound, dto.CartAddResponse{OK: false})
			return
		}
		c.Redirect(http.StatusFound, "/")
		return
	}

	st := middleware.State(c)
	count, err := h.carts.AddToCart(c.Request.Context(), &st.Cart, productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			if wantsJSON(c) {
				c.JSON(http.StatusNotFound, dto.CartAddResponse{OK: false})
				return
			}
			c.Redirect(http.StatusFound, "/")
			return
		}
		h.log.Error("add to cart failed", zap.String("product_id", req.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}

	if !saveSession(c, h.sessions, h.log) {
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, dto.CartAddResponse{OK: true, Count: count})
		return
	}
	c.Redirect(http.StatusFound, "/cart")
}

func (h *StoreHandler) CartView(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToCartResponse(&middleware.State(c).Cart))
}

func (h *StoreHandler) CartUpdate(c *gin.Context) {
	var req dto.CartUpdateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusFound, "/cart")
		return
	}

	productID, err := uuid.Parse(req.ID)
	if err != nil {
		c.Redirect(http.StatusFound, "/cart")
		return
	}

	qty, _ := strconv.Atoi(req.Qty) // нечисловое qty трактуем как 0

	st := middleware.State(c)
	h.carts.SetQuantity(&st.Cart, productID, qty)

	if !saveSession(c, h.sessions, h.log) {
		return
	}
	c.Redirect(http.StatusFound, "/cart")
}

func (h *StoreHandler) CartClear(c *gin.Context) {
	st := middleware.State(c)
	h.carts.Clear(&st.Cart)

	if !saveSession(c, h.sessions, h.log) {
		return
	}
	c.Redirect(http.StatusFound, "/cart")
}

func (h *StoreHandler) CheckoutView(c *gin.Context) {
	st := middleware.State(c)
	if st.Cart.IsEmpty() {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.JSON(http.StatusOK, dto.ToCartResponse(&st.Cart))
}

func (h *StoreHandler) CheckoutSubmit(c *gin.Context) {
	st := middleware.State(c)
	if st.Cart.IsEmpty() {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var req dto.CheckoutRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusFound, "/checkout")
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), &st.Cart, service.CheckoutInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerClass: req.CustomerClass,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			c.Redirect(http.StatusFound, "/")
		case errors.Is(err, service.ErrInvalidCustomerInfo):
			// Восстановимая ошибка вызывающего: обратно на форму
			c.Redirect(http.StatusFound, "/checkout")
		default:
			h.log.Error("place order failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		}
		return
	}

	// Заказ закоммичен, корзина очищена — фиксируем сессию
	if !saveSession(c, h.sessions, h.log) {
		return
	}

	placedURL := "/order/placed/" + order.ID.String()

	if order.PaymentMethod == "card" {
		if url := h.payment.HandoffURL(order.TotalCents); url != "" {
			c.Redirect(http.StatusFound, url)
			return
		}
	}
	c.Redirect(http.StatusFound, placedURL)
}

func (h *StoreHandler) OrderPlaced(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			if wantsJSON(c) {
				c.JSON(http.StatusNotFound, dto.NewNotFoundError("order not found"))
				return
			}
			c.Redirect(http.StatusFound, "/")
			return
		}
		h.log.Error("get order failed", zap.String("order_id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}
