package handlers

import (
	"errors"
	"net/http"

	"school-store/internal/dto"
	"school-store/internal/middleware"
	"school-store/internal/money"
	"school-store/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminHandler struct {
	catalog  service.CatalogService
	orders   service.OrderService
	auth     *service.AdminAuth
	sessions middleware.SessionStore
	log      *zap.Logger
}

func NewAdminHandler(
	catalog service.CatalogService,
	orders service.OrderService,
	auth *service.AdminAuth,
	sessions middleware.SessionStore,
	log *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		catalog:  catalog,
		orders:   orders,
		auth:     auth,
		sessions: sessions,
		log:      log,
	}
}

func (h *AdminHandler) LoginView(c *gin.Context) {
	if middleware.State(c).IsAdmin {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	c.JSON(http.StatusOK, gin.H{"login": "required"})
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("username and password are required"))
		return
	}

	if !h.auth.Check(req.Username, req.Password) {
		// Без блокировок и задержек — просто сообщение
		h.log.Warn("admin login rejected", zap.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid credentials"))
		return
	}

	middleware.State(c).IsAdmin = true
	if !saveSession(c, h.sessions, h.log) {
		return
	}
	c.Redirect(http.StatusFound, "/admin")
}

func (h *AdminHandler) Logout(c *gin.Context) {
	if err := h.sessions.Destroy(c.Request.Context(), middleware.SessionID(c)); err != nil {
		h.log.Error("session destroy failed", zap.Error(err))
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	counts, err := h.orders.Counts(c.Request.Context())
	if err != nil {
		h.log.Error("dashboard counts failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}
	c.JSON(http.StatusOK, dto.DashboardResponse{
		ProductCount: counts.Products,
		OrderCount:   counts.Orders,
		UnpaidCount:  counts.UnpaidOrders,
	})
}

func (h *AdminHandler) Items(c *gin.Context) {
	products, err := h.catalog.ListAll(c.Request.Context())
	if err != nil {
		h.log.Error("list products failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": dto.ToProductResponses(products)})
}

func (h *AdminHandler) ItemCreate(c *gin.Context) {
	var req dto.ProductForm
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("name and price are required"))
		return
	}

	cents, err := money.ParseCents(req.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("price must be a non-negative amount"))
		return
	}

	if _, err := h.catalog.Create(c.Request.Context(), service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  cents,
		ImageURL:    req.ImageURL,
	}); err != nil {
		h.log.Error("create product failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}
	c.Redirect(http.StatusFound, "/admin/items")
}

func (h *AdminHandler) ItemEdit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/admin/items")
		return
	}

	p, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.Redirect(http.StatusFound, "/admin/items")
			return
		}
		h.log.Error("get product failed", zap.String("product_id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(*p))
}

func (h *AdminHandler) ItemUpdate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/admin/items")
		return
	}

	var req dto.ProductForm
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("name and price are required"))
		return
	}

	cents, err := money.ParseCents(req.Price)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("price must be a non-negative amount"))
		return
	}

	// Отсутствующий id — no-op, редирект тот же (идемпотентные админ-формы)
	if err := h.catalog.Update(c.Request.Context(), id, service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  cents,
		ImageURL:    req.ImageURL,
	}); err != nil {
		h.log.Error("update product failed", zap.String("product_id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}
	c.Redirect(http.StatusFound, "/admin/items")
}

func (h *AdminHandler) ItemToggleActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/admin/items")
		return
	}

	if err := h.catalog.ToggleActive(c.Request.Context(), id); err != nil {
		h.log.Error("toggle product failed", zap.String("product_id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}
	c.Redirect(http.StatusFound, "/admin/items")
}

func (h *AdminHandler) Orders(c *gin.Context) {
	orders, total, err := h.orders.ListOrders(c.Request.Context())
	if err != nil {
		h.log.Error("list orders failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}

	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, dto.ToOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, gin.H{"orders": out, "total": total})
}

func (h *AdminHandler) OrderDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/admin/orders")
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.Redirect(http.StatusFound, "/admin/orders")
			return
		}
		h.log.Error("get order failed", zap.String("order_id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *AdminHandler) OrderTogglePaid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/admin/orders")
		return
	}

	if _, err := h.orders.TogglePaid(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			c.Redirect(http.StatusFound, "/admin/orders")
			return
		case errors.Is(err, service.ErrOrderCancelled):
			// Отменённый заказ терминален: статус не трогаем, возвращаемся на карточку
			h.log.Warn("toggle-paid on cancelled order ignored", zap.String("order_id", id.String()))
		default:
			h.log.Error("toggle paid failed", zap.String("order_id", id.String()), zap.Error(err))
			c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
			return
		}
	}
	c.Redirect(http.StatusFound, "/admin/orders/"+id.String())
}

func (h *AdminHandler) OrderMarkCancelled(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/admin/orders")
		return
	}

	if _, err := h.orders.MarkCancelled(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.Redirect(http.StatusFound, "/admin/orders")
			return
		}
		h.log.Error("mark cancelled failed", zap.String("order_id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
		return
	}
	c.Redirect(http.StatusFound, "/admin/orders/"+id.String())
}
