package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/cart"
	"storefront/internal/menu"
	"storefront/internal/messages"
	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/view"

	"github.com/rs/zerolog"
)

// PageHandler serves the storefront's HTML pages.
type PageHandler struct {
	catalogue service.CatalogueService
	carts     service.CartService
	orders    service.OrderService
	renderer  *view.Renderer
	bundle    *messages.Bundle
	logger    zerolog.Logger
}

// NewPageHandler creates a new page handler.
func NewPageHandler(
	catalogue service.CatalogueService,
	carts service.CartService,
	orders service.OrderService,
	renderer *view.Renderer,
	bundle *messages.Bundle,
	logger zerolog.Logger,
) *PageHandler {
	return &PageHandler{
		catalogue: catalogue,
		carts:     carts,
		orders:    orders,
		renderer:  renderer,
		bundle:    bundle,
		logger:    logger.With().Str("handler", "page").Logger(),
	}
}

// localeFunc is a handler that receives the validated route locale.
type localeFunc func(w http.ResponseWriter, r *http.Request, locale string)

// Localized rejects locales without a message catalogue.
func (h *PageHandler) Localized(fn localeFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locale := r.PathValue("locale")
		if !h.bundle.Has(locale) {
			h.logger.Debug().Str("locale", locale).Msg("unsupported locale")
			http.NotFound(w, r)
			return
		}
		fn(w, r, locale)
	}
}

// Root redirects to the default locale's home page.
func (h *PageHandler) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/"+h.bundle.DefaultLocale(), http.StatusFound)
}

// Health reports liveness.
func (h *PageHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Home handles GET /{locale}.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request, locale string) {
	data, err := h.catalogue.HomePage(r.Context())
	if err != nil {
		h.renderFailure(w, locale, err)
		return
	}

	page := h.renderer.NewPage(locale, "")
	page.Title = page.T("HomePage.title")
	page.Description = menu.PlainText(page.T("HomePage.description"))
	page.Data = view.HomeData{Dishes: data.Dishes, Categories: data.Categories}
	h.render(w, http.StatusOK, view.PageHome, page)
}

// Categories handles GET /{locale}/categories.
func (h *PageHandler) Categories(w http.ResponseWriter, r *http.Request, locale string) {
	categories, err := h.catalogue.Categories(r.Context())
	if err != nil {
		h.renderFailure(w, locale, err)
		return
	}

	page := h.renderer.NewPage(locale, "/categories")
	page.Title = page.T("Categories.title")
	page.Data = view.CategoriesData{Categories: categories}
	h.render(w, http.StatusOK, view.PageCategories, page)
}

// Category handles GET /{locale}/categories/{slug}.
func (h *PageHandler) Category(w http.ResponseWriter, r *http.Request, locale string) {
	slug := r.PathValue("slug")
	id, err := menu.IDFromSlugURL(slug)
	if err != nil {
		h.renderFailure(w, locale, err)
		return
	}

	data, err := h.catalogue.CategoryDetail(r.Context(), id)
	if err != nil {
		h.renderFailure(w, locale, err)
		return
	}

	page := h.renderer.NewPage(locale, "/categories/"+slug)
	page.Title = data.Category.Name
	page.Description = menu.PlainText(data.Category.Description)
	page.Data = view.CategoryData{Category: data.Category, Dishes: data.Dishes}
	h.render(w, http.StatusOK, view.PageCategory, page)
}

// Dish handles GET /{locale}/dishes/{slug}.
func (h *PageHandler) Dish(w http.ResponseWriter, r *http.Request, locale string) {
	slug := r.PathValue("slug")
	id, err := menu.IDFromSlugURL(slug)
	if err != nil {
		h.renderFailure(w, locale, err)
		return
	}

	dish, err := h.catalogue.DishDetail(r.Context(), id)
	if err != nil {
		h.renderFailure(w, locale, err)
		return
	}

	page := h.renderer.NewPage(locale, "/dishes/"+slug)
	page.Title = dish.Name
	page.Description = menu.PlainText(dish.Description)
	page.Data = view.DishData{Dish: *dish}
	h.render(w, http.StatusOK, view.PageDish, page)
}

// Menu handles GET /{locale}/guest/menu.
func (h *PageHandler) Menu(w http.ResponseWriter, r *http.Request, locale string) {
	h.renderMenu(w, r, locale, http.StatusOK, "")
}

// MaxQuantity is the largest quantity a single cart line may hold.
const MaxQuantity = 1000

// QuantityResponse is returned to clients that ask for JSON.
type QuantityResponse struct {
	Lines     cart.Cart `json:"lines"`
	LineCount int       `json:"lineCount"`
}

// SetQuantity handles POST /{locale}/guest/menu/quantity.
func (h *PageHandler) SetQuantity(w http.ResponseWriter, r *http.Request, locale string) {
	sessionID := middleware.SessionID(r.Context())
	wantsJSON := strings.Contains(r.Header.Get("Accept"), "application/json")

	dishID, quantity, err := parseQuantityForm(r)
	if err == nil {
		var updated cart.Cart
		updated, err = h.carts.SetQuantity(r.Context(), sessionID, dishID, quantity)
		if err == nil {
			if wantsJSON {
				writeJSON(w, http.StatusOK, QuantityResponse{Lines: updated, LineCount: len(updated)})
				return
			}
			http.Redirect(w, r, "/"+locale+"/guest/menu", http.StatusSeeOther)
			return
		}
	}

	if wantsJSON {
		writeError(w, err, h.logger)
		return
	}
	h.logger.Warn().Err(err).Msg("quantity change rejected")
	h.renderMenu(w, r, locale, statusFor(err), "Menu.quantityFailed")
}

// PlaceOrder handles POST /{locale}/guest/menu/order.
func (h *PageHandler) PlaceOrder(w http.ResponseWriter, r *http.Request, locale string) {
	sessionID := middleware.SessionID(r.Context())

	_, err := h.orders.SubmitOrder(r.Context(), sessionID, h.carts.Cart(sessionID))
	if err != nil {
		h.logger.Warn().Err(err).Msg("order submission failed")
		h.renderMenu(w, r, locale, statusFor(err), "Menu.orderFailed")
		return
	}

	http.Redirect(w, r, "/"+locale+"/guest/orders", http.StatusSeeOther)
}

// Orders handles GET /{locale}/guest/orders.
func (h *PageHandler) Orders(w http.ResponseWriter, r *http.Request, locale string) {
	orders, err := h.orders.GuestOrders(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		h.renderFailure(w, locale, err)
		return
	}

	page := h.renderer.NewPage(locale, "/guest/orders")
	page.Title = page.T("Orders.title")
	page.Data = view.NewOrdersData(orders)
	h.render(w, http.StatusOK, view.PageOrders, page)
}

// renderMenu renders the guest menu with an optional notice key.
func (h *PageHandler) renderMenu(w http.ResponseWriter, r *http.Request, locale string, status int, noticeKey string) {
	data, err := h.catalogue.Menu(r.Context())
	if err != nil {
		h.renderFailure(w, locale, err)
		return
	}

	c := h.carts.Cart(middleware.SessionID(r.Context()))

	page := h.renderer.NewPage(locale, "/guest/menu")
	page.Title = page.T("Menu.title")
	if noticeKey != "" {
		page.Notice = page.T(noticeKey)
	}
	page.Data = view.NewMenuData(data.Sections, data.Dishes, c)
	h.render(w, status, view.PageMenu, page)
}

// renderFailure renders the fallback page: "not found" for missing
// resources and the generic message for everything else.
func (h *PageHandler) renderFailure(w http.ResponseWriter, locale string, err error) {
	status := statusFor(err)
	key := "Error.generic"
	if status == http.StatusNotFound {
		key = "Error.notFound"
	} else {
		h.logger.Error().Err(err).Int("status", status).Msg("page failed to load")
	}

	page := h.renderer.NewPage(locale, "")
	page.Title = page.T(key)
	page.Data = view.ErrorData{Message: page.T(key)}
	h.render(w, status, view.PageError, page)
}

// render writes the page only once it has rendered completely. A template
// failure becomes a plain 500.
func (h *PageHandler) render(w http.ResponseWriter, status int, name string, page view.Page) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, name, page); err != nil {
		h.logger.Error().Err(err).Str("page", name).Msg("failed to render page")
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn().Err(err).Str("page", name).Msg("failed to write page")
	}
}

func parseQuantityForm(r *http.Request) (dishID, quantity int, err error) {
	if err := r.ParseForm(); err != nil {
		return 0, 0, model.ErrInvalidQuantity
	}
	dishID, err = strconv.Atoi(strings.TrimSpace(r.PostForm.Get("dishId")))
	if err != nil {
		return 0, 0, model.ErrDishNotFound
	}
	quantity, err = strconv.Atoi(strings.TrimSpace(r.PostForm.Get("quantity")))
	if err != nil {
		return 0, 0, model.ErrInvalidQuantity
	}
	if quantity > MaxQuantity {
		return 0, 0, model.ErrInvalidQuantity
	}
	if quantity < 0 {
		quantity = 0
	}
	return dishID, quantity, nil
}
