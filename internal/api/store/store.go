package store

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	dto "vaultory_backend/internal/api/dto/store"
	"vaultory_backend/internal/converter"
	"vaultory_backend/internal/middleware"
	"vaultory_backend/internal/model"
	"vaultory_backend/internal/service"
	"vaultory_backend/internal/service/cart"
	"vaultory_backend/pkg/req"
	"vaultory_backend/pkg/resp"
)

type HandlerDeps struct {
	CatalogServ service.CatalogService
	CartServ    service.CartService
}

type Handler struct {
	catalogServ service.CatalogService
	cartServ    service.CartService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		catalogServ: deps.CatalogServ,
		cartServ:    deps.CartServ,
	}
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.catalogServ.ListGames(r.Context())
	if err != nil {
		log.WithError(err).Error("ListGames error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToGameResponses(games))
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.Atoi(chi.URLParam(r, "gameID"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	categories, err := h.catalogServ.ListCategories(r.Context(), gameID)
	if err != nil {
		log.WithError(err).Error("ListCategories error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCategoryResponses(categories))
}

// ListProducts отдает активные товары с фильтрами из query-параметров
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := model.ProductFilter{
		GameID:     queryInt(r, "game_id"),
		CategoryID: queryInt(r, "category_id"),
		MaxPrice:   queryInt(r, "max_price"),
	}

	products, err := h.catalogServ.ListProducts(r.Context(), filter)
	if err != nil {
		log.WithError(err).Error("ListProducts error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToProductResponses(products))
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.catalogServ.GetProduct(r.Context(), id)
	if err != nil {
		resp.WriteError(w, http.StatusNotFound, "product not found")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToProductResponse(product))
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	lines, err := h.cartServ.GetCart(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("GetCart error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCartResponse(lines))
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	requestBody, err := req.Decode[dto.AddToCartRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	err = h.cartServ.AddItem(r.Context(), userID, requestBody.ProductID, requestBody.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrBadQuantity) {
			resp.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.WithError(err).Error("AddToCart error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetQuantity меняет количество позиции, ноль удаляет ее
func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	requestBody, err := req.Decode[dto.SetQuantityRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	err = h.cartServ.SetQuantity(r.Context(), userID, productID, requestBody.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrBadQuantity) {
			resp.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.WithError(err).Error("SetQuantity error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.cartServ.RemoveItem(r.Context(), userID, productID); err != nil {
		log.WithError(err).Error("RemoveFromCart error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Checkout оформляет заказ по текущей корзине
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	order, err := h.cartServ.Checkout(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrEmptyCart):
			resp.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, cart.ErrNotEnoughBalance):
			resp.WriteError(w, http.StatusPaymentRequired, err.Error())
		default:
			log.WithError(err).Error("Checkout error")
			resp.WriteError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToCheckoutResponse(order))
}

// queryInt читает целочисленный query-параметр, 0 если он не задан
func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}
