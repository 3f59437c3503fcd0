package inventory

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	dto "vaultory_backend/internal/api/dto/inventory"
	"vaultory_backend/internal/converter"
	"vaultory_backend/internal/middleware"
	"vaultory_backend/internal/service"
	inventoryserv "vaultory_backend/internal/service/inventory"
	"vaultory_backend/pkg/req"
	"vaultory_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.InventoryService
}

type Handler struct {
	serv service.InventoryService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	items, err := h.serv.List(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("List inventory error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToInventoryResponses(items))
}

// Sell продает предмет из инвентаря и возвращает новый баланс
func (h *Handler) Sell(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	itemID, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	balance, err := h.serv.Sell(r.Context(), userID, itemID)
	if err != nil {
		switch {
		case errors.Is(err, inventoryserv.ErrItemNotFound):
			resp.WriteError(w, http.StatusNotFound, "item not found")
		case errors.Is(err, inventoryserv.ErrItemWithdrawn):
			resp.WriteError(w, http.StatusConflict, "item already withdrawn")
		default:
			log.WithError(err).Error("Sell error")
			resp.WriteError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.SellResponse{Balance: balance})
}

// Withdraw создает заявку на вывод предмета
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	itemID, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	requestBody, err := req.Decode[dto.WithdrawRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	request, err := h.serv.RequestWithdrawal(r.Context(), userID, itemID, requestBody.Contact)
	if err != nil {
		switch {
		case errors.Is(err, inventoryserv.ErrEmptyContact):
			resp.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, inventoryserv.ErrItemNotFound):
			resp.WriteError(w, http.StatusNotFound, "item not found")
		case errors.Is(err, inventoryserv.ErrItemWithdrawn):
			resp.WriteError(w, http.StatusConflict, "item already withdrawn")
		default:
			log.WithError(err).Error("Withdraw error")
			resp.WriteError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToWithdrawalResponse(request))
}

func (h *Handler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	requests, err := h.serv.ListWithdrawals(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("ListWithdrawals error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToWithdrawalResponses(requests))
}
