package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	dto "vaultory_backend/internal/api/dto/admin"
	"vaultory_backend/internal/converter"
	"vaultory_backend/internal/model"
	"vaultory_backend/internal/service"
	adminserv "vaultory_backend/internal/service/admin"
	"vaultory_backend/pkg/req"
	"vaultory_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.AdminService
}

type Handler struct {
	serv service.AdminService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.GameRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	id, err := h.serv.CreateGame(r.Context(), converter.ToGameModel(requestBody))
	if err != nil {
		log.WithError(err).Error("CreateGame error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, dto.IDResponse{ID: id})
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.CategoryRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	id, err := h.serv.CreateCategory(r.Context(), converter.ToCategoryModel(requestBody))
	if err != nil {
		log.WithError(err).Error("CreateCategory error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, dto.IDResponse{ID: id})
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.ProductRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	id, err := h.serv.CreateProduct(r.Context(), converter.ToProductModel(requestBody))
	if err != nil {
		log.WithError(err).Error("CreateProduct error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, dto.IDResponse{ID: id})
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	requestBody, err := req.Decode[dto.ProductRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	product := converter.ToProductModel(requestBody)
	product.ID = id

	if err := h.serv.UpdateProduct(r.Context(), product); err != nil {
		log.WithError(err).Error("UpdateProduct error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.serv.DeleteProduct(r.Context(), id); err != nil {
		log.WithError(err).Error("DeleteProduct error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateCase(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.CaseRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	id, err := h.serv.CreateCase(r.Context(), converter.ToCaseModel(requestBody))
	if err != nil {
		log.WithError(err).Error("CreateCase error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, dto.IDResponse{ID: id})
}

func (h *Handler) UpdateCase(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "caseID"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid case id")
		return
	}

	requestBody, err := req.Decode[dto.CaseRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	c := converter.ToCaseModel(requestBody)
	c.ID = id

	if err := h.serv.UpdateCase(r.Context(), c); err != nil {
		log.WithError(err).Error("UpdateCase error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateCaseItem(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.CaseItemRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	id, err := h.serv.CreateCaseItem(r.Context(), converter.ToCaseItemModel(requestBody))
	if err != nil {
		log.WithError(err).Error("CreateCaseItem error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, dto.IDResponse{ID: id})
}

func (h *Handler) UpdateCaseItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	requestBody, err := req.Decode[dto.CaseItemRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	item := converter.ToCaseItemModel(requestBody)
	item.ID = id

	if err := h.serv.UpdateCaseItem(r.Context(), item); err != nil {
		log.WithError(err).Error("UpdateCaseItem error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteCaseItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.serv.DeleteCaseItem(r.Context(), id); err != nil {
		log.WithError(err).Error("DeleteCaseItem error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListWithdrawals отдает заявки на вывод по статусу (по умолчанию new)
func (h *Handler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = model.WithdrawalStatusNew
	}

	requests, err := h.serv.ListWithdrawalsByStatus(r.Context(), status)
	if err != nil {
		log.WithError(err).Error("ListWithdrawals error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToWithdrawalResponses(requests))
}

func (h *Handler) UpdateWithdrawalStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "requestID"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	requestBody, err := req.Decode[dto.WithdrawalStatusRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	err = h.serv.UpdateWithdrawalStatus(r.Context(), id, requestBody.Status)
	if err != nil {
		if errors.Is(err, adminserv.ErrUnknownStatus) {
			resp.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.WithError(err).Error("UpdateWithdrawalStatus error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	requestBody, err := req.Decode[dto.BalanceRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.serv.AdjustBalance(r.Context(), userID, requestBody.Balance); err != nil {
		log.WithError(err).Error("AdjustBalance error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
