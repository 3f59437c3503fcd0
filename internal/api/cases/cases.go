package cases

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	dto "vaultory_backend/internal/api/dto/cases"
	"vaultory_backend/internal/converter"
	"vaultory_backend/internal/middleware"
	"vaultory_backend/internal/service"
	"vaultory_backend/internal/service/caseopen"
	"vaultory_backend/pkg/req"
	"vaultory_backend/pkg/resp"
)

// Сколько дропов отдавать по умолчанию в ленте
const defaultDropsLimit = 20

type HandlerDeps struct {
	Serv service.CaseService
}

type Handler struct {
	serv service.CaseService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) ListCases(w http.ResponseWriter, r *http.Request) {
	cases, err := h.serv.ListCases(r.Context())
	if err != nil {
		log.WithError(err).Error("ListCases error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCaseResponses(cases))
}

// GetCaseItems отдает содержимое кейса для предпросмотра
func (h *Handler) GetCaseItems(w http.ResponseWriter, r *http.Request) {
	caseID, err := strconv.Atoi(chi.URLParam(r, "caseID"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid case id")
		return
	}

	items, err := h.serv.GetCaseItems(r.Context(), caseID)
	if err != nil {
		if errors.Is(err, caseopen.ErrCaseNotFound) {
			resp.WriteError(w, http.StatusNotFound, "case not found")
			return
		}
		log.WithError(err).Error("GetCaseItems error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCaseItemResponses(items))
}

// Finalize применяет выбор keep/sell по открытию. Повторный вызов
// по тому же открытию возвращает конфликт
func (h *Handler) Finalize(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	openingID := chi.URLParam(r, "openingID")

	requestBody, err := req.Decode[dto.FinalizeRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	outcome, err := h.serv.Finalize(r.Context(), userID, openingID, requestBody.Action)
	if err != nil {
		switch {
		case errors.Is(err, caseopen.ErrUnknownAction):
			resp.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, caseopen.ErrOpeningNotFound):
			resp.WriteError(w, http.StatusNotFound, "opening not found")
		case errors.Is(err, caseopen.ErrAlreadyFinalized):
			resp.WriteError(w, http.StatusConflict, "opening already finalized")
		default:
			log.WithError(err).Error("Finalize error")
			resp.WriteError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToOutcomeResponse(outcome))
}

// RecentDrops - лента последних дропов для главной страницы
func (h *Handler) RecentDrops(w http.ResponseWriter, r *http.Request) {
	limit := defaultDropsLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}

	drops, err := h.serv.RecentDrops(r.Context(), limit)
	if err != nil {
		log.WithError(err).Error("RecentDrops error")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToLiveDropResponses(drops))
}
