package http

import (
	"encoding/json"
	"net/http"

	"github.com/agrifarm/farmpay-backend-go/internal/domain/settings"
	"github.com/agrifarm/farmpay-backend-go/internal/handler/http/response"
)

type SettingsHandler interface {
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &settingsHandlerImpl{settingsService: settingsService}
}

func (h *settingsHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *settingsHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdatePayrollSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.settingsService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
