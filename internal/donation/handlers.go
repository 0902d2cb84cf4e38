package donation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/erikvaldez23/foundation-api/internal/common"
)

// Handler exposes the donation intent endpoint.
type Handler struct {
	Svc *Service
}

type intentResp struct {
	ClientSecret string `json:"clientSecret"`
}

// CreateIntent handles POST /api/create-payment-intent.
//
// The wire contract is fixed: 200 {clientSecret}, 400 {error} for invalid
// amounts, 500 {error} when the provider call fails. Card details never
// pass through here; the browser completes payment against the provider
// directly using the returned secret.
func (h *Handler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Svc == nil {
		common.FlatError(w, http.StatusInternalServerError, "donation service unavailable")
		return
	}
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// A non-numeric amount surfaces as a decode error.
		common.FlatError(w, http.StatusBadRequest, "Invalid amount")
		return
	}
	resp, err := h.Svc.CreateIntent(r.Context(), req)
	if err != nil {
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			common.FlatError(w, appErr.HTTPStatus, appErr.Message)
			return
		}
		common.FlatError(w, http.StatusInternalServerError, err.Error())
		return
	}
	common.JSON(w, http.StatusOK, intentResp{ClientSecret: resp.ClientSecret})
}
