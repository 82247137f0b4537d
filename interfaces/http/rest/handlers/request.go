package handlers

import (
	"net/http"

	"fluxo-backend/pkg/common"
	"fluxo-backend/pkg/utils"
)

// decodeBody parses a JSON request body and runs its validation tags.
// It writes the error response itself and reports whether the handler
// should proceed.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := common.ParseJSONBody(r, v, maxBodySize); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return false
	}
	if err := utils.ValidateStruct(v); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return false
	}
	return true
}
