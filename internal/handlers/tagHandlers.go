package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"secondbrain/internal/models"
	"secondbrain/internal/services"
	"secondbrain/internal/utils"
)

type TagHandler struct {
	service services.TagService
}

func NewTagHandler(service services.TagService) *TagHandler {
	return &TagHandler{service: service}
}

func (h *TagHandler) GetUserTags(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	tags, err := h.service.GetUserTags(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Error getting user tags from service")
		utils.SendServiceError(w, err)
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}

	utils.RespondWithJSON(w, http.StatusOK, tags)
}

func (h *TagHandler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	tagID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var updatePayload models.TagUpdate
	if err := json.NewDecoder(r.Body).Decode(&updatePayload); err != nil {
		log.Error().Err(err).Msg("Invalid JSON for UpdateTag")
		utils.SendJSONError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	updatedTag, err := h.service.UpdateTag(r.Context(), userID, tagID, updatePayload)
	if err != nil {
		log.Error().Err(err).Str("tag_id", tagID.Hex()).Msg("Error updating tag via service")
		utils.SendServiceError(w, err)
		return
	}

	log.Info().Str("tag_id", tagID.Hex()).Msg("Tag updated successfully")
	utils.RespondWithJSON(w, http.StatusOK, updatedTag)
}
