package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"secondbrain/internal/models"
	"secondbrain/internal/services"
	"secondbrain/internal/utils"
)

type FolderHandler struct {
	service services.FolderService
}

func NewFolderHandler(service services.FolderService) *FolderHandler {
	return &FolderHandler{service: service}
}

func (h *FolderHandler) AddFolder(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	var reqBody models.AddFolderRequestBody
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		log.Error().Err(err).Msg("Invalid JSON input for AddFolder")
		utils.SendJSONError(w, "Invalid JSON input: "+err.Error(), http.StatusBadRequest)
		return
	}

	folder, err := h.service.AddFolder(r.Context(), userID, reqBody)
	if err != nil {
		log.Error().Err(err).Msg("Error adding folder via service")
		utils.SendServiceError(w, err)
		return
	}

	log.Info().Str("folder_id", folder.ID.Hex()).Str("folder_name", folder.Name).Msg("Folder added successfully")
	utils.RespondWithJSON(w, http.StatusCreated, folder)
}

func (h *FolderHandler) GetFolders(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	folders, err := h.service.GetFolders(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Error getting folders from service")
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, folders)
}

func (h *FolderHandler) GetFolderByID(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	folderID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	folder, err := h.service.GetFolderByID(r.Context(), userID, folderID)
	if err != nil {
		log.Error().Err(err).Str("folder_id", folderID.Hex()).Msg("Error getting folder by ID from service")
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, folder)
}

func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	folderID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var updatePayload models.FolderUpdate
	if err := json.NewDecoder(r.Body).Decode(&updatePayload); err != nil {
		log.Error().Err(err).Msg("Invalid JSON for UpdateFolder")
		utils.SendJSONError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	updatedFolder, err := h.service.UpdateFolder(r.Context(), userID, folderID, updatePayload)
	if err != nil {
		log.Error().Err(err).Str("folder_id", folderID.Hex()).Msg("Error updating folder via service")
		utils.SendServiceError(w, err)
		return
	}

	log.Info().Str("folder_id", folderID.Hex()).Msg("Folder updated successfully")
	utils.RespondWithJSON(w, http.StatusOK, updatedFolder)
}

func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	folderID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	if err := h.service.DeleteFolder(r.Context(), userID, folderID); err != nil {
		log.Error().Err(err).Str("folder_id", folderID.Hex()).Msg("Error deleting folder via service")
		utils.SendServiceError(w, err)
		return
	}

	log.Info().Str("folder_id", folderID.Hex()).Msg("Folder deleted successfully")
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Folder deleted successfully"})
}
