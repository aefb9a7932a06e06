package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	_ "github.com/joho/godotenv/autoload"

	"secondbrain/internal/models"
	"secondbrain/internal/services"
	"secondbrain/internal/utils"
)

type ItemHandler struct {
	service services.ItemService
}

func NewItemHandler(service services.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

func (h *ItemHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	items, err := h.service.GetItems(r.Context(), userID, r.URL.Query())
	if err != nil {
		log.Error().Err(err).Msg("Error getting items from service")
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	var reqBody models.AddItemRequestBody
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		log.Error().Err(err).Msg("Error decoding request body for AddItem")
		utils.SendJSONError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.service.AddItem(r.Context(), userID, reqBody)
	if err != nil {
		log.Error().Err(err).Msg("Error adding item via service")
		utils.SendServiceError(w, err)
		return
	}

	log.Info().Str("item_id", item.ID.Hex()).Msg("Successfully created item")
	utils.RespondWithJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) GetItemByID(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	itemID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	item, err := h.service.GetItemByID(r.Context(), userID, itemID)
	if err != nil {
		log.Error().Err(err).Str("item_id", itemID.Hex()).Msg("Error getting item by ID from service")
		utils.SendServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	itemID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	var updatePayload models.UpdateItemRequestBody
	if err := json.NewDecoder(r.Body).Decode(&updatePayload); err != nil {
		log.Error().Err(err).Msg("Invalid JSON for UpdateItem")
		utils.SendJSONError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	updatedItem, err := h.service.UpdateItem(r.Context(), userID, itemID, updatePayload)
	if err != nil {
		log.Error().Err(err).Str("item_id", itemID.Hex()).Msg("Error updating item via service")
		utils.SendServiceError(w, err)
		return
	}

	log.Info().Str("item_id", itemID.Hex()).Msg("Item updated successfully")
	utils.RespondWithJSON(w, http.StatusOK, updatedItem)
}

func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	itemID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	if err := h.service.DeleteItem(r.Context(), userID, itemID); err != nil {
		log.Error().Err(err).Str("item_id", itemID.Hex()).Msg("Error deleting item via service")
		utils.SendServiceError(w, err)
		return
	}

	log.Info().Str("item_id", itemID.Hex()).Msg("Item deleted successfully")
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}

// GetAllTags returns the distinct tag strings across the owner's unfiltered
// collection, for use as input suggestions.
func (h *ItemHandler) GetAllTags(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(w, r)
	if err != nil {
		return
	}

	tags, err := h.service.GetAllTags(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Error aggregating tags from service")
		utils.SendServiceError(w, err)
		return
	}
	if tags == nil {
		tags = []string{}
	}

	utils.RespondWithJSON(w, http.StatusOK, tags)
}
