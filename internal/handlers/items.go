package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/boxboard/apiserver/internal/services"
	"github.com/boxboard/apiserver/internal/storage"
	"github.com/boxboard/apiserver/types"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	maxPhotoMemory = 8 << 20
	maxPhotoBytes  = 16 << 20
	formFieldPhoto = "foto"
)

// ItemHandler provides HTTP handlers for items and their photos.
// The storage backend may be nil; photo endpoints then answer 503.
type ItemHandler struct {
	items   *services.ItemService
	storage *storage.Storage
}

func NewItemHandler(items *services.ItemService, store *storage.Storage) *ItemHandler {
	return &ItemHandler{items: items, storage: store}
}

// ItemRouter registers item routes. Reads require authentication only;
// writes require the Coordinatore role.
func ItemRouter(r chi.Router, items *services.ItemService, store *storage.Storage) {
	handler := NewItemHandler(items, store)

	r.Get("/", handler.List)
	r.With(RequireCoordinator).Post("/", handler.Create)
	r.Route("/{itemID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.With(RequireCoordinator).Put("/", handler.Update)
		r.With(RequireCoordinator).Delete("/", handler.Delete)
		r.Get("/foto", handler.GetPhoto)
		r.With(RequireCoordinator).Post("/foto", handler.UploadPhoto)
	})
}

// List returns items, optionally filtered by location_id,
// contenitore_id, stato and tipo.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter types.ItemFilter
	if raw := strings.TrimSpace(r.URL.Query().Get("location_id")); raw != "" {
		locationID, err := strconv.Atoi(raw)
		if err != nil || locationID < 1 {
			writeError(w, http.StatusBadRequest, "invalid location_id")
			return
		}
		filter.LocationID = locationID
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("contenitore_id")); raw != "" {
		containerID, err := strconv.Atoi(raw)
		if err != nil || containerID < 1 {
			writeError(w, http.StatusBadRequest, "invalid contenitore_id")
			return
		}
		filter.ContainerID = containerID
	}
	filter.Status = strings.TrimSpace(r.URL.Query().Get("stato"))
	filter.Kind = strings.TrimSpace(r.URL.Query().Get("tipo"))

	items, err := h.items.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "itemID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.items.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var item types.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	created, err := h.items.Create(r.Context(), item, actorID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "itemID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch types.ItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	updated, err := h.items.Update(r.Context(), id, patch, actorID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "itemID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.items.Delete(r.Context(), id, actorID(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadPhoto stores a multipart "foto" file in object storage and
// records its key against the item.
func (h *ItemHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "photo storage not configured")
		return
	}

	id, err := parseIDParam(r, "itemID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := r.ParseMultipartForm(maxPhotoMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile(formFieldPhoto)
	if err != nil {
		writeError(w, http.StatusBadRequest, "foto file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}
	if len(data) > maxPhotoBytes {
		writeError(w, http.StatusBadRequest, "uploaded file too large")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	key := "oggetti/" + strconv.Itoa(id) + "/foto"
	if err := h.storage.Put(r.Context(), key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		log.Error().Err(err).Int("oggettoID", id).Msg("failed to store photo")
		writeError(w, http.StatusInternalServerError, "failed to store photo")
		return
	}

	if err := h.items.SetPhoto(r.Context(), id, key, contentType, actorID(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPhoto streams the item's photo from object storage.
func (h *ItemHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "photo storage not configured")
		return
	}

	id, err := parseIDParam(r, "itemID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.items.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if item.PhotoKey == "" {
		writeError(w, http.StatusNotFound, "no photo")
		return
	}

	reader, err := h.storage.Get(r.Context(), item.PhotoKey)
	if err != nil {
		log.Error().Err(err).Int("oggettoID", id).Msg("failed to load photo")
		writeError(w, http.StatusInternalServerError, "failed to load photo")
		return
	}
	defer reader.Close()

	if item.PhotoMime != "" {
		w.Header().Set("Content-Type", item.PhotoMime)
	}
	if _, err := io.Copy(w, reader); err != nil && !errors.Is(err, io.EOF) {
		log.Error().Err(err).Int("oggettoID", id).Msg("failed to write photo response")
	}
}
