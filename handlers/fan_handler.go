package handlers

import (
	"net/http"

	"github.com/Dosada05/football-api/services"
)

type FanHandler struct {
	fanService services.FanService
}

func NewFanHandler(fs services.FanService) *FanHandler {
	return &FanHandler{
		fanService: fs,
	}
}

func (h *FanHandler) ListFans(w http.ResponseWriter, r *http.Request) {
	fans, err := h.fanService.ListFans(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, "Daftar Fans", fans)
}

func (h *FanHandler) CreateFan(w http.ResponseWriter, r *http.Request) {
	var input services.FanInput
	if err := readJSON(w, r, &input); err != nil {
		readErrorResponse(w, r, err)
		return
	}

	fan, err := h.fanService.CreateFan(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusCreated, "Fan berhasil ditambahkan", fan)
}

func (h *FanHandler) GetFanByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	fan, err := h.fanService.GetFanByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, "Detail Fan", fan)
}

func (h *FanHandler) UpdateFan(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	var input services.FanInput
	if err := readJSON(w, r, &input); err != nil {
		readErrorResponse(w, r, err)
		return
	}

	fan, err := h.fanService.UpdateFan(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, "Fan berhasil diperbarui", fan)
}

func (h *FanHandler) DeleteFan(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	fan, err := h.fanService.DeleteFan(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, deletedMessage(fan.Name), nil)
}
