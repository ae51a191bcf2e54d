package handlers

import (
	"net/http"

	"github.com/Dosada05/football-api/services"
)

type ClubHandler struct {
	clubService services.ClubService
}

func NewClubHandler(cs services.ClubService) *ClubHandler {
	return &ClubHandler{
		clubService: cs,
	}
}

func (h *ClubHandler) ListClubs(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.clubService.ListClubs(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, "Daftar Klub", clubs)
}

func (h *ClubHandler) CreateClub(w http.ResponseWriter, r *http.Request) {
	var input services.ClubInput
	if err := readJSON(w, r, &input); err != nil {
		readErrorResponse(w, r, err)
		return
	}

	club, err := h.clubService.CreateClub(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusCreated, "Klub Berhasil Ditambahkan", club)
}

func (h *ClubHandler) GetClubByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	club, err := h.clubService.GetClubByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, "Detail Klub", club)
}

func (h *ClubHandler) UpdateClub(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	var input services.ClubInput
	if err := readJSON(w, r, &input); err != nil {
		readErrorResponse(w, r, err)
		return
	}

	club, err := h.clubService.UpdateClub(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, "Klub Berhasil Diperbarui", club)
}

func (h *ClubHandler) DeleteClub(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	club, err := h.clubService.DeleteClub(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, deletedMessage(club.Name), nil)
}
