package handlers

import (
	"net/http"

	"github.com/Dosada05/football-api/services"
)

type LeagueHandler struct {
	leagueService services.LeagueService
}

func NewLeagueHandler(ls services.LeagueService) *LeagueHandler {
	return &LeagueHandler{
		leagueService: ls,
	}
}

func (h *LeagueHandler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	leagues, err := h.leagueService.ListLeagues(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, "Daftar Liga Sepak Bola", leagues)
}

func (h *LeagueHandler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	var input services.LeagueInput
	if err := readJSON(w, r, &input); err != nil {
		readErrorResponse(w, r, err)
		return
	}

	league, err := h.leagueService.CreateLeague(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusCreated, "Data Berhasil Dibuat", league)
}

func (h *LeagueHandler) GetLeagueByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	league, err := h.leagueService.GetLeagueByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, "Detail Liga", league)
}

func (h *LeagueHandler) UpdateLeague(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	var input services.LeagueInput
	if err := readJSON(w, r, &input); err != nil {
		readErrorResponse(w, r, err)
		return
	}

	league, err := h.leagueService.UpdateLeague(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, "Data Berhasil Diperbarui", league)
}

func (h *LeagueHandler) DeleteLeague(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	league, err := h.leagueService.DeleteLeague(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, deletedMessage(league.Name), nil)
}
