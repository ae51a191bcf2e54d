package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/Dosada05/football-api/services"
)

const (
	// maxPlayerRequestBytes bounds the whole request; the photo limit itself
	// is enforced by the player service.
	maxPlayerRequestBytes = 10 << 20
	multipartMemory       = 4 << 20
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(ps services.PlayerService) *PlayerHandler {
	return &PlayerHandler{
		playerService: ps,
	}
}

// flexString accepts a JSON string or number, so harga_pasar may be sent
// either way.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*f = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case json.Valid(data) && strings.ContainsAny(raw[:1], "-0123456789"):
		*f = flexString(raw)
	default:
		return &json.UnmarshalTypeError{Value: jsonKind(raw), Type: reflect.TypeOf("")}
	}
	return nil
}

func jsonKind(raw string) string {
	switch {
	case strings.HasPrefix(raw, "{"):
		return "object"
	case strings.HasPrefix(raw, "["):
		return "array"
	case raw == "true" || raw == "false":
		return "bool"
	}
	return "value"
}

type playerJSONBody struct {
	Name        flexString `json:"nama_pemain"`
	BirthDate   flexString `json:"tgl_lahir"`
	MarketPrice flexString `json:"harga_pasar"`
	Position    flexString `json:"posisi"`
	Country     flexString `json:"negara"`
}

// readPlayerInput accepts multipart/form-data (with an optional "foto" file),
// urlencoded forms and JSON. The returned cleanup must always be called.
func readPlayerInput(w http.ResponseWriter, r *http.Request) (services.PlayerInput, func(), error) {
	cleanup := func() {}
	var input services.PlayerInput

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxPlayerRequestBytes)
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return input, cleanup, formError(err)
		}
		cleanup = func() { _ = r.MultipartForm.RemoveAll() }
		fillPlayerInputFromForm(&input, r)

		file, header, err := r.FormFile("foto")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			return input, cleanup, formError(err)
		default:
			removeForm := cleanup
			cleanup = func() {
				_ = file.Close()
				removeForm()
			}
			input.Photo = &services.PhotoUpload{
				Filename: header.Filename,
				Size:     header.Size,
				Content:  file,
			}
		}

	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		if err := r.ParseForm(); err != nil {
			return input, cleanup, formError(err)
		}
		fillPlayerInputFromForm(&input, r)

	default:
		var body playerJSONBody
		if err := readJSON(w, r, &body); err != nil {
			return input, cleanup, err
		}
		input = services.PlayerInput{
			Name:        string(body.Name),
			BirthDate:   string(body.BirthDate),
			MarketPrice: string(body.MarketPrice),
			Position:    string(body.Position),
			Country:     string(body.Country),
		}
	}

	return input, cleanup, nil
}

func fillPlayerInputFromForm(input *services.PlayerInput, r *http.Request) {
	input.Name = r.FormValue("nama_pemain")
	input.BirthDate = r.FormValue("tgl_lahir")
	input.MarketPrice = r.FormValue("harga_pasar")
	input.Position = r.FormValue("posisi")
	input.Country = r.FormValue("negara")
}

func formError(err error) error {
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
	}
	return fmt.Errorf("malformed form body: %w", err)
}

func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.ListPlayers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, "Daftar Pemain", players)
}

func (h *PlayerHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	input, cleanup, err := readPlayerInput(w, r)
	defer cleanup()
	if err != nil {
		readErrorResponse(w, r, err)
		return
	}

	player, err := h.playerService.CreatePlayer(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusCreated, "Pemain Berhasil Ditambahkan", player)
}

func (h *PlayerHandler) GetPlayerByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	player, err := h.playerService.GetPlayerByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, "Detail Pemain", player)
}

func (h *PlayerHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	input, cleanup, err := readPlayerInput(w, r)
	defer cleanup()
	if err != nil {
		readErrorResponse(w, r, err)
		return
	}

	player, err := h.playerService.UpdatePlayer(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, "Pemain Berhasil Diupdate", player)
}

func (h *PlayerHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	player, err := h.playerService.DeletePlayer(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	successResponse(w, r, http.StatusOK, deletedMessage(player.Name), nil)
}
