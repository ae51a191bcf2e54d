package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/football-api/models"
	"github.com/Dosada05/football-api/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type stubLeagueService struct {
	list   func(ctx context.Context) ([]models.League, error)
	create func(ctx context.Context, input services.LeagueInput) (*models.League, error)
	get    func(ctx context.Context, id int) (*models.League, error)
	update func(ctx context.Context, id int, input services.LeagueInput) (*models.League, error)
	remove func(ctx context.Context, id int) (*models.League, error)
}

func (s *stubLeagueService) ListLeagues(ctx context.Context) ([]models.League, error) {
	return s.list(ctx)
}
func (s *stubLeagueService) CreateLeague(ctx context.Context, input services.LeagueInput) (*models.League, error) {
	return s.create(ctx, input)
}
func (s *stubLeagueService) GetLeagueByID(ctx context.Context, id int) (*models.League, error) {
	return s.get(ctx, id)
}
func (s *stubLeagueService) UpdateLeague(ctx context.Context, id int, input services.LeagueInput) (*models.League, error) {
	return s.update(ctx, id, input)
}
func (s *stubLeagueService) DeleteLeague(ctx context.Context, id int) (*models.League, error) {
	return s.remove(ctx, id)
}

type stubClubService struct {
	create func(ctx context.Context, input services.ClubInput) (*models.Club, error)
	get    func(ctx context.Context, id int) (*models.Club, error)
}

func (s *stubClubService) ListClubs(ctx context.Context) ([]models.Club, error) {
	return []models.Club{}, nil
}
func (s *stubClubService) CreateClub(ctx context.Context, input services.ClubInput) (*models.Club, error) {
	return s.create(ctx, input)
}
func (s *stubClubService) GetClubByID(ctx context.Context, id int) (*models.Club, error) {
	return s.get(ctx, id)
}
func (s *stubClubService) UpdateClub(ctx context.Context, id int, input services.ClubInput) (*models.Club, error) {
	return nil, services.ErrClubNotFound
}
func (s *stubClubService) DeleteClub(ctx context.Context, id int) (*models.Club, error) {
	return nil, services.ErrClubNotFound
}

type stubPlayerService struct {
	create func(ctx context.Context, input services.PlayerInput) (*models.Player, error)
	update func(ctx context.Context, id int, input services.PlayerInput) (*models.Player, error)
	remove func(ctx context.Context, id int) (*models.Player, error)
}

func (s *stubPlayerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	return []models.Player{}, nil
}
func (s *stubPlayerService) CreatePlayer(ctx context.Context, input services.PlayerInput) (*models.Player, error) {
	return s.create(ctx, input)
}
func (s *stubPlayerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	return nil, services.ErrPlayerNotFound
}
func (s *stubPlayerService) UpdatePlayer(ctx context.Context, id int, input services.PlayerInput) (*models.Player, error) {
	return s.update(ctx, id, input)
}
func (s *stubPlayerService) DeletePlayer(ctx context.Context, id int) (*models.Player, error) {
	return s.remove(ctx, id)
}

type stubFanService struct {
	list   func(ctx context.Context) ([]models.Fan, error)
	create func(ctx context.Context, input services.FanInput) (*models.Fan, error)
	update func(ctx context.Context, id int, input services.FanInput) (*models.Fan, error)
	remove func(ctx context.Context, id int) (*models.Fan, error)
}

func (s *stubFanService) ListFans(ctx context.Context) ([]models.Fan, error) {
	return s.list(ctx)
}
func (s *stubFanService) CreateFan(ctx context.Context, input services.FanInput) (*models.Fan, error) {
	return s.create(ctx, input)
}
func (s *stubFanService) GetFanByID(ctx context.Context, id int) (*models.Fan, error) {
	return nil, services.ErrFanNotFound
}
func (s *stubFanService) UpdateFan(ctx context.Context, id int, input services.FanInput) (*models.Fan, error) {
	return s.update(ctx, id, input)
}
func (s *stubFanService) DeleteFan(ctx context.Context, id int) (*models.Fan, error) {
	return s.remove(ctx, id)
}

type decodedEnvelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

// serve routes a single request through a chi router so URL params resolve.
func serve(t *testing.T, method, pattern string, h http.HandlerFunc, req *http.Request) (*httptest.ResponseRecorder, decodedEnvelope) {
	t.Helper()
	router := chi.NewRouter()
	router.MethodFunc(method, pattern, h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env decodedEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func jsonRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}
