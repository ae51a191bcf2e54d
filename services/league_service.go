package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/football-api/events"
	"github.com/Dosada05/football-api/models"
	"github.com/Dosada05/football-api/repositories"
)

var (
	ErrLeagueCreationFailed = errors.New("failed to create league")
	ErrLeagueUpdateFailed   = errors.New("failed to update league")
	ErrLeagueDeleteFailed   = errors.New("failed to delete league")
)

type LeagueService interface {
	ListLeagues(ctx context.Context) ([]models.League, error)
	CreateLeague(ctx context.Context, input LeagueInput) (*models.League, error)
	GetLeagueByID(ctx context.Context, id int) (*models.League, error)
	UpdateLeague(ctx context.Context, id int, input LeagueInput) (*models.League, error)
	// DeleteLeague returns the removed league so callers can name it.
	DeleteLeague(ctx context.Context, id int) (*models.League, error)
}

// LeagueInput is used for both create and update.
type LeagueInput struct {
	Name    string `json:"nama_liga" validate:"required,max=255"`
	Country string `json:"negara" validate:"required,max=255"`
}

func (in *LeagueInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Country = strings.TrimSpace(in.Country)
}

type leagueService struct {
	leagueRepo repositories.LeagueRepository
	notifier   ChangeNotifier
}

func NewLeagueService(leagueRepo repositories.LeagueRepository, notifier ChangeNotifier) LeagueService {
	return &leagueService{
		leagueRepo: leagueRepo,
		notifier:   notifierOrNoop(notifier),
	}
}

func (s *leagueService) ListLeagues(ctx context.Context) ([]models.League, error) {
	leagues, err := s.leagueRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all leagues: %w", err)
	}
	if leagues == nil {
		return []models.League{}, nil
	}
	return leagues, nil
}

// checkNameUnique adds a nama_liga error when another league already uses name.
func (s *leagueService) checkNameUnique(ctx context.Context, verr *ValidationError, name string, excludeID int) error {
	if verr.Has("nama_liga") {
		return nil
	}
	taken, err := s.leagueRepo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check league name: %w", err)
	}
	if taken {
		verr.Add("nama_liga", uniqueMessage("nama_liga"))
	}
	return nil
}

func (s *leagueService) CreateLeague(ctx context.Context, input LeagueInput) (*models.League, error) {
	input.normalize()
	verr := validateInput(&input)
	if err := s.checkNameUnique(ctx, verr, input.Name, 0); err != nil {
		return nil, err
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	league := &models.League{
		Name:    input.Name,
		Country: input.Country,
	}
	if err := s.leagueRepo.Create(ctx, league); err != nil {
		if errors.Is(err, repositories.ErrLeagueNameConflict) {
			return nil, fieldError("nama_liga", uniqueMessage("nama_liga"))
		}
		return nil, fmt.Errorf("%w: %w", ErrLeagueCreationFailed, err)
	}

	s.notifier.Publish(ResourceLeague, events.ActionCreated, league)
	return league, nil
}

func (s *leagueService) GetLeagueByID(ctx context.Context, id int) (*models.League, error) {
	league, err := s.leagueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrLeagueNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to get league by id %d: %w", id, err)
	}
	return league, nil
}

func (s *leagueService) UpdateLeague(ctx context.Context, id int, input LeagueInput) (*models.League, error) {
	input.normalize()
	verr := validateInput(&input)
	if err := verr.Err(); err != nil {
		return nil, err
	}
	if _, err := s.GetLeagueByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.checkNameUnique(ctx, verr, input.Name, id); err != nil {
		return nil, err
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	league := &models.League{
		ID:      id,
		Name:    input.Name,
		Country: input.Country,
	}
	if err := s.leagueRepo.Update(ctx, league); err != nil {
		switch {
		case errors.Is(err, repositories.ErrLeagueNotFound):
			return nil, ErrLeagueNotFound
		case errors.Is(err, repositories.ErrLeagueNameConflict):
			return nil, fieldError("nama_liga", uniqueMessage("nama_liga"))
		default:
			return nil, fmt.Errorf("%w (id: %d): %w", ErrLeagueUpdateFailed, id, err)
		}
	}

	s.notifier.Publish(ResourceLeague, events.ActionUpdated, league)
	return league, nil
}

func (s *leagueService) DeleteLeague(ctx context.Context, id int) (*models.League, error) {
	league, err := s.GetLeagueByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.leagueRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrLeagueNotFound):
			return nil, ErrLeagueNotFound
		case errors.Is(err, repositories.ErrLeagueInUse):
			return nil, ErrLeagueInUse
		default:
			return nil, fmt.Errorf("%w (id: %d): %w", ErrLeagueDeleteFailed, id, err)
		}
	}

	s.notifier.Publish(ResourceLeague, events.ActionDeleted, deletedPayload{ID: id})
	return league, nil
}
