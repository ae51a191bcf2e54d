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
	ErrClubCreationFailed = errors.New("failed to create club")
	ErrClubUpdateFailed   = errors.New("failed to update club")
	ErrClubDeleteFailed   = errors.New("failed to delete club")
)

type ClubService interface {
	ListClubs(ctx context.Context) ([]models.Club, error)
	CreateClub(ctx context.Context, input ClubInput) (*models.Club, error)
	GetClubByID(ctx context.Context, id int) (*models.Club, error)
	UpdateClub(ctx context.Context, id int, input ClubInput) (*models.Club, error)
	DeleteClub(ctx context.Context, id int) (*models.Club, error)
}

type ClubInput struct {
	Name      string  `json:"nama_klub" validate:"required,max=255"`
	FoundedOn string  `json:"tgl_berdiri" validate:"required,datetime=2006-01-02"`
	City      *string `json:"kota" validate:"omitempty,max=255"`
	LeagueID  int     `json:"id_liga" validate:"required,gt=0"`
}

func (in *ClubInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.FoundedOn = strings.TrimSpace(in.FoundedOn)
	if in.City != nil {
		city := strings.TrimSpace(*in.City)
		if city == "" {
			in.City = nil
		} else {
			in.City = &city
		}
	}
}

type clubService struct {
	clubRepo   repositories.ClubRepository
	leagueRepo repositories.LeagueRepository
	notifier   ChangeNotifier
}

func NewClubService(clubRepo repositories.ClubRepository, leagueRepo repositories.LeagueRepository, notifier ChangeNotifier) ClubService {
	return &clubService{
		clubRepo:   clubRepo,
		leagueRepo: leagueRepo,
		notifier:   notifierOrNoop(notifier),
	}
}

func (s *clubService) ListClubs(ctx context.Context) ([]models.Club, error) {
	clubs, err := s.clubRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all clubs: %w", err)
	}
	if clubs == nil {
		return []models.Club{}, nil
	}
	return clubs, nil
}

// checkReferences adds uniqueness and league errors to verr and returns the
// referenced league when it exists.
func (s *clubService) checkReferences(ctx context.Context, verr *ValidationError, input ClubInput, excludeID int) (*models.League, error) {
	if !verr.Has("nama_klub") {
		taken, err := s.clubRepo.ExistsByName(ctx, input.Name, excludeID)
		if err != nil {
			return nil, fmt.Errorf("failed to check club name: %w", err)
		}
		if taken {
			verr.Add("nama_klub", uniqueMessage("nama_klub"))
		}
	}

	if verr.Has("id_liga") {
		return nil, nil
	}
	league, err := s.leagueRepo.GetByID(ctx, input.LeagueID)
	if err != nil {
		if errors.Is(err, repositories.ErrLeagueNotFound) {
			verr.Add("id_liga", invalidSelectionMessage("id_liga"))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check club league: %w", err)
	}
	return league, nil
}

func mapClubWriteError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrClubNameConflict):
		return fieldError("nama_klub", uniqueMessage("nama_klub"))
	case errors.Is(err, repositories.ErrClubLeagueInvalid):
		return fieldError("id_liga", invalidSelectionMessage("id_liga"))
	}
	return nil
}

func (s *clubService) CreateClub(ctx context.Context, input ClubInput) (*models.Club, error) {
	input.normalize()
	verr := validateInput(&input)
	league, err := s.checkReferences(ctx, verr, input, 0)
	if err != nil {
		return nil, err
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	founded, err := models.ParseDate(input.FoundedOn)
	if err != nil {
		return nil, fieldError("tgl_berdiri", dateFormatMessage("tgl_berdiri"))
	}

	club := &models.Club{
		Name:      input.Name,
		FoundedOn: founded,
		City:      input.City,
		LeagueID:  input.LeagueID,
	}
	if err := s.clubRepo.Create(ctx, club); err != nil {
		if mapped := mapClubWriteError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: %w", ErrClubCreationFailed, err)
	}
	club.League = league

	s.notifier.Publish(ResourceClub, events.ActionCreated, club)
	return club, nil
}

func (s *clubService) GetClubByID(ctx context.Context, id int) (*models.Club, error) {
	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to get club by id %d: %w", id, err)
	}
	return club, nil
}

func (s *clubService) UpdateClub(ctx context.Context, id int, input ClubInput) (*models.Club, error) {
	input.normalize()
	verr := validateInput(&input)
	if err := verr.Err(); err != nil {
		return nil, err
	}
	if _, err := s.GetClubByID(ctx, id); err != nil {
		return nil, err
	}
	league, err := s.checkReferences(ctx, verr, input, id)
	if err != nil {
		return nil, err
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	founded, err := models.ParseDate(input.FoundedOn)
	if err != nil {
		return nil, fieldError("tgl_berdiri", dateFormatMessage("tgl_berdiri"))
	}

	club := &models.Club{
		ID:        id,
		Name:      input.Name,
		FoundedOn: founded,
		City:      input.City,
		LeagueID:  input.LeagueID,
	}
	if err := s.clubRepo.Update(ctx, club); err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		if mapped := mapClubWriteError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrClubUpdateFailed, id, err)
	}
	club.League = league

	s.notifier.Publish(ResourceClub, events.ActionUpdated, club)
	return club, nil
}

func (s *clubService) DeleteClub(ctx context.Context, id int) (*models.Club, error) {
	club, err := s.GetClubByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.clubRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrClubDeleteFailed, id, err)
	}

	s.notifier.Publish(ResourceClub, events.ActionDeleted, deletedPayload{ID: id})
	return club, nil
}
