package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Dosada05/football-api/events"
	"github.com/Dosada05/football-api/models"
	"github.com/Dosada05/football-api/repositories"
	"golang.org/x/sync/errgroup"
)

var (
	ErrFanCreationFailed = errors.New("failed to create fan")
	ErrFanUpdateFailed   = errors.New("failed to update fan")
	ErrFanDeleteFailed   = errors.New("failed to delete fan")
)

type FanService interface {
	ListFans(ctx context.Context) ([]models.Fan, error)
	CreateFan(ctx context.Context, input FanInput) (*models.Fan, error)
	GetFanByID(ctx context.Context, id int) (*models.Fan, error)
	// UpdateFan renames the fan and synchronizes its clubs to exactly
	// input.Clubs.
	UpdateFan(ctx context.Context, id int, input FanInput) (*models.Fan, error)
	DeleteFan(ctx context.Context, id int) (*models.Fan, error)
}

type FanInput struct {
	Name  string `json:"nama_fan" validate:"required,max=255"`
	Clubs []int  `json:"klub" validate:"required,min=1,dive,gt=0"`
}

type fanService struct {
	fanRepo  repositories.FanRepository
	clubRepo repositories.ClubRepository
	txm      repositories.TxManager
	notifier ChangeNotifier
}

func NewFanService(
	fanRepo repositories.FanRepository,
	clubRepo repositories.ClubRepository,
	txm repositories.TxManager,
	notifier ChangeNotifier,
) FanService {
	return &fanService{
		fanRepo:  fanRepo,
		clubRepo: clubRepo,
		txm:      txm,
		notifier: notifierOrNoop(notifier),
	}
}

func (s *fanService) ListFans(ctx context.Context) ([]models.Fan, error) {
	var (
		fans  []models.Fan
		byFan map[int][]models.Club
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fans, err = s.fanRepo.GetAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		byFan, err = s.fanRepo.ListClubsByFan(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to get all fans: %w", err)
	}

	if fans == nil {
		return []models.Fan{}, nil
	}
	for i := range fans {
		fans[i].Clubs = clubsOrEmpty(byFan[fans[i].ID])
	}
	return fans, nil
}

func clubsOrEmpty(clubs []models.Club) []models.Club {
	if clubs == nil {
		return []models.Club{}
	}
	return clubs
}

// validate checks input and returns the deduplicated club ids.
func (s *fanService) validate(ctx context.Context, input *FanInput) ([]int, error) {
	input.Name = strings.TrimSpace(input.Name)
	verr := validateInput(input)
	if err := verr.Err(); err != nil {
		return nil, err
	}

	clubIDs := uniqueIDs(input.Clubs)
	existing, err := s.clubRepo.ExistingIDs(ctx, clubIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to check fan clubs: %w", err)
	}
	found := make(map[int]struct{}, len(existing))
	for _, id := range existing {
		found[id] = struct{}{}
	}
	for i, id := range input.Clubs {
		if _, ok := found[id]; !ok {
			key := "klub." + strconv.Itoa(i)
			verr.Add(key, invalidSelectionMessage(key))
		}
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	return clubIDs, nil
}

func (s *fanService) loadClubs(ctx context.Context, fan *models.Fan) error {
	byFan, err := s.fanRepo.ListClubsByFan(ctx, []int{fan.ID})
	if err != nil {
		return err
	}
	fan.Clubs = clubsOrEmpty(byFan[fan.ID])
	return nil
}

func mapFanClubError(err error) error {
	if errors.Is(err, repositories.ErrFanClubInvalid) {
		return fieldError("klub", invalidSelectionMessage("klub"))
	}
	return nil
}

func (s *fanService) CreateFan(ctx context.Context, input FanInput) (*models.Fan, error) {
	clubIDs, err := s.validate(ctx, &input)
	if err != nil {
		return nil, err
	}

	fan := &models.Fan{Name: input.Name}
	err = s.txm.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.fanRepo.Create(ctx, exec, fan); err != nil {
			return err
		}
		return s.fanRepo.AttachClubs(ctx, exec, fan.ID, clubIDs)
	})
	if err != nil {
		if mapped := mapFanClubError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: %w", ErrFanCreationFailed, err)
	}

	if err := s.loadClubs(ctx, fan); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFanCreationFailed, err)
	}

	s.notifier.Publish(ResourceFan, events.ActionCreated, fan)
	return fan, nil
}

func (s *fanService) GetFanByID(ctx context.Context, id int) (*models.Fan, error) {
	fan, err := s.fanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrFanNotFound) {
			return nil, ErrFanNotFound
		}
		return nil, fmt.Errorf("failed to get fan by id %d: %w", id, err)
	}
	if err := s.loadClubs(ctx, fan); err != nil {
		return nil, fmt.Errorf("failed to get clubs of fan %d: %w", id, err)
	}
	return fan, nil
}

func (s *fanService) UpdateFan(ctx context.Context, id int, input FanInput) (*models.Fan, error) {
	clubIDs, err := s.validate(ctx, &input)
	if err != nil {
		return nil, err
	}

	fan := &models.Fan{ID: id, Name: input.Name}
	err = s.txm.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.fanRepo.Update(ctx, exec, fan); err != nil {
			return err
		}
		current, err := s.fanRepo.ListClubIDs(ctx, exec, id)
		if err != nil {
			return err
		}
		toAdd, toRemove := diffIDs(current, clubIDs)
		if err := s.fanRepo.DetachClubs(ctx, exec, id, toRemove); err != nil {
			return err
		}
		return s.fanRepo.AttachClubs(ctx, exec, id, toAdd)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrFanNotFound) {
			return nil, ErrFanNotFound
		}
		if mapped := mapFanClubError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrFanUpdateFailed, id, err)
	}

	if err := s.loadClubs(ctx, fan); err != nil {
		return nil, fmt.Errorf("%w (id: %d): %w", ErrFanUpdateFailed, id, err)
	}

	s.notifier.Publish(ResourceFan, events.ActionUpdated, fan)
	return fan, nil
}

func (s *fanService) DeleteFan(ctx context.Context, id int) (*models.Fan, error) {
	fan, err := s.GetFanByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.txm.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.fanRepo.DetachAllClubs(ctx, exec, id); err != nil {
			return err
		}
		return s.fanRepo.Delete(ctx, exec, id)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrFanNotFound) {
			return nil, ErrFanNotFound
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrFanDeleteFailed, id, err)
	}

	s.notifier.Publish(ResourceFan, events.ActionDeleted, deletedPayload{ID: id})
	return fan, nil
}
