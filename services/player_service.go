package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/Dosada05/football-api/events"
	"github.com/Dosada05/football-api/models"
	"github.com/Dosada05/football-api/repositories"
	"github.com/Dosada05/football-api/storage"
)

var (
	ErrPlayerCreationFailed = errors.New("failed to create player")
	ErrPlayerUpdateFailed   = errors.New("failed to update player")
	ErrPlayerDeleteFailed   = errors.New("failed to delete player")
	ErrPhotoUploadFailed    = errors.New("failed to store player photo")
)

type PlayerService interface {
	ListPlayers(ctx context.Context) ([]models.Player, error)
	CreatePlayer(ctx context.Context, input PlayerInput) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id int) (*models.Player, error)
	UpdatePlayer(ctx context.Context, id int, input PlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int) (*models.Player, error)
}

// PlayerInput holds the raw form values of a player request. Photo is
// required on create and optional on update.
type PlayerInput struct {
	Name        string       `json:"nama_pemain" validate:"required,max=255"`
	BirthDate   string       `json:"tgl_lahir" validate:"required,datetime=2006-01-02"`
	MarketPrice string       `json:"harga_pasar" validate:"required,number"`
	Position    string       `json:"posisi" validate:"required,oneof=gk df mf fw"`
	Country     string       `json:"negara" validate:"required,max=255"`
	Photo       *PhotoUpload `json:"-" validate:"-"`
}

func (in *PlayerInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.BirthDate = strings.TrimSpace(in.BirthDate)
	in.MarketPrice = strings.TrimSpace(in.MarketPrice)
	in.Position = strings.TrimSpace(in.Position)
	in.Country = strings.TrimSpace(in.Country)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	notifier   ChangeNotifier
	logger     *slog.Logger
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	uploader storage.FileUploader,
	notifier ChangeNotifier,
	logger *slog.Logger,
) PlayerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &playerService{
		playerRepo: playerRepo,
		uploader:   uploader,
		notifier:   notifierOrNoop(notifier),
		logger:     logger,
	}
}

func (s *playerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all players: %w", err)
	}
	if players == nil {
		return []models.Player{}, nil
	}
	for i := range players {
		populatePlayerPhotoURL(&players[i], s.uploader)
	}
	return players, nil
}

type playerFields struct {
	birthDate   models.Date
	marketPrice float64
	position    models.PlayerPosition
}

// parseFields converts the validated strings; it assumes validateInput passed
// for the fields it reads and reports anything the tags cannot express.
func parseFields(verr *ValidationError, input PlayerInput) playerFields {
	var f playerFields

	if !verr.Has("tgl_lahir") {
		d, err := models.ParseDate(input.BirthDate)
		if err != nil {
			verr.Add("tgl_lahir", dateFormatMessage("tgl_lahir"))
		}
		f.birthDate = d
	}
	if !verr.Has("harga_pasar") {
		price, msg := parsePrice(input.MarketPrice)
		if msg != "" {
			verr.Add("harga_pasar", msg)
		}
		f.marketPrice = price
	}
	f.position = models.PlayerPosition(input.Position)
	return f
}

// harga_pasar is stored as NUMERIC(15,2).
const (
	priceScale = 2
	maxPrice   = "9999999999999.99"
)

var maxPriceRat, _ = new(big.Rat).SetString(maxPrice)

// parsePrice returns the price and, when it cannot be stored exactly, the
// message for harga_pasar.
func parsePrice(raw string) (float64, string) {
	attr := attributeName("harga_pasar")

	if !numberPattern.MatchString(raw) {
		return 0, fmt.Sprintf("The %s field must be a number.", attr)
	}
	r, ok := new(big.Rat).SetString(raw)
	if !ok {
		return 0, fmt.Sprintf("The %s field must be a number.", attr)
	}
	if r.Sign() < 0 {
		return 0, fmt.Sprintf("The %s field must be at least 0.", attr)
	}
	if r.Cmp(maxPriceRat) > 0 {
		return 0, priceRangeMessage()
	}
	scaled := new(big.Rat).Mul(r, new(big.Rat).SetInt64(100))
	if !scaled.IsInt() {
		return 0, fmt.Sprintf("The %s field must have 0-%d decimal places.", attr, priceScale)
	}
	price, _ := r.Float64()
	return price, ""
}

func priceRangeMessage() string {
	return fmt.Sprintf("The %s field must not be greater than %s.", attributeName("harga_pasar"), maxPrice)
}

func (s *playerService) checkNameUnique(ctx context.Context, verr *ValidationError, name string, excludeID int) error {
	if verr.Has("nama_pemain") {
		return nil
	}
	taken, err := s.playerRepo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check player name: %w", err)
	}
	if taken {
		verr.Add("nama_pemain", uniqueMessage("nama_pemain"))
	}
	return nil
}

func (s *playerService) storePhoto(ctx context.Context, photo *checkedPhoto) (string, error) {
	key := newPhotoKey(photo.extension)
	if _, err := s.uploader.Upload(ctx, key, photo.contentType, photo.upload.Content); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPhotoUploadFailed, err)
	}
	return key, nil
}

// discardPhoto removes a stored photo; failures are logged only.
func (s *playerService) discardPhoto(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.uploader.Delete(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "failed to delete player photo", slog.String("key", key), slog.Any("error", err))
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, input PlayerInput) (*models.Player, error) {
	input.normalize()
	verr := validateInput(&input)
	fields := parseFields(verr, input)

	var photo *checkedPhoto
	if input.Photo == nil {
		verr.Add("foto", "The foto field is required.")
	} else {
		var err error
		photo, err = inspectPhoto(verr, input.Photo, createPhotoTypes, "jpeg, png, bmp, gif, svg, webp")
		if err != nil {
			return nil, err
		}
	}
	if err := s.checkNameUnique(ctx, verr, input.Name, 0); err != nil {
		return nil, err
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	key, err := s.storePhoto(ctx, photo)
	if err != nil {
		return nil, err
	}

	player := &models.Player{
		Name:        input.Name,
		PhotoKey:    key,
		BirthDate:   fields.birthDate,
		MarketPrice: fields.marketPrice,
		Position:    fields.position,
		Country:     input.Country,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		s.discardPhoto(ctx, key)
		switch {
		case errors.Is(err, repositories.ErrPlayerNameConflict):
			return nil, fieldError("nama_pemain", uniqueMessage("nama_pemain"))
		case errors.Is(err, repositories.ErrPlayerPriceRange):
			return nil, fieldError("harga_pasar", priceRangeMessage())
		}
		return nil, fmt.Errorf("%w: %w", ErrPlayerCreationFailed, err)
	}

	populatePlayerPhotoURL(player, s.uploader)
	s.notifier.Publish(ResourcePlayer, events.ActionCreated, player)
	return player, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player by id %d: %w", id, err)
	}
	populatePlayerPhotoURL(player, s.uploader)
	return player, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id int, input PlayerInput) (*models.Player, error) {
	input.normalize()
	verr := validateInput(&input)
	fields := parseFields(verr, input)

	var photo *checkedPhoto
	if input.Photo != nil {
		var err error
		photo, err = inspectPhoto(verr, input.Photo, updatePhotoTypes, "png, jpg")
		if err != nil {
			return nil, err
		}
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	existing, err := s.GetPlayerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkNameUnique(ctx, verr, input.Name, id); err != nil {
		return nil, err
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	player := &models.Player{
		ID:          id,
		Name:        input.Name,
		PhotoKey:    existing.PhotoKey,
		BirthDate:   fields.birthDate,
		MarketPrice: fields.marketPrice,
		Position:    fields.position,
		Country:     input.Country,
	}

	newKey := ""
	if photo != nil {
		newKey, err = s.storePhoto(ctx, photo)
		if err != nil {
			return nil, err
		}
		player.PhotoKey = newKey
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		s.discardPhoto(ctx, newKey)
		switch {
		case errors.Is(err, repositories.ErrPlayerNotFound):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrPlayerNameConflict):
			return nil, fieldError("nama_pemain", uniqueMessage("nama_pemain"))
		case errors.Is(err, repositories.ErrPlayerPriceRange):
			return nil, fieldError("harga_pasar", priceRangeMessage())
		default:
			return nil, fmt.Errorf("%w (id: %d): %w", ErrPlayerUpdateFailed, id, err)
		}
	}

	if newKey != "" && existing.PhotoKey != newKey {
		s.discardPhoto(ctx, existing.PhotoKey)
	}

	populatePlayerPhotoURL(player, s.uploader)
	s.notifier.Publish(ResourcePlayer, events.ActionUpdated, player)
	return player, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.GetPlayerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrPlayerDeleteFailed, id, err)
	}
	s.discardPhoto(ctx, player.PhotoKey)

	s.notifier.Publish(ResourcePlayer, events.ActionDeleted, deletedPayload{ID: id})
	return player, nil
}
