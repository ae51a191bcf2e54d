package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/football-api/models"
	"github.com/Dosada05/football-api/repositories"
	"github.com/Dosada05/football-api/storage"
)

var errDB = errors.New("db is down")

type fakeLeagueRepo struct {
	mu      sync.Mutex
	leagues map[int]*models.League
	nextID  int
	inUse   map[int]bool
	err     error
}

func newFakeLeagueRepo(leagues ...models.League) *fakeLeagueRepo {
	r := &fakeLeagueRepo{leagues: map[int]*models.League{}, inUse: map[int]bool{}}
	for i := range leagues {
		l := leagues[i]
		r.leagues[l.ID] = &l
		if l.ID > r.nextID {
			r.nextID = l.ID
		}
	}
	return r
}

func (r *fakeLeagueRepo) Create(ctx context.Context, league *models.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, l := range r.leagues {
		if l.Name == league.Name {
			return repositories.ErrLeagueNameConflict
		}
	}
	r.nextID++
	league.ID = r.nextID
	league.CreatedAt = time.Now()
	league.UpdatedAt = league.CreatedAt
	stored := *league
	r.leagues[league.ID] = &stored
	return nil
}

func (r *fakeLeagueRepo) GetByID(ctx context.Context, id int) (*models.League, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leagues[id]
	if !ok {
		return nil, repositories.ErrLeagueNotFound
	}
	out := *l
	return &out, nil
}

func (r *fakeLeagueRepo) GetAll(ctx context.Context) ([]models.League, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]models.League, 0, len(r.leagues))
	for _, l := range r.leagues {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeLeagueRepo) Update(ctx context.Context, league *models.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	l, ok := r.leagues[league.ID]
	if !ok {
		return repositories.ErrLeagueNotFound
	}
	l.Name = league.Name
	l.Country = league.Country
	l.UpdatedAt = time.Now()
	league.CreatedAt = l.CreatedAt
	league.UpdatedAt = l.UpdatedAt
	return nil
}

func (r *fakeLeagueRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.leagues[id]; !ok {
		return repositories.ErrLeagueNotFound
	}
	if r.inUse[id] {
		return repositories.ErrLeagueInUse
	}
	delete(r.leagues, id)
	return nil
}

func (r *fakeLeagueRepo) ExistsByName(ctx context.Context, name string, excludeID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.leagues {
		if l.Name == name && l.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeClubRepo struct {
	mu      sync.Mutex
	clubs   map[int]*models.Club
	leagues *fakeLeagueRepo
	nextID  int
	err     error
}

func newFakeClubRepo(leagues *fakeLeagueRepo, clubs ...models.Club) *fakeClubRepo {
	r := &fakeClubRepo{clubs: map[int]*models.Club{}, leagues: leagues}
	for i := range clubs {
		c := clubs[i]
		r.clubs[c.ID] = &c
		if c.ID > r.nextID {
			r.nextID = c.ID
		}
	}
	return r
}

func (r *fakeClubRepo) withLeague(c models.Club) models.Club {
	if r.leagues != nil {
		if l, err := r.leagues.GetByID(context.Background(), c.LeagueID); err == nil {
			c.League = l
		}
	}
	return c
}

func (r *fakeClubRepo) Create(ctx context.Context, club *models.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.nextID++
	club.ID = r.nextID
	club.CreatedAt = time.Now()
	club.UpdatedAt = club.CreatedAt
	stored := *club
	r.clubs[club.ID] = &stored
	return nil
}

func (r *fakeClubRepo) GetByID(ctx context.Context, id int) (*models.Club, error) {
	r.mu.Lock()
	c, ok := r.clubs[id]
	r.mu.Unlock()
	if !ok {
		return nil, repositories.ErrClubNotFound
	}
	out := r.withLeague(*c)
	return &out, nil
}

func (r *fakeClubRepo) GetAll(ctx context.Context) ([]models.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Club, 0, len(r.clubs))
	for _, c := range r.clubs {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeClubRepo) Update(ctx context.Context, club *models.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	c, ok := r.clubs[club.ID]
	if !ok {
		return repositories.ErrClubNotFound
	}
	club.CreatedAt = c.CreatedAt
	club.UpdatedAt = time.Now()
	stored := *club
	stored.League = nil
	r.clubs[club.ID] = &stored
	return nil
}

func (r *fakeClubRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clubs[id]; !ok {
		return repositories.ErrClubNotFound
	}
	delete(r.clubs, id)
	return nil
}

func (r *fakeClubRepo) ExistsByName(ctx context.Context, name string, excludeID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clubs {
		if c.Name == name && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeClubRepo) ExistingIDs(ctx context.Context, ids []int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := r.clubs[id]; ok {
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out, nil
}

type fakePlayerRepo struct {
	mu        sync.Mutex
	players   map[int]*models.Player
	nextID    int
	createErr error
	updateErr error
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: map[int]*models.Player{}}
}

func (r *fakePlayerRepo) Create(ctx context.Context, player *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	player.ID = r.nextID
	player.CreatedAt = time.Now()
	player.UpdatedAt = player.CreatedAt
	stored := *player
	r.players[player.ID] = &stored
	return nil
}

func (r *fakePlayerRepo) GetByID(ctx context.Context, id int) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	out := *p
	return &out, nil
}

func (r *fakePlayerRepo) GetAll(ctx context.Context) ([]models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakePlayerRepo) Update(ctx context.Context, player *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	p, ok := r.players[player.ID]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	player.CreatedAt = p.CreatedAt
	player.UpdatedAt = time.Now()
	stored := *player
	stored.PhotoURL = nil
	r.players[player.ID] = &stored
	return nil
}

func (r *fakePlayerRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

func (r *fakePlayerRepo) ExistsByName(ctx context.Context, name string, excludeID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.Name == name && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeFanRepo struct {
	mu     sync.Mutex
	fans   map[int]*models.Fan
	links  map[int]map[int]bool
	clubs  *fakeClubRepo
	nextID int

	attachCalls int
	detachCalls int
}

func newFakeFanRepo(clubs *fakeClubRepo) *fakeFanRepo {
	return &fakeFanRepo{fans: map[int]*models.Fan{}, links: map[int]map[int]bool{}, clubs: clubs}
}

func (r *fakeFanRepo) Create(ctx context.Context, exec repositories.SQLExecutor, fan *models.Fan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	fan.ID = r.nextID
	fan.CreatedAt = time.Now()
	fan.UpdatedAt = fan.CreatedAt
	r.fans[fan.ID] = &models.Fan{ID: fan.ID, Name: fan.Name, CreatedAt: fan.CreatedAt, UpdatedAt: fan.UpdatedAt}
	return nil
}

func (r *fakeFanRepo) GetByID(ctx context.Context, id int) (*models.Fan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.fans[id]
	if !ok {
		return nil, repositories.ErrFanNotFound
	}
	out := *f
	return &out, nil
}

func (r *fakeFanRepo) GetAll(ctx context.Context) ([]models.Fan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Fan, 0, len(r.fans))
	for _, f := range r.fans {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeFanRepo) Update(ctx context.Context, exec repositories.SQLExecutor, fan *models.Fan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.fans[fan.ID]
	if !ok {
		return repositories.ErrFanNotFound
	}
	f.Name = fan.Name
	f.UpdatedAt = time.Now()
	fan.CreatedAt = f.CreatedAt
	fan.UpdatedAt = f.UpdatedAt
	return nil
}

func (r *fakeFanRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.fans[id]; !ok {
		return repositories.ErrFanNotFound
	}
	delete(r.fans, id)
	return nil
}

func (r *fakeFanRepo) ListClubIDs(ctx context.Context, exec repositories.SQLExecutor, fanID int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int, 0)
	for id := range r.links[fanID] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (r *fakeFanRepo) AttachClubs(ctx context.Context, exec repositories.SQLExecutor, fanID int, clubIDs []int) error {
	if len(clubIDs) == 0 {
		return nil
	}
	existing, _ := r.clubs.ExistingIDs(ctx, clubIDs)
	if len(existing) != len(uniqueIDs(clubIDs)) {
		return repositories.ErrFanClubInvalid
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.attachCalls++
	if r.links[fanID] == nil {
		r.links[fanID] = map[int]bool{}
	}
	for _, id := range clubIDs {
		r.links[fanID][id] = true
	}
	return nil
}

func (r *fakeFanRepo) DetachClubs(ctx context.Context, exec repositories.SQLExecutor, fanID int, clubIDs []int) error {
	if len(clubIDs) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detachCalls++
	for _, id := range clubIDs {
		delete(r.links[fanID], id)
	}
	return nil
}

func (r *fakeFanRepo) DetachAllClubs(ctx context.Context, exec repositories.SQLExecutor, fanID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.links, fanID)
	return nil
}

func (r *fakeFanRepo) ListClubsByFan(ctx context.Context, fanIDs []int) (map[int][]models.Club, error) {
	r.mu.Lock()
	wanted := fanIDs
	if wanted == nil {
		for id := range r.links {
			wanted = append(wanted, id)
		}
	}
	linked := make(map[int][]int, len(wanted))
	for _, fanID := range wanted {
		for clubID := range r.links[fanID] {
			linked[fanID] = append(linked[fanID], clubID)
		}
	}
	r.mu.Unlock()

	out := make(map[int][]models.Club)
	for fanID, clubIDs := range linked {
		sort.Ints(clubIDs)
		for _, clubID := range clubIDs {
			c, err := r.clubs.GetByID(ctx, clubID)
			if err != nil {
				return nil, err
			}
			out[fanID] = append(out[fanID], *c)
		}
	}
	return out, nil
}

func (r *fakeFanRepo) linkedClubs(fanID int) []int {
	ids, _ := r.ListClubIDs(context.Background(), nil, fanID)
	return ids
}

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	m.calls++
	return fn(nil)
}

type fakeUploader struct {
	mu        sync.Mutex
	files     map[string][]byte
	types     map[string]string
	deleted   []string
	uploadErr error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{files: map[string][]byte{}, types: map[string]string{}}
}

func (u *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if u.uploadErr != nil {
		return nil, u.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.files[key] = data
	u.types[key] = contentType
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.files, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "http://cdn.test/" + key
}

func (u *fakeUploader) has(key string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, ok := u.files[key]
	return ok
}

func (u *fakeUploader) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.files)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Publish(resource, action string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, resource+"."+action)
}

func (n *recordingNotifier) recorded() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, make([]byte, 32)...)
	gifBytes  = append([]byte("GIF89a"), make([]byte, 32)...)
)

func photoUpload(name string, data []byte) *PhotoUpload {
	return &PhotoUpload{Filename: name, Size: int64(len(data)), Content: bytes.NewReader(data)}
}
