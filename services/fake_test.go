package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/courtside/models"
	"github.com/Dosada05/courtside/repositories"
	"github.com/Dosada05/courtside/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTxManager runs fn directly; failures are not rolled back.
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	m.calls++
	return fn(nil)
}

type fakePlayerRepo struct {
	players   []*models.Player
	createErr error
}

func (r *fakePlayerRepo) Create(ctx context.Context, p *models.Player) error {
	if r.createErr != nil {
		return r.createErr
	}
	p.ID = len(r.players) + 1
	r.players = append(r.players, p)
	return nil
}

func (r *fakePlayerRepo) CreateMany(ctx context.Context, exec repositories.SQLExecutor, names []string) (int, error) {
	for _, n := range names {
		if err := r.Create(ctx, &models.Player{Name: n}); err != nil {
			return 0, err
		}
	}
	return len(names), nil
}

func (r *fakePlayerRepo) List(ctx context.Context) ([]*models.Player, error) {
	out := append([]*models.Player(nil), r.players...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakePlayerRepo) Count(ctx context.Context) (int, error) {
	return len(r.players), nil
}

type fakeSignupRepo struct {
	signups []*models.Signup
	closed  map[string]bool
	listErr error
}

func newFakeSignupRepo() *fakeSignupRepo {
	return &fakeSignupRepo{closed: make(map[string]bool)}
}

// add is a test helper that registers a signup directly.
func (r *fakeSignupRepo) add(name, date string, checkedIn bool) *models.Signup {
	s := &models.Signup{
		ID:             len(r.signups) + 1,
		Name:           name,
		TournamentDate: date,
		Skill:          models.DefaultSkill,
		CheckedIn:      checkedIn,
	}
	r.signups = append(r.signups, s)
	return s
}

func (r *fakeSignupRepo) Create(ctx context.Context, s *models.Signup) error {
	s.ID = len(r.signups) + 1
	r.signups = append(r.signups, s)
	return nil
}

func (r *fakeSignupRepo) GetByID(ctx context.Context, id int) (*models.Signup, error) {
	for _, s := range r.signups {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repositories.ErrSignupNotFound
}

func (r *fakeSignupRepo) ListByDate(ctx context.Context, date string, checkedInOnly bool) ([]*models.Signup, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*models.Signup, 0)
	for _, s := range r.signups {
		if s.TournamentDate == date && (!checkedInOnly || s.CheckedIn) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSignupRepo) CountByDate(ctx context.Context, date string) (int, int, error) {
	total, checkedIn := 0, 0
	for _, s := range r.signups {
		if s.TournamentDate == date {
			total++
			if s.CheckedIn {
				checkedIn++
			}
		}
	}
	return total, checkedIn, nil
}

func (r *fakeSignupRepo) UpdateCheckIn(ctx context.Context, id int, checkedIn bool) error {
	for _, s := range r.signups {
		if s.ID == id {
			s.CheckedIn = checkedIn
			return nil
		}
	}
	return repositories.ErrSignupNotFound
}

func (r *fakeSignupRepo) UpdateSkill(ctx context.Context, id int, skill int) error {
	for _, s := range r.signups {
		if s.ID == id {
			s.Skill = skill
			return nil
		}
	}
	return repositories.ErrSignupNotFound
}

func (r *fakeSignupRepo) CopyToDate(ctx context.Context, exec repositories.SQLExecutor, fromDate, toDate string) (int, error) {
	src, _ := r.ListByDate(ctx, fromDate, false)
	for _, s := range src {
		r.add(s.Name, toDate, false).Skill = s.Skill
	}
	return len(src), nil
}

func (r *fakeSignupRepo) IsClosed(ctx context.Context, date string) (bool, error) {
	return r.closed[date], nil
}

func (r *fakeSignupRepo) SetClosed(ctx context.Context, date string, closed bool) error {
	r.closed[date] = closed
	return nil
}

type fakeTournamentRepo struct {
	mu          sync.Mutex
	tournaments map[int]*models.Tournament
	summaries   map[int][]byte
	nextID      int
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{
		tournaments: make(map[int]*models.Tournament),
		summaries:   make(map[int][]byte),
	}
}

// stored returns a copy so tests can compare against what the service got back.
func (r *fakeTournamentRepo) stored(id int) *models.Tournament {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tournaments[id]
	if !ok {
		return nil
	}
	return copyTournament(t)
}

func copyTournament(t *models.Tournament) *models.Tournament {
	cp := *t
	cp.Bracket = t.Bracket.Clone()
	cp.Courts = append([]string(nil), t.Courts...)
	cp.Log = append([]models.MatchLogEntry{}, t.Log...)
	return &cp
}

func (r *fakeTournamentRepo) Create(ctx context.Context, exec repositories.SQLExecutor, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.tournaments {
		if existing.Status == models.StatusActive && t.Status == models.StatusActive {
			return repositories.ErrTournamentActiveConflict
		}
	}
	r.nextID++
	t.ID = r.nextID
	t.CreatedAt = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	r.tournaments[t.ID] = copyTournament(t)
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int, forUpdate bool) (*models.Tournament, error) {
	if t := r.stored(id); t != nil {
		return t, nil
	}
	return nil, repositories.ErrTournamentNotFound
}

func (r *fakeTournamentRepo) GetActive(ctx context.Context) (*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tournaments {
		if t.Status == models.StatusActive {
			return copyTournament(t), nil
		}
	}
	return nil, repositories.ErrTournamentNotFound
}

func (r *fakeTournamentRepo) List(ctx context.Context) ([]*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		out = append(out, copyTournament(t))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *fakeTournamentRepo) UpdateState(ctx context.Context, exec repositories.SQLExecutor, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.tournaments[t.ID]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	existing.Bracket = t.Bracket.Clone()
	existing.Log = append([]models.MatchLogEntry{}, t.Log...)
	return nil
}

func (r *fakeTournamentRepo) Complete(ctx context.Context, exec repositories.SQLExecutor, id int, completedAt time.Time, summary []byte, summaryKey *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	existing.Status = models.StatusCompleted
	existing.CompletedAt = &completedAt
	existing.SummaryKey = summaryKey
	r.summaries[id] = summary
	return nil
}

func (r *fakeTournamentRepo) CountCompleted(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.tournaments {
		if t.Status == models.StatusCompleted {
			n++
		}
	}
	return n, nil
}

type fakeUploader struct {
	uploads map[string][]byte
	err     error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploads: make(map[string][]byte)}
}

func (u *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.uploads[key] = data
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	delete(u.uploads, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://files.example.com/" + key
}

type broadcast struct {
	room    string
	message interface{}
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []broadcast
}

func (n *fakeNotifier) BroadcastToRoom(roomID string, message interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, broadcast{room: roomID, message: message})
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

var errBoom = errors.New("boom")
