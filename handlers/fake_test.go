package handlers

import (
	"context"

	"github.com/Dosada05/courtside/models"
	"github.com/Dosada05/courtside/services"
)

type fakeTournamentService struct {
	tournaments map[int]*models.Tournament
	current     *models.Tournament
	err         error

	assigned struct {
		tournamentID, matchID int
		court                 string
	}
	finished services.FinishMatchInput
	created  services.CreateTournamentInput

	getCalls int
	onGet    func(call int) // runs inside GetTournament, before it returns
}

func (f *fakeTournamentService) CreateTournament(ctx context.Context, input services.CreateTournamentInput) (*models.Tournament, error) {
	f.created = input
	if f.err != nil {
		return nil, f.err
	}
	return f.tournaments[1], nil
}

func (f *fakeTournamentService) GetTournament(ctx context.Context, id int) (*models.Tournament, error) {
	f.getCalls++
	if f.onGet != nil {
		f.onGet(f.getCalls)
	}
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.tournaments[id]
	if !ok {
		return nil, services.ErrTournamentNotFound
	}
	return t, nil
}

func (f *fakeTournamentService) GetCurrent(ctx context.Context) (*models.Tournament, error) {
	if f.current == nil {
		return nil, services.ErrNoActiveTournament
	}
	return f.current, nil
}

func (f *fakeTournamentService) ListTournaments(ctx context.Context) ([]*models.Tournament, error) {
	out := make([]*models.Tournament, 0, len(f.tournaments))
	for _, t := range f.tournaments {
		out = append(out, t)
	}
	return out, f.err
}

func (f *fakeTournamentService) AssignMatch(ctx context.Context, tournamentID, matchID int, court string) (*models.Tournament, error) {
	f.assigned.tournamentID, f.assigned.matchID, f.assigned.court = tournamentID, matchID, court
	if f.err != nil {
		return nil, f.err
	}
	return f.tournaments[tournamentID], nil
}

func (f *fakeTournamentService) FinishMatch(ctx context.Context, tournamentID, matchID int, input services.FinishMatchInput) (*models.Tournament, error) {
	f.finished = input
	if f.err != nil {
		return nil, f.err
	}
	return f.tournaments[tournamentID], nil
}

func (f *fakeTournamentService) CompleteTournament(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	if f.err != nil {
		return nil, f.err
	}
	t := f.tournaments[tournamentID]
	t.Status = models.StatusCompleted
	return t, nil
}

type fakeSignupService struct {
	day       *models.SignupDay
	added     services.AddSignupInput
	checkedIn *bool
	err       error
}

func (f *fakeSignupService) ListSignups(ctx context.Context, date string) (*models.SignupDay, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.day, nil
}

func (f *fakeSignupService) ListCheckedIn(ctx context.Context, date string) ([]models.Signup, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Signup, 0)
	for _, su := range f.day.Signups {
		if su.CheckedIn {
			out = append(out, su)
		}
	}
	return out, nil
}

func (f *fakeSignupService) AddSignup(ctx context.Context, input services.AddSignupInput) (*models.Signup, error) {
	f.added = input
	if f.err != nil {
		return nil, f.err
	}
	return &models.Signup{ID: 1, Name: input.Name, TournamentDate: input.TournamentDate, Skill: models.DefaultSkill}, nil
}

func (f *fakeSignupService) SetCheckIn(ctx context.Context, signupID int, checkedIn bool) (*models.Signup, error) {
	f.checkedIn = &checkedIn
	if f.err != nil {
		return nil, f.err
	}
	return &models.Signup{ID: signupID, CheckedIn: checkedIn}, nil
}

func (f *fakeSignupService) SetSkill(ctx context.Context, signupID int, skill int) (*models.Signup, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Signup{ID: signupID, Skill: skill}, nil
}

func (f *fakeSignupService) SetSignupsClosed(ctx context.Context, date string, closed bool) error {
	return f.err
}

func (f *fakeSignupService) DuplicateSignups(ctx context.Context, fromDate, toDate string) (int, error) {
	return 3, f.err
}

type fakeAuthService struct {
	password string
}

func (f fakeAuthService) Login(ctx context.Context, input services.LoginInput) error {
	if input.Password != f.password {
		return services.ErrInvalidCredentials
	}
	return nil
}

type fakePlayerService struct {
	players  []*models.Player
	added    services.AddPlayerInput
	imported string
	err      error
}

func (f *fakePlayerService) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	return f.players, f.err
}

func (f *fakePlayerService) AddPlayer(ctx context.Context, input services.AddPlayerInput) (*models.Player, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.added = input
	return &models.Player{ID: 1, Name: input.Name, Rating: input.Rating, Notes: input.Notes}, nil
}

func (f *fakePlayerService) ImportPlayers(ctx context.Context, text string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.imported = text
	return 2, nil
}
