package helpers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/chaitali929/coremodeling/internal/models"
	"github.com/chaitali929/coremodeling/internal/repositories"
)

// MemoryDB backs the in-memory repositories. The Fail* fields inject store errors.
type MemoryDB struct {
	mu           sync.Mutex
	accounts     map[string]*models.Account
	applications []*models.Application
	divergences  []*models.CascadeDivergence
	clock        time.Time

	FailSync   error
	FailAppend error
	FailApply  error
	FailFind   error
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		accounts: make(map[string]*models.Account),
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Repositories returns the three repositories over db.
func (db *MemoryDB) Repositories() (repositories.AccountRepository, repositories.ApplicationRepository, repositories.DivergenceRepository) {
	return &MemoryAccounts{db: db}, &MemoryApplications{db: db}, &MemoryDivergences{db: db}
}

func (db *MemoryDB) SetFailSync(err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.FailSync = err
}

// tick hands out strictly increasing creation times.
func (db *MemoryDB) tick() time.Time {
	db.clock = db.clock.Add(time.Second)
	return db.clock
}

func (db *MemoryDB) stamp(b *models.BaseModel) {
	if b.ID == "" {
		b.ID = models.NewID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = db.tick()
	}
	b.UpdatedAt = b.CreatedAt
}

func cloneAccount(a *models.Account) *models.Account {
	c := *a
	c.Photos = append([]string(nil), a.Photos...)
	c.Videos = append([]string(nil), a.Videos...)
	if a.Status != nil {
		c.Status = models.StatusPtr(*a.Status)
	}
	if a.ProfilePic != nil {
		pic := *a.ProfilePic
		c.ProfilePic = &pic
	}
	return &c
}

// Account returns a copy of the stored account, or nil.
func (db *MemoryDB) Account(id string) *models.Account {
	db.mu.Lock()
	defer db.mu.Unlock()
	if a, ok := db.accounts[id]; ok {
		return cloneAccount(a)
	}
	return nil
}

// Applications returns copies of the account's applications in creation order.
func (db *MemoryDB) Applications(accountID string) []models.Application {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []models.Application
	for _, app := range db.applications {
		if app.AccountID == accountID {
			out = append(out, *app)
		}
	}
	return out
}

// Divergences returns copies of every recorded divergence.
func (db *MemoryDB) Divergences() []models.CascadeDivergence {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]models.CascadeDivergence, 0, len(db.divergences))
	for _, d := range db.divergences {
		out = append(out, *d)
	}
	return out
}

// =========================================================================
// Accounts
// =========================================================================

type MemoryAccounts struct {
	db *MemoryDB
}

func (r *MemoryAccounts) Create(ctx context.Context, account *models.Account) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.accounts {
		if strings.EqualFold(a.Email, account.Email) {
			return repositories.ErrEmailTaken
		}
	}
	r.db.stamp(&account.BaseModel)
	r.db.accounts[account.ID] = cloneAccount(account)
	return nil
}

func (r *MemoryAccounts) FindByID(ctx context.Context, id string) (*models.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.FailFind != nil {
		return nil, r.db.FailFind
	}
	a, ok := r.db.accounts[id]
	if !ok {
		return nil, repositories.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *MemoryAccounts) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.accounts {
		if strings.EqualFold(a.Email, email) {
			return cloneAccount(a), nil
		}
	}
	return nil, repositories.ErrAccountNotFound
}

func (r *MemoryAccounts) FindArtists(ctx context.Context, filter repositories.ArtistFilter) ([]models.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Account
	for _, a := range r.db.accounts {
		if a.Role != models.RoleArtist {
			continue
		}
		if filter.Status != nil && a.CurrentStatus() != *filter.Status {
			continue
		}
		out = append(out, *cloneAccount(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *MemoryAccounts) UpdateStatus(ctx context.Context, id string, status models.AccountStatus) (*models.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.accounts[id]
	if !ok {
		return nil, repositories.ErrAccountNotFound
	}
	a.Status = models.StatusPtr(status)
	a.UpdatedAt = r.db.tick()
	return cloneAccount(a), nil
}

func (r *MemoryAccounts) AppendMedia(ctx context.Context, id string, kind models.MediaKind, url string) (*models.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.FailAppend != nil {
		return nil, r.db.FailAppend
	}
	a, ok := r.db.accounts[id]
	if !ok {
		return nil, repositories.ErrAccountNotFound
	}
	if kind == models.MediaVideo {
		a.Videos = append(a.Videos, url)
	} else {
		a.Photos = append(a.Photos, url)
	}
	return cloneAccount(a), nil
}

func (r *MemoryAccounts) ApplyProfileChanges(ctx context.Context, id string, changes repositories.ProfileChanges) (*models.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.FailApply != nil {
		return nil, r.db.FailApply
	}
	a, ok := r.db.accounts[id]
	if !ok {
		return nil, repositories.ErrAccountNotFound
	}
	if email, ok := changes.Fields["email"].(string); ok {
		for otherID, other := range r.db.accounts {
			if otherID != id && strings.EqualFold(other.Email, email) {
				return nil, repositories.ErrEmailTaken
			}
		}
	}

	next := cloneAccount(a)
	for column, value := range changes.Fields {
		setColumn(next, column, value)
	}
	next.Photos = append(next.Photos, changes.Photos...)
	next.Videos = append(next.Videos, changes.Videos...)
	if changes.ProfilePic != nil {
		pic := *changes.ProfilePic
		next.ProfilePic = &pic
	}
	r.db.accounts[id] = next
	return cloneAccount(next), nil
}

func setColumn(a *models.Account, column string, value interface{}) {
	s, _ := value.(string)
	switch column {
	case "name":
		a.Name = s
	case "email":
		a.Email = s
	case "role":
		a.Role = models.AccountRole(s)
	case "identity":
		a.Identity = s
	case "contact":
		a.Contact = s
	case "gender":
		a.Gender = s
	case "dob":
		a.DOB = s
	case "city":
		a.City = s
	case "state":
		a.State = s
	case "country":
		a.Country = s
	case "language":
		a.Language = s
	case "description":
		a.Description = s
	}
}

// =========================================================================
// Applications
// =========================================================================

type MemoryApplications struct {
	db *MemoryDB
}

func (r *MemoryApplications) Create(ctx context.Context, application *models.Application) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.stamp(&application.BaseModel)
	c := *application
	r.db.applications = append(r.db.applications, &c)
	return nil
}

func (r *MemoryApplications) FindByAccount(ctx context.Context, accountID string) ([]models.Application, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.Application{}
	for i := len(r.db.applications) - 1; i >= 0; i-- {
		if app := r.db.applications[i]; app.AccountID == accountID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (r *MemoryApplications) SyncStatus(ctx context.Context, accountID string, status models.AccountStatus) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.FailSync != nil {
		return 0, r.db.FailSync
	}
	var n int64
	for _, app := range r.db.applications {
		if app.AccountID == accountID {
			app.Status = status
			n++
		}
	}
	return n, nil
}

// =========================================================================
// Divergences
// =========================================================================

type MemoryDivergences struct {
	db *MemoryDB
}

func (r *MemoryDivergences) Record(ctx context.Context, divergence *models.CascadeDivergence) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.stamp(&divergence.BaseModel)
	c := *divergence
	r.db.divergences = append(r.db.divergences, &c)
	return nil
}

func (r *MemoryDivergences) FindOpen(ctx context.Context, limit int) ([]models.CascadeDivergence, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.CascadeDivergence
	for _, d := range r.db.divergences {
		if d.ResolvedAt != nil {
			continue
		}
		out = append(out, *d)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *MemoryDivergences) MarkResolved(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, d := range r.db.divergences {
		if d.ID == id {
			now := r.db.tick()
			d.ResolvedAt = &now
		}
	}
	return nil
}

func (r *MemoryDivergences) RecordAttempt(ctx context.Context, id string, lastError string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, d := range r.db.divergences {
		if d.ID == id {
			d.Attempts++
			d.LastError = lastError
		}
	}
	return nil
}
