package httpapi

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jdgomezdev/declaratax/internal/common"
	"github.com/jdgomezdev/declaratax/internal/dbx"
	"github.com/jdgomezdev/declaratax/internal/server/models"
	declarationsrepo "github.com/jdgomezdev/declaratax/internal/server/repositories/declarations"
	sessionsrepo "github.com/jdgomezdev/declaratax/internal/server/repositories/sessions"
	usersrepo "github.com/jdgomezdev/declaratax/internal/server/repositories/users"
)

// In-memory repositories for handler tests. Unlike the service-level fakes
// these behave like a tiny store so a whole login/use/logout flow can run
// through the real services.

type memStore struct {
	users        map[int64]*models.User
	nextUserID   int64
	declarations []*models.Declaration
	nextDeclID   int64
	sessions     map[string]*models.Session
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[int64]*models.User{},
		nextUserID: 1,
		nextDeclID: 1,
		sessions:   map[string]*models.Session{},
	}
}

func (m *memStore) addUser(u *models.User) *models.User {
	if u.ID == 0 {
		u.ID = m.nextUserID
	}
	if u.ID >= m.nextUserID {
		m.nextUserID = u.ID + 1
	}
	m.users[u.ID] = u
	return u
}

type memRepoManager struct{ store *memStore }

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *memRepoManager) Users(dbx.DBTX) usersrepo.Repository { return &memUsersRepo{m.store} }
func (m *memRepoManager) Declarations(dbx.DBTX) declarationsrepo.Repository {
	return &memDeclarationsRepo{m.store}
}
func (m *memRepoManager) Sessions(dbx.DBTX) sessionsrepo.Repository {
	return &memSessionsRepo{m.store}
}

type memUsersRepo struct{ s *memStore }

func (r *memUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	return r.s.addUser(u), nil
}

func (r *memUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (r *memUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.s.users {
		if u.CorreoElectronico == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsersRepo) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	for _, u := range r.s.users {
		if u.CorreoElectronico == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUsersRepo) DocumentExists(ctx context.Context, numero string) (bool, error) {
	for _, u := range r.s.users {
		if u.NumeroDocumento == numero {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUsersRepo) List(ctx context.Context, search string, offset, limit int) ([]*models.User, error) {
	all := r.sorted()
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memUsersRepo) Count(ctx context.Context, search string) (int64, error) {
	return int64(len(r.s.users)), nil
}

func (r *memUsersRepo) sorted() []*models.User {
	out := make([]*models.User, 0, len(r.s.users))
	for id := int64(1); id < r.s.nextUserID; id++ {
		if u, ok := r.s.users[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out
}

func (r *memUsersRepo) Update(ctx context.Context, u *models.User) (*models.User, error) {
	if _, ok := r.s.users[u.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return u, nil
}

func (r *memUsersRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	u, ok := r.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	return nil
}

type memDeclarationsRepo struct{ s *memStore }

func (r *memDeclarationsRepo) Create(ctx context.Context, d *models.Declaration) (*models.Declaration, error) {
	d.ID = r.s.nextDeclID
	r.s.nextDeclID++
	cp := *d
	r.s.declarations = append(r.s.declarations, &cp)
	return d, nil
}

func (r *memDeclarationsRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Declaration, error) {
	var out []*models.Declaration
	for _, d := range r.s.declarations {
		if d.UserID == userID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memSessionsRepo struct{ s *memStore }

func (r *memSessionsRepo) Create(ctx context.Context, session *models.Session) error {
	cp := *session
	r.s.sessions[session.ID] = &cp
	return nil
}

func (r *memSessionsRepo) Get(ctx context.Context, id string) (*models.Session, error) {
	if s, ok := r.s.sessions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (r *memSessionsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.s.sessions[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.sessions, id)
	return nil
}

func (r *memSessionsRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	for id, s := range r.s.sessions {
		if s.Expired(now) {
			delete(r.s.sessions, id)
		}
	}
	return nil
}

// newTxDB returns a DB whose driver accepts any number of transactions, for
// handler tests where the fakes hold the state and the tx itself is noise.
func newTxDB(t *testing.T) *sql.DB {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 32; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
