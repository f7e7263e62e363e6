package services

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

// --- shared helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// expectTx arms the mock for one successful dbx.WithTx round trip. The
// repositories are fakes, so only Begin/Commit reach the driver.
func expectTx(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectCommit()
}

// --- fake repository manager ---

type fakeRepoManager struct {
	users        usersrepo.Repository
	declarations declarationsrepo.Repository
	sessions     sessionsrepo.Repository
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (f *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository { return f.users }
func (f *fakeRepoManager) Declarations(dbx.DBTX) declarationsrepo.Repository {
	return f.declarations
}
func (f *fakeRepoManager) Sessions(dbx.DBTX) sessionsrepo.Repository { return f.sessions }

// --- fake users repository ---

type fakeUsersRepo struct {
	createErr  error
	created    *models.User
	nextID     int64
	byID       map[int64]*models.User
	byIDErr    error
	byEmail    map[string]*models.User
	byEmailErr error

	emailExists      bool
	emailExistsErr   error
	lastEmailQueried string
	lastExcludeID    int64

	docExists    bool
	docExistsErr error

	listOut  []*models.User
	listErr  error
	countOut int64
	countErr error

	lastOffset, lastLimit int

	updated   *models.User
	updateErr error

	pwID   int64
	pwHash string
	pwErr  error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = f.nextID
	f.created = u
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.lastEmailQueried = email
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	if u, ok := f.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	f.lastEmailQueried = email
	f.lastExcludeID = excludeID
	return f.emailExists, f.emailExistsErr
}

func (f *fakeUsersRepo) DocumentExists(ctx context.Context, numero string) (bool, error) {
	return f.docExists, f.docExistsErr
}

func (f *fakeUsersRepo) List(ctx context.Context, search string, offset, limit int) ([]*models.User, error) {
	f.lastOffset, f.lastLimit = offset, limit
	return f.listOut, f.listErr
}

func (f *fakeUsersRepo) Count(ctx context.Context, search string) (int64, error) {
	return f.countOut, f.countErr
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) (*models.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated = u
	return u, nil
}

func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	f.pwID, f.pwHash = id, hash
	return f.pwErr
}

// --- fake declarations repository ---

type fakeDeclarationsRepo struct {
	createErr error
	created   *models.Declaration
	nextID    int64

	listOut    []*models.Declaration
	listErr    error
	lastUserID int64
}

func (f *fakeDeclarationsRepo) Create(ctx context.Context, d *models.Declaration) (*models.Declaration, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	d.ID = f.nextID
	f.created = d
	return d, nil
}

func (f *fakeDeclarationsRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Declaration, error) {
	f.lastUserID = userID
	return f.listOut, f.listErr
}

// --- fake sessions repository ---

type fakeSessionsRepo struct {
	createErr error
	created   *models.Session

	sessions map[string]*models.Session
	getErr   error

	deleted   []string
	deleteErr error

	expiredCutoff time.Time
}

func (f *fakeSessionsRepo) Create(ctx context.Context, s *models.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = s
	if f.sessions == nil {
		f.sessions = map[string]*models.Session{}
	}
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeSessionsRepo) Get(ctx context.Context, id string) (*models.Session, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if s, ok := f.sessions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeSessionsRepo) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.sessions[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionsRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	f.expiredCutoff = now
	return nil
}
