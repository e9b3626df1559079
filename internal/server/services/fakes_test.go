package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/recipebox/recipebox/internal/common"
	"github.com/recipebox/recipebox/internal/dbx"
	"github.com/recipebox/recipebox/internal/server/models"
	recipesrepo "github.com/recipebox/recipebox/internal/server/repositories/recipes"
	usersrepo "github.com/recipebox/recipebox/internal/server/repositories/users"
)

// In-memory fakes implementing the repository interfaces. They emulate the
// contracts the Postgres repositories guarantee (unique email, newest-first
// ordering, NotFound on missing rows) so service tests exercise real flows.

type fakeUsersRepo struct {
	seq   int
	users map[string]*models.User // by id
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: make(map[string]*models.User)}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return nil, common.ErrorDuplicateEmail
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("u-%d", f.seq)
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, id string, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	return nil
}

type fakeRecipesRepo struct {
	seq     int
	clock   time.Time
	recipes map[string]*models.Recipe
	users   *fakeUsersRepo // for author-name joins
}

func newFakeRecipesRepo(users *fakeUsersRepo) *fakeRecipesRepo {
	return &fakeRecipesRepo{
		clock:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		recipes: make(map[string]*models.Recipe),
		users:   users,
	}
}

func (f *fakeRecipesRepo) Create(ctx context.Context, r *models.Recipe) (*models.Recipe, error) {
	f.seq++
	r.ID = fmt.Sprintf("r-%d", f.seq)
	// distinct, strictly increasing creation times
	f.clock = f.clock.Add(time.Minute)
	r.CreatedAt = f.clock
	copied := *r
	f.recipes[r.ID] = &copied
	return r, nil
}

func (f *fakeRecipesRepo) annotate(r models.Recipe) *models.Recipe {
	if f.users != nil {
		if u, err := f.users.GetByID(context.Background(), r.UserID); err == nil {
			r.AuthorName = u.Username
		}
	}
	return &r
}

func (f *fakeRecipesRepo) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return f.annotate(*r), nil
}

func (f *fakeRecipesRepo) ListAll(ctx context.Context) ([]*models.Recipe, error) {
	var result []*models.Recipe
	for _, r := range f.recipes {
		result = append(result, f.annotate(*r))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakeRecipesRepo) ListByUser(ctx context.Context, userID string) ([]*models.Recipe, error) {
	var result []*models.Recipe
	for _, r := range f.recipes {
		if r.UserID == userID {
			copied := *r
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakeRecipesRepo) Update(ctx context.Context, r *models.Recipe) error {
	stored, ok := f.recipes[r.ID]
	if !ok {
		return common.ErrorNotFound
	}
	stored.Name = r.Name
	stored.Ingredients = r.Ingredients
	stored.Instructions = r.Instructions
	stored.Difficulty = r.Difficulty
	stored.Image = r.Image
	return nil
}

func (f *fakeRecipesRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.recipes[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.recipes, id)
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRecipesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	u := newFakeUsersRepo()
	return &fakeRepoManager{u: u, r: newFakeRecipesRepo(u)}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) Recipes(db dbx.DBTX) recipesrepo.Repository  { return m.r }
