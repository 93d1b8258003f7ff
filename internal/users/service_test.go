package users

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bluething/boostpo/internal/shared"
)

type memoryUserRepo struct {
	users  map[int64]User
	nextID int64
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[int64]User)}
}

func (r *memoryUserRepo) List(ctx context.Context, req shared.PageRequest) ([]User, int64, error) {
	var all []User
	for _, user := range r.users {
		all = append(all, user)
	}
	return all, int64(len(all)), nil
}

func (r *memoryUserRepo) Get(ctx context.Context, id int64) (User, error) {
	user, ok := r.users[id]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	return user, nil
}

func (r *memoryUserRepo) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	for _, user := range r.users {
		if user.Email == email && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryUserRepo) Create(ctx context.Context, user User) (User, error) {
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return user, nil
}

func (r *memoryUserRepo) Update(ctx context.Context, user User) error {
	if _, ok := r.users[user.ID]; !ok {
		return shared.ErrNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, nil, slog.New(slog.DiscardHandler))
}

func TestCreateUser(t *testing.T) {
	svc := newTestService(newMemoryUserRepo())

	user, err := svc.Create(context.Background(), CreateUserInput{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Actor: "alice",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "Ada Lovelace", user.FullName())
	require.Equal(t, "alice", user.CreatedBy)
	require.Equal(t, "alice", user.UpdatedBy)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := newTestService(newMemoryUserRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateUserInput{FirstName: "Adeline", LastName: "King", Email: "ada@example.com"})
	require.ErrorIs(t, err, shared.ErrDuplicate)
	require.Contains(t, err.Error(), "ada@example.com")
}

func TestCreateUserValidation(t *testing.T) {
	svc := newTestService(newMemoryUserRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserInput{FirstName: " ", LastName: "L", Email: "a@b.c"})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Create(ctx, CreateUserInput{FirstName: "A", LastName: "L", Email: ""})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdateUserIsPartialMerge(t *testing.T) {
	svc := newTestService(newMemoryUserRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateUserInput{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Phone: "555-0100", Actor: "alice",
	})
	require.NoError(t, err)

	phone := "555-0199"
	updated, err := svc.Update(ctx, created.ID, UpdateUserInput{Phone: &phone, Actor: "bob"})
	require.NoError(t, err)
	require.Equal(t, "555-0199", updated.Phone)
	// nil fields keep stored values
	require.Equal(t, "Ada", updated.FirstName)
	require.Equal(t, "ada@example.com", updated.Email)
	require.Equal(t, "alice", updated.CreatedBy)
	require.Equal(t, "bob", updated.UpdatedBy)
}

func TestUpdateUserRejectsTakenEmail(t *testing.T) {
	svc := newTestService(newMemoryUserRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateUserInput{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"})
	require.NoError(t, err)

	taken := "ada@example.com"
	_, err = svc.Update(ctx, second.ID, UpdateUserInput{Email: &taken})
	require.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestUpdateUserKeepsOwnEmail(t *testing.T) {
	svc := newTestService(newMemoryUserRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateUserInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
	require.NoError(t, err)

	// re-submitting the current email is not a conflict
	same := "ada@example.com"
	_, err = svc.Update(ctx, created.ID, UpdateUserInput{Email: &same})
	require.NoError(t, err)
}

func TestUpdateUnknownUser(t *testing.T) {
	svc := newTestService(newMemoryUserRepo())

	name := "X"
	_, err := svc.Update(context.Background(), 42, UpdateUserInput{FirstName: &name})
	require.ErrorIs(t, err, shared.ErrNotFound)
	require.Contains(t, err.Error(), "42")
}

func TestDeleteUnknownUserRaisesNotFound(t *testing.T) {
	svc := newTestService(newMemoryUserRepo())

	err := svc.Delete(context.Background(), 42, "alice")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	svc := newTestService(newMemoryUserRepo())
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user.ID, "alice"))
	_, err = svc.Get(ctx, user.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}
