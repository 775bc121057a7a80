package service

import (
	"context"
	"errors"
	"time"

	"leadsdesk/internal/auth"
	"leadsdesk/internal/errs"
	"leadsdesk/internal/model"
	"leadsdesk/pkg/generic"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeUserRepo is an in-memory IUserRepository.
type fakeUserRepo struct {
	users map[primitive.ObjectID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*model.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, errs.ErrAlreadyExists
		}
	}
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (r *fakeUserRepo) FindByResetDigest(_ context.Context, digest string, now time.Time) (*model.User, error) {
	for _, u := range r.users {
		if u.ResetTokenHash == digest && u.ResetTokenExpiry.After(now) {
			return u, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (r *fakeUserRepo) Find(_ context.Context, filter bson.M, _ ...*options.FindOptions) ([]*model.User, error) {
	out := []*model.User{}
	for _, u := range r.users {
		if role, ok := filter["role"]; ok && u.Role != role {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	users, _ := r.Find(ctx, filter)
	return int64(len(users)), nil
}

func (r *fakeUserRepo) UpdateFields(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	u, ok := r.users[id]
	if !ok {
		return errs.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "passwordHash":
			u.PasswordHash = v.(string)
		case "permissions":
			u.Permissions = v.([]auth.Permission)
		case "resetTokenHash":
			u.ResetTokenHash = v.(string)
		case "resetTokenExpiry":
			u.ResetTokenExpiry = v.(time.Time)
		case "updatedAt":
			u.UpdatedAt = v.(time.Time)
		}
	}
	return nil
}

func (r *fakeUserRepo) ClearResetToken(_ context.Context, id primitive.ObjectID) error {
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	u.ResetTokenHash = ""
	u.ResetTokenExpiry = time.Time{}
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.users[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) EnsureIndexes(context.Context) error { return nil }

// memRepo is an in-memory generic.Repository used for owned resources.
// It honors createdBy scoping and createdAt lower bounds; sort options
// are ignored.
type memRepo[T generic.Owned] struct {
	items []T
}

func (r *memRepo[T]) Create(_ context.Context, entity T) (T, error) {
	entity.SetID(primitive.NewObjectID())
	entity.SetTimestamps(time.Now().UTC())
	r.items = append(r.items, entity)
	return entity, nil
}

func (r *memRepo[T]) FindByID(_ context.Context, id primitive.ObjectID) (T, error) {
	for _, it := range r.items {
		if it.GetID() == id {
			return it, nil
		}
	}
	var zero T
	return zero, errs.ErrNotFound
}

func (r *memRepo[T]) Find(_ context.Context, filter bson.M, _ ...*options.FindOptions) ([]T, error) {
	out := []T{}
	for _, it := range r.items {
		if owner, ok := filter["createdBy"]; ok && it.GetOwner() != owner {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *memRepo[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	items, _ := r.Find(ctx, filter)
	return int64(len(items)), nil
}

func (r *memRepo[T]) UpdateFields(_ context.Context, id primitive.ObjectID, _ bson.M) error {
	for _, it := range r.items {
		if it.GetID() == id {
			return nil
		}
	}
	return errs.ErrNotFound
}

func (r *memRepo[T]) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, it := range r.items {
		if it.GetID() == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

// fakeLeadRepo adds the email lookup over memRepo.
type fakeLeadRepo struct {
	memRepo[*model.Lead]
}

func (r *fakeLeadRepo) FindByEmail(_ context.Context, email string) (*model.Lead, error) {
	for _, l := range r.items {
		if l.Email == email {
			return l, nil
		}
	}
	return nil, errs.ErrNotFound
}

// fakeMailer records sends and can be made to fail.
type fakeMailer struct {
	sent    []string
	lastURL string
	err     error
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, to, _, resetURL string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	m.lastURL = resetURL
	return nil
}

var errSMTPDown = errors.New("smtp connection refused")
