package service

import (
	"context"
	"fmt"

	"github.com/persoshop/persoshop-api/internal/core/domain"
	"github.com/persoshop/persoshop-api/internal/core/ports"
)

// In-memory stubs shared by the service tests. Each returns copies so
// tests cannot mutate stored state through returned pointers.

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int

	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) FindAdmin(_ context.Context) (*domain.User, error) {
	for _, u := range r.users {
		if u.Role == domain.RoleAdmin {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		r.nextID++
		copy.ID = fmt.Sprintf("user-%d", r.nextID)
	}
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) ListClients(_ context.Context) ([]*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == domain.RoleClient {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

type stubPhotoRepo struct {
	photos map[string]*domain.Photo
	nextID int
}

func newStubPhotoRepo() *stubPhotoRepo {
	return &stubPhotoRepo{photos: make(map[string]*domain.Photo)}
}

func (r *stubPhotoRepo) Create(_ context.Context, photo *domain.Photo) (*domain.Photo, error) {
	copy := *photo
	r.nextID++
	copy.ID = fmt.Sprintf("photo-%d", r.nextID)
	r.photos[copy.ID] = &copy
	result := copy
	return &result, nil
}

func (r *stubPhotoRepo) FindByID(_ context.Context, id string) (*domain.Photo, error) {
	if p, ok := r.photos[id]; ok {
		copy := *p
		return &copy, nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubPhotoRepo) ListByUser(_ context.Context, userID string) ([]*domain.Photo, error) {
	var out []*domain.Photo
	for _, p := range r.photos {
		if p.UserID == userID {
			copy := *p
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *stubPhotoRepo) CountByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, p := range r.photos {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *stubPhotoRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.photos[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.photos, id)
	return nil
}

type stubPropositionRepo struct {
	propositions map[string]*domain.Proposition
	nextID       int
}

func newStubPropositionRepo() *stubPropositionRepo {
	return &stubPropositionRepo{propositions: make(map[string]*domain.Proposition)}
}

func (r *stubPropositionRepo) Create(_ context.Context, p *domain.Proposition) (*domain.Proposition, error) {
	copy := *p
	r.nextID++
	copy.ID = fmt.Sprintf("prop-%d", r.nextID)
	r.propositions[copy.ID] = &copy
	result := copy
	return &result, nil
}

func (r *stubPropositionRepo) FindByID(_ context.Context, id string) (*domain.Proposition, error) {
	if p, ok := r.propositions[id]; ok {
		copy := *p
		return &copy, nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubPropositionRepo) ListByUser(_ context.Context, userID string) ([]*domain.Proposition, error) {
	var out []*domain.Proposition
	for _, p := range r.propositions {
		if p.UserID == userID {
			copy := *p
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *stubPropositionRepo) UpdateStatus(_ context.Context, id string, status domain.PropositionStatus) (*domain.Proposition, error) {
	p, ok := r.propositions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Status = status
	copy := *p
	return &copy, nil
}

func (r *stubPropositionRepo) CountByUserAndStatus(_ context.Context, userID string, status domain.PropositionStatus) (int64, error) {
	var n int64
	for _, p := range r.propositions {
		if p.UserID == userID && p.Status == status {
			n++
		}
	}
	return n, nil
}

type stubNotificationRepo struct {
	notifications []*domain.Notification
	nextID        int
	lastFilter    ports.NotificationFilter
	updateCalls   int

	listErr error
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{}
}

func (r *stubNotificationRepo) Insert(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	copy := *n
	r.nextID++
	copy.ID = fmt.Sprintf("notif-%d", r.nextID)
	r.notifications = append([]*domain.Notification{&copy}, r.notifications...)
	result := copy
	return &result, nil
}

func (r *stubNotificationRepo) FindByID(_ context.Context, id string) (*domain.Notification, error) {
	for _, n := range r.notifications {
		if n.ID == id {
			copy := *n
			return &copy, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubNotificationRepo) List(_ context.Context, filter ports.NotificationFilter) ([]*domain.Notification, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.lastFilter = filter

	var out []*domain.Notification
	for _, n := range r.notifications {
		if filter.UserID != "" && n.UserID != filter.UserID {
			continue
		}
		if filter.AdminOnly && n.AdminID == "" {
			continue
		}
		copy := *n
		out = append(out, &copy)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) UpdateRead(_ context.Context, id string, read bool) (*domain.Notification, error) {
	r.updateCalls++
	for _, n := range r.notifications {
		if n.ID == id {
			n.Read = read
			copy := *n
			return &copy, nil
		}
	}
	return nil, domain.ErrNotFound
}

type stubImageStore struct {
	uploads    []ports.ImageBlob
	deleted    []string
	nextID     int
	bgFails    bool
	uploadsErr error
}

func newStubImageStore() *stubImageStore {
	return &stubImageStore{}
}

func (s *stubImageStore) Upload(_ context.Context, blob ports.ImageBlob, folder string) (*ports.ImageUpload, error) {
	if s.uploadsErr != nil {
		return nil, s.uploadsErr
	}
	s.uploads = append(s.uploads, blob)
	s.nextID++
	key := fmt.Sprintf("%s/img-%d", folder, s.nextID)
	return &ports.ImageUpload{StorageID: key, URL: "https://img.test/" + key}, nil
}

func (s *stubImageStore) RemoveBackground(_ context.Context, storageID string) (string, error) {
	if s.bgFails {
		return "", fmt.Errorf("transform unavailable")
	}
	return "https://img.test/nobg/" + storageID, nil
}

func (s *stubImageStore) Delete(_ context.Context, storageID string) error {
	s.deleted = append(s.deleted, storageID)
	return nil
}

// stubNotifier records enqueued notifications without persistence.
type stubNotifier struct {
	enqueued []ports.EnqueueInput
	failNext bool
}

func (s *stubNotifier) Enqueue(_ context.Context, input ports.EnqueueInput) (*domain.Notification, error) {
	if s.failNext {
		s.failNext = false
		return nil, fmt.Errorf("enqueue unavailable")
	}
	s.enqueued = append(s.enqueued, input)
	return &domain.Notification{ID: fmt.Sprintf("notif-%d", len(s.enqueued))}, nil
}

func (s *stubNotifier) List(_ context.Context, _ ports.ListNotificationsInput) ([]*domain.Notification, error) {
	return nil, nil
}

func (s *stubNotifier) MarkRead(_ context.Context, _ string, _ bool) (*domain.Notification, error) {
	return nil, domain.ErrNotFound
}
