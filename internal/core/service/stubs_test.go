package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vidshare/platform/internal/core/domain"
	"github.com/vidshare/platform/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory store shared by the stub repositories
// ---------------------------------------------------------------------------

type memDB struct {
	mu       sync.Mutex
	seq      int
	users    map[string]*domain.User
	videos   map[string]*domain.Video
	comments map[string]*domain.Comment

	// failures injected by tests
	createVideoErr   error
	deleteByVideoErr error
	listCommentsErr  error
	incrementErr     error
}

func newMemDB() *memDB {
	return &memDB{
		users:    make(map[string]*domain.User),
		videos:   make(map[string]*domain.Video),
		comments: make(map[string]*domain.Comment),
	}
}

func (db *memDB) nextID(prefix string) string {
	db.seq++
	return fmt.Sprintf("%s%d", prefix, db.seq)
}

type stubUserRepo struct{ db *memDB }
type stubVideoRepo struct{ db *memDB }
type stubCommentRepo struct{ db *memDB }

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func cloneVideo(v *domain.Video) *domain.Video {
	c := *v
	return &c
}

func cloneComment(c *domain.Comment) *domain.Comment {
	cc := *c
	return &cc
}

func (r stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	c := cloneUser(u)
	c.ID = r.db.nextID("u")
	r.db.users[c.ID] = c
	return cloneUser(c), nil
}

func (r stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r stubUserRepo) List(_ context.Context, limit int) ([]*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*domain.User
	for _, u := range r.db.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r stubUserRepo) Update(_ context.Context, id string, upd domain.UserUpdate) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	for _, other := range r.db.users {
		if other.ID == id {
			continue
		}
		if (upd.Username != nil && other.Username == *upd.Username) || (upd.Email != nil && other.Email == *upd.Email) {
			return domain.ErrUserExists
		}
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	return nil
}

func (r stubUserRepo) SetRole(_ context.Context, id string, role domain.Role) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r stubUserRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.db.users, id)
	return nil
}

func (r stubVideoRepo) Create(_ context.Context, v *domain.Video) (*domain.Video, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.createVideoErr != nil {
		return nil, r.db.createVideoErr
	}
	c := cloneVideo(v)
	c.ID = r.db.nextID("v")
	r.db.videos[c.ID] = c
	return cloneVideo(c), nil
}

func (r stubVideoRepo) FindByID(_ context.Context, id string) (*domain.Video, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	v, ok := r.db.videos[id]
	if !ok {
		return nil, domain.ErrVideoNotFound
	}
	return cloneVideo(v), nil
}

// List applies the same filters the Mongo repository builds.
func (r stubVideoRepo) List(_ context.Context, f ports.VideoFilter) ([]*domain.Video, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*domain.Video
	for _, v := range r.db.videos {
		if f.OwnerID != "" && v.OwnerID != f.OwnerID {
			continue
		}
		if f.ExcludeID != "" && v.ID == f.ExcludeID {
			continue
		}
		if f.TitleContains != "" && !strings.Contains(strings.ToLower(v.Title), strings.ToLower(f.TitleContains)) {
			continue
		}
		out = append(out, cloneVideo(v))
	}
	switch f.Sort {
	case ports.SortNewest:
		sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	case ports.SortMostViewed:
		sort.Slice(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r stubVideoRepo) CountByOwner(_ context.Context, ownerID string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, v := range r.db.videos {
		if v.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r stubVideoRepo) Update(_ context.Context, id string, upd domain.VideoUpdate) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	v, ok := r.db.videos[id]
	if !ok {
		return domain.ErrVideoNotFound
	}
	if upd.Title != nil {
		v.Title = *upd.Title
	}
	if upd.Description != nil {
		v.Description = *upd.Description
	}
	return nil
}

func (r stubVideoRepo) SetCode(_ context.Context, id string, code string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	v, ok := r.db.videos[id]
	if !ok {
		return domain.ErrVideoNotFound
	}
	v.Code = code
	return nil
}

func (r stubVideoRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.videos[id]; !ok {
		return domain.ErrVideoNotFound
	}
	delete(r.db.videos, id)
	return nil
}

func (r stubVideoRepo) IncrementViews(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.incrementErr != nil {
		return r.db.incrementErr
	}
	v, ok := r.db.videos[id]
	if !ok {
		return domain.ErrVideoNotFound
	}
	v.Views++
	return nil
}

func (r stubCommentRepo) Create(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cc := cloneComment(c)
	cc.ID = r.db.nextID("c")
	r.db.comments[cc.ID] = cc
	return cloneComment(cc), nil
}

func (r stubCommentRepo) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	return cloneComment(c), nil
}

func (r stubCommentRepo) ListByVideo(_ context.Context, videoID string) ([]*domain.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.listCommentsErr != nil {
		return nil, r.db.listCommentsErr
	}
	var out []*domain.Comment
	for _, c := range r.db.comments {
		if c.VideoID == videoID {
			out = append(out, cloneComment(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r stubCommentRepo) List(_ context.Context, limit int) ([]*domain.Comment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*domain.Comment
	for _, c := range r.db.comments {
		out = append(out, cloneComment(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r stubCommentRepo) CountByAuthor(_ context.Context, author string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, c := range r.db.comments {
		if c.Author == author {
			n++
		}
	}
	return n, nil
}

func (r stubCommentRepo) UpdateText(_ context.Context, id string, text string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.comments[id]
	if !ok {
		return domain.ErrCommentNotFound
	}
	c.Text = text
	return nil
}

func (r stubCommentRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.db.comments, id)
	return nil
}

func (r stubCommentRepo) DeleteByVideo(_ context.Context, videoID string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.deleteByVideoErr != nil {
		return 0, r.db.deleteByVideoErr
	}
	var n int64
	for id, c := range r.db.comments {
		if c.VideoID == videoID {
			delete(r.db.comments, id)
			n++
		}
	}
	return n, nil
}

func (r stubCommentRepo) DeleteByAuthor(_ context.Context, author string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for id, c := range r.db.comments {
		if c.Author == author {
			delete(r.db.comments, id)
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Blob store, session store and view queue stubs
// ---------------------------------------------------------------------------

type stubBlobStore struct {
	mu        sync.Mutex
	blobs     map[string][]byte
	maxBytes  int64
	deleteErr error
	saveErr   error
	deleted   []string
}

func newStubBlobStore() *stubBlobStore {
	return &stubBlobStore{blobs: make(map[string][]byte), maxBytes: domain.MaxVideoBytes}
}

func (s *stubBlobStore) Save(_ context.Context, name string, content io.Reader) (int64, error) {
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	if _, err := domain.VideoExtension(name); err != nil {
		return 0, err
	}
	data, err := io.ReadAll(io.LimitReader(content, s.maxBytes+1))
	if err != nil {
		return 0, err
	}
	if int64(len(data)) > s.maxBytes {
		return 0, domain.ErrFileTooLarge
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[name] = data
	return int64(len(data)), nil
}

func (s *stubBlobStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, name)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.blobs, name)
	return nil
}

func (s *stubBlobStore) has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[name]
	return ok
}

func (s *stubBlobStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

type stubSessionStore struct {
	mu       sync.Mutex
	revoked  map[string]time.Duration
	checkErr error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{revoked: make(map[string]time.Duration)}
}

func (s *stubSessionStore) Revoke(_ context.Context, id string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[id] = ttl
	return nil
}

func (s *stubSessionStore) IsRevoked(_ context.Context, id string) (bool, error) {
	if s.checkErr != nil {
		return false, s.checkErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[id]
	return ok, nil
}

// syncViews applies increments inline so tests can observe them.
type syncViews struct {
	counter ports.ViewCounter
	full    bool
}

func (q *syncViews) Enqueue(videoID string) bool {
	if q.full {
		return false
	}
	_ = q.counter.IncrementViews(context.Background(), videoID)
	return true
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type fixture struct {
	db        *memDB
	users     stubUserRepo
	videos    stubVideoRepo
	comments  stubCommentRepo
	blobs     *stubBlobStore
	sessions  *stubSessionStore
	views     *syncViews
	lifecycle *Lifecycle
	auth      *AuthService
	userSvc   *UserService
	videoSvc  *VideoService
	comment   *CommentService
	admin     *AdminService
	clock     time.Time
}

func newFixture() *fixture {
	db := newMemDB()
	f := &fixture{
		db:       db,
		users:    stubUserRepo{db},
		videos:   stubVideoRepo{db},
		comments: stubCommentRepo{db},
		blobs:    newStubBlobStore(),
		sessions: newStubSessionStore(),
		clock:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	f.views = &syncViews{counter: f.videos}
	log := zerolog.Nop()

	f.lifecycle = NewLifecycle(f.users, f.videos, f.comments, f.blobs, f.sessions, f.views, log)
	f.lifecycle.now = f.now
	f.auth = NewAuthService(f.users, f.sessions, "test-secret", time.Hour, log)
	f.auth.cost = bcrypt.MinCost
	f.auth.now = f.now
	f.userSvc = NewUserService(f.users, f.videos, f.comments, f.lifecycle, log)
	f.videoSvc = NewVideoService(f.videos, f.comments, f.blobs, f.lifecycle, log)
	f.videoSvc.now = f.tick
	f.comment = NewCommentService(f.comments, f.videos, f.lifecycle, log)
	f.comment.now = f.tick
	f.admin = NewAdminService(f.users, f.videos, f.comments)
	return f
}

func (f *fixture) now() time.Time { return f.clock }

// tick advances the clock so consecutive records get distinct timestamps.
func (f *fixture) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

// register creates a user and returns a logged-in identity for it.
func (f *fixture) register(t *testing.T, username string, role domain.Role) *domain.Identity {
	t.Helper()
	ctx := context.Background()
	id, err := f.auth.Register(ctx, username, username+"@example.com", "pw-"+username)
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	if role != domain.RoleUser {
		if err := f.users.SetRole(ctx, id, role); err != nil {
			t.Fatalf("set role: %v", err)
		}
	}
	session, err := f.auth.Login(ctx, username, "pw-"+username)
	if err != nil {
		t.Fatalf("login %s: %v", username, err)
	}
	return session.Identity
}

func (f *fixture) upload(t *testing.T, actor *domain.Identity, title string) *domain.Video {
	t.Helper()
	v, err := f.videoSvc.Upload(context.Background(), actor, ports.UploadVideoInput{
		Title:        title,
		OriginalName: title + ".mp4",
		Content:      strings.NewReader("frames of " + title),
	})
	if err != nil {
		t.Fatalf("upload %s: %v", title, err)
	}
	return v
}

func (f *fixture) post(t *testing.T, actor *domain.Identity, videoID, text string) *domain.Comment {
	t.Helper()
	c, err := f.comment.Post(context.Background(), actor, videoID, text)
	if err != nil {
		t.Fatalf("post comment: %v", err)
	}
	return c
}

func ptr(s string) *string { return &s }

var errBoom = errors.New("boom")
