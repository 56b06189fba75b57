package service

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sefazor/maeum-backend/internal/metrics"
	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/internal/repository"
	"github.com/sefazor/maeum-backend/internal/session"
	jwtPkg "github.com/sefazor/maeum-backend/pkg/jwt"
	"github.com/sefazor/maeum-backend/pkg/kvstore"
	"github.com/sefazor/maeum-backend/pkg/qrcode"
	"github.com/sefazor/maeum-backend/pkg/utils"
	"go.uber.org/zap"
)

const testBaseURL = "https://maeum.example"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type sentMail struct {
	Template string
	To       string
	Subject  string
}

type fakeMailer struct {
	sent chan sentMail
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan sentMail, 16)}
}

func (m *fakeMailer) SendWelcomeEmail(email, name string) error {
	m.record(sentMail{Template: "welcome", To: email, Subject: name})
	return nil
}

func (m *fakeMailer) SendPublishedEmail(email, title, link string) error {
	m.record(sentMail{Template: "published", To: email, Subject: title + " " + link})
	return nil
}

func (m *fakeMailer) record(mail sentMail) {
	select {
	case m.sent <- mail:
	default:
	}
}

func (m *fakeMailer) wait(t *testing.T) sentMail {
	t.Helper()
	select {
	case mail := <-m.sent:
		return mail
	case <-time.After(2 * time.Second):
		t.Fatal("no mail sent")
		return sentMail{}
	}
}

// waitFor skips other mail until one rendered from template arrives.
func (m *fakeMailer) waitFor(t *testing.T, template string) sentMail {
	t.Helper()
	for {
		if mail := m.wait(t); mail.Template == template {
			return mail
		}
	}
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	err     error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *fakeStorage) Upload(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	if s.err != nil {
		return s.err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = buf.Bytes()
	s.types[key] = contentType
	return nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *fakeStorage) PublicURL(key string) string {
	return "https://cdn.example/" + key
}

type testEnv struct {
	ctx     context.Context
	backend *kvstore.MemoryBackend
	clock   *fakeClock
	mailer  *fakeMailer
	storage *fakeStorage
	metrics *metrics.Metrics

	auth   *AuthService
	users  *UserService
	events *EventService
	share  *ShareService
	media  *MediaService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	backend := kvstore.NewMemoryBackend()
	userRepo := repository.NewKVUserRepository(backend)
	eventRepo := repository.NewKVEventRepository(backend)

	tokens, err := jwtPkg.NewManager("test-secret", "maeum-test", time.Hour)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	clock := newFakeClock()
	mailer := newFakeMailer()
	store := newFakeStorage()
	m := metrics.New()
	validator := utils.NewValidator()
	logger := zap.NewNop()

	env := &testEnv{
		ctx:     context.Background(),
		backend: backend,
		clock:   clock,
		mailer:  mailer,
		storage: store,
		metrics: m,
		auth:    NewAuthService(userRepo, tokens, validator, mailer, m, logger),
		users:   NewUserService(userRepo, validator),
		events:  NewEventService(eventRepo, userRepo, validator, mailer, m, logger, testBaseURL),
		share:   NewShareService(qrcode.NewQRService(), testBaseURL),
		media:   NewMediaService(eventRepo, store, logger),
	}
	env.auth.now = clock.Now
	env.users.now = clock.Now
	env.events.now = clock.Now
	return env
}

// session returns a fresh single-slot session over the env's backend.
func (e *testEnv) session() session.Store {
	return session.NewLocalStore(e.backend)
}

func (e *testEnv) register(t *testing.T, email string) *models.User {
	t.Helper()
	resp, err := e.auth.Register(e.ctx, e.session(), models.RegisterRequest{
		Email:    email,
		Password: "secret1",
		Name:     "테스터",
		Phone:    "010-0000-0000",
	})
	if err != nil {
		t.Fatalf("Register(%s): %v", email, err)
	}
	e.mailer.waitFor(t, "welcome")
	return &resp.User
}

func weddingData(groom, bride, date string) *models.WeddingData {
	d := models.NewWeddingDraft()
	d.Couple.Groom.Name = groom
	d.Couple.Bride.Name = bride
	d.Wedding.Date = date
	return d
}

func funeralData(name, birth, death string) *models.FuneralData {
	d := models.NewFuneralDraft()
	d.Deceased.Name = name
	d.Deceased.BirthDate = birth
	d.Deceased.DeathDate = death
	return d
}
