package service

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/pkg/utils"
)

var generatedSlug = regexp.MustCompile(`^(wedding|funeral)-[a-z0-9가-힣-]{0,20}-[0-9a-z]+$`)

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestCreateEvent_GeneratedSlug(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@example.com")

	titles := []string{"철수 ♥ 영희", "", "Our BIG day!!! at Seoul Grand Hall 2025", "故 홍길동", "###"}
	for _, title := range titles {
		event, err := env.events.CreateEvent(env.ctx, user.ID, models.EventInput{Type: models.EventTypeWedding, Title: title})
		if err != nil {
			t.Fatalf("CreateEvent(%q): %v", title, err)
		}
		if !generatedSlug.MatchString(event.URL) {
			t.Errorf("url %q does not match %s", event.URL, generatedSlug)
		}
		for _, r := range event.URL {
			if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '-' && !(r >= '가' && r <= '힣') {
				t.Errorf("url %q contains %q", event.URL, r)
			}
		}
	}
}

func TestCreateEvent_Defaults(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@example.com")

	event, err := env.events.CreateEvent(env.ctx, user.ID, models.EventInput{})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if event.Type != models.EventTypeWedding || event.Status != models.StatusDraft || event.Views != 0 {
		t.Errorf("defaults = type %s status %s views %d", event.Type, event.Status, event.Views)
	}
	if _, ok := event.Data.(*models.WeddingData); !ok {
		t.Errorf("data = %T, want *WeddingData", event.Data)
	}
	if event.ID == "" || event.UserID != user.ID {
		t.Errorf("identity = %q/%q", event.ID, event.UserID)
	}
	if !event.CreatedAt.Equal(env.clock.Now()) || !event.UpdatedAt.Equal(event.CreatedAt) {
		t.Errorf("timestamps = %v/%v", event.CreatedAt, event.UpdatedAt)
	}
}

func TestCreateEvent_Rejects(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@example.com")

	tests := []struct {
		name string
		in   models.EventInput
		want error
	}{
		{"unknown type", models.EventInput{Type: "birthday"}, models.ErrValidation},
		{"unknown status", models.EventInput{Status: "archived"}, models.ErrValidation},
		{"payload mismatch", models.EventInput{Type: models.EventTypeWedding, Data: models.NewFuneralDraft()}, models.ErrValidation},
		{"bad url", models.EventInput{URL: "Has Space"}, models.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.events.CreateEvent(env.ctx, user.ID, tt.in); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := env.events.CreateEvent(env.ctx, "", models.EventInput{}); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("anonymous create: err = %v", err)
	}
}

func TestCreateEvent_ExplicitURL(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@example.com")

	event, err := env.events.CreateEvent(env.ctx, user.ID, models.EventInput{URL: "철수-영희"})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if event.URL != "철수-영희" {
		t.Errorf("url = %q", event.URL)
	}
	_, err = env.events.CreateEvent(env.ctx, user.ID, models.EventInput{URL: "철수-영희"})
	if !errors.Is(err, models.ErrURLTaken) || !errors.Is(err, models.ErrValidation) {
		t.Fatalf("duplicate url: err = %v", err)
	}
}

func TestCreateEvent_SlugCollisionMovesForward(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@example.com")

	first, err := env.events.CreateEvent(env.ctx, user.ID, models.EventInput{Title: "같은 제목"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := env.events.CreateEvent(env.ctx, user.ID, models.EventInput{Title: "같은 제목"})
	if err != nil {
		t.Fatal(err)
	}
	if first.URL == second.URL {
		t.Fatalf("urls collide: %q", first.URL)
	}
	want := utils.GenerateSlug("wedding", "같은 제목", env.clock.Now().Add(time.Millisecond))
	if second.URL != want {
		t.Errorf("second url = %q, want %q", second.URL, want)
	}
}

func TestWeddingScenario(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@example.com")

	if _, err := env.events.CreateEvent(env.ctx, user.ID, models.EventInput{
		Type:  models.EventTypeWedding,
		Title: "철수 ♥ 영희",
		Date:  "2025-05-01",
		Data:  weddingData("철수", "영희", "2025-05-01"),
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	events, err := env.events.GetUserEvents(env.ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Title != "철수 ♥ 영희" || events[0].Date != "2025-05-01" {
		t.Errorf("event = %q on %q", events[0].Title, events[0].Date)
	}
	if !strings.HasPrefix(events[0].URL, "wedding-") {
		t.Errorf("url = %q, want wedding- prefix", events[0].URL)
	}
	if got := testutil.ToFloat64(env.metrics.EventsCreated.WithLabelValues("wedding")); got != 1 {
		t.Errorf("events created metric = %v", got)
	}
}

func TestFuneralScenario_DerivesAge(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@example.com")

	event, err := env.events.CreateEvent(env.ctx, user.ID, models.EventInput{
		Type: models.EventTypeFuneral,
		Data: funeralData("홍길동", "1950-03-15", "2025-01-15"),
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if event.Title != "故 홍길동" {
		t.Errorf("title = %q", event.Title)
	}
	stored, err := env.events.GetEventByID(env.ctx, event.ID)
	if err != nil {
		t.Fatal(err)
	}
	data := stored.Data.(*models.FuneralData)
	if data.Deceased.Age != 74 {
		t.Errorf("age = %d, want 74", data.Deceased.Age)
	}
	if !strings.HasPrefix(stored.URL, "funeral-") {
		t.Errorf("url = %q", stored.URL)
	}
}

func TestCreateThenGetByURL_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@example.com")

	for _, in := range []models.EventInput{
		{Type: models.EventTypeWedding, Data: weddingData("철수", "영희", "2025-05-01")},
		{Type: models.EventTypeFuneral, Status: models.StatusPublished, Data: funeralData("홍길동", "1950-03-15", "2025-01-15")},
	} {
		created, err := env.events.CreateEvent(env.ctx, user.ID, in)
		if err != nil {
			t.Fatal(err)
		}
		fetched, err := env.events.GetEventByURL(env.ctx, created.URL)
		if err != nil {
			t.Fatalf("GetEventByURL: %v", err)
		}
		if got, want := mustJSON(t, fetched), mustJSON(t, created); got != want {
			t.Errorf("round trip differs\n got %s\nwant %s", got, want)
		}
	}
}

func TestGetEvent_Missing(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.events.GetEventByID(env.ctx, "nope"); !errors.Is(err, models.ErrEventNotFound) {
		t.Errorf("GetEventByID: %v", err)
	}
	if _, err := env.events.GetEventByURL(env.ctx, "nope"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("GetEventByURL: %v", err)
	}
}

func TestUpdateEvent_NotFound(t *testing.T) {
	env := newTestEnv(t)
	title := "x"
	if _, err := env.events.UpdateEvent(env.ctx, "missing", models.EventUpdate{Title: &title}); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateEvent_ReplacesDataWholesale(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@example.com")
	original := weddingData("철수", "영희", "2025-05-01")
	original.Wedding.Venue.Name = "그랜드홀"
	event, err := env.events.CreateEvent(env.ctx, user.ID, models.EventInput{Title: "철수 ♥ 영희", Data: original})
	if err != nil {
		t.Fatal(err)
	}
	env.clock.Advance(time.Hour)

	partial := &models.WeddingData{Message: models.Message{Title: "새 인사말"}}
	title := "새 제목"
	updated, err := env.events.UpdateEvent(env.ctx, event.ID, models.EventUpdate{Title: &title, Data: partial})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}

	data := updated.Data.(*models.WeddingData)
	if data.Message.Title != "새 인사말" {
		t.Errorf("message title = %q", data.Message.Title)
	}
	if data.Couple.Groom.Name != "" || data.Wedding.Venue.Name != "" || data.Wedding.Date != "" {
		t.Errorf("data was merged, not replaced: %+v", data)
	}
	if updated.Title != "새 제목" || updated.Date != "2025-05-01" || updated.URL != event.URL {
		t.Errorf("envelope = %q %q %q", updated.Title, updated.Date, updated.URL)
	}
	if !updated.UpdatedAt.Equal(env.clock.Now()) || !updated.CreatedAt.Equal(event.CreatedAt) {
		t.Errorf("timestamps = %v/%v", updated.CreatedAt, updated.UpdatedAt)
	}

	stored, _ := env.events.GetEventByID(env.ctx, event.ID)
	if stored.Data.(*models.WeddingData).Couple.Groom.Name != "" {
		t.Error("stored data still carries the old couple")
	}
}

func TestUpdateEvent_Immutables(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@example.com")
	event, err := env.events.CreateEvent(env.ctx, user.ID, models.EventInput{})
	if err != nil {
		t.Fatal(err)
	}
	funeral := models.EventTypeFuneral
	url := "other-url"
	bad := models.EventStatus("archived")

	tests := []struct {
		name string
		upd  models.EventUpdate
	}{
		{"type", models.EventUpdate{Type: &funeral}},
		{"url", models.EventUpdate{URL: &url}},
		{"status", models.EventUpdate{Status: &bad}},
		{"payload type", models.EventUpdate{Data: models.NewFuneralDraft()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.events.UpdateEvent(env.ctx, event.ID, tt.upd); !errors.Is(err, models.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}

	same := event.URL
	wedding := models.EventTypeWedding
	if _, err := env.events.UpdateEvent(env.ctx, event.ID, models.EventUpdate{Type: &wedding, URL: &same}); err != nil {
		t.Errorf("unchanged type and url rejected: %v", err)
	}
}

func TestUpdateEvent_RederivesFuneralAge(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@example.com")
	event, err := env.events.CreateEvent(env.ctx, user.ID, models.EventInput{Type: models.EventTypeFuneral, Data: funeralData("홍길동", "1950-03-15", "2025-01-15")})
	if err != nil {
		t.Fatal(err)
	}
	updated, err := env.events.UpdateEvent(env.ctx, event.ID, models.EventUpdate{Data: funeralData("홍길동", "1960-01-01", "2025-01-15")})
	if err != nil {
		t.Fatal(err)
	}
	if age := updated.Data.(*models.FuneralData).Deceased.Age; age != 65 {
		t.Errorf("age = %d, want 65", age)
	}
}

func TestIncrementViews(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@example.com")

	if err := env.events.IncrementViews(env.ctx, "missing"); err != nil {
		t.Fatalf("missing id: %v", err)
	}

	event, err := env.events.CreateEvent(env.ctx, user.ID, models.EventInput{})
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 3; i++ {
		if err := env.events.IncrementViews(env.ctx, event.ID); err != nil {
			t.Fatal(err)
		}
		stored, _ := env.events.GetEventByID(env.ctx, event.ID)
		if stored.Views != i {
			t.Fatalf("views after %d calls = %d", i, stored.Views)
		}
	}
}

func TestIncrementViews_Concurrent(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@example.com")
	event, err := env.events.CreateEvent(env.ctx, user.ID, models.EventInput{})
	if err != nil {
		t.Fatal(err)
	}

	const n = 20
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() { errs <- env.events.IncrementViews(env.ctx, event.ID) }()
	}
	for i := 0; i < n; i++ {
		if err := <-errs; err != nil {
			t.Fatal(err)
		}
	}
	stored, _ := env.events.GetEventByID(env.ctx, event.ID)
	if stored.Views != n {
		t.Errorf("views = %d, want %d", stored.Views, n)
	}
}

func TestCheckUserOwnsEvent(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")
	other := env.register(t, "other@example.com")
	event, err := env.events.CreateEvent(env.ctx, owner.ID, models.EventInput{})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("owner", func(t *testing.T) {
		if ok, err := env.events.CheckUserOwnsEvent(env.ctx, owner.ID, event.ID); err != nil || !ok {
			t.Errorf("= %v, %v; want true", ok, err)
		}
	})
	t.Run("event not found", func(t *testing.T) {
		if ok, err := env.events.CheckUserOwnsEvent(env.ctx, owner.ID, "missing"); err != nil || ok {
			t.Errorf("= %v, %v; want false", ok, err)
		}
	})
	t.Run("belongs to another user", func(t *testing.T) {
		if ok, err := env.events.CheckUserOwnsEvent(env.ctx, other.ID, event.ID); err != nil || ok {
			t.Errorf("= %v, %v; want false", ok, err)
		}
	})
}

func TestOwnedMutations(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")
	other := env.register(t, "other@example.com")
	event, err := env.events.CreateEvent(env.ctx, owner.ID, models.EventInput{Title: "원래 제목"})
	if err != nil {
		t.Fatal(err)
	}
	title := "남의 제목"

	if _, err := env.events.UpdateOwnedEvent(env.ctx, other.ID, event.ID, models.EventUpdate{Title: &title}); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("update by other: %v", err)
	}
	if _, err := env.events.UpdateOwnedEvent(env.ctx, owner.ID, "missing", models.EventUpdate{Title: &title}); !errors.Is(err, models.ErrEventNotFound) {
		t.Errorf("update missing: %v", err)
	}
	if err := env.events.DeleteOwnedEvent(env.ctx, other.ID, event.ID); !errors.Is(err, models.ErrForbidden) {
		t.Errorf("delete by other: %v", err)
	}
	if err := env.events.DeleteOwnedEvent(env.ctx, owner.ID, "missing"); !errors.Is(err, models.ErrEventNotFound) {
		t.Errorf("delete missing: %v", err)
	}

	stored, _ := env.events.GetEventByID(env.ctx, event.ID)
	if stored.Title != "원래 제목" {
		t.Errorf("title changed to %q", stored.Title)
	}
	if err := env.events.DeleteOwnedEvent(env.ctx, owner.ID, event.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := env.events.GetEventByID(env.ctx, event.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("event survived delete: %v", err)
	}
}

func TestDeleteEvent_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "a@example.com")
	keep, _ := env.events.CreateEvent(env.ctx, user.ID, models.EventInput{Title: "keep"})
	drop, _ := env.events.CreateEvent(env.ctx, user.ID, models.EventInput{Title: "drop"})

	for i := 0; i < 2; i++ {
		if err := env.events.DeleteEvent(env.ctx, drop.ID); err != nil {
			t.Fatalf("DeleteEvent #%d: %v", i+1, err)
		}
	}
	if err := env.events.DeleteEvent(env.ctx, "never-existed"); err != nil {
		t.Fatalf("DeleteEvent missing: %v", err)
	}
	events, _ := env.events.GetUserEvents(env.ctx, user.ID)
	if len(events) != 1 || events[0].ID != keep.ID {
		t.Errorf("remaining = %+v", events)
	}
}

func TestGetPublicEvent(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")
	draft, _ := env.events.CreateEvent(env.ctx, owner.ID, models.EventInput{Title: "draft"})
	published, _ := env.events.CreateEvent(env.ctx, owner.ID, models.EventInput{Title: "live", Status: models.StatusPublished})

	if _, err := env.events.GetPublicEvent(env.ctx, models.EventTypeWedding, draft.URL, ""); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("anonymous draft read: %v", err)
	}
	if _, err := env.events.GetPublicEvent(env.ctx, models.EventTypeWedding, draft.URL, "someone-else"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("foreign draft read: %v", err)
	}
	got, err := env.events.GetPublicEvent(env.ctx, models.EventTypeWedding, draft.URL, owner.ID)
	if err != nil || got.Views != 0 {
		t.Errorf("owner draft read = %+v, %v", got, err)
	}

	if _, err := env.events.GetPublicEvent(env.ctx, models.EventTypeFuneral, published.URL, ""); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("wrong type path: %v", err)
	}
	got, err = env.events.GetPublicEvent(env.ctx, models.EventTypeWedding, published.URL, "")
	if err != nil || got.Views != 1 {
		t.Fatalf("public read = %+v, %v", got, err)
	}
	stored, _ := env.events.GetEventByID(env.ctx, published.ID)
	if stored.Views != 1 {
		t.Errorf("stored views = %d", stored.Views)
	}
	if v := testutil.ToFloat64(env.metrics.EventViews.WithLabelValues("wedding")); v != 1 {
		t.Errorf("views metric = %v", v)
	}
}

func TestPublishSendsNotice(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")
	event, _ := env.events.CreateEvent(env.ctx, owner.ID, models.EventInput{Title: "철수 ♥ 영희"})

	published := models.StatusPublished
	if _, err := env.events.UpdateEvent(env.ctx, event.ID, models.EventUpdate{Status: &published}); err != nil {
		t.Fatal(err)
	}
	mail := env.mailer.waitFor(t, "published")
	if mail.To != "owner@example.com" || !strings.Contains(mail.Subject, testBaseURL+"/wedding/"+event.URL) {
		t.Errorf("notice = %+v", mail)
	}
}

func TestAddCondolence(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")
	notice, _ := env.events.CreateEvent(env.ctx, owner.ID, models.EventInput{
		Type:   models.EventTypeFuneral,
		Status: models.StatusPublished,
		Data:   funeralData("홍길동", "1950-03-15", "2025-01-15"),
	})

	for _, name := range []string{"김조문", "이조문"} {
		c, err := env.events.AddCondolence(env.ctx, notice.URL, models.CondolenceRequest{Name: name, Message: "삼가 조의를 표합니다"})
		if err != nil {
			t.Fatalf("AddCondolence: %v", err)
		}
		if c.ID == "" || c.Name != name {
			t.Errorf("condolence = %+v", c)
		}
	}
	stored, _ := env.events.GetEventByID(env.ctx, notice.ID)
	data := stored.Data.(*models.FuneralData)
	if len(data.Condolences) != 2 || data.Statistics == nil || data.Statistics.CondolenceCount != 2 {
		t.Errorf("condolences = %d, stats = %+v", len(data.Condolences), data.Statistics)
	}

	if _, err := env.events.AddCondolence(env.ctx, notice.URL, models.CondolenceRequest{Name: "", Message: "x"}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("empty name: %v", err)
	}
	wedding, _ := env.events.CreateEvent(env.ctx, owner.ID, models.EventInput{Status: models.StatusPublished})
	if _, err := env.events.AddCondolence(env.ctx, wedding.URL, models.CondolenceRequest{Name: "a", Message: "b"}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("condolence on wedding: %v", err)
	}
}

func TestAddRSVP(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")

	open := weddingData("철수", "영희", "2025-05-01")
	open.RSVP.Deadline = "2025-01-20"
	openEvent, _ := env.events.CreateEvent(env.ctx, owner.ID, models.EventInput{Status: models.StatusPublished, Data: open})

	resp, err := env.events.AddRSVP(env.ctx, openEvent.URL, models.RSVPRequest{Name: "하객", Attending: true, Companions: 2})
	if err != nil {
		t.Fatalf("AddRSVP on deadline day: %v", err)
	}
	if !resp.Attending || resp.Companions != 2 {
		t.Errorf("response = %+v", resp)
	}
	stored, _ := env.events.GetEventByID(env.ctx, openEvent.ID)
	if stats := stored.Data.(*models.WeddingData).Statistics; stats == nil || stats.RSVPCount != 1 {
		t.Errorf("stats = %+v", stats)
	}

	env.clock.Advance(24 * time.Hour)
	if _, err := env.events.AddRSVP(env.ctx, openEvent.URL, models.RSVPRequest{Name: "늦은 하객"}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("after deadline: %v", err)
	}

	closed := weddingData("a", "b", "2025-05-01")
	closed.RSVP.Enabled = false
	closedEvent, _ := env.events.CreateEvent(env.ctx, owner.ID, models.EventInput{Status: models.StatusPublished, Data: closed})
	if _, err := env.events.AddRSVP(env.ctx, closedEvent.URL, models.RSVPRequest{Name: "하객"}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("disabled rsvp: %v", err)
	}

	if _, err := env.events.AddRSVP(env.ctx, openEvent.URL, models.RSVPRequest{Name: "x", Companions: -1}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("negative companions: %v", err)
	}
}

func TestAddGuestbookEntry(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")
	draft, _ := env.events.CreateEvent(env.ctx, owner.ID, models.EventInput{})
	live, _ := env.events.CreateEvent(env.ctx, owner.ID, models.EventInput{Status: models.StatusPublished})

	if _, err := env.events.AddGuestbookEntry(env.ctx, draft.URL, models.GuestbookRequest{Name: "a", Message: "축하해요"}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("guestbook on draft: %v", err)
	}
	if _, err := env.events.AddGuestbookEntry(env.ctx, live.URL, models.GuestbookRequest{Name: "a", Message: "축하해요"}); err != nil {
		t.Fatalf("AddGuestbookEntry: %v", err)
	}
	stored, _ := env.events.GetEventByID(env.ctx, live.ID)
	data := stored.Data.(*models.WeddingData)
	if len(data.Guestbook) != 1 || data.Statistics.GuestbookCount != 1 {
		t.Errorf("guestbook = %+v, stats = %+v", data.Guestbook, data.Statistics)
	}
}

func TestDeadlinePassed(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	tests := []struct {
		deadline string
		want     bool
	}{
		{"", false},
		{"not a date", false},
		{"2025-03-10", false},
		{"2025-03-11", false},
		{"2025-03-09", true},
	}
	for _, tt := range tests {
		if got := deadlinePassed(tt.deadline, now); got != tt.want {
			t.Errorf("deadlinePassed(%q) = %v, want %v", tt.deadline, got, tt.want)
		}
	}
}
