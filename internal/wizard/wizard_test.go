package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/internal/session"
	"github.com/sefazor/maeum-backend/pkg/kvstore"
)

type fakeSaver struct {
	created []models.EventInput
	updated []models.EventUpdate
	userIDs []string
	err     error
}

func (f *fakeSaver) CreateEvent(_ context.Context, userID string, in models.EventInput) (*models.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, in)
	f.userIDs = append(f.userIDs, userID)
	return &models.Event{ID: "evt-1", UserID: userID, Type: in.Type, Title: in.Title, Date: in.Date, Status: in.Status, Data: in.Data}, nil
}

func (f *fakeSaver) UpdateOwnedEvent(_ context.Context, userID, id string, upd models.EventUpdate) (*models.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated = append(f.updated, upd)
	f.userIDs = append(f.userIDs, userID)
	return &models.Event{ID: id, UserID: userID, Title: *upd.Title, Date: *upd.Date, Status: *upd.Status, Data: upd.Data}, nil
}

func signedIn(t *testing.T) session.Store {
	t.Helper()
	store := session.NewLocalStore(kvstore.NewMemoryBackend())
	err := store.Save(context.Background(), &models.Session{User: &models.User{ID: "user-1"}, Token: "tok"})
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func signedOut() session.Store {
	return session.NewLocalStore(kvstore.NewMemoryBackend())
}

func toLast[D models.EventData](t *testing.T, w *Wizard[D]) {
	t.Helper()
	for !w.IsLast() {
		if err := w.Next(); err != nil {
			t.Fatal(err)
		}
	}
}

func set[D models.EventData](t *testing.T, w *Wizard[D], label, value string) {
	t.Helper()
	for _, step := range w.Steps() {
		for _, f := range step.Fields {
			if f.Label == label {
				if err := f.Set(w.Draft(), value); err != nil {
					t.Fatalf("set %q: %v", label, err)
				}
				return
			}
		}
	}
	t.Fatalf("no field %q", label)
}

func TestStepCounts(t *testing.T) {
	if n := len(NewWedding(nil).Steps()); n != 6 {
		t.Errorf("wedding steps = %d, want 6", n)
	}
	if n := len(NewFuneral(nil).Steps()); n != 5 {
		t.Errorf("funeral steps = %d, want 5", n)
	}
}

func TestNavigation(t *testing.T) {
	w := NewWedding(nil)
	if w.Step() != 1 || w.Current().Title != "템플릿 선택" {
		t.Fatalf("start = %d %q", w.Step(), w.Current().Title)
	}
	if err := w.Prev(); !errors.Is(err, ErrFirstStep) {
		t.Errorf("Prev at 1: %v", err)
	}
	for want := 2; want <= 6; want++ {
		if err := w.Next(); err != nil {
			t.Fatalf("Next to %d: %v", want, err)
		}
		if w.Step() != want {
			t.Fatalf("step = %d, want %d", w.Step(), want)
		}
	}
	if err := w.Next(); !errors.Is(err, ErrLastStep) {
		t.Errorf("Next at 6: %v", err)
	}
	if w.Step() != 6 || w.Current().Title != "갤러리" {
		t.Errorf("end = %d %q", w.Step(), w.Current().Title)
	}
	if err := w.Prev(); err != nil || w.Step() != 5 {
		t.Errorf("Prev from 6: step %d, %v", w.Step(), err)
	}
}

func TestWeddingDraftDefaults(t *testing.T) {
	d := NewWedding(nil).Draft()
	if d.Template != models.WeddingTemplateModern || d.Couple.Groom.Order != "장남" || d.Couple.Bride.Order != "장녀" {
		t.Errorf("draft = %+v", d)
	}
	if d.Message.Title != "우리 결혼합니다" || d.RSVP == nil || !d.RSVP.Enabled {
		t.Errorf("message/rsvp = %+v %+v", d.Message, d.RSVP)
	}
	f := NewFuneral(nil).Draft()
	if f.Template != models.FuneralTemplateTraditional || f.Message.Title != "삼가 고인의 명복을 빕니다" {
		t.Errorf("funeral draft = %+v", f)
	}
}

func TestSave_OnlyOnLastStep(t *testing.T) {
	saver := &fakeSaver{}
	w := NewWedding(saver)
	if _, err := w.Save(context.Background(), signedIn(t)); !errors.Is(err, ErrNotLastStep) {
		t.Fatalf("Save at step 1: %v", err)
	}
	if len(saver.created) != 0 {
		t.Error("saved before the last step")
	}
}

func TestSave_RequiresSession(t *testing.T) {
	saver := &fakeSaver{}
	w := NewWedding(saver)
	toLast(t, w)
	if _, err := w.Save(context.Background(), signedOut()); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if w.Step() != 6 || len(saver.created) != 0 {
		t.Errorf("step %d, created %d", w.Step(), len(saver.created))
	}
}

func TestSave_CreatesThenUpdates(t *testing.T) {
	saver := &fakeSaver{}
	w := NewWedding(saver)
	set(t, w, "이름 (한글)", "철수") // first match is the groom
	w.Draft().Couple.Bride.Name = "영희"
	set(t, w, "날짜 (YYYY-MM-DD)", "2025-05-01")
	toLast(t, w)
	sess := signedIn(t)

	event, err := w.Save(context.Background(), sess)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(saver.created) != 1 {
		t.Fatalf("created = %d", len(saver.created))
	}
	in := saver.created[0]
	if in.Type != models.EventTypeWedding || in.Title != "철수 ♥ 영희" || in.Date != "2025-05-01" || in.Status != models.StatusPublished {
		t.Errorf("input = %+v", in)
	}
	if saver.userIDs[0] != "user-1" || w.EventID() != event.ID {
		t.Errorf("user %q, event id %q", saver.userIDs[0], w.EventID())
	}

	w.Draft().Couple.Bride.Name = "영순"
	if _, err := w.Save(context.Background(), sess); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if len(saver.created) != 1 || len(saver.updated) != 1 {
		t.Fatalf("created %d updated %d", len(saver.created), len(saver.updated))
	}
	if got := *saver.updated[0].Title; got != "철수 ♥ 영순" {
		t.Errorf("update title = %q", got)
	}
}

func TestSave_ErrorKeepsStep(t *testing.T) {
	saver := &fakeSaver{err: models.ErrStorageUnavailable}
	w := NewFuneral(saver)
	toLast(t, w)
	if _, err := w.Save(context.Background(), signedIn(t)); !errors.Is(err, models.ErrStorageUnavailable) {
		t.Fatalf("err = %v", err)
	}
	if w.Step() != 5 || w.EventID() != "" {
		t.Errorf("step %d, event id %q", w.Step(), w.EventID())
	}
}

func TestLoad_EditMode(t *testing.T) {
	saver := &fakeSaver{}
	w := NewFuneral(saver)

	if err := w.Load(&models.Event{ID: "w", Type: models.EventTypeWedding, Data: models.NewWeddingDraft()}); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("loading a wedding into the funeral form: %v", err)
	}

	data := models.NewFuneralDraft()
	data.Deceased.Name = "홍길동"
	data.Funeral.FuneralDate = "2025-01-17"
	if err := w.Load(&models.Event{ID: "evt-9", Type: models.EventTypeFuneral, Data: data}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	toLast(t, w)
	if _, err := w.Save(context.Background(), signedIn(t)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(saver.updated) != 1 || len(saver.created) != 0 {
		t.Fatalf("created %d updated %d", len(saver.created), len(saver.updated))
	}
	upd := saver.updated[0]
	if *upd.Title != "故 홍길동" || *upd.Date != "2025-01-17" {
		t.Errorf("update = %q on %q", *upd.Title, *upd.Date)
	}
}

func TestFuneralAgeFollowsDates(t *testing.T) {
	w := NewFuneral(nil)
	set(t, w, "생년월일 (YYYY-MM-DD)", "1950-03-15")
	if w.Draft().Deceased.Age != 0 {
		t.Errorf("age with one date = %d", w.Draft().Deceased.Age)
	}
	set(t, w, "별세일 (YYYY-MM-DD)", "2025-01-15")
	if w.Draft().Deceased.Age != 74 {
		t.Errorf("age = %d, want 74", w.Draft().Deceased.Age)
	}
	set(t, w, "생년월일 (YYYY-MM-DD)", "1950-01-01")
	if w.Draft().Deceased.Age != 75 {
		t.Errorf("age after edit = %d, want 75", w.Draft().Deceased.Age)
	}
}

func TestFieldParsing(t *testing.T) {
	w := NewFuneral(nil)
	f := w.Steps()[0].Fields[1] // birth date
	if err := f.Set(w.Draft(), "15/03/1950"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("bad date: %v", err)
	}
	set(t, w, "기타 상주 (이름:관계:연락처, ...)", "김철수:장남:010-1111-2222, 김영희:장녀:010-3333-4444")
	if got := w.Draft().Mourners; len(got) != 2 || got[1].Relation != "장녀" {
		t.Errorf("mourners = %+v", got)
	}
	mourners := w.Steps()[1].Fields[3]
	if got := mourners.Get(w.Draft()); got != "김철수:장남:010-1111-2222, 김영희:장녀:010-3333-4444" {
		t.Errorf("mourners rendered as %q", got)
	}
	if err := mourners.Set(w.Draft(), "missing-columns"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("malformed record: %v", err)
	}
	if err := w.Steps()[0].Fields[3].Set(w.Draft(), "Buddhist"); err != nil || w.Draft().Deceased.Religion != models.ReligionBuddhist {
		t.Errorf("religion = %q, %v", w.Draft().Deceased.Religion, err)
	}

	ww := NewWedding(nil)
	set(t, ww, "내용", `첫 줄\n둘째 줄`)
	if ww.Draft().Message.Content != "첫 줄\n둘째 줄" {
		t.Errorf("content = %q", ww.Draft().Message.Content)
	}
	set(t, ww, "참석 여부 확인 받기 (y/n)", "n")
	if ww.Draft().RSVP.Enabled {
		t.Error("rsvp still enabled")
	}
	if err := ww.Steps()[0].Fields[0].Set(ww.Draft(), "baroque"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("unknown template: %v", err)
	}
}
