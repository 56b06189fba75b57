package wizard

import (
	"github.com/sefazor/maeum-backend/internal/models"
)

type WeddingWizard = Wizard[*models.WeddingData]

// NewWedding starts a wedding invitation form from the default draft.
func NewWedding(saver EventSaver) *WeddingWizard {
	return newWizard(models.EventTypeWedding, weddingSteps(), models.NewWeddingDraft(), saver)
}

func weddingSteps() []Step[*models.WeddingData] {
	type W = *models.WeddingData
	templates := []string{
		string(models.WeddingTemplateClassic),
		string(models.WeddingTemplateModern),
		string(models.WeddingTemplateMinimal),
		string(models.WeddingTemplateIllustration),
	}
	person := func(side func(W) *models.Person) []Field[W] {
		return []Field[W]{
			text("이름 (한글)", func(d W) *string { return &side(d).Name }),
			text("성함 (전체)", func(d W) *string { return &side(d).FullName }),
			text("아버지 성함", func(d W) *string { return &side(d).Father }),
			text("어머니 성함", func(d W) *string { return &side(d).Mother }),
			text("서열", func(d W) *string { return &side(d).Order }),
		}
	}
	return []Step[W]{
		{Title: "템플릿 선택", Fields: []Field[W]{
			choice("템플릿", templates, func(d W) *string { return (*string)(&d.Template) }),
		}},
		{Title: "신랑 정보", Fields: person(func(d W) *models.Person { return &d.Couple.Groom })},
		{Title: "신부 정보", Fields: person(func(d W) *models.Person { return &d.Couple.Bride })},
		{Title: "결혼식 정보", Fields: []Field[W]{
			date("날짜", func(d W) string { return d.Wedding.Date }, func(d W, v string) { d.Wedding.Date = v }),
			clock("시간", func(d W) *string { return &d.Wedding.Time }),
			text("예식장 이름", func(d W) *string { return &d.Wedding.Venue.Name }),
			text("홀 이름", func(d W) *string { return &d.Wedding.Venue.Hall }),
			text("주소", func(d W) *string { return &d.Wedding.Venue.Address }),
			text("전화번호", func(d W) *string { return &d.Wedding.Venue.Phone }),
			text("지도 URL", func(d W) *string { return &d.Wedding.Venue.MapURL }),
		}},
		{Title: "인사말", Fields: []Field[W]{
			text("제목", func(d W) *string { return &d.Message.Title }),
			multiline("내용", func(d W) *string { return &d.Message.Content }),
			flag("참석 여부 확인 받기", func(d W) *bool { return &rsvp(d).Enabled }),
			date("참석 확인 마감일", func(d W) string { return rsvp(d).Deadline }, func(d W, v string) { rsvp(d).Deadline = v }),
		}},
		{Title: "갤러리", Fields: []Field[W]{
			text("메인 이미지", func(d W) *string { return &d.Gallery.MainImage }),
			list("갤러리 이미지", func(d W) *[]string { return &d.Gallery.Images }),
		}},
	}
}

func rsvp(d *models.WeddingData) *models.RSVPConfig {
	if d.RSVP == nil {
		d.RSVP = &models.RSVPConfig{}
	}
	return d.RSVP
}
