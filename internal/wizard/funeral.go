package wizard

import (
	"github.com/sefazor/maeum-backend/internal/models"
)

type FuneralWizard = Wizard[*models.FuneralData]

// NewFuneral starts a funeral notice form from the default draft.
func NewFuneral(saver EventSaver) *FuneralWizard {
	return newWizard(models.EventTypeFuneral, funeralSteps(), models.NewFuneralDraft(), saver)
}

func funeralSteps() []Step[*models.FuneralData] {
	type F = *models.FuneralData
	religions := []string{
		string(models.ReligionNone),
		string(models.ReligionBuddhist),
		string(models.ReligionChristian),
		string(models.ReligionCatholic),
	}
	return []Step[F]{
		{Title: "故人 정보", Fields: []Field[F]{
			text("성함", func(d F) *string { return &d.Deceased.Name }),
			date("생년월일", func(d F) string { return d.Deceased.BirthDate }, (*models.FuneralData).SetBirthDate),
			date("별세일", func(d F) string { return d.Deceased.DeathDate }, (*models.FuneralData).SetDeathDate),
			choice("종교", religions, func(d F) *string { return (*string)(&d.Deceased.Religion) }),
		}},
		{Title: "상주 정보", Fields: []Field[F]{
			text("상주 성함", func(d F) *string { return &d.ChiefMourner.Name }),
			text("故人과의 관계", func(d F) *string { return &d.ChiefMourner.Relation }),
			text("연락처", func(d F) *string { return &d.ChiefMourner.Phone }),
			records("기타 상주", "이름:관계:연락처",
				func(d F) [][]string {
					rows := make([][]string, len(d.Mourners))
					for i, m := range d.Mourners {
						rows[i] = []string{m.Name, m.Relation, m.Phone}
					}
					return rows
				},
				func(d F, rows [][]string) {
					d.Mourners = make([]models.Mourner, len(rows))
					for i, r := range rows {
						d.Mourners[i] = models.Mourner{Name: r[0], Relation: r[1], Phone: r[2]}
					}
				}),
		}},
		{Title: "장례 정보", Fields: []Field[F]{
			text("장례식장", func(d F) *string { return &d.Funeral.Mortuary.Name }),
			text("빈소", func(d F) *string { return &d.Funeral.Mortuary.Hall }),
			text("주소", func(d F) *string { return &d.Funeral.Mortuary.Address }),
			text("전화번호", func(d F) *string { return &d.Funeral.Mortuary.Phone }),
			date("발인 날짜", func(d F) string { return d.Funeral.FuneralDate }, func(d F, v string) { d.Funeral.FuneralDate = v }),
			clock("발인 시간", func(d F) *string { return &d.Funeral.FuneralTime }),
			text("장지", func(d F) *string { return &d.Funeral.BurialLocation }),
		}},
		{Title: "부고 메시지", Fields: []Field[F]{
			text("제목", func(d F) *string { return &d.Message.Title }),
			multiline("내용", func(d F) *string { return &d.Message.Content }),
		}},
		{Title: "부의금 계좌", Fields: []Field[F]{
			records("계좌", "은행:계좌번호:예금주",
				func(d F) [][]string {
					rows := make([][]string, len(d.Bank))
					for i, b := range d.Bank {
						rows[i] = []string{b.Bank, b.Account, b.Holder}
					}
					return rows
				},
				func(d F, rows [][]string) {
					d.Bank = make([]models.BankAccount, len(rows))
					for i, r := range rows {
						d.Bank[i] = models.BankAccount{Bank: r[0], Account: r[1], Holder: r[2]}
					}
				}),
		}},
	}
}
