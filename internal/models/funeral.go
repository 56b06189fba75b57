package models

import (
	"math"
	"strings"
	"time"
)

type Religion string

const (
	ReligionBuddhist  Religion = "buddhist"
	ReligionChristian Religion = "christian"
	ReligionCatholic  Religion = "catholic"
	ReligionNone      Religion = "none"
)

func (r Religion) Valid() bool {
	switch r {
	case "", ReligionBuddhist, ReligionChristian, ReligionCatholic, ReligionNone:
		return true
	}
	return false
}

type FuneralTemplate string

const (
	FuneralTemplateTraditional FuneralTemplate = "traditional"
	FuneralTemplateModern      FuneralTemplate = "modern"
	FuneralTemplateSimple      FuneralTemplate = "simple"
)

// DateLayout is the calendar date format used across payloads.
const DateLayout = "2006-01-02"

const yearLength = time.Duration(365.25 * 24 * float64(time.Hour))

type Deceased struct {
	Name      string   `json:"name"`
	BirthDate string   `json:"birthDate"`
	DeathDate string   `json:"deathDate"`
	Age       int      `json:"age"`
	Religion  Religion `json:"religion,omitempty"`
}

type Mourner struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Phone    string `json:"phone"`
}

type FuneralInfo struct {
	Mortuary       Venue  `json:"mortuary"`
	FuneralDate    string `json:"funeralDate"`
	FuneralTime    string `json:"funeralTime"`
	BurialDate     string `json:"burialDate,omitempty"`
	BurialTime     string `json:"burialTime,omitempty"`
	BurialLocation string `json:"burialLocation,omitempty"`
}

type Condolence struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type FuneralStatistics struct {
	CondolenceCount int `json:"condolenceCount"`
}

// FuneralData is the payload of a funeral notice.
type FuneralData struct {
	Template     FuneralTemplate    `json:"template,omitempty"`
	Deceased     Deceased           `json:"deceased"`
	ChiefMourner Mourner            `json:"chiefMourner"`
	Mourners     []Mourner          `json:"mourners"`
	Funeral      FuneralInfo        `json:"funeral"`
	Message      Message            `json:"message"`
	Bank         []BankAccount      `json:"bank,omitempty"`
	Condolences  []Condolence       `json:"condolences,omitempty"`
	Statistics   *FuneralStatistics `json:"statistics,omitempty"`
}

func (*FuneralData) EventType() EventType { return EventTypeFuneral }
func (*FuneralData) isEventData()         {}

// DisplayTitle renders "故 {name}".
func (d *FuneralData) DisplayTitle() string {
	return "故 " + strings.TrimSpace(d.Deceased.Name)
}

func (d *FuneralData) EventDate() string { return d.Funeral.FuneralDate }

func (d *FuneralData) Normalize() {
	d.refreshAge()
	d.Statistics = &FuneralStatistics{CondolenceCount: len(d.Condolences)}
}

// SetBirthDate and SetDeathDate keep Age in step with the dates.
func (d *FuneralData) SetBirthDate(date string) {
	d.Deceased.BirthDate = date
	d.refreshAge()
}

func (d *FuneralData) SetDeathDate(date string) {
	d.Deceased.DeathDate = date
	d.refreshAge()
}

func (d *FuneralData) refreshAge() {
	if age, ok := DeriveAge(d.Deceased.BirthDate, d.Deceased.DeathDate); ok {
		d.Deceased.Age = age
	}
}

// DeriveAge computes floor((death - birth) / 365.25 days). It reports
// false when either date is missing or unparsable, or death precedes birth.
func DeriveAge(birthDate, deathDate string) (int, bool) {
	if birthDate == "" || deathDate == "" {
		return 0, false
	}
	birth, err := time.Parse(DateLayout, birthDate)
	if err != nil {
		return 0, false
	}
	death, err := time.Parse(DateLayout, deathDate)
	if err != nil {
		return 0, false
	}
	if death.Before(birth) {
		return 0, false
	}
	return int(math.Floor(float64(death.Sub(birth)) / float64(yearLength))), true
}

// NewFuneralDraft returns the payload a new funeral form starts from.
func NewFuneralDraft() *FuneralData {
	return &FuneralData{
		Template: FuneralTemplateTraditional,
		Deceased: Deceased{Religion: ReligionNone},
		Mourners: []Mourner{},
		Message:  Message{Title: "삼가 고인의 명복을 빕니다"},
		Bank:     []BankAccount{},
	}
}
