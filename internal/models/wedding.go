package models

import (
	"strings"
	"time"
)

type WeddingTemplate string

const (
	WeddingTemplateClassic      WeddingTemplate = "classic"
	WeddingTemplateModern       WeddingTemplate = "modern"
	WeddingTemplateMinimal      WeddingTemplate = "minimal"
	WeddingTemplateIllustration WeddingTemplate = "illustration"
)

type Person struct {
	Name     string `json:"name"`
	FullName string `json:"fullName"`
	Father   string `json:"father"`
	Mother   string `json:"mother"`
	Order    string `json:"order"` // birth order label, e.g. 장남
}

type Couple struct {
	Groom Person `json:"groom"`
	Bride Person `json:"bride"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Venue struct {
	Name        string       `json:"name"`
	Hall        string       `json:"hall,omitempty"`
	Address     string       `json:"address"`
	Phone       string       `json:"phone,omitempty"`
	MapURL      string       `json:"mapUrl,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

type WeddingInfo struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	Venue Venue  `json:"venue"`
}

type Message struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Gallery struct {
	MainImage string   `json:"mainImage"`
	Images    []string `json:"images"`
}

type RSVPResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Attending  bool      `json:"attending"`
	Companions int       `json:"companions"`
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type RSVPConfig struct {
	Enabled   bool           `json:"enabled"`
	Deadline  string         `json:"deadline,omitempty"`
	FormURL   string         `json:"formUrl,omitempty"`
	Responses []RSVPResponse `json:"responses,omitempty"`
}

type GuestbookEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type BankAccount struct {
	Bank    string `json:"bank"`
	Account string `json:"account"`
	Holder  string `json:"holder"`
}

type WeddingBank struct {
	Groom []BankAccount `json:"groom"`
	Bride []BankAccount `json:"bride"`
}

type ContactInfo struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Phone    string `json:"phone"`
}

type WeddingContacts struct {
	Groom []ContactInfo `json:"groom"`
	Bride []ContactInfo `json:"bride"`
}

type WeddingStatistics struct {
	RSVPCount      int `json:"rsvpCount"`
	GuestbookCount int `json:"guestbookCount"`
}

// WeddingData is the payload of a wedding invitation.
type WeddingData struct {
	Template   WeddingTemplate    `json:"template,omitempty"`
	Couple     Couple             `json:"couple"`
	Wedding    WeddingInfo        `json:"wedding"`
	Message    Message            `json:"message"`
	Gallery    Gallery            `json:"gallery"`
	RSVP       *RSVPConfig        `json:"rsvp,omitempty"`
	Guestbook  []GuestbookEntry   `json:"guestbook,omitempty"`
	Bank       *WeddingBank       `json:"bank,omitempty"`
	Contact    WeddingContacts    `json:"contact"`
	Statistics *WeddingStatistics `json:"statistics,omitempty"`
}

func (*WeddingData) EventType() EventType { return EventTypeWedding }
func (*WeddingData) isEventData()         {}

// DisplayTitle renders "{groom} ♥ {bride}".
func (d *WeddingData) DisplayTitle() string {
	return strings.TrimSpace(d.Couple.Groom.Name) + " ♥ " + strings.TrimSpace(d.Couple.Bride.Name)
}

func (d *WeddingData) EventDate() string { return d.Wedding.Date }

func (d *WeddingData) Normalize() {
	stats := WeddingStatistics{GuestbookCount: len(d.Guestbook)}
	if d.RSVP != nil {
		stats.RSVPCount = len(d.RSVP.Responses)
	}
	d.Statistics = &stats
}

// NewWeddingDraft returns the payload a new wedding form starts from.
func NewWeddingDraft() *WeddingData {
	return &WeddingData{
		Template: WeddingTemplateModern,
		Couple: Couple{
			Groom: Person{Order: "장남"},
			Bride: Person{Order: "장녀"},
		},
		Message: Message{Title: "우리 결혼합니다"},
		Gallery: Gallery{Images: []string{}},
		RSVP:    &RSVPConfig{Enabled: true},
		Bank:    &WeddingBank{Groom: []BankAccount{}, Bride: []BankAccount{}},
		Contact: WeddingContacts{Groom: []ContactInfo{}, Bride: []ContactInfo{}},
	}
}
