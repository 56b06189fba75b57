package service

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/sefazor/maeum-backend/internal/models"
	"github.com/sefazor/maeum-backend/pkg/qrcode"
)

// ShareLinks is everything the share dialog offers for one event.
type ShareLinks struct {
	URL              string `json:"url"`
	EditPath         string `json:"editPath"`
	QRCodePath       string `json:"qrCodePath"`
	ShareText        string `json:"shareText"`
	KakaoTitle       string `json:"kakaoTitle"`
	KakaoDescription string `json:"kakaoDescription"`
}

type ShareService struct {
	qr      *qrcode.QRService
	baseURL string
}

func NewShareService(qr *qrcode.QRService, baseURL string) *ShareService {
	return &ShareService{qr: qr, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *ShareService) BaseURL() string { return s.baseURL }

// PublicURL is the absolute address of the event page.
func PublicURL(baseURL string, e *models.Event) string {
	return strings.TrimRight(baseURL, "/") + PublicPath(e)
}

func PublicPath(e *models.Event) string {
	return "/" + string(e.Type) + "/" + e.URL
}

func EditPath(e *models.Event) string {
	return "/" + string(e.Type) + "/edit/" + e.ID
}

func (s *ShareService) Links(e *models.Event) ShareLinks {
	fullURL := PublicURL(s.baseURL, e)
	links := ShareLinks{
		URL:        fullURL,
		EditPath:   EditPath(e),
		QRCodePath: "/api/public" + PublicPath(e) + "/qr.png",
		KakaoTitle: e.Title,
	}
	switch data := e.Data.(type) {
	case *models.WeddingData:
		links.ShareText = weddingShareText(e.Title, data, fullURL)
		links.KakaoDescription = "저희 결혼식에 초대합니다"
	case *models.FuneralData:
		links.ShareText = funeralShareText(e.Title, data, fullURL)
		links.KakaoDescription = "삼가 고인의 명복을 빕니다"
	default:
		links.ShareText = e.Title + "\n\n" + fullURL
	}
	return links
}

func weddingShareText(title string, d *models.WeddingData, url string) string {
	when := joinNonEmpty(" ", d.Wedding.Date, d.Wedding.Time)
	if when == "" {
		when = "[날짜 시간]"
	}
	where := joinNonEmpty(" ", d.Wedding.Venue.Name, d.Wedding.Venue.Hall)
	if where == "" {
		where = "[예식장 정보]"
	}
	return fmt.Sprintf("💌 결혼식 초대\n\n%s\n\n일시: %s\n장소: %s\n\n자세한 내용은 아래 링크를 확인해주세요.\n%s",
		title, when, where, url)
}

func funeralShareText(title string, d *models.FuneralData, url string) string {
	when := joinNonEmpty(" ", d.Funeral.FuneralDate, d.Funeral.FuneralTime)
	if when == "" {
		when = "[날짜 시간]"
	}
	where := joinNonEmpty(" ", d.Funeral.Mortuary.Name, d.Funeral.Mortuary.Hall)
	if where == "" {
		where = "[장례식장 정보]"
	}
	return fmt.Sprintf("🕊️ 부고 안내\n\n%s\n\n발인: %s\n장소: %s\n\n자세한 내용은 아래 링크를 확인해주세요.\n%s",
		title, when, where, url)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// QRCode renders the public URL of e and names the file the way the
// share dialog downloads it.
func (s *ShareService) QRCode(e *models.Event, size int) (png []byte, filename string, err error) {
	png, err = s.qr.GenerateQRCode(PublicURL(s.baseURL, e), size, qrColor(e.Type))
	if err != nil {
		return nil, "", err
	}
	return png, "qr-code-" + string(e.Type) + ".png", nil
}

func qrColor(t models.EventType) color.Color {
	switch t {
	case models.EventTypeWedding:
		return qrcode.ColorWedding
	case models.EventTypeFuneral:
		return qrcode.ColorFuneral
	}
	return qrcode.ColorDefault
}
