package email

import (
	"bytes"
	"html/template"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

var templates = template.Must(template.New("welcome.html").Parse(welcomeHTML))

func init() {
	template.Must(templates.New("published.html").Parse(publishedHTML))
}

const welcomeHTML = `<!doctype html>
<html><body style="font-family:sans-serif">
<h2>{{.Name}}님, 마음전하기에 오신 것을 환영합니다</h2>
<p>이제 청첩장과 부고장을 만들고 링크 하나로 소중한 분들께 전할 수 있습니다.</p>
<p style="color:#888">{{.Email}} · © {{.Year}} 마음전하기</p>
</body></html>`

const publishedHTML = `<!doctype html>
<html><body style="font-family:sans-serif">
<h2>{{.Title}}</h2>
<p>페이지가 게시되었습니다. 아래 링크를 공유해 주세요.</p>
<p><a href="{{.Link}}">{{.Link}}</a></p>
<p style="color:#888">© {{.Year}} 마음전하기</p>
</body></html>`

// EmailService sends transactional mail through Resend. A service built
// without an API key logs and drops every message.
type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
}

func NewEmailService(apiKey, from, fromName string, logger *zap.Logger) *EmailService {
	s := &EmailService{
		from:     from,
		fromName: fromName,
		logger:   logger.Named("email"),
	}
	if apiKey != "" {
		s.client = resend.NewClient(apiKey)
	}
	return s
}

func (s *EmailService) Enabled() bool {
	return s != nil && s.client != nil
}

func (s *EmailService) SendWelcomeEmail(email, name string) error {
	return s.send(email, "마음전하기에 오신 것을 환영합니다", "welcome.html", map[string]interface{}{
		"Name":  name,
		"Email": email,
		"Year":  time.Now().Year(),
	})
}

// SendPublishedEmail tells the owner where their page now lives.
func (s *EmailService) SendPublishedEmail(email, title, link string) error {
	return s.send(email, "페이지가 게시되었습니다: "+title, "published.html", map[string]interface{}{
		"Title": title,
		"Link":  link,
		"Year":  time.Now().Year(),
	})
}

func (s *EmailService) send(to, subject, templateName string, data interface{}) error {
	if !s.Enabled() {
		s.logger.Debug("mail disabled, dropping message", zap.String("template", templateName))
		return nil
	}

	html, err := render(templateName, data)
	if err != nil {
		s.logger.Error("template render failed", zap.String("template", templateName), zap.Error(err))
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("send failed", zap.String("template", templateName), zap.Error(err))
		return err
	}

	s.logger.Info("sent", zap.String("template", templateName), zap.String("id", resp.Id))
	return nil
}

func render(name string, data interface{}) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", err
	}
	return body.String(), nil
}
