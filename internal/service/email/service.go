package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"complaint-desk/internal/config"
	"complaint-desk/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

type Service interface {
	SendComplaintAssigned(ctx context.Context, toEmail, handlerName, customerName, inquiryType string) error
	SendComplaintStatusChanged(ctx context.Context, toEmail, creatorName, inquiryType, status, department, resolution string) error
}

type service struct {
	client    *resend.Client
	config    *config.Config
	templates map[string]*template.Template
}

func NewService(cfg *config.Config) (Service, error) {
	templates := make(map[string]*template.Template)
	for _, name := range []string{"complaint_assigned.html", "complaint_status.html"} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse email template %s: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &service{
		client:    resend.NewClient(cfg.ResendAPIKey),
		config:    cfg,
		templates: templates,
	}, nil
}

func (s *service) render(templateName string, data interface{}) (string, error) {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return "", fmt.Errorf("unknown email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout.html", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *service) sendEmail(ctx context.Context, toEmail, subject, templateName string, data interface{}) error {
	html, err := s.render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.EmailFromName, s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err = s.client.Emails.SendWithContext(ctx, params)
	return err
}

func (s *service) SendComplaintAssigned(ctx context.Context, toEmail, handlerName, customerName, inquiryType string) error {
	data := struct {
		Title        string
		Name         string
		CustomerName string
		InquiryType  string
		Link         string
	}{
		Title:        "New Complaint Assigned",
		Name:         handlerName,
		CustomerName: customerName,
		InquiryType:  inquiryType,
		Link:         s.config.AppURL,
	}
	return s.sendEmail(ctx, toEmail, fmt.Sprintf("New Complaint Assigned (%s)", inquiryType), "complaint_assigned.html", data)
}

func (s *service) SendComplaintStatusChanged(ctx context.Context, toEmail, creatorName, inquiryType, status, department, resolution string) error {
	color := "#d97706"
	if status == domain.StatusResolved {
		color = "#10b981"
	}

	data := struct {
		Title       string
		Name        string
		InquiryType string
		Status      string
		Department  string
		Resolution  string
		Color       string
		Link        string
	}{
		Title:       "Complaint Status Updated",
		Name:        creatorName,
		InquiryType: inquiryType,
		Status:      status,
		Department:  department,
		Resolution:  resolution,
		Color:       color,
		Link:        s.config.AppURL,
	}
	return s.sendEmail(ctx, toEmail, fmt.Sprintf("Complaint %s has Updated: %s", inquiryType, status), "complaint_status.html", data)
}
