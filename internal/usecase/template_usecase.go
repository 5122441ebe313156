package usecase

import (
	"context"
	"io"
	"strings"
	"time"

	"complidesk/internal/domain/entity"
	"complidesk/internal/domain/repository"
	"complidesk/internal/infrastructure/email"
	"complidesk/internal/infrastructure/storage"
	"complidesk/pkg/errors"
	"complidesk/pkg/logger"
)

type TemplateUseCase struct {
	templateRepo repository.TemplateRepository
	leadRepo     repository.LeadRepository
	uploader     FileUploader
	sender       email.EmailSender
	rateLimiter  RateLimitChecker
}

// RateLimitChecker is satisfied by ratelimit.RateLimiter.
type RateLimitChecker interface {
	Allow(userID, action string) (bool, time.Duration)
}

func NewTemplateUseCase(
	templateRepo repository.TemplateRepository,
	leadRepo repository.LeadRepository,
	uploader FileUploader,
	sender email.EmailSender,
	rateLimiter RateLimitChecker,
) *TemplateUseCase {
	return &TemplateUseCase{
		templateRepo: templateRepo,
		leadRepo:     leadRepo,
		uploader:     uploader,
		sender:       sender,
		rateLimiter:  rateLimiter,
	}
}

type CreateTemplateInput struct {
	Name     string
	Subject  string
	BodyHTML string
}

type UpdateTemplateInput struct {
	Name     string
	Subject  string
	BodyHTML string
}

func (uc *TemplateUseCase) CreateTemplate(ctx context.Context, input CreateTemplateInput) (*entity.EmailTemplate, error) {
	template := &entity.EmailTemplate{
		Name:     input.Name,
		Subject:  input.Subject,
		BodyHTML: input.BodyHTML,
	}

	if err := uc.templateRepo.Create(ctx, template); err != nil {
		logger.Error("CreateTemplate: Failed to create template: %v", err)
		return nil, err
	}

	return template, nil
}

func (uc *TemplateUseCase) GetTemplate(ctx context.Context, id string) (*entity.EmailTemplate, error) {
	return uc.templateRepo.GetByID(ctx, id)
}

func (uc *TemplateUseCase) ListTemplates(ctx context.Context, limit, offset int) ([]*entity.EmailTemplate, int64, error) {
	return uc.templateRepo.List(ctx, limit, offset)
}

func (uc *TemplateUseCase) UpdateTemplate(ctx context.Context, id string, input UpdateTemplateInput) (*entity.EmailTemplate, error) {
	template, err := uc.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		template.Name = input.Name
	}
	if input.Subject != "" {
		template.Subject = input.Subject
	}
	if input.BodyHTML != "" {
		template.BodyHTML = input.BodyHTML
	}

	if err := uc.templateRepo.Update(ctx, template); err != nil {
		logger.Error("UpdateTemplate: Failed to update template %s: %v", id, err)
		return nil, err
	}

	return template, nil
}

func (uc *TemplateUseCase) DeleteTemplate(ctx context.Context, id string) error {
	if _, err := uc.templateRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := uc.templateRepo.Delete(ctx, id); err != nil {
		logger.Error("DeleteTemplate: Failed to delete template %s: %v", id, err)
		return err
	}
	return nil
}

// AttachPDF uploads a PDF and links it to the template. Only PDFs are
// accepted and the usual upload size limit applies.
func (uc *TemplateUseCase) AttachPDF(ctx context.Context, id string, file io.Reader, filename, mimeType string, size int64) (*entity.EmailTemplate, error) {
	template, err := uc.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if mimeType != "application/pdf" {
		return nil, errors.BadRequest("Template attachments must be PDF files", nil)
	}
	if size > storage.MaxUploadSize {
		return nil, errors.BadRequest("Attachment exceeds the 10 MB size limit", nil)
	}

	url, err := uc.uploader.UploadFile(ctx, file, mimeType, "template-attachments")
	if err != nil {
		logger.Error("AttachPDF: Upload failed for template %s: %v", id, err)
		return nil, errors.Internal("Attachment upload failed", err)
	}

	template.AttachmentURL = url
	template.AttachmentName = filename

	if err := uc.templateRepo.Update(ctx, template); err != nil {
		logger.Error("AttachPDF: Failed to update template %s: %v", id, err)
		return nil, err
	}

	return template, nil
}

// SendToLead renders the template against the lead and delivers it by email.
// Supported placeholders: {{name}}, {{company}}, {{email}}.
func (uc *TemplateUseCase) SendToLead(ctx context.Context, senderID, templateID, leadID string) error {
	allowed, waitTime := uc.rateLimiter.Allow(senderID, "send_email")
	if !allowed {
		logger.Warn("SendToLead Rate Limited: User %s must wait %v", senderID, waitTime)
		return errors.TooManyRequests("Email rate limit exceeded. Please wait before sending again", waitTime)
	}

	template, err := uc.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		return err
	}

	lead, err := uc.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		return err
	}
	if lead.Email == "" {
		return errors.BadRequest("Lead has no email address", nil)
	}

	subject := renderPlaceholders(template.Subject, lead)
	body := renderPlaceholders(template.BodyHTML, lead)

	if err := uc.sender.SendTemplated(ctx, lead.Email, subject, body, template.AttachmentURL, template.AttachmentName); err != nil {
		logger.Error("SendToLead: Failed to send template %s to lead %s: %v", templateID, leadID, err)
		return errors.Internal("Failed to send email", err)
	}

	logger.Info("SendToLead: Template %s sent to lead %s (%s)", templateID, leadID, lead.Email)
	return nil
}

func renderPlaceholders(text string, lead *entity.Lead) string {
	replacer := strings.NewReplacer(
		"{{name}}", lead.Name,
		"{{company}}", lead.Company,
		"{{email}}", lead.Email,
	)
	return replacer.Replace(text)
}
