package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complidesk/internal/domain/entity"
	apperrors "complidesk/pkg/errors"
)

type fakeTemplateRepo struct {
	templates map[string]*entity.EmailTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[string]*entity.EmailTemplate)}
}

func (f *fakeTemplateRepo) Create(ctx context.Context, template *entity.EmailTemplate) error {
	if template.ID == "" {
		template.ID = uuid.New().String()
	}
	f.templates[template.ID] = template
	return nil
}

func (f *fakeTemplateRepo) GetByID(ctx context.Context, id string) (*entity.EmailTemplate, error) {
	t, ok := f.templates[id]
	if !ok {
		return nil, apperrors.NotFound("Template", nil)
	}
	return t, nil
}

func (f *fakeTemplateRepo) List(ctx context.Context, limit, offset int) ([]*entity.EmailTemplate, int64, error) {
	var out []*entity.EmailTemplate
	for _, t := range f.templates {
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTemplateRepo) Update(ctx context.Context, template *entity.EmailTemplate) error {
	f.templates[template.ID] = template
	return nil
}

func (f *fakeTemplateRepo) Delete(ctx context.Context, id string) error {
	delete(f.templates, id)
	return nil
}

type fakeLeadRepo struct {
	leads map[string]*entity.Lead
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: make(map[string]*entity.Lead)}
}

func (f *fakeLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	f.leads[lead.ID] = lead
	return nil
}

func (f *fakeLeadRepo) GetByID(ctx context.Context, id string) (*entity.Lead, error) {
	l, ok := f.leads[id]
	if !ok {
		return nil, apperrors.NotFound("Lead", nil)
	}
	return l, nil
}

func (f *fakeLeadRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Lead, int64, error) {
	var out []*entity.Lead
	for _, l := range f.leads {
		if status == "" || l.Status == status {
			out = append(out, l)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeadRepo) Update(ctx context.Context, lead *entity.Lead) error {
	f.leads[lead.ID] = lead
	return nil
}

func (f *fakeLeadRepo) Delete(ctx context.Context, id string) error {
	delete(f.leads, id)
	return nil
}

type fakeSender struct {
	sent []sentEmail
	err  error
}

type sentEmail struct {
	to             string
	subject        string
	html           string
	attachmentURL  string
	attachmentName string
}

func (f *fakeSender) SendTemplated(ctx context.Context, toEmail, subject, html, attachmentURL, attachmentName string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{toEmail, subject, html, attachmentURL, attachmentName})
	return nil
}

type stubLimiter struct {
	allow bool
}

func (s *stubLimiter) Allow(userID, action string) (bool, time.Duration) {
	if s.allow {
		return true, 0
	}
	return false, time.Minute
}

func templateFixture() (*TemplateUseCase, *fakeTemplateRepo, *fakeLeadRepo, *fakeSender, *fakeUploader) {
	templateRepo := newFakeTemplateRepo()
	leadRepo := newFakeLeadRepo()
	sender := &fakeSender{}
	uploader := &fakeUploader{url: "https://storage.googleapis.com/bucket/template-attachments/doc.pdf"}
	uc := NewTemplateUseCase(templateRepo, leadRepo, uploader, sender, &stubLimiter{allow: true})
	return uc, templateRepo, leadRepo, sender, uploader
}

func TestSendToLeadRendersPlaceholders(t *testing.T) {
	uc, templateRepo, leadRepo, sender, _ := templateFixture()

	template := &entity.EmailTemplate{Name: "welcome", Subject: "Hello {{name}}", BodyHTML: "<p>Hi {{name}} from {{company}}</p>"}
	require.NoError(t, templateRepo.Create(context.Background(), template))

	lead := &entity.Lead{Name: "Ada", Company: "Acme", Email: "ada@acme.test", Status: entity.LeadStatusNew}
	require.NoError(t, leadRepo.Create(context.Background(), lead))

	err := uc.SendToLead(context.Background(), "admin-1", template.ID, lead.ID)
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ada@acme.test", sender.sent[0].to)
	assert.Equal(t, "Hello Ada", sender.sent[0].subject)
	assert.Equal(t, "<p>Hi Ada from Acme</p>", sender.sent[0].html)
}

func TestSendToLeadIncludesAttachment(t *testing.T) {
	uc, templateRepo, leadRepo, sender, _ := templateFixture()

	template := &entity.EmailTemplate{
		Name:           "brochure",
		Subject:        "Brochure",
		BodyHTML:       "<p>See attached</p>",
		AttachmentURL:  "https://storage.googleapis.com/bucket/template-attachments/brochure.pdf",
		AttachmentName: "brochure.pdf",
	}
	require.NoError(t, templateRepo.Create(context.Background(), template))

	lead := &entity.Lead{Name: "Ada", Email: "ada@acme.test"}
	require.NoError(t, leadRepo.Create(context.Background(), lead))

	require.NoError(t, uc.SendToLead(context.Background(), "admin-1", template.ID, lead.ID))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "brochure.pdf", sender.sent[0].attachmentName)
	assert.Equal(t, template.AttachmentURL, sender.sent[0].attachmentURL)
}

func TestSendToLeadRateLimited(t *testing.T) {
	templateRepo := newFakeTemplateRepo()
	leadRepo := newFakeLeadRepo()
	sender := &fakeSender{}
	uc := NewTemplateUseCase(templateRepo, leadRepo, &fakeUploader{}, sender, &stubLimiter{allow: false})

	err := uc.SendToLead(context.Background(), "admin-1", "t1", "l1")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "TOO_MANY_REQUESTS"))
	assert.Empty(t, sender.sent)
}

func TestSendToLeadMissingEmail(t *testing.T) {
	uc, templateRepo, leadRepo, sender, _ := templateFixture()

	template := &entity.EmailTemplate{Name: "welcome", Subject: "Hi", BodyHTML: "<p>Hi</p>"}
	require.NoError(t, templateRepo.Create(context.Background(), template))
	lead := &entity.Lead{Name: "No Email"}
	require.NoError(t, leadRepo.Create(context.Background(), lead))

	err := uc.SendToLead(context.Background(), "admin-1", template.ID, lead.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "BAD_REQUEST"))
	assert.Empty(t, sender.sent)
}

func TestAttachPDFRejectsNonPDF(t *testing.T) {
	uc, templateRepo, _, _, uploader := templateFixture()

	template := &entity.EmailTemplate{Name: "welcome"}
	require.NoError(t, templateRepo.Create(context.Background(), template))

	_, err := uc.AttachPDF(context.Background(), template.ID, strings.NewReader("x"), "cat.png", "image/png", 100)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "BAD_REQUEST"))
	assert.Equal(t, 0, uploader.calls)
}

func TestAttachPDFRejectsOversized(t *testing.T) {
	uc, templateRepo, _, _, uploader := templateFixture()

	template := &entity.EmailTemplate{Name: "welcome"}
	require.NoError(t, templateRepo.Create(context.Background(), template))

	_, err := uc.AttachPDF(context.Background(), template.ID, strings.NewReader("x"), "big.pdf", "application/pdf", 11<<20)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "BAD_REQUEST"))
	assert.Equal(t, 0, uploader.calls)
}

func TestAttachPDFStoresURL(t *testing.T) {
	uc, templateRepo, _, _, uploader := templateFixture()

	template := &entity.EmailTemplate{Name: "welcome"}
	require.NoError(t, templateRepo.Create(context.Background(), template))

	updated, err := uc.AttachPDF(context.Background(), template.ID, strings.NewReader("pdf data"), "doc.pdf", "application/pdf", 2048)
	require.NoError(t, err)
	assert.Equal(t, 1, uploader.calls)
	assert.Equal(t, uploader.url, updated.AttachmentURL)
	assert.Equal(t, "doc.pdf", updated.AttachmentName)
}

func TestDirectoryResolverFormats(t *testing.T) {
	leadRepo := newFakeLeadRepo()
	sellerRepo := newFakeSellerRepo()
	resolver := NewDirectoryResolver(leadRepo, sellerRepo)

	lead := &entity.Lead{Name: "Ada", Company: "Acme"}
	require.NoError(t, leadRepo.Create(context.Background(), lead))
	seller := &entity.Seller{Name: "Sam", Email: "sam@complidesk.test", Role: entity.RoleSeller}
	require.NoError(t, sellerRepo.Create(context.Background(), seller))

	name, err := resolver.Resolve(context.Background(), entity.RoleClient, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada (Acme)", name)

	name, err = resolver.Resolve(context.Background(), entity.RoleSeller, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sam (sam@complidesk.test)", name)

	_, err = resolver.Resolve(context.Background(), entity.RoleClient, "missing")
	require.Error(t, err)
}

type fakeSellerRepo struct {
	sellers map[string]*entity.Seller
}

func newFakeSellerRepo() *fakeSellerRepo {
	return &fakeSellerRepo{sellers: make(map[string]*entity.Seller)}
}

func (f *fakeSellerRepo) Create(ctx context.Context, seller *entity.Seller) error {
	if seller.ID == "" {
		seller.ID = uuid.New().String()
	}
	f.sellers[seller.ID] = seller
	return nil
}

func (f *fakeSellerRepo) GetByID(ctx context.Context, id string) (*entity.Seller, error) {
	s, ok := f.sellers[id]
	if !ok {
		return nil, apperrors.NotFound("Seller", nil)
	}
	return s, nil
}

func (f *fakeSellerRepo) GetByEmail(ctx context.Context, email string) (*entity.Seller, error) {
	for _, s := range f.sellers {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, apperrors.NotFound("Seller", nil)
}

func (f *fakeSellerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Seller, int64, error) {
	var out []*entity.Seller
	for _, s := range f.sellers {
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSellerRepo) Update(ctx context.Context, seller *entity.Seller) error {
	f.sellers[seller.ID] = seller
	return nil
}

func (f *fakeSellerRepo) Delete(ctx context.Context, id string) error {
	delete(f.sellers, id)
	return nil
}
