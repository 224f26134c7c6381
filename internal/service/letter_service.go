package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"text/template"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/config"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/dto"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/repository"
)

// ── letter module errors ──

var (
	ErrTemplateNotFound  = errors.New("letter template not found")
	ErrTemplateInvalid   = errors.New("letter template body is not a valid template")
	ErrTemplateInactive  = errors.New("letter template is inactive")
	ErrLetterNotFound    = errors.New("letter not found")
	ErrLetterNotDraft    = errors.New("letter is not a draft")
	ErrLetterNotApproved = errors.New("letter is not approved")
	ErrLetterNoToken     = errors.New("letter has no verification token yet")
)

// romanMonths holds the month numerals used in Indonesian letter numbers.
var romanMonths = [12]string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI", "XII"}

// LetterNumber formats an outgoing-letter number, e.g. "007/SKET/VIII/2026".
func LetterNumber(sequence int, code string, issued time.Time) string {
	return fmt.Sprintf("%03d/%s/%s/%d", sequence, code, romanMonths[issued.Month()-1], issued.Year())
}

// LetterService manages letter templates and the outgoing-letter lifecycle:
// draft (rendered from a template), approve (number + verification token
// assigned), send, and public verification.
type LetterService interface {
	CreateTemplate(ctx context.Context, req *dto.CreateLetterTemplateRequest, callerID string) (*dto.LetterTemplateResponse, error)
	UpdateTemplate(ctx context.Context, templateID string, req *dto.UpdateLetterTemplateRequest, callerID string) (*dto.LetterTemplateResponse, error)
	DeleteTemplate(ctx context.Context, templateID string, callerID string) error
	ListTemplates(ctx context.Context, page *dto.PaginationRequest) ([]dto.LetterTemplateResponse, int64, error)

	Create(ctx context.Context, req *dto.CreateLetterRequest, callerID string) (*dto.LetterResponse, error)
	GetByID(ctx context.Context, letterID string) (*dto.LetterResponse, error)
	List(ctx context.Context, req *dto.LetterListRequest) ([]dto.LetterResponse, int64, error)
	Update(ctx context.Context, letterID string, req *dto.UpdateLetterRequest, callerID string) (*dto.LetterResponse, error)
	Approve(ctx context.Context, letterID string, callerID string) (*dto.LetterResponse, error)
	Send(ctx context.Context, letterID string, callerID string) (*dto.LetterResponse, error)
	// QRCode renders the verification URL of an approved letter as a PNG.
	QRCode(ctx context.Context, letterID string) ([]byte, error)
	Verify(ctx context.Context, token string) (*dto.LetterVerificationResponse, error)
}

type letterService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewLetterService creates a LetterService.
func NewLetterService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) LetterService {
	return &letterService{cfg: cfg, repo: repo, logger: logger, now: time.Now}
}

// ── templates ──

func (s *letterService) CreateTemplate(ctx context.Context, req *dto.CreateLetterTemplateRequest, callerID string) (*dto.LetterTemplateResponse, error) {
	if _, err := template.New("body").Parse(req.Body); err != nil {
		return nil, ErrTemplateInvalid
	}

	tpl := &model.LetterTemplate{
		Name:     req.Name,
		Code:     req.Code,
		Subject:  req.Subject,
		Body:     req.Body,
		Fields:   datatypes.JSON(req.Fields),
		IsActive: true,
	}
	tpl.CreatedBy = &callerID

	if err := s.repo.LetterTemplate.Create(ctx, tpl); err != nil {
		s.logger.Error("create letter template failed", zap.Error(err))
		return nil, err
	}

	resp := letterTemplateResponse(*tpl)
	return &resp, nil
}

func (s *letterService) UpdateTemplate(ctx context.Context, templateID string, req *dto.UpdateLetterTemplateRequest, callerID string) (*dto.LetterTemplateResponse, error) {
	tpl, err := s.repo.LetterTemplate.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("load letter template failed", zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		tpl.Name = *req.Name
	}
	if req.Subject != nil {
		tpl.Subject = *req.Subject
	}
	if req.Body != nil {
		if _, err := template.New("body").Parse(*req.Body); err != nil {
			return nil, ErrTemplateInvalid
		}
		tpl.Body = *req.Body
	}
	if len(req.Fields) > 0 {
		tpl.Fields = datatypes.JSON(req.Fields)
	}
	if req.IsActive != nil {
		tpl.IsActive = *req.IsActive
	}
	tpl.UpdatedBy = &callerID

	if err := s.repo.LetterTemplate.Update(ctx, tpl); err != nil {
		s.logger.Error("update letter template failed", zap.Error(err))
		return nil, err
	}

	resp := letterTemplateResponse(*tpl)
	return &resp, nil
}

func (s *letterService) DeleteTemplate(ctx context.Context, templateID string, callerID string) error {
	if _, err := s.repo.LetterTemplate.GetByID(ctx, templateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		s.logger.Error("load letter template failed", zap.Error(err))
		return err
	}
	return s.repo.LetterTemplate.Delete(ctx, templateID, callerID)
}

func (s *letterService) ListTemplates(ctx context.Context, page *dto.PaginationRequest) ([]dto.LetterTemplateResponse, int64, error) {
	page.Normalize()

	tpls, total, err := s.repo.LetterTemplate.List(ctx, page.Offset(), page.PageSize)
	if err != nil {
		s.logger.Error("list letter templates failed", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]dto.LetterTemplateResponse, 0, len(tpls))
	for _, t := range tpls {
		resp = append(resp, letterTemplateResponse(t))
	}
	return resp, total, nil
}

// ── letters ──

func (s *letterService) Create(ctx context.Context, req *dto.CreateLetterRequest, callerID string) (*dto.LetterResponse, error) {
	tpl, err := s.repo.LetterTemplate.GetByID(ctx, req.TemplateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("load letter template failed", zap.Error(err))
		return nil, err
	}
	if !tpl.IsActive {
		return nil, ErrTemplateInactive
	}

	body, err := s.renderBody(ctx, tpl.Body, req.Recipient, req.FieldValues)
	if err != nil {
		return nil, err
	}

	values, err := json.Marshal(req.FieldValues)
	if err != nil {
		return nil, err
	}

	letter := &model.Letter{
		TemplateID:  tpl.TemplateID,
		Subject:     tpl.Subject,
		Recipient:   req.Recipient,
		Body:        body,
		FieldValues: datatypes.JSON(values),
		Status:      model.LetterStatusDraft,
	}
	letter.Version = 1
	letter.CreatedBy = &callerID

	if err := s.repo.Letter.Create(ctx, letter); err != nil {
		s.logger.Error("create letter failed", zap.Error(err))
		return nil, err
	}

	resp := letterResponse(*letter)
	return &resp, nil
}

func (s *letterService) GetByID(ctx context.Context, letterID string) (*dto.LetterResponse, error) {
	letter, err := s.repo.Letter.GetByID(ctx, letterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLetterNotFound
		}
		s.logger.Error("load letter failed", zap.Error(err))
		return nil, err
	}
	resp := letterResponse(*letter)
	return &resp, nil
}

func (s *letterService) List(ctx context.Context, req *dto.LetterListRequest) ([]dto.LetterResponse, int64, error) {
	req.Normalize()

	letters, total, err := s.repo.Letter.List(ctx, req.Status, req.Offset(), req.PageSize)
	if err != nil {
		s.logger.Error("list letters failed", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]dto.LetterResponse, 0, len(letters))
	for _, l := range letters {
		resp = append(resp, letterResponse(l))
	}
	return resp, total, nil
}

func (s *letterService) Update(ctx context.Context, letterID string, req *dto.UpdateLetterRequest, callerID string) (*dto.LetterResponse, error) {
	letter, err := s.repo.Letter.GetByID(ctx, letterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLetterNotFound
		}
		s.logger.Error("load letter failed", zap.Error(err))
		return nil, err
	}
	if letter.Status != model.LetterStatusDraft {
		return nil, ErrLetterNotDraft
	}

	if req.Recipient != nil {
		letter.Recipient = *req.Recipient
	}
	if req.FieldValues != nil {
		values, err := json.Marshal(req.FieldValues)
		if err != nil {
			return nil, err
		}
		letter.FieldValues = datatypes.JSON(values)
	}

	// Re-render from the current template with the updated inputs.
	tpl, err := s.repo.LetterTemplate.GetByID(ctx, letter.TemplateID)
	if err != nil {
		s.logger.Error("load letter template failed", zap.Error(err))
		return nil, err
	}
	var fieldValues map[string]string
	if len(letter.FieldValues) > 0 {
		if err := json.Unmarshal(letter.FieldValues, &fieldValues); err != nil {
			return nil, err
		}
	}
	body, err := s.renderBody(ctx, tpl.Body, letter.Recipient, fieldValues)
	if err != nil {
		return nil, err
	}
	letter.Body = body
	letter.Version = req.Version
	letter.UpdatedBy = &callerID

	if err := s.repo.Letter.Update(ctx, letter); err != nil {
		// pkg/errors.ErrOptimisticLock passes through to the handler
		return nil, err
	}

	resp := letterResponse(*letter)
	return &resp, nil
}

func (s *letterService) Approve(ctx context.Context, letterID string, callerID string) (*dto.LetterResponse, error) {
	letter, err := s.repo.Letter.GetByID(ctx, letterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLetterNotFound
		}
		s.logger.Error("load letter failed", zap.Error(err))
		return nil, err
	}
	if letter.Status != model.LetterStatusDraft {
		return nil, ErrLetterNotDraft
	}

	tpl, err := s.repo.LetterTemplate.GetByID(ctx, letter.TemplateID)
	if err != nil {
		s.logger.Error("load letter template failed", zap.Error(err))
		return nil, err
	}

	issued := s.now()
	seq, err := s.repo.Letter.NextSequence(ctx, tpl.Code, issued.Year())
	if err != nil {
		s.logger.Error("reserve letter sequence failed", zap.Error(err))
		return nil, err
	}

	letter.Sequence = seq
	letter.Year = issued.Year()
	letter.Number = LetterNumber(seq, tpl.Code, issued)
	letter.IssuedDate = &issued
	letter.VerifyToken = uuid.New().String()
	letter.Status = model.LetterStatusApproved
	letter.UpdatedBy = &callerID

	if err := s.repo.Letter.Update(ctx, letter); err != nil {
		return nil, err
	}

	s.logger.Info("letter approved",
		zap.String("letter_id", letter.LetterID),
		zap.String("number", letter.Number),
	)

	resp := letterResponse(*letter)
	return &resp, nil
}

func (s *letterService) Send(ctx context.Context, letterID string, callerID string) (*dto.LetterResponse, error) {
	letter, err := s.repo.Letter.GetByID(ctx, letterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLetterNotFound
		}
		s.logger.Error("load letter failed", zap.Error(err))
		return nil, err
	}
	if letter.Status != model.LetterStatusApproved {
		return nil, ErrLetterNotApproved
	}

	letter.Status = model.LetterStatusSent
	letter.UpdatedBy = &callerID

	if err := s.repo.Letter.Update(ctx, letter); err != nil {
		return nil, err
	}

	resp := letterResponse(*letter)
	return &resp, nil
}

func (s *letterService) QRCode(ctx context.Context, letterID string) ([]byte, error) {
	letter, err := s.repo.Letter.GetByID(ctx, letterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLetterNotFound
		}
		s.logger.Error("load letter failed", zap.Error(err))
		return nil, err
	}
	if letter.VerifyToken == "" {
		return nil, ErrLetterNoToken
	}

	url := fmt.Sprintf("%s/api/v1/verify/%s", s.cfg.Server.BaseURL, letter.VerifyToken)
	return qrcode.Encode(url, qrcode.Medium, 256)
}

func (s *letterService) Verify(ctx context.Context, token string) (*dto.LetterVerificationResponse, error) {
	letter, err := s.repo.Letter.GetByVerifyToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.LetterVerificationResponse{Valid: false}, nil
		}
		s.logger.Error("verify letter failed", zap.Error(err))
		return nil, err
	}

	resp := &dto.LetterVerificationResponse{
		Valid:     true,
		Number:    letter.Number,
		Subject:   letter.Subject,
		Recipient: letter.Recipient,
	}
	if letter.IssuedDate != nil {
		resp.IssuedDate = letter.IssuedDate.Format("2006-01-02")
	}
	if setting, err := s.repo.Setting.Get(ctx); err == nil {
		resp.Foundation = setting.FoundationName
	}
	return resp, nil
}

// renderBody executes the template body over the field values plus the
// standard context fields every template may reference.
func (s *letterService) renderBody(ctx context.Context, body, recipient string, fieldValues map[string]string) (string, error) {
	tmpl, err := template.New("body").Option("missingkey=zero").Parse(body)
	if err != nil {
		return "", ErrTemplateInvalid
	}

	data := map[string]string{
		"Recipient": recipient,
		"Date":      s.now().Format("2006-01-02"),
	}
	if setting, err := s.repo.Setting.Get(ctx); err == nil {
		data["Foundation"] = setting.FoundationName
		data["City"] = setting.LetterCity
	}
	for k, v := range fieldValues {
		data[k] = v
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", ErrTemplateInvalid
	}
	return buf.String(), nil
}

// ── mapping helpers ──

func letterTemplateResponse(t model.LetterTemplate) dto.LetterTemplateResponse {
	return dto.LetterTemplateResponse{
		ID:       t.TemplateID,
		Name:     t.Name,
		Code:     t.Code,
		Subject:  t.Subject,
		Body:     t.Body,
		Fields:   json.RawMessage(t.Fields),
		IsActive: t.IsActive,
	}
}

func letterResponse(l model.Letter) dto.LetterResponse {
	resp := dto.LetterResponse{
		ID:         l.LetterID,
		TemplateID: l.TemplateID,
		Number:     l.Number,
		Subject:    l.Subject,
		Recipient:  l.Recipient,
		Body:       l.Body,
		Status:     l.Status,
		Version:    l.Version,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
	if l.IssuedDate != nil {
		resp.IssuedDate = l.IssuedDate.Format("2006-01-02")
	}
	if len(l.FieldValues) > 0 {
		var values map[string]string
		if err := json.Unmarshal(l.FieldValues, &values); err == nil {
			resp.FieldValues = values
		}
	}
	return resp
}
