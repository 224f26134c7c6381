package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
	apperrors "github.com/fibidydev01-sys/administrasi-pkbm-sub001/pkg/errors"
)

// LetterTemplateRepository is the letter-template data-access interface.
type LetterTemplateRepository interface {
	Create(ctx context.Context, tpl *model.LetterTemplate) error
	GetByID(ctx context.Context, id string) (*model.LetterTemplate, error)
	List(ctx context.Context, offset, limit int) ([]model.LetterTemplate, int64, error)
	Update(ctx context.Context, tpl *model.LetterTemplate) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type letterTemplateRepo struct {
	db *gorm.DB
}

// NewLetterTemplateRepo creates the gorm-backed LetterTemplateRepository.
func NewLetterTemplateRepo(db *gorm.DB) LetterTemplateRepository {
	return &letterTemplateRepo{db: db}
}

func (r *letterTemplateRepo) Create(ctx context.Context, tpl *model.LetterTemplate) error {
	return r.db.WithContext(ctx).Create(tpl).Error
}

func (r *letterTemplateRepo) GetByID(ctx context.Context, id string) (*model.LetterTemplate, error) {
	var tpl model.LetterTemplate
	if err := r.db.WithContext(ctx).First(&tpl, "template_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *letterTemplateRepo) List(ctx context.Context, offset, limit int) ([]model.LetterTemplate, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.LetterTemplate{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tpls []model.LetterTemplate
	err := q.Order("name asc").Offset(offset).Limit(limit).Find(&tpls).Error
	return tpls, total, err
}

func (r *letterTemplateRepo) Update(ctx context.Context, tpl *model.LetterTemplate) error {
	return r.db.WithContext(ctx).Save(tpl).Error
}

func (r *letterTemplateRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.LetterTemplate{}).Where("template_id = ?", id).
			Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.Delete(&model.LetterTemplate{}, "template_id = ?", id).Error
	})
}

// LetterRepository is the letters data-access interface.
type LetterRepository interface {
	Create(ctx context.Context, letter *model.Letter) error
	GetByID(ctx context.Context, id string) (*model.Letter, error)
	GetByVerifyToken(ctx context.Context, token string) (*model.Letter, error)
	List(ctx context.Context, status string, offset, limit int) ([]model.Letter, int64, error)
	// Update writes the letter guarded by its optimistic-lock version and
	// returns pkg/errors.ErrOptimisticLock when the row moved underneath.
	Update(ctx context.Context, letter *model.Letter) error
	// NextSequence reserves the next letter number for a category code within
	// a calendar year.
	NextSequence(ctx context.Context, code string, year int) (int, error)
}

type letterRepo struct {
	db *gorm.DB
}

// NewLetterRepo creates the gorm-backed LetterRepository.
func NewLetterRepo(db *gorm.DB) LetterRepository {
	return &letterRepo{db: db}
}

func (r *letterRepo) Create(ctx context.Context, letter *model.Letter) error {
	return r.db.WithContext(ctx).Create(letter).Error
}

func (r *letterRepo) GetByID(ctx context.Context, id string) (*model.Letter, error) {
	var letter model.Letter
	err := r.db.WithContext(ctx).Preload("Template").First(&letter, "letter_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &letter, nil
}

func (r *letterRepo) GetByVerifyToken(ctx context.Context, token string) (*model.Letter, error) {
	var letter model.Letter
	err := r.db.WithContext(ctx).First(&letter, "verify_token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &letter, nil
}

func (r *letterRepo) List(ctx context.Context, status string, offset, limit int) ([]model.Letter, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Letter{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var letters []model.Letter
	err := q.Preload("Template").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&letters).Error
	return letters, total, err
}

func (r *letterRepo) Update(ctx context.Context, letter *model.Letter) error {
	currentVersion := letter.Version
	letter.Version = currentVersion + 1

	res := r.db.WithContext(ctx).Model(&model.Letter{}).
		Where("letter_id = ? AND version = ?", letter.LetterID, currentVersion).
		Select("*").Omit("letter_id", "created_at", "created_by").
		Updates(letter)
	if res.Error != nil {
		letter.Version = currentVersion
		return res.Error
	}
	if res.RowsAffected == 0 {
		letter.Version = currentVersion
		return apperrors.ErrOptimisticLock
	}
	return nil
}

func (r *letterRepo) NextSequence(ctx context.Context, code string, year int) (int, error) {
	var max int
	err := r.db.WithContext(ctx).Model(&model.Letter{}).
		Joins("JOIN letter_templates ON letter_templates.template_id = letters.template_id").
		Where("letter_templates.code = ? AND letters.year = ?", code, year).
		Select("COALESCE(MAX(letters.sequence), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}
