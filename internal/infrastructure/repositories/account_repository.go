package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/you/elearnauth/domain"
	"gorm.io/gorm"
)

// AccountRepositoryImpl implements domain.AccountRepository using GORM
type AccountRepositoryImpl struct {
	db *gorm.DB
}

// DBAccount represents the database model for Account
type DBAccount struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Name         string    `gorm:"size:64"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `gorm:"column:password"`
	Role         string    `gorm:"index;size:16;default:user"`
	AvatarURL    string    `gorm:"size:1024"`
	IsVerified   bool      `gorm:"index"`
	Courses      []string  `gorm:"serializer:json"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBAccount) TableName() string {
	return "accounts"
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) domain.AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

// Create implements domain.AccountRepository. Ids are assigned here when absent.
func (r *AccountRepositoryImpl) Create(ctx context.Context, account *domain.Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if account.Role == "" {
		account.Role = domain.RoleUser
	}
	dbAccount := r.domainToDB(account)
	if err := r.db.WithContext(ctx).Create(dbAccount).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	account.CreatedAt = dbAccount.CreatedAt
	account.UpdatedAt = dbAccount.UpdatedAt
	return nil
}

// FindByEmail implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, "email = ?", normalizeEmail(email))
}

// FindByID implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.findOne(ctx, "id = ?", id)
}

// Update implements domain.AccountRepository
func (r *AccountRepositoryImpl) Update(ctx context.Context, account *domain.Account) error {
	res := r.db.WithContext(ctx).Model(&DBAccount{}).Where("id = ?", account.ID).Updates(map[string]interface{}{
		"name":        account.Name,
		"password":    account.PasswordHash,
		"role":        account.Role,
		"avatar_url":  account.AvatarURL,
		"is_verified": account.IsVerified,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// MarkVerified implements domain.AccountRepository
func (r *AccountRepositoryImpl) MarkVerified(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&DBAccount{}).Where("id = ?", id).Update("is_verified", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List implements domain.AccountRepository, newest first
func (r *AccountRepositoryImpl) List(ctx context.Context) ([]*domain.Account, error) {
	var rows []DBAccount
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	accounts := make([]*domain.Account, 0, len(rows))
	for i := range rows {
		accounts = append(accounts, r.dbToDomain(&rows[i]))
	}
	return accounts, nil
}

// Delete implements domain.AccountRepository
func (r *AccountRepositoryImpl) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&DBAccount{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *AccountRepositoryImpl) findOne(ctx context.Context, query string, arg string) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbAccount), nil
}

// domainToDB converts domain account to database account
func (r *AccountRepositoryImpl) domainToDB(a *domain.Account) *DBAccount {
	return &DBAccount{
		ID:           a.ID,
		Name:         a.Name,
		Email:        normalizeEmail(a.Email),
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
		AvatarURL:    a.AvatarURL,
		IsVerified:   a.IsVerified,
		Courses:      a.Courses,
	}
}

// dbToDomain converts database account to domain account
func (r *AccountRepositoryImpl) dbToDomain(d *DBAccount) *domain.Account {
	return &domain.Account{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		AvatarURL:    d.AvatarURL,
		IsVerified:   d.IsVerified,
		Courses:      d.Courses,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
