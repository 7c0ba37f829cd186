package member

import (
	"context"
	"strings"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/repository"
	"gorm.io/gorm"
)

type MemberRepository struct {
	*repository.Repository[model.Member]
}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{Repository: repository.New[model.Member]()}
}

// FindDetail loads a member with its user and interests
func (m *MemberRepository) FindDetail(ctx context.Context, db *gorm.DB, id uint32) (*model.Member, error) {
	return m.FindByID(ctx, db, id, repository.Preload("User"), repository.Preload("Interests"))
}

func (m *MemberRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uint32) (*model.Member, error) {
	return m.First(ctx, db, repository.Where("user_id = ?", userID))
}

// SearchFilter narrows member listings. Zero values mean "any".
type SearchFilter struct {
	SearchTerm     string
	MembershipType model.MembershipType
	Interest       model.InterestType
}

func (f SearchFilter) scopes() []repository.Scope {
	var scopes []repository.Scope

	if term := strings.TrimSpace(f.SearchTerm); term != "" {
		pattern := "%" + repository.EscapeLike(strings.ToLower(term)) + "%"
		scopes = append(scopes, repository.Where(
			"(LOWER(first_name) LIKE ? ESCAPE '\\' OR LOWER(last_name) LIKE ? ESCAPE '\\' OR LOWER(first_name || ' ' || last_name) LIKE ? ESCAPE '\\')",
			pattern, pattern, pattern,
		))
	}
	if f.MembershipType != "" {
		scopes = append(scopes, repository.Where("membership_type = ?", f.MembershipType))
	}
	if f.Interest != "" {
		scopes = append(scopes, repository.Where(
			"id IN (SELECT member_id FROM member_interest WHERE interest = ? AND deleted_at IS NULL)",
			f.Interest,
		))
	}
	return scopes
}

func (m *MemberRepository) Search(ctx context.Context, db *gorm.DB, filter SearchFilter, page repository.Page) (*repository.PageResult[model.Member], error) {
	return m.Paginate(ctx, db, page, "last_name ASC, first_name ASC, id ASC", filter.scopes(), "User", "Interests")
}

// ReplaceInterests removes the member's current interest rows (soft) and inserts interests
func (m *MemberRepository) ReplaceInterests(ctx context.Context, db *gorm.DB, memberID uint32, interests []model.InterestType) error {
	if err := db.WithContext(ctx).Where("member_id = ?", memberID).Delete(&model.MemberInterest{}).Error; err != nil {
		return err
	}
	return m.AddInterests(ctx, db, memberID, interests)
}

func (m *MemberRepository) AddInterests(ctx context.Context, db *gorm.DB, memberID uint32, interests []model.InterestType) error {
	if len(interests) == 0 {
		return nil
	}
	rows := make([]model.MemberInterest, 0, len(interests))
	for _, i := range interests {
		rows = append(rows, model.MemberInterest{MemberID: memberID, Interest: i})
	}
	return db.WithContext(ctx).Create(&rows).Error
}

func (m *MemberRepository) FindInterests(ctx context.Context, db *gorm.DB, memberID uint32) ([]model.InterestType, error) {
	var interests []model.InterestType
	err := db.WithContext(ctx).
		Model(&model.MemberInterest{}).
		Where("member_id = ?", memberID).
		Order("id ASC").
		Pluck("interest", &interests).Error
	if err != nil {
		return nil, err
	}
	return interests, nil
}

type UserRepository struct {
	*repository.Repository[model.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{Repository: repository.New[model.User]()}
}

func (u *UserRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error) {
	return u.First(ctx, db, repository.Where("email = ?", NormalizeEmail(email)))
}

// IsExist also counts soft-deleted users: their email stays reserved by the unique index
func (u *UserRepository) IsExist(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	return u.Exists(ctx, db, repository.Unscoped(), repository.Where("email = ?", NormalizeEmail(email)))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type BenefitRepository struct {
	*repository.Repository[model.MemberBenefit]
}

func NewBenefitRepository() *BenefitRepository {
	return &BenefitRepository{Repository: repository.New[model.MemberBenefit]()}
}

func (b *BenefitRepository) FindByMember(ctx context.Context, db *gorm.DB, memberID uint32) ([]model.MemberBenefit, error) {
	return b.FindAll(ctx, db, repository.Where("member_id = ?", memberID), repository.OrderBy("id ASC"))
}
