package member

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MemberService struct {
	db                *gorm.DB
	memberRepository  *MemberRepository
	userRepository    *UserRepository
	benefitRepository *BenefitRepository
	attendances       *repository.Repository[model.EventAttendance]
	bookings          *repository.Repository[model.ModuleBooking]
	now               func() time.Time
}

func NewMemberService(db *gorm.DB, memberRepository *MemberRepository, userRepository *UserRepository, benefitRepository *BenefitRepository) *MemberService {
	return &MemberService{
		db:                db,
		memberRepository:  memberRepository,
		userRepository:    userRepository,
		benefitRepository: benefitRepository,
		attendances:       repository.New[model.EventAttendance](),
		bookings:          repository.New[model.ModuleBooking](),
		now:               func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemberService) loadMember(ctx context.Context, db *gorm.DB, memberID uint32) (*model.Member, error) {
	member, err := s.memberRepository.FindDetail(ctx, db, memberID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("member id=%d: %w", memberID, ErrMemberNotFound)
		}
		return nil, fmt.Errorf("find member: %w", err)
	}
	return member, nil
}

func (s *MemberService) GetProfile(ctx context.Context, memberID uint32) (*MemberResponse, error) {
	member, err := s.loadMember(ctx, s.db, memberID)
	if err != nil {
		return nil, err
	}
	resp := ToMemberResponse(member)
	return &resp, nil
}

func (s *MemberService) UpdateProfile(ctx context.Context, memberID uint32, req *UpdateProfileRequest) (*MemberResponse, error) {
	var member *model.Member
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		member, err = s.loadMember(ctx, tx, memberID)
		if err != nil {
			return err
		}

		member.FirstName = req.FirstName
		member.LastName = req.LastName
		member.PhoneNumber = req.PhoneNumber
		member.Bio = req.Bio
		if err := tx.WithContext(ctx).Model(member).Select("first_name", "last_name", "phone_number", "bio").Updates(member).Error; err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Member profile updated", "member_id", memberID)
	resp := ToMemberResponse(member)
	return &resp, nil
}

func (s *MemberService) List(ctx context.Context, page repository.Page) (*repository.PageResult[MemberResponse], error) {
	return s.Search(ctx, SearchFilter{}, page)
}

func (s *MemberService) Search(ctx context.Context, filter SearchFilter, page repository.Page) (*repository.PageResult[MemberResponse], error) {
	result, err := s.memberRepository.Search(ctx, s.db, filter, page)
	if err != nil {
		return nil, fmt.Errorf("search members: %w", err)
	}
	return repository.MapPage(result, ToMemberResponse), nil
}

// Create adds a user with a linked member (admin path). Defaults to Basic/Active.
func (s *MemberService) Create(ctx context.Context, req *CreateMemberRequest) (*MemberResponse, error) {
	log := logger.FromContext(ctx)
	var memberID uint32

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		_, member, err := s.CreateAccount(ctx, tx, req.Email, req.Password, req.FirstName, req.LastName)
		if err != nil {
			return err
		}

		member.PhoneNumber = req.PhoneNumber
		member.Bio = req.Bio
		if req.MembershipType != "" {
			member.MembershipType = model.MembershipType(req.MembershipType)
		}
		if err := s.memberRepository.Update(ctx, tx, member); err != nil {
			return fmt.Errorf("update member: %w", err)
		}
		if err := s.memberRepository.AddInterests(ctx, tx, member.ID, dedupeInterests(toInterestTypes(req.Interests))); err != nil {
			return fmt.Errorf("add interests: %w", err)
		}
		memberID = member.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Member created by admin", "member_id", memberID, "email", logger.MaskEmail(req.Email))
	return s.GetProfile(ctx, memberID)
}

// CreateAccount inserts a user and its Basic/Active member inside tx. Shared with registration.
func (s *MemberService) CreateAccount(ctx context.Context, tx *gorm.DB, email, password, firstName, lastName string) (*model.User, *model.Member, error) {
	log := logger.FromContext(ctx)

	exists, err := s.userRepository.IsExist(ctx, tx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("check user existence: %w", err)
	}
	if exists {
		log.Warn("User already exists", "email", logger.MaskEmail(email))
		return nil, nil, fmt.Errorf("email taken: %w", ErrMemberAlreadyExists)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.NewUser(NormalizeEmail(email), string(hashed), firstName, lastName)
	if err := s.userRepository.Create(ctx, tx, user); err != nil {
		if repository.IsDuplicate(err) {
			return nil, nil, fmt.Errorf("email taken: %w", ErrMemberAlreadyExists)
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	member := model.NewMember(user.ID, firstName, lastName)
	if err := s.memberRepository.Create(ctx, tx, member); err != nil {
		return nil, nil, fmt.Errorf("create member: %w", err)
	}
	member.User = user

	return user, member, nil
}

func (s *MemberService) GetByID(ctx context.Context, id uint32) (*MemberResponse, error) {
	return s.GetProfile(ctx, id)
}

func (s *MemberService) Update(ctx context.Context, id uint32, req *UpdateMemberRequest) (*MemberResponse, error) {
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		member, err := s.loadMember(ctx, tx, id)
		if err != nil {
			return err
		}

		member.FirstName = req.FirstName
		member.LastName = req.LastName
		member.PhoneNumber = req.PhoneNumber
		member.Bio = req.Bio
		member.MembershipType = model.MembershipType(req.MembershipType)
		member.Status = model.MembershipStatus(req.Status)
		err = tx.WithContext(ctx).Model(member).
			Select("first_name", "last_name", "phone_number", "bio", "membership_type", "status").
			Updates(member).Error
		if err != nil {
			return fmt.Errorf("update member: %w", err)
		}

		if req.Interests != nil {
			if err := s.memberRepository.ReplaceInterests(ctx, tx, id, dedupeInterests(toInterestTypes(req.Interests))); err != nil {
				return fmt.Errorf("replace interests: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Member updated by admin", "member_id", id)
	return s.GetProfile(ctx, id)
}

// Delete soft-deletes the member and its user; historical rows keep their foreign keys
func (s *MemberService) Delete(ctx context.Context, id uint32) error {
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		member, err := s.loadMember(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.memberRepository.Delete(ctx, tx, member.ID); err != nil {
			return fmt.Errorf("delete member: %w", err)
		}
		if err := s.userRepository.Delete(ctx, tx, member.UserID); err != nil && !repository.IsNotFound(err) {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("Member deleted", "member_id", id)
	return nil
}

// ChangeMembershipType applies any transition; no transition rules exist
func (s *MemberService) ChangeMembershipType(ctx context.Context, id uint32, membershipType model.MembershipType) (*MemberResponse, error) {
	if err := s.updateColumn(ctx, id, "membership_type", membershipType); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("Membership type changed", "member_id", id, "membership_type", membershipType)
	return s.GetProfile(ctx, id)
}

func (s *MemberService) ChangeStatus(ctx context.Context, id uint32, status model.MembershipStatus) (*MemberResponse, error) {
	if err := s.updateColumn(ctx, id, "status", status); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("Membership status changed", "member_id", id, "status", status)
	return s.GetProfile(ctx, id)
}

func (s *MemberService) updateColumn(ctx context.Context, id uint32, column string, value interface{}) error {
	result := s.db.WithContext(ctx).Model(&model.Member{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return fmt.Errorf("update member %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("member id=%d: %w", id, ErrMemberNotFound)
	}
	return nil
}

func (s *MemberService) GetInterests(ctx context.Context, memberID uint32) (*InterestsResponse, error) {
	interests, err := s.memberRepository.FindInterests(ctx, s.db, memberID)
	if err != nil {
		return nil, fmt.Errorf("find interests: %w", err)
	}
	return &InterestsResponse{Interests: interestStrings(interests)}, nil
}

// ExpressInterest adds interests the member does not hold yet; repeated calls are no-ops
func (s *MemberService) ExpressInterest(ctx context.Context, memberID uint32, req *ExpressInterestRequest) (*InterestsResponse, error) {
	var added []model.InterestType
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if _, err := s.loadMember(ctx, tx, memberID); err != nil {
			return err
		}

		current, err := s.memberRepository.FindInterests(ctx, tx, memberID)
		if err != nil {
			return fmt.Errorf("find interests: %w", err)
		}
		held := make(map[model.InterestType]bool, len(current))
		for _, i := range current {
			held[i] = true
		}

		for _, i := range dedupeInterests(toInterestTypes(req.Interests)) {
			if !held[i] {
				added = append(added, i)
			}
		}
		return s.memberRepository.AddInterests(ctx, tx, memberID, added)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Member expressed interest", "member_id", memberID, "added", len(added))
	return s.GetInterests(ctx, memberID)
}

// GetSuggestions has no recommendation logic behind it and always returns an empty list
func (s *MemberService) GetSuggestions(ctx context.Context, memberID uint32) ([]SuggestionResponse, error) {
	if _, err := s.loadMember(ctx, s.db, memberID); err != nil {
		return nil, err
	}
	return []SuggestionResponse{}, nil
}

func (s *MemberService) GetBenefits(ctx context.Context, memberID uint32) ([]BenefitResponse, error) {
	benefits, err := s.benefitRepository.FindByMember(ctx, s.db, memberID)
	if err != nil {
		return nil, fmt.Errorf("find benefits: %w", err)
	}
	out := make([]BenefitResponse, 0, len(benefits))
	for i := range benefits {
		out = append(out, toBenefitResponse(&benefits[i]))
	}
	return out, nil
}

func (s *MemberService) UseBenefit(ctx context.Context, memberID, benefitID uint32) (*BenefitResponse, error) {
	var benefit *model.MemberBenefit
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		benefit, err = s.benefitRepository.First(ctx, tx,
			repository.Where("id = ? AND member_id = ?", benefitID, memberID),
			repository.ForUpdate(),
		)
		if err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("benefit id=%d: %w", benefitID, ErrBenefitNotFound)
			}
			return fmt.Errorf("find benefit: %w", err)
		}
		if benefit.IsUsed {
			return fmt.Errorf("benefit id=%d: %w", benefitID, ErrBenefitAlreadyUsed)
		}

		usedAt := s.now()
		benefit.IsUsed = true
		benefit.UsedAt = &usedAt
		return s.benefitRepository.Update(ctx, tx, benefit)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Benefit used", "member_id", memberID, "benefit_id", benefitID)
	resp := toBenefitResponse(benefit)
	return &resp, nil
}

func (s *MemberService) GrantBenefit(ctx context.Context, memberID uint32, req *GrantBenefitRequest) (*BenefitResponse, error) {
	if _, err := s.loadMember(ctx, s.db, memberID); err != nil {
		return nil, err
	}

	benefit := &model.MemberBenefit{MemberID: memberID, Name: req.Name, Description: req.Description}
	if err := s.benefitRepository.Create(ctx, s.db, benefit); err != nil {
		return nil, fmt.Errorf("create benefit: %w", err)
	}

	logger.FromContext(ctx).Info("Benefit granted", "member_id", memberID, "benefit_id", benefit.ID)
	resp := toBenefitResponse(benefit)
	return &resp, nil
}

func (s *MemberService) Dashboard(ctx context.Context, memberID uint32) (*DashboardResponse, error) {
	member, err := s.loadMember(ctx, s.db, memberID)
	if err != nil {
		return nil, err
	}

	benefits, err := s.GetBenefits(ctx, memberID)
	if err != nil {
		return nil, err
	}

	attendances, err := s.attendances.FindAll(ctx, s.db,
		repository.Where("member_id = ?", memberID),
		repository.Where("event_id IN (SELECT id FROM event WHERE start_date >= ? AND is_cancelled = ? AND deleted_at IS NULL)", s.now(), false),
		repository.Preload("Event"),
	)
	if err != nil {
		return nil, fmt.Errorf("find upcoming events: %w", err)
	}
	slices.SortFunc(attendances, func(a, b model.EventAttendance) int {
		if a.Event == nil || b.Event == nil {
			return 0
		}
		return a.Event.StartDate.Compare(b.Event.StartDate)
	})

	bookings, err := s.bookings.FindAll(ctx, s.db,
		repository.Where("member_id = ? AND is_completed = ?", memberID, false),
		repository.Preload("ContentModule"),
		repository.OrderBy("booked_at DESC"),
	)
	if err != nil {
		return nil, fmt.Errorf("find active modules: %w", err)
	}

	resp := &DashboardResponse{
		Member:         ToMemberResponse(member),
		UsedBenefits:   []BenefitResponse{},
		UnusedBenefits: []BenefitResponse{},
		UpcomingEvents: make([]DashboardEvent, 0, len(attendances)),
		ActiveModules:  make([]DashboardModule, 0, len(bookings)),
	}
	for _, b := range benefits {
		if b.IsUsed {
			resp.UsedBenefits = append(resp.UsedBenefits, b)
		} else {
			resp.UnusedBenefits = append(resp.UnusedBenefits, b)
		}
	}
	for _, a := range attendances {
		if a.Event == nil {
			continue
		}
		resp.UpcomingEvents = append(resp.UpcomingEvents, DashboardEvent{
			ID:           a.Event.ID,
			Title:        a.Event.Title,
			Location:     a.Event.Location,
			StartDate:    a.Event.StartDate,
			RegisteredAt: a.RegisteredAt,
		})
	}
	for _, b := range bookings {
		if b.ContentModule == nil {
			continue
		}
		resp.ActiveModules = append(resp.ActiveModules, DashboardModule{
			ID:       b.ContentModule.ID,
			Title:    b.ContentModule.Title,
			BookedAt: b.BookedAt,
		})
	}

	return resp, nil
}

func dedupeInterests(in []model.InterestType) []model.InterestType {
	seen := make(map[model.InterestType]bool, len(in))
	out := make([]model.InterestType, 0, len(in))
	for _, i := range in {
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	return out
}
