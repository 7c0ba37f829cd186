package member

import (
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
)

type MemberResponse struct {
	ID             uint32     `json:"id"`
	UserID         uint32     `json:"userId"`
	Email          string     `json:"email"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Name           string     `json:"name"`
	PhoneNumber    string     `json:"phoneNumber,omitempty"`
	Bio            string     `json:"bio,omitempty"`
	MembershipType string     `json:"membershipType"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastLogin      *time.Time `json:"lastLogin"`
	Interests      []string   `json:"interests"`
}

// ToMemberResponse expects User and Interests to be preloaded; missing associations render empty
func ToMemberResponse(m *model.Member) MemberResponse {
	resp := MemberResponse{
		ID:             m.ID,
		UserID:         m.UserID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Name:           m.FullName(),
		PhoneNumber:    m.PhoneNumber,
		Bio:            m.Bio,
		MembershipType: string(m.MembershipType),
		Status:         string(m.Status),
		CreatedAt:      m.CreatedAt,
		LastLogin:      m.LastLogin,
		Interests:      interestStrings(m.InterestList()),
	}
	if m.User != nil {
		resp.Email = m.User.Email
	}
	return resp
}

func interestStrings(in []model.InterestType) []string {
	out := make([]string, 0, len(in))
	for _, i := range in {
		out = append(out, string(i))
	}
	return out
}

func toInterestTypes(in []string) []model.InterestType {
	out := make([]model.InterestType, 0, len(in))
	for _, i := range in {
		out = append(out, model.InterestType(i))
	}
	return out
}

type CreateMemberRequest struct {
	Email          string   `json:"email" binding:"required,email,max=100"`
	Password       string   `json:"password" binding:"required,min=8,bcryptlen"`
	FirstName      string   `json:"firstName" binding:"required,min=1,max=50"`
	LastName       string   `json:"lastName" binding:"required,min=1,max=50"`
	PhoneNumber    string   `json:"phoneNumber" binding:"omitempty,phone"`
	Bio            string   `json:"bio" binding:"max=1000"`
	MembershipType string   `json:"membershipType" binding:"omitempty,membershiptype"`
	Interests      []string `json:"interests" binding:"omitempty,dive,interest"`
}

type UpdateProfileRequest struct {
	FirstName   string `json:"firstName" binding:"required,min=1,max=50"`
	LastName    string `json:"lastName" binding:"required,min=1,max=50"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty,phone"`
	Bio         string `json:"bio" binding:"max=1000"`
}

// UpdateMemberRequest is the admin edit. Nil interests leave them unchanged.
type UpdateMemberRequest struct {
	FirstName      string   `json:"firstName" binding:"required,min=1,max=50"`
	LastName       string   `json:"lastName" binding:"required,min=1,max=50"`
	PhoneNumber    string   `json:"phoneNumber" binding:"omitempty,phone"`
	Bio            string   `json:"bio" binding:"max=1000"`
	MembershipType string   `json:"membershipType" binding:"required,membershiptype"`
	Status         string   `json:"status" binding:"required,membershipstatus"`
	Interests      []string `json:"interests" binding:"omitempty,dive,interest"`
}

type UpdateMembershipTypeRequest struct {
	MembershipType string `json:"membershipType" binding:"required,membershiptype"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,membershipstatus"`
}

type ExpressInterestRequest struct {
	Interests []string `json:"interests" binding:"required,min=1,dive,interest"`
}

type InterestsResponse struct {
	Interests []string `json:"interests"`
}

type SearchMembersQuery struct {
	SearchTerm     string `form:"searchTerm" binding:"max=100"`
	MembershipType string `form:"membershipType" binding:"omitempty,membershiptype"`
	Interest       string `form:"interest" binding:"omitempty,interest"`
	PageSize       int    `form:"pageSize" binding:"omitempty,gte=1,lte=100"`
	PageNumber     int    `form:"pageNumber" binding:"omitempty,gte=1"`
}

// SuggestionResponse is reserved for personalized suggestions; none are produced yet
type SuggestionResponse struct {
	Type  string `json:"type"`
	ID    uint32 `json:"id"`
	Title string `json:"title"`
}

type BenefitResponse struct {
	ID          uint32     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	IsUsed      bool       `json:"isUsed"`
	UsedAt      *time.Time `json:"usedAt"`
}

func toBenefitResponse(b *model.MemberBenefit) BenefitResponse {
	return BenefitResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		IsUsed:      b.IsUsed,
		UsedAt:      b.UsedAt,
	}
}

type GrantBenefitRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=1000"`
}

type DashboardResponse struct {
	Member         MemberResponse    `json:"member"`
	UsedBenefits   []BenefitResponse `json:"usedBenefits"`
	UnusedBenefits []BenefitResponse `json:"unusedBenefits"`
	UpcomingEvents []DashboardEvent  `json:"upcomingEvents"`
	ActiveModules  []DashboardModule `json:"activeModules"`
}

type DashboardEvent struct {
	ID           uint32    `json:"id"`
	Title        string    `json:"title"`
	Location     string    `json:"location,omitempty"`
	StartDate    time.Time `json:"startDate"`
	RegisteredAt time.Time `json:"registeredAt"`
}

type DashboardModule struct {
	ID       uint32    `json:"id"`
	Title    string    `json:"title"`
	BookedAt time.Time `json:"bookedAt"`
}
