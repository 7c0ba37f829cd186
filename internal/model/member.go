package model

import "time"

// Member represents an organization member, linked one-to-one with a User
type Member struct {
	BaseEntity

	UserID         uint32           `gorm:"column:user_id;not null;uniqueIndex:idx_member_user"`
	User           *User            `gorm:"foreignKey:UserID"`
	FirstName      string           `gorm:"column:first_name;size:50;not null"`
	LastName       string           `gorm:"column:last_name;size:50;not null"`
	PhoneNumber    string           `gorm:"column:phone_number;size:30"`
	Bio            string           `gorm:"column:bio;size:1000"`
	MembershipType MembershipType   `gorm:"column:membership_type;size:20;not null;index"`
	Status         MembershipStatus `gorm:"column:status;size:20;not null"`
	LastLogin      *time.Time       `gorm:"column:last_login"`

	Interests []MemberInterest `gorm:"foreignKey:MemberID"`
}

func (*Member) TableName() string {
	return "member"
}

// NewMember creates a Basic/Active member for the given user
func NewMember(userID uint32, firstName, lastName string) *Member {
	return &Member{
		UserID:         userID,
		FirstName:      firstName,
		LastName:       lastName,
		MembershipType: MembershipBasic,
		Status:         StatusActive,
	}
}

func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// InterestList flattens the loaded interest rows.
func (m *Member) InterestList() []InterestType {
	out := make([]InterestType, 0, len(m.Interests))
	for _, i := range m.Interests {
		out = append(out, i.Interest)
	}
	return out
}

// MemberInterest is one interest tag of a member (normalized instead of a serialized list)
type MemberInterest struct {
	BaseEntity

	MemberID uint32       `gorm:"column:member_id;not null;index:idx_member_interest"`
	Interest InterestType `gorm:"column:interest;size:20;not null;index:idx_member_interest"`
}

func (*MemberInterest) TableName() string {
	return "member_interest"
}

// MemberBenefit is a named perk tracked as used/unused per member
type MemberBenefit struct {
	BaseEntity

	MemberID    uint32     `gorm:"column:member_id;not null;index"`
	Member      *Member    `gorm:"foreignKey:MemberID"`
	Name        string     `gorm:"column:name;size:100;not null"`
	Description string     `gorm:"column:description;size:1000"`
	IsUsed      bool       `gorm:"column:is_used;not null"`
	UsedAt      *time.Time `gorm:"column:used_at"`
}

func (*MemberBenefit) TableName() string {
	return "member_benefit"
}
