package model

type MembershipType string

const (
	MembershipBasic     MembershipType = "Basic"
	MembershipPremium   MembershipType = "Premium"
	MembershipCorporate MembershipType = "Corporate"
	MembershipNonProfit MembershipType = "NonProfit"
	MembershipLifetime  MembershipType = "Lifetime"
)

var membershipTypes = []MembershipType{
	MembershipBasic, MembershipPremium, MembershipCorporate, MembershipNonProfit, MembershipLifetime,
}

func (t MembershipType) Valid() bool {
	for _, v := range membershipTypes {
		if v == t {
			return true
		}
	}
	return false
}

type MembershipStatus string

const (
	StatusPending   MembershipStatus = "Pending"
	StatusActive    MembershipStatus = "Active"
	StatusSuspended MembershipStatus = "Suspended"
	StatusCancelled MembershipStatus = "Cancelled"
	StatusExpired   MembershipStatus = "Expired"
)

var membershipStatuses = []MembershipStatus{
	StatusPending, StatusActive, StatusSuspended, StatusCancelled, StatusExpired,
}

func (s MembershipStatus) Valid() bool {
	for _, v := range membershipStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type InterestType string

const (
	InterestTechnology  InterestType = "Technology"
	InterestArt         InterestType = "Art"
	InterestSports      InterestType = "Sports"
	InterestMusic       InterestType = "Music"
	InterestEducation   InterestType = "Education"
	InterestEnvironment InterestType = "Environment"
	InterestHealth      InterestType = "Health"
	InterestBusiness    InterestType = "Business"
	InterestSocial      InterestType = "Social"
	InterestOther       InterestType = "Other"
)

var interestTypes = []InterestType{
	InterestTechnology, InterestArt, InterestSports, InterestMusic, InterestEducation,
	InterestEnvironment, InterestHealth, InterestBusiness, InterestSocial, InterestOther,
}

// AllInterests returns every interest in declaration order.
func AllInterests() []InterestType {
	out := make([]InterestType, len(interestTypes))
	copy(out, interestTypes)
	return out
}

func (i InterestType) Valid() bool {
	for _, v := range interestTypes {
		if v == i {
			return true
		}
	}
	return false
}

type ModuleCompletionStatus string

const (
	ModuleNotStarted ModuleCompletionStatus = "NotStarted"
	ModuleInProgress ModuleCompletionStatus = "InProgress"
	ModuleCompleted  ModuleCompletionStatus = "Completed"
	ModuleFailed     ModuleCompletionStatus = "Failed"
)

func (s ModuleCompletionStatus) Valid() bool {
	switch s {
	case ModuleNotStarted, ModuleInProgress, ModuleCompleted, ModuleFailed:
		return true
	}
	return false
}
