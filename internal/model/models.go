package model

// All returns every model in foreign-key dependency order (referenced tables first).
func All() []interface{} {
	return []interface{}{
		&User{},
		&Member{},
		&MemberInterest{},
		&MemberBenefit{},
		&Event{},
		&EventAttendance{},
		&ContentModule{},
		&ModuleBooking{},
		&ModuleProgress{},
		&Connection{},
		&Conversation{},
		&ConversationParticipant{},
		&ChatMessage{},
		&Document{},
	}
}
