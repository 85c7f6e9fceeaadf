package domain

// Session is the caller identity attached to every intent.
type Session struct {
	PlayerID    string `json:"user_id"`
	DisplayName string `json:"username"`
	AcademyID   string `json:"academy_id,omitempty"`
}

func (s Session) Valid() bool {
	return s.PlayerID != ""
}
