package domain

import "time"

type Team struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Creator     UserRef   `json:"creator"`
	Members     []UserRef `json:"members"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HasMember reports whether userID is in the team's member set.
func (t *Team) HasMember(userID int64) bool {
	for _, m := range t.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// IsCreator reports whether userID created the team.
func (t *Team) IsCreator(userID int64) bool {
	return t.Creator.ID == userID
}
