package domain

type Team struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	LeaderID  int32  `json:"leader_id"`
	CreatedOn string `json:"created_on"`
}

type TeamMember struct {
	TeamID   int32  `json:"team_id"`
	UserID   int32  `json:"user_id"`
	JoinedOn string `json:"joined_on"`
}
