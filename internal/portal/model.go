package portal

import "time"

type WorkoutFocus struct {
	ID        int       `db:"id" json:"id"`
	MemberID  int       `db:"member_id" json:"member_id"`
	Day       time.Time `db:"day" json:"day"`
	Focus     string    `db:"focus" json:"focus"`
	Notes     string    `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Review struct {
	ID        int       `db:"id" json:"id"`
	GymID     int       `db:"gym_id" json:"gym_id"`
	MemberID  int       `db:"member_id" json:"member_id"`
	Rating    int       `db:"rating" json:"rating"`
	Comment   string    `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Referral struct {
	ID          int       `db:"id" json:"id"`
	GymID       int       `db:"gym_id" json:"gym_id"`
	MemberID    int       `db:"member_id" json:"member_id"`
	Code        string    `db:"code" json:"code"`
	FriendName  string    `db:"friend_name" json:"friend_name"`
	FriendPhone string    `db:"friend_phone" json:"friend_phone"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type SaveWorkoutFocusRequest struct {
	Focus string `json:"focus" binding:"required"`
	Notes string `json:"notes"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type CreateReferralRequest struct {
	FriendName  string `json:"friend_name" binding:"required"`
	FriendPhone string `json:"friend_phone" binding:"required"`
}

type HistoryResponse struct {
	CheckIns      interface{} `json:"check_ins"`
	CurrentStreak int         `json:"current_streak"`
}
