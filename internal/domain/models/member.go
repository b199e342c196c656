package models

import "time"

type Member struct {
	ID               uint   `db:"id" json:"id"`
	FullName         string `db:"full_name" json:"full_name"`
	Nim              string `db:"nim" json:"nim"`
	Age              int    `db:"age" json:"age"`
	Job              string `db:"job" json:"job"`
	Location         string `db:"location" json:"location"`
	InstagramAccount string `db:"instagram_account" json:"instagram_account"`
	LinkToInstagram  string `db:"link_to_instagram" json:"link_to_instagram"`
	Quote            string `db:"quote" json:"quote"`
	ImagePath        string `db:"image_path" json:"image_path"`

	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

// MemberList is the envelope served by /api/members.
type MemberList struct {
	Data []Member `json:"data"`
}
