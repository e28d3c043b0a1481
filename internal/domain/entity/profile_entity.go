package entity

import (
	"time"
)

// ProfileOwner is the slice of the owning user that profile reads expose
// (joined from users at query time).
type ProfileOwner struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Experience is one professional history entry, stored as part of the
// profile document.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

// Education is one education history entry.
type Education struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

// Social holds the profile's social network links.
type Social struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}

// Profile is a user's developer profile. UserID is the immutable owner
// reference, set at creation and never reassigned.
type Profile struct {
	ID             string       `json:"id"`
	UserID         string       `json:"-"`
	User           ProfileOwner `json:"user"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Status         string       `json:"status"`
	Skills         []string     `json:"skills"`
	Bio            string       `json:"bio,omitempty"`
	GithubUsername string       `json:"githubusername,omitempty"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Social         Social       `json:"social"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
