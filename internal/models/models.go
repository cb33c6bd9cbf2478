// Package models contains the data models and DTOs for the admin console.
// Every entity here is server-owned; the console holds ephemeral copies.
package models

import (
	"strconv"
	"time"
)

// ReviewStatus represents the moderation state of a raw video.
type ReviewStatus string

// ReviewStatus constants define the possible moderation states.
const (
	ReviewStatusNotReviewed ReviewStatus = "not-reviewed"
	ReviewStatusApproved    ReviewStatus = "approved"
	ReviewStatusRejected    ReviewStatus = "rejected"
)

// Platform represents the ready-video platform visibility tag.
type Platform string

// Platform constants define where a ready video is visible.
const (
	PlatformAll Platform = "all"
	PlatformWeb Platform = "web"
	PlatformApp Platform = "app"
)

// Athlete is a person videos are attributed to.
type Athlete struct {
	AthleteID int       `json:"athleteId"`
	Name      string    `json:"name"`
	SportID   int       `json:"sportId"`
	Profile   string    `json:"profile"`
	Gender    string    `json:"gender"`
	CreatedAt time.Time `json:"createdAt"`
}

// Sport is a reference-data record.
type Sport struct {
	SportID int    `json:"sportId"`
	Name    string `json:"name"`
}

// VideoCategory is a top-level content category.
type VideoCategory struct {
	CategoryID int    `json:"categoryId"`
	Name       string `json:"name"`
}

// VideoSubCategory belongs to exactly one category and is only meaningful
// in that category's context.
type VideoSubCategory struct {
	SubCategoryID int    `json:"subCategoryId"`
	Name          string `json:"name"`
	CategoryID    int    `json:"categoryId"`
}

// RawVideo is a user-submitted video awaiting moderation. Created by an
// external ingestion path; the console only reviews and deletes.
type RawVideo struct {
	ID            int          `json:"id"`
	ContactNumber string       `json:"contactNumber"`
	EmailID       string       `json:"emailId"`
	URL           string       `json:"url"`
	Status        ReviewStatus `json:"status"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// ReadyVideo is a curated video created through the upload flow.
//
// The backend returns both the reference ids and the denormalized display
// names; VideoID comes back as a string and is validated client-side
// before a row is rendered.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ReadyVideo struct {
	VideoID       string    `json:"videoId"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	AthleteID     int       `json:"athleteId"`
	CategoryID    int       `json:"categoryId"`
	SubCategoryID int       `json:"subCategoryId"`
	Athlete       string    `json:"athlete"`
	Category      string    `json:"category"`
	Subcategory   string    `json:"subcategory"`
	Grade         string    `json:"grade"`
	Gender        string    `json:"gender"`
	Searchable    bool      `json:"searchable"`
	PublicPreview bool      `json:"publicPreview"`
	Platform      Platform  `json:"plateform"`
	URL           string    `json:"url"`
	Thumbnail     string    `json:"thumbnail"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ParsedID returns the video's numeric id. ok is false when the id is
// missing or does not parse as a positive integer; such rows are dropped
// before rendering.
func (v ReadyVideo) ParsedID() (int, bool) {
	id, err := strconv.Atoi(v.VideoID)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// User is the authenticated admin's profile as returned by login.
type User struct {
	UserID        string      `json:"userId"`
	UserName      string      `json:"userName"`
	EmailID       string      `json:"emailId"`
	ContactNumber string      `json:"contactNumber"`
	Location      string      `json:"location"`
	Grade         int         `json:"grade"`
	UserSports    []UserSport `json:"userSports"`
}

// UserSport links a user to a sport.
type UserSport struct {
	SportID int `json:"sportId"`
}

// UserDetails is the persisted session: profile plus token pair.
type UserDetails struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Pagination is the server-declared pagination block. The client never
// derives totals itself.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalRecords int `json:"totalRecords"`
}

// GradeReport aggregates user counts for one grade bucket.
type GradeReport struct {
	Total   int `json:"total"`
	Male    int `json:"male"`
	Female  int `json:"female"`
	Unknown int `json:"unknown"`
}

// UsersReport is the full report payload.
type UsersReport struct {
	Report     map[string]GradeReport `json:"report"`
	TotalUsers int                    `json:"totalUsers"`
}
