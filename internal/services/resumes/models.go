package resumes

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Resume is one user's resume document. The save route keeps at most one per
// user via an atomic upsert keyed on user_id, but the collection-shaped list
// and delete routes deliberately tolerate multiplicity.
type Resume struct {
	ID              bson.ObjectID   `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd1"`
	UserID          bson.ObjectID   `bson:"user_id" json:"user_id" example:"683cdb8aa96ad71e8e075bd0"`
	PersonalDetails PersonalDetails `bson:"personal_details" json:"personalDetails"`
	Education       []Education     `bson:"education" json:"education"`
	Experience      []Experience    `bson:"experience" json:"experience"`
	Skills          []Skill         `bson:"skills" json:"skills"`
	Projects        []Project       `bson:"projects" json:"projects"`
	Certifications  []Certification `bson:"certifications" json:"certifications"`
	Template        string          `bson:"template" json:"template" example:"minimal"`
	Name            string          `bson:"name" json:"name" example:"Jo's Resume"`
	LastModified    time.Time       `bson:"last_modified" json:"lastModified" example:"2025-06-01T23:00:26.005703677Z"`
	CreatedAt       time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updated_at"`
}

// PersonalDetails carries the contact block rendered at the top of every template.
type PersonalDetails struct {
	FirstName    string `bson:"first_name" json:"firstName" example:"Jo"`
	LastName     string `bson:"last_name" json:"lastName" example:"Doe"`
	Title        string `bson:"title" json:"title" example:"Backend Engineer"`
	Email        string `bson:"email" json:"email" validate:"omitempty,email" example:"jo@example.com"`
	Phone        string `bson:"phone" json:"phone" example:"+1 555 0100"`
	Address      string `bson:"address" json:"address"`
	City         string `bson:"city" json:"city" example:"Berlin"`
	State        string `bson:"state" json:"state"`
	Zip          string `bson:"zip" json:"zip"`
	Summary      string `bson:"summary" json:"summary"`
	ProfileImage string `bson:"profile_image,omitempty" json:"profileImage,omitempty"`
}

// Education is a single education entry. ID is generated server-side when absent.
type Education struct {
	ID          string `bson:"id" json:"id" example:"01J0Z0A2B3C4D5E6F7G8H9J0K1"`
	Institution string `bson:"institution" json:"institution" validate:"required" example:"TU Berlin"`
	Degree      string `bson:"degree" json:"degree" validate:"required" example:"B.Sc."`
	Field       string `bson:"field,omitempty" json:"field,omitempty" example:"Computer Science"`
	StartDate   string `bson:"start_date,omitempty" json:"startDate,omitempty" example:"2016-10"`
	EndDate     string `bson:"end_date,omitempty" json:"endDate,omitempty" example:"2020-09"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// Experience is a single work-experience entry.
type Experience struct {
	ID          string `bson:"id" json:"id"`
	Company     string `bson:"company" json:"company" validate:"required" example:"Acme GmbH"`
	Position    string `bson:"position" json:"position" validate:"required" example:"Senior Engineer"`
	Location    string `bson:"location,omitempty" json:"location,omitempty"`
	StartDate   string `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate     string `bson:"end_date,omitempty" json:"endDate,omitempty"`
	Current     bool   `bson:"current,omitempty" json:"current,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// Skill is a named skill with a 1-5 proficiency level.
type Skill struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name" validate:"required" example:"Go"`
	Level int    `bson:"level" json:"level" validate:"omitempty,min=1,max=5" example:"4"`
}

// Project is a single project entry.
type Project struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name" validate:"required"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Link        string `bson:"link,omitempty" json:"link,omitempty" validate:"omitempty,url"`
}

// Certification is a single certification entry.
type Certification struct {
	ID     string `bson:"id" json:"id"`
	Name   string `bson:"name" json:"name" validate:"required"`
	Issuer string `bson:"issuer,omitempty" json:"issuer,omitempty"`
	Date   string `bson:"date,omitempty" json:"date,omitempty"`
	Link   string `bson:"link,omitempty" json:"link,omitempty" validate:"omitempty,url"`
}

// Empty reports whether all five structural arrays are empty; such resumes
// are eligible for the cleanup route.
func (r *Resume) Empty() bool {
	return len(r.Education) == 0 &&
		len(r.Experience) == 0 &&
		len(r.Skills) == 0 &&
		len(r.Projects) == 0 &&
		len(r.Certifications) == 0
}
