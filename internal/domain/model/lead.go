// Package model defines the core data types and structures used throughout the sdrleads system.
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxLeadNameLen = 255
)

// LeadStatus represents the workflow status of a lead. It is a simple label,
// not a guarded state machine: any valid value is settable via update.
type LeadStatus string

const (
	// LeadStatusSourced indicates a lead freshly pulled in from a sourcing run.
	LeadStatusSourced LeadStatus = "sourced"
	// LeadStatusVerified indicates a lead whose contact details were verified.
	LeadStatusVerified LeadStatus = "verified"
	// LeadStatusEnriched indicates a lead with additional enrichment data attached.
	LeadStatusEnriched LeadStatus = "enriched"
	// LeadStatusRejected indicates a lead ruled out of the pipeline.
	LeadStatusRejected LeadStatus = "rejected"
)

// Valid reports whether the lead status is supported.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusSourced, LeadStatusVerified, LeadStatusEnriched, LeadStatusRejected:
		return true
	default:
		return false
	}
}

// Updatable reports whether the status may be set through the PATCH endpoint.
// Rejection happens through its own flow, so it is excluded here.
func (s LeadStatus) Updatable() bool {
	switch s {
	case LeadStatusSourced, LeadStatusVerified, LeadStatusEnriched:
		return true
	default:
		return false
	}
}

// Known lead source labels. Source is free-form; these cover the manual-entry
// dropdown plus the scraping integration.
const (
	LeadSourceWebsite  = "website"
	LeadSourceLinkedin = "linkedin"
	LeadSourceReferral = "referral"
	LeadSourceColdCall = "cold-call"
	LeadSourceEmail    = "email"
	// LeadSourceApollo tags leads produced by the Apollo scraping actor.
	LeadSourceApollo = "Apollo"
)

// NormalizeEmail lowercases and trims an email for use as the dedup key.
// An empty result means the lead is exempt from deduplication.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Lead represents a prospective contact record.
type Lead struct {
	ID        string     `json:"id"                   db:"id"`
	Name      string     `json:"name"                 db:"name"`
	FirstName *string    `json:"first_name,omitempty" db:"first_name"`
	LastName  *string    `json:"last_name,omitempty"  db:"last_name"`
	Email     *string    `json:"email,omitempty"      db:"email"`
	Company   string     `json:"company"              db:"company"`
	Industry  string     `json:"industry"             db:"industry"`
	Headline  *string    `json:"headline,omitempty"   db:"headline"`
	Status    LeadStatus `json:"status"               db:"status"`
	Source    string     `json:"source"               db:"source"`
	Sprint    *string    `json:"sprint,omitempty"     db:"sprint"`
	Category  *string    `json:"category,omitempty"   db:"category"`
	Rank      *string    `json:"rank,omitempty"       db:"rank"`
	Country   *string    `json:"country,omitempty"    db:"country"`
	City      *string    `json:"city,omitempty"       db:"city"`
	Notes     *string    `json:"notes,omitempty"      db:"notes"`
	Title     *string    `json:"title,omitempty"      db:"title"`

	PhotoURL    *string `json:"photo_url,omitempty"    db:"photo_url"`
	LinkedinURL *string `json:"linkedin_url,omitempty" db:"linkedin_url"`

	OrganizationLogoURL               *string `json:"organization_logo_url,omitempty"                db:"organization_logo_url"`
	OrganizationWebsiteURL            *string `json:"organization_website_url,omitempty"             db:"organization_website_url"`
	OrganizationLinkedinURL           *string `json:"organization_linkedin_url,omitempty"            db:"organization_linkedin_url"`
	OrganizationEstimatedNumEmployees *int    `json:"organization_estimated_num_employees,omitempty" db:"organization_estimated_num_employees"`

	// SourcingJobID links back to the sourcing run that produced the lead.
	SourcingJobID *string `json:"sourcing_job_id,omitempty" db:"sourcing_job_id"`

	SentToLemlist   bool       `json:"sent_to_lemlist"              db:"sent_to_lemlist"`
	SentToLemlistAt *time.Time `json:"sent_to_lemlist_at,omitempty" db:"sent_to_lemlist_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateLeadRequest represents parameters to create a Lead manually.
type CreateLeadRequest struct {
	Name     string     `json:"name"`
	Email    *string    `json:"email,omitempty"`
	Company  string     `json:"company"`
	Industry string     `json:"industry"`
	Status   LeadStatus `json:"status,omitempty"`
	Source   string     `json:"source,omitempty"`
	Sprint   *string    `json:"sprint,omitempty"`
	Title    *string    `json:"title,omitempty"`
	Country  *string    `json:"country,omitempty"`
	City     *string    `json:"city,omitempty"`
	Notes    *string    `json:"notes,omitempty"`
}

// Validate validates CreateLeadRequest and applies defaults.
func (r *CreateLeadRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxLeadNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	r.Name = name
	if r.Status == "" {
		r.Status = LeadStatusSourced
	}
	if !r.Status.Valid() {
		return errors.New("invalid status")
	}
	if strings.TrimSpace(r.Source) == "" {
		r.Source = LeadSourceWebsite
	}
	return nil
}

// UpdateLeadRequest represents parameters to update a Lead. Only the status
// is updatable through the public PATCH endpoint.
type UpdateLeadRequest struct {
	Status *LeadStatus `json:"status,omitempty"`
}

// Validate validates UpdateLeadRequest.
func (r *UpdateLeadRequest) Validate() error {
	if r.Status == nil {
		return errors.New("status is required")
	}
	if !r.Status.Updatable() {
		return errors.New("invalid status")
	}
	return nil
}

// LeadInsert is the full row shape used for bulk-inserting sourced leads.
// The ingestion transformer fills it from raw scraper records.
type LeadInsert struct {
	Name      string
	FirstName *string
	LastName  *string
	Email     *string
	Company   string
	Industry  string
	Headline  *string
	Status    LeadStatus
	Source    string
	Category  *string
	Rank      *string
	Country   *string
	City      *string
	Notes     *string
	Title     *string

	PhotoURL    *string
	LinkedinURL *string

	OrganizationLogoURL               *string
	OrganizationWebsiteURL            *string
	OrganizationLinkedinURL           *string
	OrganizationEstimatedNumEmployees *int

	SourcingJobID *string
}

// LeadsListOptions controls filtering for listing leads.
// Leads are always ordered by creation time, newest first.
type LeadsListOptions struct {
	Sprint *string // exact match on the sprint label
	Limit  int
	Offset int
}

// DedupFields is the projection of a lead used by the deduplication pass.
type DedupFields struct {
	ID        string    `db:"id"`
	Email     *string   `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}
