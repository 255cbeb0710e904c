// Package service contains the application services that orchestrate
// repositories and adapters behind the HTTP layer.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/JulienDevoi/sdrleads/internal/core"
	"github.com/JulienDevoi/sdrleads/internal/data"
	"github.com/JulienDevoi/sdrleads/internal/domain/model"
	apperrors "github.com/JulienDevoi/sdrleads/internal/errors"
)

// LeadServiceOptions groups dependencies for LeadService.
type LeadServiceOptions struct {
	LeadRepo core.LeadRepository
	Webhook  core.CampaignWebhook
	Logger   *slog.Logger
	Now      func() time.Time
}

// LeadService orchestrates lead CRUD and the outbound campaign push.
type LeadService struct {
	leads   core.LeadRepository
	webhook core.CampaignWebhook
	logger  *slog.Logger
	now     func() time.Time
}

// NewLeadService constructs a new LeadService.
func NewLeadService(opts LeadServiceOptions) *LeadService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &LeadService{
		leads:   opts.LeadRepo,
		webhook: opts.Webhook,
		logger:  logger.With("component", "lead_service"),
		now:     now,
	}
}

// Create creates a manually-entered lead.
func (s *LeadService) Create(ctx context.Context, req *model.CreateLeadRequest) (*model.Lead, error) {
	return s.leads.Create(ctx, req)
}

// GetByID retrieves a lead by ID.
func (s *LeadService) GetByID(ctx context.Context, id string) (*model.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrLeadNotFound) {
			return nil, apperrors.NotFound("lead not found")
		}
		return nil, err
	}
	return lead, nil
}

// List returns leads, newest first, optionally filtered by sprint.
func (s *LeadService) List(ctx context.Context, opts model.LeadsListOptions) ([]*model.Lead, error) {
	return s.leads.List(ctx, opts)
}

// UpdateStatus sets a lead's workflow status through the PATCH endpoint.
func (s *LeadService) UpdateStatus(ctx context.Context, id string, req model.UpdateLeadRequest) (*model.Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	lead, err := s.leads.UpdateStatus(ctx, id, *req.Status)
	if err != nil {
		if errors.Is(err, data.ErrLeadNotFound) {
			return nil, apperrors.NotFound("lead not found")
		}
		return nil, err
	}
	return lead, nil
}

// Delete removes a lead by ID.
func (s *LeadService) Delete(ctx context.Context, id string) error {
	deleted, err := s.leads.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound("lead not found")
	}
	return nil
}

// SprintValues returns the sorted set of sprint labels currently in use.
func (s *LeadService) SprintValues(ctx context.Context) ([]string, error) {
	return s.leads.DistinctSprints(ctx)
}

// SendToLemlist pushes a verified lead to the campaign webhook and marks it
// sent. Only verified leads that have not been pushed before are eligible.
func (s *LeadService) SendToLemlist(ctx context.Context, id string) (*model.Lead, error) {
	lead, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if lead.Status != model.LeadStatusVerified {
		return nil, apperrors.Validation("lead must be verified before sending to lemlist")
	}
	if lead.SentToLemlist {
		return nil, apperrors.Validation("lead has already been sent to lemlist")
	}

	now := s.now().UTC()
	if sendErr := s.webhook.Send(ctx, lemlistPayload(lead, now)); sendErr != nil {
		s.logger.ErrorContext(ctx, "lemlist webhook delivery failed", "lead_id", id, "err", sendErr)
		return nil, apperrors.Wrap(sendErr, apperrors.ErrCodeUpstream, "failed to send lead to lemlist")
	}

	note := "Sent to lemlist on " + now.Format(time.RFC3339)
	updated, markErr := s.leads.MarkSentToLemlist(ctx, id, note)
	if markErr != nil {
		// The webhook already accepted the lead; surface the original record
		// rather than failing the whole call.
		s.logger.ErrorContext(ctx, "failed to mark lead as sent after webhook delivery",
			"lead_id", id, "err", markErr)
		return lead, nil
	}

	s.logger.InfoContext(ctx, "lead sent to lemlist", "lead_id", id)
	return updated, nil
}

// lemlistPayload builds the webhook body. First and last name are split from
// the stored full name.
func lemlistPayload(lead *model.Lead, sentAt time.Time) map[string]any {
	nameParts := strings.Fields(strings.TrimSpace(lead.Name))
	firstName := ""
	lastName := ""
	if len(nameParts) > 0 {
		firstName = nameParts[0]
		lastName = strings.Join(nameParts[1:], " ")
	}

	return map[string]any{
		"id":                                lead.ID,
		"name":                              lead.Name,
		"firstName":                         firstName,
		"lastName":                          lastName,
		"email":                             deref(lead.Email),
		"company":                           lead.Company,
		"title":                             deref(lead.Title),
		"industry":                          lead.Industry,
		"country":                           deref(lead.Country),
		"city":                              deref(lead.City),
		"linkedin_url":                      deref(lead.LinkedinURL),
		"photo_url":                         deref(lead.PhotoURL),
		"organizationWebsiteUrl":            deref(lead.OrganizationWebsiteURL),
		"organizationLinkedinUrl":           deref(lead.OrganizationLinkedinURL),
		"organizationEstimatedNumEmployees": lead.OrganizationEstimatedNumEmployees,
		"status":                            lead.Status,
		"source":                            lead.Source,
		"createdAt":                         lead.CreatedAt.Format(time.RFC3339),
		"sentToLemlistAt":                   sentAt.Format(time.RFC3339),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
