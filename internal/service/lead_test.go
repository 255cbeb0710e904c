package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/JulienDevoi/sdrleads/internal/data"
	"github.com/JulienDevoi/sdrleads/internal/domain/model"
	apperrors "github.com/JulienDevoi/sdrleads/internal/errors"
	"github.com/JulienDevoi/sdrleads/internal/mocks"
	"github.com/JulienDevoi/sdrleads/internal/testutil"
)

const testLeadID = "lead-1"

func verifiedLead() *model.Lead {
	return &model.Lead{
		ID:        testLeadID,
		Name:      "Ada Lovelace",
		Email:     testutil.StringPtr("ada@example.com"),
		Company:   "Acme Corp",
		Industry:  "Technology",
		Status:    model.LeadStatusVerified,
		Source:    model.LeadSourceWebsite,
		CreatedAt: testutil.TestTime(),
	}
}

func TestLeadService_GetByID_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockLeads := mocks.NewMockLeadRepository(ctrl)
	svc := NewLeadService(LeadServiceOptions{LeadRepo: mockLeads})

	mockLeads.EXPECT().GetByID(ctx, "missing").Return(nil, data.ErrLeadNotFound)

	_, err := svc.GetByID(ctx, "missing")
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.CodeOf(err))
}

func TestLeadService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockLeads := mocks.NewMockLeadRepository(ctrl)
	svc := NewLeadService(LeadServiceOptions{LeadRepo: mockLeads})

	verified := model.LeadStatusVerified
	updated := verifiedLead()
	mockLeads.EXPECT().UpdateStatus(ctx, testLeadID, verified).Return(updated, nil)

	got, err := svc.UpdateStatus(ctx, testLeadID, model.UpdateLeadRequest{Status: &verified})
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestLeadService_UpdateStatus_RejectsInvalidStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLeads := mocks.NewMockLeadRepository(ctrl)
	svc := NewLeadService(LeadServiceOptions{LeadRepo: mockLeads})

	rejected := model.LeadStatusRejected
	_, err := svc.UpdateStatus(context.Background(), testLeadID, model.UpdateLeadRequest{Status: &rejected})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))

	_, err = svc.UpdateStatus(context.Background(), testLeadID, model.UpdateLeadRequest{})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
}

func TestLeadService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockLeads := mocks.NewMockLeadRepository(ctrl)
	svc := NewLeadService(LeadServiceOptions{LeadRepo: mockLeads})

	mockLeads.EXPECT().Delete(ctx, "missing").Return(false, nil)

	err := svc.Delete(ctx, "missing")
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.CodeOf(err))
}

func TestLeadService_SendToLemlist(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockLeads := mocks.NewMockLeadRepository(ctrl)
	mockWebhook := mocks.NewMockCampaignWebhook(ctrl)
	now := testutil.TestTime()
	svc := NewLeadService(LeadServiceOptions{
		LeadRepo: mockLeads,
		Webhook:  mockWebhook,
		Now:      func() time.Time { return now },
	})

	lead := verifiedLead()
	mockLeads.EXPECT().GetByID(ctx, testLeadID).Return(lead, nil)
	mockWebhook.EXPECT().Send(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, payload map[string]any) error {
			assert.Equal(t, "ada@example.com", payload["email"])
			assert.Equal(t, "Ada", payload["firstName"])
			assert.Equal(t, "Lovelace", payload["lastName"])
			assert.Equal(t, "Acme Corp", payload["company"])
			assert.Equal(t, now.Format(time.RFC3339), payload["sentToLemlistAt"])
			return nil
		})

	note := "Sent to lemlist on " + now.Format(time.RFC3339)
	sent := *lead
	sent.SentToLemlist = true
	mockLeads.EXPECT().MarkSentToLemlist(ctx, testLeadID, note).Return(&sent, nil)

	got, err := svc.SendToLemlist(ctx, testLeadID)
	require.NoError(t, err)
	assert.True(t, got.SentToLemlist)
}

func TestLeadService_SendToLemlist_RequiresVerified(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockLeads := mocks.NewMockLeadRepository(ctrl)
	mockWebhook := mocks.NewMockCampaignWebhook(ctrl)
	svc := NewLeadService(LeadServiceOptions{LeadRepo: mockLeads, Webhook: mockWebhook})

	lead := verifiedLead()
	lead.Status = model.LeadStatusSourced
	mockLeads.EXPECT().GetByID(ctx, testLeadID).Return(lead, nil)

	_, err := svc.SendToLemlist(ctx, testLeadID)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
}

func TestLeadService_SendToLemlist_RejectsRepeatSend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockLeads := mocks.NewMockLeadRepository(ctrl)
	mockWebhook := mocks.NewMockCampaignWebhook(ctrl)
	svc := NewLeadService(LeadServiceOptions{LeadRepo: mockLeads, Webhook: mockWebhook})

	lead := verifiedLead()
	lead.SentToLemlist = true
	mockLeads.EXPECT().GetByID(ctx, testLeadID).Return(lead, nil)

	_, err := svc.SendToLemlist(ctx, testLeadID)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
}

func TestLeadService_SendToLemlist_WebhookFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockLeads := mocks.NewMockLeadRepository(ctrl)
	mockWebhook := mocks.NewMockCampaignWebhook(ctrl)
	svc := NewLeadService(LeadServiceOptions{LeadRepo: mockLeads, Webhook: mockWebhook})

	mockLeads.EXPECT().GetByID(ctx, testLeadID).Return(verifiedLead(), nil)
	mockWebhook.EXPECT().Send(ctx, gomock.Any()).Return(errors.New("502 bad gateway"))

	_, err := svc.SendToLemlist(ctx, testLeadID)
	assert.Equal(t, apperrors.ErrCodeUpstream, apperrors.CodeOf(err))
}

func TestLeadService_SendToLemlist_MarkFailureStillSucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockLeads := mocks.NewMockLeadRepository(ctrl)
	mockWebhook := mocks.NewMockCampaignWebhook(ctrl)
	svc := NewLeadService(LeadServiceOptions{LeadRepo: mockLeads, Webhook: mockWebhook})

	lead := verifiedLead()
	mockLeads.EXPECT().GetByID(ctx, testLeadID).Return(lead, nil)
	mockWebhook.EXPECT().Send(ctx, gomock.Any()).Return(nil)
	mockLeads.EXPECT().MarkSentToLemlist(ctx, testLeadID, gomock.Any()).
		Return(nil, errors.New("db down"))

	got, err := svc.SendToLemlist(ctx, testLeadID)
	require.NoError(t, err)
	assert.Equal(t, lead, got)
}
