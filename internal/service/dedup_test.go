package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/JulienDevoi/sdrleads/internal/domain/model"
	"github.com/JulienDevoi/sdrleads/internal/mocks"
	"github.com/JulienDevoi/sdrleads/internal/testutil"
)

func dedupField(id, email string, offset time.Duration) model.DedupFields {
	f := model.DedupFields{ID: id, CreatedAt: testutil.TestTime().Add(offset)}
	if email != "" {
		f.Email = &email
	}
	return f
}

func TestDedupService_RemoveDuplicates_KeepsOldest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockLeads := mocks.NewMockLeadRepository(ctrl)
	svc := NewDedupService(DedupServiceOptions{LeadRepo: mockLeads})

	// oldest-first projection; casing and whitespace are normalized away
	fields := []model.DedupFields{
		dedupField("a", "ada@example.com", 0),
		dedupField("b", "ADA@example.com ", time.Minute),
		dedupField("c", "grace@example.com", 2*time.Minute),
		dedupField("d", " ada@example.com", 3*time.Minute),
	}
	mockLeads.EXPECT().ListDedupFields(ctx).Return(fields, nil)
	mockLeads.EXPECT().DeleteByIDs(ctx, []string{"b", "d"}).Return(2, nil)

	res, err := svc.RemoveDuplicates(ctx)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.DuplicatesRemoved)
}

func TestDedupService_RemoveDuplicates_SecondPassIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockLeads := mocks.NewMockLeadRepository(ctrl)
	svc := NewDedupService(DedupServiceOptions{LeadRepo: mockLeads})

	before := []model.DedupFields{
		dedupField("a", "ada@example.com", 0),
		dedupField("b", "ada@example.com", time.Minute),
		dedupField("c", "grace@example.com", 2*time.Minute),
	}
	// after the first pass only the oldest copy of each email survives
	after := []model.DedupFields{before[0], before[2]}

	gomock.InOrder(
		mockLeads.EXPECT().ListDedupFields(ctx).Return(before, nil),
		mockLeads.EXPECT().DeleteByIDs(ctx, []string{"b"}).Return(1, nil),
		mockLeads.EXPECT().ListDedupFields(ctx).Return(after, nil),
	)

	res, err := svc.RemoveDuplicates(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.DuplicatesRemoved)

	res, err = svc.RemoveDuplicates(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.DuplicatesRemoved)
	assert.Equal(t, "No duplicates found", res.Message)
}

func TestDedupService_RemoveDuplicates_SkipsMissingEmails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockLeads := mocks.NewMockLeadRepository(ctrl)
	svc := NewDedupService(DedupServiceOptions{LeadRepo: mockLeads})

	fields := []model.DedupFields{
		dedupField("a", "", 0),
		dedupField("b", "   ", time.Minute),
		dedupField("c", "", 2*time.Minute),
	}
	mockLeads.EXPECT().ListDedupFields(ctx).Return(fields, nil)

	res, err := svc.RemoveDuplicates(ctx)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Zero(t, res.DuplicatesRemoved)
	assert.Equal(t, "No duplicates found", res.Message)
}

func TestDedupService_RemoveDuplicates_NoLeads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockLeads := mocks.NewMockLeadRepository(ctrl)
	svc := NewDedupService(DedupServiceOptions{LeadRepo: mockLeads})

	mockLeads.EXPECT().ListDedupFields(ctx).Return(nil, nil)

	res, err := svc.RemoveDuplicates(ctx)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "No leads found", res.Message)
}

func TestDedupService_RemoveDuplicates_Batches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockLeads := mocks.NewMockLeadRepository(ctrl)
	svc := NewDedupService(DedupServiceOptions{LeadRepo: mockLeads})

	// 1 keeper + 150 duplicates of the same email -> two delete batches
	fields := make([]model.DedupFields, 0, 151)
	for i := range 151 {
		fields = append(fields, dedupField(fmt.Sprintf("id-%03d", i), "dup@example.com",
			time.Duration(i)*time.Second))
	}
	mockLeads.EXPECT().ListDedupFields(ctx).Return(fields, nil)

	gomock.InOrder(
		mockLeads.EXPECT().DeleteByIDs(ctx, gomock.Len(100)).Return(100, nil),
		mockLeads.EXPECT().DeleteByIDs(ctx, gomock.Len(50)).Return(50, nil),
	)

	res, err := svc.RemoveDuplicates(ctx)
	require.NoError(t, err)
	assert.Equal(t, 150, res.DuplicatesRemoved)
}

func TestDedupService_RemoveDuplicates_AbortsOnBatchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockLeads := mocks.NewMockLeadRepository(ctrl)
	svc := NewDedupService(DedupServiceOptions{LeadRepo: mockLeads})

	fields := make([]model.DedupFields, 0, 201)
	for i := range 201 {
		fields = append(fields, dedupField(fmt.Sprintf("id-%03d", i), "dup@example.com",
			time.Duration(i)*time.Second))
	}
	mockLeads.EXPECT().ListDedupFields(ctx).Return(fields, nil)

	gomock.InOrder(
		mockLeads.EXPECT().DeleteByIDs(ctx, gomock.Len(100)).Return(100, nil),
		mockLeads.EXPECT().DeleteByIDs(ctx, gomock.Len(100)).Return(0, errors.New("db down")),
	)

	_, err := svc.RemoveDuplicates(ctx)
	require.Error(t, err)
}
