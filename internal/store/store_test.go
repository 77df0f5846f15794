package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrace/ecotrace-core/internal/domain"
	"github.com/ecotrace/ecotrace-core/internal/store/schema"
)

func TestCreateItem(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)

	item := createTestItem(t, owner)

	assert.Equal(t, domain.ItemStatusPending, item.Status)
	assert.NotNil(t, item.QRCode)
	assert.NotNil(t, item.SubmissionDate)

	// The created event is appended in the same transaction
	events, err := testStore.ListTrackingEvents(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeCreated, events[0].EventType)
	require.NotNil(t, events[0].ActorUserID)
	assert.Equal(t, owner, *events[0].ActorUserID)
}

func TestFullLifecycle(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)
	actor := createTestProfile(t, domain.RoleDriver)

	item := createTestItem(t, owner)
	advanceItem(t, item.ID, actor,
		domain.EventTypeApproved,
		domain.EventTypeAssigned,
		domain.EventTypePickupStarted,
		domain.EventTypeCollected,
		domain.EventTypeInTransit,
		domain.EventTypeArrivedFacility,
		domain.EventTypeProcessed,
		domain.EventTypeHandoff,
	)

	got, err := testStore.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.ItemStatusCompleted, got.Status)
	assert.NotNil(t, got.ProcessingDate)

	// The cached status must equal the status replayed from the full history
	events, err := testStore.ListTrackingEvents(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, events, 9)

	var history []domain.EventType
	for _, e := range events {
		history = append(history, e.EventType)
	}
	replayed, err := domain.ReplayStatus(history)
	require.NoError(t, err)
	assert.Equal(t, got.Status, replayed)
}

func TestRecordEventIllegalTransitionIsNoOp(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)
	actor := createTestProfile(t, domain.RoleDriver)

	item := createTestItem(t, owner)

	// collected is not legal from pending
	_, err := testStore.RecordEvent(ctx, RecordEventInput{
		ItemID:      item.ID,
		EventType:   domain.EventTypeCollected,
		ActorUserID: &actor,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// Nothing was written: status unchanged, no extra event
	got, err := testStore.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemStatusPending, got.Status)

	events, err := testStore.ListTrackingEvents(ctx, item.ID)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestRecordEventUnknownItem(t *testing.T) {
	cleanupTables(t)
	actor := createTestProfile(t, domain.RoleDriver)

	_, err := testStore.RecordEvent(context.Background(), RecordEventInput{
		ItemID:      uuid.New(),
		EventType:   domain.EventTypeApproved,
		ActorUserID: &actor,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelledFromAnyNonTerminalStatus(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)
	admin := createTestProfile(t, domain.RoleAdmin)

	item := createTestItem(t, owner)
	advanceItem(t, item.ID, admin, domain.EventTypeApproved, domain.EventTypeAssigned, domain.EventTypeCollected)

	advanceItem(t, item.ID, admin, domain.EventTypeCancelled)

	got, err := testStore.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemStatusRejected, got.Status)

	// Terminal items cannot be cancelled again
	_, err = testStore.RecordEvent(ctx, RecordEventInput{
		ItemID:    item.ID,
		EventType: domain.EventTypeCancelled,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestViewTokenIsReRedeemable(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)
	item := createTestItem(t, owner)

	token, err := testStore.CreateQRToken(ctx, CreateQRTokenInput{
		ItemID:    item.ID,
		Purpose:   domain.TokenPurposeView,
		CreatedBy: owner,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)

	for range 5 {
		result, err := testStore.RedeemQRToken(ctx, RedeemQRTokenInput{Token: token.Token})
		require.NoError(t, err)
		assert.Equal(t, item.ID, result.Item.ID)
		assert.False(t, result.Token.Used)
		assert.Nil(t, result.Event)
	}
}

func TestHandoffTokenIsSingleUse(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)
	recycler := createTestProfile(t, domain.RoleRecycler)

	item := createTestItem(t, owner)
	advanceItem(t, item.ID, recycler,
		domain.EventTypeApproved, domain.EventTypeAssigned, domain.EventTypeCollected,
		domain.EventTypeInTransit, domain.EventTypeArrivedFacility, domain.EventTypeProcessed,
	)

	token, err := testStore.CreateQRToken(ctx, CreateQRTokenInput{
		ItemID:    item.ID,
		Purpose:   domain.TokenPurposeHandoff,
		CreatedBy: owner,
	})
	require.NoError(t, err)

	event := domain.EventTypeHandoff
	result, err := testStore.RedeemQRToken(ctx, RedeemQRTokenInput{
		Token:       token.Token,
		Event:       &event,
		ActorUserID: &recycler,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ItemStatusCompleted, result.Item.Status)
	assert.True(t, result.Token.Used)
	require.NotNil(t, result.Event)

	// A second redemption must fail and write nothing
	_, err = testStore.RedeemQRToken(ctx, RedeemQRTokenInput{
		Token:       token.Token,
		Event:       &event,
		ActorUserID: &recycler,
	})
	assert.ErrorIs(t, err, domain.ErrTokenAlreadyUsed)

	events, err := testStore.ListTrackingEvents(ctx, item.ID)
	require.NoError(t, err)
	assert.Len(t, events, 8)
}

func TestConcurrentHandoffRedemption(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)
	recycler := createTestProfile(t, domain.RoleRecycler)

	item := createTestItem(t, owner)
	advanceItem(t, item.ID, recycler,
		domain.EventTypeApproved, domain.EventTypeAssigned, domain.EventTypeCollected,
		domain.EventTypeInTransit, domain.EventTypeArrivedFacility, domain.EventTypeProcessed,
	)

	token, err := testStore.CreateQRToken(ctx, CreateQRTokenInput{
		ItemID:    item.ID,
		Purpose:   domain.TokenPurposeHandoff,
		CreatedBy: owner,
	})
	require.NoError(t, err)

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			event := domain.EventTypeHandoff
			_, err := testStore.RedeemQRToken(ctx, RedeemQRTokenInput{
				Token:       token.Token,
				Event:       &event,
				ActorUserID: &recycler,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, failed int
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrTokenAlreadyUsed)
			failed++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, failed)

	// Exactly one handoff event exists
	events, err := testStore.ListTrackingEvents(ctx, item.ID)
	require.NoError(t, err)
	assert.Len(t, events, 8)
}

func TestExpiredToken(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)
	item := createTestItem(t, owner)

	past := time.Now().Add(-time.Minute)
	token, err := testStore.CreateQRToken(ctx, CreateQRTokenInput{
		ItemID:    item.ID,
		Purpose:   domain.TokenPurposeView,
		ExpiresAt: &past,
		CreatedBy: owner,
	})
	require.NoError(t, err)

	_, err = testStore.RedeemQRToken(ctx, RedeemQRTokenInput{Token: token.Token})
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestUnknownToken(t *testing.T) {
	cleanupTables(t)

	_, err := testStore.RedeemQRToken(context.Background(), RedeemQRTokenInput{Token: "no-such-token"})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAssignItem(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)
	admin := createTestProfile(t, domain.RoleAdmin)
	driver := createTestProfile(t, domain.RoleDriver)

	item := createTestItem(t, owner)
	advanceItem(t, item.ID, admin, domain.EventTypeApproved)

	assignment, err := testStore.AssignItem(ctx, AssignItemInput{
		ItemID:           item.ID,
		AssignedToUserID: &driver,
		AssignedBy:       admin,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AssignmentStatusPending, assignment.Status)

	got, err := testStore.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemStatusAssigned, got.Status)

	// The assignment transition was recorded in the ledger
	events, err := testStore.ListTrackingEvents(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, domain.EventTypeAssigned, events[2].EventType)
}

func TestAssignItemRequiresExactlyOneAssignee(t *testing.T) {
	cleanupTables(t)
	owner := createTestProfile(t, domain.RoleIndividual)
	admin := createTestProfile(t, domain.RoleAdmin)
	driver := createTestProfile(t, domain.RoleDriver)
	orgID := uuid.New()

	item := createTestItem(t, owner)
	advanceItem(t, item.ID, admin, domain.EventTypeApproved)

	_, err := testStore.AssignItem(context.Background(), AssignItemInput{
		ItemID:     item.ID,
		AssignedBy: admin,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = testStore.AssignItem(context.Background(), AssignItemInput{
		ItemID:           item.ID,
		AssignedToUserID: &driver,
		AssignedToOrgID:  &orgID,
		AssignedBy:       admin,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestRespondToAssignment(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)
	admin := createTestProfile(t, domain.RoleAdmin)
	driver := createTestProfile(t, domain.RoleDriver)
	other := createTestProfile(t, domain.RoleDriver)

	item := createTestItem(t, owner)
	advanceItem(t, item.ID, admin, domain.EventTypeApproved)

	assignment, err := testStore.AssignItem(ctx, AssignItemInput{
		ItemID:           item.ID,
		AssignedToUserID: &driver,
		AssignedBy:       admin,
	})
	require.NoError(t, err)

	// Another driver cannot answer for the assignee
	_, err = testStore.RespondToAssignment(ctx, RespondToAssignmentInput{
		AssignmentID: assignment.ID,
		ActorUserID:  other,
		Accept:       true,
	})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	accepted, err := testStore.RespondToAssignment(ctx, RespondToAssignmentInput{
		AssignmentID: assignment.ID,
		ActorUserID:  driver,
		Accept:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AssignmentStatusAccepted, accepted.Status)
	assert.NotNil(t, accepted.AcceptedAt)

	// Responding again fails: the decision is settled
	_, err = testStore.RespondToAssignment(ctx, RespondToAssignmentInput{
		AssignmentID: assignment.ID,
		ActorUserID:  driver,
		Accept:       false,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestRespondToOrgAssignmentIsDenied(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)
	admin := createTestProfile(t, domain.RoleAdmin)
	driver := createTestProfile(t, domain.RoleDriver)
	orgID := uuid.New()

	item := createTestItem(t, owner)
	advanceItem(t, item.ID, admin, domain.EventTypeApproved)

	assignment, err := testStore.AssignItem(ctx, AssignItemInput{
		ItemID:          item.ID,
		AssignedToOrgID: &orgID,
		AssignedBy:      admin,
	})
	require.NoError(t, err)

	// Org membership is not modeled; no individual may answer for an org
	_, err = testStore.RespondToAssignment(ctx, RespondToAssignmentInput{
		AssignmentID: assignment.ID,
		ActorUserID:  driver,
		Accept:       true,
	})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestAssignmentCompletesWithLifecycle(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)
	admin := createTestProfile(t, domain.RoleAdmin)
	driver := createTestProfile(t, domain.RoleDriver)

	item := createTestItem(t, owner)
	advanceItem(t, item.ID, admin, domain.EventTypeApproved)

	assignment, err := testStore.AssignItem(ctx, AssignItemInput{
		ItemID:           item.ID,
		AssignedToUserID: &driver,
		AssignedBy:       admin,
	})
	require.NoError(t, err)

	advanceItem(t, item.ID, driver,
		domain.EventTypeCollected, domain.EventTypeInTransit,
		domain.EventTypeArrivedFacility, domain.EventTypeProcessed, domain.EventTypeHandoff,
	)

	var got schema.Assignment
	require.NoError(t, testDB.Where("id = ?", assignment.ID).First(&got).Error)
	assert.Equal(t, domain.AssignmentStatusCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)
}

func TestOnlyOneOpenAssignmentPerItem(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)
	admin := createTestProfile(t, domain.RoleAdmin)
	driver := createTestProfile(t, domain.RoleDriver)
	other := createTestProfile(t, domain.RoleDriver)

	item := createTestItem(t, owner)
	advanceItem(t, item.ID, admin, domain.EventTypeApproved)

	_, err := testStore.AssignItem(ctx, AssignItemInput{
		ItemID:           item.ID,
		AssignedToUserID: &driver,
		AssignedBy:       admin,
	})
	require.NoError(t, err)

	_, err = testStore.AssignItem(ctx, AssignItemInput{
		ItemID:           item.ID,
		AssignedToUserID: &other,
		AssignedBy:       admin,
	})
	require.Error(t, err)

	open, err := testStore.GetOpenAssignment(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, driver, *open.AssignedToUserID)
}

func TestApproveItem(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)
	admin := createTestProfile(t, domain.RoleAdmin)

	item := createTestItem(t, owner)
	result := approveTestItem(t, admin, item, 12.5)

	assert.Equal(t, domain.ItemStatusApproved, result.Item.Status)
	assert.Equal(t, 12.5, result.Item.CarbonCreditsEarned)
	assert.NotNil(t, result.Item.CollectionDate)

	// The credit entry lands on the owner's account
	require.NotNil(t, result.Credit)
	assert.Equal(t, owner, result.Credit.UserID)
	assert.Equal(t, 12.5, result.Credit.CreditsEarned)
	assert.Equal(t, domain.CreditTransactionEarned, result.Credit.TransactionType)

	balance, err := testStore.CreditBalance(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 12.5, balance)

	// The audit log records the approval
	var logs []schema.AdminLog
	require.NoError(t, testDB.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, admin, logs[0].AdminID)
	assert.Equal(t, string(domain.AdminActionApproveEwaste), logs[0].Action)
}

func TestApproveItemTwice(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)
	admin := createTestProfile(t, domain.RoleAdmin)

	item := createTestItem(t, owner)
	approveTestItem(t, admin, item, 10)

	// The item is no longer pending, so a second approval is an illegal transition
	_, err := testStore.ApproveItem(ctx, ApproveItemInput{
		AdminID:  admin,
		ItemID:   item.ID,
		Credits:  10,
		ItemName: item.ItemName,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// The balance reflects exactly one award
	balance, err := testStore.CreditBalance(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 10.0, balance)
}

func TestApproveItemRequiresAdmin(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)
	driver := createTestProfile(t, domain.RoleDriver)

	item := createTestItem(t, owner)

	_, err := testStore.ApproveItem(ctx, ApproveItemInput{
		AdminID:  driver,
		ItemID:   item.ID,
		Credits:  10,
		ItemName: item.ItemName,
	})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	// Nothing was written
	got, err := testStore.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemStatusPending, got.Status)

	balance, err := testStore.CreditBalance(ctx, owner)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestAwardCreditsDuplicate(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)
	item := createTestItem(t, owner)

	_, err := testStore.AwardCredits(ctx, AwardCreditsInput{
		UserID:  owner,
		ItemID:  item.ID,
		Credits: 5,
	})
	require.NoError(t, err)

	_, err = testStore.AwardCredits(ctx, AwardCreditsInput{
		UserID:  owner,
		ItemID:  item.ID,
		Credits: 5,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateAward)
}

func TestRejectItem(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)
	admin := createTestProfile(t, domain.RoleAdmin)

	item := createTestItem(t, owner)
	reason := "not recyclable"
	rejected, err := testStore.RejectItem(ctx, RejectItemInput{
		AdminID: admin,
		ItemID:  item.ID,
		Reason:  &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ItemStatusRejected, rejected.Status)

	// No credits are awarded on rejection
	balance, err := testStore.CreditBalance(ctx, owner)
	require.NoError(t, err)
	assert.Zero(t, balance)

	var logs []schema.AdminLog
	require.NoError(t, testDB.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, string(domain.AdminActionRejectEwaste), logs[0].Action)
}

func TestCreditBalanceRecompute(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)
	admin := createTestProfile(t, domain.RoleAdmin)

	first := createTestItem(t, owner)
	second := createTestItem(t, owner)
	approveTestItem(t, admin, first, 10)
	approveTestItem(t, admin, second, 7.5)

	_, err := testStore.RedeemCredits(ctx, RedeemCreditsInput{
		UserID:      owner,
		Credits:     4,
		Description: "tree planting",
	})
	require.NoError(t, err)

	balance, err := testStore.CreditBalance(ctx, owner)
	require.NoError(t, err)
	assert.InDelta(t, 13.5, balance, 1e-9)

	entries, err := testStore.ListCreditEntries(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRedeemCreditsInsufficientBalance(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)
	admin := createTestProfile(t, domain.RoleAdmin)

	item := createTestItem(t, owner)
	approveTestItem(t, admin, item, 5)

	_, err := testStore.RedeemCredits(ctx, RedeemCreditsInput{
		UserID:  owner,
		Credits: 6,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	balance, err := testStore.CreditBalance(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 5.0, balance)
}

func TestConcurrentRedeemCredits(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)
	admin := createTestProfile(t, domain.RoleAdmin)

	item := createTestItem(t, owner)
	approveTestItem(t, admin, item, 10)

	// Two concurrent redemptions of 6 each: at most one can fit in a balance of 10
	const attempts = 2
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := testStore.RedeemCredits(ctx, RedeemCreditsInput{
				UserID:  owner,
				Credits: 6,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded int
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		}
	}
	assert.Equal(t, 1, succeeded)

	balance, err := testStore.CreditBalance(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 4.0, balance)
}

func TestUpdateUserRole(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	admin := createTestProfile(t, domain.RoleAdmin)
	target := createTestProfile(t, domain.RoleIndividual)

	updated, err := testStore.UpdateUserRole(ctx, UpdateUserRoleInput{
		AdminID:      admin,
		TargetUserID: target,
		NewRole:      domain.RoleDriver,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDriver, updated.Role)

	// Unknown roles are rejected before anything is written
	_, err = testStore.UpdateUserRole(ctx, UpdateUserRoleInput{
		AdminID:      admin,
		TargetUserID: target,
		NewRole:      domain.Role("superuser"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	var logs []schema.AdminLog
	require.NoError(t, testDB.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, string(domain.AdminActionUpdateUserRole), logs[0].Action)
}

func TestCreateCampaign(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	admin := createTestProfile(t, domain.RoleAdmin)

	campaign, err := testStore.CreateCampaign(ctx, CreateCampaignInput{
		AdminID:     admin,
		Title:       "Spring cleanup",
		Description: "Neighborhood e-waste drive",
		StartDate:   time.Now(),
		EndDate:     time.Now().Add(30 * 24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "active", campaign.Status)

	var logs []schema.AdminLog
	require.NoError(t, testDB.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, string(domain.AdminActionCreateCampaign), logs[0].Action)
}

func TestCreateNotification(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	user := createTestProfile(t, domain.RoleIndividual)

	notification, err := testStore.CreateNotification(ctx, CreateNotificationInput{
		UserID:  user,
		Title:   "Item approved",
		Message: "Your item was approved.",
		Type:    domain.NotificationTypeSuccess,
	})
	require.NoError(t, err)
	assert.False(t, notification.IsRead)
	assert.Equal(t, domain.NotificationTypeSuccess, notification.Type)
}

func TestListItemsByUser(t *testing.T) {
	cleanupTables(t)
	ctx := context.Background()
	owner := createTestProfile(t, domain.RoleIndividual)
	other := createTestProfile(t, domain.RoleIndividual)

	createTestItem(t, owner)
	createTestItem(t, owner)
	createTestItem(t, other)

	items, err := testStore.ListItemsByUser(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
