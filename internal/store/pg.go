package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ecotrace/ecotrace-core/internal/domain"
	"github.com/ecotrace/ecotrace-core/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance. The *gorm.DB must be
// opened with TranslateError enabled so unique-index violations surface as
// gorm.ErrDuplicatedKey.
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults:
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// newTokenValue generates a cryptographically random, unguessable token string
func newTokenValue() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// CreateProfile creates a user profile
func (s *pgStore) CreateProfile(ctx context.Context, input CreateProfileInput) (*schema.Profile, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleIndividual
	}

	profile := schema.Profile{
		ID:          uuid.New(),
		UserID:      input.UserID,
		DisplayName: input.DisplayName,
		Email:       input.Email,
		Role:        role,
	}
	if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: profile for user %s already exists", domain.ErrConflict, input.UserID)
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return &profile, nil
}

// GetProfileByUserID retrieves the profile for an authenticated user
func (s *pgStore) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*schema.Profile, error) {
	var profile schema.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// CreateItem creates an item in pending status and appends its created event
// in a single transaction
func (s *pgStore) CreateItem(ctx context.Context, input CreateItemInput) (*schema.Item, error) {
	now := time.Now()
	itemID := uuid.New()
	qrCode := fmt.Sprintf("ecotrace:item:%s", itemID)

	item := schema.Item{
		ID:             itemID,
		UserID:         input.UserID,
		ItemName:       input.ItemName,
		Category:       input.Category,
		Brand:          input.Brand,
		Model:          input.Model,
		SerialNumber:   input.SerialNumber,
		Condition:      input.Condition,
		EstimatedValue: input.EstimatedValue,
		PickupLocation: input.PickupLocation,
		Status:         domain.ItemStatusPending,
		QRCode:         &qrCode,
		Description:    input.Description,
		WeightKg:       input.WeightKg,
		SubmissionDate: &now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to create item: %w", err)
		}

		event := schema.TrackingEvent{
			ID:          uuid.New(),
			ItemID:      itemID,
			EventType:   domain.EventTypeCreated,
			ActorUserID: &input.UserID,
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to append created event: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// GetItemByID retrieves an item by its primary key
func (s *pgStore) GetItemByID(ctx context.Context, itemID uuid.UUID) (*schema.Item, error) {
	var item schema.Item
	err := s.db.WithContext(ctx).Where("id = ?", itemID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}

// ListItemsByUser retrieves a user's items, newest first
func (s *pgStore) ListItemsByUser(ctx context.Context, userID uuid.UUID) ([]schema.Item, error) {
	var items []schema.Item
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// ListTrackingEvents returns an item's full history in chronological order,
// insertion order breaking timestamp ties
func (s *pgStore) ListTrackingEvents(ctx context.Context, itemID uuid.UUID) ([]schema.TrackingEvent, error) {
	var events []schema.TrackingEvent
	err := s.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at ASC, seq ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tracking events: %w", err)
	}
	return events, nil
}

// lockItem reads an item under a row-level lock so concurrent transitions
// on the same item serialize
func lockItem(tx *gorm.DB, itemID uuid.UUID) (*schema.Item, error) {
	var item schema.Item
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", itemID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, itemID)
		}
		return nil, fmt.Errorf("failed to lock item: %w", err)
	}
	return &item, nil
}

// recordEventTx validates the transition, appends the tracking event, and
// updates the item's status cache. The caller must hold the item's row lock.
func (s *pgStore) recordEventTx(tx *gorm.DB, item *schema.Item, input RecordEventInput) (*schema.TrackingEvent, error) {
	next, err := domain.NextStatus(item.Status, input.EventType)
	if err != nil {
		return nil, err
	}

	event := schema.TrackingEvent{
		ID:          uuid.New(),
		ItemID:      item.ID,
		EventType:   input.EventType,
		ActorUserID: input.ActorUserID,
		ActorOrgID:  input.ActorOrgID,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Notes:       input.Notes,
		Meta:        input.Meta,
	}
	if err := tx.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to append tracking event: %w", err)
	}

	if next != item.Status {
		updates := map[string]any{"status": next}
		if input.EventType == domain.EventTypeProcessed {
			updates["processing_date"] = time.Now()
		}
		if err := tx.Model(&schema.Item{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update item status: %w", err)
		}
		item.Status = next
	}

	// Lifecycle completion resolves the open assignment
	if next.IsTerminal() {
		if err := closeOpenAssignmentTx(tx, item.ID, next); err != nil {
			return nil, err
		}
	}

	return &event, nil
}

// closeOpenAssignmentTx completes or cancels the item's non-terminal
// assignment when the item reaches a terminal status
func closeOpenAssignmentTx(tx *gorm.DB, itemID uuid.UUID, status domain.ItemStatus) error {
	closed := domain.AssignmentStatusCompleted
	if status == domain.ItemStatusRejected {
		closed = domain.AssignmentStatusCancelled
	}

	updates := map[string]any{"status": closed}
	if closed == domain.AssignmentStatusCompleted {
		updates["completed_at"] = time.Now()
	}

	err := tx.Model(&schema.Assignment{}).
		Where("item_id = ? AND status IN ?", itemID, []domain.AssignmentStatus{
			domain.AssignmentStatusPending,
			domain.AssignmentStatusActive,
			domain.AssignmentStatusAccepted,
		}).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to close open assignment: %w", err)
	}
	return nil
}

// RecordEvent validates a lifecycle transition against the item's current
// status read fresh under a row lock, appends the tracking event, and updates
// the status cache. All side effects commit together or not at all.
func (s *pgStore) RecordEvent(ctx context.Context, input RecordEventInput) (*schema.TrackingEvent, error) {
	var event *schema.TrackingEvent
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := lockItem(tx, input.ItemID)
		if err != nil {
			return err
		}

		event, err = s.recordEventTx(tx, item, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// CreateQRToken issues a scoped access token for an item
func (s *pgStore) CreateQRToken(ctx context.Context, input CreateQRTokenInput) (*schema.QRToken, error) {
	value, err := newTokenValue()
	if err != nil {
		return nil, err
	}

	token := schema.QRToken{
		ID:        uuid.New(),
		ItemID:    input.ItemID,
		Token:     value,
		Purpose:   input.Purpose,
		ExpiresAt: input.ExpiresAt,
		CreatedBy: &input.CreatedBy,
	}
	if err := s.db.WithContext(ctx).Create(&token).Error; err != nil {
		return nil, fmt.Errorf("failed to create qr token: %w", err)
	}
	return &token, nil
}

// RedeemQRToken resolves a token to its item. When an event is supplied it
// validates the transition, appends the tracking event, updates the item
// status, and consumes single-use tokens, all in one transaction. Two
// concurrent redemptions of the same handoff/process token serialize on the
// token row; exactly one succeeds.
func (s *pgStore) RedeemQRToken(ctx context.Context, input RedeemQRTokenInput) (*RedeemResult, error) {
	var result RedeemResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var token schema.QRToken
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("token = ?", input.Token).
			First(&token).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrInvalidToken
			}
			return fmt.Errorf("failed to look up token: %w", err)
		}

		if token.Used {
			return domain.ErrTokenAlreadyUsed
		}
		if token.ExpiresAt != nil && token.ExpiresAt.Before(time.Now()) {
			return domain.ErrTokenExpired
		}

		item, err := lockItem(tx, token.ItemID)
		if err != nil {
			return err
		}

		result.Token = &token
		result.Item = item

		// No event: read-only view redemption, nothing to mutate
		if input.Event == nil {
			return nil
		}

		meta, err := json.Marshal(map[string]any{
			"source":   "qr-scan",
			"token_id": token.ID,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal event meta: %w", err)
		}

		event, err := s.recordEventTx(tx, item, RecordEventInput{
			ItemID:      item.ID,
			EventType:   *input.Event,
			ActorUserID: input.ActorUserID,
			Latitude:    input.Latitude,
			Longitude:   input.Longitude,
			Notes:       input.Notes,
			Meta:        datatypes.JSON(meta),
		})
		if err != nil {
			return err
		}
		result.Event = event

		// Compare-and-set so the token cannot be consumed twice even if the
		// row lock is ever bypassed
		if token.Purpose.SingleUse() {
			res := tx.Model(&schema.QRToken{}).
				Where("id = ? AND used = ?", token.ID, false).
				Update("used", true)
			if res.Error != nil {
				return fmt.Errorf("failed to consume token: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return domain.ErrTokenAlreadyUsed
			}
			token.Used = true
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AssignItem binds an approved item to exactly one driver or organization,
// creates the pending assignment, and transitions the item to assigned in a
// single transaction
func (s *pgStore) AssignItem(ctx context.Context, input AssignItemInput) (*schema.Assignment, error) {
	if (input.AssignedToUserID == nil) == (input.AssignedToOrgID == nil) {
		return nil, fmt.Errorf("%w: exactly one of driver user and organization must be set", domain.ErrInvalidArgument)
	}

	var assignment schema.Assignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := lockItem(tx, input.ItemID)
		if err != nil {
			return err
		}

		// The item lock serializes this check; the partial unique index on
		// open assignments is the backstop
		var open int64
		err = tx.Model(&schema.Assignment{}).
			Where("item_id = ? AND status IN ?", input.ItemID, []domain.AssignmentStatus{
				domain.AssignmentStatusPending,
				domain.AssignmentStatusActive,
				domain.AssignmentStatusAccepted,
			}).
			Count(&open).Error
		if err != nil {
			return fmt.Errorf("failed to check open assignments: %w", err)
		}
		if open > 0 {
			return fmt.Errorf("%w: item %s already has an open assignment", domain.ErrConflict, input.ItemID)
		}

		assignment = schema.Assignment{
			ID:               uuid.New(),
			ItemID:           input.ItemID,
			AssignedToUserID: input.AssignedToUserID,
			AssignedToOrgID:  input.AssignedToOrgID,
			AssignedBy:       &input.AssignedBy,
			Status:           domain.AssignmentStatusPending,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: item %s already has an open assignment", domain.ErrConflict, input.ItemID)
			}
			return fmt.Errorf("failed to create assignment: %w", err)
		}

		_, err = s.recordEventTx(tx, item, RecordEventInput{
			ItemID:      input.ItemID,
			EventType:   domain.EventTypeAssigned,
			ActorUserID: &input.AssignedBy,
			ActorOrgID:  input.AssignedToOrgID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// RespondToAssignment records the assignee's accept or reject decision
func (s *pgStore) RespondToAssignment(ctx context.Context, input RespondToAssignmentInput) (*schema.Assignment, error) {
	var assignment schema.Assignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.AssignmentID).
			First(&assignment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: assignment %s", domain.ErrNotFound, input.AssignmentID)
			}
			return fmt.Errorf("failed to lock assignment: %w", err)
		}

		if assignment.Status != domain.AssignmentStatusPending && assignment.Status != domain.AssignmentStatusActive {
			return fmt.Errorf("%w: assignment %s is %s", domain.ErrInvalidTransition, assignment.ID, assignment.Status)
		}

		// Org membership is not modeled, so org-targeted assignments have no
		// identifiable responder; they close through the item lifecycle instead.
		if assignment.AssignedToUserID == nil {
			return fmt.Errorf("%w: assignment %s is organization-targeted", domain.ErrPermissionDenied, assignment.ID)
		}
		if *assignment.AssignedToUserID != input.ActorUserID {
			return fmt.Errorf("%w: assignment %s belongs to another driver", domain.ErrPermissionDenied, assignment.ID)
		}

		updates := map[string]any{}
		if input.Accept {
			now := time.Now()
			assignment.Status = domain.AssignmentStatusAccepted
			assignment.AcceptedAt = &now
			updates["status"] = assignment.Status
			updates["accepted_at"] = now
		} else {
			assignment.Status = domain.AssignmentStatusRejected
			updates["status"] = assignment.Status
		}

		if err := tx.Model(&schema.Assignment{}).Where("id = ?", assignment.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update assignment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// GetOpenAssignment returns the item's non-terminal assignment, if any
func (s *pgStore) GetOpenAssignment(ctx context.Context, itemID uuid.UUID) (*schema.Assignment, error) {
	var assignment schema.Assignment
	err := s.db.WithContext(ctx).
		Where("item_id = ? AND status IN ?", itemID, []domain.AssignmentStatus{
			domain.AssignmentStatusPending,
			domain.AssignmentStatusActive,
			domain.AssignmentStatusAccepted,
		}).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open assignment: %w", err)
	}
	return &assignment, nil
}

// awardCreditsTx writes an earned credit entry. The partial unique index on
// earned entries per item catches the race the pre-check cannot.
func awardCreditsTx(tx *gorm.DB, input AwardCreditsInput) (*schema.CarbonCredit, error) {
	var existing int64
	err := tx.Model(&schema.CarbonCredit{}).
		Where("ewaste_item_id = ? AND transaction_type = ?", input.ItemID, domain.CreditTransactionEarned).
		Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check existing award: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: item %s", domain.ErrDuplicateAward, input.ItemID)
	}

	description := input.Description
	entry := schema.CarbonCredit{
		ID:              uuid.New(),
		UserID:          input.UserID,
		EwasteItemID:    &input.ItemID,
		CreditsEarned:   input.Credits,
		TransactionType: domain.CreditTransactionEarned,
		Description:     &description,
	}
	if err := tx.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: item %s", domain.ErrDuplicateAward, input.ItemID)
		}
		return nil, fmt.Errorf("failed to create credit entry: %w", err)
	}
	return &entry, nil
}

// AwardCredits writes an earned credit entry; a second earned entry for the
// same item fails with domain.ErrDuplicateAward
func (s *pgStore) AwardCredits(ctx context.Context, input AwardCreditsInput) (*schema.CarbonCredit, error) {
	var entry *schema.CarbonCredit
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = awardCreditsTx(tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// creditBalanceTx recomputes a user's balance from the full entry history
func creditBalanceTx(tx *gorm.DB, userID uuid.UUID) (float64, error) {
	var row struct {
		Earned float64
		Used   float64
	}
	err := tx.Model(&schema.CarbonCredit{}).
		Select("COALESCE(SUM(credits_earned), 0) AS earned, COALESCE(SUM(COALESCE(credits_used, 0)), 0) AS used").
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute credit balance: %w", err)
	}
	return row.Earned - row.Used, nil
}

// RedeemCredits writes a redeemed entry. The profile row lock serializes
// concurrent redemptions so the balance can never go negative.
func (s *pgStore) RedeemCredits(ctx context.Context, input RedeemCreditsInput) (*schema.CarbonCredit, error) {
	if input.Credits <= 0 {
		return nil, fmt.Errorf("%w: redemption amount must be positive", domain.ErrInvalidArgument)
	}

	var entry schema.CarbonCredit
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile schema.Profile
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", input.UserID).
			First(&profile).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %s", domain.ErrNotFound, input.UserID)
			}
			return fmt.Errorf("failed to lock profile: %w", err)
		}

		balance, err := creditBalanceTx(tx, input.UserID)
		if err != nil {
			return err
		}
		if balance < input.Credits {
			return fmt.Errorf("%w: balance %.2f is less than redemption %.2f", domain.ErrInvalidArgument, balance, input.Credits)
		}

		description := input.Description
		used := input.Credits
		entry = schema.CarbonCredit{
			ID:              uuid.New(),
			UserID:          input.UserID,
			CreditsUsed:     &used,
			TransactionType: domain.CreditTransactionRedeemed,
			Description:     &description,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to create redemption entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// CreditBalance recomputes the balance from the full entry history
func (s *pgStore) CreditBalance(ctx context.Context, userID uuid.UUID) (float64, error) {
	return creditBalanceTx(s.db.WithContext(ctx), userID)
}

// ListCreditEntries returns a user's credit history, newest first
func (s *pgStore) ListCreditEntries(ctx context.Context, userID uuid.UUID) ([]schema.CarbonCredit, error) {
	var entries []schema.CarbonCredit
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list credit entries: %w", err)
	}
	return entries, nil
}

// verifyAdminTx re-reads the caller's role inside the transaction so a
// concurrent demotion cannot slip a privileged write through
func verifyAdminTx(tx *gorm.DB, adminID uuid.UUID) (*schema.Profile, error) {
	var profile schema.Profile
	err := tx.Where("user_id = ?", adminID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: caller %s has no profile", domain.ErrPermissionDenied, adminID)
		}
		return nil, fmt.Errorf("failed to get caller profile: %w", err)
	}
	if profile.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: caller %s is %s, not admin", domain.ErrPermissionDenied, adminID, profile.Role)
	}
	return &profile, nil
}

// adminLogTx writes the immutable audit record for a privileged action
func adminLogTx(tx *gorm.DB, adminID uuid.UUID, action domain.AdminAction, targetID string, oldValues, newValues any) error {
	var oldJSON, newJSON datatypes.JSON
	if oldValues != nil {
		data, err := json.Marshal(oldValues)
		if err != nil {
			return fmt.Errorf("failed to marshal old values: %w", err)
		}
		oldJSON = data
	}
	if newValues != nil {
		data, err := json.Marshal(newValues)
		if err != nil {
			return fmt.Errorf("failed to marshal new values: %w", err)
		}
		newJSON = data
	}

	table := action.TargetTable()
	entry := schema.AdminLog{
		ID:          uuid.New(),
		AdminID:     adminID,
		Action:      string(action),
		TargetTable: &table,
		TargetID:    &targetID,
		OldValues:   oldJSON,
		NewValues:   newJSON,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to write admin log: %w", err)
	}
	return nil
}

// ApproveItem approves a pending item, awards credits, and writes the audit
// log as one atomic unit. A failed credit award rolls the approval back; there
// is no approve-without-credit state.
func (s *pgStore) ApproveItem(ctx context.Context, input ApproveItemInput) (*ApproveResult, error) {
	var result ApproveResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := verifyAdminTx(tx, input.AdminID); err != nil {
			return err
		}

		item, err := lockItem(tx, input.ItemID)
		if err != nil {
			return err
		}
		oldStatus := item.Status

		if _, err := s.recordEventTx(tx, item, RecordEventInput{
			ItemID:      item.ID,
			EventType:   domain.EventTypeApproved,
			ActorUserID: &input.AdminID,
		}); err != nil {
			return err
		}

		credit, err := awardCreditsTx(tx, AwardCreditsInput{
			UserID:      item.UserID,
			ItemID:      item.ID,
			Credits:     input.Credits,
			Description: fmt.Sprintf("E-waste item approved: %s", input.ItemName),
		})
		if err != nil {
			return err
		}

		now := time.Now()
		err = tx.Model(&schema.Item{}).Where("id = ?", item.ID).Updates(map[string]any{
			"collection_date":       now,
			"carbon_credits_earned": input.Credits,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update approved item: %w", err)
		}
		item.CollectionDate = &now
		item.CarbonCreditsEarned = input.Credits

		if err := adminLogTx(tx, input.AdminID, domain.AdminActionApproveEwaste, item.ID.String(),
			map[string]any{"status": oldStatus},
			map[string]any{"status": item.Status, "credits": input.Credits},
		); err != nil {
			return err
		}

		result.Item = item
		result.Credit = credit
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RejectItem rejects a pending item and writes the audit log
func (s *pgStore) RejectItem(ctx context.Context, input RejectItemInput) (*schema.Item, error) {
	var rejected *schema.Item
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := verifyAdminTx(tx, input.AdminID); err != nil {
			return err
		}

		item, err := lockItem(tx, input.ItemID)
		if err != nil {
			return err
		}
		oldStatus := item.Status

		if _, err := s.recordEventTx(tx, item, RecordEventInput{
			ItemID:      item.ID,
			EventType:   domain.EventTypeRejected,
			ActorUserID: &input.AdminID,
			Notes:       input.Reason,
		}); err != nil {
			return err
		}

		if input.Reason != nil {
			if err := tx.Model(&schema.Item{}).Where("id = ?", item.ID).
				Update("description", *input.Reason).Error; err != nil {
				return fmt.Errorf("failed to update rejected item: %w", err)
			}
			item.Description = input.Reason
		}

		if err := adminLogTx(tx, input.AdminID, domain.AdminActionRejectEwaste, item.ID.String(),
			map[string]any{"status": oldStatus},
			map[string]any{"status": item.Status, "reason": input.Reason},
		); err != nil {
			return err
		}

		rejected = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rejected, nil
}

// UpdateUserRole changes a user's role and writes the audit log
func (s *pgStore) UpdateUserRole(ctx context.Context, input UpdateUserRoleInput) (*schema.Profile, error) {
	if !domain.IsValidRole(input.NewRole) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidArgument, input.NewRole)
	}

	var updated schema.Profile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := verifyAdminTx(tx, input.AdminID); err != nil {
			return err
		}

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", input.TargetUserID).
			First(&updated).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %s", domain.ErrNotFound, input.TargetUserID)
			}
			return fmt.Errorf("failed to lock target profile: %w", err)
		}
		oldRole := updated.Role

		if err := tx.Model(&schema.Profile{}).Where("user_id = ?", input.TargetUserID).
			Update("role", input.NewRole).Error; err != nil {
			return fmt.Errorf("failed to update role: %w", err)
		}
		updated.Role = input.NewRole

		return adminLogTx(tx, input.AdminID, domain.AdminActionUpdateUserRole, input.TargetUserID.String(),
			map[string]any{"role": oldRole},
			map[string]any{"role": input.NewRole},
		)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// CreateCampaign creates a campaign and writes the audit log
func (s *pgStore) CreateCampaign(ctx context.Context, input CreateCampaignInput) (*schema.Campaign, error) {
	campaign := schema.Campaign{
		ID:           uuid.New(),
		Title:        input.Title,
		Description:  input.Description,
		TargetAmount: input.TargetAmount,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Status:       "active",
		ImageURL:     input.ImageURL,
		CreatedBy:    &input.AdminID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := verifyAdminTx(tx, input.AdminID); err != nil {
			return err
		}

		if err := tx.Create(&campaign).Error; err != nil {
			return fmt.Errorf("failed to create campaign: %w", err)
		}

		return adminLogTx(tx, input.AdminID, domain.AdminActionCreateCampaign, campaign.ID.String(),
			nil,
			map[string]any{"title": campaign.Title, "start_date": campaign.StartDate, "end_date": campaign.EndDate},
		)
	})
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// CreateNotification persists a user notification
func (s *pgStore) CreateNotification(ctx context.Context, input CreateNotificationInput) (*schema.Notification, error) {
	notification := schema.Notification{
		ID:        uuid.New(),
		UserID:    input.UserID,
		Title:     input.Title,
		Message:   input.Message,
		Type:      input.Type,
		ActionURL: input.ActionURL,
	}
	if err := s.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return &notification, nil
}
