package reconciler

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stocksentry/stocksentry-backend/internal/shortages"
	"github.com/stocksentry/stocksentry-backend/pkg/db/models"
	"github.com/stocksentry/stocksentry-backend/pkg/enums"
	pkgerrors "github.com/stocksentry/stocksentry-backend/pkg/errors"
	"github.com/stocksentry/stocksentry-backend/pkg/logger"
)

type claim struct {
	id         uuid.UUID
	claimedQty int
	state      enums.ShortageState
	orderID    uuid.UUID
}

type fakeReconcilerRepo struct {
	shortages.Repository

	claimable []models.Shortage
	claims    []claim

	resetOrders    []uuid.UUID
	resolvedOrders []uuid.UUID
	advanced       []enums.ShortageState
}

func (f *fakeReconcilerRepo) WithTx(tx *gorm.DB) shortages.Repository { return f }

func (f *fakeReconcilerRepo) FindClaimableByRef(context.Context, models.ProductRef) ([]models.Shortage, error) {
	return f.claimable, nil
}

func (f *fakeReconcilerRepo) UpdateClaim(_ context.Context, id uuid.UUID, claimedQty int, state enums.ShortageState, orderID uuid.UUID) error {
	f.claims = append(f.claims, claim{id: id, claimedQty: claimedQty, state: state, orderID: orderID})
	return nil
}

func (f *fakeReconcilerRepo) ResetByLinkedOrder(_ context.Context, orderID uuid.UUID) (int64, error) {
	f.resetOrders = append(f.resetOrders, orderID)
	return 1, nil
}

func (f *fakeReconcilerRepo) ResolveByLinkedOrder(_ context.Context, orderID uuid.UUID) (int64, error) {
	f.resolvedOrders = append(f.resolvedOrders, orderID)
	return 1, nil
}

func (f *fakeReconcilerRepo) AdvanceByLinkedOrder(_ context.Context, _ uuid.UUID, _ []enums.ShortageState, to enums.ShortageState) (int64, error) {
	f.advanced = append(f.advanced, to)
	return 1, nil
}

func newTestReconciler(t *testing.T, repo shortages.Repository) Service {
	t.Helper()
	svc, err := NewService(repo, logger.New(logger.Options{ServiceName: "reconciler-test"}), 0)
	require.NoError(t, err)
	return svc
}

func lineEvent(quantity int) LineInserted {
	productID := uuid.New()
	return LineInserted{
		OrderID:   uuid.New(),
		ProductID: &productID,
		Quantity:  quantity,
	}
}

func TestApplyLineInsertPartialClaim(t *testing.T) {
	shortage := models.Shortage{ID: uuid.New(), ShortfallQty: 2, State: enums.ShortageStateDetected}
	repo := &fakeReconcilerRepo{claimable: []models.Shortage{shortage}}
	svc := newTestReconciler(t, repo)

	event := lineEvent(1)
	require.NoError(t, svc.ApplyLineInsert(context.Background(), nil, event))

	require.Len(t, repo.claims, 1)
	assert.Equal(t, shortage.ID, repo.claims[0].id)
	assert.Equal(t, 1, repo.claims[0].claimedQty)
	assert.Equal(t, enums.ShortageStateRequestedPartial, repo.claims[0].state)
	assert.Equal(t, event.OrderID, repo.claims[0].orderID)
}

func TestApplyLineInsertFullClaim(t *testing.T) {
	shortage := models.Shortage{ID: uuid.New(), ShortfallQty: 2, ClaimedQty: 1, State: enums.ShortageStateRequestedPartial}
	repo := &fakeReconcilerRepo{claimable: []models.Shortage{shortage}}
	svc := newTestReconciler(t, repo)

	require.NoError(t, svc.ApplyLineInsert(context.Background(), nil, lineEvent(3)))

	require.Len(t, repo.claims, 1)
	assert.Equal(t, 4, repo.claims[0].claimedQty)
	assert.Equal(t, enums.ShortageStateRequestedFull, repo.claims[0].state)
}

func TestApplyLineInsertWithoutClaimableShortages(t *testing.T) {
	repo := &fakeReconcilerRepo{}
	svc := newTestReconciler(t, repo)

	require.NoError(t, svc.ApplyLineInsert(context.Background(), nil, lineEvent(5)))
	assert.Empty(t, repo.claims)
}

func TestApplyLineInsertRejectsNonPositiveQuantity(t *testing.T) {
	svc := newTestReconciler(t, &fakeReconcilerRepo{})

	err := svc.ApplyLineInsert(context.Background(), nil, lineEvent(0))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestApplyLineInsertRejectsQuantityAboveCeiling(t *testing.T) {
	svc := newTestReconciler(t, &fakeReconcilerRepo{})

	err := svc.ApplyLineInsert(context.Background(), nil, lineEvent(defaultMaxLineQuantity+1))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestApplyStatusChangeCancelledResetsClaims(t *testing.T) {
	repo := &fakeReconcilerRepo{}
	svc := newTestReconciler(t, repo)

	orderID := uuid.New()
	err := svc.ApplyStatusChange(context.Background(), nil, StatusChanged{
		OrderID:   orderID,
		OldStatus: "pending",
		NewStatus: "cancelled",
	})
	require.NoError(t, err)
	require.Len(t, repo.resetOrders, 1)
	assert.Equal(t, orderID, repo.resetOrders[0])
}

func TestApplyStatusChangeCompletedResolves(t *testing.T) {
	repo := &fakeReconcilerRepo{}
	svc := newTestReconciler(t, repo)

	orderID := uuid.New()
	err := svc.ApplyStatusChange(context.Background(), nil, StatusChanged{
		OrderID:   orderID,
		NewStatus: "completed",
	})
	require.NoError(t, err)
	require.Len(t, repo.resolvedOrders, 1)
	assert.Equal(t, orderID, repo.resolvedOrders[0])
}

func TestApplyStatusChangeAdvances(t *testing.T) {
	repo := &fakeReconcilerRepo{}
	svc := newTestReconciler(t, repo)

	require.NoError(t, svc.ApplyStatusChange(context.Background(), nil, StatusChanged{
		OrderID:   uuid.New(),
		NewStatus: "generated",
	}))
	require.NoError(t, svc.ApplyStatusChange(context.Background(), nil, StatusChanged{
		OrderID:   uuid.New(),
		NewStatus: "in_transit",
	}))

	require.Len(t, repo.advanced, 2)
	assert.Equal(t, enums.ShortageStateOrderGenerated, repo.advanced[0])
	assert.Equal(t, enums.ShortageStateInTransit, repo.advanced[1])
}

func TestApplyStatusChangeDropsUnknownStatus(t *testing.T) {
	repo := &fakeReconcilerRepo{}
	svc := newTestReconciler(t, repo)

	err := svc.ApplyStatusChange(context.Background(), nil, StatusChanged{
		OrderID:   uuid.New(),
		NewStatus: "teleported",
	})
	require.NoError(t, err)
	assert.Empty(t, repo.resetOrders)
	assert.Empty(t, repo.resolvedOrders)
	assert.Empty(t, repo.advanced)
}

func TestApplyStatusChangePendingIsNoOp(t *testing.T) {
	repo := &fakeReconcilerRepo{}
	svc := newTestReconciler(t, repo)

	err := svc.ApplyStatusChange(context.Background(), nil, StatusChanged{
		OrderID:   uuid.New(),
		NewStatus: "pending",
	})
	require.NoError(t, err)
	assert.Empty(t, repo.resetOrders)
	assert.Empty(t, repo.advanced)
}
