package local

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qrpulse/qrpulse/internal/domain"
	"github.com/qrpulse/qrpulse/internal/service/campaign"
)

func testCampaign(id, name string) *domain.Campaign {
	return &domain.Campaign{
		ID:        id,
		Name:      name,
		TargetURL: "https://example.com/" + id,
		Category:  domain.CategoryMarketing,
		CreatedAt: time.Now().UTC(),
	}
}

func TestCreateAndListNewestFirst(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.CreateCampaign(ctx, testCampaign("a", "Old")))
	require.NoError(t, store.CreateCampaign(ctx, testCampaign("b", "New")))

	list, err := store.ListCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "a", list[1].ID)
}

func TestGetNotFound(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = store.GetCampaign(context.Background(), "missing")
	assert.ErrorIs(t, err, campaign.ErrNotFound)
}

func TestDeleteCascadesAndIsIdempotent(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.CreateCampaign(ctx, testCampaign("a", "Flyer")))
	require.NoError(t, store.CreateCampaign(ctx, testCampaign("b", "Keep")))
	for i := 0; i < 3; i++ {
		require.NoError(t, store.RecordScan(ctx, &domain.ScanEvent{
			ID: fmt.Sprintf("ev%d", i), CampaignID: "a", Timestamp: time.Now().UTC(),
		}))
	}
	require.NoError(t, store.RecordScan(ctx, &domain.ScanEvent{
		ID: "keep", CampaignID: "b", Timestamp: time.Now().UTC(),
	}))

	require.NoError(t, store.DeleteCampaign(ctx, "a"))

	_, err = store.GetCampaign(ctx, "a")
	assert.ErrorIs(t, err, campaign.ErrNotFound)

	scans, err := store.ListScans(ctx)
	require.NoError(t, err)
	require.Len(t, scans, 1)
	assert.Equal(t, "b", scans[0].CampaignID)

	// Second delete of the same id is a no-op.
	assert.NoError(t, store.DeleteCampaign(ctx, "a"))
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, store.CreateCampaign(ctx, testCampaign("a", "Flyer")))
	require.NoError(t, store.RecordScan(ctx, &domain.ScanEvent{
		ID: "ev1", CampaignID: "a", Timestamp: time.Now().UTC(), Device: domain.DeviceMobile,
	}))

	reopened, err := New(dir)
	require.NoError(t, err)

	list, err := reopened.ListCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Flyer", list[0].Name)

	scans, err := reopened.ListScans(ctx)
	require.NoError(t, err)
	require.Len(t, scans, 1)
	assert.Equal(t, domain.DeviceMobile, scans[0].Device)
}

func TestEmptyStoreListsAreEmptyNotNil(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	list, err := store.ListCampaigns(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	scans, err := store.ListScans(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, scans)
	assert.Empty(t, scans)
}
