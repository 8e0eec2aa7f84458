// FILE: internal/service/property_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"huntstay-be/internal/dto"
	"huntstay-be/internal/entity"
	"huntstay-be/internal/pkg/apperror"
	"huntstay-be/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPropertyServiceForTest(f *fixture) IPropertyService {
	// nil redis client: the cache falls back to its in-process layer.
	return NewPropertyService(newMemUowFactory(f.store), cache.NewPropertyCache(nil, time.Minute), nopLogger{})
}

func validPropertyRequest() *dto.PropertyCreateRequest {
	return &dto.PropertyCreateRequest{
		Name:    "Mesquite Flats",
		Address: "200 County Rd 12",
		City:    "Uvalde",
		State:   "TX",
		ZipCode: "78801",
		HuntingPackages: []dto.HuntingPackageDTO{
			{Name: "Dove Opener", Price: 250, MaxHunters: 6, Duration: 1, HuntingType: "shotgun"},
		},
		Accommodations: []dto.AccommodationDTO{{Type: "cabin", Name: "Bunkhouse"}},
	}
}

func TestPropertyCreate(t *testing.T) {
	f := newFixture()
	svc := newPropertyServiceForTest(f)

	resp, err := svc.Create(context.Background(), f.provider.Id, validPropertyRequest())
	require.NoError(t, err)

	assert.Equal(t, string(entity.PropertyStatusDraft), resp.Status)
	assert.False(t, resp.IsListed)
	assert.Equal(t, f.provider.Id, resp.ProviderId)
	require.Len(t, resp.HuntingPackages, 1)
	assert.NotEmpty(t, resp.HuntingPackages[0].Id, "packages without an id get one assigned")
}

func TestPropertyCreateCatalogValidation(t *testing.T) {
	f := newFixture()
	svc := newPropertyServiceForTest(f)

	tests := []struct {
		name string
		pkg  dto.HuntingPackageDTO
	}{
		{"missing name", dto.HuntingPackageDTO{Price: 100, MaxHunters: 2, Duration: 1}},
		{"zero price", dto.HuntingPackageDTO{Name: "x", Price: 0, MaxHunters: 2, Duration: 1}},
		{"negative price", dto.HuntingPackageDTO{Name: "x", Price: -5, MaxHunters: 2, Duration: 1}},
		{"zero capacity", dto.HuntingPackageDTO{Name: "x", Price: 100, MaxHunters: 0, Duration: 1}},
		{"zero duration", dto.HuntingPackageDTO{Name: "x", Price: 100, MaxHunters: 2, Duration: 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validPropertyRequest()
			req.HuntingPackages = []dto.HuntingPackageDTO{tc.pkg}
			_, err := svc.Create(context.Background(), f.provider.Id, req)
			assert.True(t, apperror.Is(err, "INVALID_PACKAGE"))
		})
	}

	t.Run("duplicate package ids", func(t *testing.T) {
		req := validPropertyRequest()
		req.HuntingPackages = []dto.HuntingPackageDTO{
			{Id: "dup", Name: "a", Price: 100, MaxHunters: 2, Duration: 1},
			{Id: "dup", Name: "b", Price: 200, MaxHunters: 2, Duration: 1},
		}
		_, err := svc.Create(context.Background(), f.provider.Id, req)
		assert.True(t, apperror.Is(err, "INVALID_PACKAGE"))
	})
}

func TestPropertyReviewFlow(t *testing.T) {
	f := newFixture()
	svc := newPropertyServiceForTest(f)
	ctx := context.Background()

	created, err := svc.Create(ctx, f.provider.Id, validPropertyRequest())
	require.NoError(t, err)

	t.Run("only the owner submits", func(t *testing.T) {
		_, err := svc.Submit(ctx, uuid.New(), created.Id)
		require.Error(t, err)
		assert.Equal(t, apperror.KindForbidden, apperror.From(err).Kind)
	})

	t.Run("submit requires a catalog", func(t *testing.T) {
		empty, err := svc.Create(ctx, f.provider.Id, &dto.PropertyCreateRequest{
			Name: "Bare Tract", Address: "1 Empty Rd", City: "Uvalde", State: "TX", ZipCode: "78801",
		})
		require.NoError(t, err)
		_, err = svc.Submit(ctx, f.provider.Id, empty.Id)
		assert.True(t, apperror.Is(err, "INVALID_PACKAGE"))
	})

	submitted, err := svc.Submit(ctx, f.provider.Id, created.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PropertyStatusPending), submitted.Status)

	t.Run("approve only from pending", func(t *testing.T) {
		draft, err := svc.Create(ctx, f.provider.Id, validPropertyRequest())
		require.NoError(t, err)
		_, err = svc.Approve(ctx, draft.Id)
		assert.True(t, apperror.Is(err, "INVALID_STATUS"))
	})

	approved, err := svc.Approve(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PropertyStatusApproved), approved.Status)
	assert.True(t, approved.IsListed, "approval lists the property")
}

func TestPropertyRejectAndResubmit(t *testing.T) {
	f := newFixture()
	svc := newPropertyServiceForTest(f)
	ctx := context.Background()

	created, err := svc.Create(ctx, f.provider.Id, validPropertyRequest())
	require.NoError(t, err)
	_, err = svc.Submit(ctx, f.provider.Id, created.Id)
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, created.Id, "missing license documentation")
	require.NoError(t, err)
	assert.Equal(t, string(entity.PropertyStatusRejected), rejected.Status)
	assert.False(t, rejected.IsListed)

	// A rejected property can be fixed up and submitted again.
	resubmitted, err := svc.Submit(ctx, f.provider.Id, created.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PropertyStatusPending), resubmitted.Status)
}

func TestPropertySetListed(t *testing.T) {
	f := newFixture()
	svc := newPropertyServiceForTest(f)
	ctx := context.Background()

	t.Run("unlist and relist an approved property", func(t *testing.T) {
		resp, err := svc.SetListed(ctx, f.provider.Id, string(entity.RoleProvider), f.property.Id, false)
		require.NoError(t, err)
		assert.False(t, resp.IsListed)

		resp, err = svc.SetListed(ctx, f.provider.Id, string(entity.RoleProvider), f.property.Id, true)
		require.NoError(t, err)
		assert.True(t, resp.IsListed)
	})

	t.Run("draft cannot be listed", func(t *testing.T) {
		draft, err := svc.Create(ctx, f.provider.Id, validPropertyRequest())
		require.NoError(t, err)
		_, err = svc.SetListed(ctx, f.provider.Id, string(entity.RoleProvider), draft.Id, true)
		assert.True(t, apperror.Is(err, "INVALID_STATUS"))
	})
}

func TestPropertyUpdateOwnership(t *testing.T) {
	f := newFixture()
	svc := newPropertyServiceForTest(f)

	name := "Cedar Ridge Ranch & Lodge"
	_, err := svc.Update(context.Background(), uuid.New(), string(entity.RoleProvider), f.property.Id, &dto.PropertyUpdateRequest{Name: &name})
	require.Error(t, err)
	assert.Equal(t, apperror.KindForbidden, apperror.From(err).Kind)

	resp, err := svc.Update(context.Background(), f.provider.Id, string(entity.RoleProvider), f.property.Id, &dto.PropertyUpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, resp.Name)
}

func TestPropertyUpdateValidatesReplacementCatalog(t *testing.T) {
	f := newFixture()
	svc := newPropertyServiceForTest(f)

	_, err := svc.Update(context.Background(), f.provider.Id, string(entity.RoleProvider), f.property.Id, &dto.PropertyUpdateRequest{
		HuntingPackages: []dto.HuntingPackageDTO{{Name: "bad", Price: -1, MaxHunters: 1, Duration: 1}},
	})
	assert.True(t, apperror.Is(err, "INVALID_PACKAGE"))
}

func TestPropertyGetByIDServesFromCacheAfterMutation(t *testing.T) {
	f := newFixture()
	svc := newPropertyServiceForTest(f)
	ctx := context.Background()

	first, err := svc.GetByID(ctx, f.property.Id)
	require.NoError(t, err)
	assert.Equal(t, f.property.Name, first.Name)

	// Mutations invalidate, so the next read sees the new name.
	name := "Renamed Ranch"
	_, err = svc.Update(ctx, f.provider.Id, string(entity.RoleProvider), f.property.Id, &dto.PropertyUpdateRequest{Name: &name})
	require.NoError(t, err)

	second, err := svc.GetByID(ctx, f.property.Id)
	require.NoError(t, err)
	assert.Equal(t, name, second.Name)

	_, err = svc.GetByID(ctx, uuid.New())
	assert.True(t, apperror.Is(err, "PROPERTY_NOT_FOUND"))
}

func TestPropertyListPublic(t *testing.T) {
	f := newFixture()
	svc := newPropertyServiceForTest(f)
	ctx := context.Background()

	// A draft never shows up in the public listing.
	_, err := svc.Create(ctx, f.provider.Id, validPropertyRequest())
	require.NoError(t, err)

	listed, err := svc.ListPublic(ctx, &dto.PropertyListQuery{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, f.property.Id, listed[0].Id)

	byCity, err := svc.ListPublic(ctx, &dto.PropertyListQuery{City: "Kerrville"})
	require.NoError(t, err)
	assert.Len(t, byCity, 1)

	miss, err := svc.ListPublic(ctx, &dto.PropertyListQuery{City: "Amarillo"})
	require.NoError(t, err)
	assert.Empty(t, miss)
}

func TestPropertyListByProvider(t *testing.T) {
	f := newFixture()
	svc := newPropertyServiceForTest(f)
	ctx := context.Background()

	_, err := svc.Create(ctx, f.provider.Id, validPropertyRequest())
	require.NoError(t, err)

	mine, err := svc.ListByProvider(ctx, f.provider.Id)
	require.NoError(t, err)
	assert.Len(t, mine, 2, "drafts included for the owner")

	other, err := svc.ListByProvider(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}
