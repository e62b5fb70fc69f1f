package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	types "github.com/safakhan413/user-data-api/internal/domain"
)

func SeedCluster(tb testing.TB, ctx context.Context, tx *gorm.DB, clusterID string) *types.Cluster {
	tb.Helper()
	c := &types.Cluster{ClusterID: clusterID}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed cluster: %v", err)
	}
	return c
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, id int, userID string, originationTime int64, clusterID *string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:              id,
		UserID:          userID,
		OriginationTime: originationTime,
		ClusterID:       clusterID,
	}
	if err := tx.WithContext(ctx).Omit("Phones", "Voicemails", "Cluster").Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedPhone(tb testing.TB, ctx context.Context, tx *gorm.DB, identifier string) *types.Phone {
	tb.Helper()
	p := &types.Phone{Identifier: identifier}
	if err := tx.WithContext(ctx).Omit("Users").Create(p).Error; err != nil {
		tb.Fatalf("seed phone: %v", err)
	}
	return p
}

func SeedVoicemail(tb testing.TB, ctx context.Context, tx *gorm.DB, identifier string) *types.Voicemail {
	tb.Helper()
	vm := &types.Voicemail{Identifier: identifier}
	if err := tx.WithContext(ctx).Omit("Users").Create(vm).Error; err != nil {
		tb.Fatalf("seed voicemail: %v", err)
	}
	return vm
}

func LinkPhone(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, phoneID int) {
	tb.Helper()
	link := &types.UserPhone{UserID: userID, PhoneID: phoneID}
	if err := tx.WithContext(ctx).Create(link).Error; err != nil {
		tb.Fatalf("link phone: %v", err)
	}
}

func LinkVoicemail(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, vmID int) {
	tb.Helper()
	link := &types.UserVoicemail{UserID: userID, VmID: vmID}
	if err := tx.WithContext(ctx).Create(link).Error; err != nil {
		tb.Fatalf("link voicemail: %v", err)
	}
}
