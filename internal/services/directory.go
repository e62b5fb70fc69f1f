package services

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/safakhan413/user-data-api/internal/data/repos/directory"
	types "github.com/safakhan413/user-data-api/internal/domain"
	pkgerrors "github.com/safakhan413/user-data-api/internal/pkg/errors"
	"github.com/safakhan413/user-data-api/internal/pkg/logger"
)

// Ordering keys accepted by the parameter selector.
const (
	OrderByUserID    = "user_id"
	OrderByPhone     = "phone"
	OrderByVoicemail = "voicemail"
	OrderByCluster   = "cluster"
)

// UserQuery selects users by origination time range and picks the primary
// ordering of the result. Parameter is empty for the default ordering.
type UserQuery struct {
	StartTime int64
	EndTime   int64
	Parameter string
}

// DirectoryService is the read-only query pipeline: fetch users in range,
// order them by the requested key, and sort each user's device lists. The
// result is fully materialized and never mutates the store.
type DirectoryService interface {
	ListUsers(ctx context.Context, q UserQuery) ([]*types.User, error)
}

type directoryService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo directory.UserRepo
}

func NewDirectoryService(db *gorm.DB, log *logger.Logger, userRepo directory.UserRepo) DirectoryService {
	serviceLog := log.With("service", "DirectoryService")
	return &directoryService{db: db, log: serviceLog, userRepo: userRepo}
}

func (ds *directoryService) ListUsers(ctx context.Context, q UserQuery) ([]*types.User, error) {
	// Validation happens before any storage access.
	if q.StartTime >= q.EndTime {
		return nil, fmt.Errorf("invalid time range [%d, %d]: %w", q.StartTime, q.EndTime, pkgerrors.ErrInvalidRange)
	}
	switch q.Parameter {
	case "", OrderByUserID, OrderByPhone, OrderByVoicemail, OrderByCluster:
	default:
		return nil, fmt.Errorf("unrecognized parameter %q: %w", q.Parameter, pkgerrors.ErrInvalidParameter)
	}

	users, err := ds.userRepo.FindInRange(ctx, nil, q.StartTime, q.EndTime)
	if err != nil {
		ds.log.Error("Failed to fetch users in range", "start_time", q.StartTime, "end_time", q.EndTime, "error", err)
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	if users == nil {
		users = []*types.User{}
	}

	// Device lists are always presented sorted, independent of the primary
	// ordering key.
	for _, u := range users {
		sort.Slice(u.Phones, func(i, j int) bool {
			return u.Phones[i].Identifier < u.Phones[j].Identifier
		})
		sort.Slice(u.Voicemails, func(i, j int) bool {
			return u.Voicemails[i].Identifier < u.Voicemails[j].Identifier
		})
	}

	if err := ds.orderUsers(ctx, users, q.Parameter); err != nil {
		return nil, err
	}

	ds.log.Info("Retrieved users", "count", len(users), "parameter", q.Parameter)
	return users, nil
}

// orderUsers applies the primary ordering in place. Ties always break on the
// integer id so identical queries yield identical sequences.
func (ds *directoryService) orderUsers(ctx context.Context, users []*types.User, parameter string) error {
	switch parameter {
	case "":
		sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	case OrderByUserID:
		sort.Slice(users, func(i, j int) bool {
			if users[i].UserID != users[j].UserID {
				return users[i].UserID < users[j].UserID
			}
			return users[i].ID < users[j].ID
		})
	case OrderByCluster:
		// Users without a cluster sort last.
		sort.Slice(users, func(i, j int) bool {
			return lessByOptionalKey(clusterKey(users[i]), clusterKey(users[j]), users[i].ID, users[j].ID)
		})
	case OrderByPhone:
		mins, err := ds.minIdentifiers(ctx, users, ds.userRepo.MinPhoneIdentifierPerUser)
		if err != nil {
			ds.log.Error("Failed to aggregate minimum phone identifiers", "error", err)
			return fmt.Errorf("failed to aggregate phone identifiers: %w", err)
		}
		sortByMinIdentifier(users, mins)
	case OrderByVoicemail:
		mins, err := ds.minIdentifiers(ctx, users, ds.userRepo.MinVoicemailIdentifierPerUser)
		if err != nil {
			ds.log.Error("Failed to aggregate minimum voicemail identifiers", "error", err)
			return fmt.Errorf("failed to aggregate voicemail identifiers: %w", err)
		}
		sortByMinIdentifier(users, mins)
	}
	return nil
}

func (ds *directoryService) minIdentifiers(
	ctx context.Context,
	users []*types.User,
	aggregate func(context.Context, *gorm.DB, []int) (map[int]string, error),
) (map[int]string, error) {
	ids := make([]int, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return aggregate(ctx, nil, ids)
}

// sortByMinIdentifier orders users by their minimum device identifier.
// Users with no device of that kind are absent from mins and sort last.
func sortByMinIdentifier(users []*types.User, mins map[int]string) {
	sort.Slice(users, func(i, j int) bool {
		ki, iOK := mins[users[i].ID]
		kj, jOK := mins[users[j].ID]
		var pi, pj *string
		if iOK {
			pi = &ki
		}
		if jOK {
			pj = &kj
		}
		return lessByOptionalKey(pi, pj, users[i].ID, users[j].ID)
	})
}

func clusterKey(u *types.User) *string { return u.ClusterID }

// lessByOptionalKey compares by key ascending with absent keys last, then by
// id ascending.
func lessByOptionalKey(a, b *string, idA, idB int) bool {
	switch {
	case a != nil && b != nil:
		if *a != *b {
			return *a < *b
		}
		return idA < idB
	case a != nil:
		return true
	case b != nil:
		return false
	default:
		return idA < idB
	}
}
