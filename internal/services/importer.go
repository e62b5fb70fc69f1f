package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/safakhan413/user-data-api/internal/data/repos/directory"
	types "github.com/safakhan413/user-data-api/internal/domain"
	"github.com/safakhan413/user-data-api/internal/pkg/logger"
)

// Document is one record of the batch-import payload.
type Document struct {
	ID              int    `json:"_id"`
	UserID          string `json:"userId"`
	OriginationTime int64  `json:"originationTime"`
	ClusterID       string `json:"clusterId"`
	Devices         struct {
		Phone     []string `json:"phone"`
		Voicemail []string `json:"voicemail"`
	} `json:"devices"`
}

type ImportSummary struct {
	ClustersCreated   int
	PhonesCreated     int
	VoicemailsCreated int
	UsersCreated      int
	UsersSkipped      int
	PhoneLinks        int
	VoicemailLinks    int
}

// ImportService bulk-loads documents into the entity store. Clusters, phones
// and voicemails are deduplicated by natural key across repeated imports;
// users that already exist are skipped.
type ImportService interface {
	ImportDocuments(ctx context.Context, docs []Document) (ImportSummary, error)
}

type importService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      directory.UserRepo
	clusterRepo   directory.ClusterRepo
	phoneRepo     directory.PhoneRepo
	voicemailRepo directory.VoicemailRepo
}

func NewImportService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo directory.UserRepo,
	clusterRepo directory.ClusterRepo,
	phoneRepo directory.PhoneRepo,
	voicemailRepo directory.VoicemailRepo,
) ImportService {
	serviceLog := log.With("service", "ImportService")
	return &importService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		clusterRepo:   clusterRepo,
		phoneRepo:     phoneRepo,
		voicemailRepo: voicemailRepo,
	}
}

func (is *importService) ImportDocuments(ctx context.Context, docs []Document) (ImportSummary, error) {
	var summary ImportSummary
	if len(docs) == 0 {
		return summary, nil
	}

	err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := is.importClusters(ctx, tx, docs, &summary); err != nil {
			return err
		}
		phoneIDs, err := is.importPhones(ctx, tx, docs, &summary)
		if err != nil {
			return err
		}
		voicemailIDs, err := is.importVoicemails(ctx, tx, docs, &summary)
		if err != nil {
			return err
		}
		return is.importUsers(ctx, tx, docs, phoneIDs, voicemailIDs, &summary)
	})
	if err != nil {
		return ImportSummary{}, err
	}

	is.log.Info("Import completed",
		"clusters_created", summary.ClustersCreated,
		"phones_created", summary.PhonesCreated,
		"voicemails_created", summary.VoicemailsCreated,
		"users_created", summary.UsersCreated,
		"users_skipped", summary.UsersSkipped,
	)
	return summary, nil
}

func (is *importService) importClusters(ctx context.Context, tx *gorm.DB, docs []Document, summary *ImportSummary) error {
	seen := map[string]bool{}
	var clusterIDs []string
	for _, doc := range docs {
		if doc.ClusterID == "" || seen[doc.ClusterID] {
			continue
		}
		seen[doc.ClusterID] = true
		clusterIDs = append(clusterIDs, doc.ClusterID)
	}

	existing, err := is.clusterRepo.GetByIDs(ctx, tx, clusterIDs)
	if err != nil {
		return fmt.Errorf("failed to look up existing clusters: %w", err)
	}
	existingIDs := map[string]bool{}
	for _, c := range existing {
		existingIDs[c.ClusterID] = true
	}

	var newClusters []*types.Cluster
	for _, id := range clusterIDs {
		if !existingIDs[id] {
			newClusters = append(newClusters, &types.Cluster{ClusterID: id})
		}
	}
	if _, err := is.clusterRepo.Create(ctx, tx, newClusters); err != nil {
		return fmt.Errorf("failed to create clusters: %w", err)
	}
	summary.ClustersCreated = len(newClusters)
	return nil
}

// importPhones inserts unseen phones and returns identifier -> phone id for
// every phone referenced by the batch.
func (is *importService) importPhones(ctx context.Context, tx *gorm.DB, docs []Document, summary *ImportSummary) (map[string]int, error) {
	seen := map[string]bool{}
	var identifiers []string
	for _, doc := range docs {
		for _, id := range doc.Devices.Phone {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			identifiers = append(identifiers, id)
		}
	}

	existing, err := is.phoneRepo.GetByIdentifiers(ctx, tx, identifiers)
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing phones: %w", err)
	}
	mapping := make(map[string]int, len(identifiers))
	for _, p := range existing {
		mapping[p.Identifier] = p.PhoneID
	}

	var newPhones []*types.Phone
	for _, id := range identifiers {
		if _, ok := mapping[id]; !ok {
			newPhones = append(newPhones, &types.Phone{Identifier: id})
		}
	}
	created, err := is.phoneRepo.Create(ctx, tx, newPhones)
	if err != nil {
		return nil, fmt.Errorf("failed to create phones: %w", err)
	}
	for _, p := range created {
		mapping[p.Identifier] = p.PhoneID
	}
	summary.PhonesCreated = len(created)
	return mapping, nil
}

func (is *importService) importVoicemails(ctx context.Context, tx *gorm.DB, docs []Document, summary *ImportSummary) (map[string]int, error) {
	seen := map[string]bool{}
	var identifiers []string
	for _, doc := range docs {
		for _, id := range doc.Devices.Voicemail {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			identifiers = append(identifiers, id)
		}
	}

	existing, err := is.voicemailRepo.GetByIdentifiers(ctx, tx, identifiers)
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing voicemails: %w", err)
	}
	mapping := make(map[string]int, len(identifiers))
	for _, vm := range existing {
		mapping[vm.Identifier] = vm.VmID
	}

	var newVoicemails []*types.Voicemail
	for _, id := range identifiers {
		if _, ok := mapping[id]; !ok {
			newVoicemails = append(newVoicemails, &types.Voicemail{Identifier: id})
		}
	}
	created, err := is.voicemailRepo.Create(ctx, tx, newVoicemails)
	if err != nil {
		return nil, fmt.Errorf("failed to create voicemails: %w", err)
	}
	for _, vm := range created {
		mapping[vm.Identifier] = vm.VmID
	}
	summary.VoicemailsCreated = len(created)
	return mapping, nil
}

func (is *importService) importUsers(
	ctx context.Context,
	tx *gorm.DB,
	docs []Document,
	phoneIDs map[string]int,
	voicemailIDs map[string]int,
	summary *ImportSummary,
) error {
	docIDs := make([]int, 0, len(docs))
	for _, doc := range docs {
		docIDs = append(docIDs, doc.ID)
	}
	existing, err := is.userRepo.GetByIDs(ctx, tx, docIDs)
	if err != nil {
		return fmt.Errorf("failed to look up existing users: %w", err)
	}
	existingIDs := map[int]bool{}
	for _, u := range existing {
		existingIDs[u.ID] = true
	}

	var newUsers []*types.User
	var phoneLinks []*types.UserPhone
	var voicemailLinks []*types.UserVoicemail
	for _, doc := range docs {
		if existingIDs[doc.ID] {
			is.log.Debug("User already exists, skipping", "id", doc.ID)
			summary.UsersSkipped++
			continue
		}
		u := &types.User{
			ID:              doc.ID,
			UserID:          doc.UserID,
			OriginationTime: doc.OriginationTime,
		}
		if doc.ClusterID != "" {
			clusterID := doc.ClusterID
			u.ClusterID = &clusterID
		}
		newUsers = append(newUsers, u)

		for _, identifier := range doc.Devices.Phone {
			if phoneID, ok := phoneIDs[identifier]; ok {
				phoneLinks = append(phoneLinks, &types.UserPhone{UserID: doc.ID, PhoneID: phoneID})
			}
		}
		for _, identifier := range doc.Devices.Voicemail {
			if vmID, ok := voicemailIDs[identifier]; ok {
				voicemailLinks = append(voicemailLinks, &types.UserVoicemail{UserID: doc.ID, VmID: vmID})
			}
		}
	}

	if _, err := is.userRepo.Create(ctx, tx, newUsers); err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	if err := is.userRepo.LinkPhones(ctx, tx, phoneLinks); err != nil {
		return fmt.Errorf("failed to create phone links: %w", err)
	}
	if err := is.userRepo.LinkVoicemails(ctx, tx, voicemailLinks); err != nil {
		return fmt.Errorf("failed to create voicemail links: %w", err)
	}
	summary.UsersCreated = len(newUsers)
	summary.PhoneLinks = len(phoneLinks)
	summary.VoicemailLinks = len(voicemailLinks)
	return nil
}
