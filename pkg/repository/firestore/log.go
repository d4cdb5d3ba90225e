package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/chunpat/life-pulse-ai/pkg/domain/model"
	"github.com/chunpat/life-pulse-ai/pkg/domain/types"
)

type logRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newLogRepository(client *firestore.Client) *logRepository {
	return &logRepository{client: client}
}

func (r *logRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_logs"
	}
	return "logs"
}

func (r *logRepository) Create(ctx context.Context, entry *model.LogEntry) (*model.LogEntry, error) {
	created := entry.Clone()
	if created.ID == "" {
		created.ID = types.NewLogID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create log", goerr.V("logID", created.ID))
	}

	return created, nil
}

func (r *logRepository) Get(ctx context.Context, userID types.UserID, id types.LogID) (*model.LogEntry, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "log not found", goerr.V("logID", id))
		}
		return nil, goerr.Wrap(err, "failed to get log", goerr.V("logID", id))
	}

	var entry model.LogEntry
	if err := docSnap.DataTo(&entry); err != nil {
		return nil, goerr.Wrap(err, "failed to decode log", goerr.V("logID", id))
	}

	// ownership is part of the key space in the memory backend; enforce it
	// here too so both backends behave the same
	if entry.UserID != userID {
		return nil, goerr.Wrap(ErrNotFound, "log not found", goerr.V("logID", id))
	}

	return &entry, nil
}

func (r *logRepository) List(ctx context.Context, userID types.UserID) ([]*model.LogEntry, error) {
	iter := r.client.Collection(r.collection()).
		Where("user_id", "==", userID.String()).
		OrderBy("timestamp", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	entries := make([]*model.LogEntry, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate logs", goerr.V("userID", userID))
		}

		var entry model.LogEntry
		if err := docSnap.DataTo(&entry); err != nil {
			return nil, goerr.Wrap(err, "failed to decode log", goerr.V("doc_id", docSnap.Ref.ID))
		}

		entries = append(entries, &entry)
	}

	return entries, nil
}

func (r *logRepository) Update(ctx context.Context, entry *model.LogEntry) (*model.LogEntry, error) {
	existing, err := r.Get(ctx, entry.UserID, entry.ID)
	if err != nil {
		return nil, err
	}

	updated := entry.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := r.client.Collection(r.collection()).Doc(updated.ID.String()).Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update log", goerr.V("logID", updated.ID))
	}

	return updated, nil
}

func (r *logRepository) Delete(ctx context.Context, userID types.UserID, id types.LogID) error {
	if _, err := r.Get(ctx, userID, id); err != nil {
		return err
	}

	if _, err := r.client.Collection(r.collection()).Doc(id.String()).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete log", goerr.V("logID", id))
	}

	return nil
}

func (r *logRepository) Count(ctx context.Context, userID types.UserID) (int, error) {
	iter := r.client.Collection(r.collection()).
		Where("user_id", "==", userID.String()).
		Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to count logs", goerr.V("userID", userID))
		}
		count++
	}

	return count, nil
}

func (r *logRepository) BulkUpsert(ctx context.Context, entries []*model.LogEntry) error {
	bw := r.client.BulkWriter(ctx)
	now := time.Now().UTC()

	for _, entry := range entries {
		stored := entry.Clone()
		if stored.ID == "" {
			stored.ID = types.NewLogID()
		}
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = now
		}
		stored.UpdatedAt = now

		ref := r.client.Collection(r.collection()).Doc(stored.ID.String())
		if _, err := bw.Set(ref, stored); err != nil {
			return goerr.Wrap(err, "failed to queue log upsert", goerr.V("logID", stored.ID))
		}
	}

	bw.End()
	return nil
}
