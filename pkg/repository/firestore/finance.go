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

type financeRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newFinanceRepository(client *firestore.Client) *financeRepository {
	return &financeRepository{client: client}
}

func (r *financeRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_finance_records"
	}
	return "finance_records"
}

func (r *financeRepository) Create(ctx context.Context, record *model.FinanceRecord) (*model.FinanceRecord, error) {
	created := record.Clone()
	if created.ID == "" {
		created.ID = types.NewRecordID()
	}
	if created.TransactionDate.IsZero() {
		created.TransactionDate = time.Now().UTC()
	}
	created.CreatedAt = time.Now().UTC()

	if _, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create finance record", goerr.V("recordID", created.ID))
	}

	return created, nil
}

func (r *financeRepository) List(ctx context.Context, userID types.UserID) ([]*model.FinanceRecord, error) {
	iter := r.client.Collection(r.collection()).
		Where("user_id", "==", userID.String()).
		OrderBy("transaction_date", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	return r.collect(iter, userID)
}

func (r *financeRepository) ListByRange(ctx context.Context, userID types.UserID, from, to time.Time) ([]*model.FinanceRecord, error) {
	iter := r.client.Collection(r.collection()).
		Where("user_id", "==", userID.String()).
		Where("transaction_date", ">=", from).
		Where("transaction_date", "<=", to).
		OrderBy("transaction_date", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	return r.collect(iter, userID)
}

func (r *financeRepository) collect(iter *firestore.DocumentIterator, userID types.UserID) ([]*model.FinanceRecord, error) {
	records := make([]*model.FinanceRecord, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate finance records", goerr.V("userID", userID))
		}

		var record model.FinanceRecord
		if err := docSnap.DataTo(&record); err != nil {
			return nil, goerr.Wrap(err, "failed to decode finance record", goerr.V("doc_id", docSnap.Ref.ID))
		}

		records = append(records, &record)
	}

	return records, nil
}

func (r *financeRepository) Delete(ctx context.Context, userID types.UserID, id types.RecordID) error {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "finance record not found", goerr.V("recordID", id))
		}
		return goerr.Wrap(err, "failed to get finance record", goerr.V("recordID", id))
	}

	var record model.FinanceRecord
	if err := docSnap.DataTo(&record); err != nil {
		return goerr.Wrap(err, "failed to decode finance record", goerr.V("recordID", id))
	}
	if record.UserID != userID {
		return goerr.Wrap(ErrNotFound, "finance record not found", goerr.V("recordID", id))
	}

	if _, err := r.client.Collection(r.collection()).Doc(id.String()).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete finance record", goerr.V("recordID", id))
	}

	return nil
}

// ReplaceByLog deletes all records linked to the log and inserts the given
// ones in a single transaction.
func (r *financeRepository) ReplaceByLog(ctx context.Context, userID types.UserID, logID types.LogID, records []*model.FinanceRecord) error {
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		query := r.client.Collection(r.collection()).
			Where("user_id", "==", userID.String()).
			Where("log_id", "==", logID.String())

		docs, err := tx.Documents(query).GetAll()
		if err != nil {
			return goerr.Wrap(err, "failed to query records by log", goerr.V("logID", logID))
		}

		for _, doc := range docs {
			if err := tx.Delete(doc.Ref); err != nil {
				return goerr.Wrap(err, "failed to delete record", goerr.V("doc_id", doc.Ref.ID))
			}
		}

		now := time.Now().UTC()
		for _, record := range records {
			stored := record.Clone()
			if stored.ID == "" {
				stored.ID = types.NewRecordID()
			}
			stored.UserID = userID
			stored.LogID = logID
			if stored.TransactionDate.IsZero() {
				stored.TransactionDate = now
			}
			stored.CreatedAt = now

			ref := r.client.Collection(r.collection()).Doc(stored.ID.String())
			if err := tx.Set(ref, stored); err != nil {
				return goerr.Wrap(err, "failed to insert record", goerr.V("recordID", stored.ID))
			}
		}

		return nil
	})
	if err != nil {
		return goerr.Wrap(err, "failed to replace finance records", goerr.V("logID", logID))
	}

	return nil
}
