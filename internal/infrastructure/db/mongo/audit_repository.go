package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/apiecommerce/catalog-api/internal/core/ports"
)

const auditCollection = "auth_audit"

// AuditRepository persists authentication audit entries.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	Subject   string `bson:"subject"`
	Action    string `bson:"action"`
	Outcome   string `bson:"outcome"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *AuditRepository) Insert(ctx context.Context, entry *ports.AuditEntry) error {
	_, err := r.coll.InsertOne(ctx, auditDoc{
		Subject:   entry.Subject,
		Action:    entry.Action,
		Outcome:   entry.Outcome,
		Timestamp: entry.Timestamp.Unix(),
	})
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
