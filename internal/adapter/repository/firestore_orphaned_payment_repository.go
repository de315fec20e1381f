package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"civicserve/internal/domain/entity"
	"civicserve/internal/domain/repository"
	"civicserve/pkg/errors"
)

type firestoreOrphanedPaymentRepository struct {
	client *firestore.Client
}

func NewFirestoreOrphanedPaymentRepository(client *firestore.Client) repository.OrphanedPaymentRepository {
	return &firestoreOrphanedPaymentRepository{
		client: client,
	}
}

func (r *firestoreOrphanedPaymentRepository) Create(ctx context.Context, payment *entity.OrphanedPayment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	payment.CreatedAt = time.Now()

	_, err := r.client.Collection("orphanedPayments").Doc(payment.ID).Set(ctx, payment)
	if err != nil {
		return errors.Internal("Failed to record orphaned payment", err)
	}

	return nil
}

func (r *firestoreOrphanedPaymentRepository) ListUnresolved(ctx context.Context) ([]*entity.OrphanedPayment, error) {
	query := r.client.Collection("orphanedPayments").
		Where("resolved", "==", false).
		OrderBy("createdAt", firestore.Desc)

	iter := query.Documents(ctx)
	var payments []*entity.OrphanedPayment

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate orphaned payments", err)
		}

		var payment entity.OrphanedPayment
		if err := doc.DataTo(&payment); err != nil {
			return nil, errors.Internal("Failed to parse orphaned payment data", err)
		}

		payments = append(payments, &payment)
	}

	return payments, nil
}

func (r *firestoreOrphanedPaymentRepository) MarkResolved(ctx context.Context, id string) error {
	docRef := r.client.Collection("orphanedPayments").Doc(id)
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Orphaned payment", err)
		}
		return errors.Internal("Failed to get orphaned payment", err)
	}

	var payment entity.OrphanedPayment
	if err := doc.DataTo(&payment); err != nil {
		return errors.Internal("Failed to parse orphaned payment data", err)
	}

	now := time.Now()
	payment.Resolved = true
	payment.ResolvedAt = &now

	if _, err := docRef.Set(ctx, payment); err != nil {
		return errors.Internal("Failed to resolve orphaned payment", err)
	}

	return nil
}
