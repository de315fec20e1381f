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
	"civicserve/pkg/logger"
)

type firestoreServiceRequestRepository struct {
	client *firestore.Client
}

func NewFirestoreServiceRequestRepository(client *firestore.Client) repository.ServiceRequestRepository {
	return &firestoreServiceRequestRepository{
		client: client,
	}
}

func (r *firestoreServiceRequestRepository) Create(ctx context.Context, request *entity.ServiceRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}

	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now

	_, err := r.client.Collection("serviceRequests").Doc(request.ID).Set(ctx, request)
	if err != nil {
		return errors.Internal("Failed to create service request", err)
	}

	return nil
}

func (r *firestoreServiceRequestRepository) GetByID(ctx context.Context, id string) (*entity.ServiceRequest, error) {
	doc, err := r.client.Collection("serviceRequests").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Service request", err)
		}
		return nil, errors.Internal("Failed to get service request", err)
	}

	var request entity.ServiceRequest
	if err := doc.DataTo(&request); err != nil {
		return nil, errors.Internal("Failed to parse service request data", err)
	}

	return &request, nil
}

func (r *firestoreServiceRequestRepository) Update(ctx context.Context, request *entity.ServiceRequest) error {
	request.UpdatedAt = time.Now()

	_, err := r.client.Collection("serviceRequests").Doc(request.ID).Set(ctx, request)
	if err != nil {
		return errors.Internal("Failed to update service request", err)
	}

	return nil
}

func (r *firestoreServiceRequestRepository) GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.ServiceRequest, error) {
	query := r.client.Collection("serviceRequests").Where("paymentIntentId", "==", paymentIntentID).Limit(1)
	iter := query.Documents(ctx)
	doc, err := iter.Next()

	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Service request", nil)
		}
		return nil, errors.Internal("Failed to query service request by payment intent", err)
	}

	var request entity.ServiceRequest
	if err := doc.DataTo(&request); err != nil {
		return nil, errors.Internal("Failed to parse service request data", err)
	}

	return &request, nil
}

func (r *firestoreServiceRequestRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.ServiceRequest, error) {
	query := r.client.Collection("serviceRequests").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	iter := query.Documents(ctx)
	var requests []*entity.ServiceRequest

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while listing requests for user %s: %v", userID, err)
			return nil, errors.Internal("Failed to list service requests", err)
		}

		var request entity.ServiceRequest
		if err := doc.DataTo(&request); err != nil {
			return nil, errors.Internal("Failed to parse service request data", err)
		}

		requests = append(requests, &request)
	}

	return requests, nil
}

func (r *firestoreServiceRequestRepository) List(ctx context.Context, statusFilter entity.RequestStatus, limit, offset int) ([]*entity.ServiceRequest, int64, error) {
	query := r.client.Collection("serviceRequests").Query
	if statusFilter != "" {
		query = query.Where("status", "==", string(statusFilter))
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count service requests", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var requests []*entity.ServiceRequest

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate service requests", err)
		}

		var request entity.ServiceRequest
		if err := doc.DataTo(&request); err != nil {
			return nil, 0, errors.Internal("Failed to parse service request data", err)
		}

		requests = append(requests, &request)
	}

	return requests, total, nil
}
