package repository

import (
	"context"

	"civicserve/internal/domain/entity"
)

type ServiceRequestRepository interface {
	Create(ctx context.Context, request *entity.ServiceRequest) error
	GetByID(ctx context.Context, id string) (*entity.ServiceRequest, error)
	Update(ctx context.Context, request *entity.ServiceRequest) error

	GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.ServiceRequest, error)

	ListByUserID(ctx context.Context, userID string) ([]*entity.ServiceRequest, error)
	List(ctx context.Context, status entity.RequestStatus, limit, offset int) ([]*entity.ServiceRequest, int64, error)
}

type OrphanedPaymentRepository interface {
	Create(ctx context.Context, payment *entity.OrphanedPayment) error
	ListUnresolved(ctx context.Context) ([]*entity.OrphanedPayment, error)
	MarkResolved(ctx context.Context, id string) error
}
