package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"civicserve/internal/domain/entity"
	"civicserve/internal/domain/repository"
	"civicserve/internal/domain/service"
	"civicserve/pkg/errors"
)

// In-memory repository fakes. They mirror the Firestore adapters'
// behavior: Create assigns the id and timestamps, lookups return
// NOT_FOUND app errors.

type memRequestRepo struct {
	requests map[string]*entity.ServiceRequest
	order    []string

	failCreate error
	failUpdate error
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{requests: make(map[string]*entity.ServiceRequest)}
}

func (r *memRequestRepo) Create(ctx context.Context, request *entity.ServiceRequest) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	request.ID = uuid.New().String()
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	r.requests[request.ID] = request
	r.order = append(r.order, request.ID)
	return nil
}

func (r *memRequestRepo) GetByID(ctx context.Context, id string) (*entity.ServiceRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, errors.NotFound("Service request", nil)
	}
	return request, nil
}

func (r *memRequestRepo) Update(ctx context.Context, request *entity.ServiceRequest) error {
	if r.failUpdate != nil {
		return r.failUpdate
	}
	if _, ok := r.requests[request.ID]; !ok {
		return errors.NotFound("Service request", nil)
	}
	request.UpdatedAt = time.Now()
	r.requests[request.ID] = request
	return nil
}

func (r *memRequestRepo) GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.ServiceRequest, error) {
	for _, request := range r.requests {
		if request.PaymentIntentID == paymentIntentID {
			return request, nil
		}
	}
	return nil, errors.NotFound("Service request", nil)
}

func (r *memRequestRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.ServiceRequest, error) {
	var out []*entity.ServiceRequest
	for _, id := range r.order {
		if r.requests[id].UserID == userID {
			out = append(out, r.requests[id])
		}
	}
	return out, nil
}

func (r *memRequestRepo) List(ctx context.Context, status entity.RequestStatus, limit, offset int) ([]*entity.ServiceRequest, int64, error) {
	var out []*entity.ServiceRequest
	for _, id := range r.order {
		if status == "" || r.requests[id].Status == status {
			out = append(out, r.requests[id])
		}
	}
	total := int64(len(out))
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

type memAddressRepo struct {
	addresses map[string]*entity.SavedAddress
	order     []string
}

func newMemAddressRepo() *memAddressRepo {
	return &memAddressRepo{addresses: make(map[string]*entity.SavedAddress)}
}

func (r *memAddressRepo) Create(ctx context.Context, address *entity.SavedAddress) error {
	address.ID = uuid.New().String()
	address.CreatedAt = time.Now()
	address.UpdatedAt = address.CreatedAt
	r.addresses[address.ID] = address
	r.order = append(r.order, address.ID)
	return nil
}

func (r *memAddressRepo) GetByID(ctx context.Context, id string) (*entity.SavedAddress, error) {
	address, ok := r.addresses[id]
	if !ok {
		return nil, errors.NotFound("Address", nil)
	}
	return address, nil
}

func (r *memAddressRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.SavedAddress, error) {
	var out []*entity.SavedAddress
	for _, id := range r.order {
		if address, ok := r.addresses[id]; ok && address.UserID == userID {
			out = append(out, address)
		}
	}
	return out, nil
}

func (r *memAddressRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.addresses[id]; !ok {
		return errors.NotFound("Address", nil)
	}
	delete(r.addresses, id)
	return nil
}

func (r *memAddressRepo) ClearDefault(ctx context.Context, userID string) error {
	for _, address := range r.addresses {
		if address.UserID == userID {
			address.IsDefault = false
		}
	}
	return nil
}

type memChatRepo struct {
	conversations map[string]*entity.Conversation
	convOrder     []string
	messages      []*entity.ChatMessage
	clock         time.Time
}

func newMemChatRepo() *memChatRepo {
	return &memChatRepo{
		conversations: make(map[string]*entity.Conversation),
		clock:         time.Now(),
	}
}

// tick produces strictly increasing timestamps so ordering assertions
// are deterministic.
func (r *memChatRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Millisecond)
	return r.clock
}

func (r *memChatRepo) CreateConversation(ctx context.Context, conversation *entity.Conversation) error {
	conversation.ID = uuid.New().String()
	conversation.CreatedAt = r.tick()
	conversation.UpdatedAt = conversation.CreatedAt
	r.conversations[conversation.ID] = conversation
	r.convOrder = append(r.convOrder, conversation.ID)
	return nil
}

func (r *memChatRepo) GetConversationByID(ctx context.Context, id string) (*entity.Conversation, error) {
	conversation, ok := r.conversations[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	return conversation, nil
}

func (r *memChatRepo) UpdateConversation(ctx context.Context, conversation *entity.Conversation) error {
	if _, ok := r.conversations[conversation.ID]; !ok {
		return errors.NotFound("Conversation", nil)
	}
	conversation.UpdatedAt = r.tick()
	r.conversations[conversation.ID] = conversation
	return nil
}

func (r *memChatRepo) GetActiveByVisitorID(ctx context.Context, visitorID string) (*entity.Conversation, error) {
	for _, id := range r.convOrder {
		conversation := r.conversations[id]
		if conversation.VisitorID == visitorID && conversation.Status == entity.ConversationActive {
			return conversation, nil
		}
	}
	return nil, errors.NotFound("Conversation", nil)
}

func (r *memChatRepo) ListConversations(ctx context.Context, limit, offset int) ([]*entity.Conversation, int64, error) {
	var out []*entity.Conversation
	for _, id := range r.convOrder {
		out = append(out, r.conversations[id])
	}
	total := int64(len(out))
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *memChatRepo) CreateMessage(ctx context.Context, message *entity.ChatMessage) error {
	message.ID = uuid.New().String()
	message.CreatedAt = r.tick()
	r.messages = append(r.messages, message)
	return nil
}

func (r *memChatRepo) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.ChatMessage, int64, error) {
	var out []*entity.ChatMessage
	for _, message := range r.messages {
		if message.ConversationID == conversationID {
			out = append(out, message)
		}
	}
	total := int64(len(out))
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *memChatRepo) LastMessage(ctx context.Context, conversationID string) (*entity.ChatMessage, error) {
	var last *entity.ChatMessage
	for _, message := range r.messages {
		if message.ConversationID == conversationID {
			last = message
		}
	}
	if last == nil {
		return nil, errors.NotFound("Message", nil)
	}
	return last, nil
}

func (r *memChatRepo) CountUnread(ctx context.Context, conversationID string, sender entity.SenderType) (int, error) {
	count := 0
	for _, message := range r.messages {
		if message.ConversationID == conversationID && message.SenderType == sender && !message.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *memChatRepo) MarkMessagesRead(ctx context.Context, conversationID string, sender entity.SenderType) error {
	for _, message := range r.messages {
		if message.ConversationID == conversationID && message.SenderType == sender {
			message.IsRead = true
		}
	}
	return nil
}

type memOrphanRepo struct {
	payments []*entity.OrphanedPayment
}

func newMemOrphanRepo() *memOrphanRepo {
	return &memOrphanRepo{}
}

func (r *memOrphanRepo) Create(ctx context.Context, payment *entity.OrphanedPayment) error {
	payment.ID = uuid.New().String()
	payment.CreatedAt = time.Now()
	r.payments = append(r.payments, payment)
	return nil
}

func (r *memOrphanRepo) ListUnresolved(ctx context.Context) ([]*entity.OrphanedPayment, error) {
	var out []*entity.OrphanedPayment
	for _, payment := range r.payments {
		if !payment.Resolved {
			out = append(out, payment)
		}
	}
	return out, nil
}

func (r *memOrphanRepo) MarkResolved(ctx context.Context, id string) error {
	for _, payment := range r.payments {
		if payment.ID == id {
			now := time.Now()
			payment.Resolved = true
			payment.ResolvedAt = &now
			return nil
		}
	}
	return errors.NotFound("Orphaned payment", nil)
}

// stubPaymentService counts intents and lets tests force failures.
type stubPaymentService struct {
	created      int
	lastIntent   string
	intentStatus string // reported by RetrieveIntent, default "succeeded"
	failCreate   error

	// When block is set, CreateIntent signals entered and then parks
	// until block is closed, standing in for a slow processor call.
	block   chan struct{}
	entered chan struct{}
}

func newStubPaymentService() *stubPaymentService {
	return &stubPaymentService{intentStatus: "succeeded"}
}

func (s *stubPaymentService) CreateIntent(ctx context.Context, req service.PaymentIntentRequest) (*service.PaymentIntent, error) {
	if s.failCreate != nil {
		return nil, s.failCreate
	}
	if s.block != nil {
		s.entered <- struct{}{}
		<-s.block
	}
	s.created++
	s.lastIntent = uuid.New().String()
	return &service.PaymentIntent{
		ID:           s.lastIntent,
		ClientSecret: s.lastIntent + "_secret",
		AmountCents:  req.AmountCents,
		Status:       "requires_payment_method",
	}, nil
}

func (s *stubPaymentService) RetrieveIntent(ctx context.Context, intentID string) (*service.PaymentIntent, error) {
	return &service.PaymentIntent{
		ID:          intentID,
		AmountCents: 22600,
		Status:      s.intentStatus,
	}, nil
}

var (
	_ repository.ServiceRequestRepository  = (*memRequestRepo)(nil)
	_ repository.UserRepository            = (*memUserRepo)(nil)
	_ repository.AddressRepository         = (*memAddressRepo)(nil)
	_ repository.ChatRepository            = (*memChatRepo)(nil)
	_ repository.OrphanedPaymentRepository = (*memOrphanRepo)(nil)
	_ service.PaymentService               = (*stubPaymentService)(nil)
)
