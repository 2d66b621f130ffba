package lifecycle

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/marketplace-client/internal/domain/valueobject"
	"github.com/ignatzorin/marketplace-client/internal/dto"
	"github.com/ignatzorin/marketplace-client/internal/models"
	"github.com/ignatzorin/marketplace-client/internal/pkg/apperror"
	"github.com/ignatzorin/marketplace-client/internal/session"
	"github.com/ignatzorin/marketplace-client/internal/validation"
)

// Gateway — операции удалённого API, нужные модели жизненного цикла.
type Gateway interface {
	CreateRequest(ctx context.Context, req *dto.CreateRequestRequest) (*models.ServiceRequest, error)
	ListMyRequests(ctx context.Context) ([]models.ServiceRequest, error)
	ListReceivedRequests(ctx context.Context) ([]models.ServiceRequest, error)
	RespondRequest(ctx context.Context, id uuid.UUID, decision valueobject.Decision) (*models.ServiceRequest, error)
	FinalizeRequest(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error)
	DeleteRequest(ctx context.Context, id uuid.UUID) error
	CreateRating(ctx context.Context, requestID uuid.UUID, score int, comment *string) (*models.Rating, error)
	ListMyRatings(ctx context.Context) ([]models.Rating, error)
}

// Service — модель жизненного цикла заявок. Держит загруженный набор
// заявок текущего пользователя, проверяет допустимость переходов в одной
// точке (valueobject.RequestStatus) и после каждой успешной мутации
// перечитывает авторитетный список с удалённого API вместо локального
// патча: сервер — последний арбитр состояния.
type Service struct {
	mu      sync.RWMutex
	gw      Gateway
	session *session.Store

	requests []models.ServiceRequest
	index    map[uuid.UUID]int
	rated    map[uuid.UUID]bool
}

func NewService(gw Gateway, sess *session.Store) *Service {
	return &Service{
		gw:      gw,
		session: sess,
		index:   make(map[uuid.UUID]int),
		rated:   make(map[uuid.UUID]bool),
	}
}

// Refresh перечитывает с удалённого API все видимые заявки (созданные и
// полученные) и собственные оценки. Порядок выдачи источника сохраняется:
// сначала созданные, затем полученные, дубликаты по id отбрасываются.
func (s *Service) Refresh(ctx context.Context) error {
	if _, ok := s.session.Current(); !ok {
		return apperror.ErrUnauthorized
	}

	mine, err := s.gw.ListMyRequests(ctx)
	if err != nil {
		return err
	}
	received, err := s.gw.ListReceivedRequests(ctx)
	if err != nil {
		return err
	}
	ratings, err := s.gw.ListMyRatings(ctx)
	if err != nil {
		return err
	}

	merged := make([]models.ServiceRequest, 0, len(mine)+len(received))
	index := make(map[uuid.UUID]int, len(mine)+len(received))
	for _, req := range append(mine, received...) {
		if _, seen := index[req.ID]; seen {
			continue
		}
		index[req.ID] = len(merged)
		merged = append(merged, req)
	}

	rated := make(map[uuid.UUID]bool, len(ratings))
	for _, rating := range ratings {
		rated[rating.RequestID] = true
	}

	s.mu.Lock()
	s.requests = merged
	s.index = index
	s.rated = rated
	s.mu.Unlock()
	return nil
}

// Snapshot возвращает копию загруженного набора в порядке источника.
func (s *Service) Snapshot() []models.ServiceRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ServiceRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Rated возвращает множество заявок, по которым уже есть оценка.
func (s *Service) Rated() map[uuid.UUID]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[uuid.UUID]bool, len(s.rated))
	for id := range s.rated {
		out[id] = true
	}
	return out
}

// Get возвращает заявку из загруженного набора.
func (s *Service) Get(id uuid.UUID) (*models.ServiceRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked(id)
}

func (s *Service) getLocked(id uuid.UUID) (*models.ServiceRequest, error) {
	pos, ok := s.index[id]
	if !ok {
		return nil, apperror.ErrRequestNotFound
	}
	req := s.requests[pos]
	return &req, nil
}

// Create отправляет новую заявку на услугу. Заявка рождается в pending.
func (s *Service) Create(ctx context.Context, serviceID uuid.UUID, message string) (*models.ServiceRequest, error) {
	if _, ok := s.session.Current(); !ok {
		return nil, apperror.ErrUnauthorized
	}
	if err := validation.ValidateLength("сообщение", message, 0, validation.MaxRequestMsgLength); err != nil {
		return nil, err
	}

	created, err := s.gw.CreateRequest(ctx, &dto.CreateRequestRequest{ServiceID: serviceID, Message: message})
	if err != nil {
		return nil, err
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// Respond передаёт решение исполнителя по pending-заявке. Действовать
// может только исполнитель заявки, и только пока она не рассмотрена.
func (s *Service) Respond(ctx context.Context, id uuid.UUID, decision valueobject.Decision) (*models.ServiceRequest, error) {
	user, ok := s.session.Current()
	if !ok {
		return nil, apperror.ErrUnauthorized
	}
	if !decision.IsValid() {
		return nil, apperror.New(apperror.ErrCodeValidation, "решение должно быть accepted или rejected")
	}

	s.mu.RLock()
	req, err := s.getLocked(id)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	if !req.IsProvider(user.ID) {
		return nil, apperror.ErrForbidden
	}
	if !req.Status.CanTransitionTo(decision.Status()) {
		return nil, apperror.ErrAlreadyResolved
	}

	updated, err := s.gw.RespondRequest(ctx, id, decision)
	if err != nil {
		return nil, err
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// Finalize помечает принятую заявку завершённой и открывает клиенту
// возможность оценки. Допустим только переход accepted -> finalized.
func (s *Service) Finalize(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error) {
	user, ok := s.session.Current()
	if !ok {
		return nil, apperror.ErrUnauthorized
	}

	s.mu.RLock()
	req, err := s.getLocked(id)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	if !req.IsProvider(user.ID) {
		return nil, apperror.ErrForbidden
	}
	if !req.Status.CanTransitionTo(valueobject.RequestStatusFinalized) {
		return nil, apperror.ErrNotAccepted
	}

	updated, err := s.gw.FinalizeRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete убирает заявку из видимости обеих сторон. Допустимо в любом
// состоянии и необратимо — подтверждение лежит на UI.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	user, ok := s.session.Current()
	if !ok {
		return apperror.ErrUnauthorized
	}

	s.mu.RLock()
	req, err := s.getLocked(id)
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	if !req.IsProvider(user.ID) && !req.IsClient(user.ID) {
		return apperror.ErrForbidden
	}

	if err := s.gw.DeleteRequest(ctx, id); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Rate оставляет оценку по завершённой заявке. Оценивает только
// клиент-автор, ровно один раз; оценка от 1 до 5, комментарий
// необязателен и ограничен по длине. Локальная валидация выполняется
// до любого сетевого вызова.
func (s *Service) Rate(ctx context.Context, id uuid.UUID, score int, comment *string) (*models.Rating, error) {
	user, ok := s.session.Current()
	if !ok {
		return nil, apperror.ErrUnauthorized
	}

	if err := validation.ValidateScore(score); err != nil {
		return nil, err
	}
	if err := validation.ValidateComment(comment); err != nil {
		return nil, err
	}

	s.mu.RLock()
	req, err := s.getLocked(id)
	alreadyRated := s.rated[id]
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	if !req.IsClient(user.ID) {
		return nil, apperror.ErrForbidden
	}
	if req.Status != valueobject.RequestStatusFinalized {
		return nil, apperror.ErrNotFinalized
	}
	if alreadyRated {
		return nil, apperror.ErrDuplicateRating
	}

	rating, err := s.gw.CreateRating(ctx, id, score, comment)
	if err != nil {
		return nil, err
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return rating, nil
}
