package valueobject

import "github.com/ignatzorin/marketplace-client/internal/pkg/apperror"

// RequestStatus — закрытое перечисление состояний заявки на услугу.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusFinalized RequestStatus = "finalized"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusAccepted, RequestStatusRejected, RequestStatusFinalized:
		return true
	}
	return false
}

// IsTerminal сообщает, что из состояния нет дальнейших переходов.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusRejected || s == RequestStatusFinalized
}

// CanTransitionTo — единственная точка, где определены допустимые переходы:
// pending -> accepted|rejected, accepted -> finalized. Возврата в pending нет.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	transitions := map[RequestStatus][]RequestStatus{
		RequestStatusPending:   {RequestStatusAccepted, RequestStatusRejected},
		RequestStatusAccepted:  {RequestStatusFinalized},
		RequestStatusRejected:  {},
		RequestStatusFinalized: {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == next {
			return true
		}
	}
	return false
}

func NewRequestStatus(status string) (RequestStatus, error) {
	s := RequestStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус заявки")
	}
	return s, nil
}

// Decision — решение исполнителя по pending-заявке.
type Decision string

const (
	DecisionAccepted Decision = "accepted"
	DecisionRejected Decision = "rejected"
)

func (d Decision) IsValid() bool {
	return d == DecisionAccepted || d == DecisionRejected
}

// Status возвращает статус заявки, соответствующий решению.
func (d Decision) Status() RequestStatus {
	if d == DecisionAccepted {
		return RequestStatusAccepted
	}
	return RequestStatusRejected
}

func NewDecision(decision string) (Decision, error) {
	d := Decision(decision)
	if !d.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "решение должно быть accepted или rejected")
	}
	return d, nil
}
