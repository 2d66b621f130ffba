package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ignatzorin/marketplace-client/internal/pkg/apperror"
)

// Константы валидации
const (
	MinScore             = 1
	MaxScore             = 5
	MaxCommentLength     = 500
	MinMessageLength     = 1
	MaxMessageLength     = 5000
	MaxRequestMsgLength  = 2000
	MinServiceTitleLen   = 3
	MaxServiceTitleLen   = 200
	MaxServiceDescrLen   = 5000
	MaxDisplayNameLength = 100
	MaxBioLength         = 1000
)

// ValidateLength проверяет длину строки в рунах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return apperror.New(apperror.ErrCodeValidation,
			fmt.Sprintf("%s должен быть не менее %d символов", fieldName, min))
	}
	if max > 0 && length > max {
		return apperror.New(apperror.ErrCodeValidation,
			fmt.Sprintf("%s должен быть не более %d символов", fieldName, max))
	}
	return nil
}

// ValidateScore проверяет, что оценка — целое число от 1 до 5.
func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return apperror.New(apperror.ErrCodeValidation, "оценка должна быть от 1 до 5")
	}
	return nil
}

// ValidateComment проверяет необязательный комментарий к оценке.
func ValidateComment(comment *string) error {
	if comment == nil {
		return nil
	}
	return ValidateLength("комментарий", *comment, 0, MaxCommentLength)
}

// ValidateChatMessage проверяет текст сообщения чата.
func ValidateChatMessage(text string) error {
	if strings.TrimSpace(text) == "" {
		return apperror.New(apperror.ErrCodeValidation, "сообщение не может быть пустым")
	}
	return ValidateLength("сообщение", text, MinMessageLength, MaxMessageLength)
}

// ValidateTimeOfDay проверяет строку времени в формате HH:MM.
func ValidateTimeOfDay(fieldName, value string) error {
	if _, err := time.Parse("15:04", value); err != nil {
		return apperror.New(apperror.ErrCodeValidation,
			fmt.Sprintf("%s должно быть временем в формате HH:MM", fieldName))
	}
	return nil
}

// ValidateEmail проверяет формат email без претензии на полный RFC.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperror.New(apperror.ErrCodeValidation, "email обязателен")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return apperror.New(apperror.ErrCodeValidation, "некорректный email")
	}
	return nil
}
