package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ignatzorin/marketplace-client/internal/models"
	"github.com/ignatzorin/marketplace-client/internal/pkg/apperror"
)

// persistedSession — формат файла сессии: два ключа, как в браузерном
// localStorage исходного приложения (token + user).
type persistedSession struct {
	Token string       `json:"token"`
	User  *models.User `json:"user,omitempty"`
}

// Store хранит текущую аутентифицированную личность.
// Создаётся один раз при старте и передаётся зависимостям явно,
// никакого глобального синглтона.
type Store struct {
	mu    sync.RWMutex
	path  string
	token string
	user  *models.User
	now   func() time.Time
}

// NewStore создаёт стор и поднимает сессию из файла, если он есть.
// Отсутствие файла — не ошибка: приложение стартует без сессии.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path, now: time.Now}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось прочитать файл сессии")
	}

	var persisted persistedSession
	if err := json.Unmarshal(data, &persisted); err != nil {
		// Битый файл сессии игнорируем: пользователь просто войдёт заново.
		return s, nil
	}

	s.token = persisted.Token
	s.user = persisted.User
	return s, nil
}

// Set сохраняет учётные данные после входа и персистит их на диск.
func (s *Store) Set(token string, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.user = user
	return s.persistLocked()
}

// UpdateUser обновляет кэшированную личность (например, флаг исполнителя).
func (s *Store) UpdateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return apperror.ErrUnauthorized
	}
	s.user = user
	return s.persistLocked()
}

// Clear атомарно сбрасывает сессию: после возврата ни один читатель
// не увидит старый токен. Файл сессии удаляется.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = nil

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось удалить файл сессии")
	}
	return nil
}

// Token возвращает bearer-токен или пустую строку, если сессии нет.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Current возвращает текущую личность.
func (s *Store) Current() (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" || s.user == nil {
		return nil, false
	}
	u := *s.user
	return &u, true
}

// Authenticated сообщает, есть ли живая сессия. Токен с истёкшим exp
// считается отсутствующим, чтобы не ходить в API с заведомо мёртвым
// credential (сервер всё равно последний арбитр).
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return false
	}
	return !s.expiredLocked()
}

// expiredLocked декодирует exp из токена без проверки подписи:
// подпись проверяет удалённый API, клиенту нужен только срок жизни.
func (s *Store) expiredLocked() bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(s.token, claims); err != nil {
		// Непрозрачный (не-JWT) токен считаем живым до ответа сервера.
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(s.now())
}

func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(persistedSession{Token: s.token, User: s.user}, "", "  ")
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сериализовать сессию")
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось создать каталог сессии")
		}
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сохранить файл сессии")
	}
	return nil
}
