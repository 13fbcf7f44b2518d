package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/GMS-BookingService/internal/api/handlers"
)

// MemberIDHeader заголовок с идентификатором участника.
// Аутентификацию выполняет внешний шлюз, сервис доверяет заголовку.
const MemberIDHeader = "X-Member-ID"

type memberIDKey struct{}

const msgMissingMemberID = "требуется заголовок X-Member-ID"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth извлекает идентификатор участника из заголовка и кладёт его
// в контекст запроса. Запросы без валидного заголовка отклоняются.
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(MemberIDHeader)
			if raw == "" {
				logger.Warn("%s %s - missing %s header", r.Method, r.URL.Path, MemberIDHeader)
				handlers.RespondUnauthorized(w, msgMissingMemberID)
				return
			}

			memberID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || memberID <= 0 {
				logger.Warn("%s %s - invalid %s header: %q", r.Method, r.URL.Path, MemberIDHeader, raw)
				handlers.RespondUnauthorized(w, msgMissingMemberID)
				return
			}

			ctx := context.WithValue(r.Context(), memberIDKey{}, memberID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MemberIDFromContext возвращает идентификатор участника, положенный
// Auth middleware. Второе значение false означает, что запрос прошёл
// мимо middleware, это ошибка маршрутизации.
func MemberIDFromContext(ctx context.Context) (int64, bool) {
	memberID, ok := ctx.Value(memberIDKey{}).(int64)
	return memberID, ok
}
