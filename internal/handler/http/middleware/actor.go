package middleware

import (
	"context"
	"net/http"
	"strconv"

	"salary-admin/internal/handler/http/response"
)

// ActorHeader содержит id сотрудника, от имени которого выполняется запрос
const ActorHeader = "X-Employee-ID"

type actorKey struct{}

// ActorRequired кладет id сотрудника из заголовка в контекст запроса
func ActorRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(ActorHeader)
		if raw == "" {
			response.Unauthorized(w, ActorHeader+" header is required")
			return
		}

		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			response.Unauthorized(w, "invalid "+ActorHeader+" header")
			return
		}

		ctx := context.WithValue(r.Context(), actorKey{}, uint(id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorID возвращает id сотрудника, установленный ActorRequired
func ActorID(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(actorKey{}).(uint)
	return id, ok
}
