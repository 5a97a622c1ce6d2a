package auth

import "context"

// TokenGenerator выдаёт токен доступа для пользователя. Юзкейс не знает,
// какой именно формат токена за этим стоит.
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}
