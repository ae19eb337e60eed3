package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var ErrCredentialNotFound = errors.New("credential not found or expired")

// CredentialRepository is a read-only view of the auth collaborator's
// key-value credential store. Tokens are produced and invalidated elsewhere;
// this gateway only consults them before a personalization fetch.
type CredentialRepository struct {
	client *redis.Client
}

func NewCredentialRepository(client *redis.Client) *CredentialRepository {
	return &CredentialRepository{
		client: client,
	}
}

// ValidateToken resolves a bearer token to the user it belongs to. An absent
// token is a representable state, not a failure of the store.
func (r *CredentialRepository) ValidateToken(ctx context.Context, token string) (string, error) {
	tokenKey := fmt.Sprintf("token:lookup:%s", token)

	userID, err := r.client.Get(ctx, tokenKey).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrCredentialNotFound
		}
		return "", fmt.Errorf("failed to validate token: %w", err)
	}

	return userID, nil
}
