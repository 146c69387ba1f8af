package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OpenRedis abre e valida um cliente Redis.
func OpenRedis(addr string, db int) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return r, nil
}

// CotaCache cacheia páginas da listagem pública de cotas. A invalidação é por
// geração: cada escrita de cota incrementa um contador que entra na chave,
// tornando stale todas as páginas antigas de uma vez (expiram pelo TTL).
type CotaCache struct {
	r   *redis.Client
	ttl time.Duration
}

const genKey = "cotas:gen"

// NewCotaCache constrói o cache com TTL por entrada.
func NewCotaCache(r *redis.Client, ttl time.Duration) *CotaCache {
	return &CotaCache{r: r, ttl: ttl}
}

// Get busca uma entrada e desserializa em v. Devolve false em cache miss.
// Erros de infraestrutura são devolvidos para o caller logar e seguir no DB.
func (c *CotaCache) Get(ctx context.Context, chave string, v any) (bool, error) {
	key, err := c.chaveComGeracao(ctx, chave)
	if err != nil {
		return false, err
	}
	raw, err := c.r.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, err
	}
	return true, nil
}

// Set grava uma entrada serializada em JSON com o TTL configurado.
func (c *CotaCache) Set(ctx context.Context, chave string, v any) error {
	key, err := c.chaveComGeracao(ctx, chave)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.r.Set(ctx, key, raw, c.ttl).Err()
}

// Invalidate incrementa a geração, descartando logicamente todas as páginas.
func (c *CotaCache) Invalidate(ctx context.Context) error {
	return c.r.Incr(ctx, genKey).Err()
}

func (c *CotaCache) chaveComGeracao(ctx context.Context, chave string) (string, error) {
	gen, err := c.r.Get(ctx, genKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("cotas:list:%d:%s", gen, chave), nil
}
