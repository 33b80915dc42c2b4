package geocoding

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type PostgresPlaces struct {
	DB *sqlx.DB
}

func NewPostgresPlaces(db *sqlx.DB) *PostgresPlaces {
	return &PostgresPlaces{DB: db}
}

func (s *PostgresPlaces) Get(ctx context.Context, address string) (*Place, error) {
	var place Place
	err := s.DB.GetContext(ctx, &place, `
		SELECT id, address, lat, lon, updated_at
		FROM places
		WHERE address = $1`, address)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlaceNotCached
	}
	if err != nil {
		return nil, err
	}
	return &place, nil
}

func (s *PostgresPlaces) Save(ctx context.Context, place *Place) error {
	return s.DB.QueryRowxContext(ctx, `
		INSERT INTO places (address, lat, lon, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (address) DO UPDATE
		SET lat = EXCLUDED.lat, lon = EXCLUDED.lon, updated_at = EXCLUDED.updated_at
		RETURNING id, updated_at`,
		place.Address, place.Lat, place.Lon).
		Scan(&place.ID, &place.UpdatedAt)
}

type RedisPlaces struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisPlaces(client *redis.Client, ttl time.Duration) *RedisPlaces {
	return &RedisPlaces{Client: client, TTL: ttl}
}

func (c *RedisPlaces) Key(address string) string {
	return "place:" + address
}

func (c *RedisPlaces) Get(ctx context.Context, address string) (*Place, error) {
	raw, err := c.Client.Get(ctx, c.Key(address)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrPlaceNotCached
	}
	if err != nil {
		return nil, err
	}
	var place Place
	if err := json.Unmarshal(raw, &place); err != nil {
		return nil, err
	}
	return &place, nil
}

func (c *RedisPlaces) Set(ctx context.Context, place *Place) error {
	payload, err := json.Marshal(place)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.Key(place.Address), payload, c.TTL).Err()
}
