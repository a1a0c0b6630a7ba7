// Package storage описывает хранилище слотов: строковый ключ и JSON-снимок
// всей коллекции целиком. Каждый снимок обернут в конверт с версией схемы.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/mod/semver"
)

// Ключи слотов.
const (
	KeyWorkers  = "gym_workers"
	KeySession  = "gym_manager_session"
	KeyClients  = "gym_clients"
	KeyCheckins = "gym_checkins"
)

// SchemaVersion версия формата снимков. Снимок с другой мажорной версией считается поврежденным.
const SchemaVersion = "v1.0.0"

var (
	ErrCorrupt             = errors.New("corrupt snapshot")
	ErrIncompatibleVersion = errors.New("incompatible snapshot version")
)

// Store хранилище слотов. Set полностью перезаписывает значение слота.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type envelope struct {
	Version string          `json:"version"`
	SavedAt time.Time       `json:"saved_at"`
	Data    json.RawMessage `json:"data"`
}

// Encode оборачивает v в конверт текущей версии.
func Encode(v any, now time.Time) ([]byte, error) {
	const op = "storage.Encode"
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	raw, err := json.Marshal(envelope{Version: SchemaVersion, SavedAt: now.UTC(), Data: data})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return raw, nil
}

// Decode проверяет версию конверта и разбирает данные в v.
func Decode(raw []byte, v any) error {
	const op = "storage.Decode"
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrCorrupt, err)
	}
	if !semver.IsValid(env.Version) {
		return fmt.Errorf("%s: %w: version %q", op, ErrCorrupt, env.Version)
	}
	if semver.Major(env.Version) != semver.Major(SchemaVersion) {
		return fmt.Errorf("%s: %w: %s", op, ErrIncompatibleVersion, env.Version)
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("%s: %w: empty data", op, ErrCorrupt)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrCorrupt, err)
	}
	return nil
}

// LoadSlot читает слот key в v. Отсутствующий слот дает found=false без ошибки.
func LoadSlot(ctx context.Context, s Store, key string, v any) (bool, error) {
	const op = "storage.LoadSlot"
	raw, found, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("%s: %s: %w", op, key, err)
	}
	if !found {
		return false, nil
	}
	if err := Decode(raw, v); err != nil {
		return false, fmt.Errorf("%s: %s: %w", op, key, err)
	}
	return true, nil
}

// SaveSlot перезаписывает слот key снимком v.
func SaveSlot(ctx context.Context, s Store, key string, v any, now time.Time) error {
	const op = "storage.SaveSlot"
	raw, err := Encode(v, now)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", op, key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("%s: %s: %w", op, key, err)
	}
	return nil
}
