package windows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CrewBooking/internal/availability"
	"github.com/m04kA/SMC-CrewBooking/internal/domain"
	"github.com/m04kA/SMC-CrewBooking/pkg/types"
)

const keyPrefix = "crew-booking:free-windows"

var (
	// ErrCacheRead возвращается при ошибке чтения из redis
	ErrCacheRead = errors.New("windows.cache: failed to read")
	// ErrCacheWrite возвращается при ошибке записи в redis
	ErrCacheWrite = errors.New("windows.cache: failed to write")
	// ErrStaleGeneration возвращается из Set, если после чтения поколения окна были инвалидированы
	ErrStaleGeneration = errors.New("windows.cache: generation changed since lookup")
)

// minGenerationTTL нижняя граница жизни счетчика поколений
const minGenerationTTL = 24 * time.Hour

// cachedWindow представление окна в кэше
type cachedWindow struct {
	Start types.TimeOfDay `json:"start"`
	End   types.TimeOfDay `json:"end"`
}

// Lookup результат чтения кэша.
// Generation - поколение окон crew на дату на момент чтения, его нужно передать в Set.
type Lookup struct {
	Windows    []availability.Interval
	Hit        bool
	Generation int64
}

// RedisCache кэш свободных окон в redis.
// Для пары crew+дата хранится счетчик поколений и хэш текущего поколения:
// поле - вариант запроса (окно и квант), значение - JSON окон.
// Инвалидация увеличивает поколение, и все варианты прежнего поколения перестают читаться.
// Set записывает окна только если поколение не менялось с момента Get.
type RedisCache struct {
	client        redis.UniversalClient
	ttl           time.Duration
	generationTTL time.Duration
}

// NewRedisCache создает кэш свободных окон
func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client:        client,
		ttl:           ttl,
		generationTTL: max(ttl, minGenerationTTL),
	}
}

// Get читает текущее поколение и закэшированные окна этого поколения
func (c *RedisCache) Get(ctx context.Context, crewID uuid.UUID, date time.Time, variant string) (Lookup, error) {
	generation, err := c.generation(ctx, c.client, crewID, date)
	if err != nil {
		return Lookup{}, fmt.Errorf("%w: Get - generation: %v", ErrCacheRead, err)
	}

	lookup := Lookup{Generation: generation}
	raw, err := c.client.HGet(ctx, EntryKey(crewID, date, generation), variant).Bytes()
	if errors.Is(err, redis.Nil) {
		return lookup, nil
	}
	if err != nil {
		return lookup, fmt.Errorf("%w: Get - hget: %v", ErrCacheRead, err)
	}

	windows, err := decode(raw)
	if err != nil {
		return lookup, fmt.Errorf("%w: Get - decode: %v", ErrCacheRead, err)
	}

	lookup.Windows = windows
	lookup.Hit = true
	return lookup, nil
}

// Set сохраняет окна в хэш поколения generation.
// Если поколение изменилось после Get (была инвалидация), запись отклоняется с ErrStaleGeneration.
func (c *RedisCache) Set(ctx context.Context, crewID uuid.UUID, date time.Time, variant string, generation int64, windows []availability.Interval) error {
	raw, err := encode(windows)
	if err != nil {
		return fmt.Errorf("%w: Set - encode: %v", ErrCacheWrite, err)
	}

	genKey := GenerationKey(crewID, date)
	entryKey := EntryKey(crewID, date, generation)

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := c.generation(ctx, tx, crewID, date)
		if err != nil {
			return err
		}
		if current != generation {
			return ErrStaleGeneration
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, entryKey, variant, raw)
			pipe.Expire(ctx, entryKey, c.ttl)
			// Счетчик живет дольше любого хэша своего поколения
			pipe.Expire(ctx, genKey, c.generationTTL)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStaleGeneration), errors.Is(err, redis.TxFailedErr):
		return ErrStaleGeneration
	default:
		return fmt.Errorf("%w: Set - hset: %v", ErrCacheWrite, err)
	}
}

// Invalidate переводит окна crew на дату в новое поколение
func (c *RedisCache) Invalidate(ctx context.Context, crewID uuid.UUID, date time.Time) error {
	genKey := GenerationKey(crewID, date)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, c.generationTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: Invalidate - incr: %v", ErrCacheWrite, err)
	}
	return nil
}

// stringGetter общий для клиента и транзакции под WATCH
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (c *RedisCache) generation(ctx context.Context, client stringGetter, crewID uuid.UUID, date time.Time) (int64, error) {
	generation, err := client.Get(ctx, GenerationKey(crewID, date)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return generation, err
}

// Key базовый ключ окон crew на дату
func Key(crewID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, crewID, date.Format(domain.DateFormat))
}

// GenerationKey ключ счетчика поколений окон crew на дату
func GenerationKey(crewID uuid.UUID, date time.Time) string {
	return Key(crewID, date) + ":gen"
}

// EntryKey ключ хэша окон заданного поколения
func EntryKey(crewID uuid.UUID, date time.Time, generation int64) string {
	return fmt.Sprintf("%s:g%d", Key(crewID, date), generation)
}

// Variant поле хэша для параметров выдачи окон
func Variant(dayStart, dayEnd types.TimeOfDay, quantum *time.Duration) string {
	q := "max"
	if quantum != nil {
		q = quantum.String()
	}
	return fmt.Sprintf("%s-%s/%s", dayStart, dayEnd, q)
}

func encode(windows []availability.Interval) ([]byte, error) {
	cached := make([]cachedWindow, len(windows))
	for i, w := range windows {
		cached[i] = cachedWindow{Start: w.Start, End: w.End}
	}
	return json.Marshal(cached)
}

func decode(raw []byte) ([]availability.Interval, error) {
	var cached []cachedWindow
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, err
	}

	windows := make([]availability.Interval, len(cached))
	for i, w := range cached {
		windows[i] = availability.Interval{Start: w.Start, End: w.End}
	}
	return windows, nil
}

// NopCache используется, когда redis отключен: всегда промах
type NopCache struct{}

// Get всегда возвращает промах
func (NopCache) Get(context.Context, uuid.UUID, time.Time, string) (Lookup, error) {
	return Lookup{}, nil
}

// Set ничего не делает
func (NopCache) Set(context.Context, uuid.UUID, time.Time, string, int64, []availability.Interval) error {
	return nil
}

// Invalidate ничего не делает
func (NopCache) Invalidate(context.Context, uuid.UUID, time.Time) error {
	return nil
}
