package billing

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain"
)

// Presupuesto por defecto de la espera de lectura tras escritura.
const (
	DefaultVisibilityAttempts = 10
	DefaultVisibilityDelay    = 300 * time.Millisecond
)

// Clock abstrae la espera entre intentos para poder inyectarla en tests.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// VisibilityPolicy presupuesto acotado de reintentos.
type VisibilityPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	Clock       Clock
}

// DefaultVisibilityPolicy 10 intentos separados 300 ms.
func DefaultVisibilityPolicy() VisibilityPolicy {
	return VisibilityPolicy{
		MaxAttempts: DefaultVisibilityAttempts,
		Delay:       DefaultVisibilityDelay,
		Clock:       realClock{},
	}
}

// AwaitVisibility relee un registro recién escrito hasta que sea visible o se agote el presupuesto.
// Llama fetch como máximo MaxAttempts veces y espera Delay entre intentos (nunca tras el último).
// Un registro es visible cuando fetch devuelve un valor no nil sin error; los errores de lectura
// cuentan como "aún no visible".
//
// Nunca es un fallo duro: si se agota el presupuesto devuelve fallback con
// domain.ErrVisibilityTimeout, y si ctx termina devuelve fallback con ctx.Err().
func AwaitVisibility[T any](ctx context.Context, policy VisibilityPolicy, fetch func(context.Context) (*T, error), fallback *T) (*T, error) {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	clock := policy.Clock
	if clock == nil {
		clock = realClock{}
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fallback, err
		}
		v, err := fetch(ctx)
		if err == nil && v != nil {
			return v, nil
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return fallback, ctx.Err()
		case <-clock.After(policy.Delay):
		}
	}
	return fallback, domain.ErrVisibilityTimeout
}
