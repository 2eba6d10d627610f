package querycache

import "context"

// Callbacks son los hooks que el llamador pasa a una mutación.
// Los errores se reenvían tal cual a OnError y además se devuelven.
type Callbacks[T any] struct {
	OnSuccess func(T)
	OnError   func(error)
}

// Mutation describe una escritura y qué keys invalida cuando sale bien.
type Mutation[T any] struct {
	Run func(ctx context.Context) (T, error)
	// Invalidates recibe el resultado; cada key se invalida por prefijo.
	Invalidates func(T) []Key
}

// Mutate ejecuta m, invalida sus keys y recién después llama OnSuccess,
// así el callback ya ve las queries afectadas en loading.
func Mutate[T any](ctx context.Context, c *Client, m Mutation[T], cb Callbacks[T]) (T, error) {
	out, err := m.Run(ctx)
	if err != nil {
		if cb.OnError != nil {
			cb.OnError(err)
		}
		var zero T
		return zero, err
	}

	if m.Invalidates != nil {
		for _, k := range m.Invalidates(out) {
			c.Invalidate(k, false)
		}
	}
	if cb.OnSuccess != nil {
		cb.OnSuccess(out)
	}
	return out, nil
}
