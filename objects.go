package pterodactyl

// The panel wraps nearly every payload in an {"object", "attributes"}
// envelope, and lists in {"object": "list", "data": [...]}. These generic
// wrappers unwrap them once, at the decode boundary.

type attributesResponse[T any] struct {
	Attributes T `json:"attributes"`
}

type listResponse[T any] struct {
	Data []attributesResponse[T] `json:"data"`
}

func (l listResponse[T]) items() []T {
	items := make([]T, 0, len(l.Data))
	for _, obj := range l.Data {
		items = append(items, obj.Attributes)
	}
	return items
}

type dataResponse[T any] struct {
	Data T `json:"data"`
}
