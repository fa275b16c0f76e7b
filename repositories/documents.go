package repositories

import (
	"chat-store/domain"
	"chat-store/infrastructure/storage"
	"chat-store/subscription"
)

// find loads one entity. Absence is not an error.
func find[T any](store storage.IDocumentStore, kind domain.Kind, id domain.ID, decode func(storage.Document) (T, error)) (T, bool, error) {
	var zero T
	doc, found, err := store.Get(kind.Key(id))
	if err != nil || !found {
		return zero, false, err
	}
	v, err := decode(doc)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

func list[T any](store storage.IDocumentStore, q storage.Query, decode func(storage.Document) (T, error)) ([]T, error) {
	docs, err := store.Query(q)
	if err != nil {
		return nil, err
	}
	res := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := decode(doc)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

// watchOne follows a single document. The delivered value is nil while the
// document does not exist.
func watchOne[T any](registry *subscription.Registry, store storage.IDocumentStore, kind domain.Kind, id domain.ID, decode func(storage.Document) (T, error)) *subscription.Subscription[*T] {
	return subscription.Subscribe(registry, subscription.KeyMatcher(kind.Key(id)), func() (*T, error) {
		v, found, err := find(store, kind, id, decode)
		if err != nil || !found {
			return nil, err
		}
		return &v, nil
	})
}

func watchList[T any](registry *subscription.Registry, store storage.IDocumentStore, q storage.Query, decode func(storage.Document) (T, error)) *subscription.Subscription[[]T] {
	return subscription.Subscribe(registry, subscription.PrefixMatcher(q.Prefix), func() ([]T, error) {
		return list(store, q, decode)
	})
}
