//go:generate go run go.uber.org/mock/mockgen -source=peer.go -destination=../mocks/mock_peer_repository.go -package=mocks
package repositories

import (
	"log/slog"

	"chat-store/codec"
	"chat-store/domain"
	"chat-store/infrastructure/storage"
	"chat-store/subscription"
)

type IPeerRepository interface {
	Find(id domain.ID) (domain.Peer, bool, error)
	Roster() ([]domain.Peer, error)
	Blocked() ([]domain.Peer, error)
	IsFriend(id domain.ID) (bool, error)
	Watch(id domain.ID) *subscription.Subscription[*domain.Peer]
	WatchRoster() *subscription.Subscription[[]domain.Peer]
}

type PeerRepository struct {
	store    storage.IDocumentStore
	registry *subscription.Registry
	log      *slog.Logger
}

func NewPeerRepository(store storage.IDocumentStore, registry *subscription.Registry, log *slog.Logger) PeerRepository {
	return PeerRepository{store: store, registry: registry, log: log}
}

func (p PeerRepository) Find(id domain.ID) (domain.Peer, bool, error) {
	return find(p.store, domain.KindPeer, id, codec.DecodePeer)
}

// Roster lists friends by name. Blocked and unknown peers never show up.
func (p PeerRepository) Roster() ([]domain.Peer, error) {
	return list(p.store, peersWithRole(domain.RoleFriend), codec.DecodePeer)
}

func (p PeerRepository) Blocked() ([]domain.Peer, error) {
	return list(p.store, peersWithRole(domain.RoleBlocked), codec.DecodePeer)
}

func (p PeerRepository) IsFriend(id domain.ID) (bool, error) {
	peer, found, err := p.Find(id)
	if err != nil || !found {
		return false, err
	}
	return peer.Role == domain.RoleFriend, nil
}

func (p PeerRepository) Watch(id domain.ID) *subscription.Subscription[*domain.Peer] {
	return watchOne(p.registry, p.store, domain.KindPeer, id, codec.DecodePeer)
}

func (p PeerRepository) WatchRoster() *subscription.Subscription[[]domain.Peer] {
	return watchList(p.registry, p.store, peersWithRole(domain.RoleFriend), codec.DecodePeer)
}

func peersWithRole(role domain.PeerRole) storage.Query {
	return storage.Query{
		Prefix:  domain.KindPeer.Prefix(),
		Where:   []storage.Condition{storage.Equal(codec.FieldRole, string(role))},
		OrderBy: codec.FieldName,
	}
}
