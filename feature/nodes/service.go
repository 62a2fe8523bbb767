package nodes

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"dns-fleet/core/node"

	"go.uber.org/zap"
)

// ErrInvalidNode is returned when a node fails validation.
var ErrInvalidNode = errors.New("invalid node")

var idPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// Service manages the node registry.
type Service struct {
	store    Store
	logger   *zap.Logger
	onChange []func()
}

// NewService creates a registry service.
func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// OnChange registers a callback run after every successful Add or Remove.
func (s *Service) OnChange(fn func()) {
	s.onChange = append(s.onChange, fn)
}

func (s *Service) changed() {
	for _, fn := range s.onChange {
		fn()
	}
}

// Store returns the underlying store.
func (s *Service) Store() Store {
	return s.store
}

// List returns all registered nodes.
func (s *Service) List(ctx context.Context) ([]node.Node, error) {
	return s.store.List(ctx)
}

// Get returns a single node.
func (s *Service) Get(ctx context.Context, id string) (node.Node, error) {
	return s.store.Get(ctx, id)
}

// Add validates and stores a node, replacing one with the same id.
func (s *Service) Add(ctx context.Context, n node.Node) (node.Node, error) {
	n, err := Normalize(n)
	if err != nil {
		return node.Node{}, err
	}
	if err := s.store.Upsert(ctx, n); err != nil {
		return node.Node{}, err
	}
	s.logger.Info("Node registered", zap.String("node", n.ID), zap.String("url", n.URL))
	s.changed()
	return n, nil
}

// Remove deletes a node.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Node removed", zap.String("node", id))
	s.changed()
	return nil
}

// Seed stores nodes that are not registered yet. Existing entries win so
// changes made through the API survive restarts.
func (s *Service) Seed(ctx context.Context, seed []node.Node) (int, error) {
	added := 0
	for _, n := range seed {
		_, err := s.store.Get(ctx, n.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return added, err
		}
		if _, err := s.Add(ctx, n); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

// Normalize trims and validates a node definition.
func Normalize(n node.Node) (node.Node, error) {
	n.ID = strings.TrimSpace(n.ID)
	n.Name = strings.TrimSpace(n.Name)
	n.URL = strings.TrimRight(strings.TrimSpace(n.URL), "/")
	n.Token = strings.TrimSpace(n.Token)

	if !idPattern.MatchString(n.ID) {
		return node.Node{}, fmt.Errorf("%w: id %q must be 1-64 letters, digits, '.', '_' or '-'", ErrInvalidNode, n.ID)
	}
	u, err := url.Parse(n.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return node.Node{}, fmt.Errorf("%w: url %q must be an absolute http(s) url", ErrInvalidNode, n.URL)
	}
	if n.Name == "" {
		n.Name = n.ID
	}
	return n, nil
}
