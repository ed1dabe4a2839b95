package naming

import (
	"errors"
	"log/slog"

	"github.com/casualjim/eventchannel/pkg/slogx"
)

// Service owns a root namespace. Create one per process (or per test) and
// pass it to whoever needs it.
type Service struct {
	root   *Namespace
	logger *slog.Logger
}

// NewService creates a service with an empty root. A nil logger means
// slog.Default().
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		root:   NewNamespace(),
		logger: logger.With(slogx.LoggerName("naming")),
	}
}

func (s *Service) Root() *Namespace {
	return s.root
}

// NewNamespace creates a namespace that is not bound anywhere yet.
func (s *Service) NewNamespace() *Namespace {
	return NewNamespace()
}

// Bind binds obj at path, creating missing intermediate namespaces and
// replacing an existing object binding at the leaf.
func (s *Service) Bind(path string, obj any) error {
	n, err := ParseName(path)
	if err != nil {
		return err
	}

	ns := s.root
	for i := range n[:len(n)-1] {
		child, err := s.ensureNamespace(ns, n[i:i+1])
		if err != nil {
			return err
		}
		ns = child
	}
	if err := ns.Rebind(n[len(n)-1:], obj); err != nil {
		return err
	}
	s.logger.Debug("bound object", slog.String("path", n.String()))
	return nil
}

func (s *Service) ensureNamespace(parent *Namespace, n Name) (*Namespace, error) {
	for {
		v, err := parent.Resolve(n)
		if err == nil {
			child, ok := v.(*Namespace)
			if !ok {
				return nil, &NotFoundError{Reason: NotContext, RestOfName: n}
			}
			return child, nil
		}
		var nf *NotFoundError
		if !errors.As(err, &nf) || nf.Reason != MissingNode {
			return nil, err
		}

		child, err := parent.BindNewNamespace(n)
		if err == nil {
			return child, nil
		}
		// lost a race with another binder, resolve again
		if !errors.Is(err, ErrAlreadyBound) {
			return nil, err
		}
	}
}

// Resolve resolves n against the root.
func (s *Service) Resolve(n Name) (any, error) {
	return s.root.Resolve(n)
}

// ResolveString parses path and resolves it against the root.
func (s *Service) ResolveString(path string) (any, error) {
	n, err := ParseName(path)
	if err != nil {
		return nil, err
	}
	return s.root.Resolve(n)
}

// Unbind parses path and unbinds it from the root.
func (s *Service) Unbind(path string) error {
	n, err := ParseName(path)
	if err != nil {
		return err
	}
	if err := s.root.Unbind(n); err != nil {
		return err
	}
	s.logger.Debug("unbound object", slog.String("path", n.String()))
	return nil
}
