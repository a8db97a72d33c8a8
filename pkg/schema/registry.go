package schema

import (
	"errors"
	"fmt"
	"net"
	"net/mail"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Predicate is a named check referenced by the "custom" rule key.
// The returned error message is recorded verbatim.
type Predicate func(value any) error

// Registry maps predicate names to predicates. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	predicates map[string]Predicate
}

// NewRegistry returns a registry holding the built-in predicates:
// uuid, ip, email, date and date-time.
func NewRegistry() *Registry {
	return &Registry{predicates: map[string]Predicate{
		"uuid":      stringPredicate(isUUID, "the value must be a valid UUID."),
		"ip":        stringPredicate(isIP, "the value must be a valid IP address."),
		"email":     stringPredicate(isEmail, "the value must be a valid email address."),
		"date":      stringPredicate(layoutMatcher(time.DateOnly), "the value must be a date in YYYY-MM-DD format."),
		"date-time": stringPredicate(layoutMatcher(time.RFC3339), "the value must be an RFC 3339 date-time."),
	}}
}

// Register adds a predicate. Names are unique.
func (r *Registry) Register(name string, p Predicate) error {
	if name == "" || p == nil {
		return fmt.Errorf("%w: empty name or nil predicate", ErrInvalidDefinition)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.predicates[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePredicate, name)
	}
	r.predicates[name] = p
	return nil
}

// Lookup returns the predicate registered under name.
func (r *Registry) Lookup(name string) (Predicate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.predicates[name]
	return p, ok
}

// Names returns the registered predicate names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.predicates))
	for name := range r.predicates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var errNotString = errors.New("the value must be a string.")

func stringPredicate(match func(string) bool, message string) Predicate {
	failure := errors.New(message)
	return func(value any) error {
		s, ok := value.(string)
		if !ok {
			return errNotString
		}
		if !match(s) {
			return failure
		}
		return nil
	}
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func isIP(s string) bool {
	return net.ParseIP(s) != nil
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func layoutMatcher(layout string) func(string) bool {
	return func(s string) bool {
		_, err := time.Parse(layout, s)
		return err == nil
	}
}
