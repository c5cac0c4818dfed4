package recognition

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Generator is a hosted generative model able to answer an image+text prompt
// and a text-only prompt.
type Generator interface {
	Name() string
	GetModel() string
	GenerateLandmark(ctx context.Context, image []byte, mimeType, prompt string, grounding bool) (Reply, error)
	GenerateDirections(ctx context.Context, prompt string) (Reply, error)
}

var ErrUnknownEngine = errors.New("unknown engine")

// Engines is the set of configured clients, keyed by backend name.
type Engines struct {
	def     string
	clients map[string]*Client
}

func NewEngines(def string, clients ...*Client) *Engines {
	e := &Engines{def: def, clients: make(map[string]*Client, len(clients))}
	for _, c := range clients {
		e.clients[c.Name()] = c
	}
	return e
}

// GetEngine resolves name; an empty name selects the default engine.
func (e *Engines) GetEngine(name string) (*Client, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = e.def
	}
	if c, ok := e.clients[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w %q; available: %s", ErrUnknownEngine, name, strings.Join(e.Names(), " | "))
}

func (e *Engines) Default() *Client {
	c, _ := e.GetEngine("")
	return c
}

func (e *Engines) Names() []string {
	out := make([]string, 0, len(e.clients))
	for n := range e.clients {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Manager remembers which client each chat selected.
type Manager struct {
	def *Client
	m   sync.Map // chatID -> *Client
}

func NewManager(defaultClient *Client) *Manager {
	return &Manager{def: defaultClient}
}

func (m *Manager) Get(chatID int64) *Client {
	if v, ok := m.m.Load(chatID); ok {
		return v.(*Client)
	}
	return m.def
}

func (m *Manager) Set(chatID int64, c *Client) {
	m.m.Store(chatID, c)
}
