package nats

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/modernice/notify/internal"
	"github.com/modernice/notify/notification"
)

type envelope struct {
	ID      uuid.UUID            `json:"id"`
	Name    string               `json:"name"`
	Time    time.Time            `json:"time"`
	Object  string               `json:"object,omitempty"`
	Payload notification.Payload `json:"payload,omitempty"`
}

func (c *Center) encode(n notification.Notification) ([]byte, error) {
	env := envelope{
		ID:      n.ID,
		Name:    string(n.Name),
		Time:    n.Time,
		Payload: n.Payload,
	}

	if n.Object != nil {
		if ref, ok := c.objects.lookup(n.Object); ok {
			env.Object = ref
		}
	}

	return json.Marshal(env)
}

func (c *Center) decode(b []byte) (notification.Notification, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return notification.Notification{}, fmt.Errorf("unmarshal envelope: %w", err)
	}

	opts := []notification.Option{
		notification.WithID(env.ID),
		notification.WithTime(env.Time),
		notification.WithPayload(env.Payload),
	}

	if env.Object != "" {
		if obj, ok := c.objects.resolve(env.Object); ok {
			opts = append(opts, notification.WithObject(obj))
		}
	}

	return notification.New(notification.Name(env.Name), opts...), nil
}

// objectTable holds the originators that local observers filter on. Only
// those can match an object filter of this Center, so other originators are
// never referenced. An object stays in the table while at least one observer
// filters on it.
type objectTable struct {
	id string

	mux     sync.RWMutex
	next    uint64
	entries map[string]*objectEntry
}

type objectEntry struct {
	object notification.Object
	refs   int
}

func newObjectTable() *objectTable {
	return &objectTable{
		id:      internal.NewID().String(),
		entries: make(map[string]*objectEntry),
	}
}

// register adds a reference to obj and returns its key.
func (t *objectTable) register(obj notification.Object) string {
	t.mux.Lock()
	defer t.mux.Unlock()

	if key, ok := t.find(obj); ok {
		t.entries[key].refs++
		return key
	}

	key := fmt.Sprintf("%s/%d", t.id, t.next)
	t.next++
	t.entries[key] = &objectEntry{object: obj, refs: 1}

	return key
}

// unregister removes a reference to the object of key and drops the object
// when no references are left.
func (t *objectTable) unregister(key string) {
	t.mux.Lock()
	defer t.mux.Unlock()

	e, ok := t.entries[key]
	if !ok {
		return
	}
	if e.refs--; e.refs <= 0 {
		delete(t.entries, key)
	}
}

func (t *objectTable) lookup(obj notification.Object) (string, bool) {
	t.mux.RLock()
	defer t.mux.RUnlock()
	return t.find(obj)
}

// find must be called with mux held.
func (t *objectTable) find(obj notification.Object) (string, bool) {
	for key, e := range t.entries {
		if notification.Identical(e.object, obj) {
			return key, true
		}
	}
	return "", false
}

func (t *objectTable) resolve(key string) (notification.Object, bool) {
	owner, _, ok := strings.Cut(key, "/")
	if !ok || owner != t.id {
		return nil, false
	}

	t.mux.RLock()
	defer t.mux.RUnlock()

	e, ok := t.entries[key]
	if !ok {
		return nil, false
	}
	return e.object, true
}

func (t *objectTable) size() int {
	t.mux.RLock()
	defer t.mux.RUnlock()
	return len(t.entries)
}

func (t *objectTable) clear() {
	t.mux.Lock()
	defer t.mux.Unlock()
	t.entries = make(map[string]*objectEntry)
}
