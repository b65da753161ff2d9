package controllers

import (
	"encoding/json"
	"io"
	"net"
	"sort"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/depotgrid/pkg/datastructure"
	"go.uber.org/zap"
)

type Subscriber struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

// Drain consumes the next client frame. subscribers never send planner
// commands, so payloads are discarded, but control frames (ping/close)
// still need to be answered.
func (s *Subscriber) Drain() error {
	s.io.Lock()
	defer s.io.Unlock()

	h, r, err := wsutil.NextReader(s.conn, ws.StateServerSide)
	if err != nil {
		return err
	}
	if h.OpCode.IsControl() {
		return wsutil.ControlFrameHandler(s.conn, ws.StateServerSide)(h, r)
	}

	_, err = io.Copy(io.Discard, r)
	return err
}

func (s *Subscriber) write(x interface{}) error {
	w := wsutil.NewWriter(s.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	s.io.Lock()
	defer s.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

type routeProgress struct {
	Region          string  `json:"region"`
	Label           string  `json:"label"`
	DurationSeconds float64 `json:"duration_seconds"`
	DistanceMeters  float64 `json:"distance_meters"`
	Polyline        string  `json:"polyline"`
}

// Hub fans planner progress out to every connected websocket subscriber.
type Hub struct {
	mu  sync.RWMutex
	seq uint
	us  []*Subscriber
	ns  map[uint]*Subscriber

	log *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	hub := &Hub{
		ns:  make(map[uint]*Subscriber),
		us:  make([]*Subscriber, 0),
		log: log,
	}

	return hub
}

func (h *Hub) Register(conn net.Conn) *Subscriber {
	sub := &Subscriber{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	sub.id = h.seq
	h.ns[sub.id] = sub
	h.us = append(h.us, sub)

	h.seq++
	h.mu.Unlock()

	return sub
}

func (h *Hub) Remove(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, oki := h.ns[sub.id]; !oki {
		return
	}
	delete(h.ns, sub.id)

	i := sort.Search(len(h.us), func(i int) bool {
		return h.us[i].id >= sub.id
	})

	newUs := make([]*Subscriber, len(h.us)-1)
	copy(newUs[:i], h.us[:i])
	copy(newUs[i:], h.us[i+1:])
	h.us = newUs
}

func (h *Hub) RemoveAllSubscribers() {
	h.mu.RLock()
	subs := make([]*Subscriber, len(h.us))
	copy(subs, h.us)
	h.mu.RUnlock()

	for _, sub := range subs {
		h.Remove(sub)
	}
}

// PublishRoute broadcasts one accepted route to every subscriber. a failed
// write means the peer went away, so the subscriber is dropped.
func (h *Hub) PublishRoute(region string, route datastructure.Route) {
	msg := envelope{"data": routeProgress{
		Region:          region,
		Label:           route.GetLabel(),
		DurationSeconds: route.GetDurationSeconds(),
		DistanceMeters:  route.GetDistanceMeters(),
		Polyline:        route.GetPolyline(),
	}}

	h.mu.RLock()
	subs := make([]*Subscriber, len(h.us))
	copy(subs, h.us)
	h.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.write(msg); err != nil {
			h.log.Info("dropping websocket subscriber", zap.Uint("id", sub.id), zap.Error(err))
			sub.conn.Close()
			h.Remove(sub)
		}
	}
}
