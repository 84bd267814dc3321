// Package monitoring serves the presentation page and an HTTP API to watch
// and steer a running carousel.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
	"go.uber.org/zap"

	"github.com/novaera/showcase/carousel"
	"github.com/novaera/showcase/hooking"
	"github.com/novaera/showcase/monitoring/web"
	"github.com/novaera/showcase/timing"
)

const streamBufferSize = 16

// Monitor turns a running session into a web server. Every read or write of
// carousel state is done through Engine.Invoke.
//
// A Monitor is also a hook: attach it to a Controller and every Transition is
// pushed to the clients of /api/stream.
type Monitor struct {
	engine     timing.Engine
	deck       *carousel.Deck
	components []timing.Named
	portNumber int
	logger     *zap.Logger

	profileDuration time.Duration
	upgrader        websocket.Upgrader

	serverLock sync.Mutex
	server     *http.Server
	port       int

	subsLock sync.Mutex
	subs     map[*subscriber]struct{}
}

type subscriber struct {
	send chan []byte
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		logger:          zap.NewNop(),
		profileDuration: time.Second,
		subs:            make(map[*subscriber]struct{}),
	}
}

// WithPortNumber sets the port number of the monitor. Ports below 1000 are
// refused and a random port is used instead.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		m.logger.Warn("port not allowed for the monitor, using a random port",
			zap.Int("port", portNumber))
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithLogger sets the logger of the monitor.
func (m *Monitor) WithLogger(logger *zap.Logger) *Monitor {
	m.logger = logger
	return m
}

// RegisterEngine registers the engine whose serial queue owns the state.
func (m *Monitor) RegisterEngine(e timing.Engine) {
	m.engine = e
}

// RegisterDeck registers the deck that the page and the carousel endpoints
// show. Its controller is registered as a component too.
func (m *Monitor) RegisterDeck(d *carousel.Deck) {
	m.deck = d
	m.RegisterComponent(d.Controller())
}

// RegisterComponent registers a component whose fields can be dumped.
func (m *Monitor) RegisterComponent(c timing.Named) {
	m.components = append(m.components, c)
}

// Router returns the handler of all monitor routes.
func (m *Monitor) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/pause", m.pauseEngine).Methods(http.MethodPost)
	r.HandleFunc("/api/continue", m.continueEngine).Methods(http.MethodPost)
	r.HandleFunc("/api/now", m.now).Methods(http.MethodGet)
	r.HandleFunc("/api/carousel", m.carouselState).Methods(http.MethodGet)
	r.HandleFunc("/api/carousel/select/{index}", m.selectSlide).
		Methods(http.MethodPost)
	r.HandleFunc("/api/list_components", m.listComponents).
		Methods(http.MethodGet)
	r.HandleFunc("/api/component/{name}", m.componentDetails).
		Methods(http.MethodGet)
	r.HandleFunc("/api/resource", m.listResources).Methods(http.MethodGet)
	r.HandleFunc("/api/profile", m.collectProfile).Methods(http.MethodGet)
	r.HandleFunc("/api/stream", m.stream)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts serving in the background and returns the port it
// listens on.
func (m *Monitor) StartServer() (int, error) {
	m.serverLock.Lock()
	defer m.serverLock.Unlock()

	if m.server != nil {
		return m.port, nil
	}

	listener, err := net.Listen("tcp", ":"+strconv.Itoa(m.portNumber))
	if err != nil {
		return 0, fmt.Errorf("monitoring: listen: %w", err)
	}

	m.port = listener.Addr().(*net.TCPAddr).Port
	m.server = &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	m.logger.Info("monitoring carousel", zap.String("url", m.url()))

	server := m.server
	go func() {
		err := server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error("monitor server stopped", zap.Error(err))
		}
	}()

	return m.port, nil
}

// URL returns the address of the page, or "" before StartServer.
func (m *Monitor) URL() string {
	m.serverLock.Lock()
	defer m.serverLock.Unlock()

	if m.server == nil {
		return ""
	}

	return m.url()
}

func (m *Monitor) url() string {
	return fmt.Sprintf("http://localhost:%d", m.port)
}

// OpenInBrowser opens the page in the default browser.
func (m *Monitor) OpenInBrowser() error {
	u := m.URL()
	if u == "" {
		return errors.New("monitoring: server not started")
	}

	return browser.OpenURL(u)
}

// Shutdown stops the server and disconnects stream clients.
func (m *Monitor) Shutdown(ctx context.Context) error {
	m.closeSubscribers()

	m.serverLock.Lock()
	server := m.server
	m.server = nil
	m.serverLock.Unlock()

	if server == nil {
		return nil
	}

	return server.Shutdown(ctx)
}

// Func broadcasts the Transition carried by ctx to stream clients. A client
// that cannot keep up misses messages instead of blocking the engine.
func (m *Monitor) Func(ctx hooking.HookCtx) {
	tr, ok := ctx.Item.(carousel.Transition)
	if !ok {
		return
	}

	msg, err := json.Marshal(tr)
	if err != nil {
		m.logger.Error("encoding transition", zap.Error(err))
		return
	}

	m.subsLock.Lock()
	defer m.subsLock.Unlock()

	for sub := range m.subs {
		select {
		case sub.send <- msg:
		default:
			m.logger.Warn("stream client is slow, dropping transition")
		}
	}
}

func (m *Monitor) subscribe() *subscriber {
	sub := &subscriber{send: make(chan []byte, streamBufferSize)}

	m.subsLock.Lock()
	m.subs[sub] = struct{}{}
	m.subsLock.Unlock()

	return sub
}

func (m *Monitor) unsubscribe(sub *subscriber) {
	m.subsLock.Lock()
	delete(m.subs, sub)
	m.subsLock.Unlock()
}

func (m *Monitor) closeSubscribers() {
	m.subsLock.Lock()
	defer m.subsLock.Unlock()

	for sub := range m.subs {
		close(sub.send)
		delete(m.subs, sub)
	}
}

func (m *Monitor) numSubscribers() int {
	m.subsLock.Lock()
	defer m.subsLock.Unlock()

	return len(m.subs)
}

func (m *Monitor) stream(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.logger.Warn("upgrading stream", zap.Error(err))
		return
	}
	defer conn.Close()

	sub := m.subscribe()
	defer m.unsubscribe(sub)

	done := make(chan struct{})
	go func() {
		defer close(done)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-sub.send:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(
						websocket.CloseGoingAway, "shutting down"))
				return
			}

			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (m *Monitor) pauseEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Pause()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) continueEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Continue()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	var now timing.VTimeInMs
	m.engine.Invoke(func() { now = m.engine.CurrentTime() })

	fmt.Fprintf(w, "{\"now\":%d}", now)
}

type carouselRsp struct {
	Active     int                  `json:"active"`
	Count      int                  `json:"count"`
	Running    bool                 `json:"running"`
	Interval   timing.VTimeInMs     `json:"interval_ms"`
	Slides     []carousel.Slide     `json:"slides"`
	Indicators []carousel.Indicator `json:"indicators"`
}

func (m *Monitor) snapshot() carouselRsp {
	var rsp carouselRsp

	m.engine.Invoke(func() {
		ctrl := m.deck.Controller()
		rsp = carouselRsp{
			Active:     m.deck.ActiveIndex(),
			Count:      m.deck.Len(),
			Running:    ctrl.IsRunning(),
			Interval:   ctrl.Interval(),
			Slides:     m.deck.Slides(),
			Indicators: m.deck.Indicators(),
		}
	})

	return rsp
}

func (m *Monitor) carouselState(w http.ResponseWriter, _ *http.Request) {
	if !m.deckOr404(w) {
		return
	}

	m.writeJSON(w, m.snapshot())
}

func (m *Monitor) selectSlide(w http.ResponseWriter, r *http.Request) {
	if !m.deckOr404(w) {
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "index must be an integer", http.StatusBadRequest)
		return
	}

	m.engine.Invoke(func() { err = m.deck.Select(index) })

	switch {
	case errors.Is(err, carousel.ErrOutOfRange):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	m.writeJSON(w, m.snapshot())
}

func (m *Monitor) deckOr404(w http.ResponseWriter) bool {
	if m.deck == nil {
		http.Error(w, "no carousel registered", http.StatusNotFound)
		return false
	}

	return true
}

func (m *Monitor) listComponents(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(m.components))
	for _, c := range m.components {
		names = append(names, c.Name())
	}

	m.writeJSON(w, names)
}

func (m *Monitor) componentDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var component timing.Named
	for _, c := range m.components {
		if c.Name() == name {
			component = c
		}
	}

	if component == nil {
		http.Error(w, "Component not found", http.StatusNotFound)
		return
	}

	buf := bytes.NewBuffer(nil)

	var err error
	m.engine.Invoke(func() {
		serializer := goseth.NewSerializer()
		serializer.SetRoot(component)
		serializer.SetMaxDepth(1)
		err = serializer.Serialize(buf)
	})

	if err != nil {
		m.internalError(w, "serializing component", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(buf.Bytes())
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		m.internalError(w, "finding process", err)
		return
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		m.internalError(w, "reading cpu usage", err)
		return
	}

	memoryInfo, err := proc.MemoryInfo()
	if err != nil {
		m.internalError(w, "reading memory usage", err)
		return
	}

	m.writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	if err := pprof.StartCPUProfile(buf); err != nil {
		m.internalError(w, "starting profile", err)
		return
	}

	time.Sleep(m.profileDuration)
	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		m.internalError(w, "parsing profile", err)
		return
	}

	m.writeJSON(w, prof)
}

func (m *Monitor) writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		m.internalError(w, "encoding response", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (m *Monitor) internalError(w http.ResponseWriter, what string, err error) {
	m.logger.Error(what, zap.Error(err))
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
