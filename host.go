package motor

// HostSizeSource reports the size available to a mounted scene.
type HostSizeSource interface {
	// CurrentSize returns the host's current width and height.
	CurrentSize() (width, height float64)
	// OnSizeChange registers fn to be called when the host size changes and
	// returns a function that removes the registration.
	OnSizeChange(fn func(width, height float64)) (cancel func())
}

// poller is implemented by host sources that measure on demand.
type poller interface {
	Poll()
}

// sizeListeners is a registration list shared by the host implementations.
type sizeListeners struct {
	next uint64
	fns  map[uint64]func(width, height float64)
	// order keeps notification in registration order.
	order []uint64
}

func (l *sizeListeners) add(fn func(width, height float64)) func() {
	if l.fns == nil {
		l.fns = make(map[uint64]func(width, height float64))
	}
	l.next++
	id := l.next
	l.fns[id] = fn
	l.order = append(l.order, id)
	return func() { l.remove(id) }
}

func (l *sizeListeners) remove(id uint64) {
	if _, ok := l.fns[id]; !ok {
		return
	}
	delete(l.fns, id)
	for i, o := range l.order {
		if o == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			return
		}
	}
}

func (l *sizeListeners) notify(w, h float64) {
	ids := append([]uint64(nil), l.order...)
	for _, id := range ids {
		if fn, ok := l.fns[id]; ok {
			fn(w, h)
		}
	}
}

func (l *sizeListeners) len() int {
	return len(l.fns)
}

// Host is a HostSizeSource whose size is pushed by the owner through Resize.
// Game uses one to forward the window layout size.
type Host struct {
	w, h      float64
	listeners sizeListeners
}

// NewHost creates a Host with the given initial size.
func NewHost(width, height float64) *Host {
	return &Host{w: width, h: height}
}

// CurrentSize implements HostSizeSource.
func (h *Host) CurrentSize() (float64, float64) {
	return h.w, h.h
}

// OnSizeChange implements HostSizeSource.
func (h *Host) OnSizeChange(fn func(width, height float64)) func() {
	return h.listeners.add(fn)
}

// Resize sets the host size and notifies listeners if it changed.
func (h *Host) Resize(width, height float64) {
	if h.w == width && h.h == height {
		return
	}
	h.w, h.h = width, height
	h.listeners.notify(width, height)
}

// Listeners returns the number of registered listeners.
func (h *Host) Listeners() int {
	return h.listeners.len()
}

// PollingHost is a HostSizeSource for hosts that cannot push size changes.
// Each Poll measures the host and notifies listeners only when the size
// differs from the previous measurement. A mounted Scene polls it from
// Update.
type PollingHost struct {
	measure   func() (width, height float64)
	w, h      float64
	measured  bool
	listeners sizeListeners
}

// NewPollingHost creates a PollingHost that measures with fn. A PollingHost
// with a nil fn reports a zero size, never notifies, and is rejected by
// Scene.Mount.
func NewPollingHost(fn func() (width, height float64)) *PollingHost {
	return &PollingHost{measure: fn}
}

// CurrentSize implements HostSizeSource. The first call measures the host.
func (p *PollingHost) CurrentSize() (float64, float64) {
	if p.measure == nil {
		return 0, 0
	}
	if !p.measured {
		p.w, p.h = p.measure()
		p.measured = true
	}
	return p.w, p.h
}

// OnSizeChange implements HostSizeSource.
func (p *PollingHost) OnSizeChange(fn func(width, height float64)) func() {
	return p.listeners.add(fn)
}

// Poll measures the host and notifies listeners on change.
func (p *PollingHost) Poll() {
	if p.measure == nil {
		return
	}
	w, h := p.measure()
	if p.measured && w == p.w && h == p.h {
		return
	}
	p.w, p.h = w, h
	p.measured = true
	p.listeners.notify(w, h)
}
