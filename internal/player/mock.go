package player

import (
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep/v2"
)

// Mock is a test double for Backend.
type Mock struct {
	mu sync.Mutex

	openErr   error
	opened    []beep.Format
	open      *mockDevice
	closed    bool
	streaming beep.Streamer
	done      func()
}

// NewMock creates a new mock backend for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Open(format beep.Format) (Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.opened = append(m.opened, format)
	if m.openErr != nil {
		return nil, m.openErr
	}
	if m.open != nil {
		return nil, ErrDeviceBusy
	}
	m.open = &mockDevice{mock: m}
	return m.open, nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = nil
	m.closed = true
	return nil
}

type mockDevice struct {
	mock *Mock
}

func (d *mockDevice) Play(s beep.Streamer, done func()) {
	d.mock.mu.Lock()
	defer d.mock.mu.Unlock()
	d.mock.streaming = s
	d.mock.done = done
}

func (d *mockDevice) Close() error {
	m := d.mock
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.open == d {
		m.open = nil
		m.streaming = nil
		m.done = nil
	}
	return nil
}

// Test helpers

func (m *Mock) SetOpenError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openErr = err
}

// Opened returns the formats of every Open call, failed ones included.
func (m *Mock) Opened() []beep.Format {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]beep.Format(nil), m.opened...)
}

// DeviceOpen reports whether a device is currently held.
func (m *Mock) DeviceOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open != nil
}

func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Drain pulls samples from the playing stream until it ends or max
// samples were read, and returns how many were produced.
func (m *Mock) Drain(maxSamples int) int {
	m.mu.Lock()
	s := m.streaming
	m.mu.Unlock()
	if s == nil {
		return 0
	}

	buf := make([][2]float64, 512)
	total := 0
	for total < maxSamples {
		n, ok := s.Stream(buf[:min(len(buf), maxSamples-total)])
		total += n
		if !ok {
			break
		}
	}
	return total
}

// SimulateFinished runs the done callback of the playing stream, as the
// speaker does once the stream is drained.
func (m *Mock) SimulateFinished() {
	m.mu.Lock()
	done := m.done
	m.done = nil
	m.mu.Unlock()
	if done != nil {
		done()
	}
}

// MockDecoder is a test double for Decoder producing silent sources.
type MockDecoder struct {
	mu sync.Mutex

	format  beep.Format
	samples int
	errs    map[string]error
	opened  []string
	sources []*mockStream
}

// NewMockDecoder creates a decoder whose sources hold the given number of
// silent samples at 44.1 kHz stereo.
func NewMockDecoder(samples int) *MockDecoder {
	return &MockDecoder{
		format:  beep.Format{SampleRate: 44100, NumChannels: 2, Precision: PCM16},
		samples: samples,
		errs:    make(map[string]error),
	}
}

func (d *MockDecoder) Open(path string) (*Source, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.opened = append(d.opened, path)
	if err := d.errs[path]; err != nil {
		return nil, err
	}
	s := &mockStream{length: d.samples}
	d.sources = append(d.sources, s)
	src := NewSource(path, s, d.format)
	src.Size = int64(d.samples * 4)
	return src, nil
}

// SetError makes Open fail for path.
func (d *MockDecoder) SetError(path string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errs[path] = err
}

// OpenedPaths returns every path passed to Open.
func (d *MockDecoder) OpenedPaths() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.opened...)
}

// OpenSources counts sources that were opened and not closed yet.
func (d *MockDecoder) OpenSources() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, s := range d.sources {
		if !s.closed.Load() {
			n++
		}
	}
	return n
}

// mockStream produces silence.
type mockStream struct {
	length int
	pos    int
	closed atomic.Bool
}

func (s *mockStream) Stream(samples [][2]float64) (int, bool) {
	remaining := s.length - s.pos
	if remaining <= 0 {
		return 0, false
	}
	n := min(len(samples), remaining)
	for i := range n {
		samples[i] = [2]float64{}
	}
	s.pos += n
	return n, true
}

func (s *mockStream) Err() error    { return nil }
func (s *mockStream) Len() int      { return s.length }
func (s *mockStream) Position() int { return s.pos }

func (s *mockStream) Seek(p int) error {
	s.pos = p
	return nil
}

func (s *mockStream) Close() error {
	s.closed.Store(true)
	return nil
}
