package gamepad

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultDeviceGlob     = "/dev/input/js*"
	DefaultSysfsRoot      = "/sys"
	DefaultReadTimeout    = 2 * time.Millisecond
	DefaultRescanInterval = time.Second

	// maxReadsPerPoll bounds a poll on a device that never runs dry.
	maxReadsPerPoll = 64
)

// deviceHandle is an open joystick device.
type deviceHandle interface {
	io.ReadCloser
	SetReadDeadline(t time.Time) error
}

// JoydevConfig tunes a JoydevBackend.
type JoydevConfig struct {
	Glob        string
	SysfsRoot   string
	ReadTimeout time.Duration
	// RescanInterval of zero rescans on every poll while disconnected.
	RescanInterval time.Duration
}

// JoydevBackend reads the Linux joystick device interface.
type JoydevBackend struct {
	cfg  JoydevConfig
	open func(path string) (deviceHandle, error)
	glob func(pattern string) ([]string, error)
	now  func() time.Time

	dev      deviceHandle
	path     string
	name     string
	mapping  *DeviceMapping
	state    Snapshot
	pending  []byte
	buf      []byte
	lastScan time.Time
	scanned  bool
}

func NewJoydevBackend(cfg JoydevConfig) *JoydevBackend {
	if cfg.Glob == "" {
		cfg.Glob = DefaultDeviceGlob
	}
	if cfg.SysfsRoot == "" {
		cfg.SysfsRoot = DefaultSysfsRoot
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.RescanInterval < 0 {
		cfg.RescanInterval = DefaultRescanInterval
	}
	return &JoydevBackend{
		cfg:  cfg,
		open: openDevice,
		glob: filepath.Glob,
		now:  time.Now,
		buf:  make([]byte, RecordSize*32),
	}
}

// Path returns the device path in use, or "".
func (j *JoydevBackend) Path() string {
	return j.path
}

func (j *JoydevBackend) Poll() (bool, Snapshot) {
	if j.dev == nil && !j.discover() {
		return false, Snapshot{}
	}

	for range maxReadsPerPoll {
		if err := j.dev.SetReadDeadline(time.Now().Add(j.cfg.ReadTimeout)); err != nil {
			j.drop(fmt.Errorf("set deadline: %w", err))
			return false, Snapshot{}
		}
		n, err := j.dev.Read(j.buf)
		if n > 0 {
			j.consume(j.buf[:n])
		}
		if err != nil {
			if isNoData(err) {
				break
			}
			j.drop(err)
			return false, Snapshot{}
		}
		if n == 0 {
			break
		}
	}
	return true, j.state.Clone()
}

func (j *JoydevBackend) Describe() string {
	if j.dev == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s)", j.name, j.mapping.Name)
}

func (j *JoydevBackend) Close() error {
	if j.dev == nil {
		return nil
	}
	err := j.dev.Close()
	j.reset()
	return err
}

func (j *JoydevBackend) consume(b []byte) {
	if len(j.pending) > 0 {
		b = append(j.pending, b...)
		j.pending = nil
	}
	for len(b) >= RecordSize {
		rec, _ := DecodeRecord(b)
		b = b[RecordSize:]
		switch {
		case rec.IsButton():
			j.state.Buttons[j.mapping.ButtonName(int32(rec.Number))] = rec.Value != 0
		case rec.IsAxis():
			j.state.Axes[j.mapping.AxisName(int32(rec.Number))] = rec.Value
		}
	}
	if len(b) > 0 {
		j.pending = append([]byte(nil), b...)
	}
}

// discover opens the first usable device, at most once per rescan interval.
func (j *JoydevBackend) discover() bool {
	now := j.now()
	if j.scanned && now.Sub(j.lastScan) < j.cfg.RescanInterval {
		return false
	}
	j.scanned, j.lastScan = true, now

	paths, err := j.glob(j.cfg.Glob)
	if err != nil {
		slog.Warn("Invalid joystick device glob", "glob", j.cfg.Glob, "error", err)
		return false
	}
	slices.Sort(paths)

	for _, path := range paths {
		dev, err := j.open(path)
		if err != nil {
			slog.Debug("Failed to open joystick device", "path", path, "error", err)
			continue
		}
		j.attach(path, dev)
		return true
	}
	return false
}

func (j *JoydevBackend) attach(path string, dev deviceHandle) {
	base := filepath.Base(path)
	sysDir := filepath.Join(j.cfg.SysfsRoot, "class", "input", base, "device")

	name := readSysfs(filepath.Join(sysDir, "name"))
	if name == "" {
		name = base
	}
	vendor := readSysfsHex(filepath.Join(sysDir, "id", "vendor"))
	product := readSysfsHex(filepath.Join(sysDir, "id", "product"))

	j.dev = dev
	j.path = path
	j.name = name
	j.mapping = GetMapping(vendor, product)
	j.state = NewSnapshot()
	j.pending = nil

	slog.Debug("Opened joystick device", "path", path, "name", name,
		"vendor", fmt.Sprintf("%04X", vendor), "product", fmt.Sprintf("%04X", product),
		"mapping", j.mapping.Name)
}

func (j *JoydevBackend) drop(err error) {
	if errors.Is(err, io.EOF) {
		slog.Debug("Joystick device closed", "path", j.path)
	} else {
		slog.Warn("Joystick device read failed", "path", j.path, "error", err)
	}
	if cerr := j.dev.Close(); cerr != nil {
		slog.Debug("Failed to close joystick device", "path", j.path, "error", cerr)
	}
	j.reset()
}

func (j *JoydevBackend) reset() {
	j.dev = nil
	j.path = ""
	j.name = ""
	j.mapping = nil
	j.state = Snapshot{}
	j.pending = nil
}

func isNoData(err error) bool {
	return errors.Is(err, os.ErrDeadlineExceeded) || isWouldBlock(err)
}

func readSysfs(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func readSysfsHex(path string) uint16 {
	v, err := strconv.ParseUint(readSysfs(path), 16, 16)
	if err != nil {
		return 0
	}
	return uint16(v)
}
