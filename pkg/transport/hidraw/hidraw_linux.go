// +build linux

package hidraw

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"syscall"
	"unsafe"

	"github.com/golang/glog"
)

// Device is an opened hidraw node.
type Device struct {
	file *os.File
	path string
	id   DeviceID
}

type devInfo struct {
	BusType uint32
	Vendor  int16
	Product int16
}

const (
	iocGRAWINFO uint = 0x80084803

	sysClass = "/sys/class/hidraw"
)

// Open opens the hidraw node at path.
func Open(path string) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	d := &Device{file: f, path: path}
	var info devInfo
	if errno := d.ioctl(iocGRAWINFO, unsafe.Pointer(&info)); errno != 0 {
		d.file.Close()
		return nil, errno
	}
	d.id = DeviceID{Vendor: uint16(info.Vendor), Product: uint16(info.Product)}
	return d, nil
}

// Detect finds the first supported display and opens it.
func Detect() (*Device, error) {
	paths, err := filepath.Glob("/dev/hidraw*")
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		d, err := Open(path)
		if err != nil {
			glog.V(2).Infof("skip %s: %v", path, err)
			continue
		}
		if IsSupported(d.id) && interfaceOf(path) == Interface {
			glog.Infof("display %04x:%04x found at %s", d.id.Vendor, d.id.Product, path)
			return d, nil
		}
		d.Close()
	}
	return nil, fmt.Errorf("no supported display found")
}

// interfaceOf returns the USB interface number of the node, or Interface if
// it can't be determined.
func interfaceOf(path string) int {
	dir, err := filepath.EvalSymlinks(filepath.Join(sysClass, filepath.Base(path), "device"))
	if err != nil {
		return Interface
	}
	content, err := ioutil.ReadFile(filepath.Join(filepath.Dir(dir), "bInterfaceNumber"))
	if err != nil {
		return Interface
	}
	if n, ok := parseInterfaceNumber(string(content)); ok {
		return n
	}
	return Interface
}

// ID returns vendor and product of the device.
func (d *Device) ID() DeviceID {
	return d.id
}

// Path returns the device node path.
func (d *Device) Path() string {
	return d.path
}

// WritePacket implements vfd.PacketWriter.
func (d *Device) WritePacket(pkt []byte) error {
	_, err := d.file.Write(frame(pkt))
	return err
}

// Close implements io.Closer.
func (d *Device) Close() error {
	return d.file.Close()
}

func (d *Device) ioctl(req uint, ptr unsafe.Pointer) syscall.Errno {
	_, _, err := syscall.Syscall(syscall.SYS_IOCTL, uintptr(d.file.Fd()), uintptr(req), uintptr(ptr))
	return err
}
